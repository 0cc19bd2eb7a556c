package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/corkphoto/itinerary-backend/types"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML layout accepted by the seeder.
type catalogFile struct {
	Locations []seedLocation `yaml:"locations" validate:"required,min=1,dive"`
}

type seedLocation struct {
	Name      string  `yaml:"name" validate:"required,max=200"`
	Latitude  float64 `yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `yaml:"longitude" validate:"gte=-180,lte=180"`
	Notes     string  `yaml:"notes"`
}

// catalog is the part of the location service the seeder needs.
type catalog interface {
	ListLocations(ctx context.Context) ([]types.Location, error)
	CreateLocation(ctx context.Context, req types.CreateLocationRequest) (*types.Location, error)
}

type seedReport struct {
	Created int
	Skipped int
}

func parseCatalog(r io.Reader) ([]seedLocation, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return f.Locations, nil
}

// seed creates every location whose name is not already in the catalog. Names compare
// case-insensitively, so running the seeder twice is harmless.
func seed(ctx context.Context, c catalog, locs []seedLocation) (seedReport, error) {
	var report seedReport

	existing, err := c.ListLocations(ctx)
	if err != nil {
		return report, fmt.Errorf("list locations: %w", err)
	}
	seen := make(map[string]bool, len(existing)+len(locs))
	for _, l := range existing {
		seen[nameKey(l.Name)] = true
	}

	for _, l := range locs {
		key := nameKey(l.Name)
		if seen[key] {
			report.Skipped++
			continue
		}
		_, err := c.CreateLocation(ctx, types.CreateLocationRequest{
			Name:      l.Name,
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
			Notes:     l.Notes,
		})
		if err != nil {
			return report, fmt.Errorf("create %q: %w", l.Name, err)
		}
		seen[key] = true
		report.Created++
	}
	return report, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
