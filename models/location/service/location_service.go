package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	apperrors "github.com/corkphoto/itinerary-backend/errors"
	"github.com/corkphoto/itinerary-backend/logger"
	"github.com/corkphoto/itinerary-backend/store"
	"github.com/corkphoto/itinerary-backend/types"
)

const (
	MaxSlugLength = 200
	fallbackSlug  = "location"
)

// CatalogService manages the locations that trip stops reference.
type CatalogService struct {
	store store.LocationStore
	now   func() time.Time
}

var _ CatalogServiceInterface = (*CatalogService)(nil)

func NewCatalogService(store store.LocationStore) *CatalogService {
	return &CatalogService{store: store, now: time.Now}
}

// ListLocations returns every location ordered by name.
func (s *CatalogService) ListLocations(ctx context.Context) ([]types.Location, error) {
	locations, err := s.store.ListLocations(ctx)
	if err != nil {
		return nil, asAppError(err)
	}
	return locations, nil
}

func (s *CatalogService) GetLocation(ctx context.Context, id string) (*types.Location, error) {
	loc, err := s.store.GetLocation(ctx, id)
	if err != nil {
		return nil, asAppError(err)
	}
	return loc, nil
}

// CreateLocation stores a new location under a slug derived from its name. If the slug is
// taken, the Unix time is appended once before giving up.
func (s *CatalogService) CreateLocation(ctx context.Context, req types.CreateLocationRequest) (*types.Location, error) {
	log := logger.GetLogger()

	loc := types.Location{
		Name:      strings.TrimSpace(req.Name),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Notes:     strings.TrimSpace(req.Notes),
	}
	if err := validateLocation(loc); err != nil {
		return nil, err
	}

	loc.Slug = Slugify(loc.Name)
	created, err := s.store.CreateLocation(ctx, loc)
	if errors.Is(err, store.ErrSlugTaken) {
		loc.Slug = withSuffix(loc.Slug, fmt.Sprintf("%d", s.now().Unix()))
		log.Infow("Slug taken, retrying with timestamp", "name", loc.Name, "slug", loc.Slug)
		created, err = s.store.CreateLocation(ctx, loc)
	}
	if errors.Is(err, store.ErrSlugTaken) {
		return nil, apperrors.NewConflictError("Location slug already exists", loc.Slug)
	}
	if err != nil {
		return nil, asAppError(err)
	}

	log.Infow("Created location", "locationId", created.ID, "slug", created.Slug)
	return created, nil
}

func validateLocation(loc types.Location) error {
	switch {
	case loc.Name == "":
		return apperrors.InvalidArgument("name", "is required")
	case loc.Latitude < -90 || loc.Latitude > 90:
		return apperrors.InvalidArgument("latitude", fmt.Sprintf("must be within -90..90, got %v", loc.Latitude))
	case loc.Longitude < -180 || loc.Longitude > 180:
		return apperrors.InvalidArgument("longitude", fmt.Sprintf("must be within -180..180, got %v", loc.Longitude))
	}
	return nil
}

// Slugify lowercases letters and digits and turns every other run of characters into a single
// hyphen, without leading or trailing hyphens and at most MaxSlugLength runes long.
func Slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingHyphen = true
	}

	slug := truncateRunes(b.String(), MaxSlugLength)
	slug = strings.TrimRight(slug, "-")
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

func withSuffix(slug, suffix string) string {
	base := truncateRunes(slug, MaxSlugLength-len(suffix)-1)
	return strings.TrimRight(base, "-") + "-" + suffix
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func asAppError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.NewDatabaseError(err)
}
