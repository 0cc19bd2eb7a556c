package types

import (
	"strings"
	"time"
)

// Direction is the way a stop moves in an adjacent swap.
type Direction string

const (
	DirectionUp   Direction = "up"   // towards position 1
	DirectionDown Direction = "down" // towards position N
)

// ParseDirection accepts exactly "up" or "down", ignoring surrounding whitespace and case.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionUp:
		return DirectionUp, true
	case DirectionDown:
		return DirectionDown, true
	default:
		return "", false
	}
}

// Offset is the position delta of the neighbour a stop swaps with.
func (d Direction) Offset() int {
	switch d {
	case DirectionUp:
		return -1
	case DirectionDown:
		return 1
	default:
		return 0
	}
}

func (d Direction) String() string {
	return string(d)
}

type Trip struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	StopCount int       `json:"stopCount"`
}

// Stop places a location at a 1-based position within a trip.
type Stop struct {
	ID         string    `json:"id"`
	TripID     string    `json:"tripId"`
	LocationID string    `json:"locationId"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
	Location   *Location `json:"location,omitempty"`
}

type Location struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Itinerary is a trip with its stops ordered by position.
type Itinerary struct {
	Trip  Trip   `json:"trip"`
	Stops []Stop `json:"stops"`
}

// TripView is what the trip page renders: the itinerary plus the locations that can be added to it.
type TripView struct {
	Itinerary
	AvailableLocations []Location `json:"availableLocations"`
}

type CreateTripRequest struct {
	Name string `json:"name"`
}

type RandomTripRequest struct {
	Count *int `json:"count"`
}

type AddStopRequest struct {
	LocationID string `json:"locationId" binding:"required"`
}

type MoveStopRequest struct {
	Direction string `json:"direction" binding:"required,direction"`
}

type CreateLocationRequest struct {
	Name      string  `json:"name" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" binding:"gte=-180,lte=180"`
	Notes     string  `json:"notes"`
}
