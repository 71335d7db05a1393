package utils

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var worldBound = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// Coordinate is a geographic point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geofence is an optional polygonal site boundary stored as JSON on the site.
type Geofence struct {
	Coordinates []Coordinate `json:"coordinates"`
	Name        string       `json:"name,omitempty"`
}

// Ring converts the boundary to an orb ring, closing it when the payload
// leaves the last point open.
func (g Geofence) Ring() orb.Ring {
	ring := make(orb.Ring, 0, len(g.Coordinates)+1)
	for _, c := range g.Coordinates {
		ring = append(ring, orb.Point{c.Lng, c.Lat})
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// ValidateGeofence checks a site boundary payload. An empty string is valid;
// the boundary itself is optional.
func ValidateGeofence(geofenceJSON string) error {
	if geofenceJSON == "" {
		return nil
	}

	var geofence Geofence
	if err := json.Unmarshal([]byte(geofenceJSON), &geofence); err != nil {
		return fmt.Errorf("invalid geofence JSON format: %w", err)
	}

	if len(geofence.Coordinates) < 3 {
		return errors.New("geofence must have at least 3 coordinates to form a polygon")
	}

	for i, coord := range geofence.Coordinates {
		if !worldBound.Contains(orb.Point{coord.Lng, coord.Lat}) {
			return fmt.Errorf("coordinate %d (%.6f, %.6f) is outside valid lat/lng ranges", i, coord.Lat, coord.Lng)
		}
	}

	if planar.Area(geofence.Ring()) == 0 {
		return errors.New("geofence coordinates do not enclose an area")
	}
	return nil
}
