package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mapsketch/annotator/internal/model/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// Positions arrive in WGS84 (EPSG:4326) as lat/lng. Anything that needs distances
// or pixels goes through Web Mercator (EPSG:3857).

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

var (
	toMercator   = wgs84.EPSG().Transform(4326, 3857)
	fromMercator = wgs84.EPSG().Transform(3857, 4326)
)

// ParsePoints parses a JSON array of GeoJSON-ordered coordinates.
// Input format: "[[lng1,lat1],[lng2,lat2],...]"
func ParsePoints(input []byte) ([]core.LatLng, error) {
	var coords [][]float64
	if err := json.Unmarshal(input, &coords); err != nil {
		return nil, fmt.Errorf("failed to parse points JSON: %w", err)
	}

	pts := make([]core.LatLng, len(coords))
	for i, c := range coords {
		if len(c) < 2 {
			return nil, fmt.Errorf("coordinate %d has insufficient values: %w", i, ErrInvalidCoordinates)
		}
		pts[i] = core.LatLng{Lat: c[1], Lng: c[0]}
		if !Valid(pts[i]) {
			return nil, fmt.Errorf("coordinate %d out of range: %w", i, ErrInvalidCoordinates)
		}
	}
	return pts, nil
}

// Valid reports whether p is a finite WGS84 position.
func Valid(p core.LatLng) bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Project converts a WGS84 position to Web Mercator meters.
func Project(p core.LatLng) geom.XY {
	x, y, _ := toMercator(p.Lng, p.Lat, 0)
	return geom.XY{X: x, Y: y}
}

// Unproject converts Web Mercator meters back to a WGS84 position.
func Unproject(xy geom.XY) core.LatLng {
	lng, lat, _ := fromMercator(xy.X, xy.Y, 0)
	return core.LatLng{Lat: lat, Lng: lng}
}

// CircleRing approximates a circle of radius meters around center with the given
// number of segments. Mercator distortion is compensated at the center latitude.
func CircleRing(center core.LatLng, radius float64, segments int) []core.LatLng {
	if segments < 3 {
		segments = 3
	}
	c := Project(center)
	r := radius / math.Cos(center.Lat*math.Pi/180)

	ring := make([]core.LatLng, segments)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / float64(segments)
		ring[i] = Unproject(geom.XY{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
	}
	return ring
}

// Bounds returns the south-west and north-east corners of pts.
func Bounds(pts []core.LatLng) (sw, ne core.LatLng, ok bool) {
	if len(pts) == 0 {
		return core.LatLng{}, core.LatLng{}, false
	}
	sw, ne = pts[0], pts[0]
	for _, p := range pts[1:] {
		sw.Lat = math.Min(sw.Lat, p.Lat)
		sw.Lng = math.Min(sw.Lng, p.Lng)
		ne.Lat = math.Max(ne.Lat, p.Lat)
		ne.Lng = math.Max(ne.Lng, p.Lng)
	}
	return sw, ne, true
}

// BoundsCenter returns the center of the bounding box of pts.
func BoundsCenter(pts []core.LatLng) (core.LatLng, bool) {
	sw, ne, ok := Bounds(pts)
	if !ok {
		return core.LatLng{}, false
	}
	return core.LatLng{Lat: (sw.Lat + ne.Lat) / 2, Lng: (sw.Lng + ne.Lng) / 2}, true
}

// RectangleCorners returns the corners of the bounding box of pts in
// north-west, north-east, south-east, south-west order.
func RectangleCorners(pts []core.LatLng) ([]core.LatLng, bool) {
	sw, ne, ok := Bounds(pts)
	if !ok {
		return nil, false
	}
	return []core.LatLng{
		{Lat: ne.Lat, Lng: sw.Lng},
		{Lat: ne.Lat, Lng: ne.Lng},
		{Lat: sw.Lat, Lng: ne.Lng},
		{Lat: sw.Lat, Lng: sw.Lng},
	}, true
}
