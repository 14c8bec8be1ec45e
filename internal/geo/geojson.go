package geo

import (
	"github.com/mapsketch/annotator/internal/model/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// Display geometry is built without validation: freehand shapes such as
// self-intersecting polygons are legal annotations.

// Point returns p as a GeoJSON-ordered point geometry.
func Point(p core.LatLng) (geom.Geometry, error) {
	pt, err := geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: p.Lng, Y: p.Lat},
		Type: geom.DimXY,
	}, geom.DisableAllValidations)
	if err != nil {
		return geom.Geometry{}, err
	}
	return pt.AsGeometry(), nil
}

// LineString returns pts as a line string geometry.
func LineString(pts []core.LatLng) (geom.Geometry, error) {
	ls, err := lineString(pts, false)
	if err != nil {
		return geom.Geometry{}, err
	}
	return ls.AsGeometry(), nil
}

// Polygon returns a polygon whose outer ring runs through pts. The ring is closed
// here; pts must not repeat the first vertex.
func Polygon(pts []core.LatLng) (geom.Geometry, error) {
	ring, err := lineString(pts, true)
	if err != nil {
		return geom.Geometry{}, err
	}
	poly, err := geom.NewPolygon([]geom.LineString{ring}, geom.DisableAllValidations)
	if err != nil {
		return geom.Geometry{}, err
	}
	return poly.AsGeometry(), nil
}

// Circle returns a polygon approximation of a circle of radius meters.
func Circle(center core.LatLng, radius float64, segments int) (geom.Geometry, error) {
	return Polygon(CircleRing(center, radius, segments))
}

func lineString(pts []core.LatLng, closed bool) (geom.LineString, error) {
	if len(pts) == 0 {
		return geom.LineString{}, nil
	}
	coords := make([]float64, 0, (len(pts)+1)*2)
	for _, p := range pts {
		coords = append(coords, p.Lng, p.Lat)
	}
	if closed {
		coords = append(coords, pts[0].Lng, pts[0].Lat)
	}
	seq := geom.NewSequence(coords, geom.DimXY)
	return geom.NewLineString(seq, geom.DisableAllValidations)
}
