// Package translate turns surface objects back into model geometry. It is the only
// place allowed to read positions from live surface state.
package translate

import (
	"fmt"

	"github.com/mapsketch/annotator/internal/geo"
	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/surface"
)

// FromObject classifies obj and captures its positional data. The returned record
// has no name and no style; callers carry those forward themselves.
func FromObject(obj surface.Object) (core.Record, error) {
	var g core.Geometry

	switch {
	case obj.Shape == surface.ShapeCircle && len(obj.Points) >= 1:
		g = core.NewCircle(obj.Points[0], obj.Radius)
	case obj.Shape == surface.ShapePolygon && len(obj.Points) >= 3:
		g = core.NewPolygon(obj.Points)
	case obj.Shape == surface.ShapePolyline && len(obj.Points) >= 2:
		g = core.NewPolyline(obj.Points)
	case obj.Shape == surface.ShapePoint && len(obj.Points) >= 1:
		g = core.NewMarker(obj.Points[0])
	default:
		return core.Record{}, fmt.Errorf("%s object with %d points: %w", obj.Shape, len(obj.Points), core.ErrUnrecognizedShape)
	}

	return core.Record{Geometry: g, Handle: obj.Handle}, nil
}

// Anchor returns the position a custom marker object sits on: the point itself, or
// the center of the bounds of a polygon approximation.
func Anchor(obj surface.Object) (core.LatLng, error) {
	switch obj.Shape {
	case surface.ShapePoint, surface.ShapeCircle:
		if len(obj.Points) >= 1 {
			return obj.Points[0], nil
		}
	case surface.ShapePolygon:
		if c, ok := geo.BoundsCenter(obj.Points); ok {
			return c, nil
		}
	}
	return core.LatLng{}, fmt.Errorf("anchor of %s object: %w", obj.Shape, core.ErrUnrecognizedShape)
}

// Position re-derives the geometry of an object that belongs to a record of kind k.
// Custom markers are reduced to their anchor whatever surface shape draws them.
func Position(obj surface.Object, k core.Kind) (core.Geometry, error) {
	if k == core.KindCustomMarker {
		a, err := Anchor(obj)
		if err != nil {
			return core.Geometry{}, err
		}
		return core.NewMarker(a), nil
	}

	rec, err := FromObject(obj)
	if err != nil {
		return core.Geometry{}, err
	}
	if rec.Kind() != k {
		return core.Geometry{}, fmt.Errorf("%s object for %s record: %w", obj.Shape, k, core.ErrUnrecognizedShape)
	}
	return rec.Geometry, nil
}
