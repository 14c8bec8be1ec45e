package server

import (
	"errors"
	"fmt"

	"github.com/mapsketch/annotator/internal/geo"
	"github.com/mapsketch/annotator/internal/logging"
	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/surface"
	geom "github.com/peterstace/simplefeatures/geom"
)

const circleSegments = 64

var errDegenerate = errors.New("degenerate geometry")

// layers renders the display group as GeoJSON features. Features whose handle
// belongs to a record carry its name and kind. Objects that cannot be expressed as
// a geometry are logged and left out.
func layers(objs []surface.Object, recs []core.Record, log logging.Logger) geom.GeoJSONFeatureCollection {
	byHandle := make(map[core.Handle]core.Record, len(recs))
	for _, r := range recs {
		byHandle[r.Handle] = r
	}

	fc := make(geom.GeoJSONFeatureCollection, 0, len(objs))
	for _, obj := range objs {
		g, err := geometryOf(obj)
		if err != nil {
			log.Warn("object left out of layers", "handle", uint64(obj.Handle), "shape", obj.Shape.String(), "error", err)
			continue
		}

		props := map[string]interface{}{
			"handle":      uint64(obj.Handle),
			"shape":       obj.Shape.String(),
			"color":       obj.Style.Color,
			"opacity":     obj.Style.Opacity,
			"weight":      obj.Style.Weight,
			"dashArray":   obj.Style.DashArray,
			"fill":        obj.Style.Fill,
			"fillColor":   obj.Style.FillColor,
			"fillOpacity": obj.Style.FillOpacity,
			"editable":    obj.Editable,
		}
		if obj.Shape == surface.ShapeCircle || obj.Shape == surface.ShapePoint {
			props["radius"] = obj.Radius
		}
		if rec, ok := byHandle[obj.Handle]; ok {
			props["name"] = rec.Name
			props["kind"] = string(rec.Kind())
		}

		fc = append(fc, geom.GeoJSONFeature{
			Geometry:   g,
			ID:         uint64(obj.Handle),
			Properties: props,
		})
	}
	return fc
}

func geometryOf(obj surface.Object) (geom.Geometry, error) {
	need := map[surface.Shape]int{
		surface.ShapePoint:    1,
		surface.ShapeCircle:   1,
		surface.ShapePolygon:  3,
		surface.ShapePolyline: 2,
	}
	n, known := need[obj.Shape]
	if !known {
		return geom.Geometry{}, fmt.Errorf("shape %s: %w", obj.Shape, core.ErrUnrecognizedShape)
	}
	if len(obj.Points) < n {
		return geom.Geometry{}, fmt.Errorf("%s with %d points: %w", obj.Shape, len(obj.Points), errDegenerate)
	}

	switch obj.Shape {
	case surface.ShapePoint:
		return geo.Point(obj.Points[0])
	case surface.ShapeCircle:
		if obj.Radius <= 0 {
			return geom.Geometry{}, fmt.Errorf("circle radius %v: %w", obj.Radius, errDegenerate)
		}
		return geo.Circle(obj.Points[0], obj.Radius, circleSegments)
	case surface.ShapePolygon:
		return geo.Polygon(obj.Points)
	default:
		return geo.LineString(obj.Points)
	}
}
