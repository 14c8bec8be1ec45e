// internal/model/core/geometry.go
package core

import "slices"

// Kind is the semantic shape kind of a record.
type Kind string

const (
	KindCircle       Kind = "Circle"
	KindPolygon      Kind = "Polygon"
	KindPolyline     Kind = "Polyline"
	KindCustomMarker Kind = "CustomMarker"
)

// Kinds lists every record kind in display order.
var Kinds = []Kind{KindCircle, KindPolygon, KindPolyline, KindCustomMarker}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return slices.Contains(Kinds, k)
}

// Filled reports whether the kind has an interior that takes a fill color.
func (k Kind) Filled() bool {
	return k != KindPolyline
}

// Geometry is the positional data of a record, tagged by Kind.
// Only the fields belonging to Kind are meaningful:
//   - Circle: Center, Radius (meters)
//   - Polygon: Vertices (open ring, first vertex not repeated)
//   - Polyline: Vertices
//   - CustomMarker: Anchor
type Geometry struct {
	Kind     Kind     `json:"kind"`
	Center   LatLng   `json:"center,omitempty"`
	Radius   float64  `json:"radius,omitempty"`
	Vertices []LatLng `json:"vertices,omitempty"`
	Anchor   LatLng   `json:"anchor,omitempty"`
}

// NewCircle returns circle geometry.
func NewCircle(center LatLng, radius float64) Geometry {
	return Geometry{Kind: KindCircle, Center: center, Radius: radius}
}

// NewPolygon returns polygon geometry over a copy of ring.
func NewPolygon(ring []LatLng) Geometry {
	return Geometry{Kind: KindPolygon, Vertices: clonePoints(ring)}
}

// NewPolyline returns polyline geometry over a copy of pts.
func NewPolyline(pts []LatLng) Geometry {
	return Geometry{Kind: KindPolyline, Vertices: clonePoints(pts)}
}

// NewMarker returns custom marker geometry anchored at p.
func NewMarker(p LatLng) Geometry {
	return Geometry{Kind: KindCustomMarker, Anchor: p}
}

// Clone returns a deep copy.
func (g Geometry) Clone() Geometry {
	g.Vertices = clonePoints(g.Vertices)
	return g
}

func clonePoints(pts []LatLng) []LatLng {
	if pts == nil {
		return nil
	}
	out := make([]LatLng, len(pts))
	copy(out, pts)
	return out
}
