// internal/model/core/types.go
package core

// LatLng is a WGS84 position in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Offset returns the position shifted by the given deltas in degrees.
func (p LatLng) Offset(dLat, dLng float64) LatLng {
	return LatLng{Lat: p.Lat + dLat, Lng: p.Lng + dLng}
}

// Handle identifies one object on the rendering surface.
// The zero value means "no object".
type Handle uint64

// Valid reports whether h refers to an object.
func (h Handle) Valid() bool {
	return h != 0
}
