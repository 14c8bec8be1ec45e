// internal/model/core/record.go
package core

// Record is one annotation in the model. The record owns exactly one live surface
// object, referenced by Handle.
type Record struct {
	Name     string
	Geometry Geometry
	Style    Style
	Handle   Handle
}

// Kind returns the record's shape kind.
func (r Record) Kind() Kind {
	return r.Geometry.Kind
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	r.Geometry = r.Geometry.Clone()
	return r
}
