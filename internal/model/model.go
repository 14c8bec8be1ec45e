// Package model holds the canonical ordered collection of annotation records and the
// selection. It is the single source of truth: surface objects are derived from it.
package model

import (
	"fmt"

	"github.com/mapsketch/annotator/internal/logging"
	"github.com/mapsketch/annotator/internal/model/core"
)

// Remover discards surface objects owned by deleted or rebound records.
type Remover interface {
	Remove(h core.Handle)
}

// Refresher is notified after every mutation that affects what is drawn or listed.
type Refresher interface {
	Refresh()
}

// RefresherFunc adapts a function to Refresher.
type RefresherFunc func()

// Refresh calls f.
func (f RefresherFunc) Refresh() { f() }

// Model is the ordered record collection plus the optional selection.
// It is not safe for concurrent use; callers serialize access.
type Model struct {
	records  []core.Record
	selected int
	title    string

	remover   Remover
	refresher Refresher
	logger    logging.Logger
}

// New creates an empty model. The remover is required.
func New(remover Remover, logger logging.Logger) (*Model, error) {
	if remover == nil {
		return nil, fmt.Errorf("model: rendering surface: %w", core.ErrMissingPrerequisite)
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Model{
		selected: -1,
		remover:  remover,
		logger:   logger,
	}, nil
}

// SetRefresher installs the refresh fan-out. It is wired after construction because
// the views that refresh need the model first.
func (m *Model) SetRefresher(r Refresher) {
	m.refresher = r
}

// Refresh runs the refresh fan-out, if any.
func (m *Model) Refresh() {
	if m.refresher != nil {
		m.refresher.Refresh()
	}
}

// Insert appends rec with an auto-assigned name and defaulted style, refreshes, and
// returns the new index.
func (m *Model) Insert(rec core.Record) int {
	rec = rec.Clone()
	rec.Name = fmt.Sprintf("%s %d", rec.Kind(), m.countKind(rec.Kind())+1)
	rec.Style = rec.Style.WithDefaults()

	m.records = append(m.records, rec)
	idx := len(m.records) - 1
	m.logger.Debug("record inserted", "index", idx, "name", rec.Name, "handle", uint64(rec.Handle))

	m.Refresh()
	return idx
}

func (m *Model) countKind(k core.Kind) int {
	n := 0
	for _, r := range m.records {
		if r.Kind() == k {
			n++
		}
	}
	return n
}

// DeleteAt removes the record at i together with its surface object and shifts the
// selection. Out-of-range indexes are logged and leave everything unchanged.
func (m *Model) DeleteAt(i int) error {
	if err := m.check("delete", i); err != nil {
		return err
	}

	rec := m.records[i]
	if rec.Handle.Valid() {
		m.remover.Remove(rec.Handle)
	}
	m.records = append(m.records[:i], m.records[i+1:]...)

	switch {
	case m.selected == i:
		m.selected = -1
	case m.selected > i:
		m.selected--
	}
	m.logger.Debug("record deleted", "index", i, "name", rec.Name)

	m.Refresh()
	return nil
}

// UpdateCoordinates replaces only the positional data of the record at i.
func (m *Model) UpdateCoordinates(i int, g core.Geometry) error {
	if err := m.check("update coordinates", i); err != nil {
		return err
	}
	m.records[i].Geometry = g.Clone()
	m.Refresh()
	return nil
}

// Replace swaps the record at i for rec in place. The name is kept, and so is the
// handle unless rec carries a new one.
func (m *Model) Replace(i int, rec core.Record) error {
	if err := m.check("replace", i); err != nil {
		return err
	}
	old := m.records[i]
	rec = rec.Clone()
	rec.Name = old.Name
	if !rec.Handle.Valid() {
		rec.Handle = old.Handle
	}
	m.records[i] = rec
	m.Refresh()
	return nil
}

// FindByRenderHandle returns the index of the first record owning h.
func (m *Model) FindByRenderHandle(h core.Handle) (int, bool) {
	if !h.Valid() {
		return -1, false
	}
	for i, r := range m.records {
		if r.Handle == h {
			return i, true
		}
	}
	return -1, false
}

// Rename sets the display name of the record at i. Siblings are never renumbered.
func (m *Model) Rename(i int, name string) error {
	if err := m.check("rename", i); err != nil {
		return err
	}
	m.records[i].Name = name
	m.Refresh()
	return nil
}

// Rebind installs a new surface object for the record at i, removing the old one
// first. It does not refresh.
func (m *Model) Rebind(i int, h core.Handle) error {
	if err := m.check("rebind", i); err != nil {
		return err
	}
	old := m.records[i].Handle
	if old.Valid() && old != h {
		m.remover.Remove(old)
	}
	m.records[i].Handle = h
	return nil
}

// SetStyle replaces the style of the record at i. It does not refresh.
func (m *Model) SetStyle(i int, s core.Style) error {
	if err := m.check("set style", i); err != nil {
		return err
	}
	m.records[i].Style = s
	return nil
}

// Select marks the record at i as selected.
func (m *Model) Select(i int) error {
	if err := m.check("select", i); err != nil {
		return err
	}
	m.selected = i
	return nil
}

// Selected returns the selected index, if any.
func (m *Model) Selected() (int, bool) {
	if m.selected < 0 || m.selected >= len(m.records) {
		return -1, false
	}
	return m.selected, true
}

// ClearSelection drops the selection.
func (m *Model) ClearSelection() {
	m.selected = -1
}

// Len returns the number of records.
func (m *Model) Len() int {
	return len(m.records)
}

// At returns a copy of the record at i.
func (m *Model) At(i int) (core.Record, bool) {
	if i < 0 || i >= len(m.records) {
		return core.Record{}, false
	}
	return m.records[i].Clone(), true
}

// Records returns copies of all records in order.
func (m *Model) Records() []core.Record {
	out := make([]core.Record, len(m.records))
	for i, r := range m.records {
		out[i] = r.Clone()
	}
	return out
}

// Title returns the map title.
func (m *Model) Title() string {
	return m.title
}

// SetTitle changes the map title and refreshes.
func (m *Model) SetTitle(title string) {
	m.title = title
	m.Refresh()
}

func (m *Model) check(op string, i int) error {
	if i < 0 || i >= len(m.records) {
		m.logger.Error("index out of range", "op", op, "index", i, "len", len(m.records))
		return fmt.Errorf("%s %d: %w", op, i, core.ErrInvalidIndex)
	}
	return nil
}
