// Package feed keeps a bounded backlog of list and legend refreshes for clients
// that poll instead of holding a connection.
package feed

import (
	"sync"
	"time"

	"github.com/mapsketch/annotator/internal/projector"
)

// Update is one refresh of the list and legend panels.
type Update struct {
	Seq    uint64           `json:"seq"`
	At     time.Time        `json:"at"`
	Rows   []projector.Row  `json:"rows"`
	Legend projector.Legend `json:"legend"`
}

// Feed is a thread-safe ring of the most recent updates. It satisfies the
// editor's view contract.
type Feed struct {
	mu    sync.Mutex
	items []Update
	limit int
	seq   uint64
}

// New creates a feed holding at most limit updates; limit < 1 keeps one.
func New(limit int) *Feed {
	if limit < 1 {
		limit = 1
	}
	return &Feed{
		items: make([]Update, 0, limit),
		limit: limit,
	}
}

// Update appends a refresh, dropping the oldest once the backlog is full.
func (f *Feed) Update(rows []projector.Row, legend projector.Legend) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	if len(f.items) == f.limit {
		copy(f.items, f.items[1:])
		f.items = f.items[:len(f.items)-1]
	}
	f.items = append(f.items, Update{
		Seq:    f.seq,
		At:     time.Now(),
		Rows:   rows,
		Legend: legend,
	})
}

// Since returns the retained updates newer than seq, oldest first.
func (f *Feed) Since(seq uint64) []Update {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Update, 0, len(f.items))
	for _, u := range f.items {
		if u.Seq > seq {
			out = append(out, u)
		}
	}
	return out
}

// Seq returns the sequence number of the latest update, 0 before the first.
func (f *Feed) Seq() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seq
}

// Len returns the number of retained updates.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
