// Package tracks holds the per-track delegate and confirmer assignments of a proxy.
package tracks

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// Table maps tracks to their delegate and confirmer. The zero address means unassigned;
// an unassigned confirmer lets proposals through without confirmation.
type Table struct {
	Delegates  map[domain.Track]common.Address `json:"delegates"`
	Confirmers map[domain.Track]common.Address `json:"confirmers"`
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{
		Delegates:  make(map[domain.Track]common.Address),
		Confirmers: make(map[domain.Track]common.Address),
	}
}

// Init allocates maps missing after decoding
func (t *Table) Init() {
	if t.Delegates == nil {
		t.Delegates = make(map[domain.Track]common.Address)
	}
	if t.Confirmers == nil {
		t.Confirmers = make(map[domain.Track]common.Address)
	}
}

// Delegate returns the address allowed to propose on track
func (t *Table) Delegate(track domain.Track) common.Address {
	return t.Delegates[track]
}

// Confirmer returns the address allowed to confirm or reject on track
func (t *Table) Confirmer(track domain.Track) common.Address {
	return t.Confirmers[track]
}

// IsDelegate reports whether addr is the assigned delegate of track
func (t *Table) IsDelegate(track domain.Track, addr common.Address) bool {
	d := t.Delegates[track]
	return d != (common.Address{}) && d == addr
}

// IsConfirmer reports whether addr is the assigned confirmer of track
func (t *Table) IsConfirmer(track domain.Track, addr common.Address) bool {
	c := t.Confirmers[track]
	return c != (common.Address{}) && c == addr
}

// RequiresConfirmation reports whether track has a confirmer
func (t *Table) RequiresConfirmation(track domain.Track) bool {
	return t.Confirmers[track] != (common.Address{})
}

// SetDelegate assigns who as delegate of track and returns the previous one
func (t *Table) SetDelegate(track domain.Track, who common.Address) (was common.Address) {
	was = t.Delegates[track]
	set(t.Delegates, track, who)
	return was
}

// SetConfirmer assigns who as confirmer of track and returns the previous one
func (t *Table) SetConfirmer(track domain.Track, who common.Address) (was common.Address) {
	was = t.Confirmers[track]
	set(t.Confirmers, track, who)
	return was
}

// Get returns the assignment of track
func (t *Table) Get(track domain.Track) models.TrackAssignment {
	return models.TrackAssignment{
		Track:     track,
		Delegate:  t.Delegates[track],
		Confirmer: t.Confirmers[track],
	}
}

// Tracks returns every track with an assignment, in ascending order
func (t *Table) Tracks() []domain.Track {
	seen := make(map[domain.Track]struct{})
	for track := range t.Delegates {
		seen[track] = struct{}{}
	}
	for track := range t.Confirmers {
		seen[track] = struct{}{}
	}
	out := make([]domain.Track, 0, len(seen))
	for track := range seen {
		out = append(out, track)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewTableFrom builds a table from assignments
func NewTableFrom(assignments []models.TrackAssignment) *Table {
	t := NewTable()
	for _, a := range assignments {
		t.SetDelegate(a.Track, a.Delegate)
		t.SetConfirmer(a.Track, a.Confirmer)
	}
	return t
}

// Assignments returns the assignment of every configured track
func (t *Table) Assignments() []models.TrackAssignment {
	tracks := t.Tracks()
	out := make([]models.TrackAssignment, 0, len(tracks))
	for _, track := range tracks {
		out = append(out, t.Get(track))
	}
	return out
}

// Clone returns a deep copy
func (t *Table) Clone() *Table {
	c := NewTable()
	for k, v := range t.Delegates {
		c.Delegates[k] = v
	}
	for k, v := range t.Confirmers {
		c.Confirmers[k] = v
	}
	return c
}

func set(m map[domain.Track]common.Address, track domain.Track, who common.Address) {
	if who == (common.Address{}) {
		delete(m, track)
		return
	}
	m[track] = who
}
