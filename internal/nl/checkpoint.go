package nl

import (
	"fmt"

	"github.com/dekarrin/nlstar/internal/automaton"
	"github.com/dekarrin/nlstar/internal/mat"
	"github.com/dekarrin/rezi"
)

// Checkpoint groups everything needed to resume a Learner mid-run: the
// shared suffix arena, both tables' prefixes and rows, and the iteration
// counter (SPEC_FULL.md §3's Checkpoint addition). rezi encodes it field
// by field, so adding a field later stays forward compatible, matching the
// teacher's save-game format.
type Checkpoint struct {
	Iteration int
	Suffixes  []string

	MainPrefixes []string
	MainRows     [][]uint64
	BasicOrder   []string

	ExtendedPrefixes []string
	ExtendedRows     [][]uint64

	// Hypothesis is the most recent determinized candidate, or the zero
	// Wire if the loop has not yet reached hypothesis construction.
	Hypothesis automaton.Wire
}

// Save captures l's current state into a Checkpoint. hypothesis may be the
// zero Automaton if none has been built yet.
func (l *Learner) Save(hypothesis automaton.Automaton) Checkpoint {
	cp := Checkpoint{
		Iteration:        l.Iteration,
		Suffixes:         l.arena.All(),
		MainPrefixes:     append([]string(nil), l.main.prefixes...),
		BasicOrder:       l.main.Basic(),
		ExtendedPrefixes: append([]string(nil), l.extended.prefixes...),
	}
	for _, row := range l.main.rows {
		cp.MainRows = append(cp.MainRows, append([]uint64(nil), row.words...))
	}
	for _, row := range l.extended.rows {
		cp.ExtendedRows = append(cp.ExtendedRows, append([]uint64(nil), row.words...))
	}
	if hypothesis.Size() > 0 {
		cp.Hypothesis = hypothesis.ToWire()
	}
	return cp
}

// RestoreLearner rebuilds a Learner from cp against teacher and alphabet.
// Its tables are populated directly from the checkpoint's rows rather than
// re-querying the teacher, so restoring is cheap even when membership
// queries are expensive.
func RestoreLearner(cp Checkpoint, teacher mat.MAT, alphabet []string) *Learner {
	arena := NewArena()
	for _, e := range cp.Suffixes {
		arena.Intern(e)
	}

	main := &MainTable{rowTable: newRowTable(teacher, alphabet, arena), basic: map[string]bool{}}
	for i, u := range cp.MainPrefixes {
		main.index[u] = len(main.prefixes)
		main.prefixes = append(main.prefixes, u)
		var row Bitset
		if i < len(cp.MainRows) {
			row.words = append([]uint64(nil), cp.MainRows[i]...)
		}
		main.rows = append(main.rows, row)
	}
	for _, u := range cp.BasicOrder {
		main.promote(u)
	}

	extended := &ExtendedTable{rowTable: newRowTable(teacher, alphabet, arena)}
	for i, u := range cp.ExtendedPrefixes {
		extended.index[u] = len(extended.prefixes)
		extended.prefixes = append(extended.prefixes, u)
		var row Bitset
		if i < len(cp.ExtendedRows) {
			row.words = append([]uint64(nil), cp.ExtendedRows[i]...)
		}
		extended.rows = append(extended.rows, row)
	}

	return &Learner{
		teacher:   teacher,
		alphabet:  alphabet,
		arena:     arena,
		main:      main,
		extended:  extended,
		Iteration: cp.Iteration,
	}
}

// EncodeCheckpoint serializes cp for on-disk storage.
func EncodeCheckpoint(cp Checkpoint) []byte {
	return rezi.EncBinary(cp)
}

// DecodeCheckpoint restores a Checkpoint previously produced by
// EncodeCheckpoint.
func DecodeCheckpoint(data []byte) (Checkpoint, error) {
	var cp Checkpoint
	n, err := rezi.DecBinary(data, &cp)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("decoding checkpoint: %w", err)
	}
	if n == 0 && len(data) != 0 {
		return Checkpoint{}, fmt.Errorf("decoding checkpoint: no bytes consumed")
	}
	return cp, nil
}
