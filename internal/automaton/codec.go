package automaton

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rezi"
)

// Wire is the exported, flat encoding of an Automaton used for checkpointing
// (SPEC_FULL.md §3's Checkpoint addition). rezi encodes structs field by
// field from their exported fields, the way the teacher's save-game format
// does for its engine state (server/dao/sqlite), so Automaton's unexported
// matrix is flattened into a Wire value rather than encoded directly.
type Wire struct {
	Size          int
	Accept        []bool
	Deterministic bool
	// Edges lists every (From, Label, To) triple, sorted for determinism.
	Edges []WireEdge
}

// WireEdge is one labelled transition in a Wire-encoded Automaton.
type WireEdge struct {
	From  int
	Label string
	To    int
}

// ToWire flattens a into its exported wire form.
func (a Automaton) ToWire() Wire {
	w := Wire{
		Size:          a.size,
		Accept:        append([]bool(nil), a.accept...),
		Deterministic: a.deterministic,
	}
	a.Transitions(func(from int, label string, to int) {
		w.Edges = append(w.Edges, WireEdge{From: from, Label: label, To: to})
	})
	return w
}

// FromWire rebuilds the Automaton described by w.
func FromWire(w Wire) Automaton {
	var b Builder
	for i := 0; i < w.Size; i++ {
		accepting := false
		if i < len(w.Accept) {
			accepting = w.Accept[i]
		}
		b.AddState(accepting)
	}
	edges := append([]WireEdge(nil), w.Edges...)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].Label < edges[j].Label
	})
	for _, e := range edges {
		b.AddTransition(e.From, e.Label, e.To)
	}
	return b.Build(w.Deterministic)
}

// Encode serializes a with rezi for checkpointing.
func Encode(a Automaton) []byte {
	return rezi.EncBinary(a.ToWire())
}

// Decode restores an Automaton previously produced by Encode.
func Decode(data []byte) (Automaton, error) {
	var w Wire
	n, err := rezi.DecBinary(data, &w)
	if err != nil {
		return Automaton{}, fmt.Errorf("decoding automaton: %w", err)
	}
	if n == 0 && len(data) != 0 {
		return Automaton{}, fmt.Errorf("decoding automaton: no bytes consumed")
	}
	return FromWire(w), nil
}
