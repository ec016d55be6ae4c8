// Package nl implements the NL* active learner of spec.md §4.5 and §4.6:
// the shared-suffix observation tables (MainTable, ExtendedTable), the
// completeness/consistency loop, RFSA hypothesis construction, and
// counterexample handling.
//
// Grounded on the observation-table design of spec.md §9's design note:
// "intern prefixes/suffixes into integer ids backed by an arena, with rows
// as bitsets over suffix-ids" — this package follows that note rather than
// the source's string-hashing-everywhere approach, since no retrieved
// example repo models observation tables and the note is itself the
// grounding for the representation choice.
package nl

import "sort"

// Arena interns suffixes into small integer ids, shared between a
// MainTable and ExtendedTable pair (spec.md §4.6: "a pair of structures
// sharing a suffix set E"). The empty suffix is interned at construction,
// always as id 0.
type Arena struct {
	suffixes []string
	index    map[string]int
}

// NewArena returns an Arena with ε already interned as suffix id 0.
func NewArena() *Arena {
	a := &Arena{index: map[string]int{}}
	a.Intern("")
	return a
}

// Intern returns e's id, assigning it a fresh one if e has not been seen
// before. Idempotent.
func (a *Arena) Intern(e string) int {
	if id, ok := a.index[e]; ok {
		return id
	}
	id := len(a.suffixes)
	a.suffixes = append(a.suffixes, e)
	a.index[e] = id
	return id
}

// Suffix returns the suffix interned as id.
func (a *Arena) Suffix(id int) string { return a.suffixes[id] }

// Len returns |E|, the number of interned suffixes.
func (a *Arena) Len() int { return len(a.suffixes) }

// All returns every interned suffix, in id order (ε first).
func (a *Arena) All() []string {
	return append([]string(nil), a.suffixes...)
}

// Bitset is a growable bitset over suffix ids, the row representation of
// spec.md §9's design note. The zero value is an empty set.
type Bitset struct {
	words []uint64
}

func (b *Bitset) ensureWords(n int) {
	for len(b.words) < n {
		b.words = append(b.words, 0)
	}
}

// Set marks bit i as present.
func (b *Bitset) Set(i int) {
	word, bit := i/64, uint(i%64)
	b.ensureWords(word + 1)
	b.words[word] |= 1 << bit
}

// Has reports whether bit i is present.
func (b Bitset) Has(i int) bool {
	word, bit := i/64, uint(i%64)
	if word >= len(b.words) {
		return false
	}
	return b.words[word]&(1<<bit) != 0
}

// Clone returns an independent copy of b.
func (b Bitset) Clone() Bitset {
	return Bitset{words: append([]uint64(nil), b.words...)}
}

// IsEmpty reports whether no bits are set.
func (b Bitset) IsEmpty() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether b and o have exactly the same bits set.
func (b Bitset) Equal(o Bitset) bool {
	n := len(b.words)
	if len(o.words) > n {
		n = len(o.words)
	}
	for i := 0; i < n; i++ {
		var wb, wo uint64
		if i < len(b.words) {
			wb = b.words[i]
		}
		if i < len(o.words) {
			wo = o.words[i]
		}
		if wb != wo {
			return false
		}
	}
	return true
}

// IsSubsetOf reports whether every bit set in b is also set in o.
func (b Bitset) IsSubsetOf(o Bitset) bool {
	for i, w := range b.words {
		var wo uint64
		if i < len(o.words) {
			wo = o.words[i]
		}
		if w&^wo != 0 {
			return false
		}
	}
	return true
}

// Union returns a new Bitset with every bit set in either b or o.
func (b Bitset) Union(o Bitset) Bitset {
	n := len(b.words)
	if len(o.words) > n {
		n = len(o.words)
	}
	words := make([]uint64, n)
	for i := range words {
		var wb, wo uint64
		if i < len(b.words) {
			wb = b.words[i]
		}
		if i < len(o.words) {
			wo = o.words[i]
		}
		words[i] = wb | wo
	}
	return Bitset{words: words}
}

// Elements returns the set bit indices in ascending order.
func (b Bitset) Elements() []int {
	var out []int
	for wi, w := range b.words {
		for bit := 0; bit < 64; bit++ {
			if w&(1<<uint(bit)) != 0 {
				out = append(out, wi*64+bit)
			}
		}
	}
	sort.Ints(out)
	return out
}
