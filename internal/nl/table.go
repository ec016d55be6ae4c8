package nl

import (
	"sort"

	"github.com/dekarrin/nlstar/internal/mat"
)

// rowTable holds the prefix-indexed rows shared by MainTable and
// ExtendedTable's implementations: a prefix set U (or U·Σ), each mapped to
// its row — the bitset over the shared Arena's suffix ids of which
// u·e ∈ L (spec.md §4.6).
type rowTable struct {
	teacher  mat.MAT
	alphabet []string
	arena    *Arena

	prefixes []string
	index    map[string]int
	rows     []Bitset
}

func newRowTable(teacher mat.MAT, alphabet []string, arena *Arena) *rowTable {
	return &rowTable{
		teacher:  teacher,
		alphabet: alphabet,
		arena:    arena,
		index:    map[string]int{},
	}
}

// has reports whether u is already a row in the table.
func (t *rowTable) has(u string) bool {
	_, ok := t.index[u]
	return ok
}

// row returns u's row and whether u is present.
func (t *rowTable) row(u string) (Bitset, bool) {
	i, ok := t.index[u]
	if !ok {
		return Bitset{}, false
	}
	return t.rows[i], true
}

// insert adds u as a fresh row, querying the teacher for u·e for every
// interned suffix e, and returns false without effect if u is already
// present (idempotent per spec.md §4.6).
func (t *rowTable) insert(u string) bool {
	if t.has(u) {
		return false
	}

	row := Bitset{}
	for id, e := range t.arena.All() {
		if t.teacher.IsMember(u + e) {
			row.Set(id)
		}
	}

	t.index[u] = len(t.prefixes)
	t.prefixes = append(t.prefixes, u)
	t.rows = append(t.rows, row)
	return true
}

// addSuffix interns e (if new) and extends every existing row with the
// answer for u·e — spec.md §4.6's insertSuffix.
func (t *rowTable) addSuffix(e string) {
	id := t.arena.Intern(e)
	for i, u := range t.prefixes {
		if t.teacher.IsMember(u + e) {
			t.rows[i].Set(id)
		}
	}
}

// syncSuffixes catches up rows for any suffixes interned by the other
// table sharing this Arena since this table's rows were last computed —
// needed because Main and Extended share one Arena but insert suffixes
// independently.
func (t *rowTable) syncSuffixes() {
	for id, e := range t.arena.All() {
		for i, u := range t.prefixes {
			if !t.rows[i].Has(id) && t.teacher.IsMember(u+e) {
				t.rows[i].Set(id)
			}
		}
	}
}

// MainTable is the observation table's U component: a prefix set closed
// under the learner's insertion operations, tracking which of its rows are
// "basic" (join-prime under row inclusion, spec.md §4.6).
type MainTable struct {
	*rowTable

	// basicOrder lists U_basic in insertion order; basic reports membership.
	basicOrder []string
	basic      map[string]bool
}

// NewMainTable returns a MainTable sharing arena and teacher with its
// ExtendedTable sibling, with ε already inserted and marked basic.
func NewMainTable(teacher mat.MAT, alphabet []string, arena *Arena) *MainTable {
	t := &MainTable{
		rowTable: newRowTable(teacher, alphabet, arena),
		basic:    map[string]bool{},
	}
	t.InsertPrefix("")
	return t
}

// InsertPrefix inserts u if new, then runs the basic-prefix maintenance
// protocol of spec.md §4.6.
func (t *MainTable) InsertPrefix(u string) {
	if !t.insert(u) {
		return
	}
	t.updateBasic(u)
}

// InsertSuffix adds e to E, extending every row in this table; callers must
// also call the sibling ExtendedTable's InsertSuffix to keep both tables in
// sync with the shared Arena, then re-run basic-prefix maintenance since
// row inclusion can change as rows grow.
func (t *MainTable) InsertSuffix(e string) {
	t.addSuffix(e)
	t.recomputeBasic()
}

// updateBasic applies spec.md §4.6's basic-prefix maintenance protocol for
// the single newly inserted prefix u.
func (t *MainTable) updateBasic(u string) {
	row, _ := t.row(u)

	if equiv, ok := t.findEquivalentBasic(row); ok {
		if len(u) < len(equiv) || (len(u) == len(equiv) && u < equiv) {
			t.demote(equiv)
			t.promote(u)
		}
		t.sweepDemotions()
		return
	}

	if !t.isCoveredRow(row) {
		t.promote(u)
	}
	t.sweepDemotions()
}

// recomputeBasic re-derives U_basic from scratch: a row is basic iff it is
// not a union of the other basic rows' contributions, the join-prime
// definition of spec.md §4.6. Used after a suffix insertion changes rows.
func (t *MainTable) recomputeBasic() {
	candidates := append([]string(nil), t.basicOrder...)
	for _, u := range t.prefixes {
		if !t.basic[u] {
			candidates = append(candidates, u)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) < len(candidates[j])
		}
		return candidates[i] < candidates[j]
	})

	t.basic = map[string]bool{}
	t.basicOrder = nil
	for _, u := range candidates {
		row, _ := t.row(u)
		if !t.isCoveredRow(row) {
			t.promote(u)
		}
	}
	t.sweepDemotions()
}

// promote marks u as basic.
func (t *MainTable) promote(u string) {
	if t.basic[u] {
		return
	}
	t.basic[u] = true
	t.basicOrder = append(t.basicOrder, u)
}

// demote removes u from U_basic.
func (t *MainTable) demote(u string) {
	if !t.basic[u] {
		return
	}
	delete(t.basic, u)
	for i, v := range t.basicOrder {
		if v == u {
			t.basicOrder = append(t.basicOrder[:i], t.basicOrder[i+1:]...)
			break
		}
	}
}

// sweepDemotions demotes any basic prefix whose row has become coverable by
// the union of the other basic prefixes' rows (spec.md §4.6: "sweep
// existing basic prefixes and demote any that became covered").
func (t *MainTable) sweepDemotions() {
	for {
		demoted := ""
		for _, u := range t.basicOrder {
			row, _ := t.row(u)
			if t.isCoveredByOthers(u, row) {
				demoted = u
				break
			}
		}
		if demoted == "" {
			return
		}
		t.demote(demoted)
	}
}

// isCoveredByOthers reports whether row is a union of basic rows other than
// u's own.
func (t *MainTable) isCoveredByOthers(u string, row Bitset) bool {
	union := Bitset{}
	for _, b := range t.basicOrder {
		if b == u {
			continue
		}
		br, _ := t.row(b)
		if br.IsSubsetOf(row) {
			union = union.Union(br)
		}
	}
	return union.Equal(row)
}

// isCoveredRow reports whether row equals the union of some collection of
// current basic rows that are each a subset of it — spec.md §4.6's
// isCovered, parameterized over a row directly so it can check prefixes
// not yet inserted (the completeness check calls it this way).
func (t *MainTable) isCoveredRow(row Bitset) bool {
	union := Bitset{}
	for _, b := range t.basicOrder {
		br, _ := t.row(b)
		if br.IsSubsetOf(row) {
			union = union.Union(br)
		}
	}
	return union.Equal(row)
}

// IsCovered reports whether u (already in U) is covered by U_basic.
func (t *MainTable) IsCovered(u string) bool {
	row, ok := t.row(u)
	if !ok {
		return false
	}
	return t.isCoveredRow(row)
}

// findEquivalentBasic returns a basic prefix whose row exactly equals row,
// if any (spec.md §4.6's findEquivalentBasic).
func (t *MainTable) findEquivalentBasic(row Bitset) (string, bool) {
	for _, b := range t.basicOrder {
		br, _ := t.row(b)
		if br.Equal(row) {
			return b, true
		}
	}
	return "", false
}

// Basic returns U_basic in insertion order.
func (t *MainTable) Basic() []string {
	return append([]string(nil), t.basicOrder...)
}

// IsBasic reports whether u is currently in U_basic.
func (t *MainTable) IsBasic(u string) bool {
	return t.basic[u]
}

// ExtendedTable is the observation table's U·Σ component (spec.md §4.6):
// inserting u here also inserts u·a for every a ∈ Σ.
type ExtendedTable struct {
	*rowTable
}

// NewExtendedTable returns an ExtendedTable sharing arena and teacher with
// its MainTable sibling.
func NewExtendedTable(teacher mat.MAT, alphabet []string, arena *Arena) *ExtendedTable {
	return &ExtendedTable{rowTable: newRowTable(teacher, alphabet, arena)}
}

// InsertPrefix inserts u (if new) and, per the Extended variant of
// spec.md §4.6, also inserts u·a for every a ∈ Σ.
func (t *ExtendedTable) InsertPrefix(u string) {
	t.insert(u)
	for _, a := range t.alphabet {
		t.insert(u + a)
	}
}

// InsertSuffix adds e to E, extending every existing row.
func (t *ExtendedTable) InsertSuffix(e string) {
	t.addSuffix(e)
}
