// Package pump implements the pumping-lemma sampler of spec.md §6: an
// external collaborator used to test whether a candidate language behaves
// regularly over a given five-way word split, independent of the NL*
// learner itself.
package pump

import "strings"

// Split is a five-way decomposition w1·w2·w3·w4·w5 of a word, the shape the
// pumping lemma for regular languages operates over.
type Split struct {
	W1, W2, W3, W4, W5 string
}

// Word returns the split reassembled with w2 and w4 each repeated n times.
func (s Split) Word(n int) string {
	var sb strings.Builder
	sb.WriteString(s.W1)
	for i := 0; i < n; i++ {
		sb.WriteString(s.W2)
	}
	sb.WriteString(s.W3)
	for i := 0; i < n; i++ {
		sb.WriteString(s.W4)
	}
	sb.WriteString(s.W5)
	return sb.String()
}

// MembershipFunc answers whether a word belongs to the language under test.
// Satisfied by a grammar MAT's isMember or a plain automaton acceptance
// check.
type MembershipFunc func(word string) bool

// Pumper tests spec.md §6's pumping-lemma property: given a split, it holds
// iff word i = w1·w2^i·w3·w4^i·w5 is a member for every i in [0, tests).
type Pumper struct {
	isMember MembershipFunc
}

// New returns a Pumper that answers membership via isMember.
func New(isMember MembershipFunc) Pumper {
	return Pumper{isMember: isMember}
}

// Test reports whether split pumps correctly for tests repetitions,
// i.e. word(0)..word(tests-1) are all members. Used for regularity
// testing, not by the learner (spec.md §1's explicit out-of-scope note for
// the core, and §6's collaborator contract).
func (p Pumper) Test(split Split, tests int) bool {
	for i := 0; i < tests; i++ {
		if !p.isMember(split.Word(i)) {
			return false
		}
	}
	return true
}
