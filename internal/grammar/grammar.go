// Package grammar implements the context-free grammar model of spec.md §3
// and its textual forms (spec.md §6), the five-step CNF pipeline and the
// prefix/invert transforms of spec.md §4.3 (in cnf.go and prefix.go), and a
// CYK-based membership procedure for CNF grammars (in cyk.go) that backs the
// grammar MAT of spec.md §4.4.
//
// Grounded in original_source/src/grammars/cfg.rs (the CFG struct and its
// to_cnf/to_prefix_grammar/to_bnf methods), restructured into Go idiom the
// way the teacher's parser packages structure grammar-like models: value
// productions, a map from non-terminal to its production list, and
// Parse/MustParse constructors in the style of
// internal/ictiobus/grammar/item.go.
package grammar

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dekarrin/nlstar/internal/util"
	"github.com/dekarrin/rosed"
)

// Epsilon denotes the empty production body.
const Epsilon = ""

// Production is one alternative for a non-terminal: a sequence of symbols
// (terminals and non-terminals, as plain strings), or the empty sequence for
// an ε-production.
type Production struct {
	Elements []string
}

// IsEpsilon reports whether p is the empty production.
func (p Production) IsEpsilon() bool { return len(p.Elements) == 0 }

// Equal reports whether p and o have identical element sequences.
func (p Production) Equal(o Production) bool {
	if len(p.Elements) != len(o.Elements) {
		return false
	}
	for i := range p.Elements {
		if p.Elements[i] != o.Elements[i] {
			return false
		}
	}
	return true
}

func (p Production) String() string {
	if p.IsEpsilon() {
		return "ε"
	}
	return strings.Join(p.Elements, " ")
}

// Grammar is a context-free grammar G = (N, T, P, S). Productions maps each
// non-terminal to its (ordered, possibly duplicated until deduplication
// passes run) list of alternatives.
type Grammar struct {
	NonTerminals util.StringSet
	Terminals    util.StringSet
	Productions  map[string][]Production
	Start        string

	// freshCounter backs nextNonTerminal, the monotonic counter the CNF
	// long-rule-elimination pass uses to mint fresh non-terminal names.
	freshCounter int
}

// New returns an empty Grammar with the given start symbol.
func New(start string) *Grammar {
	return &Grammar{
		NonTerminals: util.NewStringSet(),
		Terminals:    util.NewStringSet(),
		Productions:  map[string][]Production{},
		Start:        start,
	}
}

// AddProduction appends production as an alternative for nt, registering nt
// as a non-terminal if it isn't already one.
func (g *Grammar) AddProduction(nt string, production Production) {
	g.NonTerminals.Add(nt)
	g.Productions[nt] = append(g.Productions[nt], production)
}

// isUpper/isLower classify the single-character symbols spec.md §6's
// textual form uses to distinguish non-terminals from terminals.
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }

// Parse parses lines in the textual form of spec.md §6: "LHS -> rhs1 |
// rhs2 | …", LHS a single upper-case letter, each rhs a concatenation of
// single-character terminals (lower-case) and non-terminals (upper-case)
// with spaces ignored. The first LHS seen becomes the start symbol.
// Malformed lines are skipped with a diagnostic written to diagnostics
// (spec.md §7: malformed grammar input is recoverable); pass nil to use
// os.Stderr.
func Parse(lines []string, diagnostics *os.File) *Grammar {
	if diagnostics == nil {
		diagnostics = os.Stderr
	}

	g := New("")

	for _, line := range lines {
		parts := strings.SplitN(line, "->", 2)
		if len(parts) != 2 {
			fmt.Fprintf(diagnostics, "malformed grammar line (missing '->'): %q\n", line)
			continue
		}

		lhs := strings.TrimSpace(parts[0])
		if len(lhs) != 1 || !isUpper(rune(lhs[0])) {
			fmt.Fprintf(diagnostics, "malformed grammar line (LHS must be a single upper-case letter): %q\n", line)
			continue
		}

		alts := strings.Split(parts[1], "|")
		malformed := false
		for _, alt := range alts {
			for _, r := range strings.TrimSpace(alt) {
				if !isUpper(r) && !isLower(r) && r != ' ' && r != '\t' {
					fmt.Fprintf(diagnostics, "malformed grammar line (unexpected symbol %q): %q\n", string(r), line)
					malformed = true
				}
			}
		}
		if malformed {
			continue
		}

		if g.Start == "" {
			g.Start = lhs
		}
		g.NonTerminals.Add(lhs)

		for _, alt := range alts {
			var elements []string
			for _, r := range strings.TrimSpace(alt) {
				sym := string(r)
				switch {
				case isUpper(r):
					g.NonTerminals.Add(sym)
					elements = append(elements, sym)
				case isLower(r):
					g.Terminals.Add(sym)
					elements = append(elements, sym)
				case r == ' ' || r == '\t':
					// spaces are ignored per spec.md §6
				}
			}
			g.AddProduction(lhs, Production{Elements: elements})
		}
	}

	return g
}

// MustParse parses lines and panics if the result has no start symbol (i.e.
// no line parsed successfully). Intended for tests and embedded literal
// grammars, matching the teacher's MustParse* convention.
func MustParse(lines []string) *Grammar {
	g := Parse(lines, nil)
	if g.Start == "" {
		panic("grammar.MustParse: no valid production lines")
	}
	return g
}

// nextNonTerminal mints a fresh non-terminal name not already in use, using
// a shared prefix and a monotonic counter (spec.md §4.3 step 1: "e.g. S0,
// S1, …").
func (g *Grammar) nextNonTerminal() string {
	for {
		name := fmt.Sprintf("S%d", g.freshCounter)
		g.freshCounter++
		if !g.NonTerminals.Has(name) {
			g.NonTerminals.Add(name)
			return name
		}
	}
}

// PrettyString renders g in the "LHS -> rhs1 | rhs2" textual form, start
// symbol first, the rest of the non-terminals alphabetized — the inverse of
// Parse's input shape, following cfg.rs's to_pretty_string.
func (g *Grammar) PrettyString() string {
	var sb strings.Builder

	writeNT := func(nt string) {
		prods := g.Productions[nt]
		parts := make([]string, len(prods))
		for i, p := range prods {
			parts[i] = p.String()
		}
		fmt.Fprintf(&sb, "%s -> %s\n", nt, strings.Join(parts, " | "))
	}

	if _, ok := g.Productions[g.Start]; ok {
		writeNT(g.Start)
	}

	rest := make([]string, 0, g.NonTerminals.Len())
	for _, nt := range g.NonTerminals.Elements() {
		if nt != g.Start {
			rest = append(rest, nt)
		}
	}
	sort.Strings(rest)
	for _, nt := range rest {
		if _, ok := g.Productions[nt]; ok {
			writeNT(nt)
		}
	}

	return sb.String()
}

// BNF renders g in BNF form: "<NT> ::= <X> 'a' <Y> | …", alternatives
// sorted lexicographically per non-terminal, start symbol first and the
// rest alphabetized — following cfg.rs's to_bnf/format_productions_to_bnf
// exactly (spec.md §6 and SPEC_FULL.md §4.3's resolved rendering detail).
func (g *Grammar) BNF() string {
	var sb strings.Builder

	format := func(nt string) string {
		prods := g.Productions[nt]
		alts := make([]string, 0, len(prods))
		for _, p := range prods {
			syms := make([]string, len(p.Elements))
			for i, sym := range p.Elements {
				if g.NonTerminals.Has(sym) {
					syms[i] = fmt.Sprintf("<%s>", sym)
				} else {
					syms[i] = fmt.Sprintf("'%s'", sym)
				}
			}
			alts = append(alts, strings.Join(syms, " "))
		}
		sort.Strings(alts)
		return fmt.Sprintf("<%s> ::= %s\n", nt, strings.Join(alts, " | "))
	}

	if _, ok := g.Productions[g.Start]; ok {
		sb.WriteString(format(g.Start))
	}

	rest := make([]string, 0, g.NonTerminals.Len())
	for _, nt := range g.NonTerminals.Elements() {
		if nt != g.Start {
			rest = append(rest, nt)
		}
	}
	sort.Strings(rest)
	for _, nt := range rest {
		if _, ok := g.Productions[nt]; ok {
			sb.WriteString(format(nt))
		}
	}

	return sb.String()
}

// String renders g via PrettyString, so Grammar satisfies fmt.Stringer the
// way the teacher's automaton/grammar types do.
func (g *Grammar) String() string { return g.PrettyString() }

// Describe renders g the way the driver prints it to an operator: the
// pretty-printed rule list, each line wrapped the way the teacher wraps all
// of its own human-facing text with rosed.Edit(...).Wrap(...).
func (g *Grammar) Describe(width int) string {
	return rosed.Edit(g.PrettyString()).Wrap(width).String()
}

// Copy returns a deep copy of g, independent of further mutation. ToCNF
// rewrites its receiver in place, so a caller that still needs the original
// grammar normalizes a Copy (as NewGrammarMAT does); the prefix/invert
// transforms build new grammars and leave their receiver unchanged —
// Grammar values are "transformed by in-place passes" only on the receiver
// the caller explicitly asked to transform (spec.md §3).
func (g *Grammar) Copy() *Grammar {
	cp := &Grammar{
		NonTerminals: g.NonTerminals.Copy().(util.StringSet),
		Terminals:    g.Terminals.Copy().(util.StringSet),
		Productions:  make(map[string][]Production, len(g.Productions)),
		Start:        g.Start,
		freshCounter: g.freshCounter,
	}
	for nt, prods := range g.Productions {
		cp.Productions[nt] = append([]Production(nil), prods...)
	}
	return cp
}
