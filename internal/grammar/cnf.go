package grammar

import (
	"sort"
	"strings"

	"github.com/dekarrin/nlstar/internal/util"
)

// ToCNF normalizes g in place into Chomsky Normal Form via the five-step
// pipeline of spec.md §4.3, run in this exact order. Ported directly from
// cfg.rs's to_cnf and its five helper passes.
func (g *Grammar) ToCNF() {
	g.eliminateLongRules()
	g.removeEpsilonRules()
	g.removeChainRules()
	g.eliminateUnproductiveRules()
	g.removeUnreachableRules()
	g.replaceTerminalsWithNonTerminals()
}

// eliminateLongRules is CNF step 1: productions longer than two symbols are
// split into a chain of binary productions through fresh non-terminals.
func (g *Grammar) eliminateLongRules() {
	newProductions := map[string][]Production{}

	for nt, prods := range g.Productions {
		for _, prod := range prods {
			if len(prod.Elements) <= 2 {
				newProductions[nt] = append(newProductions[nt], prod)
				continue
			}

			elements := append([]string(nil), prod.Elements...)
			current := nt
			for len(elements) > 2 {
				first := elements[0]
				elements = elements[1:]
				next := g.nextNonTerminal()
				newProductions[current] = append(newProductions[current], Production{Elements: []string{first, next}})
				current = next
			}
			newProductions[current] = append(newProductions[current], Production{Elements: elements})
		}
	}

	g.Productions = newProductions
}

// removeEpsilonRules is CNF step 2: for every non-terminal with an
// ε-production, every production mentioning it gains a variant with that
// occurrence deleted (for every subset of its occurrences), and then
// ε-productions are dropped from every non-start non-terminal.
func (g *Grammar) removeEpsilonRules() {
	epsNTs := util.NewStringSet()
	for nt, prods := range g.Productions {
		for _, p := range prods {
			if p.IsEpsilon() {
				epsNTs.Add(nt)
				break
			}
		}
	}

	newProductions := map[string][]Production{}
	for nt, prods := range g.Productions {
		seen := map[string]bool{}
		add := func(elements []string) {
			if len(elements) == 0 && nt != g.Start {
				return
			}
			key := strings.Join(elements, "\x00")
			if seen[key] {
				return
			}
			seen[key] = true
			newProductions[nt] = append(newProductions[nt], Production{Elements: elements})
		}

		for _, prod := range prods {
			if !prod.IsEpsilon() {
				add(prod.Elements)
			}

			var nullablePositions []int
			for i, sym := range prod.Elements {
				if epsNTs.Has(sym) {
					nullablePositions = append(nullablePositions, i)
				}
			}

			// Every non-empty subset of the positions occupied by nullable
			// symbols gets its own variant with just those positions
			// deleted. A production like A -> A A (A nullable) must
			// therefore produce both the single-occurrence-deleted
			// variants and the both-occurrences-deleted variant, not just
			// one arbitrary occurrence removed.
			n := len(nullablePositions)
			for mask := 1; mask < (1 << n); mask++ {
				removeAt := make([]bool, len(prod.Elements))
				for bit := 0; bit < n; bit++ {
					if mask&(1<<bit) != 0 {
						removeAt[nullablePositions[bit]] = true
					}
				}
				var without []string
				for i, sym := range prod.Elements {
					if !removeAt[i] {
						without = append(without, sym)
					}
				}
				add(without)
			}
		}
	}
	g.Productions = newProductions

	// A non-terminal that produced only ε is now empty; drop it, unless it
	// is the start symbol (S -> ε is explicitly permitted, spec.md §3).
	for _, nt := range epsNTs.Elements() {
		if nt == g.Start {
			continue
		}
		if len(g.Productions[nt]) == 0 {
			delete(g.Productions, nt)
			g.NonTerminals.Remove(nt)
		}
	}
}

// removeChainRules is CNF step 3: chain productions A -> B (B a
// non-terminal) are replaced by every non-chain production reachable
// through the reflexive-transitive closure of the chain relation, then
// productions are deduplicated.
func (g *Grammar) removeChainRules() {
	isChain := func(p Production) (string, bool) {
		if len(p.Elements) == 1 && g.NonTerminals.Has(p.Elements[0]) {
			return p.Elements[0], true
		}
		return "", false
	}

	chainsOf := map[string][]string{}
	for nt, prods := range g.Productions {
		for _, p := range prods {
			if target, ok := isChain(p); ok {
				chainsOf[nt] = append(chainsOf[nt], target)
			}
		}
	}

	closure := map[string][]string{}
	for _, nt := range g.NonTerminals.Elements() {
		seen := util.NewStringSet()
		queue := append([]string(nil), chainsOf[nt]...)
		for _, q := range queue {
			seen.Add(q)
		}
		for i := 0; i < len(queue); i++ {
			for _, next := range chainsOf[queue[i]] {
				if !seen.Has(next) {
					seen.Add(next)
					queue = append(queue, next)
				}
			}
		}
		closure[nt] = queue
	}

	newProductions := map[string][]Production{}
	for _, nt := range g.NonTerminals.Elements() {
		var prodSet []Production
		for _, p := range g.Productions[nt] {
			if _, ok := isChain(p); !ok {
				prodSet = append(prodSet, p)
			}
		}
		for _, closureNT := range closure[nt] {
			for _, p := range g.Productions[closureNT] {
				if _, ok := isChain(p); !ok {
					prodSet = append(prodSet, p)
				}
			}
		}
		if len(prodSet) > 0 {
			newProductions[nt] = prodSet
		}
	}
	g.Productions = newProductions

	for nt, prods := range g.Productions {
		sort.Slice(prods, func(i, j int) bool {
			return strings.Join(prods[i].Elements, " ") < strings.Join(prods[j].Elements, " ")
		})
		deduped := prods[:0]
		for i, p := range prods {
			if i == 0 || !p.Equal(prods[i-1]) {
				deduped = append(deduped, p)
			}
		}
		g.Productions[nt] = deduped
	}
}

// eliminateUnproductiveRules is CNF step 4a: compute, to fixpoint, the set
// of non-terminals able to derive some terminal string, and drop any
// production mentioning a non-terminal outside that set.
func (g *Grammar) eliminateUnproductiveRules() {
	productive := g.findProductiveNonTerminals()

	for nt, prods := range g.Productions {
		kept := prods[:0]
		for _, p := range prods {
			ok := true
			for _, sym := range p.Elements {
				if !g.Terminals.Has(sym) && !productive.Has(sym) {
					ok = false
					break
				}
			}
			if ok {
				kept = append(kept, p)
			}
		}
		g.Productions[nt] = kept
	}

	for nt, prods := range g.Productions {
		if len(prods) == 0 {
			delete(g.Productions, nt)
		}
	}
	for _, nt := range g.NonTerminals.Elements() {
		if !productive.Has(nt) {
			g.NonTerminals.Remove(nt)
		}
	}
}

func (g *Grammar) findProductiveNonTerminals() util.StringSet {
	productive := util.NewStringSet()
	changed := true
	for changed {
		changed = false
		for nt, prods := range g.Productions {
			if productive.Has(nt) {
				continue
			}
			for _, p := range prods {
				allOK := true
				for _, sym := range p.Elements {
					if !g.Terminals.Has(sym) && !productive.Has(sym) {
						allOK = false
						break
					}
				}
				if allOK {
					productive.Add(nt)
					changed = true
					break
				}
			}
		}
	}
	return productive
}

// removeUnreachableRules is CNF step 4b: compute the non-terminals
// reachable from Start and drop productions whose LHS is unreachable.
func (g *Grammar) removeUnreachableRules() {
	reachable := util.NewStringSet()
	stack := []string{g.Start}
	for len(stack) > 0 {
		nt := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reachable.Has(nt) {
			continue
		}
		reachable.Add(nt)
		for _, p := range g.Productions[nt] {
			for _, sym := range p.Elements {
				if g.NonTerminals.Has(sym) && !reachable.Has(sym) {
					stack = append(stack, sym)
				}
			}
		}
	}

	for nt := range g.Productions {
		if !reachable.Has(nt) {
			delete(g.Productions, nt)
		}
	}
	for _, nt := range g.NonTerminals.Elements() {
		if !reachable.Has(nt) {
			g.NonTerminals.Remove(nt)
		}
	}
}

// replaceTerminalsWithNonTerminals is CNF step 5: in every production of
// length >= 2, each terminal occurrence is replaced by a fresh non-terminal
// G_t (one per distinct terminal t), with G_t -> t added once.
func (g *Grammar) replaceTerminalsWithNonTerminals() {
	newProductions := map[string][]Production{}
	madeFor := map[string]string{}

	for nt, prods := range g.Productions {
		for _, prod := range prods {
			if len(prod.Elements) < 2 {
				newProductions[nt] = append(newProductions[nt], prod)
				continue
			}

			newElements := make([]string, len(prod.Elements))
			for i, sym := range prod.Elements {
				if g.Terminals.Has(sym) {
					ntFor, ok := madeFor[sym]
					if !ok {
						ntFor = "G" + sym
						madeFor[sym] = ntFor
						g.NonTerminals.Add(ntFor)
						newProductions[ntFor] = []Production{{Elements: []string{sym}}}
					}
					newElements[i] = ntFor
				} else {
					newElements[i] = sym
				}
			}
			newProductions[nt] = append(newProductions[nt], Production{Elements: newElements})
		}
	}

	g.Productions = newProductions
}
