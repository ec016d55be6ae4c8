package automaton

import (
	"math/rand"
)

// Generator produces random words accepted by an automaton, biased by two
// tunable probabilities, per spec.md §4.2. Grounded directly in
// original_source/src/automata/str_generator.rs (StringGenerator): the
// three-phase algorithm (build a state chain, handle the ε corner case,
// fill segments between consecutive chain states) is a straight port, with
// rand.Rand substituted for rand::ThreadRng so the generator is seedable
// per spec.md §5 ("implementations should make seedable for reproducible
// tests") rather than drawing from a process-wide source.
type Generator struct {
	automaton               Automaton
	reach                   Reachability
	rng                     *rand.Rand
	finiteStateProbability  float64
	completeWordProbability float64
}

// NewGenerator builds a Generator over automaton using rng for all random
// choices. finiteStateProbability and completeWordProbability correspond to
// FINITE_STATE_PROBABILITY and COMPLETE_WORD_PROBABILITY in spec.md §6.
func NewGenerator(automaton Automaton, rng *rand.Rand, finiteStateProbability, completeWordProbability float64) *Generator {
	return &Generator{
		automaton:               automaton,
		reach:                   BuildReachability(automaton),
		rng:                     rng,
		finiteStateProbability:  finiteStateProbability,
		completeWordProbability: completeWordProbability,
	}
}

// Generate produces count random words accepted by the automaton, or no
// words at all if the automaton is empty (spec.md §4.2's failure case).
func (g *Generator) Generate(count int) []string {
	if g.automaton.Empty() {
		return nil
	}

	words := make([]string, 0, count)
	for i := 0; i < count; i++ {
		states := g.stateChain()
		words = append(words, g.fillSegments(states))
	}
	return words
}

// stateChain builds the chain of states described in spec.md §4.2 step 1:
// start at q0; halt at an accepting state with probability
// finiteStateProbability, halt immediately if stuck, otherwise walk to a
// uniformly chosen state in the outgoing-reachable set.
func (g *Generator) stateChain() []int {
	states := []int{Start}
	current := Start

	for {
		if len(g.reach.Outgoing[current]) == 0 {
			break
		}
		if g.automaton.IsAccepting(current) && g.rng.Float64() < g.finiteStateProbability {
			break
		}

		next := g.reach.Outgoing[current][g.rng.Intn(len(g.reach.Outgoing[current]))]
		states = append(states, next)
		current = next
	}

	// ε corner case: chain of only the start state.
	if len(states) == 1 && current == Start {
		return []int{Start, Start}
	}

	return states
}

// fillSegments runs the bounded walk of spec.md §4.2 steps 2-4 between each
// consecutive pair of states in the chain and concatenates the results.
func (g *Generator) fillSegments(states []int) string {
	if len(states) == 2 && states[0] == Start && states[1] == Start {
		// ε corner case: the chain never left the start state.
		return ""
	}

	var word string
	for i := 0; i+1 < len(states); i++ {
		word += g.segment(states[i], states[i+1])
	}
	return word
}

// segment performs a bounded walk from "from" that stays within states
// reachable to "to" (the incoming-to-"to" set plus "to" itself),
// terminating early at "to" with probability completeWordProbability once
// the accumulated segment is non-empty.
func (g *Generator) segment(from, to int) string {
	type frame struct {
		prefix string
		state  int
	}
	queue := []frame{{"", from}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		var outgoing []frame
		for j := range g.automaton.trans[cur.state] {
			if !g.reach.Incoming[to][j] && j != to {
				continue
			}
			for _, label := range g.automaton.trans[cur.state][j].Elements() {
				outgoing = append(outgoing, frame{cur.prefix + label, j})
			}
		}

		stopHere := len(outgoing) == 0
		if cur.state == to && cur.prefix != "" && g.rng.Float64() < g.completeWordProbability {
			stopHere = true
		}
		if stopHere {
			return cur.prefix
		}

		queue = append(queue, outgoing...)
	}

	panic("segment: exhausted search without reaching target — unreachable per construction")
}
