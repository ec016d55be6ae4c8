package automaton

// Reachability is the derived, all-pairs reachability view over an
// Automaton described in spec.md §3/§4.1: the adjacency matrix raised
// through |Q|-1 compositions and summed, from which the outgoing and
// incoming (its transpose) relations are read off. Grounded directly in
// original_source/src/automata/reachability.rs, which computes the same
// matrix power sum with ndarray; this port uses plain [][]bool since the
// alphabet-bounded state counts here don't call for a matrix library.
type Reachability struct {
	Outgoing [][]int
	Incoming []map[int]bool
}

// BuildReachability computes the Reachability table for a. Rebuild whenever
// a changes; Automaton values are immutable, so a fresh Automaton means a
// fresh Reachability.
func BuildReachability(a Automaton) Reachability {
	n := a.size
	adjacency := make([][]bool, n)
	for i := range adjacency {
		adjacency[i] = make([]bool, n)
		for j := range a.trans[i] {
			if len(a.trans[i][j]) > 0 {
				adjacency[i][j] = true
			}
		}
	}

	reach := copyBoolMatrix(adjacency)
	composition := copyBoolMatrix(adjacency)
	for k := 1; k < n; k++ {
		composition = boolMatMul(composition, adjacency)
		orInto(reach, composition)
	}

	outgoing := make([][]int, n)
	incoming := make([]map[int]bool, n)
	for i := range incoming {
		incoming[i] = map[int]bool{}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if reach[i][j] {
				outgoing[i] = append(outgoing[i], j)
				incoming[j][i] = true
			}
		}
	}

	return Reachability{Outgoing: outgoing, Incoming: incoming}
}

func copyBoolMatrix(m [][]bool) [][]bool {
	out := make([][]bool, len(m))
	for i := range m {
		out[i] = make([]bool, len(m[i]))
		copy(out[i], m[i])
	}
	return out
}

func boolMatMul(a, b [][]bool) [][]bool {
	n := len(a)
	out := make([][]bool, n)
	for i := range out {
		out[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			if !a[i][k] {
				continue
			}
			for j := 0; j < n; j++ {
				if b[k][j] {
					out[i][j] = true
				}
			}
		}
	}
	return out
}

func orInto(dst, src [][]bool) {
	for i := range dst {
		for j := range dst[i] {
			if src[i][j] {
				dst[i][j] = true
			}
		}
	}
}
