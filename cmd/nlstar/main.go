/*
Nlstar runs the NL* active learner against a context-free grammar teacher.

It reads in a grammar file in the textual form of spec.md §6, normalizes it
to Chomsky Normal Form, wraps it in a grammar-backed Minimally Adequate
Teacher, and runs the learner to produce a deterministic automaton
approximating the grammar's language. The resulting automaton is printed to
stdout; pass --checkpoint to save learner state once the run finishes, and
to resume from that saved state on the next run.

Usage:

	nlstar [flags] --grammar FILE
	nlstar repl [flags] --grammar FILE

The flags are:

	-g, --grammar FILE
		Path to a CFG text file in the "LHS -> rhs1 | rhs2" line format.

	-a, --alphabet STRING
		Override Σ (defaults to the grammar's own terminals, or the
		configured/default alphabet if the grammar has no terminals).

	-c, --config FILE
		TOML file overriding the loop-budget and probability constants of
		spec.md §6. Optional; a missing file keeps the defaults.

	-k, --checkpoint FILE
		Path to save learner state to (and, if it already exists, resume
		learning from) across runs.

	-s, --seed INT
		Seed for the word-generator's PRNG, for reproducible sampling.

The "repl" subcommand starts an interactive session for ad hoc membership
queries against the loaded grammar, with line editing from
github.com/chzyer/readline. It does not offer equivalence queries.
*/
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/nlstar/internal/config"
	"github.com/dekarrin/nlstar/internal/grammar"
	"github.com/dekarrin/nlstar/internal/mat"
	"github.com/dekarrin/nlstar/internal/nl"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitInitError indicates a problem loading the grammar or config.
	ExitInitError

	// ExitLearnError indicates a problem encountered while running the
	// learner loop.
	ExitLearnError
)

var (
	returnCode     = ExitSuccess
	grammarFile    = pflag.StringP("grammar", "g", "", "CFG text file in spec.md §6's line format")
	alphabetFlag   = pflag.StringP("alphabet", "a", "", "Override Σ; defaults to the grammar's own terminals")
	configFile     = pflag.StringP("config", "c", "", "TOML file overriding loop-budget constants")
	checkpointFile = pflag.StringP("checkpoint", "k", "", "Path to save/resume learner state")
	seed           = pflag.Int64P("seed", "s", 0, "PRNG seed for the word generator")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	runID := uuid.New().String()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR [%s]: %s\n", runID, err.Error())
		returnCode = ExitInitError
		return
	}

	if *grammarFile == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --grammar is required")
		returnCode = ExitInitError
		return
	}

	data, err := os.ReadFile(*grammarFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR [%s]: reading grammar: %s\n", runID, err.Error())
		returnCode = ExitInitError
		return
	}

	g := grammar.Parse(strings.Split(string(data), "\n"), os.Stderr)
	if g.Start == "" {
		fmt.Fprintf(os.Stderr, "ERROR [%s]: grammar file contained no valid production\n", runID)
		returnCode = ExitInitError
		return
	}

	alphabet := cfg.Symbols()
	if *alphabetFlag != "" {
		cfg.Alphabet = *alphabetFlag
		alphabet = cfg.Symbols()
	} else if g.Terminals.Len() > 0 {
		alphabet = g.Terminals.Elements()
	}

	rng := rand.New(rand.NewSource(*seed))
	teacher := mat.NewGrammarMAT(g, cfg, rng)

	args := pflag.Args()
	if len(args) > 0 && args[0] == "repl" {
		runREPL(runID, teacher, g)
		return
	}

	learner := loadOrNewLearner(runID, teacher, alphabet)

	dfa := learner.Run(0)
	fmt.Printf("run %s: learned automaton over %d states\n", runID, dfa.Size())
	fmt.Println(dfa.String())

	if *checkpointFile != "" {
		cp := learner.Save(dfa)
		if err := os.WriteFile(*checkpointFile, nl.EncodeCheckpoint(cp), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR [%s]: saving checkpoint: %s\n", runID, err.Error())
			returnCode = ExitLearnError
		}
	}
}

func loadOrNewLearner(runID string, teacher mat.MAT, alphabet []string) *nl.Learner {
	if *checkpointFile == "" {
		return nl.New(teacher, alphabet)
	}

	data, err := os.ReadFile(*checkpointFile)
	if err != nil {
		return nl.New(teacher, alphabet)
	}

	cp, err := nl.DecodeCheckpoint(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARN [%s]: ignoring unreadable checkpoint: %s\n", runID, err.Error())
		return nl.New(teacher, alphabet)
	}

	return nl.RestoreLearner(cp, teacher, alphabet)
}

// runREPL starts an interactive session for ad hoc membership queries
// against g, using readline for line editing where the terminal supports
// it.
func runREPL(runID string, teacher mat.MAT, g *grammar.Grammar) {
	rl, err := readline.New(fmt.Sprintf("nlstar[%s]> ", runID[:8]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR [%s]: starting REPL: %s\n", runID, err.Error())
		returnCode = ExitInitError
		return
	}
	defer rl.Close()

	fmt.Println(g.Describe(100))
	fmt.Println("enter a word to check membership, or \"quit\" to exit")

	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}
		switch line {
		case "quit", "exit":
			return
		case "":
			continue
		default:
			fmt.Printf("%q: member=%v\n", line, teacher.IsMember(line))
		}
	}
}
