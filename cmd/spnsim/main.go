// Command spnsim runs the accelerator conformance bench with a selected
// stimulus sequence and reports the verdict through its exit status.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/spnsim/datarecording"
	"github.com/sarchlab/spnsim/tb"
	"github.com/sarchlab/spnsim/tb/sequence"
)

var (
	seqName   string
	randSeed  int64
	randCount int
	tracePath string
)

var rootCmd = &cobra.Command{
	Use:   "spnsim",
	Short: "spnsim verifies the SPN crypto accelerator model against its golden model.",
	Long: `spnsim drives a stimulus sequence through the accelerator model, ` +
		`observes the responses, and scores them against an independently ` +
		`written golden model. The run passes when every transaction matches.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&seqName, "sequence", "basic",
		"stimulus sequence to run (basic|roundtrip|random|edge|corner)")
	rootCmd.Flags().Int64Var(&randSeed, "seed", 1,
		"seed for the random sequence")
	rootCmd.Flags().IntVar(&randCount, "count", sequence.DefaultRandomCount,
		"number of requests in the random sequence")
	rootCmd.Flags().StringVar(&tracePath, "trace", "",
		"record per-transaction rows into an SQLite file at this path")
}

func buildSequence() (sequence.Sequence, error) {
	switch seqName {
	case "basic":
		return sequence.NewBasic(), nil
	case "roundtrip":
		return sequence.NewRoundTrip(), nil
	case "random":
		return sequence.NewRandom(randSeed, randCount), nil
	case "edge":
		return sequence.NewEdge(), nil
	case "corner":
		return sequence.NewCorner(), nil
	default:
		return nil, fmt.Errorf("unknown sequence %q", seqName)
	}
}

func run(_ *cobra.Command, _ []string) error {
	seq, err := buildSequence()
	if err != nil {
		return err
	}

	builder := tb.MakeBuilder().WithSequence(seq)

	var recorder datarecording.DataRecorder
	if tracePath != "" {
		recorder = datarecording.New(tracePath)
		builder = builder.WithDataRecorder(recorder)
	}

	bench := builder.Build("Bench")

	err = bench.Run()
	if err != nil {
		return err
	}

	if recorder != nil {
		recorder.Close()
	}

	if bench.Passed() {
		color.Green("TEST PASSED")
		atexit.Exit(0)
	}

	color.Red("TEST FAILED")
	atexit.Exit(1)

	return nil
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
}
