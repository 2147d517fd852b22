package main

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/baldhumanity/neat-innovation/neat"
	"github.com/baldhumanity/neat-innovation/neat/nn"
	"github.com/spf13/cobra"
)

const verifyTolerance = 1e-9

type verifyOptions struct {
	genomes   int
	mutations int
	samples   int
}

func newVerifyCmd() *cobra.Command {
	opts := verifyOptions{}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare the depth-ordered forward pass with a topological evaluation",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			return runVerify(cmd.OutOrStdout(), config, seed, opts)
		},
	}
	cmd.Flags().IntVarP(&opts.genomes, "genomes", "n", 100, "number of genomes to check")
	cmd.Flags().IntVarP(&opts.mutations, "mutations", "m", 20, "split and link attempts per genome")
	cmd.Flags().IntVar(&opts.samples, "samples", 8, "random input vectors per genome")
	return cmd
}

func runVerify(out io.Writer, config *neat.Config, seed int64, opts verifyOptions) error {
	reg, err := neat.NewRegistryFromConfig(config)
	if err != nil {
		return err
	}
	reg.SetLogger(logger)
	rng := rand.New(rand.NewSource(seed))

	mismatched := 0
	for i := 0; i < opts.genomes; i++ {
		g := neat.NewGenome(reg, true, rng)
		for m := 0; m < opts.mutations; m++ {
			g.SplitRandomConnection(rng)
			g.AddRandomConnection(rng)
		}

		ok, err := compareForward(g, rng, opts.samples)
		if err != nil {
			return err
		}
		if !ok {
			mismatched++
			logger.Warn("forward passes disagree", "genome", g.ID(), "connections", g.Len(), "nodes", g.NodeCount())
		}
	}

	fmt.Fprintf(out, "Checked %d genomes (%d nodes, %d innovations): %d mismatched\n",
		opts.genomes, reg.NodeCount(), reg.InnovationCount(), mismatched)
	if mismatched > 0 {
		return fmt.Errorf("%d of %d genomes evaluate differently by depth and by topology", mismatched, opts.genomes)
	}
	return nil
}

// compareForward evaluates g both ways on random inputs in [-1, 1].
func compareForward(g *neat.Genome, rng *rand.Rand, samples int) (bool, error) {
	net, err := nn.CreateFeedForwardNetwork(g)
	if err != nil {
		return false, fmt.Errorf("failed to create network for genome %s: %w", g.ID(), err)
	}

	inputs := make([]float64, g.Registry().InputCount())
	for s := 0; s < samples; s++ {
		for i := range inputs {
			inputs[i] = rng.Float64()*2 - 1
		}
		byDepth, err := g.Forward(inputs)
		if err != nil {
			return false, err
		}
		byTopology, err := net.Activate(inputs)
		if err != nil {
			return false, err
		}
		for i := range byDepth {
			if math.Abs(byDepth[i]-byTopology[i]) > verifyTolerance {
				return false, nil
			}
		}
	}
	return true, nil
}
