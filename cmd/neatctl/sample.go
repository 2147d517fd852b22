package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/baldhumanity/neat-innovation/neat"
	"github.com/spf13/cobra"
)

// XOR inputs and expected outputs.
var xorInputs = [][]float64{
	{0.0, 0.0},
	{0.0, 1.0},
	{1.0, 0.0},
	{1.0, 1.0},
}
var xorOutputs = []float64{0.0, 1.0, 1.0, 0.0}

type sampleOptions struct {
	genomes    int
	mutations  int
	activation string
}

func newSampleCmd() *cobra.Command {
	opts := sampleOptions{}
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Mutate a batch of genomes, score them on XOR, speciate and cross the two fittest",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			return runSample(cmd.OutOrStdout(), config, seed, opts)
		},
	}
	cmd.Flags().IntVarP(&opts.genomes, "genomes", "n", 50, "number of genomes to build")
	cmd.Flags().IntVarP(&opts.mutations, "mutations", "m", 10, "structural mutation rounds per genome")
	cmd.Flags().StringVar(&opts.activation, "activation", "sigmoid", "activation applied to outputs before scoring")
	return cmd
}

// xorFitness scores a genome as (4 - sum of squared errors)^2, clamped at 0.
func xorFitness(g *neat.Genome, activate neat.ActivationType) (float64, error) {
	sumSquaredError := 0.0
	for i, inputs := range xorInputs {
		outputs, err := g.Forward(inputs)
		if err != nil {
			return 0, fmt.Errorf("genome %s: %w", g.ID(), err)
		}
		diff := activate(outputs[0]) - xorOutputs[i]
		sumSquaredError += diff * diff
	}
	base := max(0, 4.0-sumSquaredError)
	return base * base, nil
}

// mutate applies up to rounds structural mutations, gated by the registry's
// node and connection chances.
func mutate(g *neat.Genome, rng *rand.Rand, rounds int) (splits, links int) {
	params := g.Registry().Params
	for i := 0; i < rounds; i++ {
		if rng.Float64() < params.NewNodeChance && g.SplitRandomConnection(rng) {
			splits++
		}
		if rng.Float64() < params.NewConnectionChance && g.AddRandomConnection(rng) {
			links++
		}
	}
	return splits, links
}

func runSample(out io.Writer, config *neat.Config, seed int64, opts sampleOptions) error {
	if config.Neat.NumInputs != 2 || config.Neat.NumOutputs < 1 {
		return errors.New("sample scores XOR and needs num_inputs = 2 and num_outputs >= 1")
	}
	if opts.genomes < 2 {
		return errors.New("sample needs at least two genomes")
	}
	activate, err := neat.GetActivation(opts.activation)
	if err != nil {
		return err
	}

	reg, err := neat.NewRegistryFromConfig(config)
	if err != nil {
		return err
	}
	reg.SetLogger(logger)
	rng := rand.New(rand.NewSource(seed))

	genomes := make([]*neat.Genome, 0, opts.genomes)
	for i := 0; i < opts.genomes; i++ {
		g := neat.NewGenome(reg, true, rng)
		splits, links := mutate(g, rng, opts.mutations)
		if g.Fitness, err = xorFitness(g, activate); err != nil {
			return err
		}
		logger.Debug("genome evaluated",
			"genome", g.ID(),
			"splits", splits,
			"links", links,
			"fitness", g.Fitness)
		genomes = append(genomes, g)
	}

	for _, g := range genomes {
		reg.AddGenome(g)
	}

	sort.SliceStable(genomes, func(i, j int) bool {
		return genomes[i].Fitness > genomes[j].Fitness
	})
	best, second := genomes[0], genomes[1]
	child := best.Crossover(second, rng)
	if child.Fitness, err = xorFitness(child, activate); err != nil {
		return err
	}

	fmt.Fprintf(out, "Nodes: %d, Innovations: %d\n", reg.NodeCount(), reg.InnovationCount())
	fmt.Fprintf(out, "Species: %d\n", len(reg.Species()))
	for i, s := range reg.Species() {
		fitnesses := s.Fitnesses()
		fmt.Fprintf(out, "  species %d: members=%d mean=%.4f max=%.4f\n",
			i, s.Len(), neat.Mean(fitnesses), neat.MaxFloat(fitnesses))
	}
	fmt.Fprintf(out, "Best:   %s\n", best)
	fmt.Fprintf(out, "Second: %s\n", second)
	fmt.Fprintf(out, "Child:  %s\n", child)

	logger.Info("sample complete",
		"genomes", len(genomes),
		"species", len(reg.Species()),
		"best_fitness", best.Fitness,
		"child_fitness", child.Fitness)
	return nil
}
