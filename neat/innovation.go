package neat

import (
	"fmt"
	"log/slog"
)

// Parameters holds the tunable evolutionary constants of a registry.
type Parameters struct {
	DisjointCoefficient    float64 // c1, weight of the mismatching-gene ratio
	WeightCoefficient      float64 // c2, weight of the average weight difference
	DisableChance          float64 // Chance a gene disabled in either parent stays disabled in the child
	CompatibilityThreshold float64 // Maximum distance for two genomes to share a species

	// Not used by the core. Exposed so drivers can read them from one place.
	WeightMutationChance float64
	NewWeightChance      float64
	NewNodeChance        float64
	NewConnectionChance  float64
}

// DefaultParameters returns the constants of the original NEAT paper.
func DefaultParameters() Parameters {
	return Parameters{
		DisjointCoefficient:    1.0,
		WeightCoefficient:      0.4,
		DisableChance:          0.75,
		CompatibilityThreshold: 3.0,
		WeightMutationChance:   0.8,
		NewWeightChance:        0.1,
		NewNodeChance:          0.03,
		NewConnectionChance:    0.05,
	}
}

// Registry is the shared evolutionary context: it owns node identity (depth)
// and edge identity (innovation number) for every genome bound to it.
//
// A Registry is not safe for concurrent use. Genomes keep a pointer to their
// registry and mutate it through AddConnection and SplitConnection.
type Registry struct {
	Params Parameters

	inputCount  int
	outputCount int
	nodeDepths  []float64    // node index -> depth, write-once
	genes       []Gene       // innovation number -> gene
	innovations map[Gene]int // gene -> innovation number
	species     []*Species
	logger      *slog.Logger
}

// NewRegistry creates a registry with inputCount input nodes at depth 0,
// outputCount output nodes at depth 1 and one bias node at depth 0, in that
// index order.
func NewRegistry(inputCount, outputCount int) *Registry {
	r := &Registry{
		Params:      DefaultParameters(),
		inputCount:  inputCount,
		outputCount: outputCount,
		nodeDepths:  make([]float64, 0, inputCount+outputCount+1),
		innovations: make(map[Gene]int),
		logger:      slog.Default(),
	}
	for i := 0; i < inputCount; i++ {
		r.RegisterNode(0)
	}
	for i := 0; i < outputCount; i++ {
		r.RegisterNode(1)
	}
	r.RegisterNode(0) // bias
	return r
}

// NewRegistryFromConfig validates config and creates a registry from it.
func NewRegistryFromConfig(config *Config) (*Registry, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid registry config: %w", err)
	}
	r := NewRegistry(config.Neat.NumInputs, config.Neat.NumOutputs)
	r.Params = config.Parameters()
	return r, nil
}

// SetLogger replaces the logger used for speciation events.
func (r *Registry) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	r.logger = logger
}

// RegisterNode appends a node with the given depth and returns its index.
func (r *Registry) RegisterNode(depth float64) int {
	r.nodeDepths = append(r.nodeDepths, depth)
	return len(r.nodeDepths) - 1
}

// RegisterNodeBetween appends a node halfway between the endpoints of gene.
func (r *Registry) RegisterNodeBetween(gene Gene) int {
	depth := (r.nodeDepths[gene.Source] + r.nodeDepths[gene.Dest]) / 2
	return r.RegisterNode(depth)
}

// RegisterConnection returns the innovation number of gene, minting a new one
// the first time the edge is seen.
func (r *Registry) RegisterConnection(gene Gene) int {
	if innovation, ok := r.innovations[gene]; ok {
		return innovation
	}
	r.genes = append(r.genes, gene)
	innovation := len(r.genes) - 1
	r.innovations[gene] = innovation
	return innovation
}

// AddGenome places g in the first species whose first member is compatible
// with it, or starts a new species. It returns the species index.
func (r *Registry) AddGenome(g *Genome) int {
	for i, s := range r.species {
		if s.Representative().IsCompatibleWith(g) {
			s.Members = append(s.Members, g)
			return i
		}
	}
	r.species = append(r.species, &Species{Members: []*Genome{g}})
	r.logger.Debug("created species",
		"species", len(r.species)-1,
		"genome", g.ID(),
		"connections", g.Len())
	return len(r.species) - 1
}

// Species returns the current species list.
func (r *Registry) Species() []*Species {
	return r.species
}

// InputCount returns the number of input nodes.
func (r *Registry) InputCount() int { return r.inputCount }

// OutputCount returns the number of output nodes.
func (r *Registry) OutputCount() int { return r.outputCount }

// InputIndex returns the node index of input i.
func (r *Registry) InputIndex(i int) int { return i }

// OutputIndex returns the node index of the first output.
func (r *Registry) OutputIndex() int { return r.inputCount }

// BiasIndex returns the node index of the bias node.
func (r *Registry) BiasIndex() int { return r.inputCount + r.outputCount }

// NodeCount returns the number of nodes ever registered.
func (r *Registry) NodeCount() int { return len(r.nodeDepths) }

// InnovationCount returns the number of genes ever registered.
func (r *Registry) InnovationCount() int { return len(r.genes) }

// NodeDepth returns the depth of node n. n must be a registered node.
func (r *Registry) NodeDepth(n int) float64 {
	return r.nodeDepths[n]
}

// Gene returns the gene that was assigned the given innovation number.
func (r *Registry) Gene(innovation int) (Gene, bool) {
	if innovation < 0 || innovation >= len(r.genes) {
		return Gene{}, false
	}
	return r.genes[innovation], true
}

// Innovation returns the innovation number of gene if it was ever registered.
func (r *Registry) Innovation(gene Gene) (int, bool) {
	innovation, ok := r.innovations[gene]
	return innovation, ok
}

// SameDepth reports whether nodes a and b sit at the same depth.
func (r *Registry) SameDepth(a, b int) bool {
	return r.nodeDepths[a] == r.nodeDepths[b]
}

// IsInput reports whether n is an input node.
func (r *Registry) IsInput(n int) bool {
	return n >= 0 && n < r.inputCount
}

// IsOutput reports whether n is an output node.
func (r *Registry) IsOutput(n int) bool {
	return n >= r.inputCount && n < r.inputCount+r.outputCount
}
