package neat

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"sort"

	"github.com/google/uuid"
)

// orderEntry indexes a gene under the depth of its source node.
type orderEntry struct {
	depth float64
	gene  Gene
}

// Genome is one individual: the subset of registry genes it expresses, each
// with a weight and an enabled flag, plus the bookkeeping needed to evaluate it.
//
// A genome keeps a pointer to the registry it was created against and must
// only be combined or compared with genomes bound to the same registry.
type Genome struct {
	Fitness float64 // Set by an external fitness function

	id            uuid.UUID
	registry      *Registry
	connections   map[Gene]*Connection
	order         []orderEntry // Sorted by source depth; equal depths keep insertion order
	nodes         []int        // Touched nodes in first-touch order
	nodeSet       map[int]struct{}
	output        []float64
	maxInnovation int // Highest innovation expressed + 1
}

// NewGenome creates a genome bound to registry. When initialize is set, every
// input is connected to every output with a weight drawn uniformly from
// [-1, 1]; otherwise the genotype starts empty. The bias node is always
// touched. rng may be nil only when initialize is false.
func NewGenome(registry *Registry, initialize bool, rng *rand.Rand) *Genome {
	g := &Genome{
		id:          uuid.New(),
		registry:    registry,
		connections: make(map[Gene]*Connection),
		nodeSet:     make(map[int]struct{}),
		output:      make([]float64, registry.OutputCount()),
	}

	if initialize {
		for i := 0; i < registry.InputCount(); i++ {
			for o := 0; o < registry.OutputCount(); o++ {
				gene := Gene{Source: registry.InputIndex(i), Dest: registry.OutputIndex() + o}
				g.AddConnection(gene, true, randomWeight(rng))
			}
		}
	}

	g.touch(registry.BiasIndex())
	return g
}

func randomWeight(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}

// ID returns the genome's unique identifier.
func (g *Genome) ID() uuid.UUID { return g.id }

// Registry returns the registry the genome is bound to.
func (g *Genome) Registry() *Registry { return g.registry }

// Len returns the number of connections in the genotype.
func (g *Genome) Len() int { return len(g.connections) }

// NodeCount returns the number of nodes the genome has touched.
func (g *Genome) NodeCount() int { return len(g.nodes) }

// MaxInnovation returns one past the highest innovation number the genome
// expresses, or 0 for an empty genotype.
func (g *Genome) MaxInnovation() int { return g.maxInnovation }

// HasNode reports whether the genome has touched node n.
func (g *Genome) HasNode(n int) bool {
	_, ok := g.nodeSet[n]
	return ok
}

// Nodes returns the touched nodes in first-touch order.
func (g *Genome) Nodes() []int {
	return slices.Clone(g.nodes)
}

// Connection returns a copy of the connection expressing gene.
func (g *Genome) Connection(gene Gene) (Connection, bool) {
	conn, ok := g.connections[gene]
	if !ok {
		return Connection{}, false
	}
	return *conn, true
}

// Genes returns the expressed genes in evaluation order.
func (g *Genome) Genes() []Gene {
	genes := make([]Gene, len(g.order))
	for i, e := range g.order {
		genes[i] = e.gene
	}
	return genes
}

// Output returns a copy of the outputs computed by the last Forward call.
func (g *Genome) Output() []float64 {
	return slices.Clone(g.output)
}

// String returns a string representation of the Genome.
func (g *Genome) String() string {
	return fmt.Sprintf("Genome(ID: %s, Connections: %d, Nodes: %d, Fitness: %.4f)",
		g.id, len(g.connections), len(g.nodes), g.Fitness)
}

// touch records node n as part of this genome.
func (g *Genome) touch(n int) {
	if _, ok := g.nodeSet[n]; ok {
		return
	}
	g.nodeSet[n] = struct{}{}
	g.nodes = append(g.nodes, n)
}

// --------------------------- Mutation ---------------------------

// AddConnection registers gene with the registry and, if the genome does not
// already express it, adds it with the given state. It returns the gene's
// innovation number either way.
func (g *Genome) AddConnection(gene Gene, enabled bool, weight float64) int {
	innovation := g.registry.RegisterConnection(gene)
	if _, exists := g.connections[gene]; exists {
		return innovation
	}

	g.connections[gene] = &Connection{Enabled: enabled, Weight: weight, Innovation: innovation}
	g.maxInnovation = max(g.maxInnovation, innovation+1)

	depth := g.registry.NodeDepth(gene.Source)
	at := sort.Search(len(g.order), func(i int) bool { return g.order[i].depth > depth })
	g.order = slices.Insert(g.order, at, orderEntry{depth: depth, gene: gene})

	g.touch(gene.Source)
	g.touch(gene.Dest)
	return innovation
}

// SplitConnection disables gene and routes it through a new node: the
// incoming half gets weight 1 and the outgoing half keeps the old weight.
// Recurrent genes are left alone.
func (g *Genome) SplitConnection(gene Gene) error {
	if gene.IsRecurrent() {
		return nil
	}
	conn, ok := g.connections[gene]
	if !ok {
		return fmt.Errorf("split connection %s: %w", gene, ErrMissingConnection)
	}

	conn.Enabled = false
	node := g.registry.RegisterNodeBetween(gene)
	g.AddConnection(Gene{Source: gene.Source, Dest: node}, true, 1.0)
	g.AddConnection(Gene{Source: node, Dest: gene.Dest}, true, conn.Weight)
	return nil
}

// SplitRandomConnection splits a connection chosen uniformly at random.
// It reports whether a node was inserted.
func (g *Genome) SplitRandomConnection(rng *rand.Rand) bool {
	if len(g.order) == 0 {
		return false
	}
	gene := g.order[rng.Intn(len(g.order))].gene
	if err := g.SplitConnection(gene); err != nil {
		return false
	}
	return !gene.IsRecurrent()
}

// AddRandomConnection tries up to 8 times the node count to find two touched
// nodes at different depths that are not yet connected, and links them from
// the shallower to the deeper one with a random weight. It reports whether a
// connection was added; running out of attempts is not an error.
func (g *Genome) AddRandomConnection(rng *rand.Rand) bool {
	attempts := 8 * len(g.nodes)
	for i := 0; i < attempts; i++ {
		a := g.nodes[rng.Intn(len(g.nodes))]
		b := g.nodes[rng.Intn(len(g.nodes))]
		if a == b || g.registry.SameDepth(a, b) {
			continue
		}
		if g.registry.NodeDepth(a) > g.registry.NodeDepth(b) {
			a, b = b, a
		}

		gene := Gene{Source: a, Dest: b}
		if _, exists := g.connections[gene]; exists {
			continue
		}
		if _, exists := g.connections[gene.Reverse()]; exists {
			continue
		}

		g.AddConnection(gene, true, randomWeight(rng))
		return true
	}
	return false
}

// --------------------------- Evaluation ---------------------------

// Forward runs a single sweep over the genotype in ascending source depth.
// Inputs seed the input nodes and the bias node is fixed at 1. Each output
// holds the running sum of its node after the last enabled connection into it.
func (g *Genome) Forward(inputs []float64) ([]float64, error) {
	r := g.registry
	if len(inputs) != r.InputCount() {
		return nil, fmt.Errorf("forward: got %d inputs, want %d: %w", len(inputs), r.InputCount(), ErrInputSize)
	}

	values := make([]float64, r.NodeCount())
	for i, v := range inputs {
		values[r.InputIndex(i)] = v
	}
	values[r.BiasIndex()] = 1.0

	for i := range g.output {
		g.output[i] = 0
	}

	for _, e := range g.order {
		conn := g.connections[e.gene]
		if !conn.Enabled {
			continue
		}
		dest := e.gene.Dest
		values[dest] += values[e.gene.Source] * conn.Weight
		if r.IsOutput(dest) {
			g.output[dest-r.OutputIndex()] = values[dest]
		}
	}

	return g.Output(), nil
}

// --------------------------- Compatibility ---------------------------

// CompatibilityStats summarizes how two genotypes differ.
type CompatibilityStats struct {
	Mismatching   int     // Innovations expressed by exactly one genome
	MaxInnovation int     // Size of the aligned innovation range
	AvgWeightDiff float64 // Mean absolute weight difference of matching genes
}

// CompatibilityStats aligns both genotypes by innovation number and counts
// matching and mismatching genes.
func (g *Genome) CompatibilityStats(mate *Genome) CompatibilityStats {
	size := max(g.maxInnovation, mate.maxInnovation)
	own := innovationSlots(g, size)
	other := innovationSlots(mate, size)

	matching, occupied := 0, 0
	weightDiffSum := 0.0
	for i := 0; i < size; i++ {
		a, b := own[i], other[i]
		if a.present || b.present {
			occupied++
		}
		if a.present && b.present && a.gene == b.gene {
			matching++
			weightDiffSum += math.Abs(a.conn.Weight - b.conn.Weight)
		}
	}

	stats := CompatibilityStats{
		Mismatching:   occupied - matching,
		MaxInnovation: size,
	}
	if matching > 0 {
		stats.AvgWeightDiff = weightDiffSum / float64(matching)
	}
	return stats
}

// Distance returns c1 * mismatching/maxInnovation + c2 * avgWeightDiff.
func (g *Genome) Distance(stats CompatibilityStats) float64 {
	params := g.registry.Params
	ratio := 0.0
	if stats.MaxInnovation > 0 {
		ratio = float64(stats.Mismatching) / float64(stats.MaxInnovation)
	}
	return params.DisjointCoefficient*ratio + params.WeightCoefficient*stats.AvgWeightDiff
}

// IsCompatible reports whether stats fall within the compatibility threshold.
// Excess and disjoint genes are counted together as mismatching.
func (g *Genome) IsCompatible(stats CompatibilityStats) bool {
	return g.Distance(stats) <= g.registry.Params.CompatibilityThreshold
}

// IsCompatibleWith is shorthand for IsCompatible(CompatibilityStats(mate)).
func (g *Genome) IsCompatibleWith(mate *Genome) bool {
	return g.IsCompatible(g.CompatibilityStats(mate))
}

// --------------------------- Crossover ---------------------------

// Crossover builds an offspring bound to the same registry. Matching genes
// come from a random parent and stay disabled with DisableChance when either
// parent has them disabled. Genes only one parent expresses are inherited
// from the fitter parent, or a random one on a tie, when that parent has them.
func (g *Genome) Crossover(mate *Genome, rng *rand.Rand) *Genome {
	size := max(g.maxInnovation, mate.maxInnovation)
	own := innovationSlots(g, size)
	other := innovationSlots(mate, size)

	child := NewGenome(g.registry, false, rng)
	for i := 0; i < size; i++ {
		a, b := own[i], other[i]
		switch {
		case a.present && b.present:
			donor := a
			if rng.Intn(2) == 1 {
				donor = b
			}
			enabled := (a.conn.Enabled && b.conn.Enabled) || rng.Float64() > g.registry.Params.DisableChance
			child.AddConnection(donor.gene, enabled, donor.conn.Weight)

		case a.present || b.present:
			var donor geneSlot
			switch {
			case g.Fitness > mate.Fitness:
				donor = a
			case mate.Fitness > g.Fitness:
				donor = b
			case rng.Intn(2) == 0:
				donor = a
			default:
				donor = b
			}
			if !donor.present {
				continue
			}
			child.AddConnection(donor.gene, donor.conn.Enabled, donor.conn.Weight)
		}
	}
	return child
}
