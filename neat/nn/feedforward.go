// Package nn evaluates genomes by the topology of their enabled connections
// rather than by node depth.
package nn

import (
	"fmt"
	"sort"

	"github.com/baldhumanity/neat-innovation/neat"
)

// FeedForwardNetwork is a genome phenotype evaluated in topological order.
type FeedForwardNetwork struct {
	InputKeys     []int               // Input node indices, in input order
	OutputKeys    []int               // Output node indices, in output order
	BiasKey       int                 // Bias node index
	NodeEvalOrder []int               // Topologically sorted node indices
	Incoming      map[int][]neat.Gene // node -> enabled genes entering it
	Weights       map[neat.Gene]float64
}

// CreateFeedForwardNetwork builds a network from the genome's enabled
// connections. It fails when those connections contain a cycle.
func CreateFeedForwardNetwork(g *neat.Genome) (*FeedForwardNetwork, error) {
	reg := g.Registry()

	net := &FeedForwardNetwork{
		InputKeys:  make([]int, reg.InputCount()),
		OutputKeys: make([]int, reg.OutputCount()),
		BiasKey:    reg.BiasIndex(),
		Incoming:   make(map[int][]neat.Gene),
		Weights:    make(map[neat.Gene]float64),
	}
	for i := range net.InputKeys {
		net.InputKeys[i] = reg.InputIndex(i)
	}
	for i := range net.OutputKeys {
		net.OutputKeys[i] = reg.OutputIndex() + i
	}

	nodeKeys := make(map[int]bool)
	for _, k := range net.InputKeys {
		nodeKeys[k] = true
	}
	for _, k := range net.OutputKeys {
		nodeKeys[k] = true
	}
	nodeKeys[net.BiasKey] = true
	for _, n := range g.Nodes() {
		nodeKeys[n] = true
	}

	inDegree := make(map[int]int)
	graph := make(map[int][]int)
	for _, gene := range g.Genes() {
		conn, ok := g.Connection(gene)
		if !ok {
			return nil, fmt.Errorf("genome %s lists gene %s: %w", g.ID(), gene, neat.ErrMissingConnection)
		}
		if !conn.Enabled {
			continue
		}
		net.Weights[gene] = conn.Weight
		net.Incoming[gene.Dest] = append(net.Incoming[gene.Dest], gene)
		graph[gene.Source] = append(graph[gene.Source], gene.Dest)
		inDegree[gene.Dest]++
		nodeKeys[gene.Source] = true
		nodeKeys[gene.Dest] = true
	}

	// Kahn's algorithm, kept sorted for deterministic order.
	queue := []int{}
	for nk := range nodeKeys {
		if inDegree[nk] == 0 {
			queue = append(queue, nk)
		}
	}
	sort.Ints(queue)

	evalOrder := make([]int, 0, len(nodeKeys))
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		evalOrder = append(evalOrder, u)

		neighbors := graph[u]
		sort.Ints(neighbors)
		for _, v := range neighbors {
			inDegree[v]--
			if inDegree[v] == 0 {
				queue = append(queue, v)
			}
		}
		sort.Ints(queue)
	}

	if len(evalOrder) != len(nodeKeys) {
		return nil, fmt.Errorf("failed topological sort: cycle detected (expected %d nodes, got %d)", len(nodeKeys), len(evalOrder))
	}
	net.NodeEvalOrder = evalOrder
	return net, nil
}

// Activate computes the network's output for a given slice of input values.
// Every node's value is its seed (input value, 1 for the bias, 0 otherwise)
// plus the weighted sum of its incoming enabled connections.
func (net *FeedForwardNetwork) Activate(inputs []float64) ([]float64, error) {
	if len(inputs) != len(net.InputKeys) {
		return nil, fmt.Errorf("mismatch between input count (%d) and network input nodes (%d): %w",
			len(inputs), len(net.InputKeys), neat.ErrInputSize)
	}

	nodeValues := make(map[int]float64)
	for i, ik := range net.InputKeys {
		nodeValues[ik] = inputs[i]
	}
	nodeValues[net.BiasKey] = 1.0

	for _, nodeKey := range net.NodeEvalOrder {
		for _, gene := range net.Incoming[nodeKey] {
			nodeValues[nodeKey] += nodeValues[gene.Source] * net.Weights[gene]
		}
	}

	outputs := make([]float64, len(net.OutputKeys))
	for i, ok := range net.OutputKeys {
		outputs[i] = nodeValues[ok]
	}
	return outputs, nil
}
