package neat

// Species is a group of genomes considered mutually compatible.
// Membership is decided against the first member only; it is never refreshed
// and stale species are never pruned.
type Species struct {
	Members []*Genome
}

// Representative returns the genome new candidates are compared against.
func (s *Species) Representative() *Genome {
	return s.Members[0]
}

// Len returns the number of members.
func (s *Species) Len() int {
	return len(s.Members)
}

// Fitnesses returns a slice containing the fitness values of all members.
func (s *Species) Fitnesses() []float64 {
	fitnesses := make([]float64, 0, len(s.Members))
	for _, g := range s.Members {
		fitnesses = append(fitnesses, g.Fitness)
	}
	return fitnesses
}

// Best returns the fittest member. The first one wins ties.
func (s *Species) Best() *Genome {
	var best *Genome
	for _, g := range s.Members {
		if best == nil || g.Fitness > best.Fitness {
			best = g
		}
	}
	return best
}
