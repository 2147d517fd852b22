// Package neat is the root of a small NeuroEvolution of Augmenting Topologies
// (NEAT) engine. The engine itself lives in the neat subpackage.
//
// NEAT evolves both the weights and the structure of small neural networks.
// Every structural change is given a historical marking (an innovation
// number) by a shared registry, so genomes created independently can be
// aligned gene by gene when measuring compatibility and during crossover.
//
// Basic usage:
//
//	reg := neat.NewRegistry(2, 1)
//	rng := rand.New(rand.NewSource(1))
//
//	a := neat.NewGenome(reg, true, rng)
//	b := neat.NewGenome(reg, true, rng)
//	a.SplitRandomConnection(rng)
//	b.AddRandomConnection(rng)
//
//	out, err := a.Forward([]float64{1, 0})
//	if err != nil {
//		log.Fatalf("Error evaluating genome: %v", err)
//	}
//	a.Fitness = score(out)
//
//	reg.AddGenome(a)
//	reg.AddGenome(b)
//	child := a.Crossover(b, rng)
//
// The registry must outlive every genome bound to it, and neither type is
// safe for concurrent use. All randomness comes from the *rand.Rand passed in.
package neat
