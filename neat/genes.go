package neat

import "fmt"

// --------------------------- Gene ---------------------------

// Gene identifies a directed edge between two node indices.
// Two genes are equal iff their endpoints match, so a Gene can be used as a
// map key independently of any genome's weight or enabled state.
type Gene struct {
	Source int // Index of the node the edge leaves
	Dest   int // Index of the node the edge enters
}

// IsRecurrent reports whether the gene is a self-loop.
func (g Gene) IsRecurrent() bool {
	return g.Source == g.Dest
}

// Reverse returns the gene pointing the other way.
func (g Gene) Reverse() Gene {
	return Gene{Source: g.Dest, Dest: g.Source}
}

// String returns a string representation of the Gene.
func (g Gene) String() string {
	return fmt.Sprintf("%d->%d", g.Source, g.Dest)
}

// --------------------------- Connection ---------------------------

// Connection is one genome's expression of a gene.
type Connection struct {
	Enabled    bool
	Weight     float64
	Innovation int // Innovation number assigned by the registry
}

// String returns a string representation of the Connection.
func (c *Connection) String() string {
	return fmt.Sprintf("Conn(Innovation: %d, Weight: %.3f, Enabled: %t)",
		c.Innovation, c.Weight, c.Enabled)
}

// Copy creates a copy of the Connection.
func (c *Connection) Copy() *Connection {
	return &Connection{
		Enabled:    c.Enabled,
		Weight:     c.Weight,
		Innovation: c.Innovation,
	}
}

// geneSlot is one entry of a dense innovation-indexed array. A slot is only
// present when the genome it was built from expresses that innovation.
type geneSlot struct {
	gene    Gene
	conn    *Connection
	present bool
}

// innovationSlots lays out a genome's connections by innovation number.
func innovationSlots(g *Genome, size int) []geneSlot {
	slots := make([]geneSlot, size)
	for gene, conn := range g.connections {
		if conn.Innovation < size {
			slots[conn.Innovation] = geneSlot{gene: gene, conn: conn, present: true}
		}
	}
	return slots
}
