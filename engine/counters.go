package engine

// Counters collects search statistics. A fresh value is threaded through
// every solve call; the engine never keeps global state.
type Counters struct {
	Iters      uint64
	Writes     uint64
	Reads      uint64
	ExactReads uint64
	Breaks     uint64
	Collisions uint64
}

// Add merges the counts of o into c.
func (c *Counters) Add(o Counters) {
	c.Iters += o.Iters
	c.Writes += o.Writes
	c.Reads += o.Reads
	c.ExactReads += o.ExactReads
	c.Breaks += o.Breaks
	c.Collisions += o.Collisions
}
