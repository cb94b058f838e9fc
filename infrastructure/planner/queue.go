package planner

// entry is an open-set item. seq is the push order and breaks f ties so that
// equal-cost frontiers pop first-in first-out.
type entry struct {
	key   string
	g     float64
	f     float64
	seq   uint64
	index int
}

// openSet is a min-heap of entries ordered by f, then seq.
// It implements heap.Interface.
type openSet []*entry

func (q openSet) Len() int { return len(q) }

func (q openSet) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q openSet) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *openSet) Push(x any) {
	e := x.(*entry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *openSet) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}
