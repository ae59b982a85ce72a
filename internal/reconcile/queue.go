package reconcile

// lotQueue is a FIFO of open lots for one symbol. It is a slice with a moving head;
// the consumed prefix is reclaimed once it dominates the backing array.
type lotQueue struct {
	lots []*Lot
	head int
}

func (q *lotQueue) len() int {
	return len(q.lots) - q.head
}

func (q *lotQueue) front() *Lot {
	if q.len() == 0 {
		return nil
	}
	return q.lots[q.head]
}

func (q *lotQueue) push(l *Lot) {
	q.lots = append(q.lots, l)
}

func (q *lotQueue) popFront() {
	q.lots[q.head] = nil
	q.head++
	if q.head == len(q.lots) {
		q.lots = q.lots[:0]
		q.head = 0
		return
	}
	if q.head >= 32 && q.head*2 >= len(q.lots) {
		n := copy(q.lots, q.lots[q.head:])
		clear(q.lots[n:])
		q.lots = q.lots[:n]
		q.head = 0
	}
}

// snapshot copies the open lots, oldest first.
func (q *lotQueue) snapshot() []Lot {
	out := make([]Lot, 0, q.len())
	for _, l := range q.lots[q.head:] {
		out = append(out, *l)
	}
	return out
}
