package generator

// PinCounter hands out sequential simulated pin numbers for a single
// generator invocation. Counters are never shared: parallel transforms
// each construct their own, so pin assignments cannot collide across
// boards.
type PinCounter struct {
	next int
}

// NewPinCounter starts a counter at the given base pin.
func NewPinCounter(base int) *PinCounter {
	return &PinCounter{next: base}
}

// Next returns the next pin number and advances the counter.
func (p *PinCounter) Next() int {
	pin := p.next
	p.next++
	return pin
}
