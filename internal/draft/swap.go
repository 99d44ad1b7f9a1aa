package draft

import "fmt"

// SlotRef addresses a slot by team number (1 or 2) and lane.
type SlotRef struct {
	Team int
	Lane Lane
}

func (r SlotRef) String() string {
	return fmt.Sprintf("%d:%s", r.Team, r.Lane)
}

// Swap exchanges the occupants of a and b. Both players are re-scored for
// their destination lane; team totals and the difference follow from the
// slots. Swapping the same two slots again restores the original pairing.
func (p Pairing) Swap(a, b SlotRef) (Pairing, error) {
	from, ok := p.team(a.Team)
	if !ok || a.Lane.index() < 0 {
		return p, fmt.Errorf("swap from %s: %w", a, ErrUnknownSlot)
	}
	to, ok := p.team(b.Team)
	if !ok || b.Lane.index() < 0 {
		return p, fmt.Errorf("swap to %s: %w", b, ErrUnknownSlot)
	}
	if a == b {
		return p, nil
	}

	ia, ib := a.Lane.index(), b.Lane.index()
	pa := from.Slots[ia].Player
	pb := to.Slots[ib].Player
	from.Slots[ia] = NewSlot(pb, a.Lane)
	to.Slots[ib] = NewSlot(pa, b.Lane)

	p.refreshMetrics()
	return p, nil
}
