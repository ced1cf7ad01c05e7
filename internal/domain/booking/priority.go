package booking

// PriorityRanks is the number of ranked work-shift preferences.
const PriorityRanks = 3

// Priority returns the timeslot held by the given rank (1..3), None when
// unset or the rank is out of range.
func (b *Booking) Priority(rank int) int {
	switch rank {
	case 1:
		return b.TimeslotPriority1
	case 2:
		return b.TimeslotPriority2
	case 3:
		return b.TimeslotPriority3
	}
	return None
}

func (b *Booking) setPriority(rank, slotID int) {
	switch rank {
	case 1:
		b.TimeslotPriority1 = slotID
	case 2:
		b.TimeslotPriority2 = slotID
	case 3:
		b.TimeslotPriority3 = slotID
	}
}

// AssignPriority sets the given rank to the timeslot and clears every other
// rank currently holding the same timeslot, so one physical slot never
// occupies two ranks.
func AssignPriority(b *Booking, rank, slotID int) error {
	if rank < 1 || rank > PriorityRanks {
		return ErrInvalidRank
	}
	if slotID < 0 {
		return ErrInvalidSlot
	}
	for r := 1; r <= PriorityRanks; r++ {
		if r != rank && b.Priority(r) == slotID {
			b.setPriority(r, None)
		}
	}
	b.setPriority(rank, slotID)
	return nil
}

// ClearPriority resets the given rank to unset.
func ClearPriority(b *Booking, rank int) error {
	if rank < 1 || rank > PriorityRanks {
		return ErrInvalidRank
	}
	b.setPriority(rank, None)
	return nil
}

// AvailableRanks returns the ranks offerable for the given timeslot: every
// unset rank plus the rank this slot already holds (so it can be switched),
// never a rank consumed by a different slot. Derived on demand, never
// cached.
func AvailableRanks(b *Booking, slotID int) []int {
	ranks := make([]int, 0, PriorityRanks)
	for r := 1; r <= PriorityRanks; r++ {
		held := b.Priority(r)
		if held == None || held == slotID {
			ranks = append(ranks, r)
		}
	}
	return ranks
}

// PrioritiesDistinct reports whether no timeslot is referenced by two
// ranks. The empty sentinel may repeat freely.
func PrioritiesDistinct(b *Booking) bool {
	seen := make(map[int]bool, PriorityRanks)
	for r := 1; r <= PriorityRanks; r++ {
		slot := b.Priority(r)
		if slot == None {
			continue
		}
		if seen[slot] {
			return false
		}
		seen[slot] = true
	}
	return true
}
