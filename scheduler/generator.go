package scheduler

// Slot is one bookable interval [Start, End) in minutes since midnight.
type Slot struct {
	Start int
	End   int
}

// GenerateSlots decomposes the block [start, end) into ordered, non-overlapping
// sub-intervals of the nominal duration. The final slot is clipped to the
// remaining minutes when the block does not divide evenly; the cursor still
// advances by the nominal duration so a short tail never shifts anything.
// A duration longer than the whole block yields no slots at all. Blocks are
// always generated independently, never merged with adjacent ones.
//
// Pure and deterministic: identical inputs always produce identical output.
func GenerateSlots(start, end, duration int) []Slot {
	if duration <= 0 || end <= start || duration > end-start {
		return nil
	}

	var slots []Slot
	for cursor := start; cursor < end; cursor += duration {
		slotEnd := cursor + duration
		if slotEnd > end {
			slotEnd = end
		}
		slots = append(slots, Slot{Start: cursor, End: slotEnd})
	}
	return slots
}

// Overlaps reports whether two half-open intervals intersect.
func (s Slot) Overlaps(other Slot) bool {
	return s.Start < other.End && other.Start < s.End
}
