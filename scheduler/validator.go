package scheduler

// Window is a candidate availability range for a single day, already parsed
// to minutes since midnight. Disabled blocks get the same per-block range
// and span checks as enabled ones, but only enabled ones participate in
// overlap detection since disabled blocks generate no slots.
type Window struct {
	Start   int
	End     int
	Enabled bool
}

// ValidateDay gates one day's full candidate block set before anything is
// persisted. It returns the first violation found, or nil when the whole
// batch is acceptable. Application is all-or-nothing: a rejected batch must
// not be partially written.
func ValidateDay(windows []Window, duration int) error {
	if duration <= 0 {
		return validationErrorf("slot duration must be positive, got %d", duration)
	}

	total := 0
	for i, w := range windows {
		if w.End <= w.Start {
			return validationErrorf("block %d: end time %s must be after start time %s",
				i+1, FormatClock(w.End), FormatClock(w.Start))
		}
		if duration > w.End-w.Start {
			return validationErrorf("block %d: slot duration %d exceeds block span %d minutes",
				i+1, duration, w.End-w.Start)
		}
		total += w.End - w.Start
	}
	if total > MinutesPerDay {
		return validationErrorf("blocks span %d minutes in total, exceeding 24 hours", total)
	}

	// Pairwise overlap check on the generated slots, not the raw windows,
	// since the slots are what visitors actually book.
	for i := 0; i < len(windows); i++ {
		if !windows[i].Enabled {
			continue
		}
		slotsA := GenerateSlots(windows[i].Start, windows[i].End, duration)
		for j := i + 1; j < len(windows); j++ {
			if !windows[j].Enabled {
				continue
			}
			slotsB := GenerateSlots(windows[j].Start, windows[j].End, duration)
			for _, a := range slotsA {
				for _, b := range slotsB {
					if a.Overlaps(b) {
						return validationErrorf("blocks %d and %d generate overlapping slots %s-%s and %s-%s",
							i+1, j+1,
							FormatClock(a.Start), FormatClock(a.End),
							FormatClock(b.Start), FormatClock(b.End))
					}
				}
			}
		}
	}

	return nil
}
