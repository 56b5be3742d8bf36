package booking

// EnumerateSlots yields the bookable start minutes for a day: one every
// durationMin from the window start, never one whose end would pass closing.
func EnumerateSlots(win Window, durationMin int) []int {
	if durationMin <= 0 {
		return nil
	}

	var starts []int
	for cur := win.Start; cur+durationMin <= win.End; cur += durationMin {
		starts = append(starts, cur)
	}
	return starts
}

// IsAlignedSlot reports whether startMin is one of the enumerated starts for
// the window. Bookings are only accepted on enumerated boundaries.
func IsAlignedSlot(win Window, durationMin, startMin int) bool {
	if durationMin <= 0 {
		return false
	}
	if startMin < win.Start || startMin+durationMin > win.End {
		return false
	}
	return (startMin-win.Start)%durationMin == 0
}
