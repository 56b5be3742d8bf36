package booking

import "testing"

func TestEnumerateSlotsFullDay(t *testing.T) {
	// 09:00-17:00 with a 60 minute service
	starts := EnumerateSlots(Window{Start: 540, End: 1020}, 60)

	if len(starts) != 8 {
		t.Fatalf("got %d slots, want 8", len(starts))
	}
	if starts[0] != 540 {
		t.Errorf("first slot = %s, want 09:00", FormatClock(starts[0]))
	}
	if last := starts[len(starts)-1]; last != 960 {
		t.Errorf("last slot = %s, want 16:00", FormatClock(last))
	}
}

func TestEnumerateSlotsDropsTrailingPartial(t *testing.T) {
	// 09:00-10:30 with a 60 minute service fits exactly one slot; the
	// 10:00 start would run past closing and must not appear
	starts := EnumerateSlots(Window{Start: 540, End: 630}, 60)

	if len(starts) != 1 || starts[0] != 540 {
		t.Fatalf("got %v, want [540]", starts)
	}
}

func TestEnumerateSlotsShortService(t *testing.T) {
	// 09:00-10:00 with 30 minutes gives 09:00 and 09:30
	starts := EnumerateSlots(Window{Start: 540, End: 600}, 30)

	if len(starts) != 2 || starts[0] != 540 || starts[1] != 570 {
		t.Fatalf("got %v, want [540 570]", starts)
	}
}

func TestEnumerateSlotsDegenerate(t *testing.T) {
	if got := EnumerateSlots(Window{Start: 540, End: 1020}, 0); got != nil {
		t.Errorf("zero duration gave %v", got)
	}
	if got := EnumerateSlots(Window{Start: 540, End: 560}, 30); got != nil {
		t.Errorf("window shorter than service gave %v", got)
	}
}

func TestIsAlignedSlot(t *testing.T) {
	win := Window{Start: 540, End: 1020}

	cases := []struct {
		startMin int
		duration int
		want     bool
	}{
		{540, 60, true},
		{960, 60, true},   // last valid start
		{1020, 60, false}, // would end past closing
		{570, 60, false},  // off the 60 minute grid
		{480, 60, false},  // before opening
		{540, 0, false},
	}

	for _, c := range cases {
		if got := IsAlignedSlot(win, c.duration, c.startMin); got != c.want {
			t.Errorf("IsAlignedSlot(%d, %d) = %v, want %v", c.duration, c.startMin, got, c.want)
		}
	}
}
