package booking

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"13:30", 810, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9:00am", 0, true},
		{"", 0, true},
	}

	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 540, 810, 1439} {
		back, err := ParseClock(FormatClock(minutes))
		if err != nil {
			t.Fatalf("round trip %d: %v", minutes, err)
		}
		if back != minutes {
			t.Errorf("round trip %d gave %d", minutes, back)
		}
	}
}

func TestAtRespectsLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	date := time.Date(2026, 3, 9, 0, 0, 0, 0, loc)
	got := At(date, 540, loc)

	if got.Hour() != 9 || got.Minute() != 0 {
		t.Errorf("At gave %v, want 09:00 wall clock", got)
	}
	if got.Location() != loc {
		t.Errorf("At gave location %v, want %v", got.Location(), loc)
	}
}

func TestDayStart(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 3, 9, 17, 45, 12, 0, loc)

	got := DayStart(date, loc)
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, loc)

	if !got.Equal(want) {
		t.Errorf("DayStart = %v, want %v", got, want)
	}
}
