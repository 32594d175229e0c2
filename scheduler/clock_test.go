package scheduler

import "testing"

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"-1:00", 0, true},
		{"9", 0, true},
		{"nine:thirty", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{585, "09:45"},
		{1439, "23:59"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.in); got != tc.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClockRoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m += 7 {
		got, err := ParseClock(FormatClock(m))
		if err != nil {
			t.Fatalf("round trip %d: %v", m, err)
		}
		if got != m {
			t.Fatalf("round trip %d came back as %d", m, got)
		}
	}
}
