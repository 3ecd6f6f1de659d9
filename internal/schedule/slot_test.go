package schedule

import (
	"testing"
	"time"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("02.01.2006 15:04", value)
	if err != nil {
		t.Fatalf("parsing %q: %v", value, err)
	}
	return parsed
}

func TestNextSlot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  string
		want string
	}{
		{
			// 9 business hours remain on Monday starting from 09:30; the 48th
			// lands the following Monday.
			name: "monday before opening",
			now:  "05.01.2026 08:30",
			want: "12.01.2026 11:30",
		},
		{
			// Starting exactly at 09:00 the partial 09:00 hour is not counted.
			name: "monday at opening boundary",
			now:  "05.01.2026 09:00",
			want: "12.01.2026 12:00",
		},
		{
			name: "friday evening skips the weekend",
			now:  "09.01.2026 20:00",
			want: "19.01.2026 11:00",
		},
		{
			name: "saturday start counts from monday",
			now:  "10.01.2026 13:15",
			want: "19.01.2026 11:15",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			now := date(t, tt.now)
			got := NextSlot(now)

			if want := date(t, tt.want); !got.Equal(want) {
				t.Fatalf("expected %s, got %s", want, got)
			}

			// Recomputation with the same now is idempotent.
			if again := NextSlot(now); !again.Equal(got) {
				t.Fatalf("recomputation differs: %s vs %s", again, got)
			}
		})
	}
}

func TestNextSlotAlwaysLandsInBusinessHours(t *testing.T) {
	t.Parallel()

	start := date(t, "01.01.2026 00:00")
	for i := 0; i < 100; i++ {
		now := start.Add(time.Duration(i) * 7 * time.Hour)
		slot := NextSlot(now)

		switch slot.Weekday() {
		case time.Saturday, time.Sunday:
			t.Fatalf("slot %s falls on a weekend for now=%s", slot, now)
		}
		if slot.Hour() < 9 || slot.Hour() >= 18 {
			t.Fatalf("slot %s falls outside business hours for now=%s", slot, now)
		}
	}
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	slot := date(t, "12.01.2026 11:30")

	if got := FormatStamp(slot); got != "12.01.2026 11:30" {
		t.Fatalf("unexpected stamp: %q", got)
	}
	if got := FormatInvite(slot); got != "12 января в 11:30" {
		t.Fatalf("unexpected invite form: %q", got)
	}
}
