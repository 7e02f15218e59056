package rules

import (
	"testing"
	"time"
)

func TestMatchAbsoluteDates(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, time.August, 27, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "family priority orders iso before month name",
			text: "Kickoff Oct 1, 2025 then review on 2025-09-15",
			want: []string{"2025-09-15", "2025-10-01"},
		},
		{
			name: "impossible calendar day dropped",
			text: "see you Feb 30, 2025",
			want: nil,
		},
		{
			name: "multiple iso dates keep text order",
			text: "between 2025-09-01 and 2025-09-03",
			want: []string{"2025-09-01", "2025-09-03"},
		},
		{
			name: "slash month out of range dropped",
			text: "version 13/40/2025 released",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			days := matchAbsoluteDates(tt.text, now, time.UTC)
			if len(days) != len(tt.want) {
				t.Fatalf("matched %d days, want %d: %v", len(days), len(tt.want), days)
			}
			for i, d := range days {
				if got := d.Format("2006-01-02"); got != tt.want[i] {
					t.Errorf("day[%d] = %s, want %s", i, got, tt.want[i])
				}
			}
		})
	}
}
