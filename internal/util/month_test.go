package util

import (
	"testing"
	"time"
)

func TestPreviousMonth_SameYear(t *testing.T) {
	tests := []struct {
		year      int
		month     int
		wantYear  int
		wantMonth int
	}{
		{2024, 6, 2024, 5},   // June -> May
		{2024, 12, 2024, 11}, // Dec -> Nov
		{2024, 2, 2024, 1},   // Feb -> Jan
	}

	for _, tt := range tests {
		gotYear, gotMonth := PreviousMonth(tt.year, tt.month)
		if gotYear != tt.wantYear || gotMonth != tt.wantMonth {
			t.Errorf("PreviousMonth(%d, %d) = (%d, %d), want (%d, %d)",
				tt.year, tt.month, gotYear, gotMonth, tt.wantYear, tt.wantMonth)
		}
	}
}

func TestPreviousMonth_YearBoundary(t *testing.T) {
	gotYear, gotMonth := PreviousMonth(2024, 1)
	if gotYear != 2023 || gotMonth != 12 {
		t.Errorf("PreviousMonth(2024, 1) = (%d, %d), want (2023, 12)", gotYear, gotMonth)
	}
}

func TestYearMonth(t *testing.T) {
	year, month := YearMonth(time.Date(2024, time.March, 31, 23, 59, 0, 0, time.UTC))
	if year != 2024 || month != 3 {
		t.Errorf("YearMonth = (%d, %d), want (2024, 3)", year, month)
	}
}

func TestValidMonth(t *testing.T) {
	for month, want := range map[int]bool{0: false, 1: true, 12: true, 13: false, -1: false} {
		if got := ValidMonth(month); got != want {
			t.Errorf("ValidMonth(%d) = %v, want %v", month, got, want)
		}
	}
}
