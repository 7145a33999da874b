package dates

import (
	"testing"
	"time"
)

// Wednesday in the middle of a known week.
var wednesday = time.Date(2024, 3, 13, 15, 30, 0, 0, time.Local)

func TestStartOfWeekIsMonday(t *testing.T) {
	start := StartOfWeek(wednesday)
	if start.Weekday() != time.Monday {
		t.Fatalf("expected Monday, got %v", start.Weekday())
	}
	if start.Day() != 11 || start.Hour() != 0 || start.Minute() != 0 {
		t.Fatalf("unexpected start of week: %v", start)
	}
}

func TestEndOfWeekIsSunday(t *testing.T) {
	end := EndOfWeek(wednesday)
	if end.Weekday() != time.Sunday {
		t.Fatalf("expected Sunday, got %v", end.Weekday())
	}
	if end.Day() != 17 || end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Fatalf("unexpected end of week: %v", end)
	}
}

func TestStartOfWeekOnSunday(t *testing.T) {
	sunday := time.Date(2024, 3, 17, 9, 0, 0, 0, time.Local)
	start := StartOfWeek(sunday)
	if start.Day() != 11 {
		t.Fatalf("Sunday should belong to the week starting the 11th, got %v", start)
	}
}

func TestSameDay(t *testing.T) {
	candidate := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)
	ref := time.Date(2024, 3, 10, 23, 59, 0, 0, time.Local)
	if !SameDay(&candidate, ref) {
		t.Fatal("same calendar day should match regardless of time of day")
	}
	other := ref.AddDate(0, 0, 1)
	if SameDay(&candidate, other) {
		t.Fatal("different days should not match")
	}
	if SameDay(nil, ref) {
		t.Fatal("nil candidate should never match")
	}
}

func TestSameWeekBoundaries(t *testing.T) {
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local)
	sunday := time.Date(2024, 3, 17, 23, 59, 59, 0, time.Local)
	nextMonday := time.Date(2024, 3, 18, 0, 0, 0, 0, time.Local)

	if !SameWeek(&monday, wednesday) {
		t.Fatal("Monday boundary should be inside the week")
	}
	if !SameWeek(&sunday, wednesday) {
		t.Fatal("Sunday boundary should be inside the week")
	}
	if SameWeek(&nextMonday, wednesday) {
		t.Fatal("the following Monday should be outside the week")
	}
	if SameWeek(nil, wednesday) {
		t.Fatal("nil candidate should never match")
	}
}

func TestSameDayConvertsCandidateToLocalTime(t *testing.T) {
	orig := time.Local
	time.Local = time.FixedZone("UTC-5", -5*60*60)
	defer func() { time.Local = orig }()

	// 03:00 UTC is 22:00 the previous day in UTC-5
	candidate := time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC)
	ref := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	if !SameDay(&candidate, ref) {
		t.Fatal("a UTC candidate must be compared on its local calendar day")
	}

	later := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)
	if SameDay(&later, ref) {
		t.Fatal("a candidate past local midnight must not match the previous day")
	}
}

func TestSameMonthConvertsCandidateToLocalTime(t *testing.T) {
	orig := time.Local
	time.Local = time.FixedZone("UTC-5", -5*60*60)
	defer func() { time.Local = orig }()

	// April 1st 02:00 UTC is still March 31st in UTC-5
	candidate := time.Date(2024, 4, 1, 2, 0, 0, 0, time.UTC)
	ref := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	if !SameMonth(&candidate, ref) {
		t.Fatal("a UTC candidate must be compared in the local month")
	}
}

func TestSameMonth(t *testing.T) {
	first := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	last := time.Date(2024, 3, 31, 23, 0, 0, 0, time.Local)
	if !SameMonth(&first, wednesday) || !SameMonth(&last, wednesday) {
		t.Fatal("dates in the same month should match")
	}
	april := time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local)
	if SameMonth(&april, wednesday) {
		t.Fatal("different months should not match")
	}
	lastYear := time.Date(2023, 3, 13, 0, 0, 0, 0, time.Local)
	if SameMonth(&lastYear, wednesday) {
		t.Fatal("same month in a different year should not match")
	}
}
