package playlist

import (
	"errors"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00:00"},
		{90 * time.Second, "0:01:30"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{25*time.Hour + 5*time.Second, "25:00:05"},
		{1500 * time.Millisecond, "0:00:01"},
		{-61 * time.Second, "-0:01:01"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	clock, err := time.Parse(ClockLayout, "9:05:07")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := FormatClock(clock); got != "09:05:07" {
		t.Errorf("FormatClock = %q, want 09:05:07", got)
	}
}

func TestNewTrackCollapsesWhitespace(t *testing.T) {
	tr := NewTrack("  Some\tArtist ", "Track  A\n")
	if tr.Artist != "Some Artist" || tr.Title != "Track A" {
		t.Errorf("got %q / %q", tr.Artist, tr.Title)
	}
	if tr.String() != "Some Artist - Track A" {
		t.Errorf("String() = %q", tr.String())
	}
}

func TestPlayMinutesSeconds(t *testing.T) {
	tr := NewTrack("A", "B")
	if _, _, ok := tr.PlayMinutesSeconds(); ok {
		t.Fatal("expected ok=false without timing")
	}
	tr.Timing = &Timing{Play: 3*time.Minute + 25*time.Second}
	m, s, ok := tr.PlayMinutesSeconds()
	if !ok || m != 3 || s != 25 {
		t.Errorf("got %d:%d ok=%v, want 3:25", m, s, ok)
	}
}

func TestDocumentNameAndTotals(t *testing.T) {
	doc := &Document{
		Source: TimeSeries{},
		Path:   PathParts{Dir: "/tmp", Base: "set", Ext: ".csv"},
		Tracks: []Track{
			{Artist: "A", Title: "One", Timing: &Timing{Play: 2 * time.Minute}},
			{Artist: "B", Title: "Two", Timing: &Timing{Play: 3 * time.Minute}},
		},
	}
	if doc.Name() != "set" {
		t.Errorf("Name() = %q, want base name fallback", doc.Name())
	}
	doc.Source = TimeSeries{Name: "Friday", Date: "10.01.2019"}
	if doc.Name() != "Friday" || doc.Date() != "10.01.2019" {
		t.Errorf("Name/Date = %q/%q", doc.Name(), doc.Date())
	}
	if doc.TotalDuration() != 5*time.Minute {
		t.Errorf("TotalDuration = %v", doc.TotalDuration())
	}
	if doc.AverageDuration() != 150*time.Second {
		t.Errorf("AverageDuration = %v", doc.AverageDuration())
	}
	if doc.Kind() != KindTimeSeries {
		t.Errorf("Kind = %v", doc.Kind())
	}

	tab := &Document{Source: TabLog{}, Path: PathParts{Base: "rb"}}
	if tab.Date() != "" || tab.AverageDuration() != 0 || tab.Kind().String() != "tab-log" {
		t.Errorf("unexpected tab-log document state")
	}
}

func TestRowErrorUnwrapsToMalformedRow(t *testing.T) {
	err := error(&RowError{Row: 3, Field: "start time", Reason: "missing"})
	if !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected errors.Is(ErrMalformedRow)")
	}
	if err.Error() != `row 3: field "start time": missing` {
		t.Errorf("Error() = %q", err.Error())
	}
}
