package display

import (
	"strings"
	"testing"

	"github.com/sweeney/kitchen-timer/internal/logic"
)

func TestFrame(t *testing.T) {
	tests := []struct {
		in   logic.TimeOfDay
		want string
	}{
		{logic.TimeOfDay{HH: 12, MM: 13}, "12:13\r"},
		{logic.TimeOfDay{HH: 0, MM: 0}, " 0:00\r"},
		{logic.TimeOfDay{HH: 0, MM: 1}, " 0:01\r"},
		{logic.TimeOfDay{HH: 23, MM: 59}, "23:59\r"},
		{logic.TimeOfDay{HH: 9, MM: 5}, " 9:05\r"},
	}
	for _, tt := range tests {
		if got := Frame(tt.in); got != tt.want {
			t.Errorf("Frame(%v): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriterRenderer(t *testing.T) {
	var sb strings.Builder
	r := NewWriterRenderer(&sb)

	if err := r.RenderTime(logic.TimeOfDay{HH: 12, MM: 13}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.RenderTime(logic.TimeOfDay{HH: 0, MM: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := sb.String(), "12:13\r 0:01\r"; got != want {
		t.Errorf("written frames: got %q, want %q", got, want)
	}
	if err := r.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
}

func TestFakeRendererRecords(t *testing.T) {
	f := NewFakeRenderer()
	f.RenderTime(logic.TimeOfDay{HH: 12, MM: 13})
	f.RenderTime(logic.TimeOfDay{HH: 0, MM: 0})

	if len(f.Times) != 2 {
		t.Fatalf("recorded %d renders, want 2", len(f.Times))
	}
	if f.Times[0] != (logic.TimeOfDay{HH: 12, MM: 13}) {
		t.Errorf("first render: got %v", f.Times[0])
	}
	if f.Frames[1] != " 0:00\r" {
		t.Errorf("second frame: got %q", f.Frames[1])
	}
}
