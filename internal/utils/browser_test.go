package utils

import (
	"path/filepath"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"linux", "xdg-open"},
		{"darwin", "open"},
		{"windows", "rundll32"},
	}
	for _, tt := range tests {
		cmd := browserCommand(tt.goos, "http://localhost:8080")
		if cmd == nil {
			t.Fatalf("%s: no command", tt.goos)
		}
		if got := filepath.Base(cmd.Args[0]); got != tt.want {
			t.Errorf("%s: command = %q, want %q", tt.goos, got, tt.want)
		}
		if last := cmd.Args[len(cmd.Args)-1]; last != "http://localhost:8080" {
			t.Errorf("%s: url arg = %q", tt.goos, last)
		}
	}
	if browserCommand("plan9", "x") != nil {
		t.Error("expected no command for plan9")
	}
}

func TestGenerateState(t *testing.T) {
	a, b := GenerateState(), GenerateState()
	if len(a) != 32 {
		t.Errorf("state length = %d", len(a))
	}
	if a == b {
		t.Error("states repeat")
	}
}
