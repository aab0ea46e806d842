package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)
	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Fatalf("lines below WARN were written: %q", out)
	}
	if !strings.Contains(out, "WARN: warn 3") || !strings.Contains(out, "ERROR: error 4") {
		t.Fatalf("missing WARN/ERROR lines: %q", out)
	}
}

func TestTaggedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := New(&buf, LevelError)
	gate := root.Tagged("GATE")
	gate.Infof("hidden")
	root.SetLevel(LevelDebug)
	gate.Debugf("armed %s", "x")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("tagged logger ignored parent level: %q", out)
	}
	if !strings.Contains(out, "DEBUG: [GATE] armed x") {
		t.Fatalf("missing tagged line: %q", out)
	}
}

func TestLevelFromString(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"Error":   LevelError,
		"off":     LevelNone,
		"bogus":   LevelInfo,
	}
	for in, want := range cases {
		if got := LevelFromString(in); got != want {
			t.Fatalf("LevelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}
