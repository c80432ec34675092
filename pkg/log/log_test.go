package log

import (
	"bytes"
	"strings"
	"testing"
)

func capture(t *testing.T, name string) (*Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() { SetOutput(nil) })
	return ForService(name), buf
}

func TestLevelsAndPrefix(t *testing.T) {
	l, buf := capture(t, "levels")

	l.Infof("indexed %d", 3)
	l.Warnf("slow")
	l.Errorf("broken")

	out := buf.String()
	for _, want := range []string{"INFO [levels>] indexed 3", "WARN [levels>] slow", "ERROR [levels>] broken"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestDebugPerName(t *testing.T) {
	SetGlobalDebug(false)
	l, buf := capture(t, "debug-one")
	other := ForService("debug-two")

	l.Debugf("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug printed while disabled: %q", buf.String())
	}

	EnableDebugFor("debug-one")
	defer DisableDebugFor("debug-one")
	l.Debugf("shown")
	other.Debugf("still hidden")

	out := buf.String()
	if !strings.Contains(out, "DEBUG [debug-one>] shown") {
		t.Fatalf("expected debug line, got %q", out)
	}
	if strings.Contains(out, "still hidden") {
		t.Fatalf("debug leaked to another logger: %q", out)
	}
}

func TestDebugGlobal(t *testing.T) {
	l, buf := capture(t, "debug-global")
	SetGlobalDebug(true)
	defer SetGlobalDebug(false)

	l.Debugf("everywhere")
	if !strings.Contains(buf.String(), "everywhere") {
		t.Fatalf("expected global debug output, got %q", buf.String())
	}
}

func TestForServiceReusesLogger(t *testing.T) {
	if ForService("same") != ForService("same") {
		t.Fatal("expected the same logger for the same name")
	}
}

func TestSetOutputUpdatesExisting(t *testing.T) {
	l := ForService("existing")
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(nil)

	l.Infof("redirected")
	if !strings.Contains(buf.String(), "redirected") {
		t.Fatalf("existing logger not redirected: %q", buf.String())
	}
}
