package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestNewReporterUnderCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter(&bytes.Buffer{}, "x").(*CIReporter); !ok {
		t.Error("expected CIReporter under CI")
	}
}

func TestNewReporterTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	if _, ok := NewReporter(&bytes.Buffer{}, "x").(*TerminalReporter); !ok {
		t.Error("expected TerminalReporter outside CI")
	}
}

func TestCIReporterCountsConcurrentSteps(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{w: &buf}
	r.Start(4)

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Step("game " + string(rune('a'+i)))
		}()
	}
	wg.Wait()
	r.Finish()

	out := buf.String()
	if !strings.HasPrefix(out, "Checking 4 games\n") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "[4/4] ") {
		t.Errorf("missing final step: %q", out)
	}
	if !strings.HasSuffix(out, "Check complete\n") {
		t.Errorf("missing footer: %q", out)
	}
}

func TestTerminalReporterWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{w: &buf, description: "Checking"}
	r.Start(2)
	r.Step("one")
	r.Step("two")
	r.Finish()
	if buf.Len() == 0 {
		t.Error("expected progress output")
	}
}
