package log

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		SetOutput(nil, nil)
		SetVerbose(false)
		SetForceStdErr(false)
		EnableLogs()
	})
	return &out, &errOut
}

func TestDebugfRespectsVerbose(t *testing.T) {
	out, _ := captureOutput(t)

	SetVerbose(false)
	Debugf("hidden %d", 1)
	if out.Len() != 0 {
		t.Errorf("Expected no debug output when not verbose, got %q", out.String())
	}

	SetVerbose(true)
	Debugf("shown %d", 2)
	if !strings.Contains(out.String(), "[DBG]") || !strings.Contains(out.String(), "shown 2") {
		t.Errorf("Expected debug output, got %q", out.String())
	}
}

func TestLevelsGoToTheRightStream(t *testing.T) {
	out, errOut := captureOutput(t)

	Infof("info")
	Warnf("warn")
	Errorf("error")

	if !strings.Contains(out.String(), "[INF]") || !strings.Contains(out.String(), "[WRN]") {
		t.Errorf("Expected info and warn on stdout, got %q", out.String())
	}
	if strings.Contains(out.String(), "[ERR]") {
		t.Errorf("Did not expect error on stdout, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), logPrefixes[levelError]+" error") {
		t.Errorf("Expected error on stderr, got %q", errOut.String())
	}
}

func TestForceStdErr(t *testing.T) {
	out, errOut := captureOutput(t)

	SetForceStdErr(true)
	Infof("to stderr")

	if out.Len() != 0 {
		t.Errorf("Expected empty stdout, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "to stderr") {
		t.Errorf("Expected message on stderr, got %q", errOut.String())
	}
}

func TestDisableLogs(t *testing.T) {
	out, errOut := captureOutput(t)

	DisableLogs()
	if !IsDisabled() {
		t.Fatal("Expected logs to be disabled")
	}
	Infof("nothing")
	Errorf("nothing")

	if out.Len() != 0 || errOut.Len() != 0 {
		t.Errorf("Expected no output, got %q / %q", out.String(), errOut.String())
	}
}

func TestConcurrentWritesDoNotInterleave(t *testing.T) {
	out, _ := captureOutput(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			Infof("line %d", i)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 50 {
		t.Fatalf("Expected 50 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, logPrefixes[levelInfo]+" line ") {
			t.Errorf("Malformed line %q", line)
		}
	}
}
