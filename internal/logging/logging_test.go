package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestInfoWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(defaultWriter())

	Info("phase started", Fields{"phase": "Process", "batches": 3})

	out := buf.String()
	if !strings.Contains(out, "phase started") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "Process") {
		t.Errorf("expected field value in output, got %q", out)
	}
}

func TestWarnAndErrorDoNotPanic(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(defaultWriter())

	Warn("worker failed on batch", Fields{"batch_id": "b1"})
	Error("normalize failed", errTest{}, Fields{"nwt_source": "nwt"})

	if buf.Len() == 0 {
		t.Errorf("expected some output to be written")
	}
}

type errTest struct{}

func (errTest) Error() string { return "boom" }
