package timer

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
)

var reportRe = regexp.MustCompile(`^\[(.+)\] took (\d+\.\d{4}) ms\.\n$`)

func TestEndEmitsReport(t *testing.T) {
	var buf bytes.Buffer

	s := Begin(&buf, "case A")
	time.Sleep(time.Millisecond)
	s.End()

	m := reportRe.FindStringSubmatch(buf.String())
	if m == nil {
		t.Fatalf("output %q does not match report format", buf.String())
	}

	if m[1] != "case A" {
		t.Errorf("label = %q, want %q", m[1], "case A")
	}

	ms, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		t.Fatalf("parse reported ms: %v", err)
	}

	if ms < 0 {
		t.Errorf("reported ms = %f, want >= 0", ms)
	}
}

func TestEndEmptyBody(t *testing.T) {
	var buf bytes.Buffer

	s := Begin(&buf, "empty")
	s.End()

	m := reportRe.FindStringSubmatch(buf.String())
	if m == nil {
		t.Fatalf("output %q does not match report format", buf.String())
	}

	ms, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		t.Fatalf("parse reported ms: %v", err)
	}

	if ms < 0 {
		t.Errorf("reported ms = %f, want >= 0", ms)
	}
}

func TestEndReportsExactlyOnce(t *testing.T) {
	var buf bytes.Buffer

	s := Begin(&buf, "once")
	s.End()
	s.End()
	s.End()

	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Errorf("report lines = %d, want 1", got)
	}
}

func TestDeferredEndFiresOnPanic(t *testing.T) {
	var buf bytes.Buffer

	func() {
		defer func() { _ = recover() }()

		s := Begin(&buf, "panicking")
		defer s.End()

		panic("boom")
	}()

	if !reportRe.MatchString(buf.String()) {
		t.Errorf("output %q does not match report format after panic",
			buf.String())
	}
}

func TestElapsedAfterEnd(t *testing.T) {
	var buf bytes.Buffer

	s := Begin(&buf, "elapsed")
	time.Sleep(time.Millisecond)
	s.End()

	if s.Elapsed() <= 0 {
		t.Errorf("Elapsed = %v, want > 0", s.Elapsed())
	}

	if s.ElapsedMs() < 0 {
		t.Errorf("ElapsedMs = %f, want >= 0", s.ElapsedMs())
	}
}
