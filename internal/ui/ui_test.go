package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/brogergvhs/mangawatch/internal/chapters"
	"github.com/brogergvhs/mangawatch/internal/providers"
	"github.com/brogergvhs/mangawatch/internal/tracking"
	"github.com/brogergvhs/mangawatch/internal/updates"

	"github.com/manifoldco/promptui"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{Out: &buf}

	l.Debugf("hidden %d\n", 1)
	l.Infof("shown %d\n", 2)
	l.Errorf("broken\n")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Fatalf("debug line printed without Debug: %q", got)
	}
	if got != "[INFO] shown 2\n[ERROR] broken\n" {
		t.Fatalf("output = %q", got)
	}

	buf.Reset()
	l.Debug = true
	l.Debugf("now %s\n", "visible")
	if buf.String() != "[DEBUG] now visible\n" {
		t.Fatalf("debug output = %q", buf.String())
	}
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	l.Debugf("x")
	l.Infof("x")
	l.Errorf("x")
}

func TestParseAnswer(t *testing.T) {
	cases := []struct {
		in   string
		want tracking.Decision
		ok   bool
	}{
		{"y", tracking.Allow, true},
		{" YES ", tracking.Allow, true},
		{"n", tracking.Deny, true},
		{"No", tracking.Deny, true},
		{"", 0, false},
		{"maybe", 0, false},
	}

	for _, tc := range cases {
		got, err := parseAnswer(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("parseAnswer(%q) = %v, %v", tc.in, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("parseAnswer(%q) accepted", tc.in)
		}
	}
}

func TestDecisionPromptAsk(t *testing.T) {
	var label string
	p := &DecisionPrompt{run: func(pr promptui.Prompt) (string, error) {
		label, _ = pr.Label.(string)
		if pr.Validate("x") == nil {
			t.Fatal("validator accepted x")
		}
		return "n", nil
	}}

	d, err := p.Ask("https://mangahub.io/chapter/a/")
	if err != nil || d != tracking.Deny {
		t.Fatalf("Ask = %v, %v", d, err)
	}
	if !strings.Contains(label, "https://mangahub.io/chapter/a/") {
		t.Fatalf("label = %q", label)
	}
}

func TestDecisionPromptStops(t *testing.T) {
	for _, perr := range []error{promptui.ErrEOF, promptui.ErrInterrupt} {
		p := &DecisionPrompt{run: func(promptui.Prompt) (string, error) { return "", perr }}
		if _, err := p.Ask("a/"); !errors.Is(err, tracking.ErrStopClassifying) {
			t.Fatalf("%v mapped to %v", perr, err)
		}
	}

	boom := errors.New("tty gone")
	p := &DecisionPrompt{run: func(promptui.Prompt) (string, error) { return "", boom }}
	if _, err := p.Ask("a/"); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestWriteReport(t *testing.T) {
	res := updates.Result{
		Updates: []updates.Report{{
			Series:   "https://mangahub.io/chapter/x/",
			LastRead: chapters.MustNumber("5"),
			Latest:   chapters.MustNumber("7"),
		}},
		Failures: []updates.Failure{{
			Series: "https://mangahub.io/chapter/y/",
			Err:    &providers.FetchError{Series: "https://mangahub.io/chapter/y/", Err: errors.New("status 503")},
		}},
		Checked: 2,
	}

	var out, errOut bytes.Buffer
	if err := WriteReport(&out, &errOut, res); err != nil {
		t.Fatal(err)
	}

	want := "https://mangahub.io/chapter/x/chapter-5    last chapter 7\n"
	if out.String() != want {
		t.Fatalf("report = %q, want %q", out.String(), want)
	}
	if errOut.String() != "failed to check https://mangahub.io/chapter/y/: status 503\n" {
		t.Fatalf("failures = %q", errOut.String())
	}
}

func TestWriteTracked(t *testing.T) {
	var out bytes.Buffer
	tracked := chapters.Tracked{
		"b/": chapters.MustNumber("2"),
		"a/": chapters.MustNumber("10.5"),
	}
	if err := WriteTracked(&out, tracked); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "a/") || !strings.HasSuffix(lines[1], "10.5") {
		t.Fatalf("lines = %q", lines)
	}
}

func TestStatsObserve(t *testing.T) {
	var s Stats
	s.Observe("a/", nil)
	s.Observe("b/", errors.New("x"))

	if s.Fetched.Load() != 2 || s.Failed.Load() != 1 {
		t.Fatalf("stats = %d/%d", s.Fetched.Load(), s.Failed.Load())
	}
}
