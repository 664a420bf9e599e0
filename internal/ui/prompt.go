package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/brogergvhs/mangawatch/internal/chapters"
	"github.com/brogergvhs/mangawatch/internal/tracking"

	"github.com/manifoldco/promptui"
)

var errAnswer = errors.New("please either answer with 'y' or 'n'")

// DecisionPrompt asks whether a newly seen series should be followed.
type DecisionPrompt struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser

	// run replaces promptui in tests.
	run func(promptui.Prompt) (string, error)
}

func parseAnswer(s string) (tracking.Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return tracking.Allow, nil
	case "n", "no":
		return tracking.Deny, nil
	}
	return 0, errAnswer
}

// Ask implements tracking.Asker. End of input and Ctrl+C stop the
// classification instead of failing the run.
func (p *DecisionPrompt) Ask(key chapters.SeriesKey) (tracking.Decision, error) {
	prompt := promptui.Prompt{
		Label: fmt.Sprintf("Do you want to track %s ? [y/n]", key),
		Validate: func(s string) error {
			_, err := parseAnswer(s)
			return err
		},
		Stdin:  p.Stdin,
		Stdout: p.Stdout,
	}

	run := p.run
	if run == nil {
		run = func(pr promptui.Prompt) (string, error) { return pr.Run() }
	}

	answer, err := run(prompt)
	if errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrInterrupt) {
		return 0, tracking.ErrStopClassifying
	}
	if err != nil {
		return 0, err
	}

	return parseAnswer(answer)
}

// Confirm asks a yes/no question and reports a yes.
func Confirm(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	return err == nil
}
