package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ConfirmConfig configures a yes/no style prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures a single-select menu. Hints are shown beside the
// option with the same index; Current is the preselected option.
type SelectConfig struct {
	Message  string
	Options  []string
	Hints    []string
	Current  int
	Help     string
	PageSize int
}

// maxMenuRows caps how many options a menu shows before scrolling.
const maxMenuRows = 12

// PromptDriver abstracts the terminal so browsing logic can be tested
// without a real terminal and callers can swap implementations.
type PromptDriver interface {
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out io.Writer
}

// NewSurveyDriver returns the terminal driver backed by survey. Info lines
// go to out, or stdout when out is nil.
func NewSurveyDriver(out io.Writer) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out}
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, promptError(err)
	}
	return out, nil
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(cfg.Options) == 0 {
		return -1, fmt.Errorf("tui: menu %q has no options", cfg.Message)
	}
	var out int
	prompt := &survey.Select{
		Message:     cfg.Message,
		Options:     cfg.Options,
		Help:        cfg.Help,
		PageSize:    menuRows(cfg),
		Description: hintFor(cfg.Hints),
	}
	if cfg.Current >= 0 && cfg.Current < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.Current]
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return -1, promptError(err)
	}
	return out, nil
}

// menuRows shows every page of a carousel at once up to maxMenuRows.
func menuRows(cfg SelectConfig) int {
	rows := cfg.PageSize
	if rows <= 0 {
		rows = len(cfg.Options)
	}
	return min(rows, maxMenuRows)
}

func hintFor(hints []string) func(value string, index int) string {
	if len(hints) == 0 {
		return nil
	}
	return func(_ string, index int) string {
		if index < 0 || index >= len(hints) {
			return ""
		}
		return hints[index]
	}
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// promptError maps Ctrl+C and a closed stdin to ErrAborted so browsing ends
// quietly.
func promptError(err error) error {
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
		return ErrAborted
	}
	return err
}
