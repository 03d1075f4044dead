package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/homekeep/internal/session"
)

// Script is a YAML list of steps replayed against a fresh session.
//
//	steps:
//	  - command: create-household
//	    name: Khan Family
//	  - command: add-expense
//	    name: Rent
//	    amount: 30000
//	    category: Other
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one scripted form submission.
type Step struct {
	Command  string `yaml:"command"`
	Name     string `yaml:"name,omitempty"`
	Amount   string `yaml:"amount,omitempty"`
	Category string `yaml:"category,omitempty"`
	Priority string `yaml:"priority,omitempty"`
	Item     string `yaml:"item,omitempty"`
	Premium  bool   `yaml:"premium,omitempty"`
}

// Request converts the step to a session request.
func (s Step) Request() (session.Request, error) {
	kind, err := session.ParseKind(s.Command)
	if err != nil {
		return session.Request{}, err
	}
	return session.Request{
		Kind:     kind,
		Name:     s.Name,
		Amount:   s.Amount,
		Category: s.Category,
		Priority: s.Priority,
		Item:     s.Item,
		Premium:  s.Premium,
	}, nil
}

// ParseScript decodes a script and converts every step. Unknown keys and
// unknown commands are errors.
func ParseScript(r io.Reader) ([]session.Request, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var script Script
	if err := dec.Decode(&script); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing script: %w", err)
	}

	reqs := make([]session.Request, 0, len(script.Steps))
	for i, step := range script.Steps {
		req, err := step.Request()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// LoadScript reads and parses a script file.
func LoadScript(path string) ([]session.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()
	return ParseScript(f)
}

// Replay dispatches reqs in order, rendering each result. It stops at the
// first command that fails to run.
func (sh *Shell) Replay(ctx context.Context, reqs []session.Request) error {
	for i, req := range reqs {
		sh.println(SubtleStyle.Render(fmt.Sprintf("> %s", req.Kind)))
		if err := sh.dispatch(ctx, req); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}
