// Package cli presents the roster on a terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"activityroster/internal/application"
	"activityroster/internal/domain/entities"
	"activityroster/internal/ports/input"
	"activityroster/internal/ports/output"
)

// ErrActionFailed is returned when the backend did not accept an action.
// The status text has already been printed.
var ErrActionFailed = errors.New("action failed")

// Presenter runs the roster use cases for one terminal session.
type Presenter struct {
	roster     input.RosterUseCase
	translator output.T
	locale     string
	in         *bufio.Reader
	out        io.Writer
	errOut     io.Writer
}

func NewPresenter(roster input.RosterUseCase, translator output.T, locale string, in io.Reader, out, errOut io.Writer) *Presenter {
	return &Presenter{
		roster:     roster,
		translator: translator,
		locale:     locale,
		in:         bufio.NewReader(in),
		out:        out,
		errOut:     errOut,
	}
}

func (p *Presenter) t(key string, data map[string]any) string {
	return p.translator.T(p.locale, key, data)
}

// List prints every activity in response order.
func (p *Presenter) List(ctx context.Context) error {
	snap, err := p.roster.Load(ctx)
	if err != nil {
		fmt.Fprintln(p.errOut, p.t(application.KeyLoadFailed, nil))
		return err
	}
	for i, a := range snap.Activities {
		if i > 0 {
			fmt.Fprintln(p.out)
		}
		p.printActivity(a)
	}
	return nil
}

func (p *Presenter) printActivity(a entities.Activity) {
	fmt.Fprintln(p.out, a.Name)
	if a.Description != "" {
		fmt.Fprintf(p.out, "  %s\n", a.Description)
	}
	fmt.Fprintf(p.out, "  %s %s\n", p.t(application.KeySchedule, nil), a.Schedule)
	fmt.Fprintf(p.out, "  %s %s\n", p.t(application.KeyAvailability, nil),
		p.t(application.KeySpotsLeft, map[string]any{"Count": a.SpotsLeft()}))
	if !a.HasParticipants() {
		fmt.Fprintf(p.out, "  %s\n", p.t(application.KeyNoParticipants, nil))
		return
	}
	fmt.Fprintf(p.out, "  %s\n", p.t(application.KeyParticipants, nil))
	for _, e := range a.Participants {
		fmt.Fprintf(p.out, "    - %s\n", e)
	}
}

// Signup submits one registration.
func (p *Presenter) Signup(ctx context.Context, reg entities.Registration) error {
	return p.report(p.roster.Signup(ctx, p.locale, reg))
}

// Remove asks before unregistering unless assumeYes is set. A declined or
// incomplete removal sends nothing.
func (p *Presenter) Remove(ctx context.Context, reg entities.Registration, assumeYes bool) error {
	if !reg.Complete() {
		return nil
	}
	if !assumeYes && !p.confirm(p.roster.ConfirmPrompt(p.locale, reg)) {
		return nil
	}
	return p.report(p.roster.Remove(ctx, p.locale, reg))
}

func (p *Presenter) confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "o", "oui":
		return true
	default:
		return false
	}
}

func (p *Presenter) report(out input.Outcome) error {
	switch out.Kind {
	case input.OutcomeSkipped:
		return nil
	case input.OutcomeOK:
		fmt.Fprintln(p.out, out.Status.Text)
		return nil
	default:
		fmt.Fprintln(p.errOut, out.Status.Text)
		return fmt.Errorf("%w: %s", ErrActionFailed, out.Kind)
	}
}
