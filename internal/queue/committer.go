package queue

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCommitInFlight is returned when a reschedule is requested for a note
// that already has one awaiting persistence.
var ErrCommitInFlight = errors.New("a reschedule for this note is already in flight")

// Notifier surfaces the outcome of a commit to the user. Implementations
// are transient (toasts, status lines); errors are never swallowed without
// one of these firing.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// Committer applies a reschedule to the view state immediately, then asks
// the persistence collaborator to make it durable, reverting the local
// change if that fails. No retry is attempted; the user re-initiates.
type Committer struct {
	state    *State
	notifier Notifier
	inFlight map[string]bool
}

// NewCommitter creates a committer over the given state. notifier may be
// nil, in which case notifications are discarded.
func NewCommitter(state *State, notifier Notifier) *Committer {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Committer{
		state:    state,
		notifier: notifier,
		inFlight: make(map[string]bool),
	}
}

// InFlight returns true while a commit for the note awaits persistence.
// Callers use it to disable further actions on that note; commits on
// different notes are independent.
func (c *Committer) InFlight(noteID string) bool {
	return c.inFlight[noteID]
}

// Commit moves the note to its new send time in the view state, then calls
// persist. On success the optimistic state stands and a success
// notification fires. On failure the note's displayed time reverts to its
// pre-commit value, an error notification fires, and the error is returned
// for upstream logging.
func (c *Committer) Commit(ctx context.Context, noteID string, at time.Time, persist func(context.Context) error) error {
	if c.inFlight[noteID] {
		return ErrCommitInFlight
	}

	cmd, err := c.state.RescheduleCommand(noteID, at)
	if err != nil {
		return err
	}

	c.inFlight[noteID] = true
	defer delete(c.inFlight, noteID)

	cmd.Apply()

	if err := persist(ctx); err != nil {
		cmd.Revert()
		c.notifier.Error(fmt.Sprintf("Reschedule failed: %v", err))
		return fmt.Errorf("persisting reschedule: %w", err)
	}

	c.notifier.Success("Note rescheduled to " + at.Format("Jan 2 3:04pm"))
	return nil
}

// CommitUnschedule clears the note's send time optimistically with the
// same persist-or-revert contract as Commit.
func (c *Committer) CommitUnschedule(ctx context.Context, noteID string, persist func(context.Context) error) error {
	if c.inFlight[noteID] {
		return ErrCommitInFlight
	}

	cmd, err := c.state.UnscheduleCommand(noteID)
	if err != nil {
		return err
	}

	c.inFlight[noteID] = true
	defer delete(c.inFlight, noteID)

	cmd.Apply()

	if err := persist(ctx); err != nil {
		cmd.Revert()
		c.notifier.Error(fmt.Sprintf("Unschedule failed: %v", err))
		return fmt.Errorf("persisting unschedule: %w", err)
	}

	c.notifier.Success("Note returned to drafts")
	return nil
}
