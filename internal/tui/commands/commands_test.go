package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/writestack/writestack/internal/note"
)

type fakeRepo struct {
	note.Repository

	notes    []*note.Note
	slots    []*note.RecurringSlot
	listErr  error
	slotsErr error

	gotStart time.Time
	gotEnd   time.Time
}

func (f *fakeRepo) ListNotesByDateRange(_ context.Context, start, end time.Time) ([]*note.Note, error) {
	f.gotStart, f.gotEnd = start, end
	return f.notes, f.listErr
}

func (f *fakeRepo) ListSlots(context.Context) ([]*note.RecurringSlot, error) {
	return f.slots, f.slotsErr
}

func TestLoadMonth(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local)
	repo := &fakeRepo{
		notes: []*note.Note{{ID: "n1", Body: "hi", Status: note.StatusScheduled, ScheduledTo: &at}},
	}

	msg := LoadMonth(repo, time.Date(2026, 3, 20, 14, 30, 0, 0, time.Local))()
	loaded, ok := msg.(MonthLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want MonthLoadedMsg", msg)
	}

	wantStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	wantEnd := time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local)
	if !loaded.Month.Equal(wantStart) {
		t.Errorf("Month = %v, want %v", loaded.Month, wantStart)
	}
	if !repo.gotStart.Equal(wantStart) || !repo.gotEnd.Equal(wantEnd) {
		t.Errorf("queried [%v, %v), want [%v, %v)", repo.gotStart, repo.gotEnd, wantStart, wantEnd)
	}
	if len(loaded.Notes) != 1 {
		t.Errorf("Notes = %d, want 1", len(loaded.Notes))
	}
}

func TestLoadMonth_Error(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("db gone")}

	msg := LoadMonth(repo, time.Now())()
	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("got %T, want ErrMsg", msg)
	}
	if errMsg.Err == nil {
		t.Error("ErrMsg carries no error")
	}
}

func TestCreateDraft(t *testing.T) {
	created := &fakeCreateRepo{}
	msg := CreateDraft(created, "hello world")()
	m, ok := msg.(NoteCreatedMsg)
	if !ok {
		t.Fatalf("got %T, want NoteCreatedMsg", msg)
	}
	if m.Note.Body != "hello world" {
		t.Errorf("Body = %q", m.Note.Body)
	}
	if m.Note.Status != note.StatusDraft {
		t.Errorf("Status = %q, want draft", m.Note.Status)
	}
}

func TestCreateDraft_EmptyBody(t *testing.T) {
	msg := CreateDraft(&fakeCreateRepo{}, "   ")()
	if _, ok := msg.(ErrMsg); !ok {
		t.Fatalf("got %T, want ErrMsg", msg)
	}
}

type fakeCreateRepo struct {
	note.Repository
}

func (f *fakeCreateRepo) CreateNote(context.Context, *note.Note) error { return nil }
