package writer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/writestack/writestack/internal/ai"
	"github.com/writestack/writestack/internal/note"
)

// fakeClient returns canned JSON responses in sequence.
type fakeClient struct {
	responses []string
	calls     int
	messages  [][]ai.Message
}

func (f *fakeClient) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	f.messages = append(f.messages, messages)
	if f.calls >= len(f.responses) {
		return "", errors.New("no more responses")
	}
	resp := f.responses[f.calls]
	f.calls++
	return resp, nil
}

func (f *fakeClient) ChatJSON(ctx context.Context, messages []ai.Message, result any) error {
	content, err := f.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(content), result)
}

// fakeRepo records created notes.
type fakeRepo struct {
	note.Repository
	created   []*note.Note
	createErr error
}

func (f *fakeRepo) CreateNote(ctx context.Context, n *note.Note) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, n)
	return nil
}

func draftsJSON(bodies ...string) string {
	drafts := make([]Draft, len(bodies))
	for i, b := range bodies {
		drafts[i] = Draft{Body: b}
	}
	data, _ := json.Marshal(draftResponse{Drafts: drafts})
	return string(data)
}

func TestGenerate(t *testing.T) {
	client := &fakeClient{responses: []string{
		draftsJSON("First angle.", "Second angle.", "Third angle."),
	}}
	w := New(client, &fakeRepo{})

	result, err := w.Generate(context.Background(), DraftRequest{Topic: "writing consistency"}, 2)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if result.HasValidationErrors() {
		t.Fatalf("unexpected validation errors: %v", result.ValidationErrors)
	}
	if len(result.Drafts) != DefaultCount {
		t.Errorf("expected %d drafts, got %d", DefaultCount, len(result.Drafts))
	}
	if client.calls != 1 {
		t.Errorf("expected 1 LLM call, got %d", client.calls)
	}
}

func TestGenerate_EmptyTopic(t *testing.T) {
	w := New(&fakeClient{}, &fakeRepo{})

	_, err := w.Generate(context.Background(), DraftRequest{Topic: "   "}, 0)
	if err == nil {
		t.Fatal("expected error for empty topic")
	}
}

func TestGenerate_RetriesOnValidationFailure(t *testing.T) {
	client := &fakeClient{responses: []string{
		draftsJSON("Only one."),
		draftsJSON("First.", "Second.", "Third."),
	}}
	w := New(client, &fakeRepo{})

	result, err := w.Generate(context.Background(), DraftRequest{Topic: "growth"}, 2)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if result.HasValidationErrors() {
		t.Fatalf("unexpected validation errors: %v", result.ValidationErrors)
	}
	if client.calls != 2 {
		t.Errorf("expected 2 LLM calls, got %d", client.calls)
	}

	// The retry must include the error feedback as a user message.
	last := client.messages[1]
	feedback := last[len(last)-1]
	if feedback.Role != "user" || !strings.Contains(feedback.Content, "errors") {
		t.Errorf("expected error feedback message, got %+v", feedback)
	}
}

func TestGenerate_RetriesExhausted(t *testing.T) {
	client := &fakeClient{responses: []string{
		draftsJSON("Only one."),
		draftsJSON("Still one."),
	}}
	w := New(client, &fakeRepo{})

	result, err := w.Generate(context.Background(), DraftRequest{Topic: "growth"}, 1)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !result.HasValidationErrors() {
		t.Fatal("expected validation errors after exhausted retries")
	}
	if client.calls != 2 {
		t.Errorf("expected 2 LLM calls, got %d", client.calls)
	}
}

func TestGenerate_RespectsCount(t *testing.T) {
	client := &fakeClient{responses: []string{
		draftsJSON("One.", "Two."),
	}}
	w := New(client, &fakeRepo{})

	result, err := w.Generate(context.Background(), DraftRequest{Topic: "growth", Count: 2}, 0)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Drafts) != 2 {
		t.Errorf("expected 2 drafts, got %d", len(result.Drafts))
	}
}

func TestRefine(t *testing.T) {
	client := &fakeClient{responses: []string{
		draftsJSON("Casual one.", "Casual two.", "Casual three."),
		draftsJSON("Formal one.", "Formal two.", "Formal three."),
	}}
	w := New(client, &fakeRepo{})

	if _, err := w.Generate(context.Background(), DraftRequest{Topic: "habits"}, 0); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	result, err := w.Refine(context.Background(), "make them more formal", 0)
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	if len(result.Drafts) != 3 {
		t.Errorf("expected 3 drafts, got %d", len(result.Drafts))
	}
	if result.Drafts[0].Body != "Formal one." {
		t.Errorf("expected refined drafts, got %q", result.Drafts[0].Body)
	}

	// The refinement call must carry the previous drafts and the feedback.
	last := client.messages[1]
	sawFeedback := false
	for _, m := range last {
		if m.Role == "user" && m.Content == "make them more formal" {
			sawFeedback = true
		}
	}
	if !sawFeedback {
		t.Error("expected feedback message in conversation")
	}
}

func TestRefine_NoSession(t *testing.T) {
	w := New(&fakeClient{}, &fakeRepo{})

	_, err := w.Refine(context.Background(), "more formal", 0)
	if err == nil {
		t.Fatal("expected error without an active session")
	}
}

func TestSave(t *testing.T) {
	repo := &fakeRepo{}
	w := New(&fakeClient{}, repo)

	result := &DraftResult{Drafts: []Draft{
		{Body: "First draft body."},
		{Body: "Second draft body."},
	}}

	saved, err := w.Save(context.Background(), result)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if len(saved) != 2 {
		t.Fatalf("expected 2 saved notes, got %d", len(saved))
	}
	for _, n := range saved {
		if n.Status != note.StatusChatGenerated {
			t.Errorf("status = %q, want %q", n.Status, note.StatusChatGenerated)
		}
		if n.ScheduledTo != nil {
			t.Error("expected saved draft to be unscheduled")
		}
	}
	if len(repo.created) != 2 {
		t.Errorf("expected 2 repository inserts, got %d", len(repo.created))
	}
}

func TestSave_RejectsInvalidResult(t *testing.T) {
	w := New(&fakeClient{}, &fakeRepo{})

	result := &DraftResult{
		Drafts:           []Draft{{Body: "One."}},
		ValidationErrors: []ValidationError{{DraftIndex: -1, Field: "count", Message: "short"}},
	}

	if _, err := w.Save(context.Background(), result); err == nil {
		t.Fatal("expected error saving invalid result")
	}
}

func TestValidateDrafts(t *testing.T) {
	long := strings.Repeat("a", MaxBodyLength+1)

	tests := []struct {
		name    string
		drafts  []Draft
		want    int
		valid   bool
		errText string
	}{
		{
			name:   "valid",
			drafts: []Draft{{Body: "One."}, {Body: "Two."}},
			want:   2,
			valid:  true,
		},
		{
			name:    "wrong count",
			drafts:  []Draft{{Body: "One."}},
			want:    2,
			errText: "expected 2 drafts",
		},
		{
			name:    "empty body",
			drafts:  []Draft{{Body: "One."}, {Body: "  "}},
			want:    2,
			errText: "empty",
		},
		{
			name:    "too long",
			drafts:  []Draft{{Body: long}},
			want:    1,
			errText: fmt.Sprintf("maximum is %d", MaxBodyLength),
		},
		{
			name:    "duplicates",
			drafts:  []Draft{{Body: "Same."}, {Body: "Same."}},
			want:    2,
			errText: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateDrafts(tt.drafts, tt.want)
			if result.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v (errors: %v)", result.Valid, tt.valid, result.Errors)
			}
			if tt.errText != "" {
				if len(result.Errors) == 0 {
					t.Fatal("expected validation errors")
				}
				found := false
				for _, e := range result.Errors {
					if strings.Contains(e.String(), tt.errText) {
						found = true
					}
				}
				if !found {
					t.Errorf("expected error containing %q, got %v", tt.errText, result.Errors)
				}
			}
		})
	}
}
