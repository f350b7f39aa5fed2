// Package writer provides AI-assisted note drafting. It coordinates the
// LLM client and the repository to turn a topic into saved drafts.
// Both CLI and TUI can use this package.
package writer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/writestack/writestack/internal/ai"
	"github.com/writestack/writestack/internal/note"
)

// ErrMaxRetriesExceeded is returned when all retry attempts fail validation.
var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded, validation still failing")

// DefaultCount is how many drafts a request produces when unspecified.
const DefaultCount = 3

// MaxBodyLength caps a single draft's length. Short-form posts read best
// well under this; the cap mostly catches runaway generations.
const MaxBodyLength = 1000

// Writer orchestrates draft generation using the LLM client and repository.
type Writer struct {
	client ai.Client
	repo   note.Repository

	// Conversation state for interactive refinement
	messages []ai.Message
	last     *draftResponse
}

// New creates a Writer with the given dependencies.
func New(client ai.Client, repo note.Repository) *Writer {
	return &Writer{
		client: client,
		repo:   repo,
	}
}

// DraftRequest contains the input for draft generation.
type DraftRequest struct {
	Topic string // What the drafts should be about
	Voice string // Optional voice/style guidance
	Count int    // Number of drafts to generate; DefaultCount if zero
}

// DraftResult contains generated drafts ready for review.
type DraftResult struct {
	Drafts []Draft

	// Validation info (populated if retries exhausted)
	ValidationErrors []ValidationError
}

// Draft is a single generated note body.
type Draft struct {
	Body string `json:"body"`
}

// HasValidationErrors returns true if there are unresolved validation errors.
func (r *DraftResult) HasValidationErrors() bool {
	return len(r.ValidationErrors) > 0
}

// draftResponse is the JSON shape the model is asked to return.
type draftResponse struct {
	Drafts []Draft `json:"drafts"`
}

// Generate produces drafts from a topic with validation and retry.
// If maxRetries are exhausted, the result carries ValidationErrors.
func (w *Writer) Generate(ctx context.Context, req DraftRequest, maxRetries int) (*DraftResult, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, errors.New("topic is required")
	}
	count := req.Count
	if count <= 0 {
		count = DefaultCount
	}

	w.messages = []ai.Message{
		{Role: "system", Content: systemPrompt(count, req.Voice)},
		{Role: "user", Content: req.Topic},
	}

	return w.generateWithRetry(ctx, count, maxRetries)
}

// Refine adds feedback to the conversation and regenerates.
// Used when the user wants to adjust the proposed drafts.
func (w *Writer) Refine(ctx context.Context, feedback string, maxRetries int) (*DraftResult, error) {
	if len(w.messages) == 0 {
		return nil, errors.New("no active drafting session")
	}

	if w.last != nil {
		respJSON, _ := json.Marshal(w.last)
		w.messages = append(w.messages, ai.Message{
			Role:    "assistant",
			Content: string(respJSON),
		})
	}
	w.messages = append(w.messages, ai.Message{Role: "user", Content: feedback})

	count := DefaultCount
	if w.last != nil && len(w.last.Drafts) > 0 {
		count = len(w.last.Drafts)
	}

	return w.generateWithRetry(ctx, count, maxRetries)
}

func (w *Writer) generateWithRetry(ctx context.Context, count, maxRetries int) (*DraftResult, error) {
	var lastValidation ValidationResult
	for attempt := 0; attempt <= maxRetries; attempt++ {
		var resp draftResponse
		if err := w.client.ChatJSON(ctx, w.messages, &resp); err != nil {
			return nil, fmt.Errorf("generating drafts (attempt %d): %w", attempt+1, err)
		}
		w.last = &resp

		lastValidation = validateDrafts(resp.Drafts, count)
		if lastValidation.Valid {
			return &DraftResult{Drafts: resp.Drafts}, nil
		}

		if attempt < maxRetries {
			respJSON, _ := json.Marshal(resp)
			w.messages = append(w.messages, ai.Message{
				Role:    "assistant",
				Content: string(respJSON),
			})
			w.messages = append(w.messages, ai.Message{
				Role:    "user",
				Content: lastValidation.FormatErrors(),
			})
		}
	}

	return &DraftResult{
		Drafts:           w.last.Drafts,
		ValidationErrors: lastValidation.Errors,
	}, nil
}

// Save persists the drafts to the repository.
func (w *Writer) Save(ctx context.Context, result *DraftResult) ([]*note.Note, error) {
	if result.HasValidationErrors() {
		return nil, errors.New("cannot save: result has validation errors")
	}

	var saved []*note.Note
	for _, d := range result.Drafts {
		n, err := note.NewDraft(d.Body)
		if err != nil {
			return saved, fmt.Errorf("creating draft: %w", err)
		}
		n.Status = note.StatusChatGenerated
		if err := w.repo.CreateNote(ctx, n); err != nil {
			return saved, fmt.Errorf("saving draft: %w", err)
		}
		saved = append(saved, n)
	}

	return saved, nil
}

func systemPrompt(count int, voice string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are a ghostwriter for short social posts. The user gives you a topic;
you respond with exactly %d distinct post drafts.

Rules:
- Each draft stands alone. No numbering, no hashtags unless asked.
- Keep each draft under %d characters.
- Vary the angle across drafts: an observation, a question, a story beat.

Respond with JSON only, in this shape:
{"drafts": [{"body": "..."}]}
`, count, MaxBodyLength)

	if strings.TrimSpace(voice) != "" {
		fmt.Fprintf(&b, "\nVoice guidance from the user:\n%s\n", voice)
	}

	return b.String()
}
