package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

type fakeResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type fakeModels struct {
	mu    sync.Mutex
	calls []fakeCall
	queue []fakeResponse
}

func (f *fakeModels) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fakeResponse{resp: resp, err: err})
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{model: model, contents: contents, config: config})
	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := f.queue[0]
	f.queue = f.queue[1:]
	return res.resp, res.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func noSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var slept []time.Duration
	originalSleep := sleep
	sleep = func(d time.Duration) { slept = append(slept, d) }
	t.Cleanup(func() { sleep = originalSleep })
	return &slept
}

func TestGeneratorRetriesOnTemporaryError(t *testing.T) {
	slept := noSleep(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	models.enqueue(textResponse("retry ok"), nil)

	g := newGenerator(models, "gemini-pro", 2, zap.NewNop())

	output, err := g.GenerateContent(context.Background(), "system", "message")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output != "retry ok" {
		t.Fatalf("unexpected output: %q", output)
	}
	if len(models.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.calls))
	}
	if len(*slept) != 1 || (*slept)[0] != baseBackoff {
		t.Fatalf("expected one base backoff, got %v", *slept)
	}

	for _, call := range models.calls {
		if call.model != "gemini-pro" {
			t.Fatalf("unexpected model %q", call.model)
		}
		if call.config == nil || call.config.SystemInstruction == nil {
			t.Fatalf("expected system instruction to be set")
		}
		if got := call.config.SystemInstruction.Parts[0].Text; got != "system" {
			t.Fatalf("unexpected system instruction: %q", got)
		}
		if len(call.contents) != 1 || call.contents[0].Parts[0].Text != "message" {
			t.Fatalf("unexpected contents: %+v", call.contents)
		}
	}
}

func TestGeneratorStopsAfterRetriesExhausted(t *testing.T) {
	noSleep(t)

	models := &fakeModels{}
	tempErr := genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}
	models.enqueue(nil, tempErr)
	models.enqueue(nil, tempErr)

	g := newGenerator(models, "gemini-pro", 2, zap.NewNop())

	_, err := g.GenerateContent(context.Background(), "sys", "msg")
	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected wrapped api error, got %v", err)
	}
	if len(models.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.calls))
	}
}

func TestGeneratorQuotaDelays(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		wantCalls int
		wantSleep time.Duration
	}{
		{name: "long delay is not retried", message: "quota exhausted, retry after 60 seconds", wantCalls: 1},
		{name: "short delay is honoured", message: "Please retry in 1.5s.", wantCalls: 2, wantSleep: 1500 * time.Millisecond},
		{name: "no delay falls back to backoff", message: "slow down", wantCalls: 2, wantSleep: baseBackoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slept := noSleep(t)

			models := &fakeModels{}
			models.enqueue(nil, genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED", Message: tt.message})
			models.enqueue(textResponse("ok"), nil)

			g := newGenerator(models, "", 3, zap.NewNop())
			_, _ = g.GenerateContent(context.Background(), "", "msg")

			if len(models.calls) != tt.wantCalls {
				t.Fatalf("expected %d calls, got %d", tt.wantCalls, len(models.calls))
			}
			if tt.wantSleep > 0 && (len(*slept) != 1 || (*slept)[0] != tt.wantSleep) {
				t.Fatalf("expected sleep %v, got %v", tt.wantSleep, *slept)
			}
		})
	}
}

func TestGeneratorDoesNotRetryClientErrors(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusBadRequest})
	models.enqueue(nil, fmt.Errorf("transport: %w", errors.New("reset")))

	g := newGenerator(models, "", 3, zap.NewNop())
	for i := 0; i < 2; i++ {
		if _, err := g.GenerateContent(context.Background(), "", "msg"); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	if len(models.calls) != 2 {
		t.Fatalf("expected no retries, got %d calls", len(models.calls))
	}
}

func TestGeneratorValidation(t *testing.T) {
	g := newGenerator(&fakeModels{}, "", 0, nil)
	if g.Model() != defaultModel || g.maxRetries != defaultMaxRetries {
		t.Fatalf("unexpected defaults: %q %d", g.Model(), g.maxRetries)
	}
	if _, err := g.GenerateContent(context.Background(), "sys", "   "); err == nil {
		t.Fatalf("expected error for empty message")
	}

	var nilGen *Generator
	if _, err := nilGen.GenerateContent(context.Background(), "", "msg"); err == nil {
		t.Fatalf("expected error for nil generator")
	}
}

func TestGeneratorEmptyResponse(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(&genai.GenerateContentResponse{}, nil)

	g := newGenerator(models, "", 1, zap.NewNop())
	if _, err := g.GenerateContent(context.Background(), "", "msg"); err == nil {
		t.Fatalf("expected error for empty response")
	}
}

func TestWaitHonoursContext(t *testing.T) {
	block := make(chan struct{})
	originalSleep := sleep
	sleep = func(time.Duration) { <-block }
	t.Cleanup(func() {
		close(block)
		sleep = originalSleep
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := wait(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := wait(context.Background(), 0); err != nil {
		t.Fatalf("zero wait must return immediately, got %v", err)
	}
}
