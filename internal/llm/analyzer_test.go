package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amescasi/studyloop/internal/analysis"
)

func fakeAPI(t *testing.T, status int, responseText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") == "" {
			t.Error("request missing x-api-key header")
		}
		if r.Header.Get("anthropic-version") != anthropicVersion {
			t.Errorf("unexpected anthropic-version header: %s", r.Header.Get("anthropic-version"))
		}

		var req messagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("expected a single user message, got %+v", req.Messages)
		}

		w.WriteHeader(status)
		json.NewEncoder(w).Encode(messagesResponse{
			Content: []contentBlock{{Type: "text", Text: responseText}},
		})
	}))
}

func testClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient("test-key", "")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	client.SetBaseURL(server.URL)
	return client
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("", ""); err == nil {
		t.Error("expected an error for an empty API key")
	}
}

func TestRemoteAnalyzer(t *testing.T) {
	input := analysis.Input{
		Topic:          "binary search",
		Notes:          []string{"halves the search space"},
		PlannedMinutes: 30,
		ActualMinutes:  25,
	}

	t.Run("parses embedded JSON", func(t *testing.T) {
		server := fakeAPI(t, http.StatusOK,
			`Here is the analysis: {"summary": "Solid session.", "topic_relevance": 88, "focus_feedback": "Nice pacing."}`)
		defer server.Close()

		got := NewRemoteAnalyzer(testClient(t, server)).Analyze(context.Background(), input)
		if got.Summary != "Solid session." {
			t.Errorf("summary = %q", got.Summary)
		}
		if got.TopicRelevance != 88 {
			t.Errorf("relevance = %v, want 88", got.TopicRelevance)
		}
		if got.FocusFeedback != "Nice pacing." {
			t.Errorf("feedback = %q", got.FocusFeedback)
		}
	})

	t.Run("missing relevance defaults to 50", func(t *testing.T) {
		server := fakeAPI(t, http.StatusOK, `{"summary": "Short.", "focus_feedback": "Fine."}`)
		defer server.Close()

		got := NewRemoteAnalyzer(testClient(t, server)).Analyze(context.Background(), input)
		if got.TopicRelevance != 50 {
			t.Errorf("relevance = %v, want the default 50", got.TopicRelevance)
		}
	})

	t.Run("falls back to local on API error", func(t *testing.T) {
		server := fakeAPI(t, http.StatusInternalServerError, "")
		defer server.Close()

		got := NewRemoteAnalyzer(testClient(t, server)).Analyze(context.Background(), input)
		want := analysis.LocalAnalyzer{}.Analyze(context.Background(), input)
		if got != want {
			t.Errorf("expected the local analysis on failure: got %+v want %+v", got, want)
		}
	})

	t.Run("falls back to local on non-JSON reply", func(t *testing.T) {
		server := fakeAPI(t, http.StatusOK, "I cannot answer in JSON today.")
		defer server.Close()

		got := NewRemoteAnalyzer(testClient(t, server)).Analyze(context.Background(), input)
		want := analysis.LocalAnalyzer{}.Analyze(context.Background(), input)
		if got != want {
			t.Errorf("expected the local analysis on unparseable reply: got %+v", got)
		}
	})
}

func TestRemoteTaskGenerator(t *testing.T) {
	notes := []string{"pointers hold addresses", "slices wrap arrays", "maps are reference types"}

	t.Run("parses task array", func(t *testing.T) {
		server := fakeAPI(t, http.StatusOK,
			`Sure: ["Draw a memory diagram", "Quiz yourself on slice growth"]`)
		defer server.Close()

		got := NewRemoteTaskGenerator(testClient(t, server)).Generate(
			context.Background(), "go internals", notes,
			analysis.DriftResult{}, analysis.OverconfidenceResult{}, 80)
		if len(got) != 2 || got[0] != "Draw a memory diagram" {
			t.Errorf("unexpected tasks: %v", got)
		}
	})

	t.Run("truncates to four tasks", func(t *testing.T) {
		server := fakeAPI(t, http.StatusOK, `["a", "b", "c", "d", "e", "f"]`)
		defer server.Close()

		got := NewRemoteTaskGenerator(testClient(t, server)).Generate(
			context.Background(), "go internals", notes,
			analysis.DriftResult{}, analysis.OverconfidenceResult{}, 80)
		if len(got) != 4 {
			t.Errorf("expected 4 tasks, got %d: %v", len(got), got)
		}
	})

	t.Run("falls back to rule-based tasks on failure", func(t *testing.T) {
		server := fakeAPI(t, http.StatusInternalServerError, "")
		defer server.Close()

		got := NewRemoteTaskGenerator(testClient(t, server)).Generate(
			context.Background(), "go internals", notes,
			analysis.DriftResult{}, analysis.OverconfidenceResult{}, 80)
		if len(got) == 0 {
			t.Fatal("fallback should always produce at least one task")
		}
	})
}
