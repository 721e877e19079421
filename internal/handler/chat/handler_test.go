package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	chatModel "github.com/spurlabs/support-chat/backend/internal/model/chat"
	chatservice "github.com/spurlabs/support-chat/backend/internal/service/chat"
)

type cannedGenerator struct {
	reply string
}

func (g cannedGenerator) Reply(_ context.Context, _ []chatModel.Message, _ string) string {
	return g.reply
}

func setupRouter(reply string) *chi.Mux {
	chatSvc := chatservice.New(chatModel.NewMemoryStore(), cannedGenerator{reply: reply})
	handler := New(chatSvc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func postMessage(t *testing.T, r http.Handler, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/message", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestMessageNewSession(t *testing.T) {
	r := setupRouter("hi, how can I help?")

	resp := postMessage(t, r, map[string]string{"message": "where is my order?"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Reply     string `json:"reply"`
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Reply != "hi, how can I help?" {
		t.Fatalf("unexpected reply: %q", body.Reply)
	}
	if body.SessionID == "" {
		t.Fatal("expected a fresh session id")
	}

	// The returned id resolves via the history endpoint.
	req := httptest.NewRequest(http.MethodGet, "/history/"+body.SessionID, nil)
	hist := httptest.NewRecorder()
	r.ServeHTTP(hist, req)
	if hist.Code != http.StatusOK {
		t.Fatalf("expected 200 from history, got %d", hist.Code)
	}
}

func TestMessageEmpty(t *testing.T) {
	r := setupRouter("unused")

	for _, message := range []string{"", "   "} {
		resp := postMessage(t, r, map[string]string{"message": message})
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", message, resp.Code)
		}

		var body map[string]string
		if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "Message cannot be empty" {
			t.Fatalf("unexpected error string: %q", body["error"])
		}
	}
}

func TestMessageInvalidBody(t *testing.T) {
	r := setupRouter("unused")

	req := httptest.NewRequest(http.MethodPost, "/message", bytes.NewReader([]byte("not json")))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestMessageUnknownSession(t *testing.T) {
	r := setupRouter("unused")

	resp := postMessage(t, r, map[string]string{
		"message":   "hello",
		"sessionId": "never-created",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error"] != "Session not found" {
		t.Fatalf("unexpected error string: %q", body["error"])
	}
}

func TestHistoryUnknownSession(t *testing.T) {
	r := setupRouter("unused")

	req := httptest.NewRequest(http.MethodGet, "/history/never-created", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestHistoryAfterTurns(t *testing.T) {
	r := setupRouter("canned answer")

	first := postMessage(t, r, map[string]string{"message": "turn one"})
	var firstBody struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(first.Body.Bytes(), &firstBody); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	second := postMessage(t, r, map[string]string{
		"message":   "turn two",
		"sessionId": firstBody.SessionID,
	})
	if second.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", second.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/history/"+firstBody.SessionID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Messages []chatModel.Message `json:"messages"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(body.Messages) != 4 {
		t.Fatalf("expected 4 messages after 2 turns, got %d", len(body.Messages))
	}
	wantSenders := []string{"user", "assistant", "user", "assistant"}
	wantContents := []string{"turn one", "canned answer", "turn two", "canned answer"}
	for i, msg := range body.Messages {
		if msg.Sender != wantSenders[i] {
			t.Fatalf("message %d: expected sender %s, got %s", i, wantSenders[i], msg.Sender)
		}
		if msg.Content != wantContents[i] {
			t.Fatalf("message %d: expected content %q, got %q", i, wantContents[i], msg.Content)
		}
	}
}
