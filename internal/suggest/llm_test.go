package suggest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLLMClient_Suggest(t *testing.T) {
	var prompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Model != "local-model" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) == 2 {
			prompt = req.Messages[1].Content
		}
		content := "```json\n{\"suggestions\":[{\"lineNumber\":1,\"suggestion\":\"No acute intracranial abnormality.\"}]}\n```"
		resp := map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "local-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewLLMClient(LLMConfig{BaseURL: srv.URL + "/v1/", Model: "local-model", APIKey: "test"})
	items, err := c.Suggest(context.Background(), Request{
		ReportText: "FINDINGS:\nNothing.",
		Study:      StudyContext{PatientSex: "M", PatientAge: 40, StudyHeader: "CT HEAD"},
	})
	if err != nil {
		t.Fatalf("Suggest() error: %v", err)
	}
	if len(items) != 1 || items[0].Line != 1 {
		t.Errorf("items = %+v", items)
	}
	if !strings.Contains(prompt, "1: Nothing.") || !strings.Contains(prompt, "Study: CT HEAD") {
		t.Errorf("prompt = %q", prompt)
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(Request{ReportText: "a\nb"})
	for _, want := range []string{"Patient: unknown, 0 years", "0: a", "1: b"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
	if strings.Contains(p, "Study:") {
		t.Error("empty header should be omitted")
	}
}

func TestExtractJSON(t *testing.T) {
	if got := extractJSON("Sure! {\"a\":1} hope that helps"); got != `{"a":1}` {
		t.Errorf("extractJSON() = %q", got)
	}
	if got := extractJSON("no json"); got != "no json" {
		t.Errorf("extractJSON() = %q", got)
	}
}
