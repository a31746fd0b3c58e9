package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	llmpkg "github.com/foxseedlab/ronpakun/internal/llm"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newStubClient(rt roundTripFunc) *OpenAIClient {
	return &OpenAIClient{
		baseURL: "https://llm.example.org/v1",
		apiKey:  "key-1",
		model:   "test-model",
		client:  &http.Client{Transport: rt},
	}
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestCompleteSendsChatRequest(t *testing.T) {
	var gotReq *http.Request
	var gotBody chatCompletionRequest
	client := newStubClient(func(req *http.Request) (*http.Response, error) {
		gotReq = req
		if err := json.NewDecoder(req.Body).Decode(&gotBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"A reply."}}]}`), nil
	})

	temp := 0.7
	resp, err := client.Complete(context.Background(), llmpkg.CompletionRequest{
		Messages: []llmpkg.Message{
			{Role: llmpkg.RoleSystem, Content: "Be brief."},
			{Role: llmpkg.RoleUser, Content: "Argue."},
		},
		Tools: []llmpkg.ToolDefinition{
			{Name: "web_search", Description: "Search.", InputSchema: `{"type":"object"}`},
		},
		Temperature: &temp,
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if resp.Content != "A reply." {
		t.Errorf("content = %q", resp.Content)
	}

	if gotReq.URL.Path != "/v1/chat/completions" {
		t.Errorf("request path = %q", gotReq.URL.Path)
	}
	if gotReq.Header.Get("Authorization") != "Bearer key-1" {
		t.Error("request is missing the bearer token")
	}
	if gotBody.Model != "test-model" {
		t.Errorf("model = %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != llmpkg.RoleSystem {
		t.Errorf("messages = %+v", gotBody.Messages)
	}
	if len(gotBody.Tools) != 1 || gotBody.Tools[0].Type != "function" || gotBody.Tools[0].Function.Name != "web_search" {
		t.Errorf("tools = %+v", gotBody.Tools)
	}
	if gotBody.Temperature == nil || *gotBody.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", gotBody.Temperature)
	}
}

func TestCompleteParsesToolCalls(t *testing.T) {
	client := newStubClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"choices":[{"message":{
			"role": "assistant",
			"content": "",
			"tool_calls": [{"id": "call-1", "type": "function", "function": {"name": "web_search", "arguments": "{\"query\":\"solar\"}"}}]
		}}]}`), nil
	})

	resp, err := client.Complete(context.Background(), llmpkg.CompletionRequest{
		Messages: []llmpkg.Message{{Role: llmpkg.RoleUser, Content: "Argue."}},
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if len(resp.ToolCalls) != 1 {
		t.Fatalf("got %d tool calls, want 1", len(resp.ToolCalls))
	}
	call := resp.ToolCalls[0]
	if call.ID != "call-1" || call.Name != "web_search" || call.Arguments != `{"query":"solar"}` {
		t.Errorf("tool call = %+v", call)
	}
}

func TestCompleteNonOKStatus(t *testing.T) {
	client := newStubClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, `{"error":"upstream"}`), nil
	})

	_, err := client.Complete(context.Background(), llmpkg.CompletionRequest{
		Messages: []llmpkg.Message{{Role: llmpkg.RoleUser, Content: "Argue."}},
	})
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Errorf("Complete returned %v, want a status error", err)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	client := newStubClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"choices":[]}`), nil
	})

	resp, err := client.Complete(context.Background(), llmpkg.CompletionRequest{
		Messages: []llmpkg.Message{{Role: llmpkg.RoleUser, Content: "Argue."}},
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if resp.Content != "" || len(resp.ToolCalls) != 0 {
		t.Errorf("response = %+v, want empty", resp)
	}
}

func TestParseJSONSchema(t *testing.T) {
	if got := parseJSONSchema(""); got != nil {
		t.Errorf("empty schema = %q, want nil", got)
	}
	if got := parseJSONSchema(`{"type":"object"}`); string(got) != `{"type":"object"}` {
		t.Errorf("valid schema = %q", got)
	}
	if got := parseJSONSchema(`{broken`); string(got) != `{}` {
		t.Errorf("invalid schema = %q, want {}", got)
	}
}
