package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// LLMAnalyzer calls an OpenAI-compatible chat completions endpoint
// (Ollama, LM Studio, vLLM, hosted APIs).
type LLMAnalyzer struct {
	url    string // e.g. "http://localhost:11434"
	model  string
	apiKey string // sent as a bearer token when set
	client *http.Client
}

var _ Analyzer = (*LLMAnalyzer)(nil)

func NewLLMAnalyzer(url, model, apiKey string) *LLMAnalyzer {
	return &LLMAnalyzer{
		url:    strings.TrimRight(url, "/"),
		model:  model,
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Analyze makes a single request. Failures are not retried; the service
// falls back to the built-in dictionary instead.
func (a *LLMAnalyzer) Analyze(ctx context.Context, text string, options []string, language string) ([]Term, error) {
	content, err := a.callLLM(ctx, buildPrompt(text, options, language))
	if err != nil {
		return nil, &Error{Reason: "request failed", Wrapped: err}
	}

	raw := extractJSONArray(content)
	if raw == "" {
		return nil, &Error{Reason: "no JSON array found in LLM response"}
	}

	var terms []Term
	if err := json.Unmarshal([]byte(raw), &terms); err != nil {
		return nil, &Error{Reason: "invalid JSON from LLM", Wrapped: err}
	}

	out := terms[:0]
	for _, t := range terms {
		t.Term = strings.TrimSpace(t.Term)
		if t.Term == "" || strings.TrimSpace(t.Explanation) == "" {
			continue
		}
		if language == "en" {
			t.Translation = ""
		}
		out = append(out, t)
	}
	return out, nil
}

type llmRequest struct {
	Model       string       `json:"model"`
	Messages    []llmMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// callLLM sends a single request to the LLM and returns the raw text response.
func (a *LLMAnalyzer) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := llmRequest{
		Model: a.model,
		Messages: []llmMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("LLM request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM returned status %d", resp.StatusCode)
	}

	var llmResp llmResponse
	if err := json.NewDecoder(resp.Body).Decode(&llmResp); err != nil {
		return "", fmt.Errorf("failed to decode LLM response: %w", err)
	}
	if len(llmResp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}

	content := llmResp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("LLM returned empty content")
	}
	return content, nil
}

// extractJSONArray finds the outermost JSON array in a string, skipping
// brackets inside quoted strings.
func extractJSONArray(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, ch := range s {
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case '[':
			if depth == 0 {
				start = i
			}
			depth++
		case ']':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start != -1 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// buildPrompt is kept short and directive so small local models follow it.
func buildPrompt(text string, options []string, language string) string {
	var opts strings.Builder
	for i, o := range options {
		fmt.Fprintf(&opts, "%d. %s\n", i+1, o)
	}

	translation := fmt.Sprintf(`"translation" is the term translated into the language with ISO code %q.`, language)
	if language == "" || language == "en" {
		translation = `Leave "translation" as an empty string.`
	}

	return fmt.Sprintf(`/no_think
You help migrants study for the Australian citizenship test.
Pick up to 5 words or phrases from the question below that a learner of English may not know.
Explain each in one short plain-English sentence. %s

QUESTION:
%s

OPTIONS:
%s
Respond with ONLY this JSON, no explanation, no markdown:
[{"term": "...", "explanation": "...", "translation": "..."}]`,
		translation, text, opts.String())
}
