package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/emandor/studybuddy_service/internal/telemetry"
)

const groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"

// Groq talks to Groq's OpenAI-compatible chat completions API.
type Groq struct {
	Key, Model string
	Endpoint   string // override for tests; groqEndpoint when empty
}

func (c *Groq) Name() SourceName { return SourceGroq }

func (c *Groq) Complete(ctx context.Context, cr CompletionRequest) (string, error) {
	body := map[string]any{
		"model": c.Model,
		"messages": []map[string]any{
			{"role": "user", "content": cr.Prompt},
		},
		"temperature": cr.Temperature,
		"max_tokens":  cr.MaxTokens,
	}

	b, _ := json.Marshal(body)
	log := telemetry.L().With().Str("provider", string(c.Name())).Int("body_len", len(b)).Logger()

	url := c.Endpoint
	if url == "" {
		url = groqEndpoint
	}
	req, _ := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+c.Key)
	req.Header.Set("Content-Type", "application/json")

	t0 := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("groq_request_failed")
		return "", &Error{Source: c.Name(), Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	log.Debug().Int("body_len", len(raw)).Dur("latency", time.Since(t0)).Msg("groq_response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().
			Str("status", resp.Status).
			RawJSON("body", raw).
			Msg("groq_http_error")
		return "", &Error{Source: c.Name(), Message: extractErrorMessage(raw)}
	}

	return extractChatText(raw), nil
}

// choices[0].message.content, empty string when the provider returned none.
func extractChatText(raw []byte) string {
	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if json.Unmarshal(raw, &r) == nil && len(r.Choices) > 0 {
		return r.Choices[0].Message.Content
	}
	return ""
}

func extractErrorMessage(raw []byte) string {
	var r struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &r) == nil && strings.TrimSpace(r.Error.Message) != "" {
		return r.Error.Message
	}
	return ""
}
