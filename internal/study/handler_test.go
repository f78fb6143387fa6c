package study

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emandor/studybuddy_service/internal/config"
	"github.com/emandor/studybuddy_service/internal/history"
	"github.com/emandor/studybuddy_service/internal/providers"
)

type fakeClient struct {
	reply string
	err   error
}

func (f *fakeClient) Name() providers.SourceName { return "FAKE" }

func (f *fakeClient) Complete(context.Context, providers.CompletionRequest) (string, error) {
	return f.reply, f.err
}

func newTestApp(client providers.Client) *fiber.App {
	h := &Handler{
		cfg:     &config.Config{DefaultItemCount: 5, HistoryLimit: 20},
		svc:     NewService(client),
		history: history.NewStore(nil),
	}

	app := fiber.New()
	app.Post("/api/v1/ai/explain", h.Generate(KindExplain))
	app.Post("/api/v1/ai/summarize", h.Generate(KindSummarize))
	app.Post("/api/v1/ai/quiz", h.Generate(KindQuiz))
	app.Post("/api/v1/ai/flashcards", h.Generate(KindFlashcards))
	app.Get("/api/v1/history", h.ListHistory)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body string) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp, out
}

func errorField(t *testing.T, out map[string]json.RawMessage) string {
	t.Helper()
	var msg string
	require.NoError(t, json.Unmarshal(out["error"], &msg))
	return msg
}

func TestGenerateEndpoint_MissingRequiredField(t *testing.T) {
	app := newTestApp(&fakeClient{reply: "unused"})

	tests := []struct {
		path string
		body string
		want string
	}{
		{"/api/v1/ai/explain", `{}`, "Concept is required"},
		{"/api/v1/ai/explain", `{"concept":"  "}`, "Concept is required"},
		{"/api/v1/ai/summarize", `{}`, "Notes required"},
		{"/api/v1/ai/quiz", `{"numQuestions":3}`, "Topic is required"},
		{"/api/v1/ai/flashcards", `{}`, "Topic is required"},
	}

	for _, tt := range tests {
		t.Run(tt.path+" "+tt.body, func(t *testing.T) {
			resp, out := postJSON(t, app, tt.path, tt.body)
			assert.Equal(t, 400, resp.StatusCode)
			assert.Equal(t, tt.want, errorField(t, out))
		})
	}
}

func TestGenerateEndpoint_ExplainSuccess(t *testing.T) {
	app := newTestApp(&fakeClient{reply: "Plants turn light into sugar."})

	resp, out := postJSON(t, app, "/api/v1/ai/explain", `{"concept":"Photosynthesis"}`)
	assert.Equal(t, 200, resp.StatusCode)

	var explanation string
	require.NoError(t, json.Unmarshal(out["explanation"], &explanation))
	assert.Equal(t, "Plants turn light into sugar.", explanation)
}

func TestGenerateEndpoint_QuizSuccessShape(t *testing.T) {
	app := newTestApp(&fakeClient{reply: `[{"question":"Q","options":["A","B","C","D"],"correct":1}]`})

	resp, out := postJSON(t, app, "/api/v1/ai/quiz", `{"topic":"WW2","numQuestions":1}`)
	assert.Equal(t, 200, resp.StatusCode)

	var questions []QuizQuestion
	require.NoError(t, json.Unmarshal(out["questions"], &questions))
	require.Len(t, questions, 1)
	assert.Equal(t, 1, questions[0].Correct)
}

func TestGenerateEndpoint_FlashcardsSuccessShape(t *testing.T) {
	app := newTestApp(&fakeClient{reply: `[{"front":"f","back":"b"}]`})

	resp, out := postJSON(t, app, "/api/v1/ai/flashcards", `{"topic":"Bio"}`)
	assert.Equal(t, 200, resp.StatusCode)

	var cards []Flashcard
	require.NoError(t, json.Unmarshal(out["cards"], &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "f", cards[0].Front)
}

func TestGenerateEndpoint_ProviderFailure(t *testing.T) {
	app := newTestApp(&fakeClient{err: &providers.Error{Message: "quota exceeded"}})

	resp, out := postJSON(t, app, "/api/v1/ai/summarize", `{"notes":"some notes"}`)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, "quota exceeded", errorField(t, out))
}

func TestGenerateEndpoint_ProviderFailureWithoutMessage(t *testing.T) {
	app := newTestApp(&fakeClient{err: &providers.Error{}})

	resp, out := postJSON(t, app, "/api/v1/ai/quiz", `{"topic":"WW2"}`)
	assert.Equal(t, 500, resp.StatusCode)
	assert.NotEmpty(t, errorField(t, out))
}

func TestListHistory_Unauthenticated(t *testing.T) {
	app := newTestApp(&fakeClient{})

	req := httptest.NewRequest("GET", "/api/v1/history", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
