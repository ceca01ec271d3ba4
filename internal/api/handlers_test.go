package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewrag/internal/answerer"
)

type fakeAsker struct {
	out  answerer.Outcome
	last string
}

func (f *fakeAsker) Ask(_ context.Context, question string) answerer.Outcome {
	f.last = question
	return f.out
}

func newTestRouter(asker Asker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(asker, nil)
	r.POST("/api/chat", h.Chat)
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready(func() bool { return true }))
	return r
}

func postChat(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatReturnsReply(t *testing.T) {
	asker := &fakeAsker{out: answerer.Outcome{Kind: answerer.KindAnswer, Answer: "Sharp across the frame."}}
	w := postChat(t, newTestRouter(asker), `{"message": "How sharp?"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Sharp across the frame.", resp["reply"])
	assert.Equal(t, "How sharp?", asker.last)
}

func TestChatMissingMessage(t *testing.T) {
	w := postChat(t, newTestRouter(&fakeAsker{}), `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing 'message' field")
}

func TestChatBlankMessage(t *testing.T) {
	w := postChat(t, newTestRouter(&fakeAsker{}), `{"message": "   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatRejectsNonJSON(t *testing.T) {
	w := postChat(t, newTestRouter(&fakeAsker{}), `not json at all`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Request must be JSON")
}

func TestChatCollaboratorErrorStaysHTTP200(t *testing.T) {
	asker := &fakeAsker{out: answerer.Outcome{Kind: answerer.KindError, Err: errors.New("index down")}}
	w := postChat(t, newTestRouter(asker), `{"message": "q"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, answerer.Apology, resp["reply"])
}

func TestHealthAndReady(t *testing.T) {
	r := newTestRouter(&fakeAsker{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadyReportsBuilding(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(&fakeAsker{}, nil)
	r.GET("/ready", h.Ready(func() bool { return false }))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
