package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reviewrag/internal/answerer"
)

// Asker is the handler-facing subset of the answerer.
type Asker interface {
	Ask(ctx context.Context, question string) answerer.Outcome
}

// Handler holds the HTTP request handlers.
type Handler struct {
	answerer Asker
	log      *zap.Logger
}

// NewHandler creates a handler instance.
func NewHandler(a Asker, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{answerer: a, log: log}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Chat receives a user question, runs the retrieval pipeline and returns
// the reply. Collaborator failures surface as a 200 with the fixed
// apology string, never as a transport error.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Request must be JSON"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		h.log.Warn("request received without message field")
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Missing 'message' field in request"})
		return
	}

	out := h.answerer.Ask(c.Request.Context(), req.Message)
	switch out.Kind {
	case answerer.KindError:
		h.log.Error("answer pipeline failed", zap.Error(out.Err))
	case answerer.KindNoContext:
		h.log.Warn("answered without retrieved context")
	}

	c.JSON(http.StatusOK, chatResponse{Reply: out.Reply()})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the corpus build finished and the service can
// answer questions.
func (h *Handler) Ready(ready func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil && !ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "building"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
