// Package answerer turns a question into a grounded answer: retrieve
// the most relevant chunks, assemble them into a context block, and
// delegate to the language model.
package answerer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"reviewrag/internal/domain"
)

// DefaultTopK is how many chunks ground an answer by default.
const DefaultTopK = 3

const (
	noContextSentinel = "No relevant context found in the reviews."
	contextDelimiter  = "\n\n---\n\n"

	systemPrompt = `You are a helpful assistant answering questions based ONLY on the provided context from Dustin Abbott's photography reviews.
If the answer is not found in the context, say 'I cannot answer this based on the provided reviews.' Do not make up information.
Be concise and directly answer the question using the information from the reviews.`

	userPromptFormat = `Based ONLY on the context below from Dustin Abbott's reviews, please answer the question.

Context:
--- START CONTEXT ---
%s
--- END CONTEXT ---

Question: %s

Answer:`

	// Apology is the fixed boundary reply when a collaborator fails.
	Apology = "Sorry, an error occurred while processing your request."
)

// Kind classifies an Outcome.
type Kind int

const (
	// KindAnswer is a grounded answer backed by retrieved context.
	KindAnswer Kind = iota
	// KindNoContext means retrieval found nothing; the model was still
	// asked and its reply (normally a refusal) is the answer.
	KindNoContext
	// KindError means a collaborator failed and Err carries the detail.
	KindError
)

// Outcome is the distinguishable result of answering one question. The
// boundary decides how much of it to surface; Reply flattens it to the
// "always return something" contract.
type Outcome struct {
	Kind   Kind
	Answer string
	Hits   []domain.Hit
	Err    error
}

// Reply returns the user-facing string for this outcome.
func (o Outcome) Reply() string {
	if o.Kind == KindError {
		return Apology
	}
	return o.Answer
}

// Answerer serves one question per call with no cross-request state.
type Answerer struct {
	index domain.Index
	llm   domain.Completer
	topK  int
	log   *zap.Logger
}

// New creates an Answerer retrieving topK chunks per question
// (DefaultTopK when non-positive).
func New(idx domain.Index, llm domain.Completer, topK int, log *zap.Logger) *Answerer {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Answerer{index: idx, llm: llm, topK: topK, log: log}
}

// Ask retrieves context for the question and asks the model. Collaborator
// failures never propagate as errors to the transport: they come back as
// a KindError outcome.
func (a *Answerer) Ask(ctx context.Context, question string) Outcome {
	a.log.Info("answering question", zap.String("question", question))

	hits, err := a.index.Query(ctx, question, a.topK)
	if err != nil {
		a.log.Error("index query failed", zap.Error(err))
		return Outcome{Kind: KindError, Err: fmt.Errorf("query index: %w", err)}
	}

	kind := KindAnswer
	contextBlock := noContextSentinel
	if len(hits) == 0 {
		a.log.Warn("no relevant chunks retrieved", zap.String("question", question))
		kind = KindNoContext
	} else {
		contextBlock = assembleContext(hits)
	}

	answer, err := a.llm.Complete(ctx, systemPrompt, fmt.Sprintf(userPromptFormat, contextBlock, question))
	if err != nil {
		a.log.Error("completion failed", zap.Error(err))
		return Outcome{Kind: KindError, Hits: hits, Err: fmt.Errorf("complete: %w", err)}
	}

	a.log.Info("question answered", zap.Int("hits", len(hits)))
	return Outcome{Kind: kind, Answer: answer, Hits: hits}
}

// assembleContext concatenates hits most-relevant-first; the order is
// significant because models weight earlier context more heavily.
func assembleContext(hits []domain.Hit) string {
	lines := make([]string, len(hits))
	for i, h := range hits {
		title := h.Meta.Title
		if title == "" {
			title = "N/A"
		}
		lines[i] = fmt.Sprintf("Source: %s\nContent:\n%s", title, h.Text)
	}
	return strings.Join(lines, contextDelimiter)
}
