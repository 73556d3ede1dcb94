package chat

import (
	"context"
	"time"

	"go.uber.org/zap"

	"prepcoach/coach/internal/llm"
	"prepcoach/coach/internal/metrics"
	"prepcoach/coach/internal/session"
)

// UserFacingErrorMessage is the fixed message shown when a model invocation
// fails. Provider error detail goes to the log, never to the end user.
const UserFacingErrorMessage = "An error occurred while processing your request. " +
	"Please verify your API key is valid and try again."

// TroubleshootingSteps is the fixed checklist shown alongside the error message.
var TroubleshootingSteps = []string{
	"Verify the API key in the service environment",
	"Check your network connection",
	"Ensure your API key is still valid",
	"Try again with a shorter input",
}

// ModelInvocationError wraps any failure from the model provider behind a
// single recoverable category. The user's turn is already in history when
// this is returned; it is deliberately not rolled back.
type ModelInvocationError struct {
	Err error
}

func (e *ModelInvocationError) Error() string {
	return "model invocation failed: " + e.Err.Error()
}

func (e *ModelInvocationError) Unwrap() error {
	return e.Err
}

// TurnResult is the outcome of one successful request/response cycle.
type TurnResult struct {
	RequestID string
	Main      string
	Score     string
	Raw       string
	Model     string
	Duration  time.Duration
}

// TurnPipeline orchestrates one conversation turn: append the user turn,
// format the request, invoke the model, split the reply, append the
// assistant turn, persist, and report timing.
type TurnPipeline struct {
	provider  llm.Provider
	formatter *TurnFormatter
	store     session.Store
	logger    *zap.Logger
}

func NewTurnPipeline(provider llm.Provider, formatter *TurnFormatter, store session.Store, logger *zap.Logger) *TurnPipeline {
	return &TurnPipeline{
		provider:  provider,
		formatter: formatter,
		store:     store,
		logger:    logger,
	}
}

// Submit runs one turn for the given session. At most one Submit is in
// flight per session; the model call is the single blocking step and is
// neither retried nor cancelled once dispatched.
//
// On failure the just-appended user turn stays in history and no assistant
// turn is appended. On success the raw reply, not the split main content,
// is what gets stored, so the transcript can always be reconstructed.
func (p *TurnPipeline) Submit(ctx context.Context, sess *session.Session, userText, requestID string) (*TurnResult, error) {
	sess.AppendUser(userText)

	request := p.formatter.Format(sess.Category, sess.PriorHistory(), userText)
	request.RequestID = requestID

	start := time.Now()
	reply, err := p.provider.Complete(ctx, request)
	duration := time.Since(start)
	metrics.ObserveModelLatency(p.provider.GetProviderName(), duration)

	if err != nil {
		// keep the user turn even though the exchange failed
		if saveErr := p.store.Save(ctx, sess); saveErr != nil {
			p.logger.Error("failed to persist session after model failure",
				zap.Error(saveErr), zap.String("session_id", sess.ID))
		}
		p.logger.Error("model invocation failed",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("session_id", sess.ID),
			zap.String("category", sess.Category),
			zap.Int("input_length", len(userText)),
			zap.Duration("duration", duration))
		metrics.ObserveTurn(sess.Category, "error")
		return nil, &ModelInvocationError{Err: err}
	}

	main, score := SplitReply(reply.Content)
	sess.AppendAssistant(reply.Content)

	if err := p.store.Save(ctx, sess); err != nil {
		p.logger.Error("failed to persist session",
			zap.Error(err), zap.String("session_id", sess.ID))
	}

	p.logger.Info("interaction completed",
		zap.String("request_id", requestID),
		zap.String("session_id", sess.ID),
		zap.String("category", sess.Category),
		zap.Int("input_length", len(userText)),
		zap.Int("response_length", len(reply.Content)),
		zap.Duration("duration", duration))
	metrics.ObserveTurn(sess.Category, "ok")

	return &TurnResult{
		RequestID: requestID,
		Main:      main,
		Score:     score,
		Raw:       reply.Content,
		Model:     reply.Model,
		Duration:  duration,
	}, nil
}

// ProviderName identifies the active model provider for response metadata.
func (p *TurnPipeline) ProviderName() string {
	return p.provider.GetProviderName()
}
