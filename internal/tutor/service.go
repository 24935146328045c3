package tutor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/finfluency/internal/llm"
)

// DefaultTimeout bounds a model call when the caller sets none.
const DefaultTimeout = 30 * time.Second

// Service picks rule-based feedback when a rule matches and falls back to
// the explainer otherwise.
type Service struct {
	rules     []Rule
	explainer *Explainer
	timeout   time.Duration
	log       *zap.Logger
}

// NewService creates a tutor. With a nil provider only the rules run.
func NewService(provider llm.Provider, timeout time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	s := &Service{
		rules:   DefaultRules(),
		timeout: timeout,
		log:     log.Named("tutor"),
	}
	if provider != nil {
		s.explainer = NewExplainer(provider, DefaultExplainerConfig())
	}
	return s
}

// HasModel reports whether unmatched attempts can be sent to an LLM.
func (s *Service) HasModel() bool {
	return s != nil && s.explainer != nil
}

// Quick runs only the rules.
func (s *Service) Quick(in *Input) (Feedback, bool) {
	return RunRules(s.rules, in)
}

// Explain returns feedback for an incorrect attempt. It never fails: when
// no rule matches and the model is missing or errors, the result carries
// CategoryUnmatched and the caller should show the worked solution.
func (s *Service) Explain(ctx context.Context, in *Input) Feedback {
	if fb, ok := RunRules(s.rules, in); ok {
		s.log.Debug("rule matched", zap.String("rule", fb.Source), zap.String("module", in.ModuleTitle))
		return fb
	}
	if s.explainer == nil {
		return Feedback{Category: CategoryUnmatched, Source: "none"}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	fb, err := s.explainer.Explain(ctx, in)
	if err != nil {
		s.log.Warn("explanation unavailable", zap.Error(err))
		return Feedback{Category: CategoryUnmatched, Source: "none"}
	}
	return *fb
}
