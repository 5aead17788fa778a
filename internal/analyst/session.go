// Package analyst orchestrates the question-to-result pipeline: prompt
// assembly, generation, safety validation, and dispatch to the mode-resolved
// executor. Downgrade-not-abort is the resilience policy throughout: a failed
// collaborator demotes the session mode and the request is re-dispatched
// rather than failed.
package analyst

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kyleking/dwh-analyst/internal/cache"
	"github.com/kyleking/dwh-analyst/internal/config"
	"github.com/kyleking/dwh-analyst/internal/demo"
	"github.com/kyleking/dwh-analyst/internal/errors"
	"github.com/kyleking/dwh-analyst/internal/examples"
	"github.com/kyleking/dwh-analyst/internal/llm"
	"github.com/kyleking/dwh-analyst/internal/logging"
	"github.com/kyleking/dwh-analyst/internal/mode"
	"github.com/kyleking/dwh-analyst/internal/prompt"
	"github.com/kyleking/dwh-analyst/internal/rules"
	"github.com/kyleking/dwh-analyst/internal/schema"
	"github.com/kyleking/dwh-analyst/internal/summarizer"
	"github.com/kyleking/dwh-analyst/internal/types"
	"github.com/kyleking/dwh-analyst/internal/validate"
	"github.com/kyleking/dwh-analyst/internal/warehouse"
)

// Answer is the full outcome of one question.
type Answer struct {
	Question string
	Query    *types.GeneratedQuery
	Result   *types.ExecutionResult
	Summary  string
	Cached   bool
}

// Status describes collaborator availability for the status surface.
type Status struct {
	Mode                types.Mode  `json:"mode"`
	ModelConfigured     bool        `json:"model_configured"`
	WarehouseConfigured bool        `json:"warehouse_configured"`
	WarehouseAccessible bool        `json:"warehouse_accessible"`
	Cache               cache.Stats `json:"cache"`
}

// Session holds the per-user pipeline state. The catalog, rule set, and
// example store are loaded once at construction and never mutated.
type Session struct {
	cfg        *config.Config
	builder    *prompt.Builder
	validator  *validate.Validator
	generator  llm.Service // model-backed, nil when unconfigured
	fallback   llm.Service // template library, always present
	summarize  *summarizer.Summarizer
	controller *mode.Controller
	live       warehouse.Executor // nil when the warehouse is unconfigured
	demoExec   warehouse.Executor
	results    *cache.ResultCache
	logger     *logging.Logger

	mu         sync.Mutex
	cancelPrev context.CancelFunc
}

// NewSession wires the pipeline from configuration. Missing credentials are
// not an error here; they surface as a degraded operating mode.
func NewSession(cfg *config.Config) (*Session, error) {
	catalog := schema.Default()
	ruleSet := rules.Default(time.Now())
	store := examples.Default()

	builder, err := prompt.New(catalog, ruleSet, store, cfg.Query.ExampleCount)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:       cfg,
		builder:   builder,
		validator: validate.New(catalog, ruleSet, cfg.Query.DefaultLimit, cfg.Query.MaxLimit),
		fallback:  llm.NewFallbackService(),
		demoExec:  demo.NewProvider(catalog),
		results:   cache.New(cfg.Query.CacheEntries),
		logger:    logging.GetLogger().WithField("component", "analyst"),
	}

	if cfg.ModelConfigured() {
		client, err := llm.NewClient(llm.Config{
			Provider:    cfg.LLM.Provider,
			Model:       cfg.LLM.Model,
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		})
		if err != nil {
			s.logger.WithError(err).Warn("language model client unavailable")
		} else {
			s.generator = llm.NewManager(client, cfg.LLMTimeout())
			s.summarize = summarizer.New(s.generator)
		}
	}

	if cfg.WarehouseConfigured() {
		live, err := warehouse.Open(cfg.Warehouse, cfg.WarehouseTimeout())
		if err != nil {
			s.logger.WithError(err).Warn("warehouse connection unavailable")
		} else {
			s.live = live
		}
	}

	s.controller = mode.NewController(mode.Probes{
		ModelConfigured: func() bool { return s.generator != nil },
		WarehouseReady: func(ctx context.Context) bool {
			return s.live != nil && s.live.Ping(ctx) == nil
		},
	})

	return s, nil
}

// Ask answers one question end to end. Starting a new Ask supersedes any
// in-flight one for the session: the previous request's context is canceled
// and its result discarded (last question wins).
func (s *Session) Ask(ctx context.Context, question string) (*Answer, error) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancelPrev != nil {
		s.cancelPrev()
	}

	s.cancelPrev = cancel
	s.mu.Unlock()

	logger := s.logger.WithField("request_id", uuid.NewString())
	current := s.controller.Resolve(ctx)

	rawSQL, current, err := s.generate(ctx, question, current, logger)
	if err != nil {
		return nil, err
	}

	query, err := s.validator.Validate(llm.ExtractSQL(rawSQL), question)
	if err != nil {
		logger.WithError(err).Warn("generated SQL failed validation")
		return nil, err
	}

	query.Mode = current

	if len(query.Warnings) > 0 {
		logger.WithField("warnings", query.Warnings).Warn("validator warnings")
	}

	answer := &Answer{Question: question, Query: query}

	if cached, ok := s.results.Get(query.ValidatedSQL); ok {
		answer.Result = cached
		answer.Cached = true
	} else {
		result, execMode, err := s.execute(ctx, query.ValidatedSQL, current, logger)
		if err != nil {
			return nil, err
		}

		if execMode != current {
			current = execMode
			query.Mode = execMode
		}

		result.Truncated = result.Truncated || query.LimitEnforced

		// A superseded request must not populate the shared cache.
		if ctx.Err() == nil {
			s.results.Set(query.ValidatedSQL, result)
		}

		answer.Result = result
	}

	if ctx.Err() != nil {
		return nil, errors.New(errors.ErrTypeInternal, "request superseded by a newer question")
	}

	if s.summarize != nil && (current == types.ModeProduction || current == types.ModeAIOnly) {
		summary, err := s.summarize.Summarize(ctx, question, answer.Result)
		if err != nil {
			logger.WithError(err).Debug("result summary skipped")
		} else {
			answer.Summary = summary
		}
	}

	return answer, nil
}

// generate produces raw SQL for the question in the given mode, demoting to
// the template library if the model fails.
func (s *Session) generate(ctx context.Context, question string, current types.Mode, logger *logging.Logger) (string, types.Mode, error) {
	if current == types.ModeProduction || current == types.ModeAIOnly {
		raw, err := s.generator.Generate(ctx, s.builder.Build(question))
		if err == nil {
			return raw, current, nil
		}

		if ctx.Err() != nil {
			return "", current, err
		}

		logger.WithError(err).Warn("language model failed; falling back to templates")
		current = s.controller.Demote(mode.CollaboratorModel, err.Error())
		s.results.Clear()
	}

	// The template library takes the bare question, not the prompt.
	raw, err := s.fallback.Generate(ctx, question)
	if err != nil {
		return "", current, errors.Wrap(err, errors.ErrTypeInternal, "template fallback failed")
	}

	return raw, current, nil
}

// execute dispatches validated SQL to the mode's executor, demoting to demo
// data when the live warehouse fails mid-request.
func (s *Session) execute(ctx context.Context, validatedSQL string, current types.Mode, logger *logging.Logger) (*types.ExecutionResult, types.Mode, error) {
	if current == types.ModeProduction || current == types.ModeDBOnly {
		result, err := s.live.Run(ctx, validatedSQL)
		if err == nil {
			return result, current, nil
		}

		if ctx.Err() != nil {
			return nil, current, err
		}

		// Warehouse rejecting the statement (schema drift, bad column) is
		// an execution error worth surfacing; only connectivity failures
		// demote the session.
		if errors.GetType(err) == errors.ErrTypeExecution {
			logger.WithError(err).Error("warehouse rejected validated SQL")
			return nil, current, err
		}

		logger.WithError(err).Warn("warehouse unreachable; continuing with demo data")
		current = s.controller.Demote(mode.CollaboratorWarehouse, err.Error())
		s.results.Clear()
	}

	result, err := s.demoExec.Run(ctx, validatedSQL)
	if err != nil {
		return nil, current, err
	}

	return result, current, nil
}

// Status reports collaborator availability and the session mode.
func (s *Session) Status(ctx context.Context) Status {
	accessible := s.live != nil && s.live.Ping(ctx) == nil

	return Status{
		Mode:                s.controller.Resolve(ctx),
		ModelConfigured:     s.generator != nil,
		WarehouseConfigured: s.cfg.WarehouseConfigured(),
		WarehouseAccessible: accessible,
		Cache:               s.results.Stats(),
	}
}

// RetryConnection re-probes both collaborators at the user's request. The
// result cache is cleared because a mode change can switch data sources.
func (s *Session) RetryConnection(ctx context.Context) types.Mode {
	s.results.Clear()
	return s.controller.Retry(ctx)
}

// Close releases the live warehouse connection, if any.
func (s *Session) Close() error {
	if s.live != nil {
		return s.live.Close()
	}

	return nil
}
