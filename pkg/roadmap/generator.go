package roadmap

import (
	"context"
	"log/slog"
	"time"
)

// Searcher gathers public context about a company's interview process.
// Implementations absorb their own failures and always return some text.
type Searcher interface {
	CompanyInfo(ctx context.Context, company, role string) string
}

// Completer sends a prompt to a language model and returns its text answer.
type Completer interface {
	Complete(ctx context.Context, prompt string) (text string, err error)
}

// PromptBuilder assembles the model prompt from the request and search context.
type PromptBuilder func(company, role, jobDescription, companyInfo string) string

// Result is the outcome of one generation run. Roadmap is always complete;
// Failure is set when the default roadmap was substituted.
type Result struct {
	Roadmap     Roadmap
	Failure     *Failure
	Filled      []string
	CompanyInfo string
	Raw         string
}

// Generator runs search, prompt, completion and parsing in sequence.
type Generator struct {
	searcher  Searcher
	completer Completer
	prompt    PromptBuilder
	now       func() time.Time
	logger    *slog.Logger
}

// Option customizes a Generator.
type Option func(*Generator)

// WithClock overrides the clock used for generated_at.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator wires the collaborators together.
func NewGenerator(searcher Searcher, completer Completer, prompt PromptBuilder, opts ...Option) (g *Generator) {
	g = &Generator{
		searcher:  searcher,
		completer: completer,
		prompt:    prompt,
		now:       time.Now,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces a roadmap for the request. It never returns an error;
// model and parsing failures yield the default roadmap and a Failure.
func (g *Generator) Generate(ctx context.Context, req Request) (result Result) {
	result.CompanyInfo = g.searcher.CompanyInfo(ctx, req.Company, req.Role)

	prompt := g.prompt(req.Company, req.Role, req.JobDescription, result.CompanyInfo)

	var rm Roadmap
	raw, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		g.logger.Warn("model call failed, using default roadmap", slog.Any("error", err))
		rm = Default(req.Company, req.Role)
		result.Failure = &Failure{Kind: FailureLLM, Err: err}
	} else {
		result.Raw = raw
		rm, result.Filled, result.Failure = Parse(raw, req.Company, req.Role)
		if result.Failure != nil {
			g.logger.Warn("model response not decodable, using default roadmap",
				slog.Any("error", result.Failure.Err),
				slog.String("preview", result.Failure.Preview),
			)
		} else if len(result.Filled) > 0 {
			g.logger.Info("filled missing roadmap fields", slog.Any("fields", result.Filled))
		}
	}

	result.Roadmap = Stamp(rm, req.Company, req.Role, g.now())
	return result
}
