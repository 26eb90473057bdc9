package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var (
	_ sitechat.ContextAssembler = (*ContextAssembler)(nil)
	_ sitechat.Generator        = (*Generator)(nil)
	_ sitechat.Answerer         = (*Answerer)(nil)
)

// ContextAssembler is a mock implementation of sitechat.ContextAssembler.
type ContextAssembler struct {
	AssembleFn func(ctx context.Context, websiteID string) (*sitechat.ContextWindow, error)
}

func (a *ContextAssembler) Assemble(ctx context.Context, websiteID string) (*sitechat.ContextWindow, error) {
	return a.AssembleFn(ctx, websiteID)
}

// Generator is a mock implementation of sitechat.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, prompt string) (string, error)
	ModelFn    func() string
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.GenerateFn(ctx, prompt)
}

func (g *Generator) Model() string {
	return g.ModelFn()
}

// Answerer is a mock implementation of sitechat.Answerer.
type Answerer struct {
	AnswerFn func(ctx context.Context, websiteID, question string) (*sitechat.Answer, error)
}

func (a *Answerer) Answer(ctx context.Context, websiteID, question string) (*sitechat.Answer, error) {
	return a.AnswerFn(ctx, websiteID, question)
}
