package sitechat

import (
	"context"
	"time"
)

// ContextBudget is the maximum number of characters in a context window.
const ContextBudget = 8000

// ContextDocuments is the maximum number of documents in a context window.
const ContextDocuments = 5

// ContextWindow is the bounded text assembled from a website's documents.
type ContextWindow struct {
	Text       string
	HasContent bool
	Documents  int
}

// ContextAssembler selects and bounds the documents used to ground an answer.
type ContextAssembler interface {
	// Assemble returns the context window for a website. A website without
	// documents yields HasContent == false and an empty Text.
	Assemble(ctx context.Context, websiteID string) (*ContextWindow, error)
}

// Generator is a generative model client.
type Generator interface {
	// Generate returns the model's completion for prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Model returns the identifier of the model in use.
	Model() string
}

// Answer is the outcome of a grounded question.
type Answer struct {
	Text           string        `json:"text"`
	ResponseTime   time.Duration `json:"responseTime"`
	RelevanceScore float64       `json:"relevanceScore"`
	ModelID        string        `json:"modelId"`

	// Degraded is set when the answer is a fallback message rather than
	// model output.
	Degraded bool `json:"degraded"`
}

// Answerer answers questions about a website's crawled content.
type Answerer interface {
	// Answer never fails because of the model; model failures produce a
	// degraded answer instead.
	Answer(ctx context.Context, websiteID, question string) (*Answer, error)
}
