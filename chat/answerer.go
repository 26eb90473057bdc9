package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.Answerer = (*Answerer)(nil)

// Fixed replies used when no model output is available.
const (
	NoContentMessage = "I don't have any content from this website to answer your question. Please make sure the website has been crawled first."
	ApologyMessage   = "I'm sorry, I encountered an error while processing your question. Please try again later."
)

// Answerer grounds a generative model in a website's crawled content.
type Answerer struct {
	Assembler sitechat.ContextAssembler
	Generator sitechat.Generator

	// Logger defaults to discarding output.
	Logger *slog.Logger
}

// Answer answers question from the website's context window.
//
// Without crawled content the model is not called. A model failure yields
// a degraded answer carrying ApologyMessage; storage failures are returned.
func (a *Answerer) Answer(ctx context.Context, websiteID, question string) (*sitechat.Answer, error) {
	start := time.Now()

	window, err := a.Assembler.Assemble(ctx, websiteID)
	if err != nil {
		return nil, err
	}
	if !window.HasContent {
		return &sitechat.Answer{
			Text:         NoContentMessage,
			ResponseTime: time.Since(start),
			ModelID:      a.Generator.Model(),
		}, nil
	}

	prompt := BuildPrompt(window.Text, question)

	begin := time.Now()
	text, err := a.Generator.Generate(ctx, prompt)
	elapsed := time.Since(begin)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty model response")
	}
	if err != nil {
		a.logger().Error("model invocation failed",
			"website", websiteID,
			"model", a.Generator.Model(),
			"err", err,
		)
		return &sitechat.Answer{
			Text:     ApologyMessage,
			ModelID:  a.Generator.Model(),
			Degraded: true,
		}, nil
	}

	return &sitechat.Answer{
		Text:           text,
		ResponseTime:   elapsed,
		RelevanceScore: sitechat.RelevanceScore(question, text, window.Text),
		ModelID:        a.Generator.Model(),
	}, nil
}

// BuildPrompt builds a prompt that restricts the model to the given
// website content.
func BuildPrompt(content, question string) string {
	var sb strings.Builder
	sb.WriteString("You are an AI assistant that answers questions based on website content.\n")
	sb.WriteString("Use only the following website content to answer the user's question.\n")
	sb.WriteString("If the answer cannot be found in the provided content, say so clearly.\n\n")
	sb.WriteString("Website Content:\n")
	sb.WriteString(content)
	fmt.Fprintf(&sb, "\nQuestion: %s\n\n", question)
	sb.WriteString("Please provide a helpful, accurate answer based only on the website content above.\n")
	sb.WriteString("If the question cannot be answered from the content, explain what information is missing.\n")
	return sb.String()
}

func (a *Answerer) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}
