package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/sitechat/mock"
	scslog "github.com/fwojciec/sitechat/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingGenerator_Generate(t *testing.T) {
	t.Parallel()

	newInner := func(text string, err error) *mock.Generator {
		return &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string) (string, error) { return text, err },
			ModelFn:    func() string { return "test-model" },
		}
	}

	t.Run("logs model, sizes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		g := scslog.NewLoggingGenerator(newInner("four", nil), logger)

		text, err := g.Generate(context.Background(), "prompt")

		require.NoError(t, err)
		assert.Equal(t, "four", text)
		assert.Equal(t, "test-model", g.Model())
		output := buf.String()
		assert.Contains(t, output, "msg=generate")
		assert.Contains(t, output, "model=test-model")
		assert.Contains(t, output, "prompt_bytes=6")
		assert.Contains(t, output, "reply_bytes=4")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		g := scslog.NewLoggingGenerator(newInner("", errors.New("quota exceeded")), logger)

		_, err := g.Generate(context.Background(), "prompt")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"quota exceeded\"")
	})
}
