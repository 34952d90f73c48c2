// Package ocr wraps the Tesseract engine behind a small recognition
// interface. The engine is treated as a black box: image bytes in,
// newline-joined text fragments out, in the engine's own top-to-bottom
// order.
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Recognizer extracts text from a screenshot.
type Recognizer interface {
	// Recognize returns the recognized text fragments joined by newlines.
	// It honors ctx for cancellation so one slow image cannot stall a
	// multi-screenshot submission. ErrEmptyText reports an image that
	// produced no usable text.
	Recognize(ctx context.Context, image []byte) (string, error)
}

const defaultLanguage = "eng"

// Engine is a Tesseract-backed Recognizer. Each Recognize call runs its own
// client; gosseract clients are not safe for concurrent reuse.
type Engine struct {
	language string
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLanguage sets the Tesseract language model.
func WithLanguage(lang string) Option {
	return func(e *Engine) {
		if lang != "" {
			e.language = lang
		}
	}
}

// NewEngine creates a Tesseract-backed engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{language: defaultLanguage}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recognize runs Tesseract over the image. The engine call itself is not
// interruptible, so it runs in its own goroutine and the result is dropped
// if ctx expires first.
func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("%w: empty image", ErrBadImage)
	}

	type outcome struct {
		text string
		err  error
	}
	ch := make(chan outcome, 1)

	go func() {
		client := gosseract.NewClient()
		defer client.Close()
		if err := client.SetLanguage(e.language); err != nil {
			ch <- outcome{err: fmt.Errorf("set language %q: %w", e.language, err)}
			return
		}
		if err := client.SetImageFromBytes(image); err != nil {
			ch <- outcome{err: fmt.Errorf("%w: %w", ErrBadImage, err)}
			return
		}
		text, err := client.Text()
		ch <- outcome{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("recognition cancelled: %w", ctx.Err())
	case out := <-ch:
		if out.err != nil {
			return "", fmt.Errorf("tesseract: %w", out.err)
		}
		if strings.TrimSpace(out.text) == "" {
			return "", ErrEmptyText
		}
		return out.text, nil
	}
}
