// ABOUTME: Fallback chain that tries summarizers in order
// ABOUTME: The first non-empty result wins; each failure is logged

package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newsdesk-api/core/interfaces"
)

// Chain runs summarizers in order until one produces text
type Chain struct {
	summarizers []Summarizer
	logger      interfaces.Logger
}

// NewChain creates a chain over the given summarizers. Nil entries are skipped.
func NewChain(logger interfaces.Logger, summarizers ...Summarizer) *Chain {
	kept := make([]Summarizer, 0, len(summarizers))
	for _, s := range summarizers {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Chain{summarizers: kept, logger: logger}
}

// Names lists the chained summarizers in order
func (c *Chain) Names() []string {
	names := make([]string, len(c.summarizers))
	for i, s := range c.summarizers {
		names[i] = s.Name()
	}
	return names
}

// Summarize returns the first non-empty summary and the name of the
// summarizer that produced it.
func (c *Chain) Summarize(ctx context.Context, in Input) (string, string, error) {
	if len(c.summarizers) == 0 {
		return "", "", errors.New("summary chain is empty")
	}

	var errs []error
	for _, s := range c.summarizers {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}

		text, err := s.Summarize(ctx, in)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, s.Name(), nil
		}
		if err == nil {
			err = errors.New("empty summary")
		}

		c.logger.Warn("Summarizer failed", map[string]interface{}{
			"summarizer": s.Name(),
			"error":      err.Error(),
		})
		errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
	}

	return "", "", fmt.Errorf("all summarizers failed: %w", errors.Join(errs...))
}
