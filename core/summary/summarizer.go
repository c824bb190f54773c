// ABOUTME: Summarizer contract and the extractive lead summarizer
// ABOUTME: Lead summaries take the opening sentences of cleaned article text

package summary

import (
	"context"
	"errors"
	"strings"

	htmlutil "newsdesk-api/pkg/utils/html"
)

// Defaults shared by the extractive summarizers
const (
	DefaultSentences = 3
	DefaultMaxChars  = 600
)

// ErrNoContent is returned when an input carries neither content nor title
var ErrNoContent = errors.New("summary: nothing to summarize")

// Input is the text handed to a Summarizer
type Input struct {
	Title        string
	Content      string
	MaxSentences int
}

func (in Input) sentences() int {
	if in.MaxSentences > 0 {
		return in.MaxSentences
	}
	return DefaultSentences
}

// Summarizer produces a short digest from an Input
type Summarizer interface {
	Name() string
	Summarize(ctx context.Context, in Input) (string, error)
}

// LeadSummarizer returns the first sentences of the content
type LeadSummarizer struct {
	MaxChars int
}

// NewLeadSummarizer creates a lead summarizer with the default output cap
func NewLeadSummarizer() *LeadSummarizer {
	return &LeadSummarizer{MaxChars: DefaultMaxChars}
}

func (l *LeadSummarizer) Name() string { return "lead" }

func (l *LeadSummarizer) Summarize(ctx context.Context, in Input) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content := htmlutil.StripHTML(in.Content)
	if content == "" {
		title := htmlutil.CollapseWhitespace(in.Title)
		if title == "" {
			return "", ErrNoContent
		}
		return title, nil
	}

	sentences := SplitSentences(content)
	if n := in.sentences(); len(sentences) > n {
		sentences = sentences[:n]
	}

	return htmlutil.Truncate(strings.Join(sentences, " "), l.maxChars()), nil
}

func (l *LeadSummarizer) maxChars() int {
	if l.MaxChars > 0 {
		return l.MaxChars
	}
	return DefaultMaxChars
}
