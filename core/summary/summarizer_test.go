package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadSummarizer(t *testing.T) {
	lead := NewLeadSummarizer()
	ctx := context.Background()

	t.Run("first sentences of cleaned content", func(t *testing.T) {
		got, err := lead.Summarize(ctx, Input{
			Content: "<p>First one. Second one.</p><p>Third one. Fourth one.</p>",
		})
		require.NoError(t, err)
		assert.Equal(t, "First one. Second one. Third one.", got)
	})

	t.Run("honors max sentences", func(t *testing.T) {
		got, err := lead.Summarize(ctx, Input{Content: "A one. B two. C three.", MaxSentences: 1})
		require.NoError(t, err)
		assert.Equal(t, "A one.", got)
	})

	t.Run("falls back to title", func(t *testing.T) {
		got, err := lead.Summarize(ctx, Input{Title: "  Only a   headline "})
		require.NoError(t, err)
		assert.Equal(t, "Only a headline", got)
	})

	t.Run("nothing to summarize", func(t *testing.T) {
		_, err := lead.Summarize(ctx, Input{})
		assert.True(t, errors.Is(err, ErrNoContent))
	})

	t.Run("caps output length", func(t *testing.T) {
		capped := &LeadSummarizer{MaxChars: 40}
		got, err := capped.Summarize(ctx, Input{
			Content: "This opening sentence is deliberately long enough to overflow the cap.",
		})
		require.NoError(t, err)
		assert.LessOrEqual(t, len([]rune(got)), 40)
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := lead.Summarize(cctx, Input{Content: "Text."})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFrequencySummarizer(t *testing.T) {
	freq := NewFrequencySummarizer()
	ctx := context.Background()

	content := strings.Join([]string{
		"Solar panels cover the roof of the library.",
		"The weather was pleasant on Tuesday.",
		"Solar energy now powers the library entirely.",
		"Visitors enjoyed coffee.",
		"Officials praised the solar library project.",
	}, " ")

	t.Run("keeps top sentences in original order", func(t *testing.T) {
		got, err := freq.Summarize(ctx, Input{Title: "Solar library", Content: content, MaxSentences: 3})
		require.NoError(t, err)
		assert.Equal(t,
			"Solar panels cover the roof of the library. "+
				"Solar energy now powers the library entirely. "+
				"Officials praised the solar library project.",
			got)
	})

	t.Run("short content returned whole", func(t *testing.T) {
		got, err := freq.Summarize(ctx, Input{Content: "One fact. Another fact."})
		require.NoError(t, err)
		assert.Equal(t, "One fact. Another fact.", got)
	})

	t.Run("no content", func(t *testing.T) {
		_, err := freq.Summarize(ctx, Input{Title: "Headline"})
		assert.ErrorIs(t, err, ErrNoContent)
	})
}

func TestTerms(t *testing.T) {
	got := terms("The Quick, brown fox and a dog!")
	assert.Equal(t, []string{"quick", "brown", "fox", "dog"}, got)
}
