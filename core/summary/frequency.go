// ABOUTME: Frequency-based extractive summarizer
// ABOUTME: Scores sentences by normalized term frequency and keeps the best in reading order

package summary

import (
	"context"
	"sort"
	"strings"
	"unicode"

	htmlutil "newsdesk-api/pkg/utils/html"
)

var stopwords = func() map[string]bool {
	words := strings.Fields(`a about above after again against all am an and any are as at be
		because been before being below between both but by can could did do does doing down
		during each few for from further had has have having he her here hers herself him
		himself his how i if in into is it its itself just me more most my myself no nor not
		now of off on once only or other our ours ourselves out over own said same she should
		so some such than that the their theirs them themselves then there these they this
		those through to too under until up very was we were what when where which while who
		whom why will with would you your yours yourself yourselves also new one two says`)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}()

// FrequencySummarizer picks the sentences whose words occur most often.
// Title words count double.
type FrequencySummarizer struct {
	MaxChars int
}

// NewFrequencySummarizer creates a frequency summarizer with the default output cap
func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{MaxChars: DefaultMaxChars * 2}
}

func (f *FrequencySummarizer) Name() string { return "frequency" }

func (f *FrequencySummarizer) Summarize(ctx context.Context, in Input) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sentences := SplitSentences(htmlutil.StripHTML(in.Content))
	if len(sentences) == 0 {
		return "", ErrNoContent
	}

	n := in.sentences()
	if len(sentences) <= n {
		return f.cap(strings.Join(sentences, " ")), nil
	}

	freq := make(map[string]float64)
	for _, s := range sentences {
		for _, w := range terms(s) {
			freq[w]++
		}
	}
	for _, w := range terms(in.Title) {
		if _, ok := freq[w]; ok {
			freq[w] *= 2
		}
	}

	var top float64
	for _, v := range freq {
		if v > top {
			top = v
		}
	}
	if top == 0 {
		return f.cap(strings.Join(sentences[:n], " ")), nil
	}

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		words := terms(s)
		var total float64
		for _, w := range words {
			total += freq[w] / top
		}
		if len(words) > 0 {
			total /= float64(len(words))
		}
		ranked[i] = scored{index: i, score: total}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	chosen := ranked[:n]
	sort.Slice(chosen, func(i, j int) bool {
		return chosen[i].index < chosen[j].index
	})

	picked := make([]string, 0, n)
	for _, c := range chosen {
		picked = append(picked, sentences[c.index])
	}
	return f.cap(strings.Join(picked, " ")), nil
}

func (f *FrequencySummarizer) cap(s string) string {
	if f.MaxChars > 0 {
		return htmlutil.Truncate(s, f.MaxChars)
	}
	return s
}

// terms lowercases s and returns its non-stopword words
func terms(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	out := fields[:0]
	for _, w := range fields {
		if len(w) > 1 && !stopwords[w] {
			out = append(out, w)
		}
	}
	return out
}
