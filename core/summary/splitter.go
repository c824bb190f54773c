// ABOUTME: Sentence splitter used by the extractive summarizers
// ABOUTME: Treats common abbreviations, initials and decimals as non-boundaries

package summary

import (
	"strings"
	"unicode"
)

// abbreviations never end a sentence. Keys are lowercase and include the final dot.
var abbreviations = map[string]bool{
	"mr.": true, "mrs.": true, "ms.": true, "dr.": true, "prof.": true,
	"sr.": true, "jr.": true, "st.": true, "mt.": true, "gen.": true,
	"gov.": true, "sen.": true, "rep.": true, "lt.": true, "col.": true,
	"capt.": true, "sgt.": true, "inc.": true, "ltd.": true, "co.": true,
	"corp.": true, "vs.": true, "etc.": true, "e.g.": true, "i.e.": true,
	"u.s.": true, "u.k.": true, "u.n.": true, "e.u.": true, "no.": true,
	"jan.": true, "feb.": true, "mar.": true, "apr.": true, "aug.": true,
	"sept.": true, "sep.": true, "oct.": true, "nov.": true, "dec.": true,
	"approx.": true, "est.": true, "dept.": true, "fig.": true,
}

// SplitSentences breaks text into trimmed sentences. A boundary is a
// '.', '!' or '?' (optionally followed by closing quotes or brackets),
// then whitespace, then an uppercase letter or a digit.
func SplitSentences(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	var sentences []string
	start := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}

		end := i + 1
		for end < len(runes) && isCloser(runes[end]) {
			end++
		}

		next := end
		for next < len(runes) && unicode.IsSpace(runes[next]) {
			next++
		}
		if next == end || next >= len(runes) {
			continue
		}
		if !unicode.IsUpper(runes[next]) && !unicode.IsDigit(runes[next]) {
			continue
		}
		if r == '.' && !endsSentence(runes[start:i+1]) {
			continue
		}

		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			sentences = append(sentences, s)
		}
		start = next
		i = next - 1
	}

	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// endsSentence reports whether the dot closing chunk is a real full stop
func endsSentence(chunk []rune) bool {
	j := len(chunk) - 1
	for j > 0 && !unicode.IsSpace(chunk[j-1]) && chunk[j-1] != '(' && chunk[j-1] != '"' {
		j--
	}
	word := string(chunk[j:])

	if abbreviations[strings.ToLower(word)] {
		return false
	}

	// Single-letter initials such as "J. Smith"
	letters := []rune(strings.TrimSuffix(word, "."))
	if len(letters) == 1 && unicode.IsUpper(letters[0]) {
		return false
	}
	return true
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’', '»':
		return true
	}
	return false
}
