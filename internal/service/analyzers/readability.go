package analyzers

import (
	"regexp"
	"strings"
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// fleschReadingEase scores text readability on the 0-100 Flesch scale using
// a vowel-group syllable estimate. Empty input scores a neutral 60.
func fleschReadingEase(text string) float64 {
	var sentences []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, s)
		}
	}
	words := wordRe.FindAllString(text, -1)
	if len(sentences) == 0 || len(words) == 0 {
		return 60.0
	}

	syllables := 0
	for _, word := range words {
		syllables += estimateSyllables(strings.ToLower(word))
	}

	avgSentenceLength := float64(len(words)) / float64(len(sentences))
	avgSyllablesPerWord := float64(syllables) / float64(len(words))

	score := 206.835 - 1.015*avgSentenceLength - 84.6*avgSyllablesPerWord
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func estimateSyllables(word string) int {
	const vowels = "aeiouy"
	count := 0
	if strings.ContainsRune(vowels, rune(word[0])) {
		count++
	}
	for i := 1; i < len(word); i++ {
		if strings.ContainsRune(vowels, rune(word[i])) && !strings.ContainsRune(vowels, rune(word[i-1])) {
			count++
		}
	}
	if strings.HasSuffix(word, "e") {
		count--
	}
	if count <= 0 {
		count = 1
	}
	return count
}
