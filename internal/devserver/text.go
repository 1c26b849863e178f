package devserver

import (
	"strings"
	"unicode"
)

// Topic is a paragraph of an uploaded material.
type Topic struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Text  string `json:"-"`
}

const maxTitleLen = 60

// splitTopics breaks text into blank-line separated paragraphs. The first
// line of a multi-line paragraph is its title.
func splitTopics(text string) []Topic {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var topics []Topic
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		title, body, found := strings.Cut(para, "\n")
		title = strings.TrimSpace(title)
		if !found || strings.TrimSpace(body) == "" {
			body = para
		}
		if len(title) > maxTitleLen {
			title = strings.TrimSpace(title[:maxTitleLen]) + "..."
		}
		topics = append(topics, Topic{
			Index: len(topics),
			Title: title,
			Text:  strings.Join(strings.Fields(body), " "),
		})
	}
	return topics
}

// sentences splits text on terminal punctuation.
func sentences(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// words returns the lowercase words of s with punctuation stripped.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// cloze blanks out the longest word of a sentence and returns the prompt and
// the removed word. ok is false when the sentence has no usable word.
func cloze(sentence string) (prompt, answer string, ok bool) {
	for _, w := range strings.Fields(sentence) {
		trimmed := strings.TrimFunc(w, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
		if len(trimmed) > len(answer) {
			answer = trimmed
		}
	}
	if len(answer) < 3 {
		return "", "", false
	}
	return strings.Replace(sentence, answer, "___", 1), answer, true
}

// bestSentence returns the sentence sharing the most words with question.
func bestSentence(text, question string) (string, bool) {
	want := make(map[string]bool)
	for _, w := range words(question) {
		if len(w) > 2 {
			want[w] = true
		}
	}

	best, bestScore := "", 0
	for _, s := range sentences(text) {
		score := 0
		for _, w := range words(s) {
			if want[w] {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = s, score
		}
	}
	return best, bestScore > 0
}

// summarize keeps the first sentence of every topic.
func summarize(topics []Topic) string {
	var parts []string
	for _, t := range topics {
		if ss := sentences(t.Text); len(ss) > 0 {
			parts = append(parts, ss[0])
		}
	}
	return strings.Join(parts, " ")
}
