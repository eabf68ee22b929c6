package llm

import (
	"sort"
	"strings"
	"unicode"
)

// Chunking parameters for narrowing long answer contexts.
const (
	ChunkSize    = 1200
	ChunkOverlap = 200
)

const chunkSeparator = "\n...\n"

var stopwords = map[string]struct{}{
	"what": {}, "why": {}, "how": {}, "when": {}, "where": {}, "which": {}, "who": {},
	"the": {}, "and": {}, "for": {}, "are": {}, "was": {}, "were": {}, "does": {},
	"this": {}, "that": {}, "with": {}, "from": {}, "about": {}, "into": {}, "can": {},
	"explain": {}, "describe": {}, "there": {}, "their": {}, "have": {}, "has": {},
}

// clipText caps text at limit runes.
func clipText(text string, limit int) (string, bool) {
	if limit <= 0 || len(text) <= limit {
		return text, false
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text, false
	}
	return string(runes[:limit]), true
}

// ChunkText splits text into windows of size runes sharing overlap runes.
// Windows end on whitespace when one is found in their last fifth.
func ChunkText(text string, size, overlap int) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}
	if size <= 0 {
		size = ChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	var chunks []string
	for start := 0; start < len(runes); {
		end := start + size
		if end >= len(runes) {
			chunks = append(chunks, strings.TrimSpace(string(runes[start:])))
			break
		}
		for cut := end; cut > end-size/5; cut-- {
			if unicode.IsSpace(runes[cut-1]) {
				end = cut
				break
			}
		}
		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// keywords returns the distinct content words of a question.
func keywords(question string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(question), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	seen := map[string]struct{}{}
	var out []string
	for _, tok := range tokens {
		if len(tok) < 3 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// SelectRelevant keeps the chunks sharing the most keywords with question
// until budget runes are used, in their original order.
func SelectRelevant(chunks []string, question string, budget int) []string {
	if len(chunks) == 0 {
		return nil
	}
	words := keywords(question)

	type scored struct {
		idx   int
		score int
	}
	ranked := make([]scored, len(chunks))
	for i, chunk := range chunks {
		lower := strings.ToLower(chunk)
		s := 0
		for _, w := range words {
			s += strings.Count(lower, w)
		}
		ranked[i] = scored{idx: i, score: s}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	var picked []int
	used := 0
	for _, r := range ranked {
		n := len([]rune(chunks[r.idx])) + len(chunkSeparator)
		if used+n > budget && len(picked) > 0 {
			continue
		}
		picked = append(picked, r.idx)
		used += n
	}
	sort.Ints(picked)

	out := make([]string, 0, len(picked))
	for _, i := range picked {
		out = append(out, chunks[i])
	}
	return out
}

// narrowContext keeps context whole when it fits, otherwise the most
// relevant overlapping chunks.
func narrowContext(material, question string, budget int) (string, bool) {
	if material == "" || len([]rune(material)) <= budget {
		return material, false
	}
	selected := SelectRelevant(ChunkText(material, ChunkSize, ChunkOverlap), question, budget)
	narrowed := strings.Join(selected, chunkSeparator)
	narrowed, _ = clipText(narrowed, budget)
	return narrowed, true
}
