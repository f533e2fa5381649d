package chunker

import "strings"

// separators are tried in order: paragraph, line, sentence, word. The empty
// string marks the rune-level hard cut fallback.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter cuts transcript text into overlapping spans of at most ChunkSize
// bytes, breaking at the most natural boundary available. Same input and
// parameters always produce the same chunk sequence.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
}

func New(size, overlap int) *Splitter {
	if size < 1 {
		size = 1
	}
	if overlap >= size {
		overlap = size - 1
	}
	if overlap < 0 {
		overlap = 0
	}
	return &Splitter{ChunkSize: size, ChunkOverlap: overlap}
}

// Split returns the ordered chunk sequence for text. Empty or whitespace-only
// input yields nil, which downstream stages treat as "nothing to index".
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, c := range s.split(text, separators) {
		c = strings.TrimSpace(c)
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

func (s *Splitter) split(text string, seps []string) []string {
	if len(text) <= s.ChunkSize {
		return []string{text}
	}

	sep := ""
	var rest []string
	for i, c := range seps {
		if c == "" {
			break
		}
		if strings.Contains(text, c) {
			sep = c
			rest = seps[i+1:]
			break
		}
	}
	if sep == "" {
		return s.hardCut(text)
	}

	parts := strings.Split(text, sep)
	var final []string
	var good []string
	for _, p := range parts {
		if len(p) <= s.ChunkSize {
			good = append(good, p)
			continue
		}
		// an oversized part is split at the next boundary level; the pieces
		// gathered so far are merged first to keep ordering stable
		if len(good) > 0 {
			final = append(final, s.merge(good, sep)...)
			good = nil
		}
		final = append(final, s.split(p, rest)...)
	}
	if len(good) > 0 {
		final = append(final, s.merge(good, sep)...)
	}
	return final
}

// merge joins consecutive parts back together up to ChunkSize, carrying a
// tail of roughly ChunkOverlap characters into the next chunk.
func (s *Splitter) merge(parts []string, sep string) []string {
	var chunks []string
	var cur []string
	total := 0
	for _, p := range parts {
		extra := len(p)
		if len(cur) > 0 {
			extra += len(sep)
		}
		if total+extra > s.ChunkSize && len(cur) > 0 {
			chunks = append(chunks, strings.Join(cur, sep))
			for len(cur) > 0 && (total > s.ChunkOverlap || total+extra > s.ChunkSize) {
				drop := len(cur[0])
				if len(cur) > 1 {
					drop += len(sep)
				}
				total -= drop
				cur = cur[1:]
				extra = len(p)
				if len(cur) > 0 {
					extra += len(sep)
				}
			}
		}
		cur = append(cur, p)
		total += extra
	}
	if len(cur) > 0 {
		chunks = append(chunks, strings.Join(cur, sep))
	}
	return chunks
}

// hardCut slices by runes when no natural boundary exists.
func (s *Splitter) hardCut(text string) []string {
	runes := []rune(text)
	if len(runes) <= s.ChunkSize {
		return []string{text}
	}
	step := s.ChunkSize - s.ChunkOverlap
	if step < 1 {
		step = 1
	}
	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + s.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}
