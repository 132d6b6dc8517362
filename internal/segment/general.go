package segment

import "strings"

// generalSeparators is the cascade tried, in order, when splitting text that
// has no recognizable structure: paragraph break, line break, sentence
// punctuation, whitespace, and finally individual characters.
var generalSeparators = []string{"\n\n", "\n", ".", "!", "?", " ", ""}

// generalSplit partitions unstructured text into chunks bounded by MaxSize,
// then stitches the usual trailing overlap. Chunks carry empty hierarchy
// fields and the "general" strategy tag so downstream consumers can tell
// them apart from structure-derived chunks.
func (s *Segmenter) generalSplit(text string, docMeta map[string]string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	pieces := splitRecursive(text, generalSeparators, s.opts.MaxSize)

	var chunks []Chunk
	var current strings.Builder
	flush := func() {
		t := strings.TrimSpace(current.String())
		current.Reset()
		if t == "" {
			return
		}
		chunks = append(chunks, Chunk{
			Text:     t,
			Index:    len(chunks),
			Size:     runeLen(t),
			Strategy: StrategyGeneral,
			DocMeta:  docMeta,
		})
	}

	size := 0
	for _, p := range pieces {
		pLen := runeLen(p)
		if size+pLen > s.opts.MaxSize && size > 0 {
			flush()
			size = 0
		}
		current.WriteString(p)
		size += pLen
	}
	flush()

	return s.addOverlap(chunks)
}

// splitRecursive cuts text into pieces no longer than maxSize, trying each
// separator in turn and keeping the separator attached to the piece that
// ends with it. The empty separator is the terminal case: a hard cut every
// maxSize characters.
func splitRecursive(text string, seps []string, maxSize int) []string {
	if runeLen(text) <= maxSize {
		return []string{text}
	}
	if len(seps) == 0 {
		return hardSplit(text, maxSize)
	}

	sep := seps[0]
	if sep == "" {
		return hardSplit(text, maxSize)
	}

	var out []string
	for _, part := range strings.SplitAfter(text, sep) {
		if part == "" {
			continue
		}
		if runeLen(part) > maxSize {
			out = append(out, splitRecursive(part, seps[1:], maxSize)...)
		} else {
			out = append(out, part)
		}
	}
	return out
}

func hardSplit(text string, maxSize int) []string {
	r := []rune(text)
	var out []string
	for len(r) > maxSize {
		out = append(out, string(r[:maxSize]))
		r = r[maxSize:]
	}
	if len(r) > 0 {
		out = append(out, string(r))
	}
	return out
}
