package segment

import (
	"fmt"
	"strings"

	"github.com/minhokang/docqa/internal/outline"
)

// Options controls chunk sizing. All sizes are in characters (runes).
type Options struct {
	MaxSize     int // upper bound for a chunk before sub-splitting kicks in
	MinSize     int // lower bound before forward merging kicks in
	OverlapSize int // trailing context copied from the previous chunk
}

// DefaultOptions returns the sizing used for regulation-style documents.
func DefaultOptions() Options {
	return Options{
		MaxSize:     800,
		MinSize:     200,
		OverlapSize: 150,
	}
}

// Segmenter partitions document text into retrieval-sized chunks along the
// structural boundaries found by the outline parser. It holds no per-document
// state: Segment is a pure function of its inputs, so identical inputs always
// produce identical chunk sequences.
type Segmenter struct {
	opts Options
}

// New validates the options and returns a Segmenter. Invalid sizing is the
// only construction-time error; per-document input shape never fails.
func New(opts Options) (*Segmenter, error) {
	if opts.MaxSize <= 0 {
		return nil, fmt.Errorf("max size must be positive, got %d", opts.MaxSize)
	}
	if opts.MinSize < 0 {
		return nil, fmt.Errorf("min size must be non-negative, got %d", opts.MinSize)
	}
	if opts.MinSize > opts.MaxSize {
		return nil, fmt.Errorf("min size %d exceeds max size %d", opts.MinSize, opts.MaxSize)
	}
	if opts.OverlapSize < 0 {
		return nil, fmt.Errorf("overlap size must be non-negative, got %d", opts.OverlapSize)
	}
	return &Segmenter{opts: opts}, nil
}

// Segment produces the chunk sequence for one document. Sections come from
// outline.Parse over the same text; when no article was recognized the text
// is split generically instead and every chunk carries empty hierarchy
// fields plus the "general" strategy tag. docMeta is copied verbatim onto
// every chunk.
//
// Per article, in document order:
//   - sized within [MinSize, MaxSize): one chunk verbatim
//   - at or above MaxSize: sub-split at paragraph markers, undersized
//     fragments retained as the leading text of the next paragraph's chunk
//   - below MinSize: merged forward into following articles until the merge
//     reaches MinSize or would reach MaxSize
func (s *Segmenter) Segment(text string, sections []outline.Section, docMeta map[string]string) []Chunk {
	articles := outline.Articles(sections)
	if len(articles) == 0 {
		return s.generalSplit(text, docMeta)
	}

	loc := outline.NewLocator(sections)
	var chunks []Chunk

	i := 0
	for i < len(articles) {
		sec := articles[i]
		size := runeLen(sec.Text)

		switch {
		case size >= s.opts.MaxSize:
			chunks = append(chunks, s.splitByParagraphs(sec, loc, docMeta, len(chunks))...)
			i++

		case size >= s.opts.MinSize:
			chunks = append(chunks, s.newChunk(sec.Text, loc.At(sec.Start), StrategyStructure, nil, docMeta, len(chunks)))
			i++

		default:
			// Accumulate forward until the merge is big enough or the next
			// article would push it past MaxSize. The merged chunk carries
			// the first section's identifiers.
			merged := sec.Text
			numbers := []string{sec.Number}
			j := i + 1
			for j < len(articles) && runeLen(merged) < s.opts.MinSize {
				next := articles[j]
				if runeLen(merged)+runeLen(next.Text) >= s.opts.MaxSize {
					break
				}
				merged += "\n\n" + next.Text
				numbers = append(numbers, next.Number)
				j++
			}
			chunks = append(chunks, s.newChunk(merged, loc.At(sec.Start), StrategyMerged, numbers, docMeta, len(chunks)))
			i = j
		}
	}

	return s.addOverlap(chunks)
}

// splitByParagraphs cuts an oversized article at paragraph-marker lines.
// A fragment below MinSize is not emitted on its own; it becomes the leading
// text of the next paragraph's chunk. A trailing undersized fragment is
// folded into the previous chunk. An article with no paragraph markers at
// all stays whole and is tagged oversize.
func (s *Segmenter) splitByParagraphs(sec outline.Section, loc *outline.Locator, docMeta map[string]string, startIndex int) []Chunk {
	labels := loc.At(sec.Start)

	var pieces []string
	var current []string
	for _, line := range strings.Split(sec.Text, "\n") {
		if outline.IsParagraphStart(line) && len(current) > 0 {
			pieces = append(pieces, strings.Join(current, "\n"))
			current = []string{line}
		} else {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		pieces = append(pieces, strings.Join(current, "\n"))
	}

	if len(pieces) <= 1 {
		return []Chunk{s.newChunk(sec.Text, labels, StrategyOversize, nil, docMeta, startIndex)}
	}

	var chunks []Chunk
	emit := func(text string) {
		strategy := StrategyStructure
		if runeLen(text) >= s.opts.MaxSize {
			strategy = StrategyOversize
		}
		chunks = append(chunks, s.newChunk(text, labels, strategy, nil, docMeta, startIndex+len(chunks)))
	}

	pending := ""
	for _, p := range pieces {
		combined := p
		if pending != "" {
			combined = pending + "\n" + p
		}
		if runeLen(combined) >= s.opts.MinSize {
			emit(combined)
			pending = ""
		} else {
			pending = combined
		}
	}
	if pending != "" {
		if len(chunks) > 0 {
			last := &chunks[len(chunks)-1]
			last.Text += "\n" + pending
			last.Size = runeLen(last.Text)
		} else {
			emit(pending)
		}
	}

	return chunks
}

func (s *Segmenter) newChunk(text string, labels outline.Labels, strategy Strategy, mergedArticles []string, docMeta map[string]string, index int) Chunk {
	c := Chunk{
		Text:           text,
		Index:          index,
		Size:           runeLen(text),
		MergedArticles: mergedArticles,
		Strategy:       strategy,
		DocMeta:        docMeta,
	}
	applyLabels(&c, labels)
	return c
}

// addOverlap prepends the tail of each chunk's predecessor. The tail is taken
// from the predecessor's pre-overlap text, so overlap never compounds across
// a chain of chunks. Size fields keep their pre-overlap values.
func (s *Segmenter) addOverlap(chunks []Chunk) []Chunk {
	if len(chunks) <= 1 || s.opts.OverlapSize == 0 {
		return chunks
	}

	pre := make([]string, len(chunks))
	for i := range chunks {
		pre[i] = chunks[i].Text
	}
	for i := 1; i < len(chunks); i++ {
		chunks[i].Text = tailRunes(pre[i-1], s.opts.OverlapSize) + "\n\n" + chunks[i].Text
	}
	return chunks
}

func runeLen(s string) int {
	return len([]rune(s))
}

// tailRunes returns the last n characters of s, or s itself when shorter.
func tailRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
