package segment

// Strategy records how a chunk was produced. Downstream consumers use it to
// distinguish structure-derived chunks from generic fallback output, and to
// exempt merged and oversized chunks from the size-bound guarantees.
type Strategy string

const (
	// StrategyStructure marks a chunk cut along article/paragraph boundaries
	// and holding the normal size guarantees.
	StrategyStructure Strategy = "structure"
	// StrategyGeneral marks a chunk from the separator-cascade fallback used
	// when no document structure was found.
	StrategyGeneral Strategy = "general"
	// StrategyMerged marks a chunk built by merging undersized articles
	// forward; it may fall below the minimum size.
	StrategyMerged Strategy = "merged"
	// StrategyOversize marks a chunk that could not be split below the
	// maximum size (an article or paragraph with no inner boundaries).
	StrategyOversize Strategy = "oversize"
	// StrategyTable marks a chunk holding one formatted table.
	StrategyTable Strategy = "table"
)

// Chunk is one retrieval unit derived from a document. Chunks are immutable
// once produced; the segmenter returns fresh values on every call.
type Chunk struct {
	// Text is the chunk content, prefixed with overlap copied from the
	// preceding chunk when overlap is configured.
	Text string
	// Index is the zero-based position among the document's chunks.
	Index int
	// Size is the character length of Text before overlap was prepended.
	Size int

	HierarchyPath string
	ChapterNumber string
	ChapterTitle  string
	ArticleNumber string
	ArticleTitle  string

	// MergedArticles lists every article number folded into a merged chunk,
	// including the first. Empty for all other strategies.
	MergedArticles []string

	Strategy Strategy

	// DocMeta is the caller-supplied document metadata bag, copied verbatim
	// onto every chunk of the document.
	DocMeta map[string]string
}
