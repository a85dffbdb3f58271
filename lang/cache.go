package lang

import (
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/quill-lang/quill/lang/lexer"
)

// globalCache stores annotated streams keyed by source hash so repeated
// annotation of identical source text is free. Entries are immutable once
// stored.
//
//nolint:gochecknoglobals
var globalCache sync.Map

// cacheEntry holds one annotation result, computed at most once.
type cacheEntry struct {
	once   sync.Once
	tokens []AnnotatedToken
	err    error
}

// AnnotateString lexes and annotates source text, caching the result by an
// xxh3 hash of the source.
func AnnotateString(source string) ([]AnnotatedToken, error) {
	key := strconv.FormatUint(xxh3.Hash([]byte(source)), 36)

	value, _ := globalCache.LoadOrStore(key, new(cacheEntry))

	entry, ok := value.(*cacheEntry)
	if !ok {
		return annotateSource(source)
	}

	entry.once.Do(func() {
		entry.tokens, entry.err = annotateSource(source)
	})

	return entry.tokens, entry.err
}

// AnnotateReader reads the full source from r and annotates it. The reader
// is wrapped with async read-ahead so data is pre-fetched while earlier
// chunks are consumed.
func AnnotateReader(r io.Reader) ([]AnnotatedToken, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return AnnotateString(string(data))
}

func annotateSource(source string) ([]AnnotatedToken, error) {
	tokens, err := lexer.LexString(source)
	if err != nil {
		return nil, WrapError(err)
	}

	return Annotate(tokens)
}

// ClearCache removes all cached annotation results.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache = sync.Map{}
}
