package longtail

import "strings"

// Names of the drop reasons reported in Stats.
const (
	DropNoPhrase  = "no_phrase"
	DropSeed      = "seed"
	DropMinWords  = "min_words"
	DropDuplicate = "duplicate"
	DropTruncated = "truncated"
)

// normalized is a candidate together with its canonical phrase and key.
type normalized struct {
	candidate Candidate
	phrase    string
	key       string
	words     int
}

// filter decides whether a normalized candidate survives extraction.
type filter interface {
	Keep(n normalized) bool
	Name() string
}

// seedFilter drops phrases equal to the seed keyword.
type seedFilter struct {
	seedKey string
}

func newSeedFilter(seed string) *seedFilter {
	return &seedFilter{seedKey: comparisonKey(NormalizePhrase(seed))}
}

func (f *seedFilter) Keep(n normalized) bool {
	return n.key != f.seedKey
}

func (f *seedFilter) Name() string {
	return DropSeed
}

// minWordsFilter drops phrases shorter than minWords.
type minWordsFilter struct {
	minWords int
}

func newMinWordsFilter(minWords int) *minWordsFilter {
	return &minWordsFilter{minWords: minWords}
}

func (f *minWordsFilter) Keep(n normalized) bool {
	return n.words >= f.minWords
}

func (f *minWordsFilter) Name() string {
	return DropMinWords
}

// duplicateFilter keeps the first phrase seen for each comparison key.
// It holds state and must not be reused across extractions.
type duplicateFilter struct {
	seen map[string]bool
}

func newDuplicateFilter() *duplicateFilter {
	return &duplicateFilter{seen: make(map[string]bool)}
}

func (f *duplicateFilter) Keep(n normalized) bool {
	if f.seen[n.key] {
		return false
	}
	f.seen[n.key] = true
	return true
}

func (f *duplicateFilter) Name() string {
	return DropDuplicate
}

// NormalizePhrase collapses runs of whitespace to single spaces and trims.
func NormalizePhrase(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func comparisonKey(phrase string) string {
	return strings.ToLower(phrase)
}
