package longtail

import (
	"strings"

	"keyword-go/pkg/coerce"
)

// Stats counts how many candidates each extraction step dropped.
type Stats struct {
	Candidates int            `json:"candidates"`
	Kept       int            `json:"kept"`
	Dropped    map[string]int `json:"dropped"`
}

// Extract turns candidates into unique longtail items for seed.
//
// Candidates without a phrase, equal to the seed, shorter than
// opts.MinWords or repeating an earlier phrase (case-insensitively) are
// dropped. The first occurrence of a phrase wins and its metrics are kept
// as-is. Items keep first-seen order; opts.MaxItems truncates that order.
func Extract(seed string, candidates []Candidate, opts Options) []Item {
	items, _ := ExtractWithStats(seed, candidates, opts)
	return items
}

// ExtractRecords is Extract over loosely typed records.
func ExtractRecords(seed string, records []coerce.Record, opts Options) []Item {
	return Extract(seed, CandidatesFromRecords(records), opts)
}

// ExtractWithStats is Extract that also reports drop counters.
func ExtractWithStats(seed string, candidates []Candidate, opts Options) ([]Item, Stats) {
	stats := Stats{
		Candidates: len(candidates),
		Dropped: map[string]int{
			DropNoPhrase:  0,
			DropSeed:      0,
			DropMinWords:  0,
			DropDuplicate: 0,
			DropTruncated: 0,
		},
	}

	filters := []filter{newSeedFilter(seed)}
	if opts.MinWords > 0 {
		filters = append(filters, newMinWordsFilter(opts.MinWords))
	}
	filters = append(filters, newDuplicateFilter())

	items := make([]Item, 0, len(candidates))

next:
	for _, c := range candidates {
		phrase := NormalizePhrase(c.Phrase)
		if phrase == "" {
			stats.Dropped[DropNoPhrase]++
			continue
		}

		n := normalized{
			candidate: c,
			phrase:    phrase,
			key:       comparisonKey(phrase),
			words:     len(strings.Fields(phrase)),
		}
		for _, f := range filters {
			if !f.Keep(n) {
				stats.Dropped[f.Name()]++
				continue next
			}
		}

		items = append(items, newItem(n))
	}

	if opts.MaxItems > 0 && len(items) > opts.MaxItems {
		stats.Dropped[DropTruncated] = len(items) - opts.MaxItems
		items = items[:opts.MaxItems]
	}

	stats.Kept = len(items)
	return items, stats
}

func newItem(n normalized) Item {
	c := n.candidate

	source := c.Source
	if source == "" {
		source = c.Type
	}
	if source == "" {
		source = UnknownLabel
	}
	typ := c.Type
	if typ == "" {
		typ = UnknownLabel
	}
	difficulty := c.KeywordDifficulty
	if difficulty == 0 {
		difficulty = DefaultKeywordDifficulty
	}
	urls := make([]string, len(c.EvidenceURLs))
	copy(urls, c.EvidenceURLs)

	return Item{
		Phrase:            n.phrase,
		Source:            source,
		Type:              typ,
		SearchVolume:      c.SearchVolume,
		CPC:               c.CPC,
		Competition:       c.Competition,
		KeywordDifficulty: difficulty,
		EvidenceURLs:      urls,
		Intent:            ClassifyIntent(n.phrase),
	}
}
