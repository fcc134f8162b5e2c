// Package longtail turns raw keyword suggestions into canonical longtail
// phrases and classifies their search intent.
package longtail

import (
	"keyword-go/pkg/coerce"
)

// Intent is the search intent of a phrase.
type Intent string

const (
	IntentLocalService  Intent = "local_service"
	IntentInformational Intent = "informational"
	IntentCommercial    Intent = "commercial"
	IntentOther         Intent = "other"
)

// Intents lists every intent in bucket order.
var Intents = []Intent{IntentLocalService, IntentInformational, IntentCommercial, IntentOther}

// Defaults for candidate fields that are absent or falsy.
const (
	DefaultMinWords          = 3
	DefaultKeywordDifficulty = 50.0
	UnknownLabel             = "unknown"
)

// Candidate is one upstream keyword suggestion after boundary coercion.
// Phrase is empty when the record carried no phrase field.
type Candidate struct {
	Phrase            string
	Source            string
	Type              string
	SearchVolume      int
	CPC               float64
	Competition       float64
	KeywordDifficulty float64
	EvidenceURLs      []string
}

// Item is a canonical longtail phrase.
type Item struct {
	Phrase            string   `json:"phrase"`
	Source            string   `json:"source"`
	Type              string   `json:"type"`
	SearchVolume      int      `json:"search_volume"`
	CPC               float64  `json:"cpc"`
	Competition       float64  `json:"competition"`
	KeywordDifficulty float64  `json:"keyword_difficulty"`
	EvidenceURLs      []string `json:"evidence_urls"`
	Intent            Intent   `json:"intent"`
}

// Buckets groups items by intent. All four intents are always present.
type Buckets map[Intent][]Item

// Options control extraction.
type Options struct {
	// MinWords drops phrases with fewer words. Values <= 0 disable the check.
	MinWords int `json:"min_words"`
	// MaxItems truncates the result in first-seen order. Values <= 0 mean no limit.
	MaxItems int `json:"max_items"`
}

func DefaultOptions() Options {
	return Options{MinWords: DefaultMinWords}
}

// CandidateFromRecord reads a candidate from a loosely typed record. Falsy
// fields take their defaults, the same way as metric records do.
func CandidateFromRecord(rec coerce.Record) Candidate {
	typ := coerce.String(rec, []string{"type"}, "")
	source := coerce.String(rec, []string{"source"}, typ)
	if source == "" {
		source = UnknownLabel
	}
	if typ == "" {
		typ = UnknownLabel
	}

	return Candidate{
		Phrase:            coerce.String(rec, coerce.PhraseKeys, ""),
		Source:            source,
		Type:              typ,
		SearchVolume:      coerce.Int(rec, coerce.SearchVolumeKeys, 0),
		CPC:               coerce.Float(rec, coerce.CPCKeys, 0),
		Competition:       coerce.Float(rec, coerce.CompetitionKeys, 0),
		KeywordDifficulty: coerce.Float(rec, longtailDifficultyKeys, DefaultKeywordDifficulty),
		EvidenceURLs:      coerce.Strings(rec, coerce.EvidenceURLKeys),
	}
}

// CandidatesFromRecords converts records in order.
func CandidatesFromRecords(records []coerce.Record) []Candidate {
	out := make([]Candidate, len(records))
	for i, rec := range records {
		out[i] = CandidateFromRecord(rec)
	}
	return out
}

// Candidate records name difficulty keyword_difficulty first.
var longtailDifficultyKeys = []string{"keyword_difficulty", "difficulty", "difficulty_score"}
