// Package scoring rates keywords on a 0-100 quality scale.
//
// The score is the sum of five step functions (search volume, inverted
// difficulty, cost per click, inverted competition and relevance) plus a
// small bonus for some keyword types, clamped to [0, 100].
package scoring

import (
	"math"

	"keyword-go/pkg/coerce"
)

// Defaults substituted for absent metric fields.
const (
	DefaultSearchVolume = 0
	DefaultDifficulty   = 50.0
	DefaultCPC          = 0.0
	DefaultCompetition  = 0.5
	DefaultRelevance    = 1.0

	MinScore = 0.0
	MaxScore = 100.0
)

// Keyword type tags that earn a bonus.
const (
	TypeRelatedKeyword = "Related Keyword"
	TypeKWIdea         = "KW Idea"
)

// KeywordMetrics holds the raw metrics of one keyword.
type KeywordMetrics struct {
	SearchVolume int     `json:"search_volume"`
	Difficulty   float64 `json:"difficulty"`
	CPC          float64 `json:"cpc"`
	Competition  float64 `json:"competition"`
	Relevance    float64 `json:"relevance"`
	KeywordType  string  `json:"keyword_type,omitempty"`
}

// Breakdown lists the points each component contributed.
type Breakdown struct {
	Volume      float64 `json:"volume"`
	Difficulty  float64 `json:"difficulty"`
	CPC         float64 `json:"cpc"`
	Competition float64 `json:"competition"`
	Relevance   float64 `json:"relevance"`
	TypeBonus   float64 `json:"type_bonus"`
	Total       float64 `json:"total"`
}

type floorTier struct {
	min    float64
	points float64
}

type ceilTier struct {
	max    float64
	points float64
}

var (
	volumeTiers = []floorTier{
		{10000, 40}, {5000, 35}, {1000, 30}, {500, 25},
		{100, 20}, {50, 15}, {10, 10}, {1, 5},
	}
	difficultyTiers = []ceilTier{
		{20, 30}, {30, 27}, {40, 24}, {50, 20},
		{60, 15}, {70, 10}, {80, 5},
	}
	cpcTiers = []floorTier{
		{5.0, 15}, {3.0, 12}, {2.0, 10}, {1.0, 8}, {0.5, 5}, {0.1, 2},
	}
	competitionTiers = []ceilTier{
		{0.2, 10}, {0.4, 8}, {0.6, 6}, {0.8, 4},
	}
)

const (
	competitionFloorPoints = 2.0
	relevanceWeight        = 5.0
)

// MetricsFromRecord reads metrics from a loosely typed record. Missing, null,
// zero and unparsable fields all fall back to the package defaults, so a
// difficulty of 0 is read as 50 and a relevance of 0 as 1.
func MetricsFromRecord(rec coerce.Record) KeywordMetrics {
	return KeywordMetrics{
		SearchVolume: coerce.Int(rec, coerce.SearchVolumeKeys, DefaultSearchVolume),
		Difficulty:   coerce.Float(rec, coerce.DifficultyKeys, DefaultDifficulty),
		CPC:          coerce.Float(rec, coerce.CPCKeys, DefaultCPC),
		Competition:  coerce.Float(rec, coerce.CompetitionKeys, DefaultCompetition),
		Relevance:    coerce.Float(rec, coerce.RelevanceKeys, DefaultRelevance),
		KeywordType:  coerce.String(rec, coerce.KeywordTypeKeys, ""),
	}
}

// Score returns the quality score of m in [0, 100]. Values are used exactly
// as given; default substitution belongs to MetricsFromRecord.
func Score(m KeywordMetrics) float64 {
	return Explain(m).Total
}

// ScoreRecord scores a loosely typed record.
func ScoreRecord(rec coerce.Record) float64 {
	return Score(MetricsFromRecord(rec))
}

// Explain returns the per-component points behind Score.
func Explain(m KeywordMetrics) Breakdown {
	b := Breakdown{
		Volume:      floorPoints(volumeTiers, float64(m.SearchVolume)),
		Difficulty:  ceilPoints(difficultyTiers, m.Difficulty, 0),
		CPC:         floorPoints(cpcTiers, m.CPC),
		Competition: ceilPoints(competitionTiers, m.Competition, competitionFloorPoints),
		Relevance:   m.Relevance * relevanceWeight,
		TypeBonus:   typeBonus(m.KeywordType),
	}
	b.Total = clamp(b.Volume + b.Difficulty + b.CPC + b.Competition + b.Relevance + b.TypeBonus)
	return b
}

func floorPoints(tiers []floorTier, v float64) float64 {
	for _, t := range tiers {
		if v >= t.min {
			return t.points
		}
	}
	return 0
}

func ceilPoints(tiers []ceilTier, v, fallback float64) float64 {
	for _, t := range tiers {
		if v <= t.max {
			return t.points
		}
	}
	return fallback
}

func typeBonus(keywordType string) float64 {
	switch keywordType {
	case TypeRelatedKeyword:
		return 1.0
	case TypeKWIdea:
		return 0.5
	default:
		return 0
	}
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
