package scoring

import (
	"sort"

	"keyword-go/pkg/coerce"
)

// ScoredKeyword is a record annotated with its quality score.
type ScoredKeyword struct {
	Record       coerce.Record `json:"record"`
	QualityScore float64       `json:"quality_score"`
}

// QualityOf returns the record's existing quality_score when it is numeric,
// otherwise the computed score.
func QualityOf(rec coerce.Record) float64 {
	if q, ok := coerce.Numeric(rec, coerce.QualityScoreKeys); ok {
		return q
	}
	return ScoreRecord(rec)
}

// SortByQuality returns records ordered by QualityOf. The sort is stable and
// the input slice is left untouched.
func SortByQuality(records []coerce.Record, descending bool) []coerce.Record {
	ranked := Rank(records, descending)
	out := make([]coerce.Record, len(ranked))
	for i, sk := range ranked {
		out[i] = sk.Record
	}
	return out
}

// Rank is SortByQuality with each record's score attached.
func Rank(records []coerce.Record, descending bool) []ScoredKeyword {
	ranked := make([]ScoredKeyword, len(records))
	for i, rec := range records {
		ranked[i] = ScoredKeyword{Record: rec, QualityScore: QualityOf(rec)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if descending {
			return ranked[i].QualityScore > ranked[j].QualityScore
		}
		return ranked[i].QualityScore < ranked[j].QualityScore
	})
	return ranked
}
