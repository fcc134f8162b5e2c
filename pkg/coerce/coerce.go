// Package coerce turns loosely typed keyword records into typed values.
//
// Upstream keyword providers disagree on field names and on whether numbers
// arrive as numbers or strings. Every lookup in this package probes an ordered
// list of alias keys and treats missing, null, zero, empty and unparsable
// values alike as absent, substituting the caller's default.
package coerce

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Record is a single keyword record as decoded from JSON.
type Record map[string]interface{}

// Alias tables, checked in order.
var (
	SearchVolumeKeys = []string{"search_volume", "volume", "avg_monthly_searches"}
	DifficultyKeys   = []string{"difficulty", "keyword_difficulty", "difficulty_score"}
	CPCKeys          = []string{"cpc"}
	CompetitionKeys  = []string{"competition"}
	RelevanceKeys    = []string{"relevance", "confidence"}
	KeywordTypeKeys  = []string{"keyword_type", "type"}
	QualityScoreKeys = []string{"quality_score"}
	PhraseKeys       = []string{"keyword", "phrase", "text", "query"}
	EvidenceURLKeys  = []string{"evidence_urls"}
)

// Number parses v as a finite float64. Booleans, collections, NaN and
// infinities are not numbers.
func Number(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		v = s
	case json.Number:
		// handled by cast
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		// handled by cast
	default:
		return 0, false
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Float returns the first truthy numeric value found under aliases, or def.
func Float(rec Record, aliases []string, def float64) float64 {
	for _, key := range aliases {
		if f, ok := Number(rec[key]); ok && f != 0 {
			return f
		}
	}
	return def
}

// Int is Float truncated toward zero.
func Int(rec Record, aliases []string, def int) int {
	f := Float(rec, aliases, math.NaN())
	if math.IsNaN(f) {
		return def
	}
	if f >= math.MaxInt {
		return math.MaxInt
	}
	if f <= math.MinInt {
		return math.MinInt
	}
	return int(f)
}

// Numeric returns the first value under aliases that parses as a number.
// Unlike Float, a present zero counts as found.
func Numeric(rec Record, aliases []string) (float64, bool) {
	for _, key := range aliases {
		if f, ok := Number(rec[key]); ok {
			return f, true
		}
	}
	return 0, false
}

// String returns the first non-blank string under aliases, trimmed, or def.
// Non-string values are skipped.
func String(rec Record, aliases []string, def string) string {
	for _, key := range aliases {
		if s, ok := rec[key].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return def
}

// Strings returns the non-blank strings of the first non-empty list under
// aliases. A bare string counts as a one-element list. The result is never nil.
func Strings(rec Record, aliases []string) []string {
	for _, key := range aliases {
		var out []string
		switch t := rec[key].(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				out = append(out, s)
			}
		case []string:
			for _, s := range t {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		case []interface{}:
			for _, v := range t {
				if s, ok := v.(string); ok {
					if s = strings.TrimSpace(s); s != "" {
						out = append(out, s)
					}
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return []string{}
}
