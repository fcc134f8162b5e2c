package service

import (
	"context"
	"errors"

	"keyword-go/pkg/coerce"
	"keyword-go/pkg/longtail"
	"keyword-go/pkg/scoring"
)

var (
	ErrEmptySeed           = errors.New("seed keyword is required")
	ErrProviderDisabled    = errors.New("no keyword provider configured")
	ErrProviderUnavailable = errors.New("keyword provider request failed")
)

// KeywordService composes the scorer, the longtail extractor and an optional
// candidate provider.
type KeywordService interface {
	Score(records []coerce.Record) []ScoreResult
	Sort(records []coerce.Record, descending bool) []coerce.Record
	Rank(records []coerce.Record, descending bool) []scoring.ScoredKeyword
	Classify(phrases []string) []Classification
	Longtail(ctx context.Context, req LongtailRequest) (*LongtailResult, error)
}

// ScoreResult is the score of one record with its breakdown.
type ScoreResult struct {
	Keyword      string            `json:"keyword,omitempty"`
	QualityScore float64           `json:"quality_score"`
	Breakdown    scoring.Breakdown `json:"breakdown"`
}

type Classification struct {
	Phrase string          `json:"phrase"`
	Intent longtail.Intent `json:"intent"`
}

// LongtailRequest asks for longtail phrases around Seed. Nil MinWords and
// MaxItems fall back to the service defaults.
type LongtailRequest struct {
	Seed       string          `json:"seed"`
	Candidates []coerce.Record `json:"candidates"`
	MinWords   *int            `json:"min_words,omitempty"`
	MaxItems   *int            `json:"max_items,omitempty"`
	// Rank orders items by quality score before MaxItems is applied.
	Rank bool `json:"rank"`
	// Fetch pulls candidates from the provider when none are supplied.
	Fetch bool `json:"fetch"`
}

// ScoredItem is a longtail item with its quality score.
type ScoredItem struct {
	longtail.Item
	QualityScore float64 `json:"quality_score"`
}

type LongtailResult struct {
	Seed    string                           `json:"seed"`
	Items   []ScoredItem                     `json:"items"`
	Buckets map[longtail.Intent][]ScoredItem `json:"buckets"`
	Stats   longtail.Stats                   `json:"stats"`
}
