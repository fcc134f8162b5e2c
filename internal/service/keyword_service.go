package service

import (
	"context"
	"fmt"
	"sort"

	"keyword-go/pkg/coerce"
	"keyword-go/pkg/logger"
	"keyword-go/pkg/longtail"
	"keyword-go/pkg/provider"
	"keyword-go/pkg/scoring"
)

type keywordService struct {
	provider provider.CandidateProvider
	defaults longtail.Options
	log      *logger.Logger
}

// NewKeywordService builds the service. candidates may be nil, in which case
// fetch requests fail with ErrProviderDisabled.
func NewKeywordService(candidates provider.CandidateProvider, defaults longtail.Options) KeywordService {
	return &keywordService{
		provider: candidates,
		defaults: defaults,
		log:      logger.GetLogger().WithField("component", "keyword_service"),
	}
}

func (s *keywordService) Score(records []coerce.Record) []ScoreResult {
	results := make([]ScoreResult, len(records))
	for i, rec := range records {
		b := scoring.Explain(scoring.MetricsFromRecord(rec))
		results[i] = ScoreResult{
			Keyword:      coerce.String(rec, coerce.PhraseKeys, ""),
			QualityScore: b.Total,
			Breakdown:    b,
		}
	}
	return results
}

func (s *keywordService) Sort(records []coerce.Record, descending bool) []coerce.Record {
	return scoring.SortByQuality(records, descending)
}

func (s *keywordService) Rank(records []coerce.Record, descending bool) []scoring.ScoredKeyword {
	return scoring.Rank(records, descending)
}

func (s *keywordService) Classify(phrases []string) []Classification {
	out := make([]Classification, len(phrases))
	for i, p := range phrases {
		out[i] = Classification{Phrase: p, Intent: longtail.ClassifyIntent(p)}
	}
	return out
}

func (s *keywordService) Longtail(ctx context.Context, req LongtailRequest) (*LongtailResult, error) {
	seed := longtail.NormalizePhrase(req.Seed)
	if seed == "" {
		return nil, ErrEmptySeed
	}

	records := req.Candidates
	if len(records) == 0 && req.Fetch {
		fetched, err := s.fetch(ctx, seed)
		if err != nil {
			return nil, err
		}
		records = fetched
	}

	opts := s.options(req)
	limit := opts.MaxItems
	if req.Rank {
		// Ranked truncation happens after scoring.
		opts.MaxItems = 0
	}

	items, stats := longtail.ExtractWithStats(seed, longtail.CandidatesFromRecords(records), opts)

	scored := make([]ScoredItem, len(items))
	for i, item := range items {
		scored[i] = ScoredItem{Item: item, QualityScore: scoring.ScoreRecord(itemRecord(item))}
	}

	if req.Rank {
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].QualityScore > scored[j].QualityScore
		})
		if limit > 0 && len(scored) > limit {
			stats.Dropped[longtail.DropTruncated] = len(scored) - limit
			scored = scored[:limit]
			stats.Kept = limit
		}
	}

	s.log.WithFields(map[string]interface{}{
		"seed":       seed,
		"candidates": stats.Candidates,
		"kept":       stats.Kept,
		"dropped":    stats.Dropped,
		"ranked":     req.Rank,
	}).Debug("Longtail extraction completed")

	return &LongtailResult{
		Seed:    seed,
		Items:   scored,
		Buckets: bucketScored(scored),
		Stats:   stats,
	}, nil
}

func (s *keywordService) fetch(ctx context.Context, seed string) ([]coerce.Record, error) {
	if s.provider == nil {
		return nil, ErrProviderDisabled
	}

	records, err := s.provider.Suggest(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	s.log.WithFields(map[string]interface{}{
		"seed":       seed,
		"candidates": len(records),
	}).Info("Fetched candidates from provider")
	return records, nil
}

func (s *keywordService) options(req LongtailRequest) longtail.Options {
	opts := s.defaults
	if req.MinWords != nil {
		opts.MinWords = *req.MinWords
	}
	if req.MaxItems != nil {
		opts.MaxItems = *req.MaxItems
	}
	return opts
}

// itemRecord exposes an item's metrics to the scorer under the same
// falsy-means-absent rules as any other record.
func itemRecord(item longtail.Item) coerce.Record {
	return coerce.Record{
		"keyword":            item.Phrase,
		"search_volume":      item.SearchVolume,
		"keyword_difficulty": item.KeywordDifficulty,
		"cpc":                item.CPC,
		"competition":        item.Competition,
		"keyword_type":       item.Type,
	}
}

func bucketScored(items []ScoredItem) map[longtail.Intent][]ScoredItem {
	return longtail.BucketBy(items, func(it ScoredItem) longtail.Intent { return it.Intent })
}
