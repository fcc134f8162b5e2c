package scoring

import (
	"math"
	"testing"

	"keyword-go/pkg/coerce"
)

func TestScore_TierBoundaries(t *testing.T) {
	best := KeywordMetrics{SearchVolume: 10000, Difficulty: 20, CPC: 5.0, Competition: 0.2, Relevance: 1.0}
	if got := Score(best); got != 100.0 {
		t.Errorf("Expected 100.0 for top tiers, got %f", got)
	}

	worst := KeywordMetrics{SearchVolume: 0, Difficulty: 100, CPC: 0, Competition: 1.0, Relevance: 0.0}
	if got := Score(worst); got != 2.0 {
		t.Errorf("Expected 2.0 for bottom tiers, got %f", got)
	}
}

func TestExplain_Components(t *testing.T) {
	tests := []struct {
		name    string
		metrics KeywordMetrics
		want    Breakdown
	}{
		{
			name:    "mid tiers",
			metrics: KeywordMetrics{SearchVolume: 1000, Difficulty: 45, CPC: 2.5, Competition: 0.5, Relevance: 0.5},
			want:    Breakdown{Volume: 30, Difficulty: 20, CPC: 10, Competition: 6, Relevance: 2.5, Total: 68.5},
		},
		{
			name:    "just below tiers",
			metrics: KeywordMetrics{SearchVolume: 9999, Difficulty: 20.5, CPC: 4.99, Competition: 0.81, Relevance: 0},
			want:    Breakdown{Volume: 35, Difficulty: 27, CPC: 12, Competition: 2, Relevance: 0, Total: 76},
		},
		{
			name:    "related keyword bonus",
			metrics: KeywordMetrics{SearchVolume: 1, Difficulty: 80, CPC: 0.1, Competition: 0.8, KeywordType: TypeRelatedKeyword},
			want:    Breakdown{Volume: 5, Difficulty: 5, CPC: 2, Competition: 4, TypeBonus: 1, Total: 17},
		},
		{
			name:    "kw idea bonus",
			metrics: KeywordMetrics{SearchVolume: 50, Difficulty: 81, Competition: 0.4, KeywordType: TypeKWIdea},
			want:    Breakdown{Volume: 15, Difficulty: 0, Competition: 8, TypeBonus: 0.5, Total: 23.5},
		},
		{
			name:    "unknown type has no bonus",
			metrics: KeywordMetrics{SearchVolume: 10, Difficulty: 60, CPC: 1.0, Competition: 0.6, KeywordType: "Question"},
			want:    Breakdown{Volume: 10, Difficulty: 15, CPC: 8, Competition: 6, Total: 39},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Explain(tt.metrics)
			if got != tt.want {
				t.Errorf("Explain() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScore_Clamped(t *testing.T) {
	tests := []KeywordMetrics{
		{SearchVolume: 50000, Difficulty: 0, CPC: 40, Competition: 0, Relevance: 30, KeywordType: TypeRelatedKeyword},
		{SearchVolume: -10, Difficulty: 500, CPC: -3, Competition: 9, Relevance: -40},
		{Relevance: math.Inf(1)},
		{Relevance: math.NaN(), Difficulty: math.NaN()},
	}

	for _, m := range tests {
		got := Score(m)
		if got < MinScore || got > MaxScore || math.IsNaN(got) {
			t.Errorf("Score(%+v) = %f, outside [0, 100]", m, got)
		}
	}
}

func TestScore_Monotonic(t *testing.T) {
	base := KeywordMetrics{SearchVolume: 100, Difficulty: 50, CPC: 1, Competition: 0.5, Relevance: 0.5}

	volumes := []int{0, 1, 9, 10, 49, 50, 99, 100, 500, 1000, 5000, 10000, 99999}
	prev := -1.0
	for _, v := range volumes {
		m := base
		m.SearchVolume = v
		got := Score(m)
		if got < prev {
			t.Errorf("Score decreased when search volume rose to %d: %f < %f", v, got, prev)
		}
		prev = got
	}

	difficulties := []float64{0, 10, 20, 25, 30, 45, 50, 60, 70, 80, 90, 100}
	prev = math.Inf(1)
	for _, d := range difficulties {
		m := base
		m.Difficulty = d
		got := Score(m)
		if got > prev {
			t.Errorf("Score increased when difficulty rose to %f: %f > %f", d, got, prev)
		}
		prev = got
	}

	competitions := []float64{0, 0.1, 0.2, 0.3, 0.4, 0.6, 0.8, 0.9, 1.0}
	prev = math.Inf(1)
	for _, c := range competitions {
		m := base
		m.Competition = c
		got := Score(m)
		if got > prev {
			t.Errorf("Score increased when competition rose to %f: %f > %f", c, got, prev)
		}
		prev = got
	}

	cpcs := []float64{0, 0.05, 0.1, 0.5, 1, 2, 3, 5, 12}
	prev = -1.0
	for _, c := range cpcs {
		m := base
		m.CPC = c
		got := Score(m)
		if got < prev {
			t.Errorf("Score decreased when cpc rose to %f: %f < %f", c, got, prev)
		}
		prev = got
	}

	relevances := []float64{0, 0.25, 0.5, 0.75, 1}
	prev = -1.0
	for _, r := range relevances {
		m := base
		m.Relevance = r
		got := Score(m)
		if got < prev {
			t.Errorf("Score decreased when relevance rose to %f: %f < %f", r, got, prev)
		}
		prev = got
	}
}

func TestMetricsFromRecord_Defaults(t *testing.T) {
	m := MetricsFromRecord(coerce.Record{})
	want := KeywordMetrics{
		SearchVolume: DefaultSearchVolume,
		Difficulty:   DefaultDifficulty,
		CPC:          DefaultCPC,
		Competition:  DefaultCompetition,
		Relevance:    DefaultRelevance,
	}
	if m != want {
		t.Errorf("MetricsFromRecord({}) = %+v, want %+v", m, want)
	}

	// Zero difficulty and relevance are read as absent.
	m = MetricsFromRecord(coerce.Record{"difficulty": 0, "relevance": 0.0, "competition": "none"})
	if m.Difficulty != DefaultDifficulty || m.Relevance != DefaultRelevance || m.Competition != DefaultCompetition {
		t.Errorf("Expected falsy fields to take defaults, got %+v", m)
	}
}

func TestMetricsFromRecord_Aliases(t *testing.T) {
	rec := coerce.Record{
		"volume":           "2400",
		"difficulty_score": 33.0,
		"cpc":              "1.75",
		"competition":      0.15,
		"confidence":       0.5,
		"type":             TypeKWIdea,
	}
	m := MetricsFromRecord(rec)
	want := KeywordMetrics{SearchVolume: 2400, Difficulty: 33, CPC: 1.75, Competition: 0.15, Relevance: 0.5, KeywordType: TypeKWIdea}
	if m != want {
		t.Errorf("MetricsFromRecord() = %+v, want %+v", m, want)
	}
}

func TestScoreRecord_MalformedInput(t *testing.T) {
	rec := coerce.Record{
		"search_volume": "lots",
		"difficulty":    []interface{}{1, 2},
		"cpc":           true,
		"competition":   nil,
		"relevance":     map[string]interface{}{"x": 1},
	}
	// volume 0, difficulty 50, cpc 0, competition 0.5, relevance 1.0
	if got := ScoreRecord(rec); got != 31.0 {
		t.Errorf("Expected 31.0 from defaults, got %f", got)
	}
}

func TestScore_Deterministic(t *testing.T) {
	m := KeywordMetrics{SearchVolume: 720, Difficulty: 38, CPC: 2.2, Competition: 0.35, Relevance: 0.5, KeywordType: TypeKWIdea}
	first := Score(m)
	for i := 0; i < 100; i++ {
		if got := Score(m); got != first {
			t.Fatalf("Score changed between calls: %f != %f", got, first)
		}
	}
}
