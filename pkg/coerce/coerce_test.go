package coerce

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
		ok    bool
	}{
		{"int", 42, 42, true},
		{"float", 1.5, 1.5, true},
		{"numeric string", " 12.5 ", 12.5, true},
		{"json number", json.Number("300"), 300, true},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"garbage string", "lots", 0, false},
		{"blank string", "   ", 0, false},
		{"nan", math.NaN(), 0, false},
		{"inf string", "Inf", 0, false},
		{"list", []interface{}{1}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Number(tt.input)
			if ok != tt.ok {
				t.Fatalf("Number(%v) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Number(%v) = %f, want %f", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat_FalsyMeansAbsent(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want float64
	}{
		{"missing", Record{}, 50},
		{"null", Record{"difficulty": nil}, 50},
		{"zero", Record{"difficulty": 0}, 50},
		{"empty string", Record{"difficulty": ""}, 50},
		{"unparsable", Record{"difficulty": "hard"}, 50},
		{"string number", Record{"difficulty": "35"}, 35},
		{"second alias", Record{"keyword_difficulty": 12.0}, 12},
		{"falsy first alias falls through", Record{"difficulty": 0, "difficulty_score": 70}, 70},
		{"first alias wins", Record{"difficulty": 10, "keyword_difficulty": 90}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Float(tt.rec, DifficultyKeys, 50); got != tt.want {
				t.Errorf("Float() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestInt(t *testing.T) {
	rec := Record{"search_volume": "1200.9"}
	if got := Int(rec, SearchVolumeKeys, 0); got != 1200 {
		t.Errorf("Expected 1200, got %d", got)
	}

	rec = Record{"avg_monthly_searches": float64(880)}
	if got := Int(rec, SearchVolumeKeys, 0); got != 880 {
		t.Errorf("Expected alias lookup to return 880, got %d", got)
	}

	if got := Int(Record{"volume": "n/a"}, SearchVolumeKeys, 7); got != 7 {
		t.Errorf("Expected default 7, got %d", got)
	}
}

func TestNumeric_ZeroIsPresent(t *testing.T) {
	f, ok := Numeric(Record{"quality_score": 0}, QualityScoreKeys)
	if !ok || f != 0 {
		t.Errorf("Expected present zero, got %f (ok=%v)", f, ok)
	}

	if _, ok := Numeric(Record{"quality_score": "high"}, QualityScoreKeys); ok {
		t.Error("Expected non-numeric quality_score to be absent")
	}
}

func TestString(t *testing.T) {
	rec := Record{"keyword": "   ", "phrase": 17, "text": "  dog wash  ", "query": "ignored"}
	if got := String(rec, PhraseKeys, ""); got != "dog wash" {
		t.Errorf("Expected 'dog wash', got '%s'", got)
	}

	if got := String(Record{}, PhraseKeys, "unknown"); got != "unknown" {
		t.Errorf("Expected default, got '%s'", got)
	}
}

func TestStrings(t *testing.T) {
	rec := Record{"evidence_urls": []interface{}{"https://a.example", 3, "", "https://b.example"}}
	got := Strings(rec, EvidenceURLKeys)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("Unexpected urls: %v", got)
	}

	single := Strings(Record{"evidence_urls": "https://c.example"}, EvidenceURLKeys)
	if len(single) != 1 {
		t.Errorf("Expected bare string to become one url, got %v", single)
	}

	empty := Strings(Record{"evidence_urls": []interface{}{}}, EvidenceURLKeys)
	if empty == nil || len(empty) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", empty)
	}
}
