package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"keyword-go/pkg/coerce"
)

// Tags stamped on every candidate built from a provider response.
const (
	CandidateType   = "KW Idea"
	CandidateSource = "provider"
)

// suggestResponse is the provider's wire format. Metric fields are left
// loosely typed and coerced later like any other candidate record.
type suggestResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    []struct {
		Keyword string `json:"keyword"`
		Metrics struct {
			AvgMonthlySearches interface{} `json:"avg_monthly_searches"`
			Competition        interface{} `json:"competition"`
			CPC                interface{} `json:"cpc"`
			KeywordDifficulty  interface{} `json:"keyword_difficulty"`
		} `json:"metrics"`
		EvidenceURLs []string `json:"evidence_urls"`
	} `json:"data"`
}

// ResponseParser converts provider responses into candidate records.
type ResponseParser struct{}

func NewResponseParser() *ResponseParser {
	return &ResponseParser{}
}

// Parse decodes body. Entries without a keyword are skipped.
func (p *ResponseParser) Parse(body []byte) ([]coerce.Record, error) {
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}

	var resp suggestResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v (response: %s)", ErrDecode, err, string(body[:min(len(body), 200)]))
	}

	if resp.Status != "success" {
		if resp.Message != "" {
			return nil, fmt.Errorf("%w: %s (%s)", ErrStatusFailed, resp.Status, resp.Message)
		}
		return nil, fmt.Errorf("%w: %s", ErrStatusFailed, resp.Status)
	}

	records := make([]coerce.Record, 0, len(resp.Data))
	for _, d := range resp.Data {
		if strings.TrimSpace(d.Keyword) == "" {
			continue
		}

		rec := coerce.Record{
			"keyword":            d.Keyword,
			"search_volume":      d.Metrics.AvgMonthlySearches,
			"competition":        p.mapCompetition(d.Metrics.Competition),
			"cpc":                d.Metrics.CPC,
			"keyword_difficulty": d.Metrics.KeywordDifficulty,
			"type":               CandidateType,
			"source":             CandidateSource,
		}
		if len(d.EvidenceURLs) > 0 {
			rec["evidence_urls"] = d.EvidenceURLs
		}
		records = append(records, rec)
	}
	return records, nil
}

// mapCompetition turns LOW/MEDIUM/HIGH labels into numbers. Numeric values
// pass through; anything else is reported as medium.
func (p *ResponseParser) mapCompetition(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	if _, ok := coerce.Number(v); ok {
		return v
	}

	s, _ := v.(string)
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return 0.3
	case "HIGH":
		return 0.8
	default:
		return 0.5
	}
}
