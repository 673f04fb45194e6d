package domain

// CompanySentiment is the per-company analysis output attached to one article.
type CompanySentiment struct {
	// Canonical company name.
	MappedName string `json:"mapped_name"`
	// Exchange ticker, empty when the company is unlisted or unknown.
	StockCode string `json:"stock_code,omitempty"`
	// Country of incorporation as reported by the analyzer.
	Country string `json:"country"`
	// Listing status label, e.g. "상장" for listed companies.
	ListingStatus string `json:"listing_status"`
	// Sentiment label for this company in this article.
	Sentiment string `json:"sentiment"`
}

// IsDomestic reports whether the company is incorporated in Korea.
func (c *CompanySentiment) IsDomestic() bool {
	return c.Country == "Korea"
}

// IsListed reports whether the company is listed on an exchange.
func (c *CompanySentiment) IsListed() bool {
	return c.ListingStatus == "상장"
}

// AnalysisResult is the output of the external analysis step for one article.
type AnalysisResult struct {
	// Summary is the derived summary text.
	Summary string `json:"summary"`
	// Companies maps company display names to their sentiment payloads.
	Companies map[string]CompanySentiment `json:"companies"`
}

// Record is the merged article + analysis shape written to JSON backups and
// accepted by the bulk-import entry point.
type Record struct {
	Article
	Summary  string          `json:"summary"`
	Analysis *AnalysisResult `json:"analysis"`
}

// Companies returns the analysis company map, or an empty map when the
// analysis payload is absent or carries no companies.
func (r *Record) Companies() map[string]CompanySentiment {
	if r.Analysis == nil || r.Analysis.Companies == nil {
		return map[string]CompanySentiment{}
	}
	return r.Analysis.Companies
}
