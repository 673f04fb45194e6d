package domain

// Keyword is one company search term. The stock code, when known, is passed
// through to fetched articles as a hint for downstream consumers.
type Keyword struct {
	Name      string `json:"name" mapstructure:"name"`
	StockCode string `json:"stock_code,omitempty" mapstructure:"stock_code"`
}
