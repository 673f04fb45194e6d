package analyze_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsradar/internal/analyze"
)

const analysisJSON = `{
  "summary": "삼성전자가 최고가를 경신했다.",
  "companies": {
    "삼성전자": {
      "mapped_name": "삼성전자",
      "stock_code": "005930",
      "country": "Korea",
      "listing_status": "상장",
      "sentiment": "positive"
    },
    "TSMC": {
      "mapped_name": "TSMC",
      "stock_code": "",
      "country": "Taiwan",
      "listing_status": "상장",
      "sentiment": "neutral"
    }
  }
}`

func TestDecodeResult_PlainJSON(t *testing.T) {
	t.Parallel()

	result, err := analyze.DecodeResult(analysisJSON)
	require.NoError(t, err)

	require.Equal(t, "삼성전자가 최고가를 경신했다.", result.Summary)
	require.Len(t, result.Companies, 2)

	samsung := result.Companies["삼성전자"]
	require.Equal(t, "005930", samsung.StockCode)
	require.Equal(t, "positive", samsung.Sentiment)
	require.True(t, samsung.IsDomestic())
	require.True(t, samsung.IsListed())

	tsmc := result.Companies["TSMC"]
	require.False(t, tsmc.IsDomestic())
	require.Empty(t, tsmc.StockCode)
}

func TestDecodeResult_FencedJSON(t *testing.T) {
	t.Parallel()

	fenced := "```json\n" + analysisJSON + "\n```"

	result, err := analyze.DecodeResult(fenced)
	require.NoError(t, err)
	require.Equal(t, "삼성전자가 최고가를 경신했다.", result.Summary)
}

func TestDecodeResult_MissingCompaniesYieldsEmptyMap(t *testing.T) {
	t.Parallel()

	result, err := analyze.DecodeResult(`{"summary": "no companies"}`)
	require.NoError(t, err)
	require.NotNil(t, result.Companies)
	require.Empty(t, result.Companies)
}

func TestDecodeResult_InvalidJSONFails(t *testing.T) {
	t.Parallel()

	_, err := analyze.DecodeResult("the model replied in prose")
	require.Error(t, err)
}
