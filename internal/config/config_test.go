package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsradar/internal/config"
)

func loadWith(t *testing.T, overrides map[string]any) *config.Config {
	t.Helper()

	v := viper.New()
	config.SetDefaults(v)
	for key, value := range overrides {
		v.Set(key, value)
	}

	cfg, err := config.Load(v)
	require.NoError(t, err)
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg := loadWith(t, nil)

	require.Equal(t, "newsradar", cfg.App.Name)
	require.Equal(t, "info", cfg.Logger.Level)
	require.Equal(t, "json", cfg.Logger.Encoding)
	require.Equal(t, 30*time.Second, cfg.Crawler.RequestTimeout)
	require.Equal(t, 10, cfg.Search.Limit)
	require.Equal(t, "gpt-4o-mini", cfg.Analyzer.Model)
	require.Equal(t, "saved_news", cfg.Backup.Dir)
	require.Equal(t, "7 0 * * *", cfg.Schedule.Spec)
	require.Equal(t, "Asia/Seoul", cfg.Schedule.Timezone)
	require.Empty(t, cfg.Keywords)
}

func TestLoad_OverridesAndKeywords(t *testing.T) {
	t.Parallel()

	cfg := loadWith(t, map[string]any{
		"database.user":   "radar",
		"database.dbname": "radar_db",
		"keywords": []map[string]any{
			{"name": "삼성전자", "stock_code": "005930"},
			{"name": "현대차"},
		},
	})

	require.Equal(t, "radar", cfg.Database.User)
	require.Len(t, cfg.Keywords, 2)
	require.Equal(t, "삼성전자", cfg.Keywords[0].Name)
	require.Equal(t, "005930", cfg.Keywords[0].StockCode)
	require.Empty(t, cfg.Keywords[1].StockCode)
}

func TestValidateCrawl_RequiresKeywordsKeyAndDatabase(t *testing.T) {
	t.Parallel()

	cfg := loadWith(t, nil)
	require.Error(t, cfg.ValidateCrawl())

	cfg = loadWith(t, map[string]any{
		"keywords":         []map[string]any{{"name": "삼성전자"}},
		"analyzer.api_key": "sk-test",
		"database.user":    "radar",
		"database.dbname":  "radar_db",
	})
	require.NoError(t, cfg.ValidateCrawl())
}

func TestValidateAnalyzer_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	cfg := loadWith(t, nil)
	require.Error(t, cfg.ValidateAnalyzer())
}
