package core

import (
	"fmt"
	"time"

	"github.com/akshayb7/notion-knowledge-distiller-mcp/internal/notion"
	"github.com/akshayb7/notion-knowledge-distiller-mcp/pkg/models"
	"github.com/spf13/viper"
)

// defaultHTTPTimeout bounds each outbound Notion request.
const defaultHTTPTimeout = 30 * time.Second

// LoadConfig resolves the distiller configuration once at startup. Values
// come from the environment (NOTION_API_KEY, NOTION_PARENT_PAGE_ID,
// NOTION_DATABASE_ID) with an optional .distillerrc YAML file in basePath
// supplying anything the environment leaves unset. A missing file is not an
// error; a malformed one is.
func LoadConfig(basePath string) (models.Config, error) {
	v := viper.New()
	v.SetConfigName(".distillerrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(basePath)

	v.SetDefault("base_url", notion.DefaultBaseURL)
	v.SetDefault("http_timeout", defaultHTTPTimeout.String())

	// Environment takes precedence over the file.
	v.SetEnvPrefix("notion")
	_ = v.BindEnv("api_key")
	_ = v.BindEnv("parent_page_id")
	_ = v.BindEnv("database_id")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return models.Config{}, fmt.Errorf("reading .distillerrc: %w", err)
		}
	}

	timeout, err := time.ParseDuration(v.GetString("http_timeout"))
	if err != nil {
		return models.Config{}, fmt.Errorf("parsing http_timeout: %w", err)
	}

	return models.Config{
		APIKey:       v.GetString("api_key"),
		ParentPageID: v.GetString("parent_page_id"),
		DatabaseID:   v.GetString("database_id"),
		BaseURL:      v.GetString("base_url"),
		HTTPTimeout:  timeout,
	}, nil
}
