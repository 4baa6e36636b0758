package models

import "time"

// Config holds the settings resolved once at startup from the environment and
// the optional .distillerrc file. Components receive it by value; there are no
// ambient lookups after initialization.
type Config struct {
	// APIKey is the Notion integration credential. Without it every tool
	// except ping is disabled.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// ParentPageID is the container page for freestanding notes. Optional.
	ParentPageID string `yaml:"parent_page_id" mapstructure:"parent_page_id"`

	// DatabaseID is the notes database for structured entries. Optional;
	// preferred over ParentPageID when both are set. Search and read require it.
	DatabaseID string `yaml:"database_id" mapstructure:"database_id"`

	// BaseURL is the Notion API endpoint. Overridable for testing.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// HTTPTimeout bounds each outbound request.
	HTTPTimeout time.Duration `yaml:"http_timeout" mapstructure:"http_timeout"`
}

// HasCredential reports whether the Notion credential is configured.
func (c Config) HasCredential() bool { return c.APIKey != "" }

// HasDestination reports whether any create destination is configured.
func (c Config) HasDestination() bool { return c.ParentPageID != "" || c.DatabaseID != "" }

// CanSearch reports whether the database-backed tools are available.
func (c Config) CanSearch() bool { return c.HasCredential() && c.DatabaseID != "" }
