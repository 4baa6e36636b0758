// Package internal provides the App struct that wires all components of the
// knowledge distiller together and initializes the CLI layer.
package internal

import (
	"os"

	"github.com/akshayb7/notion-knowledge-distiller-mcp/internal/cli"
	"github.com/akshayb7/notion-knowledge-distiller-mcp/internal/core"
	"github.com/akshayb7/notion-knowledge-distiller-mcp/internal/notion"
	"github.com/akshayb7/notion-knowledge-distiller-mcp/pkg/models"
)

// App holds the service dependencies of the distiller.
type App struct {
	Cfg       models.Config
	Notion    notion.API
	Persister core.Persister
	Library   *core.Library

	// PersistErr records why the persister is unavailable when no
	// destination is configured; reported to callers instead of failing
	// startup.
	PersistErr error
}

// NewApp resolves configuration once and wires all components. A missing
// credential or destination does not fail startup: the affected tools are
// disabled and the reason is kept for reporting.
func NewApp(basePath string) (*App, error) {
	cfg, err := core.LoadConfig(basePath)
	if err != nil {
		return nil, err
	}

	app := &App{Cfg: cfg}

	app.Notion = notion.NewClient(cfg.APIKey, cfg.BaseURL, cfg.HTTPTimeout)
	app.Library = core.NewLibrary(cfg, app.Notion)
	app.Persister, app.PersistErr = core.NewPersister(cfg, app.Notion)

	// Expose services to the CLI layer.
	cli.Cfg = app.Cfg
	cli.Persister = app.Persister
	cli.PersistErr = app.PersistErr
	cli.Library = app.Library

	return app, nil
}

// ResolveBasePath returns the directory searched for the optional
// .distillerrc file: the current working directory.
func ResolveBasePath() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
