package cli

import (
	"github.com/akshayb7/notion-knowledge-distiller-mcp/internal/core"
	"github.com/akshayb7/notion-knowledge-distiller-mcp/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	Cfg        models.Config
	Persister  core.Persister
	PersistErr error
	Library    *core.Library
)
