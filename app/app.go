package app

import (
	"database/sql"

	"github.com/go-chi/oauth"

	"github.com/hireflow/assess/catalog"
	"github.com/hireflow/assess/config"
	"github.com/hireflow/assess/session"
)

type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config
	Catalog  *catalog.Catalog
	Sessions *session.Manager
}
