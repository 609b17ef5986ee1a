package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/hireflow/assess/app"
	"github.com/hireflow/assess/catalog"
	"github.com/hireflow/assess/config"
	"github.com/hireflow/assess/database"
	"github.com/hireflow/assess/httpx"
	"github.com/hireflow/assess/log"
	"github.com/hireflow/assess/routes"
	"github.com/hireflow/assess/session"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	// no partial operation without the question catalog
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatal("main.catalog:", err)
	}
	log.Infof("loaded %d questions from %s", len(cat.Questions()), cfg.CatalogPath)

	bearerServer := httpx.NewBearerServer(db, cfg)

	app := app.App{
		DB:           db,
		BearerServer: bearerServer,
		Config:       cfg,
		Catalog:      cat,
		Sessions:     session.NewManager(db),
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
