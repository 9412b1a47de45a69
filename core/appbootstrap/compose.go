package appbootstrap

import (
	"database/sql"

	"stpaul-crime/api"
	"stpaul-crime/config"
	"stpaul-crime/core/incidents"
	"stpaul-crime/core/maintenance"
	"stpaul-crime/core/store"
	"stpaul-crime/core/utils"
)

type runtimeComposition struct {
	serverDeps  api.ServerDeps
	maintenance *maintenance.Scheduler
}

func composeRuntime(cfg *config.AppConfig, db *sql.DB, logger *utils.Logger) *runtimeComposition {
	incidentsStore := store.NewIncidentsStore(db)
	referenceStore := store.NewReferenceStore(db)
	incidentsSvc := incidents.NewService(incidentsStore, cfg.EffectiveQueryLimit(), logger)

	return &runtimeComposition{
		serverDeps: api.ServerDeps{
			Config:    cfg,
			Logger:    logger,
			Incidents: incidentsSvc,
			Reference: referenceStore,
		},
		maintenance: maintenance.NewScheduler(cfg.Maintenance, db, logger),
	}
}
