package maintenance

import (
	"context"
	"database/sql"
	"time"

	"github.com/robfig/cron/v3"

	"stpaul-crime/config"
	"stpaul-crime/core/utils"
)

// Scheduler runs periodic upkeep on the SQLite file: WAL checkpointing and
// query-planner statistics. The database stays fully usable while it runs.
type Scheduler struct {
	cfg    config.MaintenanceConfig
	db     *sql.DB
	logger *utils.Logger
	cron   *cron.Cron
}

func NewScheduler(cfg config.MaintenanceConfig, db *sql.DB, logger *utils.Logger) *Scheduler {
	return &Scheduler{cfg: cfg, db: db, logger: logger}
}

func (s *Scheduler) Start() error {
	if s == nil || !s.cfg.Enabled {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(s.cfg.Schedule, s.runOnce); err != nil {
		return err
	}
	s.cron = c
	c.Start()
	s.logger.Infof("maintenance scheduled: %s", s.cfg.Schedule)
	return nil
}

// Stop waits for an in-flight run to finish, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	for _, stmt := range []string{
		`PRAGMA wal_checkpoint(TRUNCATE)`,
		`PRAGMA optimize`,
		`ANALYZE`,
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			s.logger.Errorf("maintenance %s: %v", stmt, err)
			return
		}
	}
	s.logger.Debugf("maintenance pass complete")
}
