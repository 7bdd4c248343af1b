package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/wellway-health/wellway-backend/api/responses"
	"github.com/wellway-health/wellway-backend/pkg/config"
	"github.com/wellway-health/wellway-backend/pkg/db"
	pkgerrors "github.com/wellway-health/wellway-backend/pkg/errors"
	"github.com/wellway-health/wellway-backend/pkg/logger"
	"github.com/wellway-health/wellway-backend/pkg/redis"
)

const readinessTimeout = 5 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WellWay-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every hard dependency and aggregates the failures, so one
// probe response names everything that is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WellWay-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var err error
		if dbP != nil {
			if pingErr := dbP.Ping(ctx); pingErr != nil {
				err = multierr.Append(err, pkgerrors.Wrap(pkgerrors.CodeDependency, pingErr, "postgres ping"))
			}
		}
		if redisP != nil {
			if pingErr := redisP.Ping(ctx); pingErr != nil {
				err = multierr.Append(err, pkgerrors.Wrap(pkgerrors.CodeDependency, pingErr, "redis ping"))
			}
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "not ready"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
