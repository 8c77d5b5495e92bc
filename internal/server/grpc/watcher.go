package grpc

import (
	"context"
	"time"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/clinicsite/internal/client/services"
	"github.com/dmitrijs2005/clinicsite/internal/logging"
)

// StatusSetter is satisfied by *health.Server.
type StatusSetter interface {
	SetServingStatus(service string, status healthpb.HealthCheckResponse_ServingStatus)
}

// Watcher keeps the team cache warm and mirrors the outcome into the
// CMSService health status. Each check runs the credential expiry check
// first, so an expired token is dropped and the next fetch logs in again.
type Watcher struct {
	auth     services.AuthService
	team     services.TeamService
	status   StatusSetter
	interval time.Duration
	log      logging.Logger
}

func NewWatcher(auth services.AuthService, team services.TeamService, status StatusSetter, interval time.Duration, log logging.Logger) *Watcher {
	return &Watcher{auth: auth, team: team, status: status, interval: interval, log: log.With("module", "watcher")}
}

// Run checks once immediately, then every interval until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.check(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *Watcher) check(ctx context.Context) bool {
	if !w.auth.IsAuthenticated(ctx) {
		w.log.Debug(ctx, "no valid credentials, next fetch logs in")
	}

	items, err := w.team.TeamMembers(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		w.log.Warn(ctx, "team cache warm-up failed", "error", err)
		w.status.SetServingStatus(CMSService, healthpb.HealthCheckResponse_NOT_SERVING)
		return false
	}
	w.log.Debug(ctx, "team cache warm", "count", len(items))
	w.status.SetServingStatus(CMSService, healthpb.HealthCheckResponse_SERVING)
	return true
}
