package grpc

import (
	"context"
	"sync"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/clinicsite/internal/client/models"
	"github.com/dmitrijs2005/clinicsite/internal/client/services"
	"github.com/dmitrijs2005/clinicsite/internal/logging"
)

type entry struct {
	level string
	msg   string
	args  []any
}

type recLogger struct {
	mu      sync.Mutex
	entries *[]entry
}

func newRecLogger() *recLogger { return &recLogger{entries: &[]entry{}} }

func (r *recLogger) add(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, entry{level, msg, args})
}

func (r *recLogger) Debug(_ context.Context, msg string, args ...any) { r.add("debug", msg, args) }
func (r *recLogger) Info(_ context.Context, msg string, args ...any)  { r.add("info", msg, args) }
func (r *recLogger) Warn(_ context.Context, msg string, args ...any)  { r.add("warn", msg, args) }
func (r *recLogger) Error(_ context.Context, msg string, args ...any) { r.add("error", msg, args) }
func (r *recLogger) With(...any) logging.Logger                       { return r }

func (r *recLogger) last() entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (*r.entries)[len(*r.entries)-1]
}

type stubTeam struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (s *stubTeam) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubTeam) TeamMembers(context.Context) ([]models.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []models.TeamMember{{ID: 1, Name: "Dra. Ana"}}, nil
}

func (s *stubTeam) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubTeam) TeamMemberByID(context.Context, int64) (*models.TeamMember, error) {
	return nil, nil
}
func (s *stubTeam) TeamMemberByName(context.Context, string) (*models.TeamMember, error) {
	return nil, nil
}
func (s *stubTeam) ImageURL(string) string { return "" }
func (s *stubTeam) ClearCache()            {}
func (s *stubTeam) RefreshTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	return s.TeamMembers(ctx)
}

type stubAuth struct {
	services.AuthService
	mu     sync.Mutex
	checks int
}

func (s *stubAuth) IsAuthenticated(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks++
	return true
}

func (s *stubAuth) checkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checks
}

type recStatus struct {
	mu       sync.Mutex
	statuses []healthpb.HealthCheckResponse_ServingStatus
}

func (r *recStatus) SetServingStatus(service string, st healthpb.HealthCheckResponse_ServingStatus) {
	if service != CMSService {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, st)
}

func (r *recStatus) all() []healthpb.HealthCheckResponse_ServingStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]healthpb.HealthCheckResponse_ServingStatus(nil), r.statuses...)
}
