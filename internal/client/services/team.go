package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/clinicsite/internal/client/client"
	"github.com/dmitrijs2005/clinicsite/internal/client/models"
	"github.com/dmitrijs2005/clinicsite/internal/logging"
)

// DefaultTeamTTL is how long a fetched team collection is served from memory.
const DefaultTeamTTL = 5 * time.Minute

// TeamService fetches the team-member collection through AuthService and
// caches it in memory for a fixed TTL.
//
// Lookups return (nil, nil) when nothing matches. A failed fetch leaves the
// cache as it was.
type TeamService interface {
	TeamMembers(ctx context.Context) ([]models.TeamMember, error)
	TeamMemberByID(ctx context.Context, id int64) (*models.TeamMember, error)
	TeamMemberByName(ctx context.Context, name string) (*models.TeamMember, error)
	ImageURL(assetID string) string
	ClearCache()
	RefreshTeamMembers(ctx context.Context) ([]models.TeamMember, error)
}

type teamService struct {
	client     client.Client
	auth       AuthService
	collection string
	ttl        time.Duration
	log        logging.Logger
	opts       options

	group singleflight.Group

	mu        sync.RWMutex
	items     []models.TeamMember
	cached    bool
	expiresAt time.Time
	gen       uint64
}

// NewTeamService constructs a TeamService reading collection. ttl <= 0 means
// DefaultTeamTTL.
func NewTeamService(c client.Client, auth AuthService, collection string, ttl time.Duration, log logging.Logger, opts ...Option) TeamService {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if ttl <= 0 {
		ttl = DefaultTeamTTL
	}
	return &teamService{
		client:     c,
		auth:       auth,
		collection: collection,
		ttl:        ttl,
		log:        log.With("module", "team", "collection", collection),
		opts:       o,
	}
}

// cachedItems returns a copy of the cache while it is fresh.
func (s *teamService) cachedItems() ([]models.TeamMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.cached || !s.opts.now().Before(s.expiresAt) {
		return nil, false
	}
	return slices.Clone(s.items), true
}

func (s *teamService) TeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	if items, ok := s.cachedItems(); ok {
		s.opts.metrics.cacheHit()
		return items, nil
	}

	items, err := sharedCall(ctx, &s.group, "fetch", s.fetch)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

// fetch always goes to the network. On success the cache is replaced
// wholesale unless ClearCache ran while the request was in flight.
func (s *teamService) fetch(ctx context.Context) ([]models.TeamMember, error) {
	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	items, err := s.load(ctx)
	s.opts.metrics.fetch(err)
	if err != nil {
		s.log.Warn(ctx, "team fetch failed", "error", err)
		return nil, err
	}

	s.mu.Lock()
	if s.gen == gen {
		s.items = items
		s.cached = true
		s.expiresAt = s.opts.now().Add(s.ttl)
		s.gen++
	}
	s.mu.Unlock()

	s.log.Info(ctx, "team collection fetched", "count", len(items))
	return items, nil
}

func (s *teamService) load(ctx context.Context) ([]models.TeamMember, error) {
	headers, err := s.auth.AuthHeader(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.FetchCollection(ctx, s.collection, headers)
	if err != nil {
		return nil, err
	}

	items := []models.TeamMember{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode team members: %w", err)
	}
	return items, nil
}

func (s *teamService) TeamMemberByID(ctx context.Context, id int64) (*models.TeamMember, error) {
	items, err := s.TeamMembers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (s *teamService) TeamMemberByName(ctx context.Context, name string) (*models.TeamMember, error) {
	items, err := s.TeamMembers(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(name)
	for i := range items {
		if strings.Contains(strings.ToLower(items[i].Name), needle) {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (s *teamService) ImageURL(assetID string) string {
	return s.client.AssetURL(assetID)
}

func (s *teamService) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.cached = false
	s.expiresAt = time.Time{}
	s.gen++
}

// RefreshTeamMembers discards the cache and fetches again. It never joins a
// fetch that started before the call.
func (s *teamService) RefreshTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	s.ClearCache()
	s.group.Forget("fetch")
	return s.TeamMembers(ctx)
}
