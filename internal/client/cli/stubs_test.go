package cli

import (
	"bytes"
	"context"
	"strings"

	"github.com/dmitrijs2005/clinicsite/internal/client/models"
	"github.com/dmitrijs2005/clinicsite/internal/client/services"
	"github.com/dmitrijs2005/clinicsite/internal/logging"
)

type stubAuth struct {
	token     string
	authed    bool
	loginErr  error
	logoutErr error
	claims    *services.TokenClaims
	claimsErr error

	lastCreds *models.Credentials
	logins    int
}

func (s *stubAuth) Login(_ context.Context, creds *models.Credentials) error {
	s.logins++
	s.lastCreds = creds
	if s.loginErr != nil {
		return s.loginErr
	}
	s.token, s.authed = "T1", true
	return nil
}
func (s *stubAuth) AccessToken(context.Context) string  { return s.token }
func (s *stubAuth) RefreshToken(context.Context) string { return "" }
func (s *stubAuth) IsAuthenticated(context.Context) bool {
	return s.authed
}
func (s *stubAuth) Logout(context.Context) error {
	s.token, s.authed = "", false
	return s.logoutErr
}
func (s *stubAuth) AuthHeader(context.Context) (map[string]string, error) {
	return map[string]string{"Authorization": "Bearer " + s.token}, nil
}
func (s *stubAuth) AuthHeaderSync(context.Context) (map[string]string, error) {
	return map[string]string{"Authorization": "Bearer " + s.token}, nil
}
func (s *stubAuth) Claims(context.Context) (*services.TokenClaims, error) {
	return s.claims, s.claimsErr
}

type stubTeam struct {
	items     []models.TeamMember
	err       error
	cleared   int
	refreshed int
}

func (s *stubTeam) TeamMembers(context.Context) ([]models.TeamMember, error) {
	return s.items, s.err
}
func (s *stubTeam) TeamMemberByID(_ context.Context, id int64) (*models.TeamMember, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, nil
}
func (s *stubTeam) TeamMemberByName(_ context.Context, name string) (*models.TeamMember, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.items {
		if strings.Contains(strings.ToLower(s.items[i].Name), strings.ToLower(name)) {
			return &s.items[i], nil
		}
	}
	return nil, nil
}
func (s *stubTeam) ImageURL(id string) string { return "https://cms.test/assets/" + id }
func (s *stubTeam) ClearCache()               { s.cleared++ }
func (s *stubTeam) RefreshTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	s.refreshed++
	return s.TeamMembers(ctx)
}

func sampleTeam() []models.TeamMember {
	return []models.TeamMember{
		{ID: 1, Name: "Ana Souza", Description: "Dermatologista", Image: "img-1"},
		{ID: 2, Name: "Bruno Lima", Description: "Fisioterapeuta"},
	}
}

func newTestApp(input string) (*App, *stubAuth, *stubTeam, *bytes.Buffer) {
	auth := &stubAuth{}
	team := &stubTeam{items: sampleTeam()}
	out := &bytes.Buffer{}
	return NewApp(auth, team, logging.Discard(), strings.NewReader(input), out), auth, team, out
}
