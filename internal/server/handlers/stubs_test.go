package handlers

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/clinicsite/internal/client/models"
	"github.com/dmitrijs2005/clinicsite/internal/client/services"
)

type stubTeam struct {
	items []models.TeamMember
	err   error
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

func (s *stubTeam) ImageURL(assetID string) string { return "https://cms.test/assets/" + assetID }
func (s *stubTeam) ClearCache()                    {}
func (s *stubTeam) RefreshTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	return s.TeamMembers(ctx)
}

type stubAuth struct {
	services.AuthService
	authed bool
	checks int
}

func (s *stubAuth) IsAuthenticated(context.Context) bool {
	s.checks++
	return s.authed
}

var team = []models.TeamMember{
	{ID: 1, Name: "Dra. Ana Souza", Description: "Cardiologista", Image: "a1b2"},
	{ID: 2, Name: "Dr. Bruno Lima", Description: "Pediatra"},
}
