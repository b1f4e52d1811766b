// services/team_service.go - Team roster management
package services

import (
	"fmt"
	"net/url"
	"strings"

	"wodboard/database"
	"wodboard/log"
	"wodboard/models"
	"wodboard/realtime"
)

const maxNameLength = 100

type TeamService struct {
	store  database.Store
	events realtime.Publisher
}

func NewTeamService(store database.Store, events realtime.Publisher) *TeamService {
	return &TeamService{store: store, events: events}
}

// TeamInput carries the editable team fields
type TeamInput struct {
	Name      string `json:"name" yaml:"name"`
	Member1   string `json:"member1" yaml:"member1"`
	Member2   string `json:"member2" yaml:"member2"`
	Member3   string `json:"member3" yaml:"member3"`
	AvatarURL string `json:"avatar_url" yaml:"avatar_url"`
}

func (in TeamInput) normalize() (TeamInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Member1 = strings.TrimSpace(in.Member1)
	in.Member2 = strings.TrimSpace(in.Member2)
	in.Member3 = strings.TrimSpace(in.Member3)
	in.AvatarURL = strings.TrimSpace(in.AvatarURL)

	if in.Name == "" {
		return in, invalid("team name is required")
	}
	if len(in.Name) > maxNameLength {
		return in, invalid("team name must be at most %d characters", maxNameLength)
	}
	for _, m := range []string{in.Member1, in.Member2, in.Member3} {
		if len(m) > maxNameLength {
			return in, invalid("member names must be at most %d characters", maxNameLength)
		}
	}
	if in.AvatarURL != "" {
		u, err := url.Parse(in.AvatarURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return in, invalid("avatar URL must be an http(s) URL")
		}
	}
	return in, nil
}

// ================== TEAM CRUD OPERATIONS ==================

// List returns every team ordered by name
func (s *TeamService) List() ([]models.Team, error) {
	return s.store.ListTeams()
}

func (s *TeamService) Get(id string) (*models.Team, error) {
	return s.store.GetTeam(id)
}

func (s *TeamService) Create(in TeamInput) (*models.Team, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:      in.Name,
		Member1:   in.Member1,
		Member2:   in.Member2,
		Member3:   in.Member3,
		AvatarURL: in.AvatarURL,
	}
	if err := s.store.CreateTeam(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	log.WithComponent("teams").Info().Str("team_id", team.ID).Str("name", team.Name).Msg("Team created")
	s.refresh()
	s.events.Publish(realtime.NewEvent(realtime.EventTeamCreated, "team_id", team.ID))
	return team, nil
}

// Update replaces the editable fields. Heat and lane are left untouched.
func (s *TeamService) Update(id string, in TeamInput) (*models.Team, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	team, err := s.store.GetTeam(id)
	if err != nil {
		return nil, err
	}
	team.Name = in.Name
	team.Member1 = in.Member1
	team.Member2 = in.Member2
	team.Member3 = in.Member3
	team.AvatarURL = in.AvatarURL

	if err := s.store.UpdateTeam(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	s.events.Publish(realtime.NewEvent(realtime.EventTeamUpdated, "team_id", team.ID))
	return s.store.GetTeam(id)
}

// Delete removes the team together with its results and re-ranks every
// workout that lost a result
func (s *TeamService) Delete(id string) error {
	var affectedWorkouts []string
	err := s.store.WithTx(func(tx database.Store) error {
		if _, err := tx.GetTeam(id); err != nil {
			return err
		}

		workoutIDs, err := tx.DeleteResultsByTeam(id)
		if err != nil {
			return fmt.Errorf("failed to delete team results: %w", err)
		}
		for _, workoutID := range workoutIDs {
			if _, err := recomputeWorkout(tx, workoutID); err != nil {
				return err
			}
		}
		affectedWorkouts = workoutIDs
		return tx.DeleteTeam(id)
	})
	if err != nil {
		return err
	}

	log.WithComponent("teams").Info().
		Str("team_id", id).
		Int("workouts_reranked", len(affectedWorkouts)).
		Msg("Team deleted")

	s.refresh()
	s.events.Publish(realtime.NewEvent(realtime.EventTeamDeleted, "team_id", id))
	for _, workoutID := range affectedWorkouts {
		s.events.Publish(realtime.NewEvent(realtime.EventPointsRecomputed, "workout_id", workoutID))
	}
	return nil
}

func (s *TeamService) refresh() {
	if err := RefreshGauges(s.store); err != nil {
		log.WithComponent("teams").Warn().Err(err).Msg("Failed to refresh gauges")
	}
}
