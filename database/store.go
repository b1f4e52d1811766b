// database/store.go - Persistence contract shared by the PostgreSQL and bbolt stores
package database

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"wodboard/models"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrLaneUnsupported is returned when the backing schema has no lane
	// column. Callers retry with the heat number alone.
	ErrLaneUnsupported = errors.New("lane column not supported")
)

// Store is the persistence layer used by the services
type Store interface {
	Migrate() error

	// ListTeams returns every team ordered by name
	ListTeams() ([]models.Team, error)
	GetTeam(id string) (*models.Team, error)
	CreateTeam(team *models.Team) error
	UpdateTeam(team *models.Team) error
	DeleteTeam(id string) error
	// SetTeamHeat stores heat and lane together. An empty lane is stored as null.
	SetTeamHeat(id string, heat int, lane string) error
	SetTeamHeatNumber(id string, heat int) error
	// ClearHeats removes heat and lane from every team that has a heat and
	// returns how many teams were touched
	ClearHeats() (int, error)
	ClearHeatNumbers() (int, error)

	// ListWorkouts returns every workout ordered by number
	ListWorkouts() ([]models.Workout, error)
	GetWorkout(id string) (*models.Workout, error)
	CreateWorkout(workout *models.Workout) error
	UpdateWorkout(workout *models.Workout) error
	SetWorkoutVisibility(id string, visible bool) error
	DeleteWorkout(id string) error
	MaxWorkoutNumber() (int, error)

	ListResults() ([]models.Result, error)
	// ListResultsByWorkout returns results ordered by time, then by
	// recording order
	ListResultsByWorkout(workoutID string) ([]models.Result, error)
	GetResult(id string) (*models.Result, error)
	FindResult(teamID, workoutID string) (*models.Result, error)
	CreateResult(result *models.Result) error
	DeleteResult(id string) error
	// DeleteResultsByTeam returns the IDs of the workouts that lost a result
	DeleteResultsByTeam(teamID string) ([]string, error)
	DeleteResultsByWorkout(workoutID string) error
	// UpdatePoints writes points keyed by result ID
	UpdatePoints(points map[string]int) error

	// GetStartTime returns the stored "HH:MM" start time or ErrNotFound
	GetStartTime() (string, error)
	PutStartTime(clock string) error
	ClearStartTime() error

	GetAdminByUsername(username string) (*models.Admin, error)
	CreateAdmin(admin *models.Admin) error
	TouchAdminLogin(id uint, at time.Time) error

	// WithTx runs fn against a store bound to a single transaction
	WithTx(fn func(Store) error) error
	Close() error
}

// pgUndefinedColumn is the SQLSTATE Postgres reports for a missing column
const pgUndefinedColumn = "42703"

// isLaneError reports whether a driver error says the lane column is missing
func isLaneError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedColumn && strings.Contains(pgErr.Message, `"lane"`)
	}
	return strings.Contains(err.Error(), `column "lane"`)
}
