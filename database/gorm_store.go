// database/gorm_store.go - PostgreSQL store backed by gorm
package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"wodboard/models"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DB exposes the underlying connection
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func (s *GormStore) WithTx(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func affected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ================== TEAMS ==================

func (s *GormStore) ListTeams() ([]models.Team, error) {
	var teams []models.Team
	err := s.db.Order("name ASC").Find(&teams).Error
	return teams, err
}

func (s *GormStore) GetTeam(id string) (*models.Team, error) {
	var team models.Team
	if err := s.db.Where("id = ?", id).First(&team).Error; err != nil {
		return nil, notFound(err)
	}
	return &team, nil
}

func (s *GormStore) CreateTeam(team *models.Team) error {
	return s.db.Create(team).Error
}

func (s *GormStore) UpdateTeam(team *models.Team) error {
	return affected(s.db.Model(&models.Team{}).Where("id = ?", team.ID).Updates(map[string]interface{}{
		"name":       team.Name,
		"member1":    team.Member1,
		"member2":    team.Member2,
		"member3":    team.Member3,
		"avatar_url": team.AvatarURL,
		"updated_at": time.Now().UTC(),
	}))
}

func (s *GormStore) DeleteTeam(id string) error {
	return affected(s.db.Where("id = ?", id).Delete(&models.Team{}))
}

// laneColumn returns ErrLaneUnsupported when teams has no lane column.
// Checking the schema first keeps a missing column from failing a statement
// and aborting the surrounding transaction.
func (s *GormStore) laneColumn() error {
	if !s.db.Migrator().HasColumn(&models.Team{}, "lane") {
		return fmt.Errorf("%w: column \"lane\" of relation \"teams\" does not exist", ErrLaneUnsupported)
	}
	return nil
}

func (s *GormStore) SetTeamHeat(id string, heat int, lane string) error {
	if err := s.laneColumn(); err != nil {
		return err
	}
	var laneValue interface{}
	if lane != "" {
		laneValue = lane
	}
	err := affected(s.db.Model(&models.Team{}).Where("id = ?", id).Updates(map[string]interface{}{
		"heat": heat,
		"lane": laneValue,
	}))
	if err != nil && !errors.Is(err, ErrNotFound) && isLaneError(err) {
		return fmt.Errorf("%w: %v", ErrLaneUnsupported, err)
	}
	return err
}

func (s *GormStore) SetTeamHeatNumber(id string, heat int) error {
	return affected(s.db.Model(&models.Team{}).Where("id = ?", id).Update("heat", heat))
}

func (s *GormStore) ClearHeats() (int, error) {
	if err := s.laneColumn(); err != nil {
		return 0, err
	}
	result := s.db.Model(&models.Team{}).Where("heat IS NOT NULL").Updates(map[string]interface{}{
		"heat": nil,
		"lane": nil,
	})
	if result.Error != nil {
		if isLaneError(result.Error) {
			return 0, fmt.Errorf("%w: %v", ErrLaneUnsupported, result.Error)
		}
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (s *GormStore) ClearHeatNumbers() (int, error) {
	result := s.db.Model(&models.Team{}).Where("heat IS NOT NULL").Update("heat", nil)
	return int(result.RowsAffected), result.Error
}

// ================== WORKOUTS ==================

func (s *GormStore) ListWorkouts() ([]models.Workout, error) {
	var workouts []models.Workout
	err := s.db.Order("workout_number ASC").Find(&workouts).Error
	return workouts, err
}

func (s *GormStore) GetWorkout(id string) (*models.Workout, error) {
	var workout models.Workout
	if err := s.db.Where("id = ?", id).First(&workout).Error; err != nil {
		return nil, notFound(err)
	}
	return &workout, nil
}

func (s *GormStore) CreateWorkout(workout *models.Workout) error {
	return s.db.Create(workout).Error
}

func (s *GormStore) UpdateWorkout(workout *models.Workout) error {
	return affected(s.db.Model(&models.Workout{}).Where("id = ?", workout.ID).Updates(map[string]interface{}{
		"name":           workout.Name,
		"workout_number": workout.Number,
		"description":    workout.Description,
		"is_visible":     workout.IsVisible,
		"updated_at":     time.Now().UTC(),
	}))
}

func (s *GormStore) SetWorkoutVisibility(id string, visible bool) error {
	return affected(s.db.Model(&models.Workout{}).Where("id = ?", id).Update("is_visible", visible))
}

func (s *GormStore) DeleteWorkout(id string) error {
	return affected(s.db.Where("id = ?", id).Delete(&models.Workout{}))
}

func (s *GormStore) MaxWorkoutNumber() (int, error) {
	var max int
	err := s.db.Model(&models.Workout{}).Select("COALESCE(MAX(workout_number), 0)").Scan(&max).Error
	return max, err
}

// ================== RESULTS ==================

func (s *GormStore) ListResults() ([]models.Result, error) {
	var results []models.Result
	err := s.db.Order("workout_id ASC, time_seconds ASC, created_at ASC").Find(&results).Error
	return results, err
}

func (s *GormStore) ListResultsByWorkout(workoutID string) ([]models.Result, error) {
	var results []models.Result
	err := s.db.Where("workout_id = ?", workoutID).
		Order("time_seconds ASC, created_at ASC").
		Find(&results).Error
	return results, err
}

func (s *GormStore) GetResult(id string) (*models.Result, error) {
	var result models.Result
	if err := s.db.Where("id = ?", id).First(&result).Error; err != nil {
		return nil, notFound(err)
	}
	return &result, nil
}

func (s *GormStore) FindResult(teamID, workoutID string) (*models.Result, error) {
	var result models.Result
	if err := s.db.Where("team_id = ? AND workout_id = ?", teamID, workoutID).First(&result).Error; err != nil {
		return nil, notFound(err)
	}
	return &result, nil
}

func (s *GormStore) CreateResult(result *models.Result) error {
	return s.db.Create(result).Error
}

func (s *GormStore) DeleteResult(id string) error {
	return affected(s.db.Where("id = ?", id).Delete(&models.Result{}))
}

func (s *GormStore) DeleteResultsByTeam(teamID string) ([]string, error) {
	var workoutIDs []string
	if err := s.db.Model(&models.Result{}).Where("team_id = ?", teamID).
		Distinct().Pluck("workout_id", &workoutIDs).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("team_id = ?", teamID).Delete(&models.Result{}).Error; err != nil {
		return nil, err
	}
	return workoutIDs, nil
}

func (s *GormStore) DeleteResultsByWorkout(workoutID string) error {
	return s.db.Where("workout_id = ?", workoutID).Delete(&models.Result{}).Error
}

func (s *GormStore) UpdatePoints(points map[string]int) error {
	for id, p := range points {
		if err := s.db.Model(&models.Result{}).Where("id = ?", id).Update("points", p).Error; err != nil {
			return fmt.Errorf("failed to update points for result %s: %w", id, err)
		}
	}
	return nil
}

// ================== HEAT CONFIG ==================

func (s *GormStore) GetStartTime() (string, error) {
	var cfg models.HeatConfig
	if err := s.db.Order("id ASC").First(&cfg).Error; err != nil {
		return "", notFound(err)
	}
	return cfg.StartTime, nil
}

func (s *GormStore) PutStartTime(clock string) error {
	var cfg models.HeatConfig
	err := s.db.Order("id ASC").First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&models.HeatConfig{StartTime: clock}).Error
	}
	if err != nil {
		return err
	}
	cfg.StartTime = clock
	return s.db.Save(&cfg).Error
}

func (s *GormStore) ClearStartTime() error {
	return s.db.Where("1 = 1").Delete(&models.HeatConfig{}).Error
}

// ================== ADMINS ==================

func (s *GormStore) GetAdminByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

func (s *GormStore) CreateAdmin(admin *models.Admin) error {
	return s.db.Create(admin).Error
}

func (s *GormStore) TouchAdminLogin(id uint, at time.Time) error {
	return affected(s.db.Model(&models.Admin{}).Where("id = ?", id).Update("last_login", at))
}
