// models/result.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Result links one team to one workout. Points are derived from the
// finishing order of every result recorded for the same workout.
type Result struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	TeamID      string    `json:"team_id" gorm:"not null;size:36;uniqueIndex:idx_results_team_workout"`
	WorkoutID   string    `json:"workout_id" gorm:"not null;size:36;uniqueIndex:idx_results_team_workout;index"`
	TimeSeconds int       `json:"time_seconds" gorm:"not null"`
	Points      int       `json:"points" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Result) TableName() string {
	return "results"
}

func (r *Result) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
