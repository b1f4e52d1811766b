// models/workout.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workout is one timed event (WOD). Number defines presentation and
// scheduling order; hidden workouts stay out of the public views.
type Workout struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" gorm:"not null;size:100"`
	Number      int       `json:"workout_number" gorm:"column:workout_number;not null;index"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	IsVisible   bool      `json:"is_visible" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Workout) TableName() string {
	return "workouts"
}

func (w *Workout) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
