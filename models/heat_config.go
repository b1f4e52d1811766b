// models/heat_config.go
package models

import "time"

// HeatConfig is the single-row record holding the competition start time
// as a "HH:MM" clock value.
type HeatConfig struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StartTime string    `json:"start_time" gorm:"not null;size:5"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (HeatConfig) TableName() string {
	return "heat_config"
}
