// models/team.go
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Team is a competing team of up to three athletes. Heat and Lane are
// written by the heat scheduler and cleared by a reset.
type Team struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"not null;size:100"`
	Member1   string    `json:"member1,omitempty" gorm:"size:100"`
	Member2   string    `json:"member2,omitempty" gorm:"size:100"`
	Member3   string    `json:"member3,omitempty" gorm:"size:100"`
	AvatarURL string    `json:"avatar_url,omitempty" gorm:"size:500"`
	Heat      *int      `json:"heat" gorm:"index"`
	Lane      *string   `json:"lane" gorm:"size:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Members returns the non-empty member names in order
func (t *Team) Members() []string {
	members := make([]string, 0, 3)
	for _, m := range []string{t.Member1, t.Member2, t.Member3} {
		if m = strings.TrimSpace(m); m != "" {
			members = append(members, m)
		}
	}
	return members
}

// HeatNumber returns the assigned heat, or 0 when the team has none
func (t *Team) HeatNumber() int {
	if t.Heat == nil || *t.Heat < 1 {
		return 0
	}
	return *t.Heat
}

// LaneLabel returns the assigned lane, or "" when the team has none
func (t *Team) LaneLabel() string {
	if t.Lane == nil {
		return ""
	}
	return *t.Lane
}
