package db

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"size:254;uniqueIndex;not null"`
	Name         string    `gorm:"size:64"`
	PasswordHash string    `gorm:"size:128;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	Polls        []Poll    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type Poll struct {
	ID            string    `gorm:"primaryKey;size:36"`
	UserID        *string   `gorm:"size:36;index"`
	Question      string    `gorm:"size:280;not null"`
	Description   string    `gorm:"size:1000"`
	RequiresLogin bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
	Options       []PollOption `gorm:"constraint:OnDelete:CASCADE"`
	Votes         []Vote       `gorm:"constraint:OnDelete:CASCADE"`
}

type PollOption struct {
	ID         string    `gorm:"primaryKey;size:36"`
	PollID     string    `gorm:"size:36;index;not null"`
	OptionText string    `gorm:"size:280;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
	Votes      []Vote    `gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE"`
}

// A vote carries exactly one of UserID or AnonID. Two composite unique
// indexes enforce one vote per voter per poll; NULLs are distinct in both
// Postgres and sqlite, so rows of the other identity kind never collide.
type Vote struct {
	ID        string    `gorm:"primaryKey;size:36"`
	PollID    string    `gorm:"size:36;index;not null;uniqueIndex:idx_votes_poll_user;uniqueIndex:idx_votes_poll_anon"`
	OptionID  string    `gorm:"size:36;index;not null"`
	UserID    *string   `gorm:"size:36;uniqueIndex:idx_votes_poll_user"`
	AnonID    *string   `gorm:"size:64;uniqueIndex:idx_votes_poll_anon"`
	CreatedAt time.Time `gorm:"not null"`
}

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	PollID    *string        `gorm:"size:36;index"`
	UserID    *string        `gorm:"size:36;index"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
