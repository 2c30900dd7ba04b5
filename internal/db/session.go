package db

import "time"

type Session struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    *string   `gorm:"size:36;index"`
	Flash     string    `gorm:"size:280"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
