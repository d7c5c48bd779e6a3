package models

import "time"

type Pet struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OwnerID string `gorm:"size:64;index;not null" json:"owner_id"`

	Name   string  `gorm:"size:100;not null" json:"name"`
	Breed  string  `gorm:"size:100" json:"breed"`
	Age    float64 `json:"age"`
	Weight float64 `json:"weight"`
	Gender string  `gorm:"size:20" json:"gender"`
	Color  string  `gorm:"size:50" json:"color"`
	Photo  string  `gorm:"size:16" json:"photo"`
	Notes  string  `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
