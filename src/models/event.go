package models

import "tix/src/types"

type EventCategory struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Event is a live event sold as a whole, without per-session scheduling.
// AvailableTickets is informational: nothing here ever decrements it.
type Event struct {
	ID               uint    `gorm:"primarykey" json:"id"`
	Name             string  `gorm:"index" json:"name"`
	Description      string  `json:"description,omitempty"`
	Date             string  `gorm:"size:10;index" json:"date"`
	Time             string  `gorm:"size:5" json:"time,omitempty"`
	Price            float32 `json:"price"`
	AgeRestriction   string  `json:"age_restriction,omitempty"`
	AvailableTickets uint    `json:"available_tickets"`
	CategoryID       *uint   `json:"-"`
	ImageURL         string  `json:"image_url,omitempty"`
	VideoURL         string  `json:"video_url,omitempty"`

	Category *EventCategory `gorm:"foreignKey:category_id" json:"category,omitempty"`

	types.Timestamps
}
