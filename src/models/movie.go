package models

import "tix/src/types"

type MovieCategory struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Movie struct {
	ID             uint    `gorm:"primarykey" json:"id"`
	Title          string  `gorm:"index" json:"title"`
	Description    string  `json:"description,omitempty"`
	Duration       uint    `json:"duration,omitempty"`
	CategoryID     *uint   `json:"-"`
	AgeRestriction string  `json:"age_restriction,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
	VideoURL       string  `json:"video_url,omitempty"`

	Category *MovieCategory `gorm:"foreignKey:category_id" json:"category,omitempty"`
	Sessions []MovieSession `json:"sessions,omitempty"`

	types.Timestamps
}
