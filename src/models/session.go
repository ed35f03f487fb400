package models

import "tix/src/types"

// MovieSession is one scheduled screening of a movie. Date and time-of-day
// are stored as their wire formats (YYYY-MM-DD, HH:MM) so the strictly-after
// filter is a plain string comparison on zero-padded values.
type MovieSession struct {
	ID               uint    `gorm:"primarykey" json:"id"`
	MovieID          uint    `gorm:"index" json:"movie_id"`
	Date             string  `gorm:"size:10;index" json:"date"`
	Time             string  `gorm:"size:5" json:"time"`
	Price            float32 `json:"price"`
	AvailableTickets uint    `json:"available_tickets"`

	Movie *Movie `json:"-"`

	types.Timestamps
}
