package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type OrderStatus string

const (
	ORDER_PENDING   OrderStatus = "pending"
	ORDER_COMPLETED OrderStatus = "completed"
	ORDER_CANCELED  OrderStatus = "canceled"
)

type AddOrUpdateCartItemRequestBody struct {
	EventID   *uint `json:"event_id,omitempty"`
	SessionID *uint `json:"session_id,omitempty"`
	Quantity  *uint `json:"quantity,omitempty" binding:"omitempty,min=1"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type DayQueryParams struct {
	Date string `form:"date" binding:"required,calendardate"`
	Time string `form:"time" binding:"omitempty,clocktime"`
}

type NameQueryParams struct {
	Title string `form:"title" binding:"required"`
}
