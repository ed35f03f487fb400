package models

import (
	"time"

	"tix/src/types"
)

// Order consumes a cart: the unique index on CartID means a cart converts
// into at most one order. Status never moves past "pending" here.
type Order struct {
	ID     uint              `gorm:"primarykey" json:"id"`
	UserID uint              `gorm:"index" json:"user_id"`
	CartID uint              `gorm:"uniqueIndex" json:"cart_id"`
	Status types.OrderStatus `gorm:"default:'pending'" json:"status"`

	Cart    *Cart    `json:"cart,omitempty"`
	Tickets []Ticket `json:"tickets,omitempty"`

	OrderDate time.Time `gorm:"autoCreateTime:nano" json:"order_date"`
}
