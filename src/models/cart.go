package models

import "time"

// Cart is 1:1 with a user. The unique index is what holds that invariant
// under concurrent creates: the loser of the race re-fetches the winner's row.
type Cart struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `gorm:"uniqueIndex" json:"user_id"`

	Items []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
}

// CartItem rows are hard-deleted. Exactly one of EventID/SessionID is set,
// and the two partial unique indexes keep one line per (cart, target).
type CartItem struct {
	ID        uint  `gorm:"primarykey" json:"id"`
	CartID    uint  `gorm:"index;uniqueIndex:idx_cart_items_event;uniqueIndex:idx_cart_items_session" json:"cart_id"`
	EventID   *uint `gorm:"uniqueIndex:idx_cart_items_event" json:"event_id,omitempty"`
	SessionID *uint `gorm:"uniqueIndex:idx_cart_items_session" json:"session_id,omitempty"`
	Quantity  uint  `json:"quantity"`

	Event   *Event        `gorm:"foreignKey:event_id" json:"event,omitempty"`
	Session *MovieSession `gorm:"foreignKey:session_id" json:"session,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
}
