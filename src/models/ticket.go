package models

import "time"

// Ticket is minted once per cart line at checkout and never mutated.
// Same either/or target pair as CartItem.
type Ticket struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	OrderID      uint   `gorm:"index" json:"order_id"`
	EventID      *uint  `json:"event_id,omitempty"`
	SessionID    *uint  `json:"session_id,omitempty"`
	TicketNumber string `gorm:"uniqueIndex;size:64" json:"ticket_number"`

	Event   *Event        `gorm:"foreignKey:event_id" json:"event,omitempty"`
	Session *MovieSession `gorm:"foreignKey:session_id" json:"session,omitempty"`

	IssueDate time.Time `gorm:"autoCreateTime:nano" json:"issue_date"`
}
