package services

import (
	"errors"
	"fmt"

	"tix/src/models"
	"tix/src/types"
	"tix/src/utils"

	"gorm.io/gorm"
)

// OrderService converts a cart into an order and mints tickets. It never
// inspects cart lines, never clears them and never touches availability
// counts; ticket issuance is a separate explicit step per line, driven by
// the caller.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrder creates exactly one pending order referencing the cart. The
// unique index on cart_id means a cart converts at most once; a second
// attempt is a conflict the caller sees.
func (s *OrderService) CreateOrder(userId uint, cartId uint) (*models.Order, error) {
	var count int64
	if err := s.db.Model(&models.Order{}).Where("cart_id = ?", cartId).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: cart %d has already been checked out", types.ErrConflict, cartId)
	}
	order := models.Order{
		UserID: userId,
		CartID: cartId,
		Status: types.ORDER_PENDING,
	}
	if err := s.db.Create(&order).Error; err != nil {
		// The pre-check can lose to a concurrent checkout; the unique index
		// still rejects the second row.
		if err := s.db.Model(&models.Order{}).Where("cart_id = ?", cartId).Count(&count).Error; err == nil && count > 0 {
			return nil, fmt.Errorf("%w: cart %d has already been checked out", types.ErrConflict, cartId)
		}
		return nil, err
	}
	return &order, nil
}

// CreateTicket mints one ticket for the order against the given target and
// stamps the issue time at creation.
func (s *OrderService) CreateTicket(order *models.Order, target types.Target) (*models.Ticket, error) {
	ticket := models.Ticket{
		OrderID:      order.ID,
		EventID:      target.EventID(),
		SessionID:    target.SessionID(),
		TicketNumber: utils.GenerateTicketNumber(),
	}
	if err := s.db.Create(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *OrderService) OrdersByUser(userId uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.
		Model(&models.Order{}).
		Where(&models.Order{UserID: userId}).
		Preload("Tickets").
		Order("id desc").
		Find(&orders).
		Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// TicketForUser resolves a ticket through the owning user's orders, so
// tickets are never addressable across users.
func (s *OrderService) TicketForUser(userId uint, ticketId uint) (*models.Ticket, error) {
	var ticket models.Ticket
	err := s.db.
		Model(&models.Ticket{}).
		Joins("JOIN orders ON orders.id = tickets.order_id").
		Where("tickets.id = ? AND orders.user_id = ?", ticketId, userId).
		First(&ticket).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: ticket %d not found", types.ErrNotFound, ticketId)
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}
