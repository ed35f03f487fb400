package services

import (
	"errors"
	"fmt"
	"log"

	"tix/src/models"
	"tix/src/types"

	"gorm.io/gorm"
)

// CartService maps a (user, target) pair to a single cart line. The 1:1
// cart-per-user and one-line-per-target invariants are held by unique
// indexes; a create that loses a race falls back to fetching the row the
// winner made.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// AddOrUpdateItem validates the target, finds or creates the user's cart and
// then creates the line or overwrites its quantity. Quantity is a REPLACE,
// not an increment. A zero quantity means "not supplied" and defaults to 1.
func (s *CartService) AddOrUpdateItem(userId uint, target types.Target, quantity uint) (*models.CartItem, error) {
	if quantity == 0 {
		quantity = 1
	}
	var item models.CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := targetExists(tx, target); err != nil {
			return err
		}
		cart, err := findOrCreateCart(tx, userId)
		if err != nil {
			return err
		}

		var existing models.CartItem
		err = lineScope(tx, cart.ID, target).First(&existing).Error
		if err == nil {
			return overwriteQuantity(tx, &existing, quantity, &item)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		line := models.CartItem{
			CartID:    cart.ID,
			EventID:   target.EventID(),
			SessionID: target.SessionID(),
			Quantity:  quantity,
		}
		if err := tx.Create(&line).Error; err != nil {
			// Lost a create race: the unique index kept the concurrent line,
			// so re-fetch it and update in place.
			log.Printf("Create cart item for cart %d failed, retrying as update: %s\n", cart.ID, err.Error())
			if err := lineScope(tx, cart.ID, target).First(&existing).Error; err != nil {
				return err
			}
			return overwriteQuantity(tx, &existing, quantity, &item)
		}
		item = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetCart returns every line in the user's cart. A user with no cart yet gets
// an empty result, never an error.
func (s *CartService) GetCart(userId uint) ([]models.CartItem, error) {
	var cart models.Cart
	err := s.db.Where(&models.Cart{UserID: userId}).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	items := []models.CartItem{}
	err = s.db.
		Model(&models.CartItem{}).
		Where(&models.CartItem{CartID: cart.ID}).
		Preload("Event").
		Preload("Session").
		Order("id asc").
		Find(&items).
		Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CartByUser resolves the user's cart record, NotFound when none exists yet.
func (s *CartService) CartByUser(userId uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Where(&models.Cart{UserID: userId}).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: cart not found", types.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveItem deletes exactly one line. Lines are only addressable through the
// owning user's cart, so a foreign or unknown id is NotFound either way.
func (s *CartService) RemoveItem(userId uint, itemId uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.Where(&models.Cart{UserID: userId}).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart not found", types.ErrNotFound)
		}
		if err != nil {
			return err
		}
		res := tx.
			Where(&models.CartItem{ID: itemId, CartID: cart.ID}).
			Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: cart item %d not found", types.ErrNotFound, itemId)
		}
		return nil
	})
}

func findOrCreateCart(tx *gorm.DB, userId uint) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where(&models.Cart{UserID: userId}).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cart = models.Cart{UserID: userId}
	if err := tx.Create(&cart).Error; err != nil {
		// A concurrent request created the cart first; the unique index on
		// user_id guarantees there is exactly one row to fall back to.
		log.Printf("Create cart for user %d failed, fetching existing: %s\n", userId, err.Error())
		if err := tx.Where(&models.Cart{UserID: userId}).First(&cart).Error; err != nil {
			return nil, err
		}
	}
	return &cart, nil
}

func lineScope(tx *gorm.DB, cartId uint, target types.Target) *gorm.DB {
	q := tx.Model(&models.CartItem{}).Where("cart_id = ?", cartId)
	if target.Kind == types.TARGET_EVENT {
		return q.Where("event_id = ?", target.ID)
	}
	return q.Where("session_id = ?", target.ID)
}

func overwriteQuantity(tx *gorm.DB, existing *models.CartItem, quantity uint, out *models.CartItem) error {
	if err := tx.
		Model(&models.CartItem{}).
		Where("id = ?", existing.ID).
		Update("quantity", quantity).
		Error; err != nil {
		return err
	}
	existing.Quantity = quantity
	*out = *existing
	return nil
}

func targetExists(tx *gorm.DB, target types.Target) error {
	var count int64
	switch target.Kind {
	case types.TARGET_EVENT:
		if err := tx.Model(&models.Event{}).Where("id = ?", target.ID).Count(&count).Error; err != nil {
			return err
		}
	case types.TARGET_SESSION:
		if err := tx.Model(&models.MovieSession{}).Where("id = ?", target.ID).Count(&count).Error; err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown target kind %q", types.ErrInvalidInput, target.Kind)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s %d does not exist", types.ErrNotFound, target.Kind, target.ID)
	}
	return nil
}
