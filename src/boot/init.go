package boot

import (
	"log"

	"tix/src/db"
	"tix/src/models"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.MovieCategory{},
		&models.EventCategory{},
		&models.Movie{},
		&models.MovieSession{},
		&models.Event{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.Ticket{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}
