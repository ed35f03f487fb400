package services

import (
	"log"
	"path"
	"testing"

	"tix/src/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbfile := path.Join(t.TempDir(), "test.db")
	d, err := gorm.Open(sqlite.Open(dbfile), &gorm.Config{})
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening test database", err)
	}
	err = d.AutoMigrate(
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
		t.Fatalf("error migration: %s", err.Error())
	}
	return d
}

func seedCatalog(t *testing.T, d *gorm.DB) (models.Movie, []models.MovieSession, models.Event) {
	t.Helper()
	movie := models.Movie{Title: "Test Movie", Description: "A movie for tests", Duration: 120}
	if err := d.Create(&movie).Error; err != nil {
		log.Fatalf("Could not create movie due to error: %s\n", err.Error())
	}
	sessions := []models.MovieSession{
		{MovieID: movie.ID, Date: "2024-10-22", Time: "13:00", Price: 10, AvailableTickets: 50},
		{MovieID: movie.ID, Date: "2024-10-22", Time: "14:30", Price: 12, AvailableTickets: 50},
	}
	if err := d.Create(&sessions).Error; err != nil {
		log.Fatalf("Could not create sessions due to error: %s\n", err.Error())
	}
	event := models.Event{Name: "Test Event", Date: "2024-10-22", Time: "19:00", Price: 35, AvailableTickets: 200}
	if err := d.Create(&event).Error; err != nil {
		log.Fatalf("Could not create event due to error: %s\n", err.Error())
	}
	return movie, sessions, event
}
