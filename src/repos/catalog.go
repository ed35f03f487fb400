package repos

import (
	"errors"

	"tix/src/models"

	"gorm.io/gorm"
)

// CatalogRepo is the read-only face of the catalog. Absence is a normal
// outcome here: single lookups return (nil, nil) when nothing matches.
type CatalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) MovieByTitle(title string) (*models.Movie, error) {
	var movie models.Movie
	err := r.db.
		Model(&models.Movie{}).
		Where("LOWER(title) = LOWER(?)", title).
		First(&movie).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *CatalogRepo) MoviesByIDs(ids []uint) ([]models.Movie, error) {
	var movies []models.Movie
	if len(ids) == 0 {
		return movies, nil
	}
	err := r.db.
		Model(&models.Movie{}).
		Where("id IN ?", ids).
		Order("id asc").
		Find(&movies).
		Error
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *CatalogRepo) SessionsForMovie(movieId uint) ([]models.MovieSession, error) {
	var sessions []models.MovieSession
	err := r.db.
		Model(&models.MovieSession{}).
		Where(&models.MovieSession{MovieID: movieId}).
		Order("date asc, time asc").
		Find(&sessions).
		Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// SessionsForDay lists sessions on a calendar date. When afterTime is set
// only sessions strictly later in the day are included.
func (r *CatalogRepo) SessionsForDay(date string, afterTime string) ([]models.MovieSession, error) {
	var sessions []models.MovieSession
	q := r.db.
		Model(&models.MovieSession{}).
		Where(&models.MovieSession{Date: date})
	if afterTime != "" {
		q = q.Where("time > ?", afterTime)
	}
	err := q.
		Order("movie_id asc, time asc").
		Find(&sessions).
		Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *CatalogRepo) EventByName(name string) (*models.Event, error) {
	var event models.Event
	err := r.db.
		Model(&models.Event{}).
		Where("LOWER(name) = LOWER(?)", name).
		First(&event).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *CatalogRepo) EventsForDay(date string, afterTime string) ([]models.Event, error) {
	var events []models.Event
	q := r.db.
		Model(&models.Event{}).
		Where(&models.Event{Date: date})
	if afterTime != "" {
		q = q.Where("time > ?", afterTime)
	}
	err := q.
		Order("id asc").
		Find(&events).
		Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
