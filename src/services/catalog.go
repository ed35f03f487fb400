package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"tix/src/cache"
	"tix/src/config"
	"tix/src/models"
	"tix/src/repos"
	"tix/src/types"

	"gorm.io/gorm"
)

// CatalogService answers the browse lookups through a read-through cache.
// A hit returns the stored payload marked as cache-sourced; a miss computes
// the payload from the catalog and populates the cache before returning it.
type CatalogService struct {
	repo  *repos.CatalogRepo
	store cache.Store
}

func NewCatalogService(db *gorm.DB, store cache.Store) *CatalogService {
	return &CatalogService{
		repo:  repos.NewCatalogRepo(db),
		store: store,
	}
}

type FilmDetails struct {
	Movie    models.Movie          `json:"movie"`
	Sessions []models.MovieSession `json:"sessions"`
}

type EventDetails struct {
	Event models.Event `json:"event"`
}

func (s *CatalogService) GetFilmByName(ctx context.Context, title string) (*FilmDetails, bool, error) {
	key := cache.Key("film_by_name", title)
	var details FilmDetails
	if ok := s.readCached(ctx, key, &details); ok {
		return &details, true, nil
	}

	movie, err := s.repo.MovieByTitle(title)
	if err != nil {
		return nil, false, err
	}
	if movie == nil {
		return nil, false, fmt.Errorf("%w: movie not found", types.ErrNotFound)
	}
	sessions, err := s.repo.SessionsForMovie(movie.ID)
	if err != nil {
		return nil, false, err
	}

	details = FilmDetails{Movie: *movie, Sessions: sessions}
	s.writeCached(ctx, key, &details)
	return &details, false, nil
}

// GetFilmsForDay groups the day's sessions under their parent movie, one
// entry per movie. An empty day is a valid result, not an error.
func (s *CatalogService) GetFilmsForDay(ctx context.Context, date string, afterTime string) ([]FilmDetails, bool, error) {
	if err := validateDay(date, afterTime); err != nil {
		return nil, false, err
	}

	key := cache.Key("films_for_day", date, afterTime)
	var entries []FilmDetails
	if ok := s.readCached(ctx, key, &entries); ok {
		return entries, true, nil
	}

	sessions, err := s.repo.SessionsForDay(date, afterTime)
	if err != nil {
		return nil, false, err
	}

	var movieIds []uint
	byMovie := make(map[uint][]models.MovieSession)
	for _, session := range sessions {
		if _, seen := byMovie[session.MovieID]; !seen {
			movieIds = append(movieIds, session.MovieID)
		}
		byMovie[session.MovieID] = append(byMovie[session.MovieID], session)
	}
	movies, err := s.repo.MoviesByIDs(movieIds)
	if err != nil {
		return nil, false, err
	}

	entries = make([]FilmDetails, 0, len(movies))
	for _, movie := range movies {
		entries = append(entries, FilmDetails{Movie: movie, Sessions: byMovie[movie.ID]})
	}
	s.writeCached(ctx, key, &entries)
	return entries, false, nil
}

func (s *CatalogService) GetEventByName(ctx context.Context, name string) (*EventDetails, bool, error) {
	key := cache.Key("event_by_name", name)
	var details EventDetails
	if ok := s.readCached(ctx, key, &details); ok {
		return &details, true, nil
	}

	event, err := s.repo.EventByName(name)
	if err != nil {
		return nil, false, err
	}
	if event == nil {
		return nil, false, fmt.Errorf("%w: event not found", types.ErrNotFound)
	}

	details = EventDetails{Event: *event}
	s.writeCached(ctx, key, &details)
	return &details, false, nil
}

func (s *CatalogService) GetEventsForDay(ctx context.Context, date string, afterTime string) ([]models.Event, bool, error) {
	if err := validateDay(date, afterTime); err != nil {
		return nil, false, err
	}

	key := cache.Key("events_for_day", date, afterTime)
	var events []models.Event
	if ok := s.readCached(ctx, key, &events); ok {
		return events, true, nil
	}

	events, err := s.repo.EventsForDay(date, afterTime)
	if err != nil {
		return nil, false, err
	}
	s.writeCached(ctx, key, &events)
	return events, false, nil
}

func (s *CatalogService) readCached(ctx context.Context, key string, out any) bool {
	val, err := s.store.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		log.Printf("Error deserializing cached payload for %s: %s\n", key, err.Error())
		return false
	}
	return true
}

func (s *CatalogService) writeCached(ctx context.Context, key string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error serializing payload for %s: %s\n", key, err.Error())
		return
	}
	// The cache is a performance layer only: a failed write is logged and the
	// fresh payload is still returned.
	if err := s.store.Set(ctx, key, string(raw), config.CACHE_TTL); err != nil {
		log.Printf("Could not populate cache for %s: %s\n", key, err.Error())
	}
}

func validateDay(date string, afterTime string) error {
	if _, err := time.Parse(config.DATE_PARSE_FORMAT, date); err != nil {
		return fmt.Errorf("%w: invalid date format. Please use YYYY-MM-DD", types.ErrInvalidInput)
	}
	if afterTime != "" {
		if _, err := time.Parse(config.TIME_PARSE_FORMAT, afterTime); err != nil {
			return fmt.Errorf("%w: invalid time format. Please use HH:MM", types.ErrInvalidInput)
		}
	}
	return nil
}
