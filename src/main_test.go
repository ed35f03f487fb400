package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"testing"

	"tix/src/cache"
	"tix/src/db"
	"tix/src/middlewares"
	"tix/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
	DB *gorm.DB
}

func (s *TestSuite) SetupSuite() {
	registerValidators()

	dbfile := path.Join(s.T().TempDir(), "api-test.db")
	d, err := gorm.Open(sqlite.Open(dbfile), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening test database", err)
	}
	db.NewDB(d)
	s.DB = d

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
		log.Fatalf("error migration: %s", err.Error())
	}

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
}

func (s *TestSuite) SetupTest() {
	// fresh cache per test so hit/miss expectations stay deterministic
	cache.NewStore(cache.NewMemoryStore())
}

func (s *TestSuite) newRouter() http.Handler {
	router := setupRouter()
	publicRoutes(router)
	authorizedRoutes(router)
	return router
}

func (s *TestSuite) bearer(userId uint) string {
	token, err := middlewares.GenerateJWT("someone@example.com", userId)
	if err != nil {
		log.Fatalf("Error generating JWT token: %s\n", err.Error())
	}
	return fmt.Sprintf("Bearer %s", token)
}

func (s *TestSuite) request(router http.Handler, method, url, auth string, body map[string]any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = strings.NewReader(string(raw))
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (s *TestSuite) TestPingRoute() {
	router := s.newRouter()

	w := s.request(router, "GET", "/", "", nil)
	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestGetFilmByName() {
	router := s.newRouter()

	w := s.request(router, "GET", "/getfilmbyname?title=test%20movie", "", nil)
	assert.Equal(s.T(), 200, w.Code)
	body := w.Body.String()
	assert.Equal(s.T(), "Test Movie", gjson.Get(body, "data.movie.title").String())
	assert.Equal(s.T(), int64(2), gjson.Get(body, "data.sessions.#").Int())
	assert.False(s.T(), gjson.Get(body, "message").Exists())

	// second lookup lands on the cache and says so
	w = s.request(router, "GET", "/getfilmbyname?title=Test%20Movie", "", nil)
	assert.Equal(s.T(), 200, w.Code)
	body = w.Body.String()
	assert.Equal(s.T(), "Data retrieved from cache.", gjson.Get(body, "message").String())
	assert.Equal(s.T(), "Test Movie", gjson.Get(body, "data.movie.title").String())
}

func (s *TestSuite) TestGetFilmByNameNotFound() {
	router := s.newRouter()

	w := s.request(router, "GET", "/getfilmbyname?title=nope", "", nil)
	assert.Equal(s.T(), 404, w.Code)

	w = s.request(router, "GET", "/getfilmbyname", "", nil)
	assert.Equal(s.T(), 400, w.Code)
}

func (s *TestSuite) TestGetFilmsForDay() {
	router := s.newRouter()

	w := s.request(router, "GET", "/getfilmsforday?date=2024-10-22&time=14:00", "", nil)
	assert.Equal(s.T(), 200, w.Code)
	body := w.Body.String()
	assert.Equal(s.T(), int64(1), gjson.Get(body, "data.#").Int())
	assert.Equal(s.T(), int64(1), gjson.Get(body, "data.0.sessions.#").Int())
	assert.Equal(s.T(), "14:30", gjson.Get(body, "data.0.sessions.0.time").String())

	w = s.request(router, "GET", "/getfilmsforday?date=2024-10-22", "", nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), int64(2), gjson.Get(w.Body.String(), "data.0.sessions.#").Int())

	w = s.request(router, "GET", "/getfilmsforday?date=2031-01-01", "", nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "No sessions found for this date and time.", gjson.Get(w.Body.String(), "message").String())

	w = s.request(router, "GET", "/getfilmsforday?date=22-10-2024", "", nil)
	assert.Equal(s.T(), 400, w.Code)

	w = s.request(router, "GET", "/getfilmsforday?date=2024-10-22&time=2pm", "", nil)
	assert.Equal(s.T(), 400, w.Code)
}

func (s *TestSuite) TestGetEventRoutes() {
	router := s.newRouter()

	w := s.request(router, "GET", "/geteventbyname?title=Test%20Event", "", nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "Test Event", gjson.Get(w.Body.String(), "data.event.name").String())

	w = s.request(router, "GET", "/geteventsforday?date=2024-10-22", "", nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), int64(1), gjson.Get(w.Body.String(), "data.#").Int())

	w = s.request(router, "GET", "/geteventsforday?date=2030-05-05", "", nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "No events found for this date.", gjson.Get(w.Body.String(), "message").String())
}

func (s *TestSuite) TestCartRequiresAuth() {
	router := s.newRouter()

	w := s.request(router, "GET", "/cart/", "", nil)
	assert.Equal(s.T(), 401, w.Code)

	w = s.request(router, "POST", "/cart/add_or_update_cartitem", "", map[string]any{"session_id": 1})
	assert.Equal(s.T(), 401, w.Code)

	// a bare scheme with no token is still a 401, not a server error
	w = s.request(router, "GET", "/cart/", "Bearer", nil)
	assert.Equal(s.T(), 401, w.Code)

	w = s.request(router, "GET", "/cart/", "Bearer ", nil)
	assert.Equal(s.T(), 401, w.Code)
}

func (s *TestSuite) TestCartFlow() {
	router := s.newRouter()
	auth := s.bearer(10)

	w := s.request(router, "GET", "/cart/", auth, nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "Cart is empty.", gjson.Get(w.Body.String(), "message").String())

	var session models.MovieSession
	assert.NoError(s.T(), s.DB.Where(&models.MovieSession{Time: "14:30"}).First(&session).Error)

	w = s.request(router, "POST", "/cart/add_or_update_cartitem", auth, map[string]any{"session_id": session.ID, "quantity": 2})
	assert.Equal(s.T(), 201, w.Code)
	assert.Equal(s.T(), int64(2), gjson.Get(w.Body.String(), "data.quantity").Int())

	// same target again replaces the quantity instead of adding a line
	w = s.request(router, "POST", "/cart/add_or_update_cartitem", auth, map[string]any{"session_id": session.ID, "quantity": 5})
	assert.Equal(s.T(), 201, w.Code)

	w = s.request(router, "GET", "/cart/", auth, nil)
	assert.Equal(s.T(), 200, w.Code)
	body := w.Body.String()
	assert.Equal(s.T(), int64(1), gjson.Get(body, "data.#").Int())
	assert.Equal(s.T(), int64(5), gjson.Get(body, "data.0.quantity").Int())
	itemId := gjson.Get(body, "data.0.id").Int()

	w = s.request(router, "DELETE", fmt.Sprintf("/cart/item_remove/%d", itemId), auth, nil)
	assert.Equal(s.T(), 200, w.Code)

	w = s.request(router, "GET", "/cart/", auth, nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "Cart is empty.", gjson.Get(w.Body.String(), "message").String())

	w = s.request(router, "DELETE", fmt.Sprintf("/cart/item_remove/%d", itemId), auth, nil)
	assert.Equal(s.T(), 404, w.Code)
}

func (s *TestSuite) TestCartValidation() {
	router := s.newRouter()
	auth := s.bearer(11)

	// neither target
	w := s.request(router, "POST", "/cart/add_or_update_cartitem", auth, map[string]any{"quantity": 1})
	assert.Equal(s.T(), 400, w.Code)

	// both targets
	w = s.request(router, "POST", "/cart/add_or_update_cartitem", auth, map[string]any{"event_id": 1, "session_id": 1})
	assert.Equal(s.T(), 400, w.Code)

	// unknown target
	w = s.request(router, "POST", "/cart/add_or_update_cartitem", auth, map[string]any{"session_id": 99999})
	assert.Equal(s.T(), 404, w.Code)

	// quantity defaults to 1 when omitted
	var event models.Event
	assert.NoError(s.T(), s.DB.Where(&models.Event{Name: "Test Event"}).First(&event).Error)
	w = s.request(router, "POST", "/cart/add_or_update_cartitem", auth, map[string]any{"event_id": event.ID})
	assert.Equal(s.T(), 201, w.Code)
	assert.Equal(s.T(), int64(1), gjson.Get(w.Body.String(), "data.quantity").Int())
}

func (s *TestSuite) TestCheckoutFlow() {
	router := s.newRouter()
	auth := s.bearer(20)

	// checkout without a cart
	w := s.request(router, "POST", "/orders/checkout", auth, nil)
	assert.Equal(s.T(), 404, w.Code)

	var session models.MovieSession
	assert.NoError(s.T(), s.DB.Where(&models.MovieSession{Time: "13:00"}).First(&session).Error)
	var event models.Event
	assert.NoError(s.T(), s.DB.Where(&models.Event{Name: "Test Event"}).First(&event).Error)

	w = s.request(router, "POST", "/cart/add_or_update_cartitem", auth, map[string]any{"session_id": session.ID, "quantity": 2})
	assert.Equal(s.T(), 201, w.Code)
	w = s.request(router, "POST", "/cart/add_or_update_cartitem", auth, map[string]any{"event_id": event.ID})
	assert.Equal(s.T(), 201, w.Code)

	w = s.request(router, "POST", "/orders/checkout", auth, nil)
	assert.Equal(s.T(), 201, w.Code)
	body := w.Body.String()
	assert.Equal(s.T(), "pending", gjson.Get(body, "data.order.status").String())
	assert.Equal(s.T(), int64(2), gjson.Get(body, "data.tickets.#").Int())
	first := gjson.Get(body, "data.tickets.0.ticket_number").String()
	second := gjson.Get(body, "data.tickets.1.ticket_number").String()
	assert.True(s.T(), strings.HasPrefix(first, "TICKET-"))
	assert.NotEqual(s.T(), first, second)
	ticketId := gjson.Get(body, "data.tickets.0.id").Int()

	// a cart converts into at most one order
	w = s.request(router, "POST", "/orders/checkout", auth, nil)
	assert.Equal(s.T(), 409, w.Code)

	w = s.request(router, "GET", "/orders", auth, nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), int64(1), gjson.Get(w.Body.String(), "count").Int())

	w = s.request(router, "GET", fmt.Sprintf("/tickets/%d/qr", ticketId), auth, nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Contains(s.T(), w.Header().Get("Content-Disposition"), "eticket.jpeg")

	// tickets are not addressable across users
	w = s.request(router, "GET", fmt.Sprintf("/tickets/%d/qr", ticketId), s.bearer(21), nil)
	assert.Equal(s.T(), 404, w.Code)
}

func TestSuiteRun(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
