package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meetingroom/internal/database"
	"meetingroom/internal/middleware"
	"meetingroom/internal/modules/booking"
	"meetingroom/internal/modules/participant"
	"meetingroom/internal/modules/room"
	"meetingroom/internal/notify"
	"meetingroom/internal/pkg/logger"
	"meetingroom/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type E2ETestSuite struct {
	router *gin.Engine
	hub    *notify.Hub
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	log := logger.Discard()
	participantRepo := repository.NewParticipantRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	hub := notify.NewHub(log)
	bookingService := booking.NewService(
		bookingRepo, participantRepo, roomRepo,
		nil, nil, notify.NewFanout(hub), log,
	)

	r := newRouter(routerDeps{
		log:          log,
		participants: participant.NewService(participantRepo),
		rooms:        room.NewService(roomRepo),
		bookings:     bookingService,
		hub:          hub,
	})
	return &E2ETestSuite{router: r, hub: hub}
}

func (s *E2ETestSuite) makeRequest(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, TestResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp TestResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func (s *E2ETestSuite) createID(t *testing.T, path, key string, body interface{}) int64 {
	t.Helper()
	w, resp := s.makeRequest(t, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	obj, ok := resp.Data[key].(map[string]interface{})
	require.True(t, ok, "missing %q in response", key)
	return int64(obj["id"].(float64))
}

func TestE2E_Health(t *testing.T) {
	s := setupTestSuite(t)

	w, _ := s.makeRequest(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

func TestE2E_BookingFlow(t *testing.T) {
	s := setupTestSuite(t)

	aliceID := s.createID(t, "/api/v1/participants", "participant", map[string]interface{}{"name": "Alice"})
	bobID := s.createID(t, "/api/v1/participants", "participant", map[string]interface{}{"name": "Bob"})
	roomID := s.createID(t, "/api/v1/rooms", "room", map[string]interface{}{
		"room_name": "Everest", "floor": 3, "capacity": 10,
	})

	w, resp := s.makeRequest(t, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"participant_id": aliceID,
		"room_id":        roomID,
		"start_time":     "2030-01-01T09:00:00Z",
		"end_time":       "2030-01-01T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, resp.Success)

	w, resp = s.makeRequest(t, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"participant_id": bobID,
		"room_id":        roomID,
		"start_time":     "2030-01-01T09:00:00Z",
		"end_time":       "2030-01-01T10:00:00Z",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ROOM_CONFLICT", resp.Error.Code)

	w, _ = s.makeRequest(t, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"participant_id": bobID,
		"room_id":        roomID,
		"start_time":     "2030-01-01T10:00:00Z",
		"end_time":       "2030-01-01T11:00:00Z",
	})
	assert.Equal(t, http.StatusCreated, w.Code, "back-to-back booking is allowed")

	w, resp = s.makeRequest(t, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"participant_id": bobID,
		"room_id":        roomID,
		"start_time":     "2020-01-01T09:00:00Z",
		"end_time":       "2020-01-01T10:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PAST_BOOKING", resp.Error.Code)

	w, resp = s.makeRequest(t, http.MethodGet,
		fmt.Sprintf("/api/v1/bookings?room_id=%d&date=2030-01-01", roomID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	bookings, ok := resp.Data["bookings"].([]interface{})
	require.True(t, ok)
	require.Len(t, bookings, 2)
	first := bookings[0].(map[string]interface{})
	assert.Equal(t, "2030-01-01T09:00:00Z", first["start_time"])
	assert.Equal(t, "Alice", first["participant"].(map[string]interface{})["name"])

	w, resp = s.makeRequest(t, http.MethodGet, "/api/v1/rooms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data["rooms"], 1)
}

func TestE2E_LiveFeedReceivesCreatedBooking(t *testing.T) {
	s := setupTestSuite(t)

	pID := s.createID(t, "/api/v1/participants", "participant", map[string]interface{}{"name": "Alice"})
	roomID := s.createID(t, "/api/v1/rooms", "room", map[string]interface{}{
		"room_name": "Everest", "floor": 3, "capacity": 10,
	})

	srv := httptest.NewServer(s.router)
	defer srv.Close()

	url := fmt.Sprintf("ws%s/ws/bookings?room_id=%d", strings.TrimPrefix(srv.URL, "http"), roomID)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return s.hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	w, _ := s.makeRequest(t, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"participant_id": pID,
		"room_id":        roomID,
		"start_time":     "2030-02-01T09:00:00Z",
		"end_time":       "2030-02-01T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event notify.BookingEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, notify.EventBookingCreated, event.Type)
	assert.Equal(t, roomID, event.RoomID)
	assert.Equal(t, pID, event.ParticipantID)
}
