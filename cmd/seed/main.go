package main

import (
	"context"
	"errors"
	"log"
	"time"

	"meetingroom/internal/config"
	"meetingroom/internal/database"
	"meetingroom/internal/modules/booking"
	"meetingroom/internal/modules/participant"
	"meetingroom/internal/modules/room"
	"meetingroom/internal/pkg/logger"
	"meetingroom/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	defer database.Close(db)

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (bookings first, they reference the others)
	log.Println("Cleaning old data...")
	for _, table := range []string{"bookings", "rooms", "participants"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("clean %s: %v", table, err)
		}
	}

	ctx := context.Background()
	participantRepo := repository.NewParticipantRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	participants := participant.NewService(participantRepo)
	rooms := room.NewService(roomRepo)
	bookings := booking.NewService(bookingRepo, participantRepo, roomRepo, nil, nil, nil, logger.Discard())

	// ================== PARTICIPANTS ==================
	log.Println("Creating participants...")
	var participantIDs []int64
	for _, name := range []string{"Asel", "Bekzat", "Dina", "Yerlan"} {
		p, err := participants.CreateParticipant(ctx, name)
		if err != nil {
			log.Fatalf("participant %q: %v", name, err)
		}
		participantIDs = append(participantIDs, p.ID)
	}

	// ================== ROOMS ==================
	log.Println("Creating rooms...")
	var roomIDs []int64
	for _, rm := range []struct {
		name     string
		floor    int
		capacity int
	}{
		{"Khan Tengri", 0, 4},
		{"Charyn", 1, 8},
		{"Kolsay", 2, 12},
	} {
		r, err := rooms.CreateRoom(ctx, rm.name, rm.floor, rm.capacity)
		if err != nil {
			log.Fatalf("room %q: %v", rm.name, err)
		}
		roomIDs = append(roomIDs, r.ID)
	}

	// ================== BOOKINGS ==================
	// Tomorrow's working day, one-hour slots. The last slot deliberately
	// collides with the first to show a rejected request.
	log.Println("Creating bookings...")
	y, m, d := time.Now().UTC().AddDate(0, 0, 1).Date()
	day := time.Date(y, m, d, 9, 0, 0, 0, time.UTC)

	slots := []struct {
		participant int
		room        int
		offset      time.Duration
		length      time.Duration
	}{
		{0, 0, 0, time.Hour},
		{1, 0, time.Hour, 90 * time.Minute},
		{2, 1, 0, 2 * time.Hour},
		{3, 2, 3 * time.Hour, time.Hour},
		{1, 0, 30 * time.Minute, time.Hour},
	}

	created, rejected := 0, 0
	for _, s := range slots {
		start := day.Add(s.offset)
		_, err := bookings.CreateBooking(ctx, booking.CreateBookingInput{
			ParticipantID: participantIDs[s.participant],
			RoomID:        roomIDs[s.room],
			Start:         start,
			End:           start.Add(s.length),
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, booking.ErrRoomConflict):
			rejected++
		default:
			log.Fatal("booking:", err)
		}
	}

	log.Printf("Seed done: %d participants, %d rooms, %d bookings (%d rejected as conflicts)",
		len(participantIDs), len(roomIDs), created, rejected)
}
