package database

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"hotelier/internal/config"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := New(filepath.Join(t.TempDir(), "hotelier.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func addRoom(t *testing.T, db *DB, roomType string, price float64) *models.Room {
	t.Helper()
	room := &models.Room{Type: roomType, PricePerNight: price, Available: true}
	require.NoError(t, db.CreateRoom(context.Background(), room))
	return room
}

func addReservation(t *testing.T, db *DB, clientID, roomID int64, start, end string) *models.Reservation {
	t.Helper()
	res := &models.Reservation{
		ClientID:  clientID,
		RoomID:    roomID,
		StartDate: date(t, start),
		EndDate:   date(t, end),
		Status:    models.StatusConfirmed,
	}
	require.NoError(t, db.CreateReservation(context.Background(), res))
	return res
}

func TestRooms(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	t.Run("CreateAndGet", func(t *testing.T) {
		room := addRoom(t, db, "Single", 80)
		assert.NotZero(t, room.ID)

		got, err := db.GetRoom(ctx, room.ID)
		require.NoError(t, err)
		assert.Equal(t, "Single", got.Type)
		assert.Equal(t, 80.0, got.PricePerNight)
		assert.True(t, got.Available)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := db.GetRoom(ctx, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("SetAvailability", func(t *testing.T) {
		room := addRoom(t, db, "Double", 120)
		require.NoError(t, db.SetRoomAvailability(ctx, room.ID, false))

		got, err := db.GetRoom(ctx, room.ID)
		require.NoError(t, err)
		assert.False(t, got.Available)

		assert.ErrorIs(t, db.SetRoomAvailability(ctx, 9999, true), ErrNotFound)
	})

	t.Run("Search", func(t *testing.T) {
		db := newTestDB(t)
		addRoom(t, db, "Single", 80)
		addRoom(t, db, "Double", 120)
		suite := addRoom(t, db, "Suite", 400)

		min := 100.0
		rooms, err := db.SearchRooms(ctx, models.RoomFilter{MinPrice: &min})
		require.NoError(t, err)
		assert.Len(t, rooms, 2)

		rooms, err = db.SearchRooms(ctx, models.RoomFilter{Type: "Suit"})
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, suite.ID, rooms[0].ID)
	})

	t.Run("Counts", func(t *testing.T) {
		db := newTestDB(t)
		addRoom(t, db, "Single", 80)
		addRoom(t, db, "Single", 85)
		addRoom(t, db, "Double", 120)

		total, err := db.CountRooms(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, total)

		byType, err := db.CountRoomsByType(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"Single": 2, "Double": 1}, byType)
	})
}

func TestCreateReservation_OverlapConflict(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	room := addRoom(t, db, "Single", 80)
	addReservation(t, db, 1, room.ID, "2027-03-10", "2027-03-14")

	t.Run("ContainedIntervalRejected", func(t *testing.T) {
		err := db.CreateReservation(ctx, &models.Reservation{
			ClientID:  2,
			RoomID:    room.ID,
			StartDate: date(t, "2027-03-11"),
			EndDate:   date(t, "2027-03-12"),
			Status:    models.StatusConfirmed,
		})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("TouchingIntervalAccepted", func(t *testing.T) {
		err := db.CreateReservation(ctx, &models.Reservation{
			ClientID:  2,
			RoomID:    room.ID,
			StartDate: date(t, "2027-03-14"),
			EndDate:   date(t, "2027-03-16"),
			Status:    models.StatusConfirmed,
		})
		assert.NoError(t, err)
	})

	t.Run("CanceledDoesNotBlock", func(t *testing.T) {
		db := newTestDB(t)
		room := addRoom(t, db, "Single", 80)
		res := addReservation(t, db, 1, room.ID, "2027-03-10", "2027-03-14")
		res.Status = models.StatusCanceled
		require.NoError(t, db.UpdateReservation(ctx, res))

		err := db.CreateReservation(ctx, &models.Reservation{
			ClientID:  2,
			RoomID:    room.ID,
			StartDate: date(t, "2027-03-10"),
			EndDate:   date(t, "2027-03-14"),
			Status:    models.StatusConfirmed,
		})
		assert.NoError(t, err)
	})

	t.Run("OtherRoomUnaffected", func(t *testing.T) {
		other := addRoom(t, db, "Single", 80)
		err := db.CreateReservation(ctx, &models.Reservation{
			ClientID:  2,
			RoomID:    other.ID,
			StartDate: date(t, "2027-03-10"),
			EndDate:   date(t, "2027-03-14"),
			Status:    models.StatusConfirmed,
		})
		assert.NoError(t, err)
	})
}

func TestCreateReservation_ConcurrentSameRoom(t *testing.T) {
	// Hammer the same room with racing inserts for the same interval; the
	// transactional overlap check must let exactly one commit.
	ctx := context.Background()
	db := newTestDB(t)
	room := addRoom(t, db, "Single", 80)

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = db.CreateReservation(ctx, &models.Reservation{
				ClientID:  int64(i + 1),
				RoomID:    room.ID,
				StartDate: date(t, "2027-05-01"),
				EndDate:   date(t, "2027-05-05"),
				Status:    models.StatusConfirmed,
			})
		}(i)
	}
	wg.Wait()

	var committed int
	for _, err := range errs {
		if err == nil {
			committed++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}
	assert.Equal(t, 1, committed)

	confirmed, err := db.GetReservationsByStartRange(ctx, date(t, "2027-05-01"), date(t, "2027-05-01"))
	require.NoError(t, err)
	assert.Len(t, confirmed, 1)
}

func TestReservationQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("GetAndUpdate", func(t *testing.T) {
		db := newTestDB(t)
		room := addRoom(t, db, "Single", 80)
		res := addReservation(t, db, 1, room.ID, "2027-03-10", "2027-03-12")

		got, err := db.GetReservation(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusConfirmed, got.Status)
		assert.False(t, got.IsNotified)

		got.IsNotified = true
		require.NoError(t, db.UpdateReservation(ctx, got))

		again, err := db.GetReservation(ctx, res.ID)
		require.NoError(t, err)
		assert.True(t, again.IsNotified)

		_, err = db.GetReservation(ctx, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, db.UpdateReservation(ctx, &models.Reservation{ID: 9999}), ErrNotFound)
	})

	t.Run("ClientHistoryNewestFirst", func(t *testing.T) {
		db := newTestDB(t)
		room := addRoom(t, db, "Single", 80)
		first := addReservation(t, db, 7, room.ID, "2027-03-01", "2027-03-03")
		second := addReservation(t, db, 7, room.ID, "2027-04-01", "2027-04-03")
		addReservation(t, db, 8, room.ID, "2027-05-01", "2027-05-03")

		history, err := db.GetClientReservations(ctx, 7)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, second.ID, history[0].ID)
		assert.Equal(t, first.ID, history[1].ID)
	})

	t.Run("StartRangeInclusiveConfirmedOnly", func(t *testing.T) {
		db := newTestDB(t)
		room := addRoom(t, db, "Single", 80)
		inside := addReservation(t, db, 1, room.ID, "2027-03-10", "2027-03-12")
		edge := addReservation(t, db, 2, room.ID, "2027-03-12", "2027-03-14")
		addReservation(t, db, 3, room.ID, "2027-03-20", "2027-03-22")
		canceled := addReservation(t, db, 4, room.ID, "2027-03-14", "2027-03-16")
		canceled.Status = models.StatusCanceled
		require.NoError(t, db.UpdateReservation(ctx, canceled))

		got, err := db.GetReservationsByStartRange(ctx, date(t, "2027-03-10"), date(t, "2027-03-12"))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, inside.ID, got[0].ID)
		assert.Equal(t, edge.ID, got[1].ID)
	})

	t.Run("StartRangeComparesDatesNotInstants", func(t *testing.T) {
		// A stay starting mid-afternoon on the window's last day is still
		// inside the window; the bound is the calendar date, not midnight.
		db := newTestDB(t)
		room := addRoom(t, db, "Single", 80)
		res := &models.Reservation{
			ClientID:  1,
			RoomID:    room.ID,
			StartDate: date(t, "2027-03-12").Add(14 * time.Hour),
			EndDate:   date(t, "2027-03-14"),
			Status:    models.StatusConfirmed,
		}
		require.NoError(t, db.CreateReservation(ctx, res))

		got, err := db.GetReservationsByStartRange(ctx, date(t, "2027-03-10"), date(t, "2027-03-12"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, res.ID, got[0].ID)
	})

	t.Run("MarkNotified", func(t *testing.T) {
		db := newTestDB(t)
		room := addRoom(t, db, "Single", 80)
		res := addReservation(t, db, 1, room.ID, "2027-03-10", "2027-03-12")

		require.NoError(t, db.MarkNotified(ctx, res.ID))

		got, err := db.GetReservation(ctx, res.ID)
		require.NoError(t, err)
		assert.True(t, got.IsNotified)
		assert.Equal(t, models.StatusConfirmed, got.Status)

		assert.ErrorIs(t, db.MarkNotified(ctx, 9999), ErrNotFound)
	})

	t.Run("MarkNotifiedNeverRevivesCanceled", func(t *testing.T) {
		// Interleaving: the notify path reads the reservation as confirmed,
		// a cancel commits, then the mark lands. The mark must fail and the
		// reservation must stay canceled and unnotified.
		db := newTestDB(t)
		room := addRoom(t, db, "Single", 80)
		res := addReservation(t, db, 1, room.ID, "2027-03-10", "2027-03-12")

		snapshot, err := db.GetReservation(ctx, res.ID)
		require.NoError(t, err)
		require.Equal(t, models.StatusConfirmed, snapshot.Status)

		res.Status = models.StatusCanceled
		require.NoError(t, db.UpdateReservation(ctx, res))

		assert.ErrorIs(t, db.MarkNotified(ctx, snapshot.ID), ErrNotFound)

		got, err := db.GetReservation(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCanceled, got.Status)
		assert.False(t, got.IsNotified)
	})

	t.Run("HasOverlappingConfirmedExcludesID", func(t *testing.T) {
		db := newTestDB(t)
		room := addRoom(t, db, "Single", 80)
		res := addReservation(t, db, 1, room.ID, "2027-03-10", "2027-03-14")

		overlapping, err := db.HasOverlappingConfirmed(ctx, room.ID, date(t, "2027-03-10"), date(t, "2027-03-14"), 0)
		require.NoError(t, err)
		assert.True(t, overlapping)

		overlapping, err = db.HasOverlappingConfirmed(ctx, room.ID, date(t, "2027-03-10"), date(t, "2027-03-14"), res.ID)
		require.NoError(t, err)
		assert.False(t, overlapping)
	})

	t.Run("OverlappingCountsByTypeIgnoreStatus", func(t *testing.T) {
		db := newTestDB(t)
		single := addRoom(t, db, "Single", 80)
		double := addRoom(t, db, "Double", 120)
		addRoom(t, db, "Suite", 400)

		addReservation(t, db, 1, single.ID, "2027-03-10", "2027-03-14")
		canceled := addReservation(t, db, 2, double.ID, "2027-03-11", "2027-03-13")
		canceled.Status = models.StatusCanceled
		require.NoError(t, db.UpdateReservation(ctx, canceled))

		counts, err := db.GetOverlappingCountsByType(ctx, date(t, "2027-03-12"), date(t, "2027-03-13"))
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"Single": 1, "Double": 1}, counts)
	})
}

func TestInvoices(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	room := addRoom(t, db, "Single", 80)
	res := addReservation(t, db, 1, room.ID, "2027-03-10", "2027-03-13")

	invoice := &models.Invoice{
		Number:            "inv-001",
		ReservationID:     res.ID,
		IssueDate:         date(t, "2027-03-14"),
		NightsStayed:      3,
		RoomPricePerNight: 80,
		TotalAmount:       240,
	}
	require.NoError(t, db.CreateInvoice(ctx, invoice))
	assert.NotZero(t, invoice.ID)

	got, err := db.GetInvoiceByReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "inv-001", got.Number)
	assert.Equal(t, 240.0, got.TotalAmount)

	_, err = db.GetInvoiceByReservation(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	// reservation_id is unique: a second invoice for the same stay fails.
	err = db.CreateInvoice(ctx, &models.Invoice{
		Number:            "inv-002",
		ReservationID:     res.ID,
		IssueDate:         date(t, "2027-03-15"),
		NightsStayed:      3,
		RoomPricePerNight: 80,
		TotalAmount:       240,
	})
	assert.Error(t, err)

	all, err := db.ListInvoices(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestClients(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	client := &models.Client{Name: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: "+100200300"}
	require.NoError(t, db.CreateClient(ctx, client))
	assert.NotZero(t, client.ID)

	got, err := db.GetClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)

	_, err = db.GetClient(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBackupService_Snapshot(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	room := addRoom(t, db, "Single", 80)

	logger := zerolog.New(io.Discard)
	backupDir := t.TempDir()
	backup := NewBackupService(db, config.BackupConfig{Enabled: true, Path: backupDir}, &logger)

	require.NoError(t, backup.Snapshot(ctx))

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// The snapshot is a complete, openable database.
	restored, err := New(filepath.Join(backupDir, entries[0].Name()), &logger)
	require.NoError(t, err)
	defer restored.Close()

	got, err := restored.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "Single", got.Type)
}
