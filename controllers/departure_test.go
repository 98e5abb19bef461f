package controllers

import (
	"net/http"
	"testing"

	"github.com/magiconair/properties/assert"

	"github.com/ckoohin/tourify/db"
	"github.com/ckoohin/tourify/models"
)

func TestAddGuest(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		departure, _, _ := seedDeparture(tx, 10)

		resp, env := doRequest(t, "POST", "/departures/"+itoa(departure.ID)+"/guests",
			map[string]string{"name": "Cleo", "email": "cleo@example.com"})

		assert.Equal(t, resp.StatusCode, http.StatusCreated)
		var guest models.Guest
		decodeData(t, env, &guest)
		assert.Equal(t, guest.DepartureID, departure.ID)
	})

	t.Run("Full departure rejects new guests", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		// Capacity 2 with 2 guests already booked by the fixture
		departure, _, _ := seedDeparture(tx, 2)

		resp, _ := doRequest(t, "POST", "/departures/"+itoa(departure.ID)+"/guests",
			map[string]string{"name": "Cleo", "email": "cleo@example.com"})
		assert.Equal(t, resp.StatusCode, http.StatusConflict)
	})

	t.Run("Canceled departure is not bookable", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		departure, _, _ := seedDeparture(tx, 10)
		tx.Model(&departure).Update("status", models.DepartureCanceled)

		resp, _ := doRequest(t, "POST", "/departures/"+itoa(departure.ID)+"/guests",
			map[string]string{"name": "Cleo", "email": "cleo@example.com"})
		assert.Equal(t, resp.StatusCode, http.StatusConflict)
	})
}

func TestUpdateDeparture(t *testing.T) {
	t.Run("Status moves through the lifecycle", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		departure, _, _ := seedDeparture(tx, 10)

		resp, _ := doRequest(t, "PUT", "/departures/"+itoa(departure.ID),
			map[string]string{"status": "guaranteed"})
		assert.Equal(t, resp.StatusCode, http.StatusOK)

		resp, _ = doRequest(t, "PUT", "/departures/"+itoa(departure.ID),
			map[string]string{"status": "completed"})
		assert.Equal(t, resp.StatusCode, http.StatusOK)

		// Completed is terminal
		resp, _ = doRequest(t, "PUT", "/departures/"+itoa(departure.ID),
			map[string]string{"status": "canceled"})
		assert.Equal(t, resp.StatusCode, http.StatusConflict)
	})

	t.Run("Scheduled cannot jump to completed", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		departure, _, _ := seedDeparture(tx, 10)

		resp, _ := doRequest(t, "PUT", "/departures/"+itoa(departure.ID),
			map[string]string{"status": "completed"})
		assert.Equal(t, resp.StatusCode, http.StatusConflict)
	})

	t.Run("Rejected dates leave the status untouched", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		departure, _, _ := seedDeparture(tx, 10)

		// Valid status change combined with inverted dates: the whole
		// request fails and nothing is written
		resp, _ := doRequest(t, "PUT", "/departures/"+itoa(departure.ID),
			map[string]interface{}{
				"status":     "guaranteed",
				"start_date": departure.EndDate,
				"end_date":   departure.StartDate,
			})
		assert.Equal(t, resp.StatusCode, http.StatusBadRequest)

		var unchanged models.Departure
		tx.First(&unchanged, departure.ID)
		assert.Equal(t, unchanged.Status, models.DepartureScheduled)
	})

	t.Run("Capacity cannot drop below booked guests", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		// Fixture books 2 guests
		departure, _, _ := seedDeparture(tx, 10)

		resp, _ := doRequest(t, "PUT", "/departures/"+itoa(departure.ID),
			map[string]interface{}{"capacity": 1})
		assert.Equal(t, resp.StatusCode, http.StatusConflict)

		resp, _ = doRequest(t, "PUT", "/departures/"+itoa(departure.ID),
			map[string]interface{}{"capacity": 2})
		assert.Equal(t, resp.StatusCode, http.StatusOK)
	})
}
