package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/magiconair/properties/assert"
	"gorm.io/gorm"

	"github.com/ckoohin/tourify/db"
	"github.com/ckoohin/tourify/models"
)

type seatPlanResponse struct {
	AssignedCount int                     `json:"assignedCount"`
	RevokedCount  int                     `json:"revokedCount"`
	TotalSeats    int64                   `json:"totalSeats"`
	Seats         []models.SeatAssignment `json:"seats"`
}

func seedDeparture(tx *gorm.DB, capacity uint) (models.Departure, models.TransportVehicle, []models.Guest) {
	tour := models.Tour{Code: "PAT-14", Name: "Patagonia Explorer", Slug: "patagonia-explorer", Status: models.TourPublished}
	tx.Create(&tour)
	version := models.TourVersion{TourID: tour.ID, Name: "Summer 2026", Currency: "USD", BasePrice: 3200}
	tx.Create(&version)
	departure := models.Departure{
		Code:          "PAT-14-260115",
		TourVersionID: version.ID,
		StartDate:     time.Now().AddDate(0, 1, 0),
		EndDate:       time.Now().AddDate(0, 1, 14),
		Capacity:      capacity,
		Status:        models.DepartureScheduled,
	}
	tx.Create(&departure)

	vehicle := models.TransportVehicle{Name: "Coach 1", Registration: "AB-123-CD", Type: "coach", Seats: 40}
	tx.Create(&vehicle)

	guests := []models.Guest{
		{DepartureID: departure.ID, Name: "Ada", Email: "ada@example.com"},
		{DepartureID: departure.ID, Name: "Ben", Email: "ben@example.com"},
	}
	for i := range guests {
		tx.Create(&guests[i])
	}
	return departure, vehicle, guests
}

func TestAssignSeats(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		departure, vehicle, guests := seedDeparture(tx, 10)

		resp, env := doRequest(t, "POST", "/departures/"+itoa(departure.ID)+"/seats",
			map[string]interface{}{
				"vehicleId": vehicle.ID,
				"assignments": []map[string]interface{}{
					{"guestId": guests[0].ID, "seat": "1A"},
					{"guestId": guests[1].ID, "seat": "1B"},
				},
			})

		assert.Equal(t, resp.StatusCode, http.StatusOK)
		var result seatPlanResponse
		decodeData(t, env, &result)
		assert.Equal(t, result.AssignedCount, 2)
		assert.Equal(t, result.TotalSeats, int64(2))
	})

	t.Run("Guest not booked on departure", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		departure, vehicle, _ := seedDeparture(tx, 10)

		resp, env := doRequest(t, "POST", "/departures/"+itoa(departure.ID)+"/seats",
			map[string]interface{}{
				"vehicleId": vehicle.ID,
				"assignments": []map[string]interface{}{
					{"guestId": 9999, "seat": "1A"},
				},
			})

		assert.Equal(t, resp.StatusCode, http.StatusNotFound)
		var details struct {
			NotFoundIds []uint `json:"notFoundIds"`
		}
		if err := jsonUnmarshal(env.Errors, &details); err != nil {
			t.Fatal("Failed to decode error details: ", err)
		}
		assert.Equal(t, details.NotFoundIds, []uint{9999})
	})

	t.Run("Occupied seat conflicts", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		departure, vehicle, guests := seedDeparture(tx, 10)
		tx.Create(&models.SeatAssignment{
			DepartureID: departure.ID, VehicleID: vehicle.ID, GuestID: guests[0].ID, Seat: "1A",
		})

		resp, env := doRequest(t, "POST", "/departures/"+itoa(departure.ID)+"/seats",
			map[string]interface{}{
				"vehicleId": vehicle.ID,
				"assignments": []map[string]interface{}{
					{"guestId": guests[1].ID, "seat": "1A"},
				},
			})

		assert.Equal(t, resp.StatusCode, http.StatusConflict)
		var details struct {
			OccupiedSeats []string `json:"occupiedSeats"`
		}
		if err := jsonUnmarshal(env.Errors, &details); err != nil {
			t.Fatal("Failed to decode error details: ", err)
		}
		assert.Equal(t, details.OccupiedSeats, []string{"1A"})
	})

	t.Run("All guests already seated is a conflict", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		departure, vehicle, guests := seedDeparture(tx, 10)
		tx.Create(&models.SeatAssignment{
			DepartureID: departure.ID, VehicleID: vehicle.ID, GuestID: guests[0].ID, Seat: "1A",
		})

		resp, _ := doRequest(t, "POST", "/departures/"+itoa(departure.ID)+"/seats",
			map[string]interface{}{
				"vehicleId": vehicle.ID,
				"assignments": []map[string]interface{}{
					{"guestId": guests[0].ID, "seat": "2C"},
				},
			})

		assert.Equal(t, resp.StatusCode, http.StatusConflict)
	})

	t.Run("Same seat twice in one request is a conflict", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		departure, vehicle, guests := seedDeparture(tx, 10)

		resp, env := doRequest(t, "POST", "/departures/"+itoa(departure.ID)+"/seats",
			map[string]interface{}{
				"vehicleId": vehicle.ID,
				"assignments": []map[string]interface{}{
					{"guestId": guests[0].ID, "seat": "1A"},
					{"guestId": guests[1].ID, "seat": "1A"},
				},
			})

		assert.Equal(t, resp.StatusCode, http.StatusConflict)
		var details struct {
			DuplicateSeats []string `json:"duplicateSeats"`
		}
		if err := jsonUnmarshal(env.Errors, &details); err != nil {
			t.Fatal("Failed to decode error details: ", err)
		}
		assert.Equal(t, details.DuplicateSeats, []string{"1A"})

		// Nothing was written
		var rows int64
		tx.Model(&models.SeatAssignment{}).Where("departure_id = ?", departure.ID).Count(&rows)
		assert.Equal(t, rows, int64(0))
	})

	t.Run("Same guest on two seats in one request is a conflict", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		departure, vehicle, guests := seedDeparture(tx, 10)

		resp, env := doRequest(t, "POST", "/departures/"+itoa(departure.ID)+"/seats",
			map[string]interface{}{
				"vehicleId": vehicle.ID,
				"assignments": []map[string]interface{}{
					{"guestId": guests[0].ID, "seat": "1A"},
					{"guestId": guests[0].ID, "seat": "1B"},
				},
			})

		assert.Equal(t, resp.StatusCode, http.StatusConflict)
		var details struct {
			DuplicateGuestIds []uint `json:"duplicateGuestIds"`
		}
		if err := jsonUnmarshal(env.Errors, &details); err != nil {
			t.Fatal("Failed to decode error details: ", err)
		}
		assert.Equal(t, details.DuplicateGuestIds, []uint{guests[0].ID})
	})

	t.Run("Exact repeated assignment is treated as a set", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		departure, vehicle, guests := seedDeparture(tx, 10)

		resp, env := doRequest(t, "POST", "/departures/"+itoa(departure.ID)+"/seats",
			map[string]interface{}{
				"vehicleId": vehicle.ID,
				"assignments": []map[string]interface{}{
					{"guestId": guests[0].ID, "seat": "1A"},
					{"guestId": guests[0].ID, "seat": "1A"},
				},
			})

		assert.Equal(t, resp.StatusCode, http.StatusOK)
		var result seatPlanResponse
		decodeData(t, env, &result)
		assert.Equal(t, result.AssignedCount, 1)
		assert.Equal(t, result.TotalSeats, int64(1))
	})
}

func TestReleaseSeats(t *testing.T) {
	t.Run("Releases only matched guests", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		departure, vehicle, guests := seedDeparture(tx, 10)
		tx.Create(&models.SeatAssignment{
			DepartureID: departure.ID, VehicleID: vehicle.ID, GuestID: guests[0].ID, Seat: "1A",
		})

		// guests[1] holds no seat: success, releasing only guests[0]
		resp, env := doRequest(t, "DELETE", "/departures/"+itoa(departure.ID)+"/seats",
			map[string]interface{}{"guestIds": []uint{guests[0].ID, guests[1].ID}})

		assert.Equal(t, resp.StatusCode, http.StatusOK)
		var result seatPlanResponse
		decodeData(t, env, &result)
		assert.Equal(t, result.RevokedCount, 1)
		assert.Equal(t, result.TotalSeats, int64(0))
	})

	t.Run("Nothing matched is not found", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		departure, _, guests := seedDeparture(tx, 10)

		resp, _ := doRequest(t, "DELETE", "/departures/"+itoa(departure.ID)+"/seats",
			map[string]interface{}{"guestIds": []uint{guests[0].ID}})
		assert.Equal(t, resp.StatusCode, http.StatusNotFound)
	})
}
