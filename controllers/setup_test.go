package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ckoohin/tourify/models"
)

var app *fiber.App

// setupTestApp wires the handlers under test without auth middleware; the
// authorization middleware is consulted before handlers run and is not what
// these tests exercise.
func setupTestApp() *fiber.App {
	if app != nil {
		return app
	}
	app = fiber.New()

	app.Get("/permissions", GetPermissions)
	app.Get("/permissions/:id", GetPermission)
	app.Post("/permissions", CreatePermission)
	app.Put("/permissions/:id", UpdatePermission)
	app.Delete("/permissions/:id", DeletePermission)

	app.Get("/roles", GetRoles)
	app.Get("/roles/:id", GetRole)
	app.Post("/roles", CreateRole)
	app.Put("/roles/:id", UpdateRole)
	app.Delete("/roles/:id", DeleteRole)

	app.Get("/roles/:roleId/permissions", GetRolePermissions)
	app.Post("/roles/:roleId/permissions", AssignPermissionsToRole)
	app.Delete("/roles/:roleId/permissions", RevokePermissionsFromRole)

	app.Post("/tours", CreateTour)
	app.Delete("/tours/:id", DeleteTour)
	app.Post("/tours/:id/versions", CreateTourVersion)
	app.Put("/versions/:id", UpdateTourVersion)
	app.Delete("/versions/:id", DeleteTourVersion)
	app.Get("/versions/:id/itinerary", GetItinerary)
	app.Post("/versions/:id/itinerary", CreateItineraryItem)

	app.Get("/departures/:id/seats", GetSeatPlan)
	app.Post("/departures/:id/seats", AssignSeats)
	app.Delete("/departures/:id/seats", ReleaseSeats)
	app.Post("/departures/:id/guests", AddGuest)
	app.Put("/departures/:id", UpdateDeparture)

	return app
}

// setupTestDB initializes a fresh in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatal("Failed to connect to test database")
	}
	err = testDB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.Tour{},
		&models.TourVersion{},
		&models.ItineraryItem{},
		&models.Departure{},
		&models.Guest{},
		&models.StaffAssignment{},
		&models.TransportVehicle{},
		&models.SeatAssignment{},
	)
	if err != nil {
		t.Fatal("Failed to migrate test database: ", err)
	}
	return testDB
}

// envelope mirrors the uniform response shape for decoding in assertions
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
	Meta    json.RawMessage `json:"meta"`
}

func doRequest(t *testing.T, method, path string, body interface{}) (*http.Response, envelope) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal("Failed to marshal request body: ", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := setupTestApp().Test(req, -1)
	if err != nil {
		t.Fatal("Request failed: ", err)
	}

	respBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	var env envelope
	json.Unmarshal(respBody, &env)
	return resp, env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatal("Failed to decode response data: ", err)
	}
}

func jsonUnmarshal(raw json.RawMessage, out interface{}) error {
	return json.Unmarshal(raw, out)
}

func itoa(id uint) string {
	return strconv.Itoa(int(id))
}
