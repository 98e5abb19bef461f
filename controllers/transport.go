package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"

	"github.com/ckoohin/tourify/db"
	"github.com/ckoohin/tourify/models"
	"github.com/ckoohin/tourify/utils"
)

// GetVehicles returns a page of transport vehicles
func GetVehicles(c *fiber.Ctx) error {
	page, limit, offset := utils.Pagination(c)

	var total int64
	if err := db.DB.Model(&models.TransportVehicle{}).Count(&total).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch vehicles")
	}

	var vehicles []models.TransportVehicle
	if err := db.DB.Order("id DESC").Limit(limit).Offset(offset).Find(&vehicles).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch vehicles")
	}

	return utils.SuccessList(c, "Vehicles fetched successfully", vehicles,
		utils.NewPaginationMeta(page, limit, total))
}

// CreateVehicle registers a transport vehicle
func CreateVehicle(c *fiber.Ctx) error {
	type CreateVehicleInput struct {
		Name         string `json:"name"`
		Registration string `json:"registration"`
		Type         string `json:"type"`
		Seats        uint   `json:"seats"`
	}

	input := new(CreateVehicleInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Name == "" || input.Registration == "" || input.Seats == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "Name, registration and a positive seat count are required")
	}

	var existing models.TransportVehicle
	if db.DB.Where("registration = ?", input.Registration).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "Vehicle with this registration already exists")
	}

	vehicle := models.TransportVehicle{
		Name:         input.Name,
		Registration: input.Registration,
		Type:         input.Type,
		Seats:        input.Seats,
	}
	if err := db.DB.Create(&vehicle).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create vehicle")
	}

	return utils.Success(c, fiber.StatusCreated, "Vehicle created successfully", vehicle)
}

// UpdateVehicle applies a partial update to a vehicle
func UpdateVehicle(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Vehicle id must be an integer")
	}

	type UpdateVehicleInput struct {
		Name  *string `json:"name"`
		Type  *string `json:"type"`
		Seats *uint   `json:"seats"`
	}

	input := new(UpdateVehicleInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var vehicle models.TransportVehicle
	if db.DB.First(&vehicle, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Vehicle not found")
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if input.Seats != nil {
		if *input.Seats == 0 {
			return utils.Error(c, fiber.StatusBadRequest, "Seat count must be positive")
		}
		updates["seats"] = *input.Seats
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&vehicle).Updates(updates).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to update vehicle")
		}
	}

	var updated models.TransportVehicle
	db.DB.First(&updated, vehicle.ID)
	return utils.Success(c, fiber.StatusOK, "Vehicle updated successfully", updated)
}

// DeleteVehicle removes a vehicle unless seats are assigned on it
func DeleteVehicle(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Vehicle id must be an integer")
	}

	var vehicle models.TransportVehicle
	if db.DB.First(&vehicle, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Vehicle not found")
	}

	var assigned int64
	if err := db.DB.Model(&models.SeatAssignment{}).Where("vehicle_id = ?", vehicle.ID).Count(&assigned).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to check seat assignments")
	}
	if assigned > 0 {
		return utils.Error(c, fiber.StatusConflict, "Vehicle still has seat assignments and cannot be deleted")
	}

	if err := db.DB.Delete(&vehicle).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete vehicle")
	}

	return utils.Success(c, fiber.StatusOK, "Vehicle deleted successfully", nil)
}

// seatPlanResult is the shared response body for seat assignment operations
type seatPlanResult struct {
	Departure     models.Departure        `json:"departure"`
	AssignedCount int                     `json:"assignedCount,omitempty"`
	RevokedCount  int                     `json:"revokedCount,omitempty"`
	TotalSeats    int64                   `json:"totalSeats"`
	Seats         []models.SeatAssignment `json:"seats"`
}

func seatPlan(departureID uint) ([]models.SeatAssignment, int64, error) {
	var seats []models.SeatAssignment
	err := db.DB.Preload("Guest").
		Where("departure_id = ?", departureID).
		Order("seat ASC").
		Find(&seats).Error
	if err != nil {
		return nil, 0, err
	}
	return seats, int64(len(seats)), nil
}

// GetSeatPlan returns a departure's current seat assignments
func GetSeatPlan(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Departure id must be an integer")
	}

	var departure models.Departure
	if db.DB.First(&departure, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Departure not found")
	}

	seats, total, err := seatPlan(departure.ID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load seat plan")
	}

	return utils.Success(c, fiber.StatusOK, "Seat plan fetched successfully", seatPlanResult{
		Departure:  departure,
		TotalSeats: total,
		Seats:      seats,
	})
}

// AssignSeats bulk-assigns guests to seats on one vehicle, writing only the
// delta: guests already seated on the departure are skipped, occupied seats
// conflict, unknown guests are enumerated back to the caller.
func AssignSeats(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Departure id must be an integer")
	}

	var departure models.Departure
	if db.DB.First(&departure, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Departure not found")
	}

	type seatInput struct {
		GuestID uint   `json:"guestId"`
		Seat    string `json:"seat"`
	}
	type assignSeatsInput struct {
		VehicleID   uint        `json:"vehicleId"`
		Assignments []seatInput `json:"assignments"`
	}

	input := new(assignSeatsInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.VehicleID == 0 || len(input.Assignments) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "vehicleId and a non-empty assignments array are required")
	}
	for _, a := range input.Assignments {
		if a.GuestID == 0 || a.Seat == "" {
			return utils.Error(c, fiber.StatusBadRequest, "Each assignment needs a guestId and a seat")
		}
	}

	// Collapse exact repeats to set semantics; a guest or seat appearing
	// twice with different partners is a contradiction the caller must fix
	seatByGuest := make(map[uint]string, len(input.Assignments))
	guestBySeat := make(map[string]uint, len(input.Assignments))
	assignments := make([]seatInput, 0, len(input.Assignments))
	duplicateGuests := []uint{}
	duplicateSeats := []string{}
	for _, a := range input.Assignments {
		if seat, ok := seatByGuest[a.GuestID]; ok {
			if seat != a.Seat {
				duplicateGuests = append(duplicateGuests, a.GuestID)
			}
			continue
		}
		if _, ok := guestBySeat[a.Seat]; ok {
			duplicateSeats = append(duplicateSeats, a.Seat)
			continue
		}
		seatByGuest[a.GuestID] = a.Seat
		guestBySeat[a.Seat] = a.GuestID
		assignments = append(assignments, a)
	}
	if len(duplicateGuests) > 0 || len(duplicateSeats) > 0 {
		return utils.ErrorWithDetails(c, fiber.StatusConflict, "Assignments conflict within the request",
			fiber.Map{"duplicateGuestIds": duplicateGuests, "duplicateSeats": duplicateSeats})
	}

	var vehicle models.TransportVehicle
	if db.DB.First(&vehicle, input.VehicleID).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Vehicle not found")
	}

	// Every guest must be booked on this departure
	guestIDs := make([]uint, 0, len(assignments))
	for _, a := range assignments {
		guestIDs = append(guestIDs, a.GuestID)
	}
	var found []models.Guest
	if err := db.DB.Where("departure_id = ? AND id IN ?", departure.ID, guestIDs).Find(&found).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to resolve guests")
	}
	foundSet := make(map[uint]bool, len(found))
	for _, g := range found {
		foundSet[g.ID] = true
	}
	notFound := []uint{}
	for _, gid := range guestIDs {
		if !foundSet[gid] {
			notFound = append(notFound, gid)
		}
	}
	if len(notFound) > 0 {
		return utils.ErrorWithDetails(c, fiber.StatusNotFound, "Some guests are not booked on this departure",
			fiber.Map{"notFoundIds": notFound})
	}

	// Requested seats must be free on this vehicle
	seats := make([]string, 0, len(assignments))
	for _, a := range assignments {
		seats = append(seats, a.Seat)
	}
	var occupied []string
	if err := db.DB.Model(&models.SeatAssignment{}).
		Where("departure_id = ? AND vehicle_id = ? AND seat IN ?", departure.ID, vehicle.ID, seats).
		Pluck("seat", &occupied).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to check seat plan")
	}
	if len(occupied) > 0 {
		return utils.ErrorWithDetails(c, fiber.StatusConflict, "Some seats are already occupied",
			fiber.Map{"occupiedSeats": occupied})
	}

	// Delta: skip guests who already hold a seat on this departure
	var seated []uint
	if err := db.DB.Model(&models.SeatAssignment{}).
		Where("departure_id = ? AND guest_id IN ?", departure.ID, guestIDs).
		Pluck("guest_id", &seated).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to check seat plan")
	}
	seatedSet := make(map[uint]bool, len(seated))
	for _, gid := range seated {
		seatedSet[gid] = true
	}

	toInsert := make([]models.SeatAssignment, 0, len(assignments))
	for _, a := range assignments {
		if !seatedSet[a.GuestID] {
			toInsert = append(toInsert, models.SeatAssignment{
				DepartureID: departure.ID,
				VehicleID:   vehicle.ID,
				GuestID:     a.GuestID,
				Seat:        a.Seat,
			})
		}
	}
	if len(toInsert) == 0 {
		return utils.Error(c, fiber.StatusConflict, "All requested guests are already seated on this departure")
	}

	if err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&toInsert).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to assign seats")
	}

	plan, total, err := seatPlan(departure.ID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load seat plan")
	}

	return utils.Success(c, fiber.StatusOK, "Seats assigned successfully", seatPlanResult{
		Departure:     departure,
		AssignedCount: len(toInsert),
		TotalSeats:    total,
		Seats:         plan,
	})
}

// ReleaseSeats bulk-removes seat assignments for the given guests
func ReleaseSeats(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Departure id must be an integer")
	}

	var departure models.Departure
	if db.DB.First(&departure, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Departure not found")
	}

	type releaseSeatsInput struct {
		GuestIDs []uint `json:"guestIds"`
	}
	input := new(releaseSeatsInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if len(input.GuestIDs) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "guestIds must be a non-empty array")
	}

	var matched []uint
	if err := db.DB.Model(&models.SeatAssignment{}).
		Where("departure_id = ? AND guest_id IN ?", departure.ID, input.GuestIDs).
		Pluck("guest_id", &matched).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to check seat plan")
	}
	if len(matched) == 0 {
		return utils.Error(c, fiber.StatusNotFound, "No matching seat assignments to release")
	}

	if err := db.DB.Where("departure_id = ? AND guest_id IN ?", departure.ID, matched).
		Delete(&models.SeatAssignment{}).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to release seats")
	}

	plan, total, err := seatPlan(departure.ID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load seat plan")
	}

	return utils.Success(c, fiber.StatusOK, "Seats released successfully", seatPlanResult{
		Departure:    departure,
		RevokedCount: len(matched),
		TotalSeats:   total,
		Seats:        plan,
	})
}
