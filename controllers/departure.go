package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ckoohin/tourify/db"
	"github.com/ckoohin/tourify/models"
	"github.com/ckoohin/tourify/utils"
)

// GetDepartures returns a page of departures, newest first
func GetDepartures(c *fiber.Ctx) error {
	page, limit, offset := utils.Pagination(c)

	query := db.DB.Model(&models.Departure{})
	if search := c.Query("search"); search != "" {
		q := "%" + strings.ToLower(search) + "%"
		query = query.Where("lower(code) LIKE ?", q)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch departures")
	}

	var departures []models.Departure
	if err := query.Preload("TourVersion.Tour").
		Order("id DESC").Limit(limit).Offset(offset).
		Find(&departures).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch departures")
	}

	return utils.SuccessList(c, "Departures fetched successfully", departures,
		utils.NewPaginationMeta(page, limit, total))
}

// GetDeparture returns a departure with guests and staff
func GetDeparture(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Departure id must be an integer")
	}

	var departure models.Departure
	if db.DB.Preload("TourVersion.Tour").Preload("Guests").Preload("Staff.User").
		First(&departure, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Departure not found")
	}

	return utils.Success(c, fiber.StatusOK, "Departure fetched successfully", departure)
}

// CreateDeparture schedules a departure for a tour version
func CreateDeparture(c *fiber.Ctx) error {
	type CreateDepartureInput struct {
		Code          string    `json:"code"`
		TourVersionID uint      `json:"tour_version_id"`
		StartDate     time.Time `json:"start_date"`
		EndDate       time.Time `json:"end_date"`
		Capacity      uint      `json:"capacity"`
	}

	input := new(CreateDepartureInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Code == "" || input.TourVersionID == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "Code and tour_version_id are required")
	}
	if input.EndDate.Before(input.StartDate) {
		return utils.Error(c, fiber.StatusBadRequest, "end_date must not be before start_date")
	}
	if input.Capacity == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "Capacity must be at least 1")
	}

	var version models.TourVersion
	if db.DB.First(&version, input.TourVersionID).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Tour version not found")
	}

	var existing models.Departure
	if db.DB.Where("code = ?", input.Code).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "Departure with this code already exists")
	}

	departure := models.Departure{
		Code:          input.Code,
		TourVersionID: version.ID,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Capacity:      input.Capacity,
	}
	if err := db.DB.Create(&departure).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create departure")
	}

	return utils.Success(c, fiber.StatusCreated, "Departure created successfully", departure)
}

// UpdateDeparture updates dates, capacity or status. Status moves through
// the one-way lifecycle; capacity cannot drop below the booked guest count.
func UpdateDeparture(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Departure id must be an integer")
	}

	type UpdateDepartureInput struct {
		StartDate *time.Time              `json:"start_date"`
		EndDate   *time.Time              `json:"end_date"`
		Capacity  *uint                   `json:"capacity"`
		Status    *models.DepartureStatus `json:"status"`
	}

	input := new(UpdateDepartureInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var departure models.Departure
	if db.DB.First(&departure, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Departure not found")
	}

	// Validate the full request before anything is written, so a rejected
	// field cannot leave a half-applied update behind
	updates := map[string]interface{}{}
	if input.Status != nil {
		if err := departure.ValidateTransition(*input.Status); err != nil {
			return utils.Error(c, fiber.StatusConflict, err.Error())
		}
		updates["status"] = *input.Status
	}
	start, end := departure.StartDate, departure.EndDate
	if input.StartDate != nil {
		start = *input.StartDate
		updates["start_date"] = start
	}
	if input.EndDate != nil {
		end = *input.EndDate
		updates["end_date"] = end
	}
	if end.Before(start) {
		return utils.Error(c, fiber.StatusBadRequest, "end_date must not be before start_date")
	}
	if input.Capacity != nil {
		var booked int64
		if err := db.DB.Model(&models.Guest{}).Where("departure_id = ?", departure.ID).Count(&booked).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to check booked guests")
		}
		if int64(*input.Capacity) < booked {
			return utils.Error(c, fiber.StatusConflict, "Capacity cannot drop below the booked guest count")
		}
		updates["capacity"] = *input.Capacity
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&departure).Updates(updates).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to update departure")
		}
	}

	var updated models.Departure
	db.DB.First(&updated, departure.ID)
	return utils.Success(c, fiber.StatusOK, "Departure updated successfully", updated)
}

// DeleteDeparture removes a departure unless guests are booked on it
func DeleteDeparture(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Departure id must be an integer")
	}

	var departure models.Departure
	if db.DB.First(&departure, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Departure not found")
	}

	var booked int64
	if err := db.DB.Model(&models.Guest{}).Where("departure_id = ?", departure.ID).Count(&booked).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to check booked guests")
	}
	if booked > 0 {
		return utils.Error(c, fiber.StatusConflict, "Departure still has booked guests and cannot be deleted")
	}

	if err := db.DB.Delete(&departure).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete departure")
	}

	return utils.Success(c, fiber.StatusOK, "Departure deleted successfully", nil)
}

// GetDepartureGuests lists the guests booked on a departure
func GetDepartureGuests(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Departure id must be an integer")
	}

	var departure models.Departure
	if db.DB.First(&departure, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Departure not found")
	}

	var guests []models.Guest
	if err := db.DB.Where("departure_id = ?", departure.ID).Order("name ASC").Find(&guests).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch guests")
	}

	return utils.Success(c, fiber.StatusOK, "Guests fetched successfully", guests)
}

// AddGuest books a guest onto a departure, respecting capacity and status
func AddGuest(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Departure id must be an integer")
	}

	var departure models.Departure
	if db.DB.First(&departure, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Departure not found")
	}

	if !departure.Bookable() {
		return utils.Error(c, fiber.StatusConflict, "Departure is not open for bookings")
	}

	var booked int64
	if err := db.DB.Model(&models.Guest{}).Where("departure_id = ?", departure.ID).Count(&booked).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to check booked guests")
	}
	if booked >= int64(departure.Capacity) {
		return utils.Error(c, fiber.StatusConflict, "Departure is fully booked")
	}

	type AddGuestInput struct {
		Name         string `json:"name"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
		PassportNo   string `json:"passport_no"`
		DietaryNotes string `json:"dietary_notes"`
	}

	input := new(AddGuestInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Name == "" || input.Email == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Name and email are required")
	}

	guest := models.Guest{
		DepartureID:  departure.ID,
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PassportNo:   input.PassportNo,
		DietaryNotes: input.DietaryNotes,
	}
	if err := db.DB.Create(&guest).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to add guest")
	}

	return utils.Success(c, fiber.StatusCreated, "Guest added successfully", guest)
}

// UpdateGuest edits a guest's details
func UpdateGuest(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("guestId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Guest id must be an integer")
	}

	type UpdateGuestInput struct {
		Name         *string `json:"name"`
		Email        *string `json:"email"`
		Phone        *string `json:"phone"`
		PassportNo   *string `json:"passport_no"`
		DietaryNotes *string `json:"dietary_notes"`
	}

	input := new(UpdateGuestInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var guest models.Guest
	if db.DB.First(&guest, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Guest not found")
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.PassportNo != nil {
		updates["passport_no"] = *input.PassportNo
	}
	if input.DietaryNotes != nil {
		updates["dietary_notes"] = *input.DietaryNotes
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&guest).Updates(updates).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to update guest")
		}
	}

	var updated models.Guest
	db.DB.First(&updated, guest.ID)
	return utils.Success(c, fiber.StatusOK, "Guest updated successfully", updated)
}

// RemoveGuest takes a guest off a departure and frees any seat they held
func RemoveGuest(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("guestId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Guest id must be an integer")
	}

	var guest models.Guest
	if db.DB.First(&guest, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Guest not found")
	}

	db.DB.Where("guest_id = ?", guest.ID).Delete(&models.SeatAssignment{})
	if err := db.DB.Delete(&guest).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to remove guest")
	}

	return utils.Success(c, fiber.StatusOK, "Guest removed successfully", nil)
}

// GetDepartureStaff lists staff assignments on a departure
func GetDepartureStaff(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Departure id must be an integer")
	}

	var departure models.Departure
	if db.DB.First(&departure, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Departure not found")
	}

	var staff []models.StaffAssignment
	if err := db.DB.Preload("User").Where("departure_id = ?", departure.ID).Find(&staff).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch staff assignments")
	}

	for i := range staff {
		staff[i].User.Password = ""
	}
	return utils.Success(c, fiber.StatusOK, "Staff assignments fetched successfully", staff)
}

// AssignStaff puts a staff member on a departure in one duty
func AssignStaff(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Departure id must be an integer")
	}

	var departure models.Departure
	if db.DB.First(&departure, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Departure not found")
	}

	type AssignStaffInput struct {
		UserID uint             `json:"user_id"`
		Duty   models.StaffDuty `json:"duty"`
	}

	input := new(AssignStaffInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	switch input.Duty {
	case models.DutyLeader, models.DutyGuide, models.DutyDriver:
	default:
		return utils.Error(c, fiber.StatusBadRequest, "Duty must be one of leader, guide, driver")
	}

	var user models.User
	if db.DB.First(&user, input.UserID).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	var existing models.StaffAssignment
	if db.DB.Where("departure_id = ? AND user_id = ?", departure.ID, user.ID).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "User is already assigned to this departure")
	}

	assignment := models.StaffAssignment{
		DepartureID: departure.ID,
		UserID:      user.ID,
		Duty:        input.Duty,
	}
	if err := db.DB.Create(&assignment).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to assign staff")
	}

	return utils.Success(c, fiber.StatusCreated, "Staff assigned successfully", assignment)
}

// UnassignStaff removes a staff assignment from a departure
func UnassignStaff(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Departure id must be an integer")
	}
	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "User id must be an integer")
	}

	var assignment models.StaffAssignment
	if db.DB.Where("departure_id = ? AND user_id = ?", id, userID).First(&assignment).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Staff assignment not found")
	}

	if err := db.DB.Delete(&assignment).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to unassign staff")
	}

	return utils.Success(c, fiber.StatusOK, "Staff unassigned successfully", nil)
}
