package db

import (
	"fmt"
	"log"

	"github.com/ckoohin/tourify/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
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
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
