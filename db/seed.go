package db

import (
	"fmt"
	"log"
	"os"

	"github.com/ckoohin/tourify/models"
	"github.com/ckoohin/tourify/utils"
	"golang.org/x/crypto/bcrypt"
)

// Seed creates the baseline permission catalog, the admin and ops-agent
// roles, and the initial admin user. Safe to run repeatedly: existing rows
// are left alone.
func Seed() {
	seedPermissions()
	seedRoles()
	seedAdminUser()
	fmt.Println("✅ Seed data applied successfully!")
}

var permissionCatalog = []models.Permission{
	// Tour management
	{Name: "tours.create", Description: "Create tours"},
	{Name: "tours.read", Description: "View tours"},
	{Name: "tours.update", Description: "Update tour details"},
	{Name: "tours.delete", Description: "Delete tours"},

	// Versions, pricing and itineraries
	{Name: "versions.create", Description: "Create tour versions"},
	{Name: "versions.read", Description: "View tour versions and pricing"},
	{Name: "versions.update", Description: "Update tour versions and pricing"},
	{Name: "versions.delete", Description: "Delete tour versions"},
	{Name: "itineraries.create", Description: "Add itinerary days"},
	{Name: "itineraries.read", Description: "View itineraries"},
	{Name: "itineraries.update", Description: "Update itinerary days"},
	{Name: "itineraries.delete", Description: "Remove itinerary days"},

	// Departures and guests
	{Name: "departures.create", Description: "Schedule departures"},
	{Name: "departures.read", Description: "View departures"},
	{Name: "departures.update", Description: "Update departures"},
	{Name: "departures.delete", Description: "Delete departures"},
	{Name: "guests.create", Description: "Add guests to departures"},
	{Name: "guests.read", Description: "View guest lists"},
	{Name: "guests.update", Description: "Update guest details"},
	{Name: "guests.delete", Description: "Remove guests"},

	// Staff and transport
	{Name: "staff.assign", Description: "Assign staff to departures"},
	{Name: "staff.read", Description: "View staff assignments"},
	{Name: "transport.create", Description: "Create vehicles"},
	{Name: "transport.read", Description: "View vehicles and seat plans"},
	{Name: "transport.update", Description: "Update vehicles"},
	{Name: "transport.delete", Description: "Delete vehicles"},
	{Name: "transport.assign-seats", Description: "Assign guests to seats"},

	// RBAC administration
	{Name: "roles.create", Description: "Create roles"},
	{Name: "roles.read", Description: "View roles"},
	{Name: "roles.update", Description: "Update roles"},
	{Name: "roles.delete", Description: "Delete roles"},
	{Name: "roles.assign-permissions", Description: "Assign permissions to roles"},
	{Name: "permissions.create", Description: "Create permissions"},
	{Name: "permissions.read", Description: "View permissions"},
	{Name: "permissions.update", Description: "Update permissions"},
	{Name: "permissions.delete", Description: "Delete permissions"},

	// Users
	{Name: "users.read", Description: "View staff users"},
	{Name: "users.update", Description: "Update staff users"},
}

func seedPermissions() {
	for _, p := range permissionCatalog {
		p.Slug = utils.Slugify(p.Name)
		var existing models.Permission
		if DB.Where("name = ?", p.Name).First(&existing).RowsAffected == 0 {
			if err := DB.Create(&p).Error; err != nil {
				log.Printf("Failed to seed permission %s: %v", p.Name, err)
			}
		}
	}
}

func seedRoles() {
	roles := []models.Role{
		{Name: "admin", Description: "Administrator with full access"},
		{Name: "ops-agent", Description: "Operations agent managing departures and guests"},
	}
	for _, r := range roles {
		r.Slug = utils.Slugify(r.Name)
		var existing models.Role
		if DB.Where("name = ?", r.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&r)
		}
	}

	// Admin holds everything
	var adminRole models.Role
	if DB.Where("name = ?", "admin").First(&adminRole).RowsAffected > 0 {
		var allPermissions []models.Permission
		DB.Find(&allPermissions)

		DB.Model(&adminRole).Association("Permissions").Clear()
		DB.Model(&adminRole).Association("Permissions").Append(allPermissions)
	}

	// Ops agents get the read set plus departure/guest writes
	var opsRole models.Role
	if DB.Where("name = ?", "ops-agent").First(&opsRole).RowsAffected > 0 {
		var opsPermissions []models.Permission
		DB.Where("name LIKE ?", "%.read").
			Or("name IN (?)", []string{
				"departures.create", "departures.update",
				"guests.create", "guests.update", "guests.delete",
				"transport.assign-seats",
			}).
			Find(&opsPermissions)

		DB.Model(&opsRole).Association("Permissions").Clear()
		DB.Model(&opsRole).Association("Permissions").Append(opsPermissions)
	}
}

func seedAdminUser() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin user seed")
		return
	}

	var existing models.User
	if DB.Where("email = ?", email).First(&existing).RowsAffected > 0 {
		return
	}

	var adminRole models.Role
	if DB.Where("name = ?", "admin").First(&adminRole).RowsAffected == 0 {
		log.Println("Admin role missing, skipping admin user seed")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		RoleID:   adminRole.ID,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin user: %v", err)
	}
}
