package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ckoohin/tourify/db"
	"github.com/ckoohin/tourify/models"
	"github.com/ckoohin/tourify/utils"
)

// StartCronJobs initializes and starts the scheduler for departure reminders
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Run every morning at 08:00 to mail guests departing in one week
	_, err := c.AddFunc("0 8 * * *", sendDepartureReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for departure reminders")
}

// sendDepartureReminders finds departures starting in exactly 7 days and
// mails every guest booked on them
func sendDepartureReminders() {
	dayStart := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	var departures []models.Departure
	err := db.DB.Preload("Guests").Preload("TourVersion.Tour").
		Where("status IN (?) AND start_date >= ? AND start_date < ?",
			[]models.DepartureStatus{models.DepartureScheduled, models.DepartureGuaranteed},
			dayStart, dayEnd).
		Find(&departures).Error
	if err != nil {
		log.Printf("Error fetching departures for reminders: %v", err)
		return
	}

	fmt.Printf("Found %d departures for reminders\n", len(departures))

	for _, departure := range departures {
		for _, guest := range departure.Guests {
			if guest.Email == "" {
				continue
			}
			if err := sendReminderEmail(&departure, &guest); err != nil {
				log.Printf("Failed to send reminder for departure %s to %s: %v",
					departure.Code, guest.Email, err)
				continue
			}
			log.Printf("Sent reminder for departure %s to %s", departure.Code, guest.Email)
		}
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(departure *models.Departure, guest *models.Guest) error {
	subject := fmt.Sprintf("Reminder: Your tour departs in one week - %s", departure.TourVersion.Tour.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your tour departs in one week. We are looking forward to having you on board.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Tour:</strong> %s</li>
			<li><strong>Departure code:</strong> %s</li>
			<li><strong>Start date:</strong> %s</li>
			<li><strong>End date:</strong> %s</li>
		</ul>
		<p>Please check your travel documents. If anything has changed, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your Tourify Team</p>
	`, guest.Name, departure.TourVersion.Tour.Name, departure.Code,
		departure.StartDate.Format("2006-01-02"),
		departure.EndDate.Format("2006-01-02"))

	return utils.SendEmail(guest.Email, subject, body)
}
