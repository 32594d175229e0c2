package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/visitdesk/booking-engine/db"
	"github.com/visitdesk/booking-engine/models"
	"github.com/visitdesk/booking-engine/scheduler"
	"github.com/visitdesk/booking-engine/utils"
)

// StartCronJobs initializes and starts the cron scheduler for appointment reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to check for appointments in the next hour
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// sendAppointmentReminders emails visitors whose confirmed appointment
// starts roughly one hour from now. Each appointment is reminded once.
// The query spans today and tomorrow so the one-hour window still works
// for appointments shortly after midnight.
func sendAppointmentReminders() {
	now := time.Now()
	dates := []string{
		now.Format("2006-01-02"),
		now.AddDate(0, 0, 1).Format("2006-01-02"),
	}

	var appointments []models.Appointment
	err := db.DB.
		Where("appointment_date IN ? AND status = ? AND reminder_sent = ?",
			dates, models.StatusConfirmed, false).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		start, err := scheduler.ParseClock(appointment.StartTime)
		if err != nil {
			log.Printf("Appointment %d has malformed start time %q", appointment.ID, appointment.StartTime)
			continue
		}
		if !reminderDue(appointment.AppointmentDate, start, now) {
			continue
		}

		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		if err := db.DB.Model(&appointment).Update("reminder_sent", true).Error; err != nil {
			log.Printf("Failed to mark reminder sent for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.VisitorEmail)
	}
}

// reminderDue reports whether an appointment on the given date starting at
// startMinutes past midnight begins 55 to 65 minutes from now. Comparing
// full timestamps keeps the window correct across midnight.
func reminderDue(date time.Time, startMinutes int, now time.Time) bool {
	start := time.Date(date.Year(), date.Month(), date.Day(),
		startMinutes/60, startMinutes%60, 0, 0, now.Location())
	until := start.Sub(now)
	return until >= 55*time.Minute && until <= 65*time.Minute
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := "Reminder: Upcoming Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
			<li><strong>Reference:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>The Visits Team</p>
	`, appointment.VisitorName,
		appointment.AppointmentDate.Format("2006-01-02"),
		appointment.StartTime, appointment.EndTime,
		appointment.Reference)

	return utils.SendEmail(appointment.VisitorEmail, subject, body)
}
