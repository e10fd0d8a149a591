package utils

import (
	"log"

	"mcan/database"
	"mcan/services"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// InitializeOverdueScheduler sets up the daily dues standing sweep
func InitializeOverdueScheduler() {
	log.Println("[OVERDUE-SCHEDULER] Initializing overdue scheduler...")

	c := cron.New()

	// Run daily at 6 AM WAT
	c.AddFunc("0 6 * * *", func() {
		log.Println("[OVERDUE-SCHEDULER] Running daily overdue check...")
		RunOverdueSweep()
	})

	c.Start()
	log.Println("[OVERDUE-SCHEDULER] Overdue scheduler started - runs daily at 6 AM WAT")
}

// RunOverdueSweep marks CURRENT members OVERDUE once their next payment
// date has elapsed. The conditional update inside the service keeps the
// sweep from racing a concurrent completed settlement and from ever
// touching EXEMPT or non-ACTIVE members.
func RunOverdueSweep() {
	membershipService := services.NewMembershipService(database.Database.Db)

	flipped, err := membershipService.SweepOverdue(now.BeginningOfDay())
	if err != nil {
		log.Printf("[OVERDUE-SCHEDULER] Sweep failed: %v", err)
		return
	}

	log.Printf("[OVERDUE-SCHEDULER] Marked %d members OVERDUE", flipped)
}
