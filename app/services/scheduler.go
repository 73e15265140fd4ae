package services

import (
	"database/sql"
	"log"
	"time"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/database"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
)

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 6:00 AM
			if now.Hour() == 6 && now.Minute() == 0 {
				log.Println("Triggering scheduled tasks [06:00]...")

				if err := SweepOverdueInvoices(db); err != nil {
					log.Printf("Error sweeping overdue invoices: %v", err)
				}
			}
		}
	}()
}

// SweepOverdueInvoices counts unsettled invoices past their due date and
// records the sweep in the audit log. Invoice status is never changed here;
// overdue is a due-date property, not a ledger state.
func SweepOverdueInvoices(db *sql.DB) error {
	var count int
	var outstanding float64
	err := db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(balance), 0)
		 FROM invoices
		 WHERE status != 'paid' AND due_date < NOW() AND deleted_at IS NULL`,
	).Scan(&count, &outstanding)
	if err != nil {
		return err
	}

	log.Printf("Overdue sweep: %d invoices overdue, %.2f outstanding", count, outstanding)

	if count > 0 {
		entry := &models.AuditLog{
			Action:      "invoice.overdue_sweep",
			TargetTable: "invoices",
			TargetID:    "sweep",
			Description: "Daily overdue sweep found unsettled invoices past due date",
		}
		if err := database.InsertAuditLog(db, entry); err != nil {
			log.Printf("Failed to record overdue sweep: %v", err)
		}
	}
	return nil
}
