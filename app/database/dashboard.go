package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
)

// GetDashboardStats assembles the admin dashboard figures. Revenue and
// outstanding numbers are scoped to the semester when one is given.
func GetDashboardStats(db *sql.DB, semesterID string) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := db.QueryRow(
		`SELECT COUNT(*) FROM students WHERE is_active = true AND deleted_at IS NULL`,
	).Scan(&stats.TotalStudents)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(
		`SELECT COUNT(*) FROM staff WHERE is_active = true AND deleted_at IS NULL`,
	).Scan(&stats.TotalStaff)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(
		`SELECT COUNT(*) FROM courses WHERE deleted_at IS NULL`,
	).Scan(&stats.TotalCourses)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(
		`SELECT COUNT(*) FROM programs WHERE deleted_at IS NULL`,
	).Scan(&stats.TotalPrograms)
	if err != nil {
		return nil, err
	}

	feeQuery := `SELECT COALESCE(SUM(amount_paid), 0), COALESCE(SUM(balance), 0),
				 COALESCE(SUM(amount_due), 0),
				 COUNT(*) FILTER (WHERE status != 'paid' AND due_date < NOW())
				 FROM invoices WHERE deleted_at IS NULL`
	var args []interface{}
	if semesterID != "" {
		feeQuery += " AND semester_id = $1"
		args = append(args, semesterID)
	}

	var totalBilled float64
	err = db.QueryRow(feeQuery, args...).Scan(
		&stats.SemesterRevenue, &stats.OutstandingFees, &totalBilled, &stats.OverdueInvoices,
	)
	if err != nil {
		return nil, err
	}
	if totalBilled > 0 {
		stats.FeeCollectionRate = stats.SemesterRevenue / totalBilled * 100
	}

	activities, err := getRecentActivities(db, 10)
	if err == nil {
		stats.RecentActivities = activities
	}
	return stats, nil
}

func getRecentActivities(db *sql.DB, limit int) ([]models.Activity, error) {
	logs, err := GetRecentAuditLogs(db, limit)
	if err != nil {
		return nil, err
	}

	activities := make([]models.Activity, 0, len(logs))
	for _, entry := range logs {
		activities = append(activities, models.Activity{
			Type:        entry.Action,
			Title:       activityTitle(entry.Action),
			Description: fmt.Sprintf("%s: %s", entry.ActorName, entry.Description),
			TimeAgo:     timeAgo(entry.CreatedAt),
			RawTime:     entry.CreatedAt,
		})
	}
	return activities, nil
}

func activityTitle(action string) string {
	switch action {
	case "payment.record":
		return "Payment Recorded"
	case "payment.update":
		return "Payment Updated"
	case "payment.delete":
		return "Payment Deleted"
	case "invoice.issue":
		return "Invoice Issued"
	case "invoice.amount_due":
		return "Invoice Adjusted"
	case "invoice.reconcile":
		return "Invoice Reconciled"
	case "student.create":
		return "Student Registered"
	case "enrollment.create":
		return "Course Enrollment"
	case "payout.create":
		return "Salary Payout"
	default:
		return "System Activity"
	}
}

func timeAgo(t time.Time) string {
	duration := time.Since(t)
	switch {
	case duration < time.Minute:
		return "Just now"
	case duration < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(duration.Minutes()))
	case duration < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(duration.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(duration.Hours()/24))
	}
}
