package models

import "time"

// DashboardStats aggregates the figures shown on the admin dashboard.
type DashboardStats struct {
	TotalStudents     int        `json:"total_students"`
	TotalStaff        int        `json:"total_staff"`
	TotalCourses      int        `json:"total_courses"`
	TotalPrograms     int        `json:"total_programs"`
	SemesterRevenue   float64    `json:"semester_revenue"`
	OutstandingFees   float64    `json:"outstanding_fees"`
	FeeCollectionRate float64    `json:"fee_collection_rate"`
	OverdueInvoices   int        `json:"overdue_invoices"`
	RecentActivities  []Activity `json:"recent_activities"`
}

// Activity is a recent-activity feed item derived from the audit log.
type Activity struct {
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TimeAgo     string    `json:"time_ago"`
	RawTime     time.Time `json:"-"`
}
