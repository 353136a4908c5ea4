package statistics

import "time"

type MemberStats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// MonthStats covers classes starting in the current calendar month.
type MonthStats struct {
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	Confirmed       int64     `json:"confirmed"`
	Cancelled       int64     `json:"cancelled"`
	Attended        int64     `json:"attended"`
	FreeClassesUsed int64     `json:"free_classes_used"`
	// share of non-cancelled bookings flagged is_attended, 0..1
	AttendanceRate float64 `json:"attendance_rate"`
}

type Dashboard struct {
	Members         MemberStats `json:"members"`
	ActiveTrainers  int64       `json:"active_trainers"`
	MembershipTypes int64       `json:"membership_types"`
	TodayBookings   int64       `json:"today_bookings"`
	Month           MonthStats  `json:"month"`
	// minor units
	EstimatedMonthlyRevenue int64     `json:"estimated_monthly_revenue"`
	GeneratedAt             time.Time `json:"generated_at"`
}
