// Copyright (c) 2026 FutureKey. All rights reserved.

/*
Package overview serves the read-only statistics of the system-admin dashboard.

Every operation is a stateless read. Status breakdowns are fixed-taxonomy
projections: known statuses always appear (zero when absent) and unknown
ones are dropped.
*/
package overview

import "time"

// Order statuses.
const (
	OrderPending  = "PENDING"
	OrderApproved = "APPROVED"
	OrderRejected = "REJECTED"
)

// License statuses.
const (
	LicenseActive            = "ACTIVE"
	LicenseExpired           = "EXPIRED"
	LicensePendingActivation = "PENDING_ACTIVATION"
	LicenseRevoked           = "REVOKED"
)

var (
	orderStatuses   = []string{OrderPending, OrderApproved, OrderRejected}
	licenseStatuses = []string{LicenseActive, LicenseExpired, LicensePendingActivation, LicenseRevoked}
)

// SystemStats holds the headline counters of the platform.
type SystemStats struct {
	TotalSchools          int64 `json:"totalSchools"`
	TotalClasses          int64 `json:"totalClasses"`
	TotalUsers            int64 `json:"totalUsers"`
	TotalCareers          int64 `json:"totalCareers"`
	TotalCareerCategories int64 `json:"totalCareerCategories"`
	TotalProvinces        int64 `json:"totalProvinces"`
	TotalCommunes         int64 `json:"totalCommunes"`
	TotalQuestions        int64 `json:"totalQuestions"`
	TotalOrders           int64 `json:"totalOrders"`
	TotalLicenses         int64 `json:"totalLicenses"`
	TotalFileSize         int64 `json:"totalFileSize"`
}

// StatusCounts maps each known status to its row count.
type StatusCounts map[string]int64

// TopCareer is one entry of the most purchased careers ranking.
type TopCareer struct {
	CareerID   string `json:"careerId"`
	CareerName string `json:"careerName"`
	Purchased  int64  `json:"purchased"`
}

// ExpiringLicense is an active license whose expiry falls inside the window.
type ExpiringLicense struct {
	ID         string    `json:"id"`
	SchoolID   string    `json:"schoolId"`
	SchoolName string    `json:"schoolName"`
	CareerID   string    `json:"careerId"`
	CareerName string    `json:"careerName"`
	Status     string    `json:"status"`
	ExpiryDate time.Time `json:"expiryDate"`
	DaysLeft   int       `json:"daysLeft"`
}

const (
	defaultTopLimit     = 10
	defaultExpiringDays = 30
)
