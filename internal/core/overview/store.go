package overview

import (
	"context"
	"time"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
)

// Repository runs the dashboard aggregates.
type Repository interface {
	// Count returns the number of rows of one table named by a schema descriptor.
	Count(ctx context.Context, table string) (int64, error)
	TotalFileSize(ctx context.Context) (int64, error)

	// OrderStatusCounts and LicenseStatusCounts return raw grouped counts.
	OrderStatusCounts(ctx context.Context) (map[string]int64, error)
	LicenseStatusCounts(ctx context.Context) (map[string]int64, error)

	// TopPurchased ranks careers by order-item count, ties by career id.
	// CareerName is left empty.
	TopPurchased(ctx context.Context, limit int) ([]TopCareer, error)

	// ExpiringLicenses returns ACTIVE licenses with expiry_date in [from, to],
	// ascending by expiry_date. Names and DaysLeft are left empty.
	ExpiringLicenses(ctx context.Context, from, to time.Time) ([]ExpiringLicense, error)

	CareerRefs(ctx context.Context, ids []string) (map[string]lookup.Ref, error)
	SchoolRefs(ctx context.Context, ids []string) (map[string]lookup.Ref, error)
}
