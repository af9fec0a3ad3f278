// Copyright (c) 2026 FutureKey. All rights reserved.

package overview

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/apperr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/database/schema"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
)

// Service computes dashboard statistics.
type Service struct {
	repository Repository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new [Service] reading the wall clock.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger, now: time.Now}
}

// WithClock replaces the clock used to compute "today". Intended for tests.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

/*
SystemStats counts the main tables concurrently.

Description: Every count runs in its own goroutine under one errgroup; the
first failure cancels the rest and fails the whole call.

Returns:
  - *SystemStats: All counters, zeros included
  - error: The first repository error
*/
func (service *Service) SystemStats(ctx context.Context) (*SystemStats, error) {
	stats := &SystemStats{}
	group, groupCtx := errgroup.WithContext(ctx)

	counters := []struct {
		table  string
		target *int64
	}{
		{schema.School.Table, &stats.TotalSchools},
		{schema.Class.Table, &stats.TotalClasses},
		{schema.User.Table, &stats.TotalUsers},
		{schema.Career.Table, &stats.TotalCareers},
		{schema.CareerCategory.Table, &stats.TotalCareerCategories},
		{schema.Province.Table, &stats.TotalProvinces},
		{schema.Commune.Table, &stats.TotalCommunes},
		{schema.Question.Table, &stats.TotalQuestions},
		{schema.CareerOrder.Table, &stats.TotalOrders},
		{schema.SchoolCareerLicense.Table, &stats.TotalLicenses},
	}

	// Each goroutine writes a distinct field.
	for _, counter := range counters {
		group.Go(func() error {
			count, err := service.repository.Count(groupCtx, counter.table)
			if err != nil {
				return err
			}
			*counter.target = count
			return nil
		})
	}

	group.Go(func() error {
		size, err := service.repository.TotalFileSize(groupCtx)
		if err != nil {
			return err
		}
		stats.TotalFileSize = size
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// OrdersStatus folds order counts into PENDING, APPROVED and REJECTED.
func (service *Service) OrdersStatus(ctx context.Context) (StatusCounts, error) {
	counts, err := service.repository.OrderStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	return fold(counts, orderStatuses), nil
}

// LicensesStatus folds license counts into the four license statuses.
func (service *Service) LicensesStatus(ctx context.Context) (StatusCounts, error) {
	counts, err := service.repository.LicenseStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	return fold(counts, licenseStatuses), nil
}

/*
TopPurchased ranks careers by the number of order items referencing them.

Returns:
  - []TopCareer: At most limit entries; unresolved careers are named "Unknown"
  - error: ValidationError when limit is not positive, or repository errors
*/
func (service *Service) TopPurchased(ctx context.Context, limit int) ([]TopCareer, error) {
	if limit <= 0 {
		return nil, apperr.ValidationError("limit must be a positive integer")
	}

	careers, err := service.repository.TopPurchased(ctx, limit)
	if err != nil {
		return nil, err
	}
	if careers == nil {
		careers = []TopCareer{}
	}

	rows := make([]*TopCareer, len(careers))
	for i := range careers {
		rows[i] = &careers[i]
	}

	if err := lookup.Attach(ctx, rows,
		func(c *TopCareer) *string { return &c.CareerID },
		service.repository.CareerRefs,
		func(c *TopCareer, ref *lookup.Ref) { c.CareerName = lookup.Label(ref) },
	); err != nil {
		return nil, err
	}
	return careers, nil
}

/*
ExpiringLicenses lists active licenses expiring within the next days days.

Description: The window is [today, today+days] inclusive on calendar dates.
DaysLeft counts whole days from today.

Returns:
  - []ExpiringLicense: Ascending by expiry date, names resolved
  - error: ValidationError when days is not positive, or repository errors
*/
func (service *Service) ExpiringLicenses(ctx context.Context, days int) ([]ExpiringLicense, error) {
	if days <= 0 {
		return nil, apperr.ValidationError("days must be a positive integer")
	}

	now := service.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	until := today.AddDate(0, 0, days)

	licenses, err := service.repository.ExpiringLicenses(ctx, today, until)
	if err != nil {
		return nil, err
	}
	if licenses == nil {
		licenses = []ExpiringLicense{}
	}

	rows := make([]*ExpiringLicense, len(licenses))
	for i := range licenses {
		rows[i] = &licenses[i]
		expiry := licenses[i].ExpiryDate
		day := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
		licenses[i].DaysLeft = int(day.Sub(today).Hours() / 24)
	}

	if err := lookup.Attach(ctx, rows,
		func(l *ExpiringLicense) *string { return &l.SchoolID },
		service.repository.SchoolRefs,
		func(l *ExpiringLicense, ref *lookup.Ref) { l.SchoolName = lookup.Label(ref) },
	); err != nil {
		return nil, err
	}

	if err := lookup.Attach(ctx, rows,
		func(l *ExpiringLicense) *string { return &l.CareerID },
		service.repository.CareerRefs,
		func(l *ExpiringLicense, ref *lookup.Ref) { l.CareerName = lookup.Label(ref) },
	); err != nil {
		return nil, err
	}

	service.logger.Debug("expiring_licenses_listed", slog.Int("days", days), slog.Int("count", len(licenses)))
	return licenses, nil
}

// fold projects raw counts onto a fixed set of statuses.
func fold(counts map[string]int64, statuses []string) StatusCounts {
	result := make(StatusCounts, len(statuses))
	for _, status := range statuses {
		result[status] = counts[status]
	}
	return result
}
