package overview_test

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/huyhoang189/futurekey-be-sub002/internal/core/overview"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
)

type license struct {
	id, schoolID, careerID, status string
	expiry                         time.Time
}

// memoryRepository is an in-memory stand-in for [overview.PostgresRepository].
type memoryRepository struct {
	mu sync.Mutex

	counts     map[string]int64
	fileSize   int64
	orders     []string // statuses
	orderItems []string // career ids
	licenses   []license
	careers    map[string]string
	schools    map[string]string

	failTable string
	refCalls  int
	window    [2]time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		counts:  make(map[string]int64),
		careers: make(map[string]string),
		schools: make(map[string]string),
	}
}

var errBoom = errors.New("boom")

func (repository *memoryRepository) Count(_ context.Context, table string) (int64, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if table == repository.failTable {
		return 0, errBoom
	}
	return repository.counts[table], nil
}

func (repository *memoryRepository) TotalFileSize(context.Context) (int64, error) {
	return repository.fileSize, nil
}

func group(values []string) map[string]int64 {
	result := make(map[string]int64)
	for _, v := range values {
		result[v]++
	}
	return result
}

func (repository *memoryRepository) OrderStatusCounts(context.Context) (map[string]int64, error) {
	return group(repository.orders), nil
}

func (repository *memoryRepository) LicenseStatusCounts(context.Context) (map[string]int64, error) {
	statuses := make([]string, len(repository.licenses))
	for i, l := range repository.licenses {
		statuses[i] = l.status
	}
	return group(statuses), nil
}

func (repository *memoryRepository) TopPurchased(_ context.Context, limit int) ([]overview.TopCareer, error) {
	var ranking []overview.TopCareer
	for id, n := range group(repository.orderItems) {
		ranking = append(ranking, overview.TopCareer{CareerID: id, Purchased: n})
	}
	slices.SortFunc(ranking, func(a, b overview.TopCareer) int {
		if c := cmp.Compare(b.Purchased, a.Purchased); c != 0 {
			return c
		}
		return cmp.Compare(a.CareerID, b.CareerID)
	})
	return ranking[:min(limit, len(ranking))], nil
}

func (repository *memoryRepository) ExpiringLicenses(_ context.Context, from, to time.Time) ([]overview.ExpiringLicense, error) {
	repository.window = [2]time.Time{from, to}

	var result []overview.ExpiringLicense
	for _, l := range repository.licenses {
		if l.status != overview.LicenseActive || l.expiry.Before(from) || l.expiry.After(to) {
			continue
		}
		result = append(result, overview.ExpiringLicense{
			ID: l.id, SchoolID: l.schoolID, CareerID: l.careerID, Status: l.status, ExpiryDate: l.expiry,
		})
	}
	slices.SortFunc(result, func(a, b overview.ExpiringLicense) int { return a.ExpiryDate.Compare(b.ExpiryDate) })
	return result, nil
}

func refs(names map[string]string, ids []string) map[string]lookup.Ref {
	result := make(map[string]lookup.Ref)
	for _, id := range ids {
		if name, ok := names[id]; ok {
			result[id] = lookup.Ref{ID: id, Name: name}
		}
	}
	return result
}

func (repository *memoryRepository) CareerRefs(_ context.Context, ids []string) (map[string]lookup.Ref, error) {
	repository.refCalls++
	return refs(repository.careers, ids), nil
}

func (repository *memoryRepository) SchoolRefs(_ context.Context, ids []string) (map[string]lookup.Ref, error) {
	repository.refCalls++
	return refs(repository.schools, ids), nil
}
