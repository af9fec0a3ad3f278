package overview

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/database/schema"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/dberr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/metrics"
)

// PostgresRepository implements [Repository].
type PostgresRepository struct {
	db         *pgxpool.Pool
	careerRefs lookup.Loader[string, lookup.Ref]
	schoolRefs lookup.Loader[string, lookup.Ref]
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		db:         db,
		careerRefs: lookup.Refs(db, schema.Career.Source()),
		schoolRefs: lookup.Refs(db, schema.School.Source()),
	}
}

func (repository *PostgresRepository) Count(ctx context.Context, table string) (total int64, err error) {
	defer metrics.ObserveQuery("count_"+table, time.Now(), &err)

	err = repository.db.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&total)
	return total, dberr.Wrap(err, "count_"+table)
}

func (repository *PostgresRepository) TotalFileSize(ctx context.Context) (total int64, err error) {
	defer metrics.ObserveQuery("total_file_size", time.Now(), &err)

	query := fmt.Sprintf(`SELECT COALESCE(SUM(%s), 0)::BIGINT FROM %s`, schema.Metadata.FileSize, schema.Metadata.Table)

	err = repository.db.QueryRow(ctx, query).Scan(&total)
	return total, dberr.Wrap(err, "total_file_size")
}

func (repository *PostgresRepository) OrderStatusCounts(ctx context.Context) (map[string]int64, error) {
	return repository.statusCounts(ctx, schema.CareerOrder.Table, schema.CareerOrder.Status, "order_status_counts")
}

func (repository *PostgresRepository) LicenseStatusCounts(ctx context.Context) (map[string]int64, error) {
	return repository.statusCounts(ctx, schema.SchoolCareerLicense.Table, schema.SchoolCareerLicense.Status, "license_status_counts")
}

func (repository *PostgresRepository) statusCounts(ctx context.Context, table, column, action string) (counts map[string]int64, err error) {
	defer metrics.ObserveQuery(action, time.Now(), &err)

	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM %s GROUP BY %s`, column, table, column)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	counts = make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, dberr.Wrap(err, action)
		}
		counts[status] = count
	}

	return counts, dberr.Wrap(rows.Err(), action)
}

func (repository *PostgresRepository) TopPurchased(ctx context.Context, limit int) (careers []TopCareer, err error) {
	defer metrics.ObserveQuery("top_purchased_careers", time.Now(), &err)

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) AS purchased
		FROM %s
		GROUP BY %s
		ORDER BY purchased DESC, %s ASC
		LIMIT $1
	`,
		schema.CareerOrderItem.CareerID, schema.CareerOrderItem.Table,
		schema.CareerOrderItem.CareerID, schema.CareerOrderItem.CareerID,
	)

	rows, err := repository.db.Query(ctx, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "top_purchased_careers")
	}

	careers, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (TopCareer, error) {
		var c TopCareer
		err := row.Scan(&c.CareerID, &c.Purchased)
		return c, err
	})
	return careers, dberr.Wrap(err, "top_purchased_careers")
}

func (repository *PostgresRepository) ExpiringLicenses(ctx context.Context, from, to time.Time) (licenses []ExpiringLicense, err error) {
	defer metrics.ObserveQuery("expiring_licenses", time.Now(), &err)

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s BETWEEN $2::DATE AND $3::DATE
		ORDER BY %s ASC, %s ASC
	`,
		schema.SchoolCareerLicense.ID, schema.SchoolCareerLicense.SchoolID, schema.SchoolCareerLicense.CareerID,
		schema.SchoolCareerLicense.Status, schema.SchoolCareerLicense.ExpiryDate,
		schema.SchoolCareerLicense.Table,
		schema.SchoolCareerLicense.Status, schema.SchoolCareerLicense.ExpiryDate,
		schema.SchoolCareerLicense.ExpiryDate, schema.SchoolCareerLicense.ID,
	)

	rows, err := repository.db.Query(ctx, query, LicenseActive, from, to)
	if err != nil {
		return nil, dberr.Wrap(err, "expiring_licenses")
	}

	licenses, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (ExpiringLicense, error) {
		var l ExpiringLicense
		err := row.Scan(&l.ID, &l.SchoolID, &l.CareerID, &l.Status, &l.ExpiryDate)
		return l, err
	})
	return licenses, dberr.Wrap(err, "expiring_licenses")
}

func (repository *PostgresRepository) CareerRefs(ctx context.Context, ids []string) (map[string]lookup.Ref, error) {
	return repository.careerRefs(ctx, ids)
}

func (repository *PostgresRepository) SchoolRefs(ctx context.Context, ids []string) (map[string]lookup.Ref, error) {
	return repository.schoolRefs(ctx, ids)
}
