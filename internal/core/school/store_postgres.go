package school

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/database/schema"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/dberr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/postgres"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

// PostgresRepository implements [Repository] and [ClassRepository].
type PostgresRepository struct {
	db         *pgxpool.Pool
	schoolRefs lookup.Loader[string, lookup.Ref]
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		db:         db,
		schoolRefs: lookup.Refs(db, schema.School.Source()),
	}
}

var (
	schoolColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		schema.School.ID, schema.School.Name, schema.School.Address, schema.School.PhoneNumber,
		schema.School.ContactEmail, schema.School.CreatedAt, schema.School.UpdatedAt)
	classColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		schema.Class.ID, schema.Class.Name, schema.Class.GradeLevel, schema.Class.SchoolID,
		schema.Class.CreatedAt, schema.Class.UpdatedAt)
)

// # Schools

func scanSchool(row pgx.Row) (*School, error) {
	s := &School{}
	if err := row.Scan(&s.ID, &s.Name, &s.Address, &s.PhoneNumber, &s.ContactEmail, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (repository *PostgresRepository) ListSchools(ctx context.Context, filter Filter, sort pagination.Sort, limit, skip int) ([]*School, int, error) {
	where := &postgres.Where{}
	where.Search(filter.Search, schema.School.Name, schema.School.Address, schema.School.ContactEmail)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, schema.School.Table, where.SQL())

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_schools")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s, %s ASC LIMIT $%d OFFSET $%d`,
		schoolColumns, schema.School.Table, where.SQL(),
		sort.SQL(), schema.School.ID, where.Next(), where.Next()+1,
	)

	rows, err := repository.db.Query(ctx, query, append(slices.Clone(where.Args()), limit, skip)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_schools")
	}
	defer rows.Close()

	schools := make([]*School, 0, limit)
	for rows.Next() {
		s, err := scanSchool(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_school")
		}
		schools = append(schools, s)
	}

	return schools, total, dberr.Wrap(rows.Err(), "list_schools")
}

func (repository *PostgresRepository) GetSchool(ctx context.Context, id string) (*School, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, schoolColumns, schema.School.Table, schema.School.ID)

	s, err := scanSchool(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_school")
	}
	return s, nil
}

func (repository *PostgresRepository) CreateSchool(ctx context.Context, s *School) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.School.Table, schema.School.ID, schema.School.Name, schema.School.Address,
		schema.School.PhoneNumber, schema.School.ContactEmail, schema.School.CreatedAt, schema.School.UpdatedAt,
		schema.School.CreatedAt, schema.School.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, s.ID, s.Name, s.Address, s.PhoneNumber, s.ContactEmail).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	return dberr.Wrap(err, "create_school")
}

func (repository *PostgresRepository) UpdateSchool(ctx context.Context, id string, input UpdateInput) (*School, error) {
	assignments := &postgres.Assignments{}
	if input.Name.HasValue() {
		assignments.Set(schema.School.Name, input.Name.Value)
	}
	if input.Address.Set {
		assignments.Set(schema.School.Address, input.Address.Ptr())
	}
	if input.PhoneNumber.Set {
		assignments.Set(schema.School.PhoneNumber, input.PhoneNumber.Ptr())
	}
	if input.ContactEmail.Set {
		assignments.Set(schema.School.ContactEmail, input.ContactEmail.Ptr())
	}

	if assignments.Empty() {
		return repository.GetSchool(ctx, id)
	}
	assignments.Set(schema.School.UpdatedAt, time.Now())

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 RETURNING %s`,
		schema.School.Table, assignments.SQL(2), schema.School.ID, schoolColumns)

	s, err := scanSchool(repository.db.QueryRow(ctx, query, append([]any{id}, assignments.Args()...)...))
	if err != nil {
		return nil, dberr.Wrap(err, "update_school")
	}
	return s, nil
}

func (repository *PostgresRepository) DeleteSchool(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.School.Table, schema.School.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_school")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) SchoolRefs(ctx context.Context, ids []string) (map[string]lookup.Ref, error) {
	return repository.schoolRefs(ctx, ids)
}

// # Classes

func scanClass(row pgx.Row) (*Class, error) {
	c := &Class{}
	if err := row.Scan(&c.ID, &c.Name, &c.GradeLevel, &c.SchoolID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (repository *PostgresRepository) ListClasses(ctx context.Context, filter ClassFilter, sort pagination.Sort, limit, skip int) ([]*Class, int, error) {
	where := &postgres.Where{}
	where.Search(filter.Search, schema.Class.Name)
	if filter.SchoolID != "" {
		where.Add(schema.Class.SchoolID+" = ?", filter.SchoolID)
	}
	if filter.GradeLevel > 0 {
		where.Add(schema.Class.GradeLevel+" = ?", filter.GradeLevel)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, schema.Class.Table, where.SQL())

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_classes")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s, %s ASC LIMIT $%d OFFSET $%d`,
		classColumns, schema.Class.Table, where.SQL(),
		sort.SQL(), schema.Class.ID, where.Next(), where.Next()+1,
	)

	rows, err := repository.db.Query(ctx, query, append(slices.Clone(where.Args()), limit, skip)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_classes")
	}
	defer rows.Close()

	classes := make([]*Class, 0, limit)
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_class")
		}
		classes = append(classes, c)
	}

	return classes, total, dberr.Wrap(rows.Err(), "list_classes")
}

func (repository *PostgresRepository) GetClass(ctx context.Context, id string) (*Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, classColumns, schema.Class.Table, schema.Class.ID)

	c, err := scanClass(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_class")
	}
	return c, nil
}

func (repository *PostgresRepository) CreateClass(ctx context.Context, c *Class) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.Class.Table, schema.Class.ID, schema.Class.Name, schema.Class.GradeLevel, schema.Class.SchoolID,
		schema.Class.CreatedAt, schema.Class.UpdatedAt,
		schema.Class.CreatedAt, schema.Class.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, c.ID, c.Name, c.GradeLevel, c.SchoolID).Scan(&c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "create_class")
}

func (repository *PostgresRepository) UpdateClass(ctx context.Context, id string, input UpdateClassInput) (*Class, error) {
	assignments := &postgres.Assignments{}
	if input.Name.HasValue() {
		assignments.Set(schema.Class.Name, input.Name.Value)
	}
	if input.GradeLevel.HasValue() {
		assignments.Set(schema.Class.GradeLevel, input.GradeLevel.Value)
	}
	if input.SchoolID.HasValue() {
		assignments.Set(schema.Class.SchoolID, input.SchoolID.Value)
	}

	if assignments.Empty() {
		return repository.GetClass(ctx, id)
	}
	assignments.Set(schema.Class.UpdatedAt, time.Now())

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 RETURNING %s`,
		schema.Class.Table, assignments.SQL(2), schema.Class.ID, classColumns)

	c, err := scanClass(repository.db.QueryRow(ctx, query, append([]any{id}, assignments.Args()...)...))
	if err != nil {
		return nil, dberr.Wrap(err, "update_class")
	}
	return c, nil
}

func (repository *PostgresRepository) DeleteClass(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Class.Table, schema.Class.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_class")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
