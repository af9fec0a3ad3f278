package location

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

// PostgresRepository implements [ProvinceRepository] and [CommuneRepository].
type PostgresRepository struct {
	db           *pgxpool.Pool
	provinceRefs lookup.Loader[string, lookup.Ref]
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		db:           db,
		provinceRefs: lookup.Refs(db, schema.Province.Source()),
	}
}

var (
	provinceColumns = fmt.Sprintf("%s, %s, %s, %s",
		schema.Province.ID, schema.Province.Name, schema.Province.CreatedAt, schema.Province.UpdatedAt)
	communeColumns = fmt.Sprintf("%s, %s, %s, %s, %s",
		schema.Commune.ID, schema.Commune.Name, schema.Commune.ProvinceID, schema.Commune.CreatedAt, schema.Commune.UpdatedAt)
)

// # Provinces

func scanProvince(row pgx.Row) (*Province, error) {
	p := &Province{}
	if err := row.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (repository *PostgresRepository) ListProvinces(ctx context.Context, filter ProvinceFilter, sort pagination.Sort, limit, skip int) ([]*Province, int, error) {
	where := &postgres.Where{}
	where.Search(filter.Search, schema.Province.Name)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, schema.Province.Table, where.SQL())

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_provinces")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s, %s ASC LIMIT $%d OFFSET $%d`,
		provinceColumns, schema.Province.Table, where.SQL(),
		sort.SQL(), schema.Province.ID, where.Next(), where.Next()+1,
	)

	rows, err := repository.db.Query(ctx, query, append(slices.Clone(where.Args()), limit, skip)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_provinces")
	}
	defer rows.Close()

	provinces := make([]*Province, 0, limit)
	for rows.Next() {
		p, err := scanProvince(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_province")
		}
		provinces = append(provinces, p)
	}

	return provinces, total, dberr.Wrap(rows.Err(), "list_provinces")
}

func (repository *PostgresRepository) GetProvince(ctx context.Context, id string) (*Province, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, provinceColumns, schema.Province.Table, schema.Province.ID)

	p, err := scanProvince(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_province")
	}
	return p, nil
}

func (repository *PostgresRepository) ProvinceNameExists(ctx context.Context, name, excludeID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s <> $2)`,
		schema.Province.Table, schema.Province.Name, schema.Province.ID)

	var exists bool
	err := repository.db.QueryRow(ctx, query, name, excludeID).Scan(&exists)
	return exists, dberr.Wrap(err, "province_name_exists")
}

func (repository *PostgresRepository) CreateProvince(ctx context.Context, p *Province) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.Province.Table, schema.Province.ID, schema.Province.Name, schema.Province.CreatedAt, schema.Province.UpdatedAt,
		schema.Province.CreatedAt, schema.Province.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, p.ID, p.Name).Scan(&p.CreatedAt, &p.UpdatedAt)
	return dberr.Wrap(err, "create_province")
}

func (repository *PostgresRepository) UpdateProvince(ctx context.Context, id string, input UpdateProvinceInput) (*Province, error) {
	assignments := &postgres.Assignments{}
	if input.Name.HasValue() {
		assignments.Set(schema.Province.Name, input.Name.Value)
	}

	if assignments.Empty() {
		return repository.GetProvince(ctx, id)
	}
	assignments.Set(schema.Province.UpdatedAt, time.Now())

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 RETURNING %s`,
		schema.Province.Table, assignments.SQL(2), schema.Province.ID, provinceColumns)

	p, err := scanProvince(repository.db.QueryRow(ctx, query, append([]any{id}, assignments.Args()...)...))
	if err != nil {
		return nil, dberr.Wrap(err, "update_province")
	}
	return p, nil
}

func (repository *PostgresRepository) DeleteProvince(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Province.Table, schema.Province.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_province")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ProvinceRefs(ctx context.Context, ids []string) (map[string]lookup.Ref, error) {
	return repository.provinceRefs(ctx, ids)
}

// # Communes

func scanCommune(row pgx.Row) (*Commune, error) {
	c := &Commune{}
	if err := row.Scan(&c.ID, &c.Name, &c.ProvinceID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (repository *PostgresRepository) ListCommunes(ctx context.Context, filter CommuneFilter, sort pagination.Sort, limit, skip int) ([]*Commune, int, error) {
	where := &postgres.Where{}
	where.Search(filter.Search, schema.Commune.Name)
	where.Search(filter.Name, schema.Commune.Name)
	if filter.ProvinceID != "" {
		where.Add(schema.Commune.ProvinceID+" = ?", filter.ProvinceID)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, schema.Commune.Table, where.SQL())

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_communes")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s, %s ASC LIMIT $%d OFFSET $%d`,
		communeColumns, schema.Commune.Table, where.SQL(),
		sort.SQL(), schema.Commune.ID, where.Next(), where.Next()+1,
	)

	rows, err := repository.db.Query(ctx, query, append(slices.Clone(where.Args()), limit, skip)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_communes")
	}
	defer rows.Close()

	communes := make([]*Commune, 0, limit)
	for rows.Next() {
		c, err := scanCommune(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_commune")
		}
		communes = append(communes, c)
	}

	return communes, total, dberr.Wrap(rows.Err(), "list_communes")
}

func (repository *PostgresRepository) GetCommune(ctx context.Context, id string) (*Commune, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, communeColumns, schema.Commune.Table, schema.Commune.ID)

	c, err := scanCommune(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_commune")
	}
	return c, nil
}

func (repository *PostgresRepository) CommuneNameExists(ctx context.Context, name, excludeID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s <> $2)`,
		schema.Commune.Table, schema.Commune.Name, schema.Commune.ID)

	var exists bool
	err := repository.db.QueryRow(ctx, query, name, excludeID).Scan(&exists)
	return exists, dberr.Wrap(err, "commune_name_exists")
}

func (repository *PostgresRepository) CreateCommune(ctx context.Context, c *Commune) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.Commune.Table, schema.Commune.ID, schema.Commune.Name, schema.Commune.ProvinceID,
		schema.Commune.CreatedAt, schema.Commune.UpdatedAt,
		schema.Commune.CreatedAt, schema.Commune.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, c.ID, c.Name, c.ProvinceID).Scan(&c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "create_commune")
}

func (repository *PostgresRepository) UpdateCommune(ctx context.Context, id string, input UpdateCommuneInput) (*Commune, error) {
	assignments := &postgres.Assignments{}
	if input.Name.HasValue() {
		assignments.Set(schema.Commune.Name, input.Name.Value)
	}
	if input.ProvinceID.Set {
		assignments.Set(schema.Commune.ProvinceID, input.ProvinceID.Ptr())
	}

	if assignments.Empty() {
		return repository.GetCommune(ctx, id)
	}
	assignments.Set(schema.Commune.UpdatedAt, time.Now())

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 RETURNING %s`,
		schema.Commune.Table, assignments.SQL(2), schema.Commune.ID, communeColumns)

	c, err := scanCommune(repository.db.QueryRow(ctx, query, append([]any{id}, assignments.Args()...)...))
	if err != nil {
		return nil, dberr.Wrap(err, "update_commune")
	}
	return c, nil
}

func (repository *PostgresRepository) DeleteCommune(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Commune.Table, schema.Commune.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_commune")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
