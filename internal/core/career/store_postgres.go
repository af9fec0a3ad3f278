package career

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

// PostgresRepository implements [CategoryRepository] and [Repository].
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	categoryColumns = fmt.Sprintf("%s, %s, %s, %s, %s",
		schema.CareerCategory.ID, schema.CareerCategory.Name, schema.CareerCategory.Description,
		schema.CareerCategory.CreatedAt, schema.CareerCategory.UpdatedAt)
	careerColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		schema.Career.ID, schema.Career.Code, schema.Career.Name, schema.Career.Description,
		schema.Career.IsActive, schema.Career.CreatedAt, schema.Career.UpdatedAt)
)

// # Categories

func scanCategory(row pgx.Row) (*Category, error) {
	c := &Category{}
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func collectCategories(rows pgx.Rows, action string) ([]*Category, error) {
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, dberr.Wrap(err, action)
		}
		categories = append(categories, c)
	}
	return categories, dberr.Wrap(rows.Err(), action)
}

func (repository *PostgresRepository) ListCategories(ctx context.Context, filter CategoryFilter, sort pagination.Sort, limit, skip int) ([]*Category, int, error) {
	where := &postgres.Where{}
	where.Search(filter.Search, schema.CareerCategory.Name, schema.CareerCategory.Description)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, schema.CareerCategory.Table, where.SQL())

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_career_categories")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s, %s ASC LIMIT $%d OFFSET $%d`,
		categoryColumns, schema.CareerCategory.Table, where.SQL(),
		sort.SQL(), schema.CareerCategory.ID, where.Next(), where.Next()+1,
	)

	rows, err := repository.db.Query(ctx, query, append(slices.Clone(where.Args()), limit, skip)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_career_categories")
	}

	categories, err := collectCategories(rows, "scan_career_category")
	return categories, total, err
}

func (repository *PostgresRepository) AllCategories(ctx context.Context) ([]*Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		categoryColumns, schema.CareerCategory.Table, schema.CareerCategory.Name)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "all_career_categories")
	}
	return collectCategories(rows, "scan_career_category")
}

func (repository *PostgresRepository) GetCategory(ctx context.Context, id string) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		categoryColumns, schema.CareerCategory.Table, schema.CareerCategory.ID)

	c, err := scanCategory(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_career_category")
	}
	return c, nil
}

func (repository *PostgresRepository) CategoryNameExists(ctx context.Context, name, excludeID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s <> $2)`,
		schema.CareerCategory.Table, schema.CareerCategory.Name, schema.CareerCategory.ID)

	var exists bool
	err := repository.db.QueryRow(ctx, query, name, excludeID).Scan(&exists)
	return exists, dberr.Wrap(err, "career_category_name_exists")
}

func (repository *PostgresRepository) CreateCategory(ctx context.Context, c *Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CareerCategory.Table, schema.CareerCategory.ID, schema.CareerCategory.Name, schema.CareerCategory.Description,
		schema.CareerCategory.CreatedAt, schema.CareerCategory.UpdatedAt,
		schema.CareerCategory.CreatedAt, schema.CareerCategory.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, c.ID, c.Name, c.Description).Scan(&c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "create_career_category")
}

func (repository *PostgresRepository) UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*Category, error) {
	assignments := &postgres.Assignments{}
	if input.Name.HasValue() {
		assignments.Set(schema.CareerCategory.Name, input.Name.Value)
	}
	if input.Description.Set {
		assignments.Set(schema.CareerCategory.Description, input.Description.Ptr())
	}

	if assignments.Empty() {
		return repository.GetCategory(ctx, id)
	}
	assignments.Set(schema.CareerCategory.UpdatedAt, time.Now())

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 RETURNING %s`,
		schema.CareerCategory.Table, assignments.SQL(2), schema.CareerCategory.ID, categoryColumns)

	c, err := scanCategory(repository.db.QueryRow(ctx, query, append([]any{id}, assignments.Args()...)...))
	if err != nil {
		return nil, dberr.Wrap(err, "update_career_category")
	}
	return c, nil
}

func (repository *PostgresRepository) DeleteCategory(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CareerCategory.Table, schema.CareerCategory.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_career_category")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) MissingCategoryIDs(ctx context.Context, ids []string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT requested.id
		FROM unnest($1::text[]) AS requested(id)
		LEFT JOIN %s c ON c.%s = requested.id
		WHERE c.%s IS NULL
	`, schema.CareerCategory.Table, schema.CareerCategory.ID, schema.CareerCategory.ID)

	rows, err := repository.db.Query(ctx, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "missing_career_category_ids")
	}

	missing, err := pgx.CollectRows(rows, pgx.RowTo[string])
	return missing, dberr.Wrap(err, "missing_career_category_ids")
}

// # Careers

func scanCareer(row pgx.Row) (*Career, error) {
	c := &Career{}
	if err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (repository *PostgresRepository) ListCareers(ctx context.Context, filter Filter, sort pagination.Sort, limit, skip int) ([]*Career, int, error) {
	where := &postgres.Where{}
	where.Search(filter.Search, schema.Career.Code, schema.Career.Name, schema.Career.Description)
	if filter.IsActive != nil {
		where.Add(schema.Career.IsActive+" = ?", *filter.IsActive)
	}
	if len(filter.CategoryIDs) > 0 {
		where.Add(fmt.Sprintf("%s IN (SELECT %s FROM %s WHERE %s = ANY(?))",
			schema.Career.ID, schema.CareerCategoryLink.CareerID,
			schema.CareerCategoryLink.Table, schema.CareerCategoryLink.CategoryID,
		), filter.CategoryIDs)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, schema.Career.Table, where.SQL())

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_careers")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s, %s ASC LIMIT $%d OFFSET $%d`,
		careerColumns, schema.Career.Table, where.SQL(),
		sort.SQL(), schema.Career.ID, where.Next(), where.Next()+1,
	)

	rows, err := repository.db.Query(ctx, query, append(slices.Clone(where.Args()), limit, skip)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_careers")
	}
	defer rows.Close()

	careers := make([]*Career, 0, limit)
	for rows.Next() {
		c, err := scanCareer(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_career")
		}
		careers = append(careers, c)
	}

	return careers, total, dberr.Wrap(rows.Err(), "list_careers")
}

func (repository *PostgresRepository) GetCareer(ctx context.Context, id string) (*Career, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, careerColumns, schema.Career.Table, schema.Career.ID)

	c, err := scanCareer(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_career")
	}
	return c, nil
}

func (repository *PostgresRepository) CodeExists(ctx context.Context, code, excludeID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s <> $2)`,
		schema.Career.Table, schema.Career.Code, schema.Career.ID)

	var exists bool
	err := repository.db.QueryRow(ctx, query, code, excludeID).Scan(&exists)
	return exists, dberr.Wrap(err, "career_code_exists")
}

/*
CreateCareer inserts a career and its category links atomically.

Parameters:
  - ctx: context.Context
  - c: *Career (ID pre-assigned; timestamps are filled in)
  - categoryIDs: []string (De-duplicated, existence pre-checked)

Returns:
  - error: Conflict on duplicate code, NotFound on a vanished category
*/
func (repository *PostgresRepository) CreateCareer(ctx context.Context, c *Career, categoryIDs []string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.Career.Table, schema.Career.ID, schema.Career.Code, schema.Career.Name, schema.Career.Description,
		schema.Career.IsActive, schema.Career.CreatedAt, schema.Career.UpdatedAt,
		schema.Career.CreatedAt, schema.Career.UpdatedAt,
	)

	err := postgres.WithTx(ctx, repository.db, func(transaction pgx.Tx) error {
		if err := transaction.QueryRow(ctx, query, c.ID, c.Code, c.Name, c.Description, c.IsActive).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
			return err
		}

		return postgres.SyncJunction(ctx, transaction,
			schema.CareerCategoryLink.Table, schema.CareerCategoryLink.CareerID, schema.CareerCategoryLink.CategoryID,
			c.ID, categoryIDs,
		)
	})
	return dberr.Wrap(err, "create_career")
}

/*
UpdateCareer applies a partial update and optionally resyncs category links.

Returns:
  - *Career: The re-read career (without enrichment)
  - error: NotFound when the career vanished, Conflict on duplicate code
*/
func (repository *PostgresRepository) UpdateCareer(ctx context.Context, id string, input UpdateInput) (*Career, error) {
	assignments := &postgres.Assignments{}
	if input.Code.HasValue() {
		assignments.Set(schema.Career.Code, input.Code.Value)
	}
	if input.Name.HasValue() {
		assignments.Set(schema.Career.Name, input.Name.Value)
	}
	if input.Description.Set {
		assignments.Set(schema.Career.Description, input.Description.Ptr())
	}
	if input.IsActive.HasValue() {
		assignments.Set(schema.Career.IsActive, input.IsActive.Value)
	}

	if assignments.Empty() && !input.CategoryIDs.Set {
		return repository.GetCareer(ctx, id)
	}
	assignments.Set(schema.Career.UpdatedAt, time.Now())

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1`,
		schema.Career.Table, assignments.SQL(2), schema.Career.ID)

	err := postgres.WithTx(ctx, repository.db, func(transaction pgx.Tx) error {
		cmd, err := transaction.Exec(ctx, query, append([]any{id}, assignments.Args()...)...)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}

		if !input.CategoryIDs.Set {
			return nil
		}
		return postgres.SyncJunction(ctx, transaction,
			schema.CareerCategoryLink.Table, schema.CareerCategoryLink.CareerID, schema.CareerCategoryLink.CategoryID,
			id, input.CategoryIDs.Value,
		)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "update_career")
	}

	return repository.GetCareer(ctx, id)
}

func (repository *PostgresRepository) DeleteCareer(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Career.Table, schema.Career.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_career")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Enrichment

func (repository *PostgresRepository) CategoriesByCareer(ctx context.Context, careerIDs []string) (map[string][]lookup.Ref, error) {
	query := fmt.Sprintf(`
		SELECT l.%s, c.%s, c.%s
		FROM %s l
		JOIN %s c ON c.%s = l.%s
		WHERE l.%s = ANY($1)
		ORDER BY c.%s ASC
	`,
		schema.CareerCategoryLink.CareerID, schema.CareerCategory.ID, schema.CareerCategory.Name,
		schema.CareerCategoryLink.Table,
		schema.CareerCategory.Table, schema.CareerCategory.ID, schema.CareerCategoryLink.CategoryID,
		schema.CareerCategoryLink.CareerID,
		schema.CareerCategory.Name,
	)

	rows, err := repository.db.Query(ctx, query, careerIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "categories_by_career")
	}
	defer rows.Close()

	result := make(map[string][]lookup.Ref, len(careerIDs))
	for rows.Next() {
		var careerID string
		var ref lookup.Ref
		if err := rows.Scan(&careerID, &ref.ID, &ref.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_career_category_link")
		}
		result[careerID] = append(result[careerID], ref)
	}

	return result, dberr.Wrap(rows.Err(), "categories_by_career")
}

func (repository *PostgresRepository) CriteriaCounts(ctx context.Context, careerIDs []string) (map[string]int, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM %s WHERE %s = ANY($1) GROUP BY %s`,
		schema.CareerCriteria.CareerID, schema.CareerCriteria.Table,
		schema.CareerCriteria.CareerID, schema.CareerCriteria.CareerID)

	rows, err := repository.db.Query(ctx, query, careerIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "career_criteria_counts")
	}
	defer rows.Close()

	counts := make(map[string]int, len(careerIDs))
	for rows.Next() {
		var careerID string
		var count int
		if err := rows.Scan(&careerID, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_career_criteria_count")
		}
		counts[careerID] = count
	}

	return counts, dberr.Wrap(rows.Err(), "career_criteria_counts")
}

func (repository *PostgresRepository) Images(ctx context.Context, careerIDs []string) (map[string]Image, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT ON (%s) %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = ANY($2)
		ORDER BY %s, %s DESC
	`,
		schema.Metadata.ObjectID,
		schema.Metadata.ObjectID, schema.Metadata.ID, schema.Metadata.FileName, schema.Metadata.FileURL, schema.Metadata.FileSize,
		schema.Metadata.Table,
		schema.Metadata.ObjectType, schema.Metadata.ObjectID,
		schema.Metadata.ObjectID, schema.Metadata.CreatedAt,
	)

	rows, err := repository.db.Query(ctx, query, schema.ObjectTypeCareer, careerIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "career_images")
	}
	defer rows.Close()

	images := make(map[string]Image, len(careerIDs))
	for rows.Next() {
		var careerID string
		var image Image
		if err := rows.Scan(&careerID, &image.ID, &image.FileName, &image.FileURL, &image.FileSize); err != nil {
			return nil, dberr.Wrap(err, "scan_career_image")
		}
		images[careerID] = image
	}

	return images, dberr.Wrap(rows.Err(), "career_images")
}
