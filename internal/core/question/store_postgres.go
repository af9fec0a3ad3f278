package question

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/database/schema"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/dberr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/lookup"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/postgres"
	"github.com/huyhoang189/futurekey-be-sub002/pkg/pagination"
)

const foreignKeyViolation = "23503"

// PostgresRepository implements [Repository].
type PostgresRepository struct {
	db           *pgxpool.Pool
	categoryRefs lookup.Loader[string, lookup.Ref]
	criteriaRefs lookup.Loader[string, lookup.Ref]
	userRefs     lookup.Loader[string, lookup.Ref]
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		db:           db,
		categoryRefs: lookup.Refs(db, schema.QuestionCategory.Source()),
		criteriaRefs: lookup.Refs(db, schema.CareerCriteria.Source()),
		userRefs:     lookup.Refs(db, schema.User.Source()),
	}
}

var (
	questionColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.Question.ID, schema.Question.Content, schema.Question.QuestionType, schema.Question.DifficultyLevel,
		schema.Question.CategoryID, schema.Question.CareerCriteriaID, schema.Question.Points, schema.Question.Explanation,
		schema.Question.Tags, schema.Question.Metadata, schema.Question.IsActive, schema.Question.CreatedBy,
		schema.Question.CreatedAt, schema.Question.UpdatedAt)
	optionColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		schema.QuestionOption.ID, schema.QuestionOption.QuestionID, schema.QuestionOption.OptionKey,
		schema.QuestionOption.OptionText, schema.QuestionOption.IsCorrect, schema.QuestionOption.OrderIndex)
)

func scanQuestion(row pgx.Row) (*Question, error) {
	q := &Question{}
	var metadata []byte
	if err := row.Scan(
		&q.ID, &q.Content, &q.QuestionType, &q.DifficultyLevel,
		&q.CategoryID, &q.CareerCriteriaID, &q.Points, &q.Explanation,
		&q.Tags, &metadata, &q.IsActive, &q.CreatedBy,
		&q.CreatedAt, &q.UpdatedAt,
	); err != nil {
		return nil, err
	}
	q.Metadata = metadata
	return q, nil
}

// jsonb encodes raw JSON for a jsonb column, mapping empty input to NULL.
func jsonb(raw []byte) any {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return string(raw)
}

// # Reads

func (repository *PostgresRepository) ListQuestions(ctx context.Context, filter Filter, sort pagination.Sort, limit, skip int) ([]*Question, int, error) {
	where := &postgres.Where{}
	where.Search(filter.Search, schema.Question.Content, schema.Question.Explanation)
	if filter.CategoryID != "" {
		where.Add(schema.Question.CategoryID+" = ?", filter.CategoryID)
	}
	if filter.CareerCriteriaID != "" {
		where.Add(schema.Question.CareerCriteriaID+" = ?", filter.CareerCriteriaID)
	}
	if filter.QuestionType != "" {
		where.Add(schema.Question.QuestionType+" = ?", filter.QuestionType)
	}
	if filter.DifficultyLevel != "" {
		where.Add(schema.Question.DifficultyLevel+" = ?", filter.DifficultyLevel)
	}
	if filter.Tag != "" {
		where.Add("? = ANY("+schema.Question.Tags+")", filter.Tag)
	}
	if filter.IsActive != nil {
		where.Add(schema.Question.IsActive+" = ?", *filter.IsActive)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, schema.Question.Table, where.SQL())

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_questions")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s, %s ASC LIMIT $%d OFFSET $%d`,
		questionColumns, schema.Question.Table, where.SQL(),
		sort.SQL(), schema.Question.ID, where.Next(), where.Next()+1,
	)

	rows, err := repository.db.Query(ctx, query, append(slices.Clone(where.Args()), limit, skip)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_questions")
	}
	defer rows.Close()

	questions := make([]*Question, 0, limit)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_question")
		}
		questions = append(questions, q)
	}

	return questions, total, dberr.Wrap(rows.Err(), "list_questions")
}

func (repository *PostgresRepository) GetQuestion(ctx context.Context, id string) (*Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, questionColumns, schema.Question.Table, schema.Question.ID)

	q, err := scanQuestion(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_question")
	}
	return q, nil
}

func (repository *PostgresRepository) InUse(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.ExamQuestion.Table, schema.ExamQuestion.QuestionID)

	var inUse bool
	err := repository.db.QueryRow(ctx, query, id).Scan(&inUse)
	return inUse, dberr.Wrap(err, "question_in_use")
}

// # Writes

func (repository *PostgresRepository) CreateQuestion(ctx context.Context, q *Question) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.Question.Table, schema.Question.ID, schema.Question.Content, schema.Question.QuestionType,
		schema.Question.DifficultyLevel, schema.Question.CategoryID, schema.Question.CareerCriteriaID,
		schema.Question.Points, schema.Question.Explanation, schema.Question.Tags, schema.Question.Metadata,
		schema.Question.IsActive, schema.Question.CreatedBy, schema.Question.CreatedAt, schema.Question.UpdatedAt,
		schema.Question.CreatedAt, schema.Question.UpdatedAt,
	)

	if q.Tags == nil {
		q.Tags = []string{}
	}

	err := postgres.WithTx(ctx, repository.db, func(transaction pgx.Tx) error {
		if err := transaction.QueryRow(ctx, query,
			q.ID, q.Content, q.QuestionType, q.DifficultyLevel, q.CategoryID, q.CareerCriteriaID,
			q.Points, q.Explanation, q.Tags, jsonb(q.Metadata), q.IsActive, q.CreatedBy,
		).Scan(&q.CreatedAt, &q.UpdatedAt); err != nil {
			return err
		}

		return insertOptions(ctx, transaction, q.Options)
	})
	return dberr.Wrap(err, "create_question")
}

/*
UpdateQuestion applies a partial update and optionally replaces the options.

Returns:
  - *Question: The re-read question (without enrichment)
  - error: dberr.ErrNotFound when the row vanished, or wrapped pgx errors
*/
func (repository *PostgresRepository) UpdateQuestion(ctx context.Context, id string, input UpdateInput, options []Option) (*Question, error) {
	assignments := &postgres.Assignments{}
	if input.Content.HasValue() {
		assignments.Set(schema.Question.Content, input.Content.Value)
	}
	if input.QuestionType.HasValue() {
		assignments.Set(schema.Question.QuestionType, input.QuestionType.Value)
	}
	if input.DifficultyLevel.HasValue() {
		assignments.Set(schema.Question.DifficultyLevel, input.DifficultyLevel.Value)
	}
	if input.CategoryID.Set {
		assignments.Set(schema.Question.CategoryID, input.CategoryID.Ptr())
	}
	if input.CareerCriteriaID.Set {
		assignments.Set(schema.Question.CareerCriteriaID, input.CareerCriteriaID.Ptr())
	}
	if input.Points.HasValue() {
		assignments.Set(schema.Question.Points, input.Points.Value)
	}
	if input.Explanation.Set {
		assignments.Set(schema.Question.Explanation, input.Explanation.Ptr())
	}
	if input.Tags.Set {
		tags := input.Tags.Value
		if tags == nil {
			tags = []string{}
		}
		assignments.Set(schema.Question.Tags, tags)
	}
	if input.Metadata.Set {
		assignments.Set(schema.Question.Metadata, jsonb(input.Metadata.Value))
	}
	if input.IsActive.HasValue() {
		assignments.Set(schema.Question.IsActive, input.IsActive.Value)
	}
	if input.CreatedBy.Set {
		assignments.Set(schema.Question.CreatedBy, input.CreatedBy.Ptr())
	}

	if assignments.Empty() && options == nil {
		return repository.GetQuestion(ctx, id)
	}
	assignments.Set(schema.Question.UpdatedAt, time.Now())

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1`,
		schema.Question.Table, assignments.SQL(2), schema.Question.ID)

	err := postgres.WithTx(ctx, repository.db, func(transaction pgx.Tx) error {
		cmd, err := transaction.Exec(ctx, query, append([]any{id}, assignments.Args()...)...)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}

		if options == nil {
			return nil
		}
		if err := deleteOptions(ctx, transaction, id); err != nil {
			return err
		}
		return insertOptions(ctx, transaction, options)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "update_question")
	}

	return repository.GetQuestion(ctx, id)
}

func (repository *PostgresRepository) DeleteQuestion(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Question.Table, schema.Question.ID)

	err := postgres.WithTx(ctx, repository.db, func(transaction pgx.Tx) error {
		if err := deleteOptions(ctx, transaction, id); err != nil {
			return err
		}

		cmd, err := transaction.Exec(ctx, query, id)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		return nil
	})

	// An exam reference added after the service check trips the RESTRICT key.
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) && pgError.Code == foreignKeyViolation {
		return ErrInUse
	}
	return dberr.Wrap(err, "delete_question")
}

func deleteOptions(ctx context.Context, transaction pgx.Tx, questionID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.QuestionOption.Table, schema.QuestionOption.QuestionID)

	_, err := transaction.Exec(ctx, query, questionID)
	return err
}

// insertOptions queues one INSERT per option in a single batch, in slice order.
func insertOptions(ctx context.Context, transaction pgx.Tx, options []Option) error {
	if len(options) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`, schema.QuestionOption.Table, optionColumns)

	batch := &pgx.Batch{}
	for _, o := range options {
		batch.Queue(query, o.ID, o.QuestionID, o.OptionKey, o.OptionText, o.IsCorrect, o.OrderIndex)
	}
	return transaction.SendBatch(ctx, batch).Close()
}

// # Enrichment

func (repository *PostgresRepository) OptionsByQuestion(ctx context.Context, questionIDs []string) (map[string][]Option, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1) ORDER BY %s, %s, %s`,
		optionColumns, schema.QuestionOption.Table, schema.QuestionOption.QuestionID,
		schema.QuestionOption.QuestionID, schema.QuestionOption.OrderIndex, schema.QuestionOption.OptionKey)

	rows, err := repository.db.Query(ctx, query, questionIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "question_options")
	}

	options, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Option])
	if err != nil {
		return nil, dberr.Wrap(err, "scan_question_option")
	}

	result := make(map[string][]Option, len(questionIDs))
	for _, o := range options {
		result[o.QuestionID] = append(result[o.QuestionID], o)
	}
	return result, nil
}

func (repository *PostgresRepository) CategoryRefs(ctx context.Context, ids []string) (map[string]lookup.Ref, error) {
	return repository.categoryRefs(ctx, ids)
}

func (repository *PostgresRepository) CriteriaRefs(ctx context.Context, ids []string) (map[string]lookup.Ref, error) {
	return repository.criteriaRefs(ctx, ids)
}

func (repository *PostgresRepository) UserRefs(ctx context.Context, ids []string) (map[string]lookup.Ref, error) {
	return repository.userRefs(ctx, ids)
}
