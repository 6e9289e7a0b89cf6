package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogapi/internal/apperr"
	"blogapi/internal/db"
)

const postColumns = `id, title, description, tags, body, author, author_id, state, read_count, read_time, created_at, updated_at`

// invalid_text_representation: a malformed id can never match a row, so it is
// reported the same way as an absent one.
const invalidTextRep = "22P02"

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, post *Post) (*Post, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, db.ClassifyError(err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO posts (id, title, description, tags, body, author, author_id, state, read_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING read_count, created_at, updated_at`,
		post.ID, post.Title, post.Description, post.Tags, post.Body,
		post.Author, post.AuthorID, post.State, post.ReadTime,
	).Scan(&post.ReadCount, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, db.ClassifyError(err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE users SET post_ids = array_append(post_ids, $2::uuid), updated_at = now()
		WHERE id = $1`,
		post.AuthorID, post.ID)
	if err != nil {
		return nil, db.ClassifyError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, db.ClassifyError(err)
	}
	return post, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	post, err := scanPost(row)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return post, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, f UpdateFields) (*Post, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE posts SET
			title       = COALESCE($2, title),
			description = COALESCE($3, description),
			tags        = COALESCE($4, tags),
			body        = COALESCE($5, body),
			state       = COALESCE($6, state),
			read_time   = COALESCE($7, read_time),
			updated_at  = now()
		WHERE id = $1
		RETURNING `+postColumns,
		id, f.Title, f.Description, f.Tags, f.Body, f.State, f.ReadTime)
	post, err := scanPost(row)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return post, nil
}

func (r *PostgresRepository) DeleteOwned(ctx context.Context, id, authorID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return db.ClassifyError(err)
	}
	defer tx.Rollback(ctx)

	var deleted string
	err = tx.QueryRow(ctx, `
		DELETE FROM posts WHERE id = $1 AND author_id = $2
		RETURNING id`,
		id, authorID).Scan(&deleted)
	if err != nil {
		return notFoundOr(err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE users SET post_ids = array_remove(post_ids, $2::uuid), updated_at = now()
		WHERE id = $1`,
		authorID, deleted)
	if err != nil {
		return db.ClassifyError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return db.ClassifyError(err)
	}
	return nil
}

func (r *PostgresRepository) IncrementReadCount(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE posts SET read_count = read_count + 1 WHERE id = $1`, id)
	if err != nil {
		return db.ClassifyError(err)
	}
	return nil
}

func (r *PostgresRepository) ListPublished(ctx context.Context, f PublishedFilter) ([]Post, int, error) {
	where := []string{"state = 'published'"}
	var args []any

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(title ILIKE $%d OR author ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $%d))",
			n, n, n))
	}

	clause := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE `+clause, args...).Scan(&total); err != nil {
		return nil, 0, db.ClassifyError(err)
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE ` + clause +
		` ORDER BY ` + orderBy(f.SortBy) +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	list, err := r.list(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, f OwnerFilter) ([]Post, int, error) {
	where := []string{"author_id = $1"}
	args := []any{f.AuthorID}

	if f.State != "" {
		args = append(args, f.State)
		where = append(where, fmt.Sprintf("state = $%d", len(args)))
	}

	clause := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE `+clause, args...).Scan(&total); err != nil {
		return nil, 0, db.ClassifyError(err)
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE ` + clause +
		` ORDER BY created_at DESC` +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	list, err := r.list(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// orderBy maps a normalized sort key to a concrete ordering. Anything outside
// the allow-list falls back to insertion order, so caller input never reaches
// the query text.
func orderBy(sortBy string) string {
	switch sortBy {
	case "readCount":
		return "read_count DESC"
	case "readTime":
		return "read_time DESC"
	case "timestamp":
		return "created_at DESC"
	default:
		return "seq ASC"
	}
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, db.ClassifyError(err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, db.ClassifyError(err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, db.ClassifyError(err)
	}
	return posts, nil
}

func scanPost(row pgx.Row) (*Post, error) {
	post := &Post{}
	err := row.Scan(&post.ID, &post.Title, &post.Description, &post.Tags, &post.Body,
		&post.Author, &post.AuthorID, &post.State, &post.ReadCount, &post.ReadTime,
		&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.New(apperr.ErrNotFound, "post not found")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextRep {
		return apperr.New(apperr.ErrNotFound, "post not found")
	}
	return db.ClassifyError(err)
}
