package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/AdityaMittal31/FirstWork/pkg/forms"
)

// SQLiteStore implements Gateway on a SQLite database. Questions live in
// their own table keyed by (form_id, id) so per-question writes are a
// single UPSERT rather than a read-modify-write of the whole form.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (or creates) a SQLite database at path and prepares
// the schema. Use ":memory:" for an ephemeral store.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite %q: %w", path, err)
	}
	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStore wraps an existing database handle. The caller owns the
// handle's lifecycle; Close only releases statements created here.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS forms (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);

		CREATE TABLE IF NOT EXISTS questions (
			form_id  TEXT NOT NULL REFERENCES forms(id),
			id       TEXT NOT NULL,
			position INTEGER NOT NULL,
			payload  TEXT NOT NULL,
			PRIMARY KEY (form_id, id)
		);

		CREATE INDEX IF NOT EXISTS idx_questions_form_position
			ON questions (form_id, position);
	`)
	if err != nil {
		return fmt.Errorf("store: migrate sqlite schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) CreateForm(ctx context.Context, form forms.Form) (forms.Form, error) {
	if form.ID == "" {
		form.ID = uuid.NewString()
	}
	now := s.now().UTC()
	form.CreatedAt = now
	form.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return forms.Form{}, fmt.Errorf("store: begin create: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO forms (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		form.ID, form.Title, form.CreatedAt, form.UpdatedAt,
	); err != nil {
		return forms.Form{}, fmt.Errorf("store: insert form: %w", err)
	}
	if err := replaceQuestions(ctx, tx, form.ID, form.Questions); err != nil {
		return forms.Form{}, err
	}
	if err := tx.Commit(); err != nil {
		return forms.Form{}, fmt.Errorf("store: commit create: %w", err)
	}
	return form, nil
}

func (s *SQLiteStore) UpdateForm(ctx context.Context, form forms.Form) (forms.Form, error) {
	existing, err := s.GetForm(ctx, form.ID)
	if err != nil {
		return forms.Form{}, err
	}

	form.CreatedAt = existing.CreatedAt
	form.UpdatedAt = monotonic(existing.UpdatedAt, s.now().UTC())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return forms.Form{}, fmt.Errorf("store: begin update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE forms SET title = ?, updated_at = ? WHERE id = ?`,
		form.Title, form.UpdatedAt, form.ID,
	); err != nil {
		return forms.Form{}, fmt.Errorf("store: update form: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE form_id = ?`, form.ID); err != nil {
		return forms.Form{}, fmt.Errorf("store: clear questions: %w", err)
	}
	if err := replaceQuestions(ctx, tx, form.ID, form.Questions); err != nil {
		return forms.Form{}, err
	}
	if err := tx.Commit(); err != nil {
		return forms.Form{}, fmt.Errorf("store: commit update: %w", err)
	}
	return form, nil
}

func (s *SQLiteStore) AppendQuestion(ctx context.Context, formID string, q forms.Question) (forms.Question, error) {
	q = q.Clone()
	q.ID = uuid.NewString()

	payload, err := json.Marshal(q)
	if err != nil {
		return forms.Question{}, fmt.Errorf("store: encode question: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (form_id, id, position, payload)
		SELECT f.id, ?, COALESCE((SELECT MAX(position) + 1 FROM questions WHERE form_id = f.id), 0), ?
		FROM forms f WHERE f.id = ?`,
		q.ID, string(payload), formID,
	)
	if err != nil {
		return forms.Question{}, fmt.Errorf("store: append question: %w", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return forms.Question{}, ErrNotFound
	}

	if err := s.touch(ctx, formID); err != nil {
		return forms.Question{}, err
	}
	return q, nil
}

func (s *SQLiteStore) UpdateQuestion(ctx context.Context, formID string, q forms.Question) (forms.Question, error) {
	if _, err := s.GetForm(ctx, formID); err != nil {
		return forms.Question{}, err
	}

	payload, err := json.Marshal(q)
	if err != nil {
		return forms.Question{}, fmt.Errorf("store: encode question: %w", err)
	}

	// UPSERT keeps the write atomically scoped to the question sub-key.
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (form_id, id, position, payload)
		VALUES (?, ?, COALESCE((SELECT MAX(position) + 1 FROM questions WHERE form_id = ?), 0), ?)
		ON CONFLICT (form_id, id) DO UPDATE SET payload = excluded.payload`,
		formID, q.ID, formID, string(payload),
	); err != nil {
		return forms.Question{}, fmt.Errorf("store: upsert question: %w", err)
	}

	if err := s.touch(ctx, formID); err != nil {
		return forms.Question{}, err
	}
	return q.Clone(), nil
}

func (s *SQLiteStore) ListForms(ctx context.Context) ([]forms.Form, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, created_at, updated_at FROM forms ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("store: list forms: %w", err)
	}
	defer rows.Close()

	var out []forms.Form
	for rows.Next() {
		var form forms.Form
		if err := rows.Scan(&form.ID, &form.Title, &form.CreatedAt, &form.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: scan form: %w", err)
		}
		out = append(out, form)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate forms: %w", err)
	}

	for i := range out {
		questions, err := s.loadQuestions(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Questions = questions
	}
	return out, nil
}

func (s *SQLiteStore) GetForm(ctx context.Context, id string) (forms.Form, error) {
	var form forms.Form
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, created_at, updated_at FROM forms WHERE id = ?`, id,
	).Scan(&form.ID, &form.Title, &form.CreatedAt, &form.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return forms.Form{}, ErrNotFound
	}
	if err != nil {
		return forms.Form{}, fmt.Errorf("store: get form: %w", err)
	}

	questions, err := s.loadQuestions(ctx, id)
	if err != nil {
		return forms.Form{}, err
	}
	form.Questions = questions
	return form, nil
}

func (s *SQLiteStore) loadQuestions(ctx context.Context, formID string) ([]forms.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM questions WHERE form_id = ? ORDER BY position`, formID)
	if err != nil {
		return nil, fmt.Errorf("store: load questions: %w", err)
	}
	defer rows.Close()

	var out []forms.Question
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("store: scan question: %w", err)
		}
		var q forms.Question
		if err := json.Unmarshal([]byte(payload), &q); err != nil {
			return nil, fmt.Errorf("store: decode question: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate questions: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) touch(ctx context.Context, formID string) error {
	now := s.now().UTC()
	if _, err := s.db.ExecContext(ctx, `
		UPDATE forms SET updated_at = CASE WHEN updated_at >= ? THEN updated_at ELSE ? END
		WHERE id = ?`, now, now, formID,
	); err != nil {
		return fmt.Errorf("store: touch form: %w", err)
	}
	return nil
}

func monotonic(prev, now time.Time) time.Time {
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}

var _ Gateway = (*SQLiteStore)(nil)
var _ Gateway = (*MemoryStore)(nil)
