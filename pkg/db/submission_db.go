package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/velstore/product-intake/pkg/models"
)

const CREATE_SUBMISSIONS_TABLE = `CREATE TABLE IF NOT EXISTS submissions(
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	contact TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	product_links TEXT NOT NULL DEFAULT '[]',
	image_urls TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending'
);`

// PersistenceError wraps any storage fault coming out of the submission store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "submission store: " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type SubmissionDatabase interface {
	CreateSubmission(ctx context.Context, name, contact, email string, productLinks, imageURLs []string) (int, error)
	ListSubmissions(ctx context.Context) ([]models.Submission, error)
}

type SubmissionDatabaseImpl struct {
	db *sqlx.DB
}

func NewSubmissionDatabase(autoCreate bool, db *sqlx.DB) (*SubmissionDatabaseImpl, error) {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, &PersistenceError{Op: "apply pragma", Err: err}
		}
	}
	if autoCreate {
		if _, err := db.Exec(CREATE_SUBMISSIONS_TABLE); err != nil {
			return nil, &PersistenceError{Op: "create table", Err: err}
		}
	}
	return &SubmissionDatabaseImpl{db: db}, nil
}

func (r *SubmissionDatabaseImpl) CreateSubmission(ctx context.Context, name, contact, email string, productLinks, imageURLs []string) (int, error) {
	links, err := encodeStringList(productLinks)
	if err != nil {
		return 0, &PersistenceError{Op: "encode product links", Err: err}
	}
	urls, err := encodeStringList(imageURLs)
	if err != nil {
		return 0, &PersistenceError{Op: "encode image urls", Err: err}
	}

	createdAt := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO submissions(name, contact, email, product_links, image_urls, created_at, status) VALUES(?, ?, ?, ?, ?, ?, ?)",
		name, contact, email, links, urls, createdAt, models.StatusPending)
	if err != nil {
		return 0, &PersistenceError{Op: "insert submission", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &PersistenceError{Op: "last insert id", Err: err}
	}
	return int(id), nil
}

// submissionRow mirrors the table layout; the list columns and timestamp are
// stored as text and expanded when rows are read back.
type submissionRow struct {
	ID           int    `db:"id"`
	Name         string `db:"name"`
	Contact      string `db:"contact"`
	Email        string `db:"email"`
	ProductLinks string `db:"product_links"`
	ImageURLs    string `db:"image_urls"`
	CreatedAt    string `db:"created_at"`
	Status       string `db:"status"`
}

func (r *SubmissionDatabaseImpl) ListSubmissions(ctx context.Context) ([]models.Submission, error) {
	var rows []submissionRow
	query := "SELECT id, name, contact, email, product_links, image_urls, created_at, status FROM submissions ORDER BY created_at DESC, id DESC"
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, &PersistenceError{Op: "list submissions", Err: err}
	}

	submissions := make([]models.Submission, 0, len(rows))
	for _, row := range rows {
		createdAt, _ := time.Parse(time.RFC3339Nano, row.CreatedAt)
		submissions = append(submissions, models.Submission{
			ID:           row.ID,
			Name:         row.Name,
			Contact:      row.Contact,
			Email:        row.Email,
			ProductLinks: decodeStringList(row.ProductLinks),
			ImageURLs:    decodeStringList(row.ImageURLs),
			CreatedAt:    createdAt,
			Status:       models.SubmissionStatus(row.Status),
		})
	}
	return submissions, nil
}

func encodeStringList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// decodeStringList never fails: an absent or malformed column yields an
// empty list so one bad row cannot break the whole listing.
func decodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	if list == nil {
		return []string{}
	}
	return list
}
