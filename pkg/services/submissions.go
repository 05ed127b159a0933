package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"doll-web/pkg/models"
)

// SubmissionRecord is one row of the local submission log.
type SubmissionRecord struct {
	ID             string
	Submission     models.ContactSubmission
	MarketingOptIn bool
	SavedToCMS     bool
	EmailSent      bool
	CreatedAt      time.Time
}

// SubmissionLog is a SQLite-backed record of contact submissions, kept so
// that nothing is lost when the CMS or SMTP are unavailable.
type SubmissionLog struct {
	db  *sql.DB
	now func() time.Time
}

var _ SubmissionRecorder = (*SubmissionLog)(nil)

func OpenSubmissionLog(path string) (*SubmissionLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One writer; also keeps ":memory:" databases on a single connection.
	db.SetMaxOpenConns(1)

	l := &SubmissionLog{db: db, now: time.Now}
	if err := l.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return l, nil
}

func (l *SubmissionLog) Close() error { return l.db.Close() }

func (l *SubmissionLog) migrate() error {
	_, err := l.db.Exec(`
CREATE TABLE IF NOT EXISTS submissions (
  id              TEXT PRIMARY KEY,
  first_name      TEXT NOT NULL,
  last_name       TEXT NOT NULL,
  email           TEXT NOT NULL,
  phone           TEXT,
  job_title       TEXT,
  company         TEXT,
  country         TEXT,
  message         TEXT,
  marketing_opt_in INTEGER NOT NULL DEFAULT 0,
  saved_to_cms    INTEGER NOT NULL DEFAULT 0,
  email_sent      INTEGER NOT NULL DEFAULT 0,
  created_at      INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at DESC);
`)
	return err
}

// Record inserts rec, filling in ID and CreatedAt when empty.
func (l *SubmissionLog) Record(ctx context.Context, rec SubmissionRecord) error {
	if rec.Submission.Email == "" {
		return errors.New("submission email required")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = l.now()
	}

	s := rec.Submission
	_, err := l.db.ExecContext(ctx, `
INSERT INTO submissions(id, first_name, last_name, email, phone, job_title, company, country, message,
                        marketing_opt_in, saved_to_cms, email_sent, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, rec.ID, s.FirstName, s.LastName, s.Email, s.Phone, s.JobTitle, s.Company, s.Country, s.Message,
		boolToInt(rec.MarketingOptIn), boolToInt(rec.SavedToCMS), boolToInt(rec.EmailSent), rec.CreatedAt.UnixMilli())
	return err
}

// Recent returns up to limit records, newest first.
func (l *SubmissionLog) Recent(ctx context.Context, limit int) ([]SubmissionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.QueryContext(ctx, `
SELECT id, first_name, last_name, email, phone, job_title, company, country, message,
       marketing_opt_in, saved_to_cms, email_sent, created_at
FROM submissions
ORDER BY created_at DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SubmissionRecord
	for rows.Next() {
		var (
			rec                                        SubmissionRecord
			phone, jobTitle, company, country, message sql.NullString
			optIn, saved, emailed                      int
			created                                    int64
		)
		if err := rows.Scan(&rec.ID, &rec.Submission.FirstName, &rec.Submission.LastName, &rec.Submission.Email,
			&phone, &jobTitle, &company, &country, &message, &optIn, &saved, &emailed, &created); err != nil {
			return nil, err
		}
		rec.Submission.Phone = nullToPtr(phone)
		rec.Submission.JobTitle = nullToPtr(jobTitle)
		rec.Submission.Company = nullToPtr(company)
		rec.Submission.Country = nullToPtr(country)
		rec.Submission.Message = nullToPtr(message)
		rec.MarketingOptIn = optIn == 1
		rec.SavedToCMS = saved == 1
		rec.EmailSent = emailed == 1
		rec.CreatedAt = time.UnixMilli(created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
