package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Get returns the user's record.
func (r *PGRepo) Get(ctx context.Context, userID string) (Record, error) {
	const query = `
SELECT file, file_content, resume_data
FROM resumes
WHERE user_id = $1`
	var (
		fileJSON   []byte
		content    sql.NullString
		resumeJSON []byte
		rec        Record
	)
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&fileJSON, &content, &resumeJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	if len(fileJSON) > 0 {
		var f File
		if err := json.Unmarshal(fileJSON, &f); err != nil {
			return Record{}, fmt.Errorf("decode file: %w", err)
		}
		rec.File = &f
	}
	if content.Valid {
		text := content.String
		rec.FileContent = &text
	}
	if len(resumeJSON) > 0 {
		var data ResumeData
		if err := json.Unmarshal(resumeJSON, &data); err != nil {
			return Record{}, fmt.Errorf("decode resume data: %w", err)
		}
		rec.ResumeData = &data
	}
	return rec, nil
}

// Store upserts the whole record.
func (r *PGRepo) Store(ctx context.Context, userID string, rec Record) error {
	const query = `
INSERT INTO resumes (user_id, file, file_content, resume_data, updated_at)
VALUES ($1, $2::jsonb, $3, $4::jsonb, now())
ON CONFLICT (user_id) DO UPDATE SET
    file = EXCLUDED.file,
    file_content = EXCLUDED.file_content,
    resume_data = EXCLUDED.resume_data,
    updated_at = now()`

	fileArg, err := jsonArg(rec.File)
	if err != nil {
		return fmt.Errorf("encode file: %w", err)
	}
	var contentArg sql.NullString
	if rec.FileContent != nil {
		contentArg = sql.NullString{String: *rec.FileContent, Valid: true}
	}
	resumeArg, err := jsonArg(rec.ResumeData)
	if err != nil {
		return fmt.Errorf("encode resume data: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, query, userID, fileArg, contentArg, resumeArg)
	return err
}

func jsonArg[T any](v *T) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}
