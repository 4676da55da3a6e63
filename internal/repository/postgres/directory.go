package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dtroode/attendance-server/internal/model"
)

var _ model.Directory = (*Directory)(nil)

// Directory reads courses and enrollments from the ERP database.
type Directory struct {
	db *sql.DB
}

// OpenDirectory connects to the ERP database through the pgx stdlib driver.
func OpenDirectory(ctx context.Context, dsn string) (*Directory, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping directory database: %w", err)
	}
	return NewDirectory(db), nil
}

func NewDirectory(db *sql.DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) Close() error {
	return d.db.Close()
}

func (d *Directory) IsEnrolled(ctx context.Context, subjectID, courseID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`

	var ok bool
	if err := d.db.QueryRowContext(ctx, query, subjectID, courseID).Scan(&ok); err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return ok, nil
}

func (d *Directory) TeachesCourse(ctx context.Context, presenterID, courseID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM courses WHERE id = $1 AND faculty_id = $2)`

	var ok bool
	if err := d.db.QueryRowContext(ctx, query, courseID, presenterID).Scan(&ok); err != nil {
		return false, fmt.Errorf("failed to check course faculty: %w", err)
	}
	return ok, nil
}

func (d *Directory) CourseFaculty(ctx context.Context, courseID int64) ([]int64, error) {
	const query = `SELECT faculty_id FROM courses WHERE id = $1`
	return d.ids(ctx, query, courseID)
}

func (d *Directory) EnrolledSubjects(ctx context.Context, courseID int64) ([]int64, error) {
	const query = `SELECT student_id FROM enrollments WHERE course_id = $1 ORDER BY student_id`
	return d.ids(ctx, query, courseID)
}

func (d *Directory) ids(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query directory: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
