package model

import "context"

// Directory answers course membership questions owned by the campus ERP.
type Directory interface {
	IsEnrolled(ctx context.Context, subjectID, courseID int64) (bool, error)
	TeachesCourse(ctx context.Context, presenterID, courseID int64) (bool, error)
	CourseFaculty(ctx context.Context, courseID int64) ([]int64, error)
	EnrolledSubjects(ctx context.Context, courseID int64) ([]int64, error)
}
