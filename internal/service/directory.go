package service

import (
	"context"
	"time"

	"github.com/dtroode/attendance-server/internal/model"
)

var _ model.Directory = (*BoundedDirectory)(nil)

// BoundedDirectory limits every directory call to a fixed timeout.
type BoundedDirectory struct {
	inner   model.Directory
	timeout time.Duration
}

func NewBoundedDirectory(inner model.Directory, timeout time.Duration) *BoundedDirectory {
	return &BoundedDirectory{inner: inner, timeout: timeout}
}

func (d *BoundedDirectory) IsEnrolled(ctx context.Context, subjectID, courseID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.inner.IsEnrolled(ctx, subjectID, courseID)
}

func (d *BoundedDirectory) TeachesCourse(ctx context.Context, presenterID, courseID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.inner.TeachesCourse(ctx, presenterID, courseID)
}

func (d *BoundedDirectory) CourseFaculty(ctx context.Context, courseID int64) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.inner.CourseFaculty(ctx, courseID)
}

func (d *BoundedDirectory) EnrolledSubjects(ctx context.Context, courseID int64) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.inner.EnrolledSubjects(ctx, courseID)
}
