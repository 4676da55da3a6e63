package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dtroode/attendance-server/internal/model"
)

var _ model.Directory = (*Directory)(nil)

// Directory is an in-process course directory.
type Directory struct {
	mu          sync.RWMutex
	faculty     map[int64]map[int64]struct{}
	enrollments map[int64]map[int64]struct{}
}

func NewDirectory() *Directory {
	return &Directory{
		faculty:     make(map[int64]map[int64]struct{}),
		enrollments: make(map[int64]map[int64]struct{}),
	}
}

// AddCourse binds presenters to a course.
func (d *Directory) AddCourse(courseID int64, facultyIDs ...int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	add(d.faculty, courseID, facultyIDs)
}

// Enroll adds subjects to a course.
func (d *Directory) Enroll(courseID int64, subjectIDs ...int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	add(d.enrollments, courseID, subjectIDs)
}

func (d *Directory) IsEnrolled(_ context.Context, subjectID, courseID int64) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.enrollments[courseID][subjectID]
	return ok, nil
}

func (d *Directory) TeachesCourse(_ context.Context, presenterID, courseID int64) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.faculty[courseID][presenterID]
	return ok, nil
}

func (d *Directory) CourseFaculty(_ context.Context, courseID int64) ([]int64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return sorted(d.faculty[courseID]), nil
}

func (d *Directory) EnrolledSubjects(_ context.Context, courseID int64) ([]int64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return sorted(d.enrollments[courseID]), nil
}

func add(m map[int64]map[int64]struct{}, courseID int64, ids []int64) {
	set, ok := m[courseID]
	if !ok {
		set = make(map[int64]struct{})
		m[courseID] = set
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
}

func sorted(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
