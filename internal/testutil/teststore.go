package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"eduportal-backend/internal/domain"
	"eduportal-backend/internal/repository"
	"eduportal-backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

func init() {
	utils.HashCost = bcrypt.MinCost
}

// NewTestStore opens a bbolt store in a temp directory. The store is closed
// when the test completes.
func NewTestStore(t *testing.T) *repository.BoltStore {
	t.Helper()
	store, err := repository.OpenBolt(filepath.Join(t.TempDir(), "eduportal.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// FailingCourseUpdateUoW runs transactions on Store but makes every course
// update inside them fail with Err.
type FailingCourseUpdateUoW struct {
	Store *repository.BoltStore
	Err   error
}

func (u *FailingCourseUpdateUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	return u.Store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		repos.Courses = &failingCourseUpdate{CourseRepository: repos.Courses, err: u.Err}
		return fn(ctx, repos)
	})
}

type failingCourseUpdate struct {
	domain.CourseRepository
	err error
}

func (f *failingCourseUpdate) Update(ctx context.Context, course *domain.Course) error {
	return f.err
}
