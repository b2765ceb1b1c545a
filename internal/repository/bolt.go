package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"eduportal-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

var (
	usersBucket   = []byte("users")
	coursesBucket = []byte("courses")
	newsBucket    = []byte("news")
)

// BoltStore keeps every collection as a bucket of JSON documents keyed by id.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBolt opens (or creates) the bbolt file at path and its buckets.
func OpenBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating bolt directory")
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening bolt file %s", path)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{usersBucket, coursesBucket, newsBucket} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating bolt buckets")
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Repositories() domain.Repositories {
	return boltRepositories(&boltScope{db: s.db})
}

func (s *BoltStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return fn(ctx, boltRepositories(&boltScope{db: s.db, tx: tx}))
	})
	return err
}

func boltRepositories(scope *boltScope) domain.Repositories {
	return domain.Repositories{
		Users:   &boltUserRepo{scope},
		Courses: &boltCourseRepo{scope},
		News:    &boltNewsRepo{scope},
	}
}

// boltScope runs reads and writes either in their own transaction or in the
// one opened by WithinTx.
type boltScope struct {
	db *bbolt.DB
	tx *bbolt.Tx
}

func (s *boltScope) view(fn func(tx *bbolt.Tx) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	return s.db.View(fn)
}

func (s *boltScope) update(fn func(tx *bbolt.Tx) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	return s.db.Update(fn)
}

// ========== GENERIC DOCUMENT HELPERS ==========

func getDoc[T any](tx *bbolt.Tx, bucket []byte, key string) (*T, error) {
	v := tx.Bucket(bucket).Get([]byte(key))
	if v == nil {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(v, &out); err != nil {
		return nil, errors.Wrapf(err, "decoding %s/%s", bucket, key)
	}
	return &out, nil
}

func putDoc[T any](tx *bbolt.Tx, bucket []byte, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encoding %s/%s", bucket, key)
	}
	return tx.Bucket(bucket).Put([]byte(key), data)
}

func listDocs[T any](tx *bbolt.Tx, bucket []byte, keep func(T) bool) ([]T, error) {
	var out []T
	err := tx.Bucket(bucket).ForEach(func(k, v []byte) error {
		var doc T
		if err := json.Unmarshal(v, &doc); err != nil {
			return errors.Wrapf(err, "decoding %s/%s", bucket, k)
		}
		if keep == nil || keep(doc) {
			out = append(out, doc)
		}
		return nil
	})
	return out, err
}

// ========== USER REPOSITORY ==========

type boltUserRepo struct {
	s *boltScope
}

func (r *boltUserRepo) Create(ctx context.Context, user *domain.User) error {
	prepareCreate(&user.ID, &user.Version, &user.CreatedAt, &user.UpdatedAt)
	err := r.s.update(func(tx *bbolt.Tx) error {
		taken, err := listDocs(tx, usersBucket, func(d userDocument) bool { return d.Email == user.Email })
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return domain.ErrEmailTaken
		}
		return putDoc(tx, usersBucket, user.ID, newUserDocument(*user))
	})
	return domain.Backend(err)
}

func (r *boltUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var doc *userDocument
	err := r.s.view(func(tx *bbolt.Tx) error {
		var err error
		doc, err = getDoc[userDocument](tx, usersBucket, id)
		return err
	})
	if err != nil {
		return nil, domain.Backend(err)
	}
	if doc == nil {
		return nil, domain.ErrUserNotFound
	}
	user := doc.user()
	return &user, nil
}

func (r *boltUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.filter(func(u domain.User) bool { return u.Email == email })
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return &users[0], nil
}

func (r *boltUserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	return r.filter(nil)
}

func (r *boltUserRepo) GetByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return r.filter(func(u domain.User) bool { return u.Role == role })
}

func (r *boltUserRepo) filter(keep func(domain.User) bool) ([]domain.User, error) {
	var docs []userDocument
	err := r.s.view(func(tx *bbolt.Tx) error {
		var err error
		docs, err = listDocs(tx, usersBucket, func(d userDocument) bool {
			return keep == nil || keep(d.User)
		})
		return err
	})
	if err != nil {
		return nil, domain.Backend(err)
	}
	users := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.user())
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (r *boltUserRepo) Update(ctx context.Context, user *domain.User) error {
	err := r.s.update(func(tx *bbolt.Tx) error {
		current, err := getDoc[userDocument](tx, usersBucket, user.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrUserNotFound
		}
		if current.Version != user.Version {
			return domain.ErrStaleDocument
		}
		next := *user
		next.Version++
		next.UpdatedAt = time.Now().UTC()
		if err := putDoc(tx, usersBucket, next.ID, newUserDocument(next)); err != nil {
			return err
		}
		*user = next
		return nil
	})
	return domain.Backend(err)
}

// ========== COURSE REPOSITORY ==========

type boltCourseRepo struct {
	s *boltScope
}

func (r *boltCourseRepo) Create(ctx context.Context, course *domain.Course) error {
	prepareCreate(&course.ID, &course.Version, &course.CreatedAt, &course.UpdatedAt)
	err := r.s.update(func(tx *bbolt.Tx) error {
		return putDoc(tx, coursesBucket, course.ID, course)
	})
	return domain.Backend(err)
}

func (r *boltCourseRepo) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	var course *domain.Course
	err := r.s.view(func(tx *bbolt.Tx) error {
		var err error
		course, err = getDoc[domain.Course](tx, coursesBucket, id)
		return err
	})
	if err != nil {
		return nil, domain.Backend(err)
	}
	if course == nil {
		return nil, domain.ErrCourseNotFound
	}
	return course, nil
}

func (r *boltCourseRepo) GetAll(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	err := r.s.view(func(tx *bbolt.Tx) error {
		var err error
		courses, err = listDocs[domain.Course](tx, coursesBucket, nil)
		return err
	})
	if err != nil {
		return nil, domain.Backend(err)
	}
	sort.SliceStable(courses, func(i, j int) bool { return courses[i].CreatedAt.After(courses[j].CreatedAt) })
	return courses, nil
}

func (r *boltCourseRepo) Update(ctx context.Context, course *domain.Course) error {
	err := r.s.update(func(tx *bbolt.Tx) error {
		current, err := getDoc[domain.Course](tx, coursesBucket, course.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrCourseNotFound
		}
		if current.Version != course.Version {
			return domain.ErrStaleDocument
		}
		next := *course
		next.Version++
		next.UpdatedAt = time.Now().UTC()
		if err := putDoc(tx, coursesBucket, next.ID, next); err != nil {
			return err
		}
		*course = next
		return nil
	})
	return domain.Backend(err)
}

func (r *boltCourseRepo) Delete(ctx context.Context, id string) error {
	err := r.s.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(coursesBucket)
		if b.Get([]byte(id)) == nil {
			return domain.ErrCourseNotFound
		}
		return b.Delete([]byte(id))
	})
	return domain.Backend(err)
}

func (r *boltCourseRepo) Count(ctx context.Context) (int64, error) {
	var n int
	err := r.s.view(func(tx *bbolt.Tx) error {
		n = tx.Bucket(coursesBucket).Stats().KeyN
		return nil
	})
	return int64(n), domain.Backend(err)
}

// ========== NEWS REPOSITORY ==========

type boltNewsRepo struct {
	s *boltScope
}

func (r *boltNewsRepo) Create(ctx context.Context, news *domain.News) error {
	prepareCreate(&news.ID, &news.Version, &news.CreatedAt, &news.UpdatedAt)
	err := r.s.update(func(tx *bbolt.Tx) error {
		return putDoc(tx, newsBucket, news.ID, news)
	})
	return domain.Backend(err)
}

func (r *boltNewsRepo) GetByID(ctx context.Context, id string) (*domain.News, error) {
	var news *domain.News
	err := r.s.view(func(tx *bbolt.Tx) error {
		var err error
		news, err = getDoc[domain.News](tx, newsBucket, id)
		return err
	})
	if err != nil {
		return nil, domain.Backend(err)
	}
	if news == nil {
		return nil, domain.ErrNewsNotFound
	}
	return news, nil
}

func (r *boltNewsRepo) GetAll(ctx context.Context) ([]domain.News, error) {
	var items []domain.News
	err := r.s.view(func(tx *bbolt.Tx) error {
		var err error
		items, err = listDocs[domain.News](tx, newsBucket, nil)
		return err
	})
	if err != nil {
		return nil, domain.Backend(err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (r *boltNewsRepo) Update(ctx context.Context, news *domain.News) error {
	err := r.s.update(func(tx *bbolt.Tx) error {
		current, err := getDoc[domain.News](tx, newsBucket, news.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNewsNotFound
		}
		if current.Version != news.Version {
			return domain.ErrStaleDocument
		}
		next := *news
		next.Version++
		next.UpdatedAt = time.Now().UTC()
		if err := putDoc(tx, newsBucket, next.ID, next); err != nil {
			return err
		}
		*news = next
		return nil
	})
	return domain.Backend(err)
}

func (r *boltNewsRepo) Delete(ctx context.Context, id string) error {
	err := r.s.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(newsBucket)
		if b.Get([]byte(id)) == nil {
			return domain.ErrNewsNotFound
		}
		return b.Delete([]byte(id))
	})
	return domain.Backend(err)
}

// prepareCreate fills the bookkeeping fields shared by every document.
func prepareCreate(id *string, version *int64, createdAt, updatedAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	*version = 1
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
