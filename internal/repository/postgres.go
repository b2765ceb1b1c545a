package repository

import (
	"context"
	"errors"
	"time"

	"eduportal-backend/internal/domain"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Each table keeps the whole document in a JSONB column. The columns next to
// it exist for lookups and for the version check on update.

type userRecord struct {
	ID        string `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex"`
	Role      string `gorm:"index"`
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Doc       datatypes.JSONType[userDocument]
}

func (userRecord) TableName() string { return "users" }

type courseRecord struct {
	ID        string `gorm:"primaryKey"`
	Version   int64
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	Doc       datatypes.JSONType[domain.Course]
}

func (courseRecord) TableName() string { return "courses" }

type newsRecord struct {
	ID        string `gorm:"primaryKey"`
	Version   int64
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	Doc       datatypes.JSONType[domain.News]
}

func (newsRecord) TableName() string { return "news" }

// PostgresStore persists documents through gorm.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&userRecord{}, &courseRecord{}, &newsRecord{}); err != nil {
		return nil, pkgerrors.Wrap(err, "migrating postgres tables")
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Repositories() domain.Repositories {
	return postgresRepositories(s.db)
}

func (s *PostgresStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, postgresRepositories(tx))
	})
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func postgresRepositories(db *gorm.DB) domain.Repositories {
	return domain.Repositories{
		Users:   NewUserRepository(db),
		Courses: NewCourseRepository(db),
		News:    NewNewsRepository(db),
	}
}

// ========== USER REPOSITORY ==========

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	prepareCreate(&user.ID, &user.Version, &user.CreatedAt, &user.UpdatedAt)
	rec := userRecord{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		Version:   user.Version,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		Doc:       datatypes.NewJSONType(newUserDocument(*user)),
	}
	err := r.db.WithContext(ctx).Create(&rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailTaken
	}
	return domain.Backend(pkgerrors.Wrap(err, "creating user"))
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepo) first(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Where(query, arg).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, domain.Backend(pkgerrors.Wrap(err, "loading user"))
	}
	user := rec.Doc.Data().user()
	return &user, nil
}

func (r *userRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	var recs []userRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, domain.Backend(pkgerrors.Wrap(err, "listing users"))
	}
	return userDocs(recs), nil
}

func (r *userRepo) GetByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	var recs []userRecord
	err := r.db.WithContext(ctx).Where("role = ?", role).Order("created_at ASC").Find(&recs).Error
	if err != nil {
		return nil, domain.Backend(pkgerrors.Wrap(err, "listing users by role"))
	}
	return userDocs(recs), nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	next := *user
	next.Version++
	next.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&userRecord{}).
		Where("id = ? AND version = ?", user.ID, user.Version).
		Updates(map[string]interface{}{
			"email":      next.Email,
			"role":       string(next.Role),
			"version":    next.Version,
			"updated_at": next.UpdatedAt,
			"doc":        datatypes.NewJSONType(newUserDocument(next)),
		})
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailTaken
	}
	if res.Error != nil {
		return domain.Backend(pkgerrors.Wrap(res.Error, "updating user"))
	}
	if res.RowsAffected == 0 {
		return missingOrStale(r.db.WithContext(ctx), &userRecord{}, user.ID, domain.ErrUserNotFound)
	}
	*user = next
	return nil
}

func userDocs(recs []userRecord) []domain.User {
	users := make([]domain.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, rec.Doc.Data().user())
	}
	return users
}

// ========== COURSE REPOSITORY ==========

type courseRepo struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) domain.CourseRepository {
	return &courseRepo{db}
}

func (r *courseRepo) Create(ctx context.Context, course *domain.Course) error {
	prepareCreate(&course.ID, &course.Version, &course.CreatedAt, &course.UpdatedAt)
	rec := courseRecord{
		ID:        course.ID,
		Version:   course.Version,
		CreatedAt: course.CreatedAt,
		UpdatedAt: course.UpdatedAt,
		Doc:       datatypes.NewJSONType(*course),
	}
	return domain.Backend(pkgerrors.Wrap(r.db.WithContext(ctx).Create(&rec).Error, "creating course"))
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	var rec courseRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCourseNotFound
	}
	if err != nil {
		return nil, domain.Backend(pkgerrors.Wrap(err, "loading course"))
	}
	course := rec.Doc.Data()
	return &course, nil
}

func (r *courseRepo) GetAll(ctx context.Context) ([]domain.Course, error) {
	var recs []courseRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, domain.Backend(pkgerrors.Wrap(err, "listing courses"))
	}
	courses := make([]domain.Course, 0, len(recs))
	for _, rec := range recs {
		courses = append(courses, rec.Doc.Data())
	}
	return courses, nil
}

func (r *courseRepo) Update(ctx context.Context, course *domain.Course) error {
	next := *course
	next.Version++
	next.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&courseRecord{}).
		Where("id = ? AND version = ?", course.ID, course.Version).
		Updates(map[string]interface{}{
			"version":    next.Version,
			"updated_at": next.UpdatedAt,
			"doc":        datatypes.NewJSONType(next),
		})
	if res.Error != nil {
		return domain.Backend(pkgerrors.Wrap(res.Error, "updating course"))
	}
	if res.RowsAffected == 0 {
		return missingOrStale(r.db.WithContext(ctx), &courseRecord{}, course.ID, domain.ErrCourseNotFound)
	}
	*course = next
	return nil
}

func (r *courseRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&courseRecord{}, "id = ?", id)
	if res.Error != nil {
		return domain.Backend(pkgerrors.Wrap(res.Error, "deleting course"))
	}
	if res.RowsAffected == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *courseRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&courseRecord{}).Count(&count).Error
	return count, domain.Backend(pkgerrors.Wrap(err, "counting courses"))
}

// ========== NEWS REPOSITORY ==========

type newsRepo struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) domain.NewsRepository {
	return &newsRepo{db}
}

func (r *newsRepo) Create(ctx context.Context, news *domain.News) error {
	prepareCreate(&news.ID, &news.Version, &news.CreatedAt, &news.UpdatedAt)
	rec := newsRecord{
		ID:        news.ID,
		Version:   news.Version,
		CreatedAt: news.CreatedAt,
		UpdatedAt: news.UpdatedAt,
		Doc:       datatypes.NewJSONType(*news),
	}
	return domain.Backend(pkgerrors.Wrap(r.db.WithContext(ctx).Create(&rec).Error, "creating news"))
}

func (r *newsRepo) GetByID(ctx context.Context, id string) (*domain.News, error) {
	var rec newsRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNewsNotFound
	}
	if err != nil {
		return nil, domain.Backend(pkgerrors.Wrap(err, "loading news"))
	}
	news := rec.Doc.Data()
	return &news, nil
}

func (r *newsRepo) GetAll(ctx context.Context) ([]domain.News, error) {
	var recs []newsRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, domain.Backend(pkgerrors.Wrap(err, "listing news"))
	}
	items := make([]domain.News, 0, len(recs))
	for _, rec := range recs {
		items = append(items, rec.Doc.Data())
	}
	return items, nil
}

func (r *newsRepo) Update(ctx context.Context, news *domain.News) error {
	next := *news
	next.Version++
	next.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&newsRecord{}).
		Where("id = ? AND version = ?", news.ID, news.Version).
		Updates(map[string]interface{}{
			"version":    next.Version,
			"updated_at": next.UpdatedAt,
			"doc":        datatypes.NewJSONType(next),
		})
	if res.Error != nil {
		return domain.Backend(pkgerrors.Wrap(res.Error, "updating news"))
	}
	if res.RowsAffected == 0 {
		return missingOrStale(r.db.WithContext(ctx), &newsRecord{}, news.ID, domain.ErrNewsNotFound)
	}
	*news = next
	return nil
}

func (r *newsRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&newsRecord{}, "id = ?", id)
	if res.Error != nil {
		return domain.Backend(pkgerrors.Wrap(res.Error, "deleting news"))
	}
	if res.RowsAffected == 0 {
		return domain.ErrNewsNotFound
	}
	return nil
}

// missingOrStale tells apart a vanished row from a version mismatch after an
// update matched nothing.
func missingOrStale(db *gorm.DB, model interface{}, id string, notFound error) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return domain.Backend(pkgerrors.Wrap(err, "checking document"))
	}
	if count == 0 {
		return notFound
	}
	return domain.ErrStaleDocument
}
