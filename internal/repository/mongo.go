package repository

import (
	"context"
	"time"

	"eduportal-backend/internal/domain"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection   = "users"
	coursesCollection = "courses"
	newsCollection    = "news"
)

// MongoStore keeps one document per entity, mirroring the shape the portal
// stores in its collections.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(ctx context.Context, client *mongo.Client, dbName string) (*MongoStore, error) {
	db := client.Database(dbName)
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating email index")
	}
	return &MongoStore{client: client, db: db}, nil
}

func (s *MongoStore) Repositories() domain.Repositories {
	return mongoRepositories(s.db)
}

// WithinTx needs a replica set; a standalone server rejects the session.
func (s *MongoStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return domain.Backend(errors.Wrap(err, "starting mongo session"))
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, mongoRepositories(s.db))
	})
	return err
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func mongoRepositories(db *mongo.Database) domain.Repositories {
	return domain.Repositories{
		Users:   &mongoUserRepo{db.Collection(usersCollection)},
		Courses: &mongoCourseRepo{db.Collection(coursesCollection)},
		News:    &mongoNewsRepo{db.Collection(newsCollection)},
	}
}

// ========== USER REPOSITORY ==========

type mongoUserRepo struct {
	coll *mongo.Collection
}

func (r *mongoUserRepo) Create(ctx context.Context, user *domain.User) error {
	prepareCreate(&user.ID, &user.Version, &user.CreatedAt, &user.UpdatedAt)
	_, err := r.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrEmailTaken
	}
	return domain.Backend(errors.Wrap(err, "inserting user"))
}

func (r *mongoUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.coll, bson.M{"_id": id}, domain.ErrUserNotFound)
}

func (r *mongoUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.coll, bson.M{"email": email}, domain.ErrUserNotFound)
}

func (r *mongoUserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	return findAll[domain.User](ctx, r.coll, bson.M{}, 1)
}

func (r *mongoUserRepo) GetByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return findAll[domain.User](ctx, r.coll, bson.M{"role": role}, 1)
}

func (r *mongoUserRepo) Update(ctx context.Context, user *domain.User) error {
	next := *user
	next.Version++
	next.UpdatedAt = time.Now().UTC()
	err := replaceVersioned(ctx, r.coll, user.ID, user.Version, next, domain.ErrUserNotFound)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return err
	}
	*user = next
	return nil
}

// ========== COURSE REPOSITORY ==========

type mongoCourseRepo struct {
	coll *mongo.Collection
}

func (r *mongoCourseRepo) Create(ctx context.Context, course *domain.Course) error {
	prepareCreate(&course.ID, &course.Version, &course.CreatedAt, &course.UpdatedAt)
	_, err := r.coll.InsertOne(ctx, course)
	return domain.Backend(errors.Wrap(err, "inserting course"))
}

func (r *mongoCourseRepo) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	return findOne[domain.Course](ctx, r.coll, bson.M{"_id": id}, domain.ErrCourseNotFound)
}

func (r *mongoCourseRepo) GetAll(ctx context.Context) ([]domain.Course, error) {
	return findAll[domain.Course](ctx, r.coll, bson.M{}, -1)
}

func (r *mongoCourseRepo) Update(ctx context.Context, course *domain.Course) error {
	next := *course
	next.Version++
	next.UpdatedAt = time.Now().UTC()
	if err := replaceVersioned(ctx, r.coll, course.ID, course.Version, next, domain.ErrCourseNotFound); err != nil {
		return err
	}
	*course = next
	return nil
}

func (r *mongoCourseRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, domain.ErrCourseNotFound)
}

func (r *mongoCourseRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	return n, domain.Backend(errors.Wrap(err, "counting courses"))
}

// ========== NEWS REPOSITORY ==========

type mongoNewsRepo struct {
	coll *mongo.Collection
}

func (r *mongoNewsRepo) Create(ctx context.Context, news *domain.News) error {
	prepareCreate(&news.ID, &news.Version, &news.CreatedAt, &news.UpdatedAt)
	_, err := r.coll.InsertOne(ctx, news)
	return domain.Backend(errors.Wrap(err, "inserting news"))
}

func (r *mongoNewsRepo) GetByID(ctx context.Context, id string) (*domain.News, error) {
	return findOne[domain.News](ctx, r.coll, bson.M{"_id": id}, domain.ErrNewsNotFound)
}

func (r *mongoNewsRepo) GetAll(ctx context.Context) ([]domain.News, error) {
	return findAll[domain.News](ctx, r.coll, bson.M{}, -1)
}

func (r *mongoNewsRepo) Update(ctx context.Context, news *domain.News) error {
	next := *news
	next.Version++
	next.UpdatedAt = time.Now().UTC()
	if err := replaceVersioned(ctx, r.coll, news.ID, news.Version, next, domain.ErrNewsNotFound); err != nil {
		return err
	}
	*news = next
	return nil
}

func (r *mongoNewsRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, domain.ErrNewsNotFound)
}

// ========== COLLECTION HELPERS ==========

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, notFound error) (*T, error) {
	var out T
	err := coll.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound
	}
	if err != nil {
		return nil, domain.Backend(errors.Wrapf(err, "finding in %s", coll.Name()))
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, order int) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: order}})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, domain.Backend(errors.Wrapf(err, "listing %s", coll.Name()))
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, domain.Backend(errors.Wrapf(err, "decoding %s", coll.Name()))
	}
	return out, nil
}

func replaceVersioned(ctx context.Context, coll *mongo.Collection, id string, version int64, doc interface{}, notFound error) error {
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": id, "version": version}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return err
		}
		return domain.Backend(errors.Wrapf(err, "replacing in %s", coll.Name()))
	}
	if res.MatchedCount > 0 {
		return nil
	}
	n, err := coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return domain.Backend(errors.Wrapf(err, "checking %s", coll.Name()))
	}
	if n == 0 {
		return notFound
	}
	return domain.ErrStaleDocument
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string, notFound error) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return domain.Backend(errors.Wrapf(err, "deleting from %s", coll.Name()))
	}
	if res.DeletedCount == 0 {
		return notFound
	}
	return nil
}
