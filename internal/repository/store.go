package repository

import "eduportal-backend/internal/domain"

// Store is one of the persistence drivers: bolt, mongo or postgres.
type Store interface {
	domain.UnitOfWork
	Repositories() domain.Repositories
	Close() error
}

var (
	_ Store = (*BoltStore)(nil)
	_ Store = (*MongoStore)(nil)
	_ Store = (*PostgresStore)(nil)
)

// userDocument is the stored form of a user. domain.User keeps the password
// hash out of its JSON encoding, so the hash is persisted in its own field.
type userDocument struct {
	domain.User
	PasswordHash string `json:"password_hash"`
}

func newUserDocument(u domain.User) userDocument {
	return userDocument{User: u, PasswordHash: u.Password}
}

func (d userDocument) user() domain.User {
	u := d.User
	u.Password = d.PasswordHash
	return u
}
