package usecase

import (
	"context"
	"strings"
	"time"

	"eduportal-backend/internal/domain"
	"eduportal-backend/pkg/utils"

	"github.com/pkg/errors"
)

// DefaultAvatar is given to accounts created through registration.
const DefaultAvatar = "👤"

// SessionConfig controls the tokens handed out by Login.
type SessionConfig struct {
	Secret []byte
	TTL    time.Duration
}

type authUsecase struct {
	userRepo domain.UserRepository
	session  SessionConfig
}

func NewAuthUsecase(ur domain.UserRepository, session SessionConfig) domain.AuthUsecase {
	if session.TTL <= 0 {
		session.TTL = 24 * time.Hour
	}
	return &authUsecase{userRepo: ur, session: session}
}

func (uc *authUsecase) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.Name) == "" || in.Password == "" {
		return nil, domain.Validation("Nombre, email y contraseña son obligatorios")
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, domain.Backend(errors.Wrap(err, "hashing password"))
	}

	user := &domain.User{
		Email:           email,
		Password:        hashed,
		Name:            strings.TrimSpace(in.Name),
		Role:            domain.RoleStudent,
		Avatar:          DefaultAvatar,
		EnrolledCourses: []string{},
		Progress:        map[string]domain.CourseProgress{},
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *authUsecase) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, domain.ErrWrongPassword
	}

	token, expiresAt, err := utils.GenerateJWT(uc.session.Secret, user.ID, string(user.Role), uc.session.TTL)
	if err != nil {
		return nil, domain.Backend(errors.Wrap(err, "signing session token"))
	}
	return &domain.LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (uc *authUsecase) ParseSession(token string) (*domain.Session, error) {
	claims, err := utils.ValidateJWT(uc.session.Secret, token)
	if err != nil {
		return nil, domain.Validation("Sesión inválida o expirada")
	}
	return &domain.Session{UserID: claims.UserID, Role: domain.Role(claims.Role)}, nil
}

func (uc *authUsecase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *authUsecase) UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Avatar != nil && *patch.Avatar != "" {
		user.Avatar = *patch.Avatar
	}
	if patch.Password != nil && *patch.Password != "" {
		hashed, err := utils.HashPassword(*patch.Password)
		if err != nil {
			return nil, domain.Backend(errors.Wrap(err, "hashing password"))
		}
		user.Password = hashed
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
