package usecase

import (
	"context"
	"strings"

	"eduportal-backend/internal/domain"
	"eduportal-backend/pkg/utils"

	"github.com/pkg/errors"
)

type userUsecase struct {
	userRepo domain.UserRepository
}

func NewUserUsecase(ur domain.UserRepository) domain.UserUsecase {
	return &userUsecase{userRepo: ur}
}

func (uc *userUsecase) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return uc.userRepo.GetAll(ctx)
}

func (uc *userUsecase) GetStudents(ctx context.Context) ([]domain.User, error) {
	return uc.userRepo.GetByRole(ctx, domain.RoleStudent)
}

// CreateUser stores an account of any role. Used by the seed and the
// operator CLI; public registration goes through AuthUsecase.Register.
func (uc *userUsecase) CreateUser(ctx context.Context, user *domain.User, password string) error {
	user.Email = normalizeEmail(user.Email)
	if user.Email == "" || password == "" {
		return domain.Validation("Email y contraseña son obligatorios")
	}
	if !user.Role.Valid() {
		return domain.Validation("Rol inválido")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return domain.Backend(errors.Wrap(err, "hashing password"))
	}
	user.Password = hashed
	if user.Avatar == "" {
		user.Avatar = DefaultAvatar
	}
	if user.EnrolledCourses == nil {
		user.EnrolledCourses = []string{}
	}
	if user.Progress == nil {
		user.Progress = map[string]domain.CourseProgress{}
	}
	user.Name = strings.TrimSpace(user.Name)
	return uc.userRepo.Create(ctx, user)
}

func (uc *userUsecase) UpdateAccess(ctx context.Context, id string, patch domain.AccessPatch) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Role != nil {
		if !patch.Role.Valid() {
			return nil, domain.Validation("Rol inválido")
		}
		user.Role = *patch.Role
	}
	if patch.Views != nil {
		for _, v := range *patch.Views {
			if !v.Valid() {
				return nil, domain.Validation("Vista desconocida: " + string(v))
			}
		}
		if len(*patch.Views) == 0 {
			user.Permissions = nil
		} else {
			views := append([]domain.ViewID(nil), *patch.Views...)
			user.Permissions = &domain.Permissions{Views: views}
		}
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
