package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/airsense/platform/internal/models"
	"github.com/airsense/platform/internal/policy"
	"github.com/airsense/platform/internal/repository"
	appErr "github.com/airsense/platform/pkg/errors"
)

// CreateUserInput is the payload for direct (admin-shaped) user creation.
// Unlike self-registration it carries an explicit user type and skips the
// email-verification gate.
type CreateUserInput struct {
	Name       string
	Surname1   string
	Surname2   string
	Email      string
	Telephone  string
	Password   string
	UserTypeID uint
}

type UserService interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, in CreateUserInput) (*models.User, error)
	Update(ctx context.Context, upd models.UserUpdate) error
	DeleteByEmail(ctx context.Context, email string) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.users.GetByEmail(ctx, email, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.users.GetByID(ctx, id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if in.Name == "" || in.Surname1 == "" || in.Email == "" || in.Telephone == "" || in.Password == "" {
		return nil, appErr.New(appErr.CodeInvalid, "missing required fields")
	}
	if !policy.ValidEmail(in.Email) {
		return nil, appErr.New(appErr.CodeInvalid, "invalid email")
	}
	if !policy.ValidTelephone(in.Telephone) {
		return nil, appErr.New(appErr.CodeInvalid, "invalid telephone")
	}
	if !policy.ValidPassword(in.Password) {
		return nil, appErr.New(appErr.CodeInvalid, "password does not meet the policy")
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, appErr.New(appErr.CodeConflict, "user already exists")
	}

	ph, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}

	userType := in.UserTypeID
	if userType == 0 {
		userType = models.UserTypeRegular
	}
	user := models.User{
		Name:         in.Name,
		Surname1:     in.Surname1,
		Surname2:     in.Surname2,
		Email:        in.Email,
		Telephone:    in.Telephone,
		PasswordHash: string(ph),
		UserTypeID:   userType,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies a partial update: only non-nil fields change. An update
// carrying no recognized field fails instead of silently succeeding.
func (s *userService) Update(ctx context.Context, upd models.UserUpdate) error {
	if upd.ID == 0 {
		return appErr.New(appErr.CodeInvalid, "user id is required")
	}
	if upd.Empty() {
		return appErr.New(appErr.CodeInvalid, "nothing to update")
	}

	fields := map[string]any{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Surname1 != nil {
		fields["surname_1"] = *upd.Surname1
	}
	if upd.Surname2 != nil {
		fields["surname_2"] = *upd.Surname2
	}
	if upd.Telephone != nil {
		if !policy.ValidTelephone(*upd.Telephone) {
			return appErr.New(appErr.CodeInvalid, "invalid telephone")
		}
		fields["telephone"] = *upd.Telephone
	}
	if upd.Password != nil {
		if !policy.ValidPassword(*upd.Password) {
			return appErr.New(appErr.CodeInvalid, "password does not meet the policy")
		}
		ph, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
		}
		fields["password_hash"] = string(ph)
	}

	return s.users.UpdateFields(ctx, upd.ID, fields)
}

func (s *userService) DeleteByEmail(ctx context.Context, email string) error {
	return s.users.DeleteByEmail(ctx, email)
}
