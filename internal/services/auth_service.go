package services

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/airsense/platform/internal/auth"
	"github.com/airsense/platform/internal/models"
	"github.com/airsense/platform/internal/policy"
	"github.com/airsense/platform/internal/queue"
	"github.com/airsense/platform/internal/repository"
	appErr "github.com/airsense/platform/pkg/errors"
)

// RegisterInput is the payload for self-registration.
type RegisterInput struct {
	Name      string
	Surname1  string
	Surname2  string
	Email     string
	Telephone string
	Password  string
}

// AuthService decides whether credentials or a presented token represent a
// legitimate, currently-valid user, and maintains the artifacts that
// represent that fact across requests.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Logout(ctx context.Context, token string) error
	Register(ctx context.Context, in RegisterInput) (string, *models.User, error)
	SendVerificationEmail(ctx context.Context, email string) error
	ValidateEmailCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email string) error
}

type authService struct {
	users         repository.UserRepository
	verifications repository.VerificationRepository
	tokens        *auth.TokenIssuer
	denylist      auth.Denylist
	mail          queue.MailDispatcher
}

func NewAuthService(
	users repository.UserRepository,
	verifications repository.VerificationRepository,
	tokens *auth.TokenIssuer,
	denylist auth.Denylist,
	mail queue.MailDispatcher,
) AuthService {
	return &authService{
		users:         users,
		verifications: verifications,
		tokens:        tokens,
		denylist:      denylist,
		mail:          mail,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.users.GetByEmail(ctx, email, &user); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return "", nil, appErr.New(appErr.CodeNotFound, "user not found")
		}
		return "", nil, err
	}

	hash, err := s.users.GetPasswordHashByID(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", nil, appErr.New(appErr.CodeInvalid, "invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return appErr.New(appErr.CodeUnauthorized, "no session found")
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return err
	}
	ttl := auth.TokenTTL
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return s.denylist.Revoke(ctx, token, ttl)
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (string, *models.User, error) {
	if in.Name == "" || in.Surname1 == "" || in.Email == "" || in.Telephone == "" || in.Password == "" {
		return "", nil, appErr.New(appErr.CodeInvalid, "missing required fields")
	}
	if !policy.ValidEmail(in.Email) {
		return "", nil, appErr.New(appErr.CodeInvalid, "invalid email")
	}
	if !policy.ValidTelephone(in.Telephone) {
		return "", nil, appErr.New(appErr.CodeInvalid, "invalid telephone")
	}
	if !policy.ValidPassword(in.Password) {
		return "", nil, appErr.New(appErr.CodeInvalid, "password must be at least 8 characters with an upper-case letter, a lower-case letter and a digit")
	}

	verified, err := s.verifications.IsValidated(ctx, in.Email)
	if err != nil {
		return "", nil, err
	}
	if !verified {
		return "", nil, appErr.New(appErr.CodeInvalid, "email not verified")
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return "", nil, err
	}
	if exists {
		return "", nil, appErr.New(appErr.CodeConflict, "user already exists")
	}

	ph, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}

	user := models.User{
		Name:         in.Name,
		Surname1:     in.Surname1,
		Surname2:     in.Surname2,
		Email:        in.Email,
		Telephone:    in.Telephone,
		PasswordHash: string(ph),
		UserTypeID:   models.UserTypeRegular,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func (s *authService) SendVerificationEmail(ctx context.Context, email string) error {
	if !policy.ValidEmail(email) {
		return appErr.New(appErr.CodeInvalid, "invalid email")
	}

	code := generateVerificationCode()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "hash code failed")
	}
	if err := s.verifications.Upsert(ctx, email, string(hash)); err != nil {
		return err
	}
	return s.mail.DispatchVerification(ctx, email, code)
}

func (s *authService) ValidateEmailCode(ctx context.Context, email, code string) error {
	row, err := s.verifications.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if row == nil {
		return appErr.New(appErr.CodeInvalid, "failed to verify email")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.CodeHash), []byte(code)); err != nil {
		return appErr.New(appErr.CodeInvalid, "failed to verify email")
	}
	return s.verifications.MarkValidated(ctx, email)
}

// ResetPassword overwrites the user's password with a generated one and
// mails it in plaintext. The user is never forced to change it afterwards;
// a known weakness kept for parity with the existing client flows.
func (s *authService) ResetPassword(ctx context.Context, email string) error {
	var user models.User
	if err := s.users.GetByEmail(ctx, email, &user); err != nil {
		return err
	}

	password := generatePassword()
	ph, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(ph)); err != nil {
		return err
	}
	return s.mail.DispatchNewPassword(ctx, email, password)
}
