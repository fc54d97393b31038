package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"servicemarket/internal/domain"
	"servicemarket/internal/pkg/codes"
	"servicemarket/internal/repository"
)

type Service struct {
	users   UserRepository
	codes   CodeStore
	jwt     tokenIssuer
	loggerf func(format string, args ...interface{})
}

func NewService(users UserRepository, codeStore CodeStore, jwt tokenIssuer, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{users: users, codes: codeStore, jwt: jwt, loggerf: loggerf}
}

// Register creates an unverified account and issues a verification code. Only
// user and vendor roles can self-register; admins are seeded.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	role := domain.UserRole(req.Role)
	switch role {
	case "":
		role = domain.RoleUser
	case domain.RoleUser, domain.RoleVendor:
	default:
		return nil, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:         normalizeEmail(req.Email),
		PasswordHash:  string(hash),
		Name:          req.Name,
		Phone:         req.Phone,
		Role:          role,
		EmailVerified: false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	code, err := s.codes.Issue(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	// Stands in for the mail transport; the code is only logged in dev.
	s.loggerf("level=info msg=verification code issued email=%s code=%s", user.Email, code)

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) Verify(ctx context.Context, req VerifyRequest) error {
	email := normalizeEmail(req.Email)

	if err := s.codes.Redeem(ctx, email, req.Code); err != nil {
		if errors.Is(err, codes.ErrCodeMismatch) {
			return ErrCodeMismatch
		}
		return err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCodeMismatch
		}
		return err
	}
	return s.users.MarkVerified(ctx, user.ID)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResponse{User: user, Token: token}, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
