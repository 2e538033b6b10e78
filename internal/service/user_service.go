package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"contact-api/internal/domain"
	"contact-api/internal/repository"
)

// UserService coordina registro, login y consultas de usuarios.
type UserService struct {
	logger       *zap.Logger
	users        repository.UserRepository
	tokens       *TokenService
	loginLimiter LoginRateLimiter
}

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrRateLimited        = errors.New("rate limited")
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const pgUniqueViolation = "23505"

func NewUserService(logger *zap.Logger, users repository.UserRepository, tokens *TokenService, loginLimiter LoginRateLimiter) *UserService {
	if loginLimiter == nil {
		loginLimiter = NewLoginRateLimiter(10*time.Minute, 10)
	}
	return &UserService{
		logger:       logger,
		users:        users,
		tokens:       tokens,
		loginLimiter: loginLimiter,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phones   []domain.Phone
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	emailAddr := normalizeEmail(input.Email)

	// Orden de validacion del contrato: duplicado, formato, longitud.
	_, err := s.users.GetByEmail(ctx, emailAddr)
	if err == nil {
		return domain.User{}, ErrDuplicateEmail
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}
	if !emailPattern.MatchString(emailAddr) {
		return domain.User{}, ErrInvalidEmailFormat
	}
	if len(input.Password) < minPasswordLength {
		return domain.User{}, ErrPasswordTooShort
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	phones := input.Phones
	if phones == nil {
		phones = []domain.Phone{}
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        emailAddr,
		PasswordHash: string(hashBytes),
		Created:      now,
		LastLogin:    now,
		IsActive:     true,
		Phones:       phones,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Una carrera que pase el chequeo previo termina en la restriccion unica.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.User{}, ErrDuplicateEmail
		}
		return domain.User{}, err
	}

	return user, nil
}

// Login autentica por email y clave, y deja el token emitido sobre el usuario.
func (s *UserService) Login(ctx context.Context, emailAddr, password string) (domain.User, error) {
	if s.users == nil || s.tokens == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if s.loginLimiter != nil && !s.loginLimiter.Allow(emailAddr) {
		return domain.User{}, ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Usuario inexistente y clave incorrecta comparten la misma salida.
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.PasswordHash == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLogin(ctx, user.ID, token, now); err != nil {
		return domain.User{}, err
	}

	user.Token = &token
	user.LastLogin = now
	user.Modified = &now
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	if s.users == nil {
		return nil, errors.New("user service not configured")
	}
	return s.users.List(ctx)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
