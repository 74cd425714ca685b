package service

import (
	"context"
	"errors"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrLoginAlreadyExists = errors.New("account with this login already exists")
	// ErrAuthenticationFailed deliberately does not say whether the login
	// or the password was wrong.
	ErrAuthenticationFailed = errors.New("authentication failed: invalid login or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// AuthService handles registration, credential checks, and session tokens.
type AuthService interface {
	Register(ctx context.Context, login, password, name, email string, role domain.Role) (*domain.Account, error)
	Login(ctx context.Context, login, password string) (token string, user *domain.User, err error)
	// TokenForUser issues a session token for an identity that has no
	// account, such as a trainee synthesized by the join-link flow.
	TokenForUser(user domain.User) (string, error)
	GetJWTSecret() string
}

// --- Service Implementation ---

type authService struct {
	accountRepo   repository.AccountRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(accountRepo repository.AccountRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	return &authService{
		accountRepo:   accountRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new account registration. It does not log the new
// account in.
func (s *authService) Register(ctx context.Context, login, password, name, email string, role domain.Role) (*domain.Account, error) {
	if login == "" || password == "" || name == "" || email == "" || role == "" {
		return nil, errors.New("login, password, name, email, and role cannot be empty")
	}

	// Check if the login is already taken.
	_, err := s.accountRepo.GetByLogin(ctx, login)
	if err == nil {
		return nil, ErrLoginAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	account := &domain.Account{
		Login:        login,
		PasswordHash: string(hashedPassword),
		Name:         name,
		Email:        email,
		Role:         role,
	}

	accountID, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrLoginAlreadyExists
		}
		return nil, err
	}
	account.ID = accountID

	account.PasswordHash = ""
	return account, nil
}

// Login checks credentials and returns a JWT plus the user projection.
// Unknown login and wrong password both map to the same generic failure.
func (s *authService) Login(ctx context.Context, login, password string) (token string, user *domain.User, err error) {
	if login == "" || password == "" {
		err = errors.New("login and password cannot be empty")
		return
	}

	account, err := s.accountRepo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrAuthenticationFailed
			return
		}
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password))
	if err != nil {
		err = ErrAuthenticationFailed
		return
	}

	projection := account.AsUser()
	token, err = s.TokenForUser(projection)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	return token, &projection, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload. Name rides along
// so trainee sessions synthesized by the join flow can stamp reviews
// without an account lookup.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenForUser creates a new JWT token for the given user projection.
func (s *authService) TokenForUser(user domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "coaching-app",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
