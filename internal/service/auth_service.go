package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/zoraaver/wlogger/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrFirebaseDisabled is returned by Google sign-in when Firebase is not configured
	ErrFirebaseDisabled = errors.New("google sign-in is not configured")
	// ErrGoogleAccount is returned by password login for accounts created through Google
	ErrGoogleAccount = errors.New("account uses google sign-in")
)

// FirebaseAuthClient defines the interface for Firebase Auth operations
// This allows mocking for tests
type FirebaseAuthClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthService handles authentication and user registration
type AuthService struct {
	userRepo    domain.UserRepository
	authClient  FirebaseAuthClient
	jwtSecret   string
	jwtDuration time.Duration
}

// NewAuthService creates a new auth service. authClient may be nil.
func NewAuthService(
	userRepo domain.UserRepository,
	authClient FirebaseAuthClient,
	jwtSecret string,
	jwtDuration time.Duration,
) *AuthService {
	if jwtDuration <= 0 {
		jwtDuration = 24 * time.Hour
	}
	return &AuthService{
		userRepo:    userRepo,
		authClient:  authClient,
		jwtSecret:   jwtSecret,
		jwtDuration: jwtDuration,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" validate:"required,min=8"`

	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult carries the signed-in user and their token
type AuthResult struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	IsNewUser bool         `json:"is_new_user"`
}

// Register creates a password account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	name := req.Name
	if name == "" {
		name = req.Email
	}
	user := &domain.User{Email: req.Email, Name: name, PasswordHash: string(hash)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, IsNewUser: true}, nil
}

// Login checks an email and password
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == "" {
		if user.FirebaseUID != "" {
			return nil, ErrGoogleAccount
		}
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// LoginWithFirebase signs in with a Google ID token, linking or creating
// the account as needed
func (s *AuthService) LoginWithFirebase(ctx context.Context, idToken string) (*AuthResult, error) {
	if s.authClient == nil {
		return nil, ErrFirebaseDisabled
	}

	// Step 1: Verify Firebase token and extract user info
	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	firebaseUID := token.UID
	email, _ := token.Claims["email"].(string)
	email = strings.ToLower(email)
	name, _ := token.Claims["name"].(string)
	if name == "" {
		name = email
	}

	// Step 2: Search for existing user by firebase_uid
	user, err := s.userRepo.GetByFirebaseUID(ctx, firebaseUID)
	if err == nil {
		return s.result(user, false)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	// Step 3: Link a password account registered with the same email
	if email != "" {
		emailUser, err := s.userRepo.GetByEmail(ctx, email)
		if err == nil {
			if emailUser.FirebaseUID != "" {
				return nil, fmt.Errorf("email already linked to different account")
			}
			if err := s.userRepo.UpdateFirebaseUID(ctx, emailUser.ID, firebaseUID); err != nil {
				return nil, fmt.Errorf("failed to link firebase account: %w", err)
			}
			emailUser.FirebaseUID = firebaseUID
			return s.result(emailUser, false)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("failed to fetch user: %w", err)
		}
	}

	// Step 4: New user
	newUser := &domain.User{FirebaseUID: firebaseUID, Email: email, Name: name}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return s.result(newUser, true)
}

func (s *AuthService) result(user *domain.User, isNew bool) (*AuthResult, error) {
	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{User: user, Token: token, IsNewUser: isNew}, nil
}

// GenerateToken creates a JWT token with custom claims
func (s *AuthService) GenerateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := domain.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}
