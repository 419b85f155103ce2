package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase struct {
	userRepo  repository.UserRepository
	denylist  repository.TokenDenylist
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	denylist repository.TokenDenylist,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		denylist:  denylist,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// RegisterRequest represents account creation request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

// Register creates an identity and signs it in.
func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Email: req.Email, PasswordHash: string(hash)}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, expiresAt, err := uc.issueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: user, IsNewUser: true}, nil
}

// Login checks the credentials and issues a fresh token.
func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.issueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Me returns the identity behind a verified token.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *AuthUseCase) issueToken(userID string) (string, time.Time, error) {
	now := uc.now()
	expiresAt := now.Add(uc.tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     expiresAt.Unix(),
		"iat":     now.Unix(),
	})

	tokenString, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// VerifyToken verifies JWT token and returns user ID
func (uc *AuthUseCase) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := uc.parse(tokenString)
	if err != nil {
		return "", err
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", domain.ErrInvalidToken
	}

	revoked, err := uc.denylist.IsRevoked(ctx, uc.hashToken(tokenString))
	if err != nil {
		return "", fmt.Errorf("check token denylist: %w", err)
	}
	if revoked {
		return "", domain.ErrTokenRevoked
	}
	return userID, nil
}

// Logout revokes the token until it would have expired anyway.
func (uc *AuthUseCase) Logout(ctx context.Context, tokenString string) error {
	claims, err := uc.parse(tokenString)
	if err != nil {
		return err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return domain.ErrInvalidToken
	}
	return uc.denylist.Revoke(ctx, uc.hashToken(tokenString), exp.Sub(uc.now()))
}

func (uc *AuthUseCase) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(uc.jwtSecret), nil
	}, jwt.WithTimeFunc(uc.now))
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// hashToken creates SHA256 hash of token for storage
func (uc *AuthUseCase) hashToken(token string) string {
	h := sha256.New()
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}
