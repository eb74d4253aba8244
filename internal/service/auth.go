package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/njunio10/Convel-Controle/internal/domain"
	"github.com/njunio10/Convel-Controle/internal/infra/cache"
	"github.com/njunio10/Convel-Controle/internal/infra/observability"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var authTracer = otel.Tracer("service/auth")

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	StoreRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, userID int64) error
}

// AuthService handles login, session refresh and token validation for
// the panel. Access tokens are short-lived HS256 JWTs; refresh tokens
// are opaque, stored hashed and rotated on every use.
type AuthService struct {
	users      UserStore
	userCache  *cache.InMemory[domain.AuthUser]
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	metrics    *observability.Metrics
	logger     *zap.Logger
}

func NewAuthService(users UserStore, userCache *cache.InMemory[domain.AuthUser], secret string, accessTTL, refreshTTL time.Duration, metrics *observability.Metrics, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		userCache:  userCache,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		metrics:    metrics,
		logger:     logger,
	}
}

// Login checks the credentials and opens a session. Unknown emails and
// wrong passwords produce the same error so the endpoint does not leak
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Login")
	defer span.End()

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to look up user", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, &domain.ErrUnauthorized{Message: "Credenciais inválidas."}
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, &domain.ErrUnauthorized{Message: "Credenciais inválidas."}
	}

	return s.openSession(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh access/refresh pair is issued.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*domain.LoginResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Refresh")
	defer span.End()

	hash := hashToken(rawToken)
	stored, err := s.users.GetRefreshToken(ctx, hash)
	if err != nil {
		return nil, err
	}
	if stored == nil || time.Now().After(stored.ExpiresAt) {
		return nil, &domain.ErrUnauthorized{Message: "Sessão expirada."}
	}
	if err := s.users.RevokeRefreshToken(ctx, hash); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, user)
}

// Me returns the profile of the authenticated user, serving repeat
// lookups from the TTL cache.
func (s *AuthService) Me(ctx context.Context, userID int64) (*domain.AuthUser, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Me")
	defer span.End()

	key := strconv.FormatInt(userID, 10)
	if cached, ok := s.userCache.Get(key); ok {
		s.metrics.IncrCacheHit("users")
		return &cached, nil
	}
	s.metrics.IncrCacheMiss("users")

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	au := domain.AuthUser{ID: user.ID, Name: user.Name, Email: user.Email}
	s.userCache.Set(key, au)
	return &au, nil
}

// Logout revokes every refresh token of the user and drops the cached
// profile.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	ctx, span := authTracer.Start(ctx, "AuthService.Logout")
	defer span.End()

	s.userCache.Delete(strconv.FormatInt(userID, 10))
	return s.users.RevokeAllRefreshTokens(ctx, userID)
}

// ValidateAccessToken parses and verifies an access token and returns
// the user id it was issued to.
func (s *AuthService) ValidateAccessToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, &domain.ErrUnauthorized{Message: "Não autenticado."}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, &domain.ErrUnauthorized{Message: "Não autenticado."}
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, &domain.ErrUnauthorized{Message: "Não autenticado."}
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, &domain.ErrUnauthorized{Message: "Não autenticado."}
	}
	return userID, nil
}

func (s *AuthService) openSession(ctx context.Context, user *domain.User) (*domain.LoginResponse, error) {
	accessToken, err := s.signAccessToken(user)
	if err != nil {
		return nil, err
	}

	rawRefresh := uuid.NewString()
	expiresAt := time.Now().Add(s.refreshTTL)
	if err := s.users.StoreRefreshToken(ctx, user.ID, hashToken(rawRefresh), expiresAt); err != nil {
		s.logger.Error("failed to store refresh token", zap.Error(err))
		return nil, err
	}

	return &domain.LoginResponse{
		Token:        accessToken,
		RefreshToken: rawRefresh,
		ExpiresIn:    int(s.accessTTL.Seconds()),
		User:         domain.AuthUser{ID: user.ID, Name: user.Name, Email: user.Email},
	}, nil
}

func (s *AuthService) signAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(user.ID, 10),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
