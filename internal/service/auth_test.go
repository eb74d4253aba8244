package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/njunio10/Convel-Controle/internal/domain"
	"github.com/njunio10/Convel-Controle/internal/infra/cache"
	"github.com/njunio10/Convel-Controle/internal/infra/observability"
	"github.com/njunio10/Convel-Controle/internal/service"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	user        *domain.User
	tokens      map[string]domain.RefreshToken
	getByIDHits int
}

func newFakeUserStore(t *testing.T, email, password string) *fakeUserStore {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &fakeUserStore{
		user:   &domain.User{ID: 1, Name: "Admin", Email: email, PasswordHash: string(hash)},
		tokens: map[string]domain.RefreshToken{},
	}
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s.getByIDHits++
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, &domain.ErrNotFound{Resource: "user", ID: "x"}
}

func (s *fakeUserStore) StoreRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	s.tokens[tokenHash] = domain.RefreshToken{TokenHash: tokenHash, UserID: userID, ExpiresAt: expiresAt}
	return nil
}

func (s *fakeUserStore) GetRefreshToken(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	t, ok := s.tokens[tokenHash]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *fakeUserStore) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	delete(s.tokens, tokenHash)
	return nil
}

func (s *fakeUserStore) RevokeAllRefreshTokens(ctx context.Context, userID int64) error {
	for h, t := range s.tokens {
		if t.UserID == userID {
			delete(s.tokens, h)
		}
	}
	return nil
}

func newAuthService(store *fakeUserStore) *service.AuthService {
	return service.NewAuthService(
		store,
		cache.New[domain.AuthUser](time.Minute),
		"test-secret",
		15*time.Minute,
		time.Hour,
		observability.NewMetrics(),
		zap.NewNop(),
	)
}

func TestLoginIssuesSession(t *testing.T) {
	store := newFakeUserStore(t, "admin@convel.com", "s3cret")
	svc := newAuthService(store)

	session, err := svc.Login(context.Background(), "admin@convel.com", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Token == "" || session.RefreshToken == "" {
		t.Fatal("expected access and refresh tokens")
	}
	if session.User.Email != "admin@convel.com" {
		t.Fatalf("user email = %q", session.User.Email)
	}
	if session.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Fatalf("expiresIn = %d", session.ExpiresIn)
	}

	userID, err := svc.ValidateAccessToken(session.Token)
	if err != nil {
		t.Fatalf("issued token must validate: %v", err)
	}
	if userID != 1 {
		t.Fatalf("userID = %d", userID)
	}
}

func TestLoginUniformCredentialErrors(t *testing.T) {
	store := newFakeUserStore(t, "admin@convel.com", "s3cret")
	svc := newAuthService(store)

	_, wrongPass := svc.Login(context.Background(), "admin@convel.com", "nope")
	_, unknownUser := svc.Login(context.Background(), "ghost@convel.com", "s3cret")

	var e1, e2 *domain.ErrUnauthorized
	if !errors.As(wrongPass, &e1) || !errors.As(unknownUser, &e2) {
		t.Fatalf("expected ErrUnauthorized, got %v / %v", wrongPass, unknownUser)
	}
	if e1.Message != e2.Message {
		t.Fatalf("credential errors must be indistinguishable: %q vs %q", e1.Message, e2.Message)
	}
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(newFakeUserStore(t, "a@b.c", "pw"))

	if _, err := svc.ValidateAccessToken("not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	store := newFakeUserStore(t, "admin@convel.com", "s3cret")
	svc := newAuthService(store)

	session, err := svc.Login(context.Background(), "admin@convel.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	renewed, err := svc.Refresh(context.Background(), session.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if renewed.RefreshToken == session.RefreshToken {
		t.Fatal("refresh token must rotate")
	}

	// The used token is revoked.
	if _, err := svc.Refresh(context.Background(), session.RefreshToken); err == nil {
		t.Fatal("expected rejection of rotated-out token")
	}
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	store := newFakeUserStore(t, "admin@convel.com", "s3cret")
	svc := newAuthService(store)

	session, _ := svc.Login(context.Background(), "admin@convel.com", "s3cret")
	for h, tok := range store.tokens {
		tok.ExpiresAt = time.Now().Add(-time.Minute)
		store.tokens[h] = tok
	}

	_, err := svc.Refresh(context.Background(), session.RefreshToken)
	var unauth *domain.ErrUnauthorized
	if !errors.As(err, &unauth) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestMeServesFromCache(t *testing.T) {
	store := newFakeUserStore(t, "admin@convel.com", "s3cret")
	svc := newAuthService(store)

	for i := 0; i < 3; i++ {
		user, err := svc.Me(context.Background(), 1)
		if err != nil {
			t.Fatalf("me: %v", err)
		}
		if user.Name != "Admin" {
			t.Fatalf("name = %q", user.Name)
		}
	}
	if store.getByIDHits != 1 {
		t.Fatalf("expected 1 store lookup, got %d", store.getByIDHits)
	}
}

func TestLogoutRevokesSessions(t *testing.T) {
	store := newFakeUserStore(t, "admin@convel.com", "s3cret")
	svc := newAuthService(store)

	session, _ := svc.Login(context.Background(), "admin@convel.com", "s3cret")
	if err := svc.Logout(context.Background(), 1); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), session.RefreshToken); err == nil {
		t.Fatal("refresh must fail after logout")
	}
}
