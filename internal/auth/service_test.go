package auth

import (
	"context"
	"testing"

	pkgauth "github.com/afflo-hq/afflo-backend/pkg/auth"
	"github.com/afflo-hq/afflo-backend/pkg/auth/session"
	"github.com/afflo-hq/afflo-backend/pkg/config"
	"github.com/afflo-hq/afflo-backend/pkg/db/models"
	"github.com/afflo-hq/afflo-backend/pkg/enums"
	pkgerrors "github.com/afflo-hq/afflo-backend/pkg/errors"
	"github.com/afflo-hq/afflo-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestServiceLoginWithPartner(t *testing.T) {
	password := "correct-horse"
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: strPtr(mustHashPassword(t, password)),
	}
	partner := &models.Partner{ID: uuid.New(), Name: "Acme", Domain: "acme.example.com"}
	cfg := testJWTConfig()

	svc, _, err := buildTestService(user, partner, nil, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %s in claims, got %s", user.ID, claims.UserID)
	}
	if claims.Provider != enums.ProviderCredentials {
		t.Fatalf("expected credentials provider, got %s", claims.Provider)
	}
	if resp.Partner == nil || resp.Partner.ID != partner.ID {
		t.Fatalf("expected partner %s in response, got %v", partner.ID, resp.Partner)
	}
	if resp.RefreshToken == "" {
		t.Fatalf("expected refresh token to be set")
	}
}

func TestServiceLoginWithoutPartner(t *testing.T) {
	password := "correct-horse"
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Bea",
		Email:        "bea@example.com",
		PasswordHash: strPtr(mustHashPassword(t, password)),
	}
	cfg := testJWTConfig()

	svc, _, err := buildTestService(user, nil, pkgerrors.New(pkgerrors.CodeForbidden, "no partner for user"), cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Partner != nil {
		t.Fatalf("expected nil partner for plain user, got %v", resp.Partner)
	}
}

func TestServiceLoginWrongPassword(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "cal@example.com",
		PasswordHash: strPtr(mustHashPassword(t, "real-password")),
	}

	svc, _, err := buildTestService(user, nil, nil, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "guess",
	})
	assertUnauthorized(t, err)
}

func TestServiceLoginUnknownEmail(t *testing.T) {
	svc, _, err := buildTestServiceWithRepoErr(gorm.ErrRecordNotFound, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assertUnauthorized(t, err)
}

func TestServiceLoginFederatedUserHasNoPassword(t *testing.T) {
	user := &models.User{
		ID:    uuid.New(),
		Email: "sso@example.com",
	}

	svc, _, err := buildTestService(user, nil, nil, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "anything",
	})
	assertUnauthorized(t, err)
}

func TestServiceRefreshRotatesSession(t *testing.T) {
	cfg := testJWTConfig()
	svc, sessionMgr, err := buildTestService(nil, nil, nil, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	claims := &pkgauth.AccessTokenClaims{
		UserID:   uuid.New(),
		Email:    "ada@example.com",
		Provider: enums.ProviderCredentials,
	}
	claims.ID = session.NewAccessID()

	pair, err := svc.Refresh(context.Background(), claims, "refresh-token")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.RefreshToken != sessionMgr.refreshToken {
		t.Fatalf("expected rotated refresh token, got %q", pair.RefreshToken)
	}

	rotated, err := pkgauth.ParseAccessToken(cfg, pair.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if rotated.UserID != claims.UserID {
		t.Fatalf("expected same identity after refresh")
	}
	if rotated.ID == claims.ID {
		t.Fatalf("expected new access id after refresh")
	}
}

func TestServiceRefreshInvalidToken(t *testing.T) {
	svc, sessionMgr, err := buildTestService(nil, nil, nil, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	sessionMgr.rotateErr = session.ErrInvalidRefreshToken

	claims := &pkgauth.AccessTokenClaims{UserID: uuid.New(), Provider: enums.ProviderCredentials}
	claims.ID = session.NewAccessID()

	_, err = svc.Refresh(context.Background(), claims, "stale")
	assertUnauthorized(t, err)
}

func TestServiceProviders(t *testing.T) {
	svc := &service{federation: config.FederationConfig{}}
	if got := svc.Providers(); len(got) != 0 {
		t.Fatalf("expected no providers without credentials, got %v", got)
	}

	svc = &service{federation: config.FederationConfig{
		GoogleClientID:     "id",
		GoogleClientSecret: "secret",
	}}
	got := svc.Providers()
	if len(got) != 1 || got[0].ID != string(enums.ProviderGoogle) {
		t.Fatalf("expected google provider, got %v", got)
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "afflo", ExpirationMinutes: 30}
}

func buildTestService(user *models.User, partner *models.Partner, resolveErr error, jwtCfg config.JWTConfig) (Service, *stubSessionManager, error) {
	sessionMgr := &stubSessionManager{refreshToken: "rotated-refresh-token"}
	svc, err := NewService(ServiceParams{
		UserRepo:       stubUserRepo{user: user},
		TenantResolver: stubResolver{partner: partner, err: resolveErr},
		SessionManager: sessionMgr,
		JWTConfig:      jwtCfg,
	})
	return svc, sessionMgr, err
}

func buildTestServiceWithRepoErr(repoErr error, jwtCfg config.JWTConfig) (Service, *stubSessionManager, error) {
	sessionMgr := &stubSessionManager{refreshToken: "rotated-refresh-token"}
	svc, err := NewService(ServiceParams{
		UserRepo:       stubUserRepo{err: repoErr},
		TenantResolver: stubResolver{},
		SessionManager: sessionMgr,
		JWTConfig:      jwtCfg,
	})
	return svc, sessionMgr, err
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func strPtr(value string) *string {
	return &value
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected unauthorized error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

type stubUserRepo struct {
	user *models.User
	err  error
}

func (s stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type stubResolver struct {
	partner *models.Partner
	err     error
}

func (s stubResolver) ResolveForUser(ctx context.Context, userID uuid.UUID) (*models.Partner, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.partner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "no partner for user")
	}
	return s.partner, nil
}

type stubSessionManager struct {
	refreshToken string
	rotateErr    error
	revoked      []string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	return s.refreshToken, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return session.NewAccessID(), s.refreshToken, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}
