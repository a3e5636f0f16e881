package auth

import (
	"context"
	"testing"

	"github.com/afflo-hq/afflo-backend/pkg/db"
	"github.com/afflo-hq/afflo-backend/pkg/db/models"
	pkgerrors "github.com/afflo-hq/afflo-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSetupCompanyService(t *testing.T, client *db.Client) SetupCompanyService {
	t.Helper()
	svc, err := NewSetupCompanyService(SetupCompanyServiceParams{DB: client})
	require.NoError(t, err)
	return svc
}

func seedUser(t *testing.T, client *db.Client, email string) uuid.UUID {
	t.Helper()
	user := &models.User{ID: uuid.New(), Name: "Owner", Email: email}
	require.NoError(t, client.DB().Create(user).Error)
	return user.ID
}

func TestSetupCompanyCreatesPartnerAndAdmin(t *testing.T) {
	client := setupAuthTestDB(t)
	svc := newTestSetupCompanyService(t, client)
	ctx := context.Background()

	userID := seedUser(t, client, "owner@acme.example.com")

	created, err := svc.SetupCompany(ctx, userID, SetupCompanyRequest{
		CompanyName:      "Acme",
		Domain:           "Shop.Acme.example.com",
		StorefrontSecret: "sek",
	})
	require.NoError(t, err)
	assert.Equal(t, "shop.acme.example.com", created.Domain)
	assert.Equal(t, "sek", created.StorefrontSecret)

	var partnerCount int64
	require.NoError(t, client.DB().Model(&models.Partner{}).Where("name = ?", "Acme").Count(&partnerCount).Error)
	assert.Equal(t, int64(1), partnerCount)

	var admin models.Admin
	require.NoError(t, client.DB().Where("user_id = ?", userID).First(&admin).Error)
	assert.Equal(t, created.ID, admin.PartnerID)
}

func TestSetupCompanyRepeatConflicts(t *testing.T) {
	client := setupAuthTestDB(t)
	svc := newTestSetupCompanyService(t, client)
	ctx := context.Background()

	userID := seedUser(t, client, "repeat@acme.example.com")

	_, err := svc.SetupCompany(ctx, userID, SetupCompanyRequest{
		CompanyName:      "Acme",
		Domain:           "acme.example.com",
		StorefrontSecret: "sek",
	})
	require.NoError(t, err)

	_, err = svc.SetupCompany(ctx, userID, SetupCompanyRequest{
		CompanyName:      "Acme Again",
		Domain:           "again.acme.example.com",
		StorefrontSecret: "sek2",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	var partnerCount int64
	require.NoError(t, client.DB().Model(&models.Partner{}).Count(&partnerCount).Error)
	assert.Equal(t, int64(1), partnerCount)

	var adminCount int64
	require.NoError(t, client.DB().Model(&models.Admin{}).Where("user_id = ?", userID).Count(&adminCount).Error)
	assert.Equal(t, int64(1), adminCount)
}

func TestSetupCompanyGeneratesSecretWhenOmitted(t *testing.T) {
	client := setupAuthTestDB(t)
	svc := newTestSetupCompanyService(t, client)
	ctx := context.Background()

	userID := seedUser(t, client, "nosecret@acme.example.com")

	created, err := svc.SetupCompany(ctx, userID, SetupCompanyRequest{
		CompanyName: "Acme",
		Domain:      "acme.example.com",
	})
	require.NoError(t, err)
	assert.Len(t, created.StorefrontSecret, storefrontSecretBytes*2)
}
