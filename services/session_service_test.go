package services_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"storefront-dashboard/models"
	"storefront-dashboard/services"
)

// --- Mock Repository ---

type memSessionRepo struct {
	session *models.Session
}

func (m *memSessionRepo) Save(_ context.Context, session *models.Session) error {
	m.session = session
	return nil
}

func (m *memSessionRepo) Load(_ context.Context) (*models.Session, error) {
	return m.session, nil
}

func (m *memSessionRepo) Clear(_ context.Context) error {
	m.session = nil
	return nil
}

func newSessionService() (*services.SessionService, *memSessionRepo) {
	repo := &memSessionRepo{}
	policy := services.NewAdminAllowList([]string{"admin@ecommerce.com"})
	return services.NewSessionService(repo, policy, zap.NewNop()), repo
}

func TestEstablish_AdminEmailDefaultsToAdminView(t *testing.T) {
	svc, _ := newSessionService()

	mode, err := svc.Establish(context.Background(), &models.Session{
		Token: "t", UserID: "1", Email: "admin@ecommerce.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, services.ViewAdmin, mode)
}

func TestEstablish_OtherEmailDefaultsToShopperView(t *testing.T) {
	svc, _ := newSessionService()

	mode, err := svc.Establish(context.Background(), &models.Session{
		Token: "t", UserID: "2", Email: "jane@x.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, services.ViewShopper, mode)
}

func TestAllowList_IsTrimmedAndCaseInsensitive(t *testing.T) {
	policy := services.NewAdminAllowList([]string{"Admin@Ecommerce.com "})

	assert.True(t, policy.IsAdmin("  ADMIN@ecommerce.COM"))
	assert.False(t, policy.IsAdmin("jane@x.com"))
	assert.False(t, policy.IsAdmin(""))
}

func TestToggleView_OnlyForAdmins(t *testing.T) {
	svc, _ := newSessionService()

	_, err := svc.ToggleView()
	assert.ErrorIs(t, err, services.ErrNotAdmin)

	_, err = svc.Establish(context.Background(), &models.Session{
		Token: "t", UserID: "2", Email: "jane@x.com",
	})
	assert.NoError(t, err)

	mode, err := svc.ToggleView()
	assert.ErrorIs(t, err, services.ErrNotAdmin)
	assert.Equal(t, services.ViewShopper, mode)
}

func TestToggleView_AdminFlipsBetweenViews(t *testing.T) {
	svc, _ := newSessionService()

	_, err := svc.Establish(context.Background(), &models.Session{
		Token: "t", UserID: "1", Email: "admin@ecommerce.com",
	})
	assert.NoError(t, err)

	mode, err := svc.ToggleView()
	assert.NoError(t, err)
	assert.Equal(t, services.ViewShopper, mode)

	mode, err = svc.ToggleView()
	assert.NoError(t, err)
	assert.Equal(t, services.ViewAdmin, mode)
}

func TestLogout_ClearsSessionAndMode(t *testing.T) {
	svc, repo := newSessionService()

	_, err := svc.Establish(context.Background(), &models.Session{
		Token: "t", UserID: "1", Email: "jane@x.com",
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(context.Background()))
	assert.Nil(t, svc.Current())
	assert.Equal(t, services.ViewUnauthenticated, svc.Mode())
	assert.Nil(t, repo.session)

	// Idempotent: a second logout is a no-op.
	assert.NoError(t, svc.Logout(context.Background()))
}

func TestRestore_PicksUpPersistedSession(t *testing.T) {
	svc, repo := newSessionService()
	repo.session = &models.Session{Token: "t", UserID: "1", Email: "admin@ecommerce.com"}

	assert.NoError(t, svc.Restore(context.Background()))
	assert.NotNil(t, svc.Current())
	assert.Equal(t, services.ViewAdmin, svc.Mode())
	assert.Equal(t, "t", svc.Token())
}

func TestRestore_NoSessionIsUnauthenticated(t *testing.T) {
	svc, _ := newSessionService()

	assert.NoError(t, svc.Restore(context.Background()))
	assert.Nil(t, svc.Current())
	assert.Equal(t, services.ViewUnauthenticated, svc.Mode())
	assert.Empty(t, svc.Token())
}

func TestSubjectFromToken(t *testing.T) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"42"}`))
	token := header + "." + payload + ".sig"

	assert.Equal(t, "42", services.SubjectFromToken(token))
	assert.Empty(t, services.SubjectFromToken("not-a-jwt"))
}
