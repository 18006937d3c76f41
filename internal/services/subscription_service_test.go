package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifelessonsapp/lifelessons-backend/internal/dto"
	"github.com/lifelessonsapp/lifelessons-backend/internal/models"
)

func checkoutEvent(typ, email string) *dto.CheckoutEvent {
	now := time.Now()
	return &dto.CheckoutEvent{
		Type:           typ,
		ID:             "evt_1",
		CustomerEmail:  email,
		SessionID:      "cs_test_1",
		ProductID:      "premium_monthly",
		PurchasedAtMs:  now.UnixMilli(),
		ExpirationAtMs: now.AddDate(0, 1, 0).UnixMilli(),
	}
}

func TestCheckoutCompletedGrantsPremium(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)
	user := seedUser(t, db, "buyer@example.com", "user", false)

	require.NoError(t, svc.HandleWebhookEvent(checkoutEvent("checkout.completed", user.Email)))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.True(t, reloaded.IsPremium)

	var sub models.Subscription
	require.NoError(t, db.Where("user_email = ?", user.Email).First(&sub).Error)
	assert.Equal(t, "active", sub.Status)
	assert.Equal(t, "cs_test_1", sub.CheckoutSessionID)
}

func TestCheckoutCompletedUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)

	err := svc.HandleWebhookEvent(checkoutEvent("checkout.completed", "ghost@example.com"))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCancellationKeepsEntitlementUntilExpiration(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)
	user := seedUser(t, db, "churner@example.com", "user", false)

	require.NoError(t, svc.HandleWebhookEvent(checkoutEvent("checkout.completed", user.Email)))
	require.NoError(t, svc.HandleWebhookEvent(checkoutEvent("cancellation", user.Email)))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.True(t, reloaded.IsPremium, "cancellation alone does not remove premium")

	require.NoError(t, svc.HandleWebhookEvent(checkoutEvent("expiration", user.Email)))
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.False(t, reloaded.IsPremium)

	var sub models.Subscription
	require.NoError(t, db.Where("user_email = ?", user.Email).First(&sub).Error)
	assert.Equal(t, "expired", sub.Status)
}

func TestRenewalReactivates(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)
	user := seedUser(t, db, "renew@example.com", "user", false)

	require.NoError(t, svc.HandleWebhookEvent(checkoutEvent("checkout.completed", user.Email)))
	require.NoError(t, svc.HandleWebhookEvent(checkoutEvent("expiration", user.Email)))
	require.NoError(t, svc.HandleWebhookEvent(checkoutEvent("renewal", user.Email)))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.True(t, reloaded.IsPremium)
}

func TestUnknownEventTypeIsIgnored(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)

	assert.NoError(t, svc.HandleWebhookEvent(checkoutEvent("price.updated", "anyone@example.com")))
}
