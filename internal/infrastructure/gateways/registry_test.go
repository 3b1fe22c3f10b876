package gateways

import (
	"testing"

	"paycore/internal/domain/entities"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STRIPE_SECRET_KEY", "STRIPE_PUBLIC_KEY", "STRIPE_WEBHOOK_SECRET",
		"PAYPAL_CLIENT_ID", "PAYPAL_CLIENT_SECRET", "PAYPAL_WEBHOOK_ID",
		"RAZORPAY_KEY_ID", "RAZORPAY_KEY_SECRET", "RAZORPAY_WEBHOOK_SECRET",
	} {
		t.Setenv(key, "")
	}
}

func TestNewRegistryFromEnv(t *testing.T) {
	t.Run("missing credentials degrade only that provider", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
		t.Setenv("STRIPE_PUBLIC_KEY", "pk_test_123")

		r := NewRegistryFromEnv()

		if _, ok := r.Gateway(entities.ProviderStripe); !ok {
			t.Fatalf("expected stripe to be available")
		}
		if _, ok := r.Gateway(entities.ProviderPayPal); ok {
			t.Fatalf("expected paypal to be unavailable")
		}
		if _, ok := r.Gateway(entities.ProviderRazorpay); ok {
			t.Fatalf("expected razorpay to be unavailable")
		}
	})

	t.Run("no credentials at all", func(t *testing.T) {
		clearProviderEnv(t)

		r := NewRegistryFromEnv()
		for _, p := range entities.Providers() {
			if _, ok := r.Gateway(p); ok {
				t.Fatalf("expected %s to be unavailable", p)
			}
		}
	})
}

func TestRegistry_Status(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "my_key_secret")

	r := NewRegistryFromEnv()
	statuses := r.Status()

	if len(statuses) != len(entities.Providers()) {
		t.Fatalf("expected %d statuses, got %d", len(entities.Providers()), len(statuses))
	}
	byProvider := map[entities.Provider]entities.GatewayStatus{}
	for _, s := range statuses {
		byProvider[s.Provider] = s
	}

	if !byProvider[entities.ProviderRazorpay].Available {
		t.Fatalf("expected razorpay available")
	}
	if byProvider[entities.ProviderRazorpay].PublicIdentifier != "rzp_test_key" {
		t.Fatalf("expected public identifier, got %s", byProvider[entities.ProviderRazorpay].PublicIdentifier)
	}
	if byProvider[entities.ProviderStripe].Available || byProvider[entities.ProviderPayPal].Available {
		t.Fatalf("expected stripe and paypal unavailable")
	}
}
