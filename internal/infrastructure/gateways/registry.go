package gateways

import (
	"log"
	"os"

	"paycore/internal/domain/entities"
	"paycore/internal/usecase/interfaces"
)

// Registry probes each provider's credentials once at startup and holds a
// client for every provider whose credential set is complete. A missing
// credential degrades only that provider; nothing here ever fails the
// process. The map is immutable after construction and shared read-only.

type Registry struct {
	gateways map[entities.Provider]interfaces.IPaymentGateway
}

var _ interfaces.IGatewayRegistry = (*Registry)(nil)

// NewRegistryFromEnv builds every gateway whose env credentials are present.
//
// Credential env vars per provider:
//   - stripe:   STRIPE_SECRET_KEY, STRIPE_PUBLIC_KEY, STRIPE_WEBHOOK_SECRET
//   - paypal:   PAYPAL_CLIENT_ID, PAYPAL_CLIENT_SECRET, PAYPAL_WEBHOOK_ID
//   - razorpay: RAZORPAY_KEY_ID, RAZORPAY_KEY_SECRET, RAZORPAY_WEBHOOK_SECRET
func NewRegistryFromEnv() *Registry {
	r := &Registry{gateways: map[entities.Provider]interfaces.IPaymentGateway{}}

	if gw, err := NewStripeGateway(
		os.Getenv("STRIPE_SECRET_KEY"),
		os.Getenv("STRIPE_PUBLIC_KEY"),
		os.Getenv("STRIPE_WEBHOOK_SECRET"),
	); err != nil {
		log.Printf("[payment][registry] stripe not configured: %v", err)
	} else {
		r.gateways[entities.ProviderStripe] = gw
	}

	if gw, err := NewPayPalGateway(
		os.Getenv("PAYPAL_CLIENT_ID"),
		os.Getenv("PAYPAL_CLIENT_SECRET"),
		os.Getenv("PAYPAL_WEBHOOK_ID"),
	); err != nil {
		log.Printf("[payment][registry] paypal not configured: %v", err)
	} else {
		r.gateways[entities.ProviderPayPal] = gw
	}

	if gw, err := NewRazorpayGateway(
		os.Getenv("RAZORPAY_KEY_ID"),
		os.Getenv("RAZORPAY_KEY_SECRET"),
		os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
	); err != nil {
		log.Printf("[payment][registry] razorpay not configured: %v", err)
	} else {
		r.gateways[entities.ProviderRazorpay] = gw
	}

	log.Printf("[payment][registry] initialized available=%d/%d", len(r.gateways), len(entities.Providers()))
	return r
}

// NewRegistry wires explicit gateways; used by tests and custom setups.
func NewRegistry(gws map[entities.Provider]interfaces.IPaymentGateway) *Registry {
	m := make(map[entities.Provider]interfaces.IPaymentGateway, len(gws))
	for p, gw := range gws {
		m[p] = gw
	}
	return &Registry{gateways: m}
}

func (r *Registry) Gateway(provider entities.Provider) (interfaces.IPaymentGateway, bool) {
	gw, ok := r.gateways[provider]
	return gw, ok
}

// Status reports every known provider, configured or not. Secrets never
// appear here; only the public identifier half of the credential pair.
func (r *Registry) Status() []entities.GatewayStatus {
	out := make([]entities.GatewayStatus, 0, len(entities.Providers()))
	for _, p := range entities.Providers() {
		if gw, ok := r.gateways[p]; ok {
			out = append(out, gw.Status())
			continue
		}
		out = append(out, entities.GatewayStatus{Provider: p, Available: false})
	}
	return out
}
