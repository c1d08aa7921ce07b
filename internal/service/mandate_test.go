package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMandateRegistry(t *testing.T) {
	registry := NewMandateRegistry(
		NewNoopMandateProvider(),
		NewHostedMandateProvider(ProviderMollie, "key-1"),
		NewHostedMandateProvider(ProviderGoCardless, "key-1"),
		NewHostedMandateProvider(ProviderBillit, "key-1"),
	)

	for _, name := range []string{ProviderNoop, ProviderMollie, ProviderGoCardless, ProviderBillit} {
		p, err := registry.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name())
	}

	_, err := registry.Get("stripe")
	assert.Error(t, err)
}

func TestHostedMandateProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("RefusesWithoutAPIKey", func(t *testing.T) {
		p := NewHostedMandateProvider(ProviderMollie, "")
		err := p.CreateMandate(ctx, "contract-1")
		assert.ErrorContains(t, err, "missing API key")
	})

	t.Run("IdempotentPerOperationAndContract", func(t *testing.T) {
		p := NewHostedMandateProvider(ProviderGoCardless, "key-1")
		require.NoError(t, p.CreateMandate(ctx, "contract-1"))
		require.NoError(t, p.CreateMandate(ctx, "contract-1"))
		require.NoError(t, p.CreateSubscription(ctx, "contract-1"))
		require.NoError(t, p.GenerateInvoice(ctx, "contract-1"))
		require.NoError(t, p.CreateMandate(ctx, "contract-2"))
	})
}

func TestNoopMandateProvider(t *testing.T) {
	ctx := context.Background()
	p := NewNoopMandateProvider()

	assert.Equal(t, ProviderNoop, p.Name())
	require.NoError(t, p.CreateMandate(ctx, "contract-1"))
	require.NoError(t, p.CreateMandate(ctx, "contract-1"))
	require.NoError(t, p.GenerateInvoice(ctx, "contract-1"))
}
