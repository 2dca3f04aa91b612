package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

func waitRefresh(t *testing.T, session *Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, session.WaitRefresh(ctx))
}

func TestSessionOpenSeedsFallbackThenRefreshes(t *testing.T) {
	fetcher := &fakeFetcher{
		products: []models.Product{product("robux_500", "20", "Robux")},
		gate:     make(chan struct{}),
	}
	sessions := NewSessionService(fetcher, &fakeSource{products: fallbackProducts()}, nil, nil, SessionConfig{}, nil)

	session, err := sessions.Open(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, 4, session.Catalog.Len(), "fallback is usable before the fetch returns")
	assert.False(t, session.Catalog.Loaded())

	close(fetcher.gate)
	waitRefresh(t, session)

	assert.True(t, session.Catalog.Loaded())
	assert.Equal(t, 1, session.Catalog.Len())
	_, err = session.Catalog.Get("robux_500")
	assert.NoError(t, err)
}

func TestSessionRefreshFailureKeepsFallback(t *testing.T) {
	sessions := NewSessionService(
		&fakeFetcher{err: errBackendDown},
		&fakeSource{products: fallbackProducts()},
		nil, nil, SessionConfig{}, nil,
	)

	session, err := sessions.Open(context.Background())
	require.NoError(t, err)
	waitRefresh(t, session)

	assert.False(t, session.Catalog.Loaded())
	assert.Equal(t, 4, session.Catalog.Len())
}

func TestSessionRefreshTimesOut(t *testing.T) {
	fetcher := &fakeFetcher{gate: make(chan struct{})}
	sessions := NewSessionService(
		fetcher,
		&fakeSource{products: fallbackProducts()},
		nil, nil,
		SessionConfig{FetchTimeout: 20 * time.Millisecond},
		nil,
	)

	session, err := sessions.Open(context.Background())
	require.NoError(t, err)
	waitRefresh(t, session)

	assert.False(t, session.Catalog.Loaded())
	assert.Equal(t, 4, session.Catalog.Len())
}

func TestSessionOpenWithoutFallback(t *testing.T) {
	sessions := NewSessionService(
		&fakeFetcher{err: errBackendDown},
		&fakeSource{err: errBackendDown},
		nil, nil, SessionConfig{}, nil,
	)

	session, err := sessions.Open(context.Background())
	require.NoError(t, err)
	waitRefresh(t, session)

	assert.Equal(t, 0, session.Catalog.Len())
	_, err = session.Cart.Add("basic_course")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSessionOpenRejectsMalformedFallback(t *testing.T) {
	source := &fakeSource{products: []models.Product{product("a", "1", "x"), product("a", "1", "x")}}
	sessions := NewSessionService(nil, source, nil, nil, SessionConfig{}, nil)

	_, err := sessions.Open(context.Background())

	assert.Error(t, err)
	assert.Equal(t, 0, sessions.Len())
}

func TestSessionsAreIsolated(t *testing.T) {
	sessions := NewSessionService(nil, &fakeSource{products: fallbackProducts()}, nil, nil, SessionConfig{}, nil)

	first, err := sessions.Open(context.Background())
	require.NoError(t, err)
	second, err := sessions.Open(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	_, err = first.Cart.Add("robux_100")
	require.NoError(t, err)

	assert.Equal(t, 1, first.Cart.Len())
	assert.True(t, second.Cart.IsEmpty())
}

func TestSessionGetAndClose(t *testing.T) {
	sessions := NewSessionService(nil, &fakeSource{products: fallbackProducts()}, nil, nil, SessionConfig{}, nil)
	session, err := sessions.Open(context.Background())
	require.NoError(t, err)

	got, err := sessions.Get(session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)

	assert.True(t, sessions.Close(session.ID))
	assert.False(t, sessions.Close(session.ID))

	_, err = sessions.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionSweepDropsIdleSessions(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := start
	sessions := NewSessionService(nil, nil, nil, nil, SessionConfig{TTL: time.Hour}, nil)
	sessions.now = func() time.Time { return clock }

	idle, err := sessions.Open(context.Background())
	require.NoError(t, err)
	active, err := sessions.Open(context.Background())
	require.NoError(t, err)

	clock = start.Add(50 * time.Minute)
	_, err = sessions.Get(active.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, sessions.Sweep(start.Add(61*time.Minute)))
	_, err = sessions.Get(idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = sessions.Get(active.ID)
	assert.NoError(t, err)
}

func TestSessionRunStopsWithContext(t *testing.T) {
	sessions := NewSessionService(nil, nil, nil, nil, SessionConfig{}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		sessions.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSessionCommandsWaitForInFlightCheckout(t *testing.T) {
	ctx := context.Background()
	submitter := newGatedSubmitter(&models.OrderResponse{OK: true, Mode: models.ModeFree})
	sessions := NewSessionService(nil, &fakeSource{products: fallbackProducts()}, nil, submitter, SessionConfig{}, nil)
	session, err := sessions.Open(ctx)
	require.NoError(t, err)
	require.NoError(t, session.Exec(func() error {
		_, err := session.Cart.Add("basic_course")
		return err
	}))

	checkoutDone := make(chan error, 1)
	go func() {
		checkoutDone <- session.Exec(func() error {
			_, err := Checkout(ctx, session.Cart, "Ana", "ana@example.com")
			return err
		})
	}()
	<-submitter.entered

	addDone := make(chan error, 1)
	go func() {
		addDone <- session.Exec(func() error {
			_, err := session.Cart.Add("robux_100")
			return err
		})
	}()

	select {
	case <-addDone:
		t.Fatal("add applied while the order was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(submitter.release)
	require.NoError(t, <-checkoutDone)
	require.NoError(t, <-addDone)

	payloads := submitter.Payloads()
	require.Len(t, payloads, 1)
	require.Len(t, payloads[0].Items, 1)
	assert.Equal(t, "basic_course", payloads[0].Items[0].ID)

	lines := session.Cart.Lines()
	require.Len(t, lines, 1, "the later add survives the checkout")
	assert.Equal(t, "robux_100", lines[0].ProductID)
}

func TestSessionConcurrentCheckoutsSendOnce(t *testing.T) {
	ctx := context.Background()
	submitter := newGatedSubmitter(&models.OrderResponse{OK: true, Mode: models.ModeFree})
	sessions := NewSessionService(nil, &fakeSource{products: fallbackProducts()}, nil, submitter, SessionConfig{}, nil)
	session, err := sessions.Open(ctx)
	require.NoError(t, err)
	_, err = session.Cart.Add("robux_100")
	require.NoError(t, err)

	checkout := func() error {
		return session.Exec(func() error {
			_, err := Checkout(ctx, session.Cart, "Ana", "ana@example.com")
			return err
		})
	}

	first := make(chan error, 1)
	go func() { first <- checkout() }()
	<-submitter.entered

	second := make(chan error, 1)
	go func() { second <- checkout() }()

	close(submitter.release)
	require.NoError(t, <-first)
	assert.ErrorIs(t, <-second, ErrEmptyCart)
	assert.Len(t, submitter.Payloads(), 1)
}

func TestSessionOpenSweepsOncePerTTL(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := start
	sessions := NewSessionService(nil, nil, nil, nil, SessionConfig{TTL: time.Hour}, nil)
	sessions.now = func() time.Time { return clock }

	stale, err := sessions.Open(context.Background())
	require.NoError(t, err)

	clock = start.Add(90 * time.Minute)
	_, err = sessions.Open(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sessions.Len())
	_, err = sessions.Get(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	clock = start.Add(100 * time.Minute)
	_, err = sessions.Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sessions.Len())
}
