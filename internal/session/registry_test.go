package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActionCentreService/internal/coordinator"
	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/pkg/logger"
)

func newTestRegistry(providers *fakeProviders, shared *collectSink, gauge *gaugeRecorder, opts Options) *Registry {
	backend := NewBackend(
		providers,
		&fakeVisits{},
		&fakePrices{items: map[string]domain.PricedItem{"p-1": bloodTest}},
		&fakeBookings{},
	)
	var notifier Notifier
	if shared != nil {
		notifier = shared
	}
	var metrics MetricsRecorder
	if gauge != nil {
		metrics = gauge
	}
	return NewRegistry(backend, notifier, metrics, logger.NewNop(), opts)
}

func TestRegistry_OpenLoadsProvidersAndTarget(t *testing.T) {
	gauge := &gaugeRecorder{}
	r := newTestRegistry(&fakeProviders{providers: []domain.Provider{nurse}}, nil, gauge, Options{})

	s, err := r.Open(context.Background(), "c-1", "p-1")
	require.NoError(t, err)

	snap := s.Coordinator.Snapshot()
	assert.Equal(t, coordinator.StateOpenEmpty, snap.State)
	assert.Equal(t, "c-1", snap.Draft.CentreID)
	require.Len(t, snap.Providers, 1)
	require.NotNil(t, snap.Draft.Target)
	assert.Equal(t, "p-1", snap.Draft.Target.ProcedureID)

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 1, gauge.value())
}

func TestRegistry_OpenWithoutProcedure(t *testing.T) {
	r := newTestRegistry(&fakeProviders{providers: []domain.Provider{nurse}}, nil, nil, Options{})

	s, err := r.Open(context.Background(), "c-1", "")
	require.NoError(t, err)
	assert.Nil(t, s.Coordinator.Snapshot().Draft.Target)
}

func TestRegistry_FailuresReachInboxAndSharedSink(t *testing.T) {
	shared := &collectSink{}
	r := newTestRegistry(&fakeProviders{err: errors.New("db down")}, shared, nil, Options{})

	s, err := r.Open(context.Background(), "c-1", "missing")
	require.NoError(t, err)

	got := s.Inbox.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "Error loading nurses", got[0].Title)
	assert.Equal(t, domain.SeverityError, got[0].Severity)
	assert.Equal(t, "Error loading procedure", got[1].Title)

	assert.Equal(t, []string{"Error loading nurses", "Error loading procedure"}, shared.titles())
	assert.Empty(t, s.Inbox.Drain())
}

func TestRegistry_MaxSessions(t *testing.T) {
	r := newTestRegistry(&fakeProviders{}, nil, nil, Options{MaxSessions: 1})

	_, err := r.Open(context.Background(), "c-1", "")
	require.NoError(t, err)

	_, err = r.Open(context.Background(), "c-1", "")
	assert.ErrorIs(t, err, ErrTooManySessions)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_GetAndDelete(t *testing.T) {
	gauge := &gaugeRecorder{}
	r := newTestRegistry(&fakeProviders{}, nil, gauge, Options{})

	s, err := r.Open(context.Background(), "c-1", "")
	require.NoError(t, err)

	got, err := r.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	assert.True(t, r.Delete(s.ID))
	assert.False(t, r.Delete(s.ID))
	assert.Equal(t, coordinator.StateClosed, s.Coordinator.Snapshot().State)
	assert.Equal(t, 0, gauge.value())

	_, err = r.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = r.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistry_EvictsIdleSessions(t *testing.T) {
	gauge := &gaugeRecorder{}
	r := newTestRegistry(&fakeProviders{}, nil, gauge, Options{IdleTTL: 50 * time.Millisecond})

	idle, err := r.Open(context.Background(), "c-1", "")
	require.NoError(t, err)
	require.Equal(t, 1, gauge.value())

	assert.Eventually(t, func() bool {
		return idle.Coordinator.Snapshot().State == coordinator.StateClosed
	}, time.Second, 5*time.Millisecond)

	_, err = r.Get(idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, gauge.value())
}

func TestRegistry_GetExtendsLifetime(t *testing.T) {
	r := newTestRegistry(&fakeProviders{}, nil, nil, Options{IdleTTL: 200 * time.Millisecond})

	active, err := r.Open(context.Background(), "c-1", "")
	require.NoError(t, err)

	// Каждое обращение продлевает жизнь формы: суммарно больше IdleTTL
	for i := 0; i < 6; i++ {
		time.Sleep(60 * time.Millisecond)
		_, err = r.Get(active.ID)
		require.NoError(t, err)
	}
	assert.NotEqual(t, coordinator.StateClosed, active.Coordinator.Snapshot().State)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_CapDoesNotEvictOpenForms(t *testing.T) {
	r := newTestRegistry(&fakeProviders{}, nil, nil, Options{MaxSessions: 2})

	first, err := r.Open(context.Background(), "c-1", "")
	require.NoError(t, err)
	_, err = r.Open(context.Background(), "c-1", "")
	require.NoError(t, err)

	_, err = r.Open(context.Background(), "c-1", "")
	assert.ErrorIs(t, err, ErrTooManySessions)

	got, err := r.Get(first.ID)
	require.NoError(t, err)
	assert.Same(t, first, got)
	assert.NotEqual(t, coordinator.StateClosed, first.Coordinator.Snapshot().State)

	// После закрытия одной формы место освобождается
	require.True(t, r.Delete(first.ID))
	_, err = r.Open(context.Background(), "c-1", "")
	assert.NoError(t, err)
}

func TestRegistry_CloseClosesAllForms(t *testing.T) {
	gauge := &gaugeRecorder{}
	r := newTestRegistry(&fakeProviders{}, nil, gauge, Options{})

	a, err := r.Open(context.Background(), "c-1", "")
	require.NoError(t, err)
	b, err := r.Open(context.Background(), "c-1", "")
	require.NoError(t, err)

	r.Close()

	assert.Equal(t, coordinator.StateClosed, a.Coordinator.Snapshot().State)
	assert.Equal(t, coordinator.StateClosed, b.Coordinator.Snapshot().State)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, gauge.value())
	assert.False(t, r.Delete(a.ID))
}
