package sessions

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umairazmat/Ai-Codify/internal/ideas"
	"go.uber.org/goleak"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestManager(ttl time.Duration) (*Manager, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	return newManager(ttl, clock.Now), clock
}

func TestCreateSessionStartsAtTopic(t *testing.T) {
	m, _ := newTestManager(time.Hour)

	session := m.CreateSession()
	require.NotEmpty(t, session.ID)

	state, err := m.State(session.ID)
	require.NoError(t, err)
	assert.Equal(t, ideas.StepCollectingTopic, state.Step)
	assert.Equal(t, 1, m.GetSessionCount())
}

func TestGetOrCreateReusesKnownSession(t *testing.T) {
	m, _ := newTestManager(time.Hour)
	first := m.CreateSession()

	again, created := m.GetOrCreate(first.ID)
	assert.False(t, created)
	assert.Same(t, first, again)
}

func TestGetOrCreateIgnoresUnknownID(t *testing.T) {
	m, _ := newTestManager(time.Hour)

	session, created := m.GetOrCreate("made-up")
	assert.True(t, created)
	assert.NotEqual(t, "made-up", session.ID)
}

func TestApplyStoresTransition(t *testing.T) {
	m, _ := newTestManager(time.Hour)
	session := m.CreateSession()

	next, err := m.Apply(session.ID, func(s ideas.State) (ideas.State, error) {
		return ideas.SubmitTopic(s, "Healthcare")
	})
	require.NoError(t, err)
	assert.Equal(t, ideas.StepCollectingDetails, next.Step)

	state, err := m.State(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Healthcare", state.Topic)
}

func TestApplyFailedTransitionKeepsState(t *testing.T) {
	m, _ := newTestManager(time.Hour)
	session := m.CreateSession()

	_, err := m.Apply(session.ID, func(s ideas.State) (ideas.State, error) {
		return ideas.SubmitTopic(s, "   ")
	})
	require.ErrorIs(t, err, ideas.ErrEmptyTopic)

	state, err := m.State(session.ID)
	require.NoError(t, err)
	assert.Equal(t, ideas.StepCollectingTopic, state.Step)
}

func TestApplyUnknownSession(t *testing.T) {
	m, _ := newTestManager(time.Hour)

	_, err := m.Apply("missing", func(s ideas.State) (ideas.State, error) { return s, nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestApplySerializesPerSession(t *testing.T) {
	m, _ := newTestManager(time.Hour)
	session := m.CreateSession()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Apply(session.ID, func(s ideas.State) (ideas.State, error) {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return s, nil
			})
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestExpiredSessionIsGone(t *testing.T) {
	m, clock := newTestManager(time.Minute)
	session := m.CreateSession()

	clock.Advance(2 * time.Minute)

	_, ok := m.GetSession(session.ID)
	assert.False(t, ok)

	_, err := m.State(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRemoveExpiredSessions(t *testing.T) {
	m, clock := newTestManager(time.Minute)
	stale := m.CreateSession()

	clock.Advance(30 * time.Second)
	fresh := m.CreateSession()

	clock.Advance(45 * time.Second)

	assert.Equal(t, 1, m.removeExpiredSessions())

	_, ok := m.GetSession(stale.ID)
	assert.False(t, ok)

	_, ok = m.GetSession(fresh.ID)
	assert.True(t, ok)
}

func TestStopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewManager(time.Hour)

	assert.NotPanics(t, func() {
		m.Stop()
		m.Stop()
	})
}

func TestSlowApplyDoesNotBlockOtherSessions(t *testing.T) {
	m, _ := newTestManager(time.Hour)
	busy := m.CreateSession()
	other := m.CreateSession()

	entered := make(chan struct{})
	release := make(chan struct{})
	applyDone := make(chan struct{})

	go func() {
		defer close(applyDone)
		_, _ = m.Apply(busy.ID, func(s ideas.State) (ideas.State, error) {
			close(entered)
			<-release
			return s, nil
		})
	}()

	<-entered

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.removeExpiredSessions()
		m.CreateSession()
		_, _ = m.State(other.ID)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("cleanup and other sessions waited on an in-flight transition")
	}

	close(release)
	<-applyDone
	<-done
}

func TestInFlightApplyKeepsSessionAlive(t *testing.T) {
	m, clock := newTestManager(time.Minute)
	session := m.CreateSession()

	clock.Advance(50 * time.Second)

	_, err := m.Apply(session.ID, func(s ideas.State) (ideas.State, error) {
		clock.Advance(30 * time.Second)
		assert.Equal(t, 0, m.removeExpiredSessions())
		return s, nil
	})
	require.NoError(t, err)

	_, ok := m.GetSession(session.ID)
	assert.True(t, ok)
}
