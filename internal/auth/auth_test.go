package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/streakhq/internal/repository"
	"github.com/alexanderramin/streakhq/internal/testutil"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestProvider(t *testing.T, clock *fakeClock) (*Provider, repository.KVRepo) {
	t.Helper()
	kv := repository.NewSQLiteKVRepo(testutil.NewTestDB(t))
	return NewProvider(kv, "test-secret", 24*time.Hour, WithClock(clock.Now)), kv
}

func TestSignIn_CurrentRoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)}
	p, _ := newTestProvider(t, clock)
	ctx := context.Background()

	sess, err := p.SignIn(ctx, "  Ada@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", sess.Email)
	assert.Equal(t, UserID("ada@example.com"), sess.UserID)

	cur, err := p.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, sess.UserID, cur.UserID)
	assert.Equal(t, "ada@example.com", cur.Email)
	assert.True(t, sess.ExpiresAt.Equal(cur.ExpiresAt))
}

func TestUserID_StableAcrossCase(t *testing.T) {
	assert.Equal(t, UserID("ada@example.com"), UserID("ADA@example.com"))
	assert.NotEqual(t, UserID("ada@example.com"), UserID("bob@example.com"))
}

func TestSignIn_Validation(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	p, _ := newTestProvider(t, clock)

	_, err := p.SignIn(context.Background(), "not-an-email")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	noSecret := NewProvider(repository.NewSQLiteKVRepo(testutil.NewTestDB(t)), "", time.Hour)
	_, err = noSecret.SignIn(context.Background(), "ada@example.com")
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestCurrent_NoSession(t *testing.T) {
	p, _ := newTestProvider(t, &fakeClock{t: time.Now()})

	cur, err := p.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestCurrent_ExpiredTokenDiscarded(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)}
	p, kv := newTestProvider(t, clock)
	ctx := context.Background()

	_, err := p.SignIn(ctx, "ada@example.com")
	require.NoError(t, err)

	clock.t = clock.t.Add(25 * time.Hour)
	cur, err := p.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	_, err = kv.Get(ctx, SessionKey)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestVerify_RejectsForeignSecret(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	p, kv := newTestProvider(t, clock)
	ctx := context.Background()

	other := NewProvider(kv, "other-secret", time.Hour, WithClock(clock.Now))
	_, err := other.SignIn(ctx, "ada@example.com")
	require.NoError(t, err)

	raw, err := kv.Get(ctx, SessionKey)
	require.NoError(t, err)
	_, err = p.Verify(raw)
	assert.Error(t, err)

	cur, err := p.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestSubscribe_SignInAndOut(t *testing.T) {
	p, _ := newTestProvider(t, &fakeClock{t: time.Now()})
	ctx := context.Background()

	var seen []*Session
	unsubscribe := p.Subscribe(func(s *Session) { seen = append(seen, s) })

	_, err := p.SignIn(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NoError(t, p.SignOut(ctx))

	require.Len(t, seen, 2)
	require.NotNil(t, seen[0])
	assert.Equal(t, "ada@example.com", seen[0].Email)
	assert.Nil(t, seen[1])

	unsubscribe()
	_, err = p.SignIn(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Len(t, seen, 2)
}
