package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/alexanderramin/streakhq/internal/repository"
)

// SessionKey is the local KV key holding the signed session token.
const SessionKey = "session_token"

const issuer = "streakhq"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidEmail = errors.New("invalid email")
	ErrNoSecret     = errors.New("auth secret not configured")
)

// Session is the signed-in user as seen by the rest of the app.
type Session struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Provider issues and verifies HS256 session tokens and keeps the active one
// in the local KV store. Subscribers hear about sign-in and sign-out.
type Provider struct {
	kv     repository.KVRepo
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	nextSub int
	subs    map[int]func(*Session)
}

type Option func(*Provider)

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

func NewProvider(kv repository.KVRepo, secret string, ttl time.Duration, opts ...Option) *Provider {
	if ttl <= 0 {
		ttl = 90 * 24 * time.Hour
	}
	p := &Provider{
		kv:     kv,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		subs:   make(map[int]func(*Session)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// UserID derives a stable user id from an email address so the same account
// maps to the same cloud document on every machine.
func UserID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+normalizeEmail(email))).String()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignIn issues a token for email, stores it and notifies subscribers.
func (p *Provider) SignIn(ctx context.Context, email string) (*Session, error) {
	if len(p.secret) == 0 {
		return nil, ErrNoSecret
	}
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	token, sess, err := p.issue(email)
	if err != nil {
		return nil, err
	}
	if err := p.kv.Put(ctx, SessionKey, token); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}
	p.notify(sess)
	return sess, nil
}

func (p *Provider) issue(email string) (string, *Session, error) {
	now := p.now()
	expires := now.Add(p.ttl)
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   UserID(email),
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", nil, fmt.Errorf("signing session token: %w", err)
	}
	return signed, &Session{UserID: claims.Subject, Email: email, ExpiresAt: expires.Truncate(time.Second)}, nil
}

// Verify parses a token and returns its claims if the signature and time
// window are valid.
func (p *Provider) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(p.now), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// Current returns the active session, or nil when nobody is signed in. An
// expired or tampered token is discarded.
func (p *Provider) Current(ctx context.Context) (*Session, error) {
	raw, err := p.kv.Get(ctx, SessionKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}
	claims, err := p.Verify(raw)
	if err != nil {
		if delErr := p.kv.Delete(ctx, SessionKey); delErr != nil {
			return nil, fmt.Errorf("discarding bad session: %w", delErr)
		}
		return nil, nil
	}
	sess := &Session{UserID: claims.Subject, Email: claims.Email}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// SignOut removes the stored token and notifies subscribers with nil.
func (p *Provider) SignOut(ctx context.Context) error {
	if err := p.kv.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	p.notify(nil)
	return nil
}

// Subscribe registers fn for session changes and returns a func that
// removes it.
func (p *Provider) Subscribe(fn func(*Session)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

func (p *Provider) notify(sess *Session) {
	p.mu.Lock()
	ids := make([]int, 0, len(p.subs))
	for id := range p.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(*Session), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, p.subs[id])
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(sess)
	}
}
