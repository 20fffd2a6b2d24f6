// Package session gates the admin tool behind one shared password and
// remembers a successful login for a year.
package session

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lucysperfumery/admin/internal/kv"
	"go.uber.org/zap"
)

const (
	Key      = "lucysperfumery_admin_auth"
	Duration = 365 * 24 * time.Hour
)

var ErrNotAuthenticated = errors.New("not authenticated: run `admin login` first")

// Record is the persisted proof of a prior login. Timestamp is unix
// milliseconds.
type Record struct {
	Timestamp int64 `json:"timestamp"`
}

type Store struct {
	kv       kv.Store
	password string
	now      func() time.Time
	log      *zap.Logger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

func NewStore(store kv.Store, password string, opts ...Option) *Store {
	s := &Store{
		kv:       store,
		password: password,
		now:      time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check reports whether a live session record exists. Expired, malformed or
// unreadable records count as no session; expired and malformed ones are
// deleted on the way out.
func (s *Store) Check(ctx context.Context) bool {
	raw, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		s.log.Warn("read session record", zap.Error(err))
		s.remove(ctx, "unreadable")
		return false
	}
	if !ok {
		return false
	}

	ts, err := decodeTimestamp(raw)
	if err != nil {
		s.remove(ctx, "malformed")
		return false
	}

	// Compared in float64 so stored values far outside the int64 range
	// cannot wrap around into a small age.
	age := float64(s.now().UnixMilli()) - ts
	if age < float64(Duration.Milliseconds()) {
		return true
	}

	s.remove(ctx, "expired")
	return false
}

// Login writes a fresh record when candidate matches the configured
// password. Mismatch and storage failure both yield false.
func (s *Store) Login(ctx context.Context, candidate string) bool {
	if s.password == "" {
		s.log.Warn("login attempted with no admin password configured")
		return false
	}
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(s.password)) != 1 {
		return false
	}

	data, err := json.Marshal(Record{Timestamp: s.now().UnixMilli()})
	if err != nil {
		s.log.Error("encode session record", zap.Error(err))
		return false
	}
	if err := s.kv.Set(ctx, Key, string(data)); err != nil {
		s.log.Error("persist session record", zap.Error(err))
		return false
	}
	return true
}

func (s *Store) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("delete session record: %w", err)
	}
	return nil
}

func (s *Store) remove(ctx context.Context, reason string) {
	if err := s.kv.Delete(ctx, Key); err != nil {
		s.log.Warn("delete session record", zap.String("reason", reason), zap.Error(err))
		return
	}
	s.log.Debug("session record removed", zap.String("reason", reason))
}

// decodeTimestamp returns the record's timestamp in unix milliseconds.
func decodeTimestamp(raw string) (float64, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return 0, err
	}
	ts, ok := fields["timestamp"]
	if !ok {
		return 0, errors.New("missing timestamp")
	}

	var ms float64
	if err := json.Unmarshal(ts, &ms); err != nil {
		return 0, fmt.Errorf("timestamp: %w", err)
	}
	return ms, nil
}
