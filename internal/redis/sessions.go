package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
)

const sessionKeyPrefix = "import_session:"

var finishScript = redis.NewScript(1, `
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0`)

// SessionRegistry remembers the single active import session of every user.
// Starting a new session supersedes the previous one, results of a superseded
// session must be discarded by whoever holds it.
type SessionRegistry struct {
	pool pool
	ttl  time.Duration
}

type pool interface {
	GetContext(ctx context.Context) (redis.Conn, error)
}

func NewSessionRegistry(pool pool, ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		pool: pool,
		ttl:  ttl,
	}
}

func sessionKey(userID string) string {
	return sessionKeyPrefix + userID
}

func (r *SessionRegistry) Begin(ctx context.Context, userID, sessionID string) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get conn: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Do("SET", sessionKey(userID), sessionID, "PX", r.ttl.Milliseconds()); err != nil {
		return fmt.Errorf("set session: %w", err)
	}

	return nil
}

func (r *SessionRegistry) IsActive(ctx context.Context, userID, sessionID string) (bool, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return false, fmt.Errorf("get conn: %w", err)
	}
	defer conn.Close()

	active, err := redis.String(conn.Do("GET", sessionKey(userID)))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return false, nil
		}
		return false, fmt.Errorf("get session: %w", err)
	}

	return active == sessionID, nil
}

// Finish clears the user's active session if it is still sessionID.
// Compare and delete run as one script so a session begun in between survives.
func (r *SessionRegistry) Finish(ctx context.Context, userID, sessionID string) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get conn: %w", err)
	}
	defer conn.Close()

	if _, err := finishScript.Do(conn, sessionKey(userID), sessionID); err != nil {
		return fmt.Errorf("finish session: %w", err)
	}

	return nil
}

// Cancel drops whatever session the user has in flight.
func (r *SessionRegistry) Cancel(ctx context.Context, userID string) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get conn: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Do("DEL", sessionKey(userID)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}
