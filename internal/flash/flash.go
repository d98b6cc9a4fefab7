// Package flash keeps one-shot notices between requests, keyed by a
// browser session cookie.
package flash

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Error   Level = "error"
)

const (
	CookieName = "flash_session"

	contextKey = "flash_key"
	storeKey   = "flash_store"
	noticeTTL  = 10 * time.Minute
)

// Notice is a single flash message.
type Notice struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Store keeps pending notices per session key.
type Store interface {
	Push(ctx context.Context, key string, n Notice) error
	Pop(ctx context.Context, key string) ([]Notice, error)
}

// RedisStore keeps notices in a redis list per session.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "flash"}
}

func (s *RedisStore) key(k string) string {
	return fmt.Sprintf("%s:%s", s.prefix, k)
}

func (s *RedisStore) Push(ctx context.Context, key string, n Notice) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.key(key), data)
	pipe.Expire(ctx, s.key(key), noticeTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Pop(ctx context.Context, key string) ([]Notice, error) {
	pipe := s.client.TxPipeline()
	rangeCmd := pipe.LRange(ctx, s.key(key), 0, -1)
	pipe.Del(ctx, s.key(key))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	raw := rangeCmd.Val()
	notices := make([]Notice, 0, len(raw))
	for _, item := range raw {
		var n Notice
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			return nil, fmt.Errorf("decode notice: %w", err)
		}
		notices = append(notices, n)
	}
	return notices, nil
}

// MemoryStore is a process-local Store used when redis is not configured.
// Entries expire noticeTTL after their last push, like the redis keys.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]*memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

type memoryEntry struct {
	notices []Notice
	expires time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memoryEntry), now: time.Now}
}

func (s *MemoryStore) Push(_ context.Context, key string, n Notice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	e, ok := s.entries[key]
	if !ok || now.After(e.expires) {
		e = &memoryEntry{}
		s.entries[key] = e
	}
	e.notices = append(e.notices, n)
	e.expires = now.Add(noticeTTL)
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, key string) ([]Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	notices := []Notice{}
	if e, ok := s.entries[key]; ok {
		if !now.After(e.expires) {
			notices = e.notices
		}
		delete(s.entries, key)
	}
	return notices, nil
}

// Len reports how many sessions hold notices, expired ones included until
// the next sweep.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// sweep drops expired sessions, at most once per minute. Callers hold mu.
func (s *MemoryStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < time.Minute {
		return
	}
	s.lastSweep = now
	for key, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, key)
		}
	}
}

// Middleware ensures every request carries a flash session cookie and makes
// the store reachable from handlers.
func Middleware(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := c.Cookie(CookieName)
		if err != nil || key == "" {
			key = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CookieName, key, 0, "/", "", false, true)
		}
		c.Set(contextKey, key)
		c.Set(storeKey, store)
		c.Next()
	}
}

// Add queues a notice for the current session. Failures are logged and
// swallowed; a lost notice never fails the request.
func Add(c *gin.Context, level Level, text string) {
	store, key, ok := fromContext(c)
	if !ok {
		return
	}
	if err := store.Push(c.Request.Context(), key, Notice{Level: level, Text: text}); err != nil {
		slog.Warn("failed to store flash notice", "error", err)
	}
}

// Pop returns and clears the pending notices for the current session.
func Pop(c *gin.Context) ([]Notice, error) {
	store, key, ok := fromContext(c)
	if !ok {
		return []Notice{}, nil
	}
	return store.Pop(c.Request.Context(), key)
}

func fromContext(c *gin.Context) (Store, string, bool) {
	s, exists := c.Get(storeKey)
	if !exists {
		return nil, "", false
	}
	store, ok := s.(Store)
	if !ok {
		return nil, "", false
	}
	return store, c.GetString(contextKey), true
}
