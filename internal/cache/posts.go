package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/micropost/internal/model"
)

// Loader queries the authoritative post store on a cache miss.
type Loader func(ctx context.Context) ([]*model.Post, error)

// PostCache keeps each user's post list in Redis with a bounded TTL.
// The cache is derived data only: every successful create/delete must call
// Invalidate so no client observes a list older than the last committed
// mutation for that user. TTL expiry is a backstop, not the consistency
// mechanism.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPostCache(client *redis.Client, ttl time.Duration) *PostCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PostCache{client: client, ttl: ttl, locks: make(map[string]*sync.Mutex)}
}

func (c *PostCache) key(email string) string {
	return fmt.Sprintf("posts:user:%s", email)
}

// lockFor returns the per-user mutex, creating it on first use.
// Entries are never reclaimed; the map is bounded by the user count.
func (c *PostCache) lockFor(email string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[email]
	if !ok {
		l = &sync.Mutex{}
		c.locks[email] = l
	}
	return l
}

// Read returns the cached list when present and unexpired, otherwise runs
// loader and stores the result with a fresh TTL. The miss path holds the
// user's lock across load-and-fill so a fill started before an Invalidate
// can never land after it.
func (c *PostCache) Read(ctx context.Context, email string, loader Loader) ([]*model.Post, error) {
	key := c.key(email)
	if posts, ok := c.get(ctx, key); ok {
		return posts, nil
	}

	lock := c.lockFor(email)
	lock.Lock()
	defer lock.Unlock()

	// another request may have filled the entry while we waited
	if posts, ok := c.get(ctx, key); ok {
		return posts, nil
	}

	posts, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	if payload, mErr := json.Marshal(posts); mErr == nil {
		_ = c.client.Set(ctx, key, payload, c.ttl).Err()
	}
	return posts, nil
}

// Invalidate drops the user's entry immediately. Callers invoke it
// synchronously on every successful create/delete.
func (c *PostCache) Invalidate(ctx context.Context, email string) error {
	lock := c.lockFor(email)
	lock.Lock()
	defer lock.Unlock()
	return c.client.Del(ctx, c.key(email)).Err()
}

func (c *PostCache) get(ctx context.Context, key string) ([]*model.Post, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var posts []*model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, false
	}
	return posts, true
}
