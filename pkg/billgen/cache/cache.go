package cache

import (
	"container/list"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/tebeka/atexit"
	"go.uber.org/zap"
)

// Options configures a Cache.
type Options struct {
	// MaxEntries bounds the memory tier; least recently used entries are
	// evicted first. Zero means 128.
	MaxEntries int
	// TTL is the entry lifetime. Zero means 15 minutes.
	TTL time.Duration
	// DiskPath enables the SQLite disk tier when non-empty.
	DiskPath string
	// JanitorInterval is how often expired entries are evicted in the
	// background. Zero disables the janitor.
	JanitorInterval time.Duration
	// Logger receives eviction and flush diagnostics. Nil means no-op.
	Logger *zap.Logger
}

type entry struct {
	key       string
	payload   []byte
	expiresAt time.Time
	elem      *list.Element
}

// Cache is a two-tier cache: an LRU memory tier in front of an optional
// SQLite disk tier. Values are stored as JSON payloads.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   *list.List // front = most recently used
	max     int
	ttl     time.Duration
	disk    *DiskStore
	logger  *zap.Logger
	stop    chan struct{}
	stopped sync.Once
}

// New creates a cache, opens the disk tier when configured, and starts the
// background janitor. The disk tier is flushed at process exit.
func New(opts Options) (*Cache, error) {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = 128
	}
	if opts.TTL <= 0 {
		opts.TTL = 15 * time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	c := &Cache{
		entries: make(map[string]*entry),
		order:   list.New(),
		max:     opts.MaxEntries,
		ttl:     opts.TTL,
		logger:  opts.Logger,
		stop:    make(chan struct{}),
	}

	if opts.DiskPath != "" {
		disk, err := OpenDiskStore(opts.DiskPath)
		if err != nil {
			return nil, err
		}
		c.disk = disk
		atexit.Register(func() {
			if err := disk.Flush(); err != nil {
				opts.Logger.Warn("cache flush at exit failed", zap.Error(err))
			}
		})
	}

	if opts.JanitorInterval > 0 {
		go c.janitor(opts.JanitorInterval)
	}

	return c, nil
}

// Key derives a cache key from a file path and its current stat, so edits
// to the file naturally invalidate the entry.
func Key(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	return fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size()), nil
}

// Put stores a value under key in both tiers.
func (c *Cache) Put(key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	expiresAt := time.Now().Add(c.ttl)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		e.payload = payload
		e.expiresAt = expiresAt
		c.order.MoveToFront(e.elem)
	} else {
		e := &entry{key: key, payload: payload, expiresAt: expiresAt}
		e.elem = c.order.PushFront(e)
		c.entries[key] = e
		for len(c.entries) > c.max {
			c.evictOldestLocked()
		}
	}
	c.mu.Unlock()

	if c.disk != nil {
		if err := c.disk.Put(key, payload, expiresAt); err != nil {
			return err
		}
	}
	return nil
}

// Get loads the value for key into v. The memory tier is consulted first;
// on a miss the disk tier repopulates the memory tier.
func (c *Cache) Get(key string, v interface{}) (bool, error) {
	now := time.Now()

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if e.expiresAt.After(now) {
			c.order.MoveToFront(e.elem)
			payload := e.payload
			c.mu.Unlock()
			return true, json.Unmarshal(payload, v)
		}
		c.removeLocked(e)
	}
	c.mu.Unlock()

	if c.disk == nil {
		return false, nil
	}

	payload, ok, err := c.disk.Get(key, now)
	if err != nil || !ok {
		return false, err
	}

	c.mu.Lock()
	if _, exists := c.entries[key]; !exists {
		e := &entry{key: key, payload: payload, expiresAt: now.Add(c.ttl)}
		e.elem = c.order.PushFront(e)
		c.entries[key] = e
		for len(c.entries) > c.max {
			c.evictOldestLocked()
		}
	}
	c.mu.Unlock()

	return true, json.Unmarshal(payload, v)
}

// Len returns the number of entries in the memory tier.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Shrink drops the whole memory tier. The disk tier is untouched, so
// entries remain recoverable. Used under memory pressure.
func (c *Cache) Shrink() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]*entry)
	c.order.Init()
	c.mu.Unlock()

	if n > 0 {
		c.logger.Info("cache memory tier dropped", zap.Int("entries", n))
	}
}

// Close stops the janitor and closes the disk tier.
func (c *Cache) Close() error {
	c.stopped.Do(func() { close(c.stop) })
	if c.disk != nil {
		return c.disk.Close()
	}
	return nil
}

func (c *Cache) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.evictExpired(now)
			if c.disk != nil {
				if err := c.disk.PurgeExpired(now); err != nil {
					c.logger.Warn("disk cache purge failed", zap.Error(err))
				}
			}
		}
	}
}

func (c *Cache) evictExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for _, e := range c.entries {
		if !e.expiresAt.After(now) {
			c.removeLocked(e)
			evicted++
		}
	}
	if evicted > 0 {
		c.logger.Debug("expired cache entries evicted", zap.Int("count", evicted))
	}
}

func (c *Cache) evictOldestLocked() {
	back := c.order.Back()
	if back == nil {
		return
	}
	c.removeLocked(back.Value.(*entry))
}

func (c *Cache) removeLocked(e *entry) {
	c.order.Remove(e.elem)
	delete(c.entries, e.key)
}
