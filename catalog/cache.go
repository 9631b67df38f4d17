package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"bac_exam_platform/models"

	"github.com/redis/go-redis/v9"
)

// Cache stores the exams of each book and single exams by id. A miss is
// reported as found == false with a nil error.
type Cache interface {
	GetBookExams(ctx context.Context, bookID string) ([]models.Exam, bool, error)
	SetBookExams(ctx context.Context, bookID string, exams []models.Exam) error
	GetExam(ctx context.Context, id int64) (*models.Exam, error)
	SetExam(ctx context.Context, exam *models.Exam) error
	DeleteBook(ctx context.Context, bookID string) error
	DeleteExam(ctx context.Context, id int64) error
	Flush(ctx context.Context) error
}

func bookKey(bookID string) string {
	return fmt.Sprintf("exams:book:%s", bookID)
}

func examKey(id int64) string {
	return fmt.Sprintf("exams:id:%d", id)
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryCache is the in-process cache used when no Redis is configured.
// Values are stored encoded so callers never share slices.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryCache) get(key string, dst any) (bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if c.ttl > 0 && c.now().After(e.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(e.data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryCache) set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = memoryEntry{data: data, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) del(keys ...string) {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	c.mu.Unlock()
}

func (c *MemoryCache) GetBookExams(_ context.Context, bookID string) ([]models.Exam, bool, error) {
	var exams []models.Exam
	ok, err := c.get(bookKey(bookID), &exams)
	return exams, ok, err
}

func (c *MemoryCache) SetBookExams(_ context.Context, bookID string, exams []models.Exam) error {
	if exams == nil {
		exams = []models.Exam{}
	}
	return c.set(bookKey(bookID), exams)
}

func (c *MemoryCache) GetExam(_ context.Context, id int64) (*models.Exam, error) {
	var exam models.Exam
	ok, err := c.get(examKey(id), &exam)
	if !ok || err != nil {
		return nil, err
	}
	return &exam, nil
}

func (c *MemoryCache) SetExam(_ context.Context, exam *models.Exam) error {
	return c.set(examKey(exam.ID), exam)
}

func (c *MemoryCache) DeleteBook(_ context.Context, bookID string) error {
	c.del(bookKey(bookID))
	return nil
}

func (c *MemoryCache) DeleteExam(_ context.Context, id int64) error {
	c.del(examKey(id))
	return nil
}

func (c *MemoryCache) Flush(context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

// RedisCache shares the catalog between service instances.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) key(k string) string {
	return c.prefix + k
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(key), data, c.ttl).Err()
}

func (c *RedisCache) GetBookExams(ctx context.Context, bookID string) ([]models.Exam, bool, error) {
	var exams []models.Exam
	ok, err := c.get(ctx, bookKey(bookID), &exams)
	return exams, ok, err
}

func (c *RedisCache) SetBookExams(ctx context.Context, bookID string, exams []models.Exam) error {
	if exams == nil {
		exams = []models.Exam{}
	}
	return c.set(ctx, bookKey(bookID), exams)
}

func (c *RedisCache) GetExam(ctx context.Context, id int64) (*models.Exam, error) {
	var exam models.Exam
	ok, err := c.get(ctx, examKey(id), &exam)
	if !ok || err != nil {
		return nil, err
	}
	return &exam, nil
}

func (c *RedisCache) SetExam(ctx context.Context, exam *models.Exam) error {
	return c.set(ctx, examKey(exam.ID), exam)
}

func (c *RedisCache) DeleteBook(ctx context.Context, bookID string) error {
	return c.client.Del(ctx, c.key(bookKey(bookID))).Err()
}

func (c *RedisCache) DeleteExam(ctx context.Context, id int64) error {
	return c.client.Del(ctx, c.key(examKey(id))).Err()
}

// Flush removes every catalog key under the prefix.
func (c *RedisCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
