// internal/services/documents/sop-conversation/redis_store.go
package sopconversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis so several processes can share them.
// Metadata lives in a hash and turns in a list; RPUSH keeps concurrent
// appends from different processes from overwriting each other.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) metaKey(id string) string  { return r.prefix + id + ":meta" }
func (r *RedisStore) turnsKey(id string) string { return r.prefix + id + ":turns" }

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	meta, turns := r.metaKey(s.StudentID), r.turnsKey(s.StudentID)

	encoded := make([]interface{}, 0, len(s.Turns))
	for _, t := range s.Turns {
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("%w: encode turn: %v", ErrSessionStoreFailed, err)
		}
		encoded = append(encoded, string(b))
	}

	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, meta, turns)
		p.HSet(ctx, meta,
			"student_id", s.StudentID,
			"university_name", s.UniversityName,
			"requirements", s.Requirements,
			"created_at", s.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if len(encoded) > 0 {
			p.RPush(ctx, turns, encoded...)
		}
		r.expire(ctx, p, meta, turns)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrSessionStoreFailed, s.StudentID, err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, studentID string) (*Session, error) {
	meta, err := r.client.HGetAll(ctx, r.metaKey(studentID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrSessionStoreFailed, studentID, err)
	}
	if len(meta) == 0 {
		return nil, ErrSessionNotFound
	}

	raw, err := r.client.LRange(ctx, r.turnsKey(studentID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: turns %s: %v", ErrSessionStoreFailed, studentID, err)
	}

	s := &Session{
		StudentID:      studentID,
		UniversityName: meta["university_name"],
		Requirements:   meta["requirements"],
		Turns:          make([]Turn, 0, len(raw)),
	}
	if created, err := time.Parse(time.RFC3339Nano, meta["created_at"]); err == nil {
		s.CreatedAt = created
	}
	for _, item := range raw {
		var t Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("%w: decode turn: %v", ErrSessionStoreFailed, err)
		}
		s.Turns = append(s.Turns, t)
	}
	return s, nil
}

func (r *RedisStore) AppendTurn(ctx context.Context, studentID string, turn Turn) error {
	meta, turns := r.metaKey(studentID), r.turnsKey(studentID)

	n, err := r.client.Exists(ctx, meta).Result()
	if err != nil {
		return fmt.Errorf("%w: exists %s: %v", ErrSessionStoreFailed, studentID, err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}

	b, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("%w: encode turn: %v", ErrSessionStoreFailed, err)
	}

	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, turns, string(b))
		r.expire(ctx, p, meta, turns)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: append %s: %v", ErrSessionStoreFailed, studentID, err)
	}
	return nil
}

func (r *RedisStore) expire(ctx context.Context, p redis.Pipeliner, keys ...string) {
	if r.ttl <= 0 {
		return
	}
	for _, k := range keys {
		p.Expire(ctx, k, r.ttl)
	}
}
