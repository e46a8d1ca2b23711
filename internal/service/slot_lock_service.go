package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SlotLocker serializes the check-then-create section of booking per
// (doctor, date, time) key. Acquire returns false when another request
// currently holds the slot, in which case the booking is rejected
// immediately rather than queued.
type SlotLocker interface {
	Acquire(ctx context.Context, doctorID uuid.UUID, date time.Time, timeOfDay string) (bool, error)
	Release(ctx context.Context, doctorID uuid.UUID, date time.Time, timeOfDay string) error
}

type redisSlotLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSlotLocker builds a SlotLocker on Redis SETNX. The TTL bounds
// how long a crashed request can hold a slot; the database's unique
// index on active slots is the backstop if the lock expires mid-flight.
func NewRedisSlotLocker(client *redis.Client, ttl time.Duration) SlotLocker {
	return &redisSlotLocker{client: client, ttl: ttl}
}

func slotLockKey(doctorID uuid.UUID, date time.Time, timeOfDay string) string {
	return fmt.Sprintf("slot_lock:%s:%s:%s", doctorID, date.Format("2006-01-02"), timeOfDay)
}

func (l *redisSlotLocker) Acquire(ctx context.Context, doctorID uuid.UUID, date time.Time, timeOfDay string) (bool, error) {
	return l.client.SetNX(ctx, slotLockKey(doctorID, date, timeOfDay), "1", l.ttl).Result()
}

func (l *redisSlotLocker) Release(ctx context.Context, doctorID uuid.UUID, date time.Time, timeOfDay string) error {
	return l.client.Del(ctx, slotLockKey(doctorID, date, timeOfDay)).Err()
}
