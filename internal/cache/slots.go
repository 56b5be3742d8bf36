package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/nrbnayon/BarBar-sub000/internal/domain/booking"
)

// SlotCache keeps public availability responses hot for a short window.
// Entries are invalidated whenever a booking mutation touches the slot day,
// so the TTL only bounds staleness for external writers.
type SlotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSlotCache(addr, password string) *SlotCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &SlotCache{
		rdb: rdb,
		ttl: 60 * time.Second,
	}
}

func slotKey(salonID, serviceID uint, date string) string {
	return fmt.Sprintf("slots:%d:%d:%s", salonID, serviceID, date)
}

func (c *SlotCache) Get(
	ctx context.Context,
	salonID, serviceID uint,
	date string,
) ([]domain.Slot, bool) {

	raw, err := c.rdb.Get(ctx, slotKey(salonID, serviceID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []domain.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(
	ctx context.Context,
	salonID, serviceID uint,
	date string,
	slots []domain.Slot,
) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, slotKey(salonID, serviceID, date), raw, c.ttl)
}

func (c *SlotCache) Invalidate(
	ctx context.Context,
	salonID, serviceID uint,
	date string,
) {
	c.rdb.Del(ctx, slotKey(salonID, serviceID, date))
}
