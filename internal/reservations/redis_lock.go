package reservations

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SeatLockManager is a Redis fast path in front of the database transaction.
// It rejects obviously-contended submissions before they reach Postgres; the
// database check remains authoritative.
type SeatLockManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSeatLockManager(redisClient *redis.Client, ttl time.Duration) *SeatLockManager {
	return &SeatLockManager{redis: redisClient, ttl: ttl}
}

// Lua script for atomic multi-seat locking. All seats lock or none do.
const luaSeatLock = `
-- KEYS[1] = lock_id
-- ARGV[1] = showtime_id
-- ARGV[2] = ttl_seconds
-- ARGV[3..N] = seat_ids

local lock_id = KEYS[1]
local showtime_id = ARGV[1]
local ttl = tonumber(ARGV[2])

-- Reject if any requested seat is already locked
for i = 3, #ARGV do
    local seat_key = "seat_lock:" .. showtime_id .. ":" .. ARGV[i]
    if redis.call("EXISTS", seat_key) == 1 then
        return {0, ARGV[i]}
    end
end

-- Lock every seat and remember them under the lock id
local lock_seats_key = "lock_seats:" .. lock_id
for i = 3, #ARGV do
    local seat_key = "seat_lock:" .. showtime_id .. ":" .. ARGV[i]
    redis.call("SETEX", seat_key, ttl, lock_id)
    redis.call("SADD", lock_seats_key, ARGV[i])
end
redis.call("EXPIRE", lock_seats_key, ttl)

return {1, "success"}
`

// Lua script for releasing a lock and all seats it covers.
const luaSeatUnlock = `
-- KEYS[1] = lock_id
-- ARGV[1] = showtime_id

local lock_id = KEYS[1]
local showtime_id = ARGV[1]
local lock_seats_key = "lock_seats:" .. lock_id

local seat_ids = redis.call("SMEMBERS", lock_seats_key)
for i = 1, #seat_ids do
    local seat_key = "seat_lock:" .. showtime_id .. ":" .. seat_ids[i]
    if redis.call("GET", seat_key) == lock_id then
        redis.call("DEL", seat_key)
    end
end
redis.call("DEL", lock_seats_key)

return #seat_ids
`

// Lock atomically locks the requested seats for the showtime. On contention
// it returns a SeatConflictError naming the first contended seat.
func (m *SeatLockManager) Lock(ctx context.Context, lockID string, showtimeID uuid.UUID, seatIDs []uuid.UUID) error {
	if m.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := []string{lockID}
	args := []interface{}{
		showtimeID.String(),
		strconv.Itoa(int(m.ttl.Seconds())),
	}
	for _, seatID := range seatIDs {
		args = append(args, seatID.String())
	}

	result, err := m.redis.EvalSha(ctx, luaSeatLock, keys, args...).Result()
	if err != nil {
		// Script not cached yet, fall back to plain Eval
		result, err = m.redis.Eval(ctx, luaSeatLock, keys, args...).Result()
		if err != nil {
			return fmt.Errorf("failed to execute seat lock: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return fmt.Errorf("unexpected result format from seat lock script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return fmt.Errorf("invalid success flag in seat lock result")
	}

	if success == 0 {
		raw, ok := resultArray[1].(string)
		if !ok {
			return fmt.Errorf("failed to lock seats")
		}
		seatID, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("failed to lock seats: contended seat %q", raw)
		}
		return &SeatConflictError{SeatIDs: []uuid.UUID{seatID}}
	}

	return nil
}

// Unlock releases every seat held under lockID.
func (m *SeatLockManager) Unlock(ctx context.Context, lockID string, showtimeID uuid.UUID) error {
	if m.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	_, err := m.redis.EvalSha(ctx, luaSeatUnlock, []string{lockID}, showtimeID.String()).Result()
	if err != nil {
		_, err = m.redis.Eval(ctx, luaSeatUnlock, []string{lockID}, showtimeID.String()).Result()
		if err != nil {
			return fmt.Errorf("failed to execute seat unlock: %w", err)
		}
	}
	return nil
}

// PreloadScripts loads the Lua scripts into the Redis script cache so the
// EvalSha fast path works from the first request.
func (m *SeatLockManager) PreloadScripts(ctx context.Context) error {
	if m.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	if _, err := m.redis.ScriptLoad(ctx, luaSeatLock).Result(); err != nil {
		return fmt.Errorf("failed to load seat lock script: %w", err)
	}
	if _, err := m.redis.ScriptLoad(ctx, luaSeatUnlock).Result(); err != nil {
		return fmt.Errorf("failed to load seat unlock script: %w", err)
	}
	return nil
}
