package db

import (
	"context"
	"hash/fnv"

	"gorm.io/gorm"
)

// roomDayLockKey folds (room_id, day_of_week) into the int64 keyspace of
// PostgreSQL advisory locks.
func roomDayLockKey(roomID uint, dayOfWeek string) int64 {
	h := fnv.New64a()
	h.Write([]byte(dayOfWeek))
	return int64(h.Sum64()>>1) ^ int64(roomID)
}

// WithRoomDayLock runs fn inside a transaction holding an advisory xact
// lock on the (room, day) tuple. The overlap check is a range condition
// with no unique index backing it, so concurrent writers for the same
// slot key must serialize here or both can pass the check.
func WithRoomDayLock(ctx context.Context, roomID uint, dayOfWeek string, fn func(tx *gorm.DB) error) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", roomDayLockKey(roomID, dayOfWeek)).Error; err != nil {
			return err
		}
		return fn(tx)
	})
}
