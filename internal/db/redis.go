package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func InitRedis(addr, password string) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := RDB.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable, device presence disabled: %v", err)
	}
}

func devicePresenceKey(deviceID uint) string {
	return fmt.Sprintf("device:%d:online", deviceID)
}

// TouchDevicePresence marks a board online for the heartbeat window.
// The key expiring is what flips the board to offline.
func TouchDevicePresence(ctx context.Context, deviceID uint, window time.Duration) error {
	return RDB.Set(ctx, devicePresenceKey(deviceID), time.Now().UTC().Format(time.RFC3339), window).Err()
}

func DeviceOnline(ctx context.Context, deviceID uint) (bool, error) {
	n, err := RDB.Exists(ctx, devicePresenceKey(deviceID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
