package presence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const presenceKeyFmt = "presence:%s"

// TTL matches the sign-out edit window: a key that is never cleared (the
// user forgot to sign out) expires on its own.
const TTL = 12 * time.Hour

// Mark records username as currently signed in.
func Mark(rdb *redis.Client, username string) error {
	ctx := context.Background()
	key := fmt.Sprintf(presenceKeyFmt, username)
	return rdb.Set(ctx, key, time.Now().UTC().Format(time.RFC3339), TTL).Err()
}

// Clear removes the signed-in marker for username.
func Clear(rdb *redis.Client, username string) error {
	ctx := context.Background()
	key := fmt.Sprintf(presenceKeyFmt, username)
	return rdb.Del(ctx, key).Err()
}

// Count returns the number of users currently marked as signed in.
func Count(rdb *redis.Client) (int, error) {
	ctx := context.Background()
	var cursor uint64
	usernames := make(map[string]struct{})
	for {
		keys, newCursor, err := rdb.Scan(ctx, cursor, "presence:*", 100).Result()
		if err != nil {
			return 0, err
		}
		for _, key := range keys {
			parts := strings.SplitN(key, ":", 2)
			if len(parts) == 2 && parts[1] != "" {
				usernames[parts[1]] = struct{}{}
			}
		}
		if newCursor == 0 {
			break
		}
		cursor = newCursor
	}
	return len(usernames), nil
}
