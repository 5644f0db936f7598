// Package activity 将 Kafka 活动事件聚合为按天统计的 Redis 计数器。
package activity

import (
	"context"
	"fmt"
	"time"

	"entraide-go/pkg/events"

	"github.com/go-redis/redis/v8"
)

const (
	counterKeyFormat = "activity:%s:%s" // activity:{type}:{yyyy-mm-dd}
	counterTTL       = 30 * 24 * time.Hour
	dateFormat       = "2006-01-02"
)

// Recorder 实现了 kafka.EventProcessor，将事件写入 Redis 日计数器。
type Recorder struct {
	rdb *redis.Client
}

// NewRecorder 创建一个新的 Recorder 实例。
func NewRecorder(rdb *redis.Client) *Recorder {
	return &Recorder{rdb: rdb}
}

// Process 处理一条活动事件：递增对应类型的当日计数器并刷新过期时间。
func (r *Recorder) Process(ctx context.Context, event events.ActivityEvent) error {
	ts := event.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	key := fmt.Sprintf(counterKeyFormat, event.Type, ts.Format(dateFormat))
	if err := r.rdb.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to increment activity counter: %w", err)
	}
	// 计数器只保留最近 30 天
	return r.rdb.Expire(ctx, key, counterTTL).Err()
}

// DailyCounts 返回指定日期所有已知事件类型的计数。
func (r *Recorder) DailyCounts(ctx context.Context, day time.Time) (map[string]int64, error) {
	types := []string{
		events.TypeUserRegistered,
		events.TypeQuestionAsked,
		events.TypeMeetSessionEnded,
		events.TypeConversationCleared,
	}

	counts := make(map[string]int64, len(types))
	for _, t := range types {
		key := fmt.Sprintf(counterKeyFormat, t, day.Format(dateFormat))
		val, err := r.rdb.Get(ctx, key).Int64()
		if err == redis.Nil {
			counts[t] = 0
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read activity counter: %w", err)
		}
		counts[t] = val
	}
	return counts, nil
}
