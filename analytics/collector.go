package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rushteam/shoprec/core"
)

// Collector 是事件收集器接口。引擎本身从不写事件，
// 收集与聚合是独立于推荐调用的旁路。
type Collector interface {
	Track(ctx context.Context, e Event) error
}

// MemoryCollector 是进程内事件收集器，用于测试和单机原型。
type MemoryCollector struct {
	mu     sync.Mutex
	events []Event
}

var _ Collector = (*MemoryCollector)(nil)

func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

func (c *MemoryCollector) Track(_ context.Context, e Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

// Events 返回已收集事件的副本。
func (c *MemoryCollector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// StoreCollector 把事件写入 KeyValueStore 的有序集合，
// member 为事件 JSON，score 为事件时间戳（Unix 纳秒）。
//
// 存储布局：
//
//	analytics:events  zset{ score: timestamp, member: JSON(Event) }
type StoreCollector struct {
	Store core.KeyValueStore

	// Key 是事件流的 zset key，默认 "analytics:events"。
	Key string
}

var _ Collector = (*StoreCollector)(nil)

const defaultEventsKey = "analytics:events"

func NewStoreCollector(store core.KeyValueStore) *StoreCollector {
	return &StoreCollector{Store: store}
}

func (c *StoreCollector) Track(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("analytics: marshal event: %w", err)
	}
	return c.Store.ZAdd(ctx, c.key(), float64(e.Timestamp.UnixNano()), string(data))
}

// Events 按时间倒序读取事件；limit <= 0 表示全量。
func (c *StoreCollector) Events(ctx context.Context, limit int64) ([]Event, error) {
	stop := limit - 1
	if limit <= 0 {
		stop = -1
	}
	members, err := c.Store.ZRange(ctx, c.key(), 0, stop)
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(members))
	for _, m := range members {
		var e Event
		if err := json.Unmarshal([]byte(m), &e); err != nil {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func (c *StoreCollector) key() string {
	if c.Key != "" {
		return c.Key
	}
	return defaultEventsKey
}
