package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"green_index/internal/models"
)

const (
	stateTTL     = 10 * time.Minute
	recentAlerts = 10
	poolSize     = 10
	minIdleConns = 2
)

type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	ChannelPrefix string
}

// RedisSink mirrors live state into Redis: a hash per sensor holding its
// latest reading, a capped list of recent alerts, and pub/sub channels for
// readings, alerts and dataset changes.
type RedisSink struct {
	client *redis.Client
	prefix string
}

func NewRedisSink(ctx context.Context, cfg RedisConfig) (*RedisSink, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     poolSize,
		MinIdleConns: minIdleConns,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return newRedisSink(client, cfg.ChannelPrefix), nil
}

func newRedisSink(client *redis.Client, prefix string) *RedisSink {
	if prefix == "" {
		prefix = "greenindex"
	}
	return &RedisSink{client: client, prefix: prefix}
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}

func (s *RedisSink) stateKey(sensorID string) string {
	return fmt.Sprintf("%s:sensor:%s:state", s.prefix, sensorID)
}

func (s *RedisSink) channel(name string) string {
	return s.prefix + ":" + name
}

func (s *RedisSink) WriteReading(ctx context.Context, r models.NormalizedReading) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}
	key := s.stateKey(r.SensorID)

	pipe := s.client.Pipeline()
	pipe.HSet(ctx, key, stateFields(r))
	pipe.Expire(ctx, key, stateTTL)
	pipe.Publish(ctx, s.channel("readings"), payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline failed: %w", err)
	}
	return nil
}

func (s *RedisSink) WriteAlert(ctx context.Context, a models.WastageAlert) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}
	listKey := s.prefix + ":alerts:recent"

	pipe := s.client.Pipeline()
	pipe.LPush(ctx, listKey, payload)
	pipe.LTrim(ctx, listKey, 0, recentAlerts-1)
	pipe.Publish(ctx, s.channel("alerts"), payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline failed: %w", err)
	}
	return nil
}

func (s *RedisSink) WriteDataset(ctx context.Context, rows []models.CSVRow) error {
	payload, err := json.Marshal(datasetNotice(rows))
	if err != nil {
		return fmt.Errorf("failed to marshal dataset notice: %w", err)
	}
	return s.client.Publish(ctx, s.channel("dataset"), payload).Err()
}

// stateFields flattens a reading into hash fields. Electrical fields are
// only present for energy meters.
func stateFields(r models.NormalizedReading) map[string]any {
	f := map[string]any{
		"sensor_id": r.SensorID,
		"category":  string(r.Category),
		"zone":      r.Zone,
		"value":     r.Value,
		"unit":      r.Unit,
		"status":    string(r.Status),
		"timestamp": r.Timestamp.Unix(),
	}
	if el := r.Electrical; el != nil {
		f["voltage"] = el.Voltage
		f["current"] = el.Current
		f["energy_kwh"] = el.Energy
		f["carbon_rate"] = el.CarbonRate
		if el.Occupancy != nil {
			f["occupancy"] = *el.Occupancy
		}
	}
	return f
}

type datasetChange struct {
	Rows  int      `json:"rows"`
	Zones []string `json:"zones"`
}

func datasetNotice(rows []models.CSVRow) datasetChange {
	n := datasetChange{Rows: len(rows), Zones: []string{}}
	seen := make(map[string]struct{})
	for _, r := range rows {
		if _, ok := seen[r.Zone]; ok {
			continue
		}
		seen[r.Zone] = struct{}{}
		n.Zones = append(n.Zones, r.Zone)
	}
	return n
}
