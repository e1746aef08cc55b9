// Package leadstore keeps a rolling buffer of recently captured leads
// in Redis. It is a secondary capture path: if the CRM drops or
// rejects a submission, the lead is still recoverable from here.
package leadstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/learnspace/lead-capture-api/pkg/lead"
)

const (
	defaultKey = "leads:recent"
	defaultCap = 500
)

type Options struct {
	// Key is the Redis list the buffer lives under.
	Key string
	// Cap bounds the list length; older entries are trimmed away.
	Cap int64

	Logger *slog.Logger
}

type Store struct {
	rdb    *redis.Client
	key    string
	cap    int64
	logger *slog.Logger
}

type entry struct {
	lead.Record
	CapturedAt time.Time `json:"capturedAt"`
}

func New(rdb *redis.Client, opts Options) *Store {
	key := opts.Key
	if key == "" {
		key = defaultKey
	}

	capacity := opts.Cap
	if capacity <= 0 {
		capacity = defaultCap
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		rdb:    rdb,
		key:    key,
		cap:    capacity,
		logger: logger.With(slog.String("component", "leadstore")),
	}
}

// Push prepends a lead to the buffer and trims it back to capacity.
func (s *Store) Push(ctx context.Context, record lead.Record) error {
	raw, err := json.Marshal(entry{Record: record, CapturedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode lead: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.LPush(ctx, s.key, raw)
	pipe.LTrim(ctx, s.key, 0, s.cap-1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store lead: %w", err)
	}

	return nil
}

// Recent returns up to n leads, newest first. Entries that fail to
// decode are skipped rather than failing the whole read.
func (s *Store) Recent(ctx context.Context, n int64) ([]lead.Record, error) {
	if n <= 0 || n > s.cap {
		n = s.cap
	}

	raws, err := s.rdb.LRange(ctx, s.key, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read leads: %w", err)
	}

	records := make([]lead.Record, 0, len(raws))
	for _, raw := range raws {
		var e entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			s.logger.Warn("skipping undecodable lead entry", slog.Any("error", err))
			continue
		}
		records = append(records, e.Record)
	}

	return records, nil
}
