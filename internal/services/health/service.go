package health

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
)

const checkTimeout = 2 * time.Second

// Service encapsulates health-related checks.
type Service struct {
	DB    *sql.DB
	Redis redis.UniversalClient
}

// NewService constructs a new health service. Either dependency may be nil.
func NewService(db *sql.DB, rdb redis.UniversalClient) *Service {
	return &Service{DB: db, Redis: rdb}
}

// Report is the health payload.
type Report struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Status pings every configured dependency.
func (s *Service) Status(ctx context.Context) Report {
	report := Report{OK: true, Checks: map[string]string{}}
	check := func(name string, ping func(context.Context) error) {
		ctx, cancel := context.WithTimeout(ctx, checkTimeout)
		defer cancel()
		if err := ping(ctx); err != nil {
			report.OK = false
			report.Checks[name] = err.Error()
			return
		}
		report.Checks[name] = "ok"
	}
	if s.DB != nil {
		check("postgres", s.DB.PingContext)
	}
	if s.Redis != nil {
		check("redis", func(ctx context.Context) error { return s.Redis.Ping(ctx).Err() })
	}
	return report
}
