package db

import "log/slog"

// QueryLatencyStats returns current per-query latency distribution samples,
// slowest p95 first.
func (c *Database) QueryLatencyStats() []QueryLatency {
	if c == nil || c.tracker == nil {
		return nil
	}
	return c.tracker.snapshot()
}

// LogQueryLatency writes one log line per tracked query.
func (c *Database) LogQueryLatency(log *slog.Logger) {
	for _, stat := range c.QueryLatencyStats() {
		log.Info("Query latency",
			"query", stat.Name,
			"count", stat.Count,
			"p50", stat.P50.String(),
			"p95", stat.P95.String(),
			"max", stat.Max.String(),
		)
	}
}
