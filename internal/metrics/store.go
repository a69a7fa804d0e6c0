// Package metrics persists per-request latency records to the local cache
// database so slow or failing API calls can be inspected after the fact.
package metrics

import (
	"database/sql"
	"log"
	"time"
)

// RequestMetric records metadata for a single API request attempt. A zero
// StatusCode means the request never reached the server.
type RequestMetric struct {
	Op         string
	StatusCode int
	LatencyMS  int64
	Failed     bool
	Timestamp  time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(m RequestMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO request_metrics (op, status_code, latency_ms, failed, timestamp) VALUES (?, ?, ?, ?, ?)`,
		m.Op, m.StatusCode, m.LatencyMS, m.Failed, ts,
	)
	return err
}

// Observe implements the client observer hook. Recording is best effort; a
// full cache disk must never fail a user-facing request.
func (s *Store) Observe(op string, statusCode int, latency time.Duration, failed bool) {
	err := s.Record(RequestMetric{
		Op:         op,
		StatusCode: statusCode,
		LatencyMS:  latency.Milliseconds(),
		Failed:     failed,
	})
	if err != nil {
		log.Printf("Warning: failed to record request metric for %q: %v", op, err)
	}
}

// OpSummary aggregates the recorded requests for one operation.
type OpSummary struct {
	Op           string
	Count        int64
	Failures     int64
	AvgLatencyMS float64
	MaxLatencyMS int64
}

// Summarize returns per-operation aggregates over all recorded requests,
// ordered by operation name.
func (s *Store) Summarize() ([]OpSummary, error) {
	rows, err := s.db.Query(
		`SELECT op, COUNT(*), SUM(failed), AVG(latency_ms), MAX(latency_ms)
		 FROM request_metrics GROUP BY op ORDER BY op`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OpSummary
	for rows.Next() {
		var sum OpSummary
		if err := rows.Scan(&sum.Op, &sum.Count, &sum.Failures, &sum.AvgLatencyMS, &sum.MaxLatencyMS); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Prune deletes records older than the retention cutoff.
func (s *Store) Prune(olderThan time.Time) error {
	_, err := s.db.Exec(`DELETE FROM request_metrics WHERE timestamp < ?`, olderThan.UTC())
	return err
}
