// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package database

import (
	"context"
	"database/sql"
	"errors"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/reelpick/internal/recommend"
)

// minOpenConns keeps a pinned request session from starving a seed
// transaction on single-CPU hosts.
const minOpenConns = 2

// configureConnectionPool sets connection pool parameters
func (db *DB) configureConnectionPool() error {
	db.conn.SetMaxOpenConns(maxOpenConns())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
	return nil
}

func maxOpenConns() int {
	return max(runtime.NumCPU(), minOpenConns)
}

// Acquire reserves one pooled connection for the caller. The returned
// session must be closed to give the connection back.
func (db *DB) Acquire(ctx context.Context) (recommend.Session, error) {
	if db.conn == nil {
		return nil, errors.New("database connection is nil")
	}
	conn, err := db.conn.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{conn: conn}, nil
}

// Session is a request-scoped catalog reader bound to a single connection.
type Session struct {
	conn      *sql.Conn
	closeOnce sync.Once
	closeErr  error
}

// Close returns the connection to the pool. Calling it twice is harmless.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

// isConnectionError checks if an error indicates database connection loss
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sql.ErrConnDone) {
		return true
	}
	errMsg := err.Error()
	for _, marker := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"bad connection",
		"database is closed",
	} {
		if strings.Contains(errMsg, marker) {
			return true
		}
	}
	return false
}
