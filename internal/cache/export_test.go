//go:build cgo

package cache

import "time"

// SetClock replaces the time source used for entry ages
func (s *SQLite) SetClock(now func() time.Time) {
	s.now = now
}
