// Package shared holds helpers used by more than one storage backend.
//
//nolint:revive // "shared" is an intentional package name for cross-cutting helpers.
package shared

import "strings"

// conflictMarkers are the substrings modernc.org/sqlite uses for lock
// contention. The driver does not export typed errors for them.
var conflictMarkers = []string{"SQLITE_BUSY", "database is locked"}

// IsSQLiteConflictError reports whether err is a SQLite lock contention error
// worth retrying.
func IsSQLiteConflictError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, m := range conflictMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
