package store

import (
	"fmt"
	"strings"
)

// Supported storage engines.
const (
	EngineJSON   = "json"
	EngineSQLite = "sqlite"
)

// NewByEngine opens the repository named by engine at path.
func NewByEngine(engine, path string) (Repository, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineSQLite:
		return NewSQLite(path)
	case EngineJSON:
		return NewJSON(path)
	default:
		return nil, fmt.Errorf("unsupported store engine: %s", engine)
	}
}
