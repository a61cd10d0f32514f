package config

import (
	"fmt"
	"os"
	"strconv"
)

// Session holds the focus-session defaults. DefaultPct is the percentage of
// the puzzle a completed session uncovers when the request does not carry an
// explicit value; user-configurable between 0 and 100.
type Session struct {
	DefaultPct float64
}

func NewSession() (*Session, error) {
	s := &Session{DefaultPct: 10}

	pctStr, ok := os.LookupEnv("SESSION_PCT")
	if !ok {
		return s, nil
	}

	pct, err := strconv.ParseFloat(pctStr, 64)
	if err != nil {
		return nil, fmt.Errorf("unable to parse SESSION_PCT: %w", err)
	}
	if pct < 0 || pct > 100 {
		return nil, fmt.Errorf("SESSION_PCT must be between 0 and 100, got %v", pct)
	}

	s.DefaultPct = pct
	return s, nil
}
