package main

import (
	"math/rand"
	"time"

	"github.com/jmoiron/sqlx"
)

func init() { // nolint:gochecknoinits
	sqlx.NameMapper = func(v string) string { return v }

	// Chart series get random colors by default.
	rand.Seed(time.Now().UnixNano())
}
