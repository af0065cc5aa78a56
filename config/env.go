package config

import (
	"sync"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnv loads a .env file into the process environment exactly once, never
// overriding variables already set. A missing file is fine; accounts just
// resolve empty credentials and get disabled.
func LoadEnv(path string) {
	envOnce.Do(func() {
		if path == "" {
			path = ".env"
		}
		_ = godotenv.Load(path)
	})
}
