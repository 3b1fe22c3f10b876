package pkg

import "os"

// EnvDefault returns the value of key, or def when the variable is unset
// or empty.
func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
