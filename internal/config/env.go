package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env files from dir and the working directory.
// Variables already set in the process environment are kept.
func loadEnvFiles(dir string) {
	seen := map[string]bool{}
	for _, base := range []string{dir, "."} {
		for _, name := range envFiles {
			path := filepath.Join(base, name)
			abs, err := filepath.Abs(path)
			if err != nil || seen[abs] {
				continue
			}
			seen[abs] = true
			if _, err := os.Stat(path); err != nil {
				continue
			}
			_ = godotenv.Load(path)
		}
	}
}
