package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

func load() {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file, reading process environment")
		}
	})
}

// Config returns the value of key from .env or the process environment.
func Config(key string) string {
	load()
	return os.Getenv(key)
}

func String(key, def string) string {
	if v := Config(key); v != "" {
		return v
	}
	return def
}

func Int(key string, def int) int {
	v := Config(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

// Duration accepts Go duration strings ("1s", "500ms") or a bare number of milliseconds.
func Duration(key string, def time.Duration) time.Duration {
	v := Config(key)
	if v == "" {
		return def
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
