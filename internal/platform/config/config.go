// Package config builds process configuration from the environment plus the
// embedded constant tables, so main stays lean and nothing global is mutable.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	stringsutil "veridical/pkg/platform/strings"
)

//go:embed tables.yaml
var tablesYAML []byte

// Config is everything main needs to wire the process.
type Config struct {
	Addr          string
	JWTSigningKey string
	Redis         RedisConfig
	Tables        Tables
}

// RedisConfig configures the optional redis-backed key directory. An empty
// URL selects the in-memory directory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Tables holds the immutable constant pools shared by the services. Loaded
// once; treated as read-only for the life of the process.
type Tables struct {
	WatchLists       []string            `yaml:"watch_lists"`
	Agencies         []string            `yaml:"agencies"`
	Severities       []string            `yaml:"severities"`
	Relations        []string            `yaml:"relations"`
	EntityKinds      []string            `yaml:"entity_kinds"`
	DemandCategories []string            `yaml:"demand_categories"`
	StalenessSeconds map[string]int      `yaml:"staleness_seconds"`
	ReferenceVolumes map[string]int      `yaml:"reference_volumes"`
	Directory        map[string][]string `yaml:"directory"`
}

// Staleness returns a service's staleness threshold, defaulting to an hour
// for services the table omits.
func (t Tables) Staleness(service string) time.Duration {
	if secs, ok := t.StalenessSeconds[service]; ok && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return time.Hour
}

// ReferenceVolume returns a service's confidence saturation point.
func (t Tables) ReferenceVolume(service string) int {
	if n, ok := t.ReferenceVolumes[service]; ok && n > 0 {
		return n
	}
	return 1000
}

// FromEnv assembles the full configuration.
func FromEnv() (Config, error) {
	var tables Tables
	if err := yaml.Unmarshal(tablesYAML, &tables); err != nil {
		return Config{}, fmt.Errorf("parse embedded tables: %w", err)
	}
	// Duplicate enum entries would skew the bucketed picks, so pools are
	// cleaned on the way in.
	tables.WatchLists = stringsutil.DedupeAndTrim(tables.WatchLists)
	tables.Agencies = stringsutil.DedupeAndTrim(tables.Agencies)
	tables.Severities = stringsutil.DedupeAndTrim(tables.Severities)
	tables.Relations = stringsutil.DedupeAndTrim(tables.Relations)
	tables.EntityKinds = stringsutil.DedupeAndTrim(tables.EntityKinds)
	tables.DemandCategories = stringsutil.DedupeAndTrim(tables.DemandCategories)

	addr := os.Getenv("VERIDICAL_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Config{
		Addr:          addr,
		JWTSigningKey: os.Getenv("VERIDICAL_JWT_SIGNING_KEY"),
		Redis: RedisConfig{
			URL:          os.Getenv("VERIDICAL_REDIS_URL"),
			PoolSize:     envInt("VERIDICAL_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("VERIDICAL_REDIS_MIN_IDLE", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Tables: tables,
	}, nil
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
