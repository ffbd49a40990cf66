package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values. Every key needs a
// default here so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)

	v.SetDefault("pdf.pool_size", 2)
	v.SetDefault("pdf.timeout", 30*time.Second)
	v.SetDefault("pdf.chrome_path", "")

	v.SetDefault("pdf.breaker.enabled", true)
	v.SetDefault("pdf.breaker.max_requests", 1)
	v.SetDefault("pdf.breaker.interval", 60*time.Second)
	v.SetDefault("pdf.breaker.timeout", 30*time.Second)
	v.SetDefault("pdf.breaker.min_requests", 3)
	v.SetDefault("pdf.breaker.failure_threshold", 0.6)

	// Failed DOCX packaging is a failed cell unless this is switched on
	v.SetDefault("docx.placeholder_on_error", false)

	v.SetDefault("batch.concurrency", 3)

	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("cache.prefix", "cvgen:")

	v.SetDefault("database_url", "")

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}
