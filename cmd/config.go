package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ndtran/netdiag/internal/cache"
	"github.com/ndtran/netdiag/internal/diagnose"
)

const (
	defaultHTTPTimeoutSeconds       = 5
	defaultTLSTimeoutSeconds        = 5
	defaultPingTimeoutSeconds       = 2
	defaultTracerouteTimeoutSeconds = 20

	defaultDNSTTLSeconds   = 300
	defaultHTTPTTLSeconds  = 60
	defaultSSLTTLSeconds   = 300
	defaultGeoIPTTLSeconds = 86400
)

// setConfigDefaults registers every config key with its built-in
// default so a missing config file still yields a working setup.
func setConfigDefaults() {
	viper.SetDefault("probe.http_timeout_secs", defaultHTTPTimeoutSeconds)
	viper.SetDefault("probe.ssl_timeout_secs", defaultTLSTimeoutSeconds)
	viper.SetDefault("probe.ping_timeout_secs", defaultPingTimeoutSeconds)
	viper.SetDefault("probe.traceroute_timeout_secs", defaultTracerouteTimeoutSeconds)

	viper.SetDefault("cache.ttl.dns", defaultDNSTTLSeconds)
	viper.SetDefault("cache.ttl.http", defaultHTTPTTLSeconds)
	viper.SetDefault("cache.ttl.ssl", defaultSSLTTLSeconds)
	viper.SetDefault("cache.ttl.geoip", defaultGeoIPTTLSeconds)

	viper.SetDefault("redis.url", "redis://localhost:6379/0")
	viper.SetDefault("geoip.base_url", "https://ipapi.co")
	viper.SetDefault("defaults.mode", "")
}

// applyConfigDefaults merges config file defaults into flags the user
// did not explicitly set on the command line.
func applyConfigDefaults(cmd *cobra.Command) {
	if mode := viper.GetString("defaults.mode"); mode != "" {
		setStringFlagIfUnset(cmd.Flags(), "mode", mode)
	}
}

func setStringFlagIfUnset(flags *pflag.FlagSet, name, value string) {
	if flags == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag == nil || flag.Changed {
		return
	}
	_ = flag.Value.Set(value)
}

func configSeconds(key string) time.Duration {
	return time.Duration(viper.GetInt(key)) * time.Second
}

// diagnosticsConfig assembles the agent configuration from viper
// settings. A cache backend that cannot be constructed disables
// caching rather than failing the command.
func diagnosticsConfig(includeTraceroute, noCache bool) diagnose.Config {
	cfg := diagnose.Config{
		HTTPTimeout:       configSeconds("probe.http_timeout_secs"),
		TLSTimeout:        configSeconds("probe.ssl_timeout_secs"),
		PingTimeout:       configSeconds("probe.ping_timeout_secs"),
		TracerouteTimeout: configSeconds("probe.traceroute_timeout_secs"),
		GeoIPBaseURL:      viper.GetString("geoip.base_url"),
		TTL: diagnose.TTLConfig{
			DNS:   configSeconds("cache.ttl.dns"),
			SSL:   configSeconds("cache.ttl.ssl"),
			HTTP:  configSeconds("cache.ttl.http"),
			GeoIP: configSeconds("cache.ttl.geoip"),
		},
		IncludeTraceroute: includeTraceroute,
		Logger:            logger.Desugar(),
	}

	if noCache {
		cfg.Cache = cache.Disabled()
		return cfg
	}
	store, err := cache.NewRedisStore(viper.GetString("redis.url"))
	if err != nil {
		logger.Warnw("cache disabled: invalid redis url", "error", err)
		cfg.Cache = cache.Disabled()
		return cfg
	}
	cfg.Cache = cache.New(store, cfg.Logger)
	return cfg
}
