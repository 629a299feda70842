package cmd

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func TestDiagnosticsConfigDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	setConfigDefaults()

	prev := logger
	logger = zap.NewNop().Sugar()
	defer func() { logger = prev }()

	cfg := diagnosticsConfig(false, true)

	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("unexpected http timeout: %v", cfg.HTTPTimeout)
	}
	if cfg.PingTimeout != 2*time.Second {
		t.Fatalf("unexpected ping timeout: %v", cfg.PingTimeout)
	}
	if cfg.TracerouteTimeout != 20*time.Second {
		t.Fatalf("unexpected traceroute timeout: %v", cfg.TracerouteTimeout)
	}
	if cfg.TTL.DNS != 300*time.Second || cfg.TTL.HTTP != 60*time.Second {
		t.Fatalf("unexpected ttls: %+v", cfg.TTL)
	}
	if cfg.TTL.GeoIP != 86400*time.Second {
		t.Fatalf("unexpected geoip ttl: %v", cfg.TTL.GeoIP)
	}
	if cfg.GeoIPBaseURL != "https://ipapi.co" {
		t.Fatalf("unexpected geoip base url: %s", cfg.GeoIPBaseURL)
	}
	if cfg.IncludeTraceroute {
		t.Fatal("traceroute should stay off by default")
	}
	if cfg.Cache == nil {
		t.Fatal("expected a disabled cache, not nil")
	}
}

func TestDiagnosticsConfigBadRedisURLDisablesCache(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	setConfigDefaults()
	viper.Set("redis.url", "not a url")

	prev := logger
	logger = zap.NewNop().Sugar()
	defer func() { logger = prev }()

	cfg := diagnosticsConfig(false, false)
	if cfg.Cache == nil {
		t.Fatal("invalid redis url must disable the cache, not drop it")
	}
}

func TestSetStringFlagIfUnset(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("mode", "", "")

	setStringFlagIfUnset(flags, "mode", "expert")
	if got, _ := flags.GetString("mode"); got != "expert" {
		t.Fatalf("expected config default applied, got %q", got)
	}

	if err := flags.Parse([]string{"--mode=beginner"}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	setStringFlagIfUnset(flags, "mode", "expert")
	if got, _ := flags.GetString("mode"); got != "beginner" {
		t.Fatalf("explicit flag must win, got %q", got)
	}
}
