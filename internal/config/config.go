package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingToken is returned when no vendor API token is configured.
var ErrMissingToken = errors.New("VENDOR_API_TOKEN is required")

// Config contains application configuration.
type Config struct {
	Port string

	VendorBaseURL     string
	VendorDatamartURL string
	VendorToken       string
	VendorRateLimit   float64 // outbound requests per second, 0 disables

	Location *time.Location

	DashboardToken string
	RateLimitRPS   float64 // inbound requests per second per client, 0 disables
	RateLimitBurst int
	TrustedProxies []netip.Prefix

	MQTTBrokerURL string
	MQTTTopic     string
	MQTTClientID  string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables and .env.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		VendorBaseURL:     strings.TrimRight(getEnv("VENDOR_BASE_URL", "https://api.simpliroute.com"), "/"),
		VendorDatamartURL: strings.TrimRight(getEnv("VENDOR_DATAMART_URL", "https://api-gateway.simpliroute.com/datamart"), "/"),
		VendorToken:       os.Getenv("VENDOR_API_TOKEN"),
		VendorRateLimit:   getFloat("VENDOR_RATE_LIMIT", 10),
		DashboardToken:    os.Getenv("DASHBOARD_TOKEN"),
		RateLimitRPS:      getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    getInt("RATE_LIMIT_BURST", 20),
		MQTTBrokerURL:     os.Getenv("MQTT_BROKER_URL"),
		MQTTTopic:         getEnv("MQTT_TOPIC", "fleet/reports"),
		MQTTClientID:      getEnv("MQTT_CLIENT_ID", "fleet-reports"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
	}

	if cfg.VendorToken == "" {
		return Config{}, ErrMissingToken
	}

	tz := getEnv("REPORT_TIMEZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	proxies, err := parsePrefixes(os.Getenv("TRUSTED_PROXIES"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}
	cfg.TrustedProxies = proxies

	return cfg, nil
}

// parsePrefixes reads a comma separated list of CIDR ranges or bare
// addresses.
func parsePrefixes(list string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "/") {
			p, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, err
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, err
		}
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return f
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
