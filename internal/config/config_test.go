package config

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("VENDOR_API_TOKEN", "secret")
	t.Setenv("PORT", "")
	t.Setenv("VENDOR_BASE_URL", "")
	t.Setenv("REPORT_TIMEZONE", "UTC")
	t.Setenv("VENDOR_RATE_LIMIT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://api.simpliroute.com", cfg.VendorBaseURL)
	assert.Equal(t, "secret", cfg.VendorToken)
	assert.Equal(t, 10.0, cfg.VendorRateLimit)
	assert.Equal(t, "UTC", cfg.Location.String())
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("VENDOR_API_TOKEN", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("VENDOR_API_TOKEN", "secret")
	t.Setenv("REPORT_TIMEZONE", "Mars/Olympus")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("VENDOR_API_TOKEN", "secret")
	t.Setenv("REPORT_TIMEZONE", "America/Santiago")
	t.Setenv("VENDOR_BASE_URL", "http://localhost:9090/")
	t.Setenv("VENDOR_RATE_LIMIT", "0")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9090", cfg.VendorBaseURL)
	assert.Equal(t, 0.0, cfg.VendorRateLimit)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, "America/Santiago", cfg.Location.String())
}

func TestLoad_RateLimitDisabled(t *testing.T) {
	t.Setenv("VENDOR_API_TOKEN", "secret")
	t.Setenv("REPORT_TIMEZONE", "UTC")
	t.Setenv("RATE_LIMIT_RPS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.RateLimitRPS)

	t.Setenv("RATE_LIMIT_RPS", "-3")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
}

func TestLoad_TrustedProxies(t *testing.T) {
	t.Setenv("VENDOR_API_TOKEN", "secret")
	t.Setenv("REPORT_TIMEZONE", "UTC")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.10,,fd00::1/64")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.0.2.10/32"),
		netip.MustParsePrefix("fd00::/64"),
	}, cfg.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/33")
	_, err = Load()
	assert.Error(t, err)
}
