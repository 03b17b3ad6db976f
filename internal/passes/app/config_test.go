package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_FILE", "JWT_ISSUER", "TOKEN_TTL", "ONE_PASS_PER_USER", "DISPATCH_MIN_DELAY", "DISPATCH_MAX_DELAY", "WHATSAPP_TEMPLATE"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, "passes.db", cfg.DatabaseFile)
	require.Equal(t, "eventpass", cfg.Issuer)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.False(t, cfg.OnePassPerUser)
	require.Equal(t, time.Second, cfg.DispatchMinDelay)
	require.Equal(t, 4*time.Second, cfg.DispatchMaxDelay)
	require.Equal(t, "pass_notification", cfg.WhatsAppTemplate)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ONE_PASS_PER_USER", "true")
	t.Setenv("DISPATCH_MIN_DELAY", "250ms")
	t.Setenv("DISPATCH_MAX_DELAY", "2")
	t.Setenv("TOKEN_TTL", "garbage")

	cfg := LoadConfig()
	require.Equal(t, 8081, cfg.Port)
	require.True(t, cfg.OnePassPerUser)
	require.Equal(t, 250*time.Millisecond, cfg.DispatchMinDelay)
	require.Equal(t, 2*time.Second, cfg.DispatchMaxDelay)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestValidate(t *testing.T) {
	valid := Config{
		JWTSecret:        "0123456789abcdef0123456789abcdef",
		Port:             3000,
		DispatchMinDelay: time.Second,
		DispatchMaxDelay: 4 * time.Second,
	}
	require.NoError(t, valid.Validate())

	weak := valid
	weak.JWTSecret = "short"
	require.ErrorContains(t, weak.Validate(), "JWT_SECRET")

	port := valid
	port.Port = 0
	require.ErrorContains(t, port.Validate(), "PORT")

	delays := valid
	delays.DispatchMaxDelay = 500 * time.Millisecond
	require.ErrorContains(t, delays.Validate(), "DISPATCH_MIN_DELAY")
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("EVENTPASS_TEST_VALUE=from-file\n"), 0o600))
	t.Setenv("EVENTPASS_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("EVENTPASS_TEST_VALUE"))

	require.NoError(t, LoadEnvFile(path))
	require.Equal(t, "from-file", os.Getenv("EVENTPASS_TEST_VALUE"))
}

func TestWhatsAppEnabled(t *testing.T) {
	require.False(t, Config{}.WhatsAppEnabled())
	require.False(t, Config{WhatsAppPhoneNumberID: "123"}.WhatsAppEnabled())
	require.True(t, Config{WhatsAppPhoneNumberID: "123", WhatsAppAccessToken: "tok"}.WhatsAppEnabled())
}
