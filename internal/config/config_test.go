package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"jwt_secret": "secret",
		"database": {"host": "localhost", "user": "netly", "db_name": "netly"},
		"redis": {"addr": "localhost:6379"},
		"resend": {"api_key": "rk", "sender_email": "noreply@netly.app"}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 72, cfg.JWTTTLHours)
	require.Equal(t, "https://api.resend.com/emails", cfg.Resend.APIURL)
	require.Equal(t, 2*time.Second, cfg.Resend.SendInterval())
	require.Equal(t, 5*time.Minute, cfg.OTP.Expiration())
	require.Equal(t, time.Minute, cfg.OTP.RequestWindow())
	require.Equal(t, "local", cfg.ReportStore.Type)
	require.Equal(t, "info", cfg.LogConfig.Level)
}

func TestLoadMissingRequired(t *testing.T) {
	cases := map[string]string{
		"port":         `{"jwt_secret":"s","database":{"host":"h"},"redis":{"addr":"a"},"resend":{"api_key":"k","sender_email":"e"}}`,
		"jwt_secret":   `{"port":1,"database":{"host":"h"},"redis":{"addr":"a"},"resend":{"api_key":"k","sender_email":"e"}}`,
		"database":     `{"port":1,"jwt_secret":"s","redis":{"addr":"a"},"resend":{"api_key":"k","sender_email":"e"}}`,
		"redis":        `{"port":1,"jwt_secret":"s","database":{"host":"h"},"resend":{"api_key":"k","sender_email":"e"}}`,
		"resend_key":   `{"port":1,"jwt_secret":"s","database":{"host":"h"},"redis":{"addr":"a"},"resend":{"sender_email":"e"}}`,
		"sender_email": `{"port":1,"jwt_secret":"s","database":{"host":"h"},"redis":{"addr":"a"},"resend":{"api_key":"k"}}`,
	}
	for name, content := range cases {
		_, err := Load(writeConfig(t, content))
		require.Error(t, err, "case %s", name)
	}
}

func TestLoadBadPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
