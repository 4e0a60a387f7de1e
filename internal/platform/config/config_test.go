// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/syncbridge/internal/platform/config"
	"github.com/taibuivan/syncbridge/internal/platform/sec"
)

/*
TestLoad_Defaults verifies the documented defaults for a minimal sqlite setup.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 325, cfg.MissionTotalDays)
	assert.Equal(t, time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC), cfg.MissionStartDate)
	assert.Equal(t, 5, cfg.AdminMaxFailedAttempts)
	assert.Equal(t, 15*time.Minute, cfg.AdminLockoutWindow)
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.AllowedOrigins())
	assert.False(t, cfg.TrustProxy)
}

/*
TestLoad_AdminPasswordHash accepts a digest from HashAdminPassword.
*/
func TestLoad_AdminPasswordHash(t *testing.T) {
	digest, err := sec.HashAdminPassword("s3cret")
	require.NoError(t, err)

	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_PASSWORD_HASH", digest)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, digest, cfg.AdminPasswordHash)
}

/*
TestLoad_Invalid covers the cross-field rules.
*/
func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres_without_url", map[string]string{"STORAGE_DRIVER": "postgres", "ADMIN_PASSWORD": "x"}},
		{"unknown_driver", map[string]string{"STORAGE_DRIVER": "mongo", "ADMIN_PASSWORD": "x"}},
		{"no_admin_secret", map[string]string{"STORAGE_DRIVER": "sqlite"}},
		{"both_admin_secrets", map[string]string{"STORAGE_DRIVER": "sqlite", "ADMIN_PASSWORD": "x", "ADMIN_PASSWORD_HASH": "y"}},
		{"malformed_admin_hash", map[string]string{"STORAGE_DRIVER": "sqlite", "ADMIN_PASSWORD_HASH": "plaintext"}},
		{"bad_start_date", map[string]string{"STORAGE_DRIVER": "sqlite", "ADMIN_PASSWORD": "x", "MISSION_START_DATE": "22/02/2026"}},
		{"zero_total_days", map[string]string{"STORAGE_DRIVER": "sqlite", "ADMIN_PASSWORD": "x", "MISSION_TOTAL_DAYS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			t.Setenv("ADMIN_PASSWORD", "")
			t.Setenv("ADMIN_PASSWORD_HASH", "")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

/*
TestAllowedOrigins trims and drops empty entries.
*/
func TestAllowedOrigins(t *testing.T) {
	cfg := &config.Config{CORSOrigins: " https://syncbridge.app, ,https://admin.syncbridge.app "}
	assert.Equal(t, []string{"https://syncbridge.app", "https://admin.syncbridge.app"}, cfg.AllowedOrigins())
}
