package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{name: "all flags", args: []string{
			"-a", "127.0.0.1:9090", "-l", ":9091", "-d", "postgres://db", "-t", "5", "-i", "300000",
			"-r", "20", "-w", "top.txt", "-v", "debug",
			"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
		}, expected: &Config{
			GRPCAddress:         "127.0.0.1:9090",
			HTTPAddress:         ":9091",
			DatabaseDSN:         "postgres://db",
			SessionTTL:          5 * time.Minute,
			KDFIterations:       300000,
			LoginRatePerMinute:  20,
			CommonPasswordsFile: "top.txt",
			LogLevel:            "debug",
			S3AccessKeyID:       "user",
			S3SecretAccessKey:   "password",
			S3Bucket:            "bucket",
			S3Region:            "us-west-1",
			S3BaseEndpoint:      "http://endpoint",
		}},
		{name: "foreign flags are ignored", args: []string{"-x", "1", "-a", ":1", "--verbose"},
			expected: &Config{GRPCAddress: ":1"}},
		{name: "bad int", args: []string{"-i", "lots"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := parseFlags(cfg, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
