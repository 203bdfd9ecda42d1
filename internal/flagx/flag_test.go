package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	configFlags := []string{"-c", "-config"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{"separate value", []string{"-c", "onepass.toml", "-a", ":50051"}, configFlags, []string{"-c", "onepass.toml"}},
		{"equals form", []string{"-config=onepass.json", "-a", ":50051"}, configFlags, []string{"-config=onepass.json"}},
		{"equals value starting with dash", []string{"-config=-odd.json"}, configFlags, []string{"-config=-odd.json"}},
		{"nothing allowed present", []string{"-t", "15", "serve"}, configFlags, []string{}},
		{"empty", nil, configFlags, []string{}},
		{"trailing flag without value", []string{"-a", ":1", "-c"}, configFlags, []string{"-c"}},
		{"next token is a flag", []string{"-c", "-d", "sqlite://x.db"}, configFlags, []string{"-c"}},
		{"server flags out of a mixed line",
			[]string{"-t", "15", "-c", "onepass.toml", "-d", "sqlite://vault.db", "-pwned=false"},
			[]string{"-d", "-t", "-pwned"},
			[]string{"-t", "15", "-d", "sqlite://vault.db", "-pwned=false"}},
		{"repeats keep order", []string{"-c", "one.json", "-config=two.json", "-c", "three.json"}, configFlags,
			[]string{"-c", "one.json", "-config=two.json", "-c", "three.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	t.Run("short -c with value", func(t *testing.T) {
		assert.Equal(t, "/path/short.json", ConfigFileFlag([]string{"-c", "/path/short.json"}))
	})

	t.Run("long -config with toml file", func(t *testing.T) {
		assert.Equal(t, "/path/long.toml", ConfigFileFlag([]string{"-config", "/path/long.toml"}))
	})

	t.Run("equals form mixed with server flags", func(t *testing.T) {
		args := []string{"-a", ":9000", "-config=/etc/onepass.toml", "-d", "sqlite://x.db"}
		assert.Equal(t, "/etc/onepass.toml", ConfigFileFlag(args))
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		assert.Empty(t, ConfigFileFlag([]string{"-x", "1", "-y", "2"}))
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		assert.Equal(t, "/path/2.json", ConfigFileFlag([]string{"-c", "/path/1.json", "-config", "/path/2.json"}))
	})
}
