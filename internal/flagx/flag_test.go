package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate value",
			args:         []string{"-a", ":9090", "-d", "postgres://x"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a", ":9090"},
		},
		{
			name:         "equals form",
			args:         []string{"-a=:9090", "-x", "1"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a=:9090"},
		},
		{
			name:         "unknown flags and positionals dropped",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-a"},
			want:         []string{},
		},
		{
			name:         "flag at the end without value",
			args:         []string{"-s"},
			allowedFlags: []string{"-s"},
			want:         []string{"-s"},
		},
		{
			name:         "next flag is not consumed as value",
			args:         []string{"-s", "-t", "5"},
			allowedFlags: []string{"-s", "-t"},
			want:         []string{"-s", "-t", "5"},
		},
		{
			name:         "order preserved",
			args:         []string{"-t", "60", "-a", ":1", "-s", "k"},
			allowedFlags: []string{"-a", "-s", "-t"},
			want:         []string{"-t", "60", "-a", ":1", "-s", "k"},
		},
		{
			name:         "empty",
			args:         nil,
			allowedFlags: []string{"-a"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	assert.Equal(t, "conf.json", ConfigFilePath([]string{"-a", ":8080", "-c", "conf.json"}))
	assert.Equal(t, "alt.json", ConfigFilePath([]string{"-config=alt.json"}))
	assert.Equal(t, "long.json", ConfigFilePath([]string{"--config", "long.json"}))
	assert.Empty(t, ConfigFilePath([]string{"-a", ":8080"}))
	assert.Empty(t, ConfigFilePath(nil))
}
