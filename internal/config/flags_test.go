package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{"localhost", "localhost:4000", "localhost", 4000, false},
		{"ip address", "127.0.0.1:8080", "127.0.0.1", 8080, false},
		{"missing port", "localhost", "", 0, true},
		{"non-numeric port", "localhost:http", "", 0, true},
		{"zero port", "localhost:0", "", 0, true},
		{"bad host", "not-an-ip:4000", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, addr.Host)
			assert.Equal(t, tt.wantPort, addr.Port)
		})
	}
}

func TestNetAddress_String(t *testing.T) {
	addr := NetAddress{Host: "localhost", Port: 4000}
	assert.Equal(t, "localhost:4000", addr.String())

	var empty NetAddress
	assert.Equal(t, "", empty.String())
}
