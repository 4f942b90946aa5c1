package mdns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPort(t *testing.T) {
	tests := []struct {
		addr    string
		want    int
		wantErr bool
	}{
		{addr: ":80", want: 80},
		{addr: "0.0.0.0:8080", want: 8080},
		{addr: "[::]:9000", want: 9000},
		{addr: "localhost", wantErr: true},
		{addr: ":http", wantErr: true},
		{addr: ":0", wantErr: true},
		{addr: ":70000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			got, err := Port(tt.addr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTXT(t *testing.T) {
	txt := TXT("1.2.3")
	assert.Contains(t, txt, "path=/api/status")
	assert.Contains(t, txt, "version=1.2.3")
}

func TestInstanceName(t *testing.T) {
	assert.Equal(t, "LED-Control", InstanceName("LED-Control"))
	assert.Regexp(t, `^ledstripd-.+`, InstanceName(""))
}

func TestShutdownNil(t *testing.T) {
	var a *Advertiser
	assert.NotPanics(t, a.Shutdown)
}
