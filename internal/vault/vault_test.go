// internal/vault/vault_test.go
//
// Unit-tests for the renewal back-off decision.
//
// Run: go test ./internal/vault -v

package vault

import (
	"errors"
	"testing"
	"time"

	vault "github.com/hashicorp/vault/api"
)

func TestRenewDelay(t *testing.T) {
	tests := []struct {
		name string
		sec  *vault.Secret
		err  error
		want time.Duration
	}{
		{"renew error retries soon", nil, errors.New("permission denied"), 30 * time.Second},
		{"nil secret probes hourly", nil, nil, time.Hour},
		{"secret without auth block probes hourly", &vault.Secret{}, nil, time.Hour},
		{"non-renewable token probes hourly",
			&vault.Secret{Auth: &vault.SecretAuth{Renewable: false}}, nil, time.Hour},
		{"renewable token sleeps half the lease",
			&vault.Secret{Auth: &vault.SecretAuth{Renewable: true, LeaseDuration: 3600}}, nil,
			30 * time.Minute},
	}
	for _, tt := range tests {
		if got := renewDelay(tt.sec, tt.err); got != tt.want {
			t.Errorf("%s: delay = %v, want %v", tt.name, got, tt.want)
		}
	}
}
