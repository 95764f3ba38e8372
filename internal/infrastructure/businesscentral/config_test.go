package businesscentral

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:   "valid oauth",
			config: Config{BaseURL: "https://bc/ODataV4/", Company: "C", AuthType: AuthTypeOAuth, TenantID: "t", ClientID: "id", ClientSecret: "s"},
		},
		{
			name:   "valid basic",
			config: Config{BaseURL: "https://bc/ODataV4", Company: "C", AuthType: AuthTypeBasic, Username: "u"},
		},
		{
			name:    "missing base URL",
			config:  Config{Company: "C", AuthType: AuthTypeBasic, Username: "u"},
			wantErr: ErrConfigMissingBaseURL,
		},
		{
			name:    "missing company",
			config:  Config{BaseURL: "https://bc", AuthType: AuthTypeBasic, Username: "u"},
			wantErr: ErrConfigMissingCompany,
		},
		{
			name:    "unknown auth type",
			config:  Config{BaseURL: "https://bc", Company: "C", AuthType: "NTLM"},
			wantErr: ErrConfigInvalidAuthType,
		},
		{
			name:    "oauth without client id",
			config:  Config{BaseURL: "https://bc", Company: "C", AuthType: AuthTypeOAuth, TenantID: "t", ClientSecret: "s"},
			wantErr: ErrConfigMissingClientID,
		},
		{
			name:    "oauth without secret",
			config:  Config{BaseURL: "https://bc", Company: "C", AuthType: AuthTypeOAuth, TenantID: "t", ClientID: "id"},
			wantErr: ErrConfigMissingClientSecret,
		},
		{
			name:    "oauth without tenant",
			config:  Config{BaseURL: "https://bc", Company: "C", AuthType: AuthTypeOAuth, ClientID: "id", ClientSecret: "s"},
			wantErr: ErrConfigMissingTenant,
		},
		{
			name:    "basic without username",
			config:  Config{BaseURL: "https://bc", Company: "C", AuthType: AuthTypeBasic},
			wantErr: ErrConfigMissingUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.False(t, strings.HasSuffix(tt.config.BaseURL, "/"))
			assert.Equal(t, DefaultScope, tt.config.Scope)
			assert.Equal(t, DefaultTimeout, tt.config.Timeout)
			assert.Equal(t, DefaultMaxPages, tt.config.MaxPages)
		})
	}
}

func TestConfig_Validate_DerivesTokenURL(t *testing.T) {
	cfg := Config{
		BaseURL:      "https://bc",
		Company:      "C",
		AuthType:     AuthTypeOAuth,
		TenantID:     "contoso",
		ClientID:     "id",
		ClientSecret: "s",
		Timeout:      5 * time.Second,
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://login.microsoftonline.com/contoso/oauth2/v2.0/token", cfg.TokenURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}
