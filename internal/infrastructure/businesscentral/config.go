package businesscentral

import (
	"errors"
	"strings"
	"time"
)

// Authentication modes
const (
	AuthTypeOAuth = "OAuth"
	AuthTypeBasic = "Basic"
)

const (
	// DefaultScope is the client credentials scope of the Business Central API
	DefaultScope = "https://api.businesscentral.dynamics.com/.default"
	// DefaultTimeout bounds a single remote call
	DefaultTimeout = 100 * time.Second
	// MaxConnsPerHost is the connection ceiling towards Business Central
	MaxConnsPerHost = 20
	// DefaultMaxPages bounds @odata.nextLink paging of a single listing
	DefaultMaxPages = 50
)

// Config holds the connection settings for a Business Central environment
type Config struct {
	// BaseURL is the OData root, e.g. https://api.businesscentral.dynamics.com/v2.0/{tenant}/{env}/ODataV4
	BaseURL string
	// Company is the company name used in Company('...') paths and codeunit calls
	Company string
	// AuthType is OAuth or Basic
	AuthType string

	TenantID     string
	ClientID     string
	ClientSecret string
	// TokenURL overrides the Microsoft identity endpoint derived from TenantID
	TokenURL string
	Scope    string

	Username string
	Password string

	Timeout time.Duration
	// Verbose logs every response body pretty printed
	Verbose  bool
	MaxPages int
}

// Defaults are the codes Business Central requires on creation when the
// logical entity does not carry them.
type Defaults struct {
	InventoryPostingGroup                string
	ItemCategoryCode                     string
	GenProdPostingGroup                  string
	ReplenishmentSystem                  string
	ReplenishmentSystemPurchaseIndicator string
	RoutingLinkRawMaterial               string
}

// Errors for Business Central configuration
var (
	ErrConfigMissingBaseURL      = errors.New("businesscentral: base URL is required")
	ErrConfigMissingCompany      = errors.New("businesscentral: company is required")
	ErrConfigInvalidAuthType     = errors.New("businesscentral: auth type must be OAuth or Basic")
	ErrConfigMissingClientID     = errors.New("businesscentral: client ID is required for OAuth")
	ErrConfigMissingClientSecret = errors.New("businesscentral: client secret is required for OAuth")
	ErrConfigMissingTenant       = errors.New("businesscentral: tenant ID or token URL is required for OAuth")
	ErrConfigMissingUsername     = errors.New("businesscentral: username is required for Basic")
)

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.Company == "" {
		return ErrConfigMissingCompany
	}
	switch c.AuthType {
	case AuthTypeOAuth:
		if c.ClientID == "" {
			return ErrConfigMissingClientID
		}
		if c.ClientSecret == "" {
			return ErrConfigMissingClientSecret
		}
		if c.TenantID == "" && c.TokenURL == "" {
			return ErrConfigMissingTenant
		}
	case AuthTypeBasic:
		if c.Username == "" {
			return ErrConfigMissingUsername
		}
	default:
		return ErrConfigInvalidAuthType
	}

	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.TokenURL == "" && c.AuthType == AuthTypeOAuth {
		c.TokenURL = "https://login.microsoftonline.com/" + c.TenantID + "/oauth2/v2.0/token"
	}
	if c.Scope == "" {
		c.Scope = DefaultScope
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxPages <= 0 {
		c.MaxPages = DefaultMaxPages
	}
	return nil
}
