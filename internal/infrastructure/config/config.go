package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/erp/bcadapter/internal/application/erp"
	"github.com/erp/bcadapter/internal/domain/shared"
	"github.com/erp/bcadapter/internal/infrastructure/businesscentral"
	"github.com/erp/bcadapter/internal/infrastructure/cache"
	"github.com/erp/bcadapter/internal/infrastructure/logger"
	"github.com/erp/bcadapter/internal/infrastructure/telemetry"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App             AppConfig
	Log             LogConfig
	HTTP            HTTPConfig
	BusinessCentral BusinessCentralConfig
	Defaults        DefaultsConfig
	Enrichment      EnrichmentConfig
	Idempotency     IdempotencyConfig
	Telemetry       TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name    string
	Env     string `validate:"oneof=development testing staging production"`
	Port    string `validate:"required,numeric"`
	Version string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn warning error"` // debug, info, warn, error
	Format string `validate:"oneof=json console"`
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxHeaderBytes  int
	MaxBodySize     int64 `validate:"gt=0"`
	TrustedProxies  []string
}

// BusinessCentralConfig holds the remote connection settings
type BusinessCentralConfig struct {
	BaseURL  string `validate:"required,url"`
	Company  string `validate:"required"`
	AuthType string `validate:"oneof=OAuth Basic"`

	TenantID     string
	ClientID     string `validate:"required_if=AuthType OAuth"`
	ClientSecret string `validate:"required_if=AuthType OAuth"`
	TokenURL     string `validate:"omitempty,url"`
	Scope        string

	Username string `validate:"required_if=AuthType Basic"`
	Password string `validate:"required_if=AuthType Basic"`

	Timeout  time.Duration
	Verbose  bool
	MaxPages int `validate:"gte=0"`
}

// DefaultsConfig holds the codes written on creation when an entity does not carry them
type DefaultsConfig struct {
	InventoryPostingGroup   string `validate:"required"`
	ItemCategoryCode        string `validate:"required"`
	GenProdPostingGroup     string `validate:"required"`
	ReplenishmentSystem     string `validate:"required"`
	PurchaseIndicator       string `validate:"required"`
	RoutingLinkRawMaterial  string `validate:"required"`
	CheckDirectoryOnStartup bool
}

// EnrichmentConfig names the secondary attributes and links of an item and
// bounds the per-request fan-out of child reads
type EnrichmentConfig struct {
	Concurrency          int    `validate:"gte=1,lte=20"`
	AttributeDescription string `validate:"required"`
	AttributeMaterial    string `validate:"required"`
	LinkThinClient       string `validate:"required"`
	LinkThickClient      string `validate:"required"`
}

// IdempotencyConfig controls replay protection of create requests carrying
// an Idempotency-Key header. An empty RedisAddr keeps keys in memory.
type IdempotencyConfig struct {
	Enabled       bool
	TTL           time.Duration
	RedisAddr     string `validate:"omitempty,hostname_port"`
	RedisPassword string
	RedisDB       int `validate:"gte=0"`
	RequireRedis  bool
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool          // Whether to enable OpenTelemetry
	CollectorEndpoint string        // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64       `validate:"gte=0,lte=1"`
	ServiceName       string        // Service name for traces
	Insecure          bool          // Use insecure (non-TLS) connection (development only)
	ExportInterval    time.Duration // Metric push period
	LogsEnabled       bool          // Ship warn+ log entries to the collector
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with ERP_ prefix (e.g., ERP_BUSINESS_CENTRAL_CLIENT_SECRET)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	return fromViper(v)
}

// LoadFile loads configuration from an explicit file, still honouring ERP_ variables
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("ERP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("idempotency.enabled", true)

	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("app.name"),
			Env:     v.GetString("app.env"),
			Port:    v.GetString("app.port"),
			Version: v.GetString("app.version"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			IdleTimeout:     v.GetDuration("http.idle_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
			MaxHeaderBytes:  v.GetInt("http.max_header_bytes"),
			MaxBodySize:     v.GetInt64("http.max_body_size"),
			TrustedProxies:  v.GetStringSlice("http.trusted_proxies"),
		},
		BusinessCentral: BusinessCentralConfig{
			BaseURL:      v.GetString("business_central.base_url"),
			Company:      v.GetString("business_central.company"),
			AuthType:     v.GetString("business_central.auth_type"),
			TenantID:     v.GetString("business_central.tenant_id"),
			ClientID:     v.GetString("business_central.client_id"),
			ClientSecret: v.GetString("business_central.client_secret"),
			TokenURL:     v.GetString("business_central.token_url"),
			Scope:        v.GetString("business_central.scope"),
			Username:     v.GetString("business_central.username"),
			Password:     v.GetString("business_central.password"),
			Timeout:      v.GetDuration("business_central.timeout"),
			Verbose:      v.GetBool("business_central.verbose"),
			MaxPages:     v.GetInt("business_central.max_pages"),
		},
		Defaults: DefaultsConfig{
			InventoryPostingGroup:   v.GetString("defaults.inventory_posting_group"),
			ItemCategoryCode:        v.GetString("defaults.item_category_code"),
			GenProdPostingGroup:     v.GetString("defaults.gen_prod_posting_group"),
			ReplenishmentSystem:     v.GetString("defaults.replenishment_system"),
			PurchaseIndicator:       v.GetString("defaults.purchase_indicator"),
			RoutingLinkRawMaterial:  v.GetString("defaults.routing_link_raw_material"),
			CheckDirectoryOnStartup: v.GetBool("defaults.check_directory_on_startup"),
		},
		Enrichment: EnrichmentConfig{
			Concurrency:          v.GetInt("enrichment.concurrency"),
			AttributeDescription: v.GetString("enrichment.attribute_description"),
			AttributeMaterial:    v.GetString("enrichment.attribute_material"),
			LinkThinClient:       v.GetString("enrichment.link_thin_client"),
			LinkThickClient:      v.GetString("enrichment.link_thick_client"),
		},
		Idempotency: IdempotencyConfig{
			Enabled:       v.GetBool("idempotency.enabled"),
			TTL:           v.GetDuration("idempotency.ttl"),
			RedisAddr:     v.GetString("idempotency.redis_addr"),
			RedisPassword: v.GetString("idempotency.redis_password"),
			RedisDB:       v.GetInt("idempotency.redis_db"),
			RequireRedis:  v.GetBool("idempotency.require_redis"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			ExportInterval:    v.GetDuration("telemetry.export_interval"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "bcadapter"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	// Writes fan out to several remote calls of up to the client timeout each
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 5 * time.Minute
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 30 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 50 << 20 // 50MB, document payloads
	}
	if cfg.BusinessCentral.AuthType == "" {
		cfg.BusinessCentral.AuthType = businesscentral.AuthTypeOAuth
	}
	if cfg.BusinessCentral.Scope == "" {
		cfg.BusinessCentral.Scope = businesscentral.DefaultScope
	}
	if cfg.BusinessCentral.Timeout == 0 {
		cfg.BusinessCentral.Timeout = businesscentral.DefaultTimeout
	}
	if cfg.BusinessCentral.MaxPages == 0 {
		cfg.BusinessCentral.MaxPages = businesscentral.DefaultMaxPages
	}
	if cfg.Defaults.InventoryPostingGroup == "" {
		cfg.Defaults.InventoryPostingGroup = "RESALE"
	}
	if cfg.Defaults.ItemCategoryCode == "" {
		cfg.Defaults.ItemCategoryCode = "PARTS"
	}
	if cfg.Defaults.GenProdPostingGroup == "" {
		cfg.Defaults.GenProdPostingGroup = "RETAIL"
	}
	if cfg.Defaults.ReplenishmentSystem == "" {
		cfg.Defaults.ReplenishmentSystem = "Purchase"
	}
	if cfg.Defaults.PurchaseIndicator == "" {
		cfg.Defaults.PurchaseIndicator = cfg.Defaults.ReplenishmentSystem
	}
	if cfg.Defaults.RoutingLinkRawMaterial == "" {
		cfg.Defaults.RoutingLinkRawMaterial = "RAW"
	}
	composition := erp.DefaultSettings()
	if cfg.Enrichment.Concurrency == 0 {
		cfg.Enrichment.Concurrency = composition.Concurrency
	}
	if cfg.Enrichment.AttributeDescription == "" {
		cfg.Enrichment.AttributeDescription = composition.AttributeDescription
	}
	if cfg.Enrichment.AttributeMaterial == "" {
		cfg.Enrichment.AttributeMaterial = composition.AttributeMaterial
	}
	if cfg.Enrichment.LinkThinClient == "" {
		cfg.Enrichment.LinkThinClient = composition.LinkThinClient
	}
	if cfg.Enrichment.LinkThickClient == "" {
		cfg.Enrichment.LinkThickClient = composition.LinkThickClient
	}
	if cfg.Idempotency.TTL == 0 {
		cfg.Idempotency.TTL = shared.DefaultIdempotencyConfig().TTL
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317" // Default gRPC endpoint
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.ExportInterval == 0 {
		cfg.Telemetry.ExportInterval = 60 * time.Second
	}
	// Note: Insecure defaults to false (TLS enabled by default)
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid configuration: %s", describe(verrs[0]))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	bc := c.BusinessCentral
	if bc.AuthType == businesscentral.AuthTypeOAuth && bc.TenantID == "" && bc.TokenURL == "" {
		return fmt.Errorf("invalid configuration: business_central.tenant_id or business_central.token_url is required for OAuth")
	}

	if c.App.Env == "production" {
		if c.BusinessCentral.Verbose {
			return fmt.Errorf("business_central.verbose must be false in production (response bodies would be logged)")
		}
		if c.Telemetry.Enabled && c.Telemetry.Insecure {
			return fmt.Errorf("telemetry.insecure cannot be true in production")
		}
	}

	return nil
}

// describe renders a validation error with the config key of the offending field
func describe(fe validator.FieldError) string {
	key := toSnake(strings.TrimPrefix(fe.Namespace(), "Config."))
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", key)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s=%s", key, fe.Tag(), fe.Param())
	}
}

// toSnake turns "BusinessCentral.ClientID" into "business_central.client_id"
func toSnake(namespace string) string {
	parts := strings.Split(namespace, ".")
	for i, part := range parts {
		var b strings.Builder
		runes := []rune(part)
		for j, r := range runes {
			upper := r >= 'A' && r <= 'Z'
			if upper && j > 0 {
				prevLower := runes[j-1] >= 'a' && runes[j-1] <= 'z'
				nextLower := j+1 < len(runes) && runes[j+1] >= 'a' && runes[j+1] <= 'z'
				if prevLower || nextLower {
					b.WriteByte('_')
				}
			}
			if upper {
				r += 'a' - 'A'
			}
			b.WriteRune(r)
		}
		parts[i] = b.String()
	}
	return strings.Join(parts, ".")
}

// BusinessCentralClient maps the section onto the client configuration
func (c *Config) BusinessCentralClient() businesscentral.Config {
	bc := c.BusinessCentral
	return businesscentral.Config{
		BaseURL:      bc.BaseURL,
		Company:      bc.Company,
		AuthType:     bc.AuthType,
		TenantID:     bc.TenantID,
		ClientID:     bc.ClientID,
		ClientSecret: bc.ClientSecret,
		TokenURL:     bc.TokenURL,
		Scope:        bc.Scope,
		Username:     bc.Username,
		Password:     bc.Password,
		Timeout:      bc.Timeout,
		Verbose:      bc.Verbose,
		MaxPages:     bc.MaxPages,
	}
}

// CreationDefaults maps the defaults section onto the client's creation defaults
func (c *Config) CreationDefaults() businesscentral.Defaults {
	d := c.Defaults
	return businesscentral.Defaults{
		InventoryPostingGroup:                d.InventoryPostingGroup,
		ItemCategoryCode:                     d.ItemCategoryCode,
		GenProdPostingGroup:                  d.GenProdPostingGroup,
		ReplenishmentSystem:                  d.ReplenishmentSystem,
		ReplenishmentSystemPurchaseIndicator: d.PurchaseIndicator,
		RoutingLinkRawMaterial:               d.RoutingLinkRawMaterial,
	}
}

// Composition maps the defaults and enrichment sections onto the entity composition settings
func (c *Config) Composition() erp.Settings {
	return erp.Settings{
		AttributeDescription: c.Enrichment.AttributeDescription,
		AttributeMaterial:    c.Enrichment.AttributeMaterial,
		LinkThinClient:       c.Enrichment.LinkThinClient,
		LinkThickClient:      c.Enrichment.LinkThickClient,
		PurchaseIndicator:    c.Defaults.PurchaseIndicator,
		RawMaterialMarker:    c.Defaults.RoutingLinkRawMaterial,
		Concurrency:          c.Enrichment.Concurrency,
	}
}

// TelemetryProviders maps the telemetry section onto the provider configuration
func (c *Config) TelemetryProviders() telemetry.Config {
	t := c.Telemetry
	return telemetry.Config{
		Enabled:           t.Enabled,
		CollectorEndpoint: t.CollectorEndpoint,
		SamplingRatio:     t.SamplingRatio,
		ServiceName:       t.ServiceName,
		ServiceVersion:    c.App.Version,
		Insecure:          t.Insecure,
		ExportInterval:    t.ExportInterval,
		LogsEnabled:       t.LogsEnabled,
	}
}

// IdempotencyStore maps the idempotency section onto the store configuration
func (c *Config) IdempotencyStore() cache.Config {
	i := c.Idempotency
	return cache.Config{
		TTL:           i.TTL,
		RedisAddr:     i.RedisAddr,
		RedisPassword: i.RedisPassword,
		RedisDB:       i.RedisDB,
		RequireRedis:  i.RequireRedis,
	}
}

// IdempotencyPolicy maps the idempotency section onto the middleware policy
func (c *Config) IdempotencyPolicy() shared.IdempotencyConfig {
	return shared.IdempotencyConfig{TTL: c.Idempotency.TTL, Enabled: c.Idempotency.Enabled}
}

// Logger maps the log section onto the logger configuration
func (c *Config) Logger() *logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = c.Log.Format
	cfg.Output = c.Log.Output
	return cfg
}
