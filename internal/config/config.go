package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/novastream/novastream/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Pricing    PricingConfig    `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// PricingConfig carries the commercial policy knobs applied on top of the
// static catalog: order-size thresholds, bundle discount fractions, coupon
// percentage and the seasonal promotion window. Amounts are in GBP.
type PricingConfig struct {
	Currency string `mapstructure:"currency" validate:"required"`

	// OrderThresholdFreeInstall is the due-today subtotal at or above which
	// installation charges are discounted for non-bundle orders
	OrderThresholdFreeInstall float64 `mapstructure:"order_threshold_free_install"`

	// BundleRemoteInstallOff and BundleCalloutInstallOff are the fractions
	// taken off installation lines when a TV + streaming bundle is ordered
	BundleRemoteInstallOff  float64 `mapstructure:"bundle_remote_install_off"`
	BundleCalloutInstallOff float64 `mapstructure:"bundle_callout_install_off"`

	// CouponPercentOff is the fraction taken off due-today subscription
	// amounts when a coupon code is supplied
	CouponPercentOff float64 `mapstructure:"coupon_percent_off"`

	SeasonalPromo SeasonalPromoConfig `mapstructure:"seasonal_promo"`
}

// SeasonalPromoConfig is a time-boxed percentage promotion on first-month
// subscription charges
type SeasonalPromoConfig struct {
	Active     bool    `mapstructure:"active"`
	EndDate    string  `mapstructure:"end_date"` // RFC 3339
	PercentOff float64 `mapstructure:"percent_off"`
	Label      string  `mapstructure:"label"`
	// Marker is the substring scanned for in line reasons when deriving
	// analytics metadata, Tag is the value reported when it is found
	Marker string `mapstructure:"marker"`
	Tag    string `mapstructure:"tag"`
}

// EndsAt parses the configured end date. A malformed or empty date is
// treated as an already-ended promotion.
func (c SeasonalPromoConfig) EndsAt() time.Time {
	t, err := time.Parse(time.RFC3339, c.EndDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ActiveAt reports whether the promotion is live at the given instant.
// The instant is always supplied by the caller so quote computation stays
// deterministic under test.
func (c SeasonalPromoConfig) ActiveAt(now time.Time) bool {
	return c.Active && c.PercentOff > 0 && now.Before(c.EndsAt())
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/novastream")

	// Set up environment variables support
	v.SetEnvPrefix("NOVASTREAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))

	v.SetDefault("pricing.currency", "gbp")
	v.SetDefault("pricing.order_threshold_free_install", 40.0)
	v.SetDefault("pricing.bundle_remote_install_off", 1.0)
	v.SetDefault("pricing.bundle_callout_install_off", 0.5)
	v.SetDefault("pricing.coupon_percent_off", 0.10)
	v.SetDefault("pricing.seasonal_promo.active", true)
	v.SetDefault("pricing.seasonal_promo.end_date", "2026-01-05T00:00:00Z")
	v.SetDefault("pricing.seasonal_promo.percent_off", 0.20)
	v.SetDefault("pricing.seasonal_promo.label", "Christmas -20%")
	v.SetDefault("pricing.seasonal_promo.marker", "Christmas")
	v.SetDefault("pricing.seasonal_promo.tag", "christmas-2025")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development.
// This is useful for running scripts, tests or other non-web applications.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelInfo},
		Pricing: PricingConfig{
			Currency:                  "gbp",
			OrderThresholdFreeInstall: 40.0,
			BundleRemoteInstallOff:    1.0,
			BundleCalloutInstallOff:   0.5,
			CouponPercentOff:          0.10,
			SeasonalPromo: SeasonalPromoConfig{
				Active:     true,
				EndDate:    "2026-01-05T00:00:00Z",
				PercentOff: 0.20,
				Label:      "Christmas -20%",
				Marker:     "Christmas",
				Tag:        "christmas-2025",
			},
		},
	}
}
