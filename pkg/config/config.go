// Package config loads the signature rendering configuration from layered
// sources: built-in defaults, an optional YAML file, and GOSIGNATURE_*
// environment overrides. The loaded value is read-only for the lifetime of
// a render; reloading between renders is allowed, concurrent mutation is not.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/xob0t/GoSignature/pkg/signature"
)

// Text role identifiers. Fonts, sizes and colors are keyed by role.
const (
	RoleName            = "name"
	RoleDetails         = "details"
	RoleConfidentiality = "confidentiality"
)

// Config holds every knob the layout engine and compositor read. All
// dimensions are pixels; all colors are 3- or 4-element 0–255 lists
// (the 4th element is alpha).
type Config struct {
	Margin          int `mapstructure:"margin" validate:"gt=0"`
	LogoHeight      int `mapstructure:"logo_height" validate:"gt=0"`
	LogoMarginRight int `mapstructure:"logo_margin_right" validate:"gt=0"`
	LineHeight      int `mapstructure:"line_height" validate:"gt=0"`

	ConfidentialityLineHeight int `mapstructure:"confidentiality_line_height" validate:"gt=0"`

	Separator SeparatorConfig `mapstructure:"separator"`
	Outline   OutlineConfig   `mapstructure:"outline"`

	// FontSizes maps role → point size.
	FontSizes map[string]float64 `mapstructure:"font_sizes" validate:"dive,gt=0"`

	// Fonts maps platform ("linux", "windows", "darwin") → role → ordered
	// candidate font file paths, tried first to last.
	Fonts map[string]map[string][]string `mapstructure:"fonts"`

	// Colors maps role ("name", "details", "separator", "confidentiality",
	// "outline") → RGB or RGBA components.
	Colors map[string][]int `mapstructure:"colors"`

	DefaultWebsite      string   `mapstructure:"default_website" validate:"required"`
	LogoSearchPaths     []string `mapstructure:"logo_search_paths"`
	ConfidentialityText string   `mapstructure:"confidentiality_text" validate:"required"`
}

// SeparatorConfig controls the horizontal rule under the contact block.
type SeparatorConfig struct {
	Thickness int `mapstructure:"thickness" validate:"gt=0"`
	GapTop    int `mapstructure:"gap_top" validate:"gte=0"`
	GapBottom int `mapstructure:"gap_bottom" validate:"gte=0"`
}

// OutlineConfig controls the halo width around text, per role group.
type OutlineConfig struct {
	NameWidth int `mapstructure:"name_width" validate:"gt=0"`
	TextWidth int `mapstructure:"text_width" validate:"gt=0"`
}

// requiredColorRoles must all be present after layering.
var requiredColorRoles = []string{
	RoleName, RoleDetails, RoleConfidentiality, "separator", "outline",
}

// requiredSizeRoles must all carry a font size.
var requiredSizeRoles = []string{RoleName, RoleDetails, RoleConfidentiality}

// setDefaults installs the built-in configuration. File and environment
// values override these per key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("margin", 15)
	v.SetDefault("logo_height", 70)
	v.SetDefault("logo_margin_right", 20)
	v.SetDefault("line_height", 22)
	v.SetDefault("confidentiality_line_height", 16)

	v.SetDefault("separator.thickness", 2)
	v.SetDefault("separator.gap_top", 7)
	v.SetDefault("separator.gap_bottom", 15)

	v.SetDefault("outline.name_width", 2)
	v.SetDefault("outline.text_width", 1)

	v.SetDefault("font_sizes", map[string]float64{
		RoleName:            16,
		RoleDetails:         14,
		RoleConfidentiality: 10,
	})

	v.SetDefault("fonts", map[string]map[string][]string{
		"linux": {
			RoleName:            {"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"},
			RoleDetails:         {"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"},
			RoleConfidentiality: {"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"},
		},
		"windows": {
			RoleName:            {`C:\Windows\Fonts\arialbd.ttf`},
			RoleDetails:         {`C:\Windows\Fonts\arial.ttf`},
			RoleConfidentiality: {`C:\Windows\Fonts\arial.ttf`},
		},
		"darwin": {
			RoleName:            {"/System/Library/Fonts/Supplemental/Arial Bold.ttf"},
			RoleDetails:         {"/System/Library/Fonts/Supplemental/Arial.ttf"},
			RoleConfidentiality: {"/System/Library/Fonts/Supplemental/Arial.ttf"},
		},
	})

	v.SetDefault("colors", map[string][]int{
		"outline":           {255, 255, 255},
		RoleName:            {51, 51, 51},
		RoleDetails:         {100, 100, 100},
		"separator":         {200, 0, 40, 200},
		RoleConfidentiality: {150, 150, 150},
	})

	v.SetDefault("default_website", "www.example.com")
	v.SetDefault("logo_search_paths", []string{
		"logo.png",
		"logo.jpg",
		"logo/logo.png",
		"logo/logo.jpg",
	})
	v.SetDefault("confidentiality_text",
		"CONFIDENTIALITY: This message is intended solely for the use of the addressee and may contain confidential information.")
}

// Load builds the effective configuration. path names an explicit YAML file
// and must exist; when path is empty, "gosignature.yaml" in the working
// directory is used if present, otherwise defaults apply. Environment
// variables prefixed GOSIGNATURE_ override file values key by key.
// Any malformed or out-of-range value yields a *signature.ConfigError.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GOSIGNATURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal reads from AllSettings, which AutomaticEnv alone does not
	// feed; every recognized key has a default, so bind them explicitly.
	for _, key := range v.AllKeys() {
		if err := v.BindEnv(key); err != nil {
			return nil, &signature.ConfigError{Key: key, Err: err}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &signature.ConfigError{Err: errors.Wrapf(err, "read %s", path)}
		}
	} else {
		v.SetConfigName("gosignature")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, &signature.ConfigError{Err: errors.Wrap(err, "read gosignature.yaml")}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &signature.ConfigError{Err: errors.Wrap(err, "decode configuration")}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks dimension, size and color constraints. A failure means
// the process must not render with this configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &signature.ConfigError{Err: err}
	}

	for _, role := range requiredSizeRoles {
		if _, ok := c.FontSizes[role]; !ok {
			return &signature.ConfigError{
				Key: "font_sizes." + role,
				Err: errors.New("missing font size for role"),
			}
		}
	}

	for _, role := range requiredColorRoles {
		comps, ok := c.Colors[role]
		if !ok {
			return &signature.ConfigError{
				Key: "colors." + role,
				Err: errors.New("missing color for role"),
			}
		}
		if len(comps) != 3 && len(comps) != 4 {
			return &signature.ConfigError{
				Key: "colors." + role,
				Err: errors.Errorf("expected 3 or 4 components, got %d", len(comps)),
			}
		}
		for _, comp := range comps {
			if comp < 0 || comp > 255 {
				return &signature.ConfigError{
					Key: "colors." + role,
					Err: errors.Errorf("component %d out of range 0–255", comp),
				}
			}
		}
	}

	return nil
}

// FontSize returns the point size for a role.
func (c *Config) FontSize(role string) float64 { return c.FontSizes[role] }

// FontCandidates returns the ordered candidate font paths for a role on the
// given platform. A platform or role with no entry yields nil, which the
// font resolver treats as "fall straight through to the embedded font".
func (c *Config) FontCandidates(platform, role string) []string {
	roles, ok := c.Fonts[platform]
	if !ok {
		return nil
	}
	return roles[role]
}

// Map renders the configuration as the nested key/value document that
// `config init` writes and `config show` prints.
func (c *Config) Map() map[string]interface{} {
	return map[string]interface{}{
		"margin":                      c.Margin,
		"logo_height":                 c.LogoHeight,
		"logo_margin_right":           c.LogoMarginRight,
		"line_height":                 c.LineHeight,
		"confidentiality_line_height": c.ConfidentialityLineHeight,
		"separator": map[string]interface{}{
			"thickness":  c.Separator.Thickness,
			"gap_top":    c.Separator.GapTop,
			"gap_bottom": c.Separator.GapBottom,
		},
		"outline": map[string]interface{}{
			"name_width": c.Outline.NameWidth,
			"text_width": c.Outline.TextWidth,
		},
		"font_sizes":           c.FontSizes,
		"fonts":                c.Fonts,
		"colors":               c.Colors,
		"default_website":      c.DefaultWebsite,
		"logo_search_paths":    c.LogoSearchPaths,
		"confidentiality_text": c.ConfidentialityText,
	}
}

// WriteFile persists the effective configuration as YAML at path.
func (c *Config) WriteFile(path string) error {
	v := viper.New()
	for key, value := range c.Map() {
		v.Set(key, value)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return errors.Wrapf(err, "write config %s", path)
	}
	return nil
}

// String returns the configuration as an indented, stable listing.
func (c *Config) String() string {
	return fmt.Sprintf("margin=%d logo_height=%d logo_margin_right=%d line_height=%d",
		c.Margin, c.LogoHeight, c.LogoMarginRight, c.LineHeight)
}
