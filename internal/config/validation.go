package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	seasonPattern   = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	divisionPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	v.RegisterValidation("environment", validateEnvironment)
	v.RegisterValidation("loglevel", validateLogLevel)
	v.RegisterValidation("season", validateSeason)
	v.RegisterValidation("division", validateDivisionKey)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateSeason accepts labels like 2024-25 where the suffix is the following year
func validateSeason(fl validator.FieldLevel) bool {
	return IsSeasonLabel(fl.Field().String())
}

func validateDivisionKey(fl validator.FieldLevel) bool {
	return divisionPattern.MatchString(fl.Field().String())
}

// IsSeasonLabel reports whether s is a YYYY-YY season label with consecutive years
func IsSeasonLabel(s string) bool {
	m := seasonPattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	return (start+1)%100 == end
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	switch cfg.Source.Kind {
	case SourceKindFile:
		if cfg.Source.Dir == "" {
			return fmt.Errorf("source.dir is required for the file source")
		}
	case SourceKindHTTP:
		if cfg.Source.BaseURL == "" {
			return fmt.Errorf("source.base_url is required for the http source")
		}
	}

	keys := make(map[string]bool, len(cfg.Divisions))
	for _, d := range cfg.Divisions {
		if keys[d.Key] {
			return fmt.Errorf("duplicate division key %q", d.Key)
		}
		keys[d.Key] = true
	}

	seen := make(map[string]bool, len(cfg.Schedule.Fixtures))
	for i, f := range cfg.Schedule.Fixtures {
		if strings.EqualFold(f.Away, f.Home) {
			return fmt.Errorf("fixture %d: a team cannot play itself (%s)", i, f.Home)
		}
		key := strings.ToUpper(f.Away) + "@" + strings.ToUpper(f.Home) + "@" + f.Tipoff
		if seen[key] {
			return fmt.Errorf("fixture %d: duplicate fixture %s", i, key)
		}
		seen[key] = true
	}

	if cfg.IsProduction() && cfg.Source.Kind == SourceKindHTTP && !strings.HasPrefix(cfg.Source.BaseURL, "https://") {
		return fmt.Errorf("production environment requires an https source base_url")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg strings.Builder
	for _, fieldError := range validationErrors {
		field := fieldError.Namespace()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			fmt.Fprintf(&errMsg, "- Field '%s' is required\n", field)
		case "url":
			fmt.Fprintf(&errMsg, "- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			fmt.Fprintf(&errMsg, "- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			fmt.Fprintf(&errMsg, "- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			fmt.Fprintf(&errMsg, "- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			fmt.Fprintf(&errMsg, "- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "season":
			fmt.Fprintf(&errMsg, "- Field '%s' must be a season label like 2024-25, got '%v'\n", field, value)
		case "division":
			fmt.Fprintf(&errMsg, "- Field '%s' must be a lowercase key, got '%v'\n", field, value)
		case "datetime":
			fmt.Fprintf(&errMsg, "- Field '%s' must be a YYYY-MM-DD date, got '%v'\n", field, value)
		case "oneof":
			fmt.Fprintf(&errMsg, "- Field '%s' has invalid value '%v'\n", field, value)
		default:
			fmt.Fprintf(&errMsg, "- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg.String())
}
