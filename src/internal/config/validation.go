package config

import (
	"fmt"
	"net"
	"net/netip"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/maksimkurb/ifselect/src/internal/networking"
)

var (
	envPrefixRegexp = regexp.MustCompile(`^[A-Z][A-Z0-9_]*_$`)
	paramNameRegexp = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "max":
		return fmt.Sprintf("must be <= %s", e.Param())
	case "hostport_or_empty":
		return "must be in format 'host:port' or empty"
	case "env_prefix":
		return "must consist of uppercase letters, numbers and underscores and end with '_' (e.g. UCCL_)"
	case "socket_family":
		return "must be AF_INET or AF_INET6"
	case "filter_spec":
		return "must be a filter like [^][=]prefix[:port],... with prefixes of at most 63 characters"
	case "endpoint":
		return "must be <host>:<port> or [<ipv6>[%zone]]:<port>"
	case "dns_server":
		return "must be an IP address or host, optionally with :port"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	ItemName  string // For params: the parameter name (e.g., "COMM_ID")
	FieldPath string // Dot-notation field path (e.g., "general.max_interfaces", "params.COMM_ID")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		if err.ItemName != "" {
			sb.WriteString(fmt.Sprintf("  %d. [%s] %s: %s\n", i+1, err.ItemName, err.FieldPath, err.Message))
		} else {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
		}
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validators
	if err := validate.RegisterValidation("hostport_or_empty", validateHostPortOrEmpty); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("env_prefix", validateEnvPrefix); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("socket_family", validateSocketFamily); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("filter_spec", validateFilterSpec); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("endpoint", validateEndpointTag); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("dns_server", validateDNSServer); err != nil {
		panic(err)
	}

	// Register function to get field name from "toml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validator: host:port format or empty
func validateHostPortOrEmpty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, _, err := net.SplitHostPort(value)
	return err == nil
}

func validateEnvPrefix(fl validator.FieldLevel) bool {
	return envPrefixRegexp.MatchString(fl.Field().String())
}

// Custom validator: SOCKET_FAMILY value
func validateSocketFamily(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "AF_INET" || value == "AF_INET6"
}

// Custom validator: interface filter spec, checked in strict mode
func validateFilterSpec(fl validator.FieldLevel) bool {
	spec, err := networking.ParseFilterSpecStrict(fl.Field().String())
	return err == nil && len(spec.Entries) > 0
}

// validateEndpointTag checks endpoint syntax without resolving anything.
func validateEndpointTag(fl validator.FieldLevel) bool {
	return networking.ValidateEndpoint(fl.Field().String()) == nil
}

// Custom validator: DNS server given as host or host:port
func validateDNSServer(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}
	if _, err := netip.ParseAddr(value); err == nil {
		return true
	}
	host, port, err := net.SplitHostPort(value)
	if err != nil {
		host = value
	} else if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return false
	}
	return host != "" && !strings.ContainsAny(host, " /[]")
}
