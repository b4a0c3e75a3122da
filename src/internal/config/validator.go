package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/maksimkurb/ifselect/src/internal/networking"
)

// paramTags maps known parameter names to the validator tag their values
// must satisfy. Other parameters are accepted as-is.
var paramTags = map[string]string{
	networking.ParamSocketFamily: "socket_family",
	networking.ParamSocketIfname: "filter_spec",
	networking.ParamCommID:       "endpoint",
	ParamDNSServer:               "dns_server",
	ParamMaxInterfaces:           "number",
}

// ValidateConfig validates the entire configuration and returns all validation errors
func (c *Config) ValidateConfig() error {
	var validationErrors ValidationErrors

	// Validate general config
	if c.General == nil {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "general",
			Message:   "configuration must contain 'general' section",
		})
		return validationErrors
	}

	// Use validator to validate General config
	if err := validate.Struct(c.General); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "general", "")...)
	}

	if c.API != nil {
		if err := validate.Struct(c.API); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, "api", "")...)
		}
	}

	validationErrors = append(validationErrors, c.validateParams()...)

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

func (c *Config) validateParams() ValidationErrors {
	var validationErrors ValidationErrors

	names := make([]string, 0, len(c.Params))
	for name := range c.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := c.Params[name]
		fieldPath := "params." + name

		if !paramNameRegexp.MatchString(name) {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  name,
				FieldPath: fieldPath,
				Message:   "parameter name must consist of uppercase letters, numbers and underscores",
			})
			continue
		}

		tag, ok := paramTags[name]
		if !ok {
			continue
		}
		if err := validate.Var(value, tag); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, fieldPath, name)...)
		}
	}

	return validationErrors
}

// convertValidatorErrors converts go-playground/validator errors to our ValidationError format
func convertValidatorErrors(err error, fieldPrefix string, itemName string) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			fieldPath := fieldPrefix
			if e.Field() != "" {
				// e.Field() returns the TOML tag name because we registered TagNameFunc
				fieldName := e.Field()

				if fieldPrefix != "" {
					fieldPath = fieldPrefix + "." + fieldName
				} else {
					fieldPath = fieldName
				}
			}

			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: fieldPath,
				Message:   getValidationMessage(e),
			})
		}
	} else if err != nil {
		validationErrors = append(validationErrors, ValidationError{
			ItemName:  itemName,
			FieldPath: fieldPrefix,
			Message:   fmt.Sprintf("validation failed: %v", err),
		})
	}

	return validationErrors
}
