// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vadim Karimov

package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// entryValidator checks required-field rules on request payloads. Field
// names in reported violations use the JSON wire names, not Go identifiers.
var entryValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validateStruct runs the shared validator over s and converts the first
// violation into a *ValidationError carrying the offending wire field name.
func validateStruct(s any) error {
	err := entryValidator.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Field: verrs[0].Field()}
	}

	return ErrInvalidDataProvided
}
