package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/printshop/printshop-api/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// nullableValue is implemented by every models.Nullable instantiation.
type nullableValue interface {
	Interface() interface{}
}

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON field names rather than Go field names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		// Look through Nullable wrappers so tags apply to the wrapped value
		validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if n, ok := field.Interface().(nullableValue); ok {
				return n.Interface()
			}
			return nil
		},
			models.Nullable[string]{},
			models.Nullable[int]{},
			models.Nullable[float64]{},
			models.Nullable[bool]{},
			models.Nullable[time.Time]{},
			models.Nullable[models.OrderStatus]{},
			models.Nullable[models.OrderItemStatus]{},
			models.Nullable[models.ProductionStatus]{},
		)
	})
	return validate
}

// FieldError describes one failed constraint.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

func (f FieldError) String() string {
	if f.Param != "" {
		return fmt.Sprintf("%s failed %s=%s", f.Field, f.Tag, f.Param)
	}
	return fmt.Sprintf("%s failed %s", f.Field, f.Tag)
}

// ValidationError is a local validation failure. Nothing was sent or stored.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Details returns one message per failed field.
func (e *ValidationError) Details() []string {
	details := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		details = append(details, f.String())
	}
	return details
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, tag, param string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Tag: tag, Param: param}}}
}

// ValidateStruct checks v against its validate tags.
func ValidateStruct(v interface{}) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fieldPath(fe.Namespace()),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// fieldPath drops the top-level struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// ValidateID checks a path parameter that must be a positive integer.
func ValidateID(name string, id uint) error {
	if id == 0 {
		return NewValidationError(name, "gt", "0")
	}
	return nil
}
