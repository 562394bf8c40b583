package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yoockh/careerly/internal/utils"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// FieldError is echoed to clients in "details".
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func validateStruct(op string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return utils.E(utils.CodeInvalidArgument, op, "validation failed: invalid request", err)
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fieldPath(fe.Namespace()), Rule: fe.Tag()})
	}
	msg := fmt.Sprintf("validation failed: %s is %s", fields[0].Field, ruleText(fields[0].Rule))
	return utils.WithDetails(utils.CodeInvalidArgument, op, msg, err, fields)
}

// fieldPath drops the root struct name: "CreateJobInput.title" -> "title".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func ruleText(tag string) string {
	switch tag {
	case "required":
		return "required"
	case "oneof":
		return "not an allowed value"
	case "max":
		return "too long"
	case "url", "http_url":
		return "not a valid URL"
	default:
		return "invalid (" + tag + ")"
	}
}

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultListLimit
	case n > MaxListLimit:
		return MaxListLimit
	default:
		return n
	}
}

// newestFirst stable-sorts rows by creation time, most recent first.
func newestFirst[T any](rows []T, createdAt func(T) time.Time) {
	sort.SliceStable(rows, func(i, j int) bool {
		return createdAt(rows[i]).After(createdAt(rows[j]))
	})
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
