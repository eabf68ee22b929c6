package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
	"github.com/yigit/canvasstudy/internal/pkg/validation"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules on gin's validator
// and makes field errors use JSON names.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterTagNameFunc(fieldName)
		if err = v.RegisterValidation("canvasurl", func(fl validator.FieldLevel) bool {
			return validation.IsCanvasURL(fl.Field().String())
		}); err != nil {
			return
		}
		if err = v.RegisterValidation("localid", func(fl validator.FieldLevel) bool {
			return validation.IsLocalID(fl.Field().String())
		}); err != nil {
			return
		}
		err = v.RegisterValidation("youtubeurl", func(fl validator.FieldLevel) bool {
			return validation.IsYouTubeURL(fl.Field().String())
		})
	})
	return err
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// credentialFields are reported as configuration errors
var credentialFields = map[string]bool{"baseUrl": true, "apiToken": true}

// BindingError converts a gin binding failure into a typed error.
func BindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make([]string, 0, len(verrs))
		configuration := false
		for _, fe := range verrs {
			messages = append(messages, formatValidationError(fe))
			if credentialFields[fe.Field()] {
				configuration = true
			}
		}
		msg := strings.Join(messages, "; ")
		if configuration {
			return apperrors.NewConfigurationError("%s", msg)
		}
		return apperrors.NewValidationError("%s", msg)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return apperrors.NewValidationError("request body is required")
	case errors.As(err, &syntaxErr):
		return apperrors.NewValidationError("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return apperrors.NewValidationError("%s must be of type %s", typeErr.Field, typeErr.Type)
	}
	return apperrors.NewValidationError("invalid request: %v", err)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "canvasurl":
		return e.Field() + " must be an absolute URL starting with http"
	case "localid":
		return e.Field() + " must be a local file id"
	case "youtubeurl":
		return e.Field() + " must link to a YouTube video"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
