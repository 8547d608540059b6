package api

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
	"weathermap.app/internal/adapters/headless"
	"weathermap.app/pkg/errors"
)

// validateZoomLevel accepts the zoom levels the map library can display
func validateZoomLevel(fl validator.FieldLevel) bool {
	zoom := fl.Field().Int()
	return zoom >= headless.MinZoom && zoom <= headless.MaxZoom
}

// validateLocale accepts BCP 47 tags such as "es" or "pt-BR"
func validateLocale(fl validator.FieldLevel) bool {
	_, err := language.Parse(fl.Field().String())
	return err == nil
}

// RegisterValidators installs the custom binding tags on gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("zoomlevel", validateZoomLevel); err != nil {
		return err
	}
	return v.RegisterValidation("locale", validateLocale)
}

// bindingError turns a binding failure into a ValidationError naming the offending fields
func bindingError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.NewValidationError("invalid request body")
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed %s validation", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return errors.NewValidationError(strings.Join(parts, "; "))
}
