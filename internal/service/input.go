package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// MaxDraftTitleLength applies when a draft is first submitted and is stricter than
	// MaxTitleLength, which applies on update. Both stay until the product owner picks one.
	MaxDraftTitleLength = 5
	MaxTitleLength      = 255
	MaxContentLength    = 5000
)

// DraftInput is the form submitted to create a new article.
type DraftInput struct {
	Title   string `form:"title" validate:"required,max=5"`
	Content string `form:"content" validate:"required,max=5000"`
}

// UpdateInput is the form submitted when editing an existing article.
type UpdateInput struct {
	Title   string `form:"title" validate:"required,max=255"`
	Content string `form:"content" validate:"required,max=5000"`
}

// attributeNames overrides the field name used in messages.
var attributeNames = map[string]string{
	"content": "article content",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func (in *DraftInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
}

func (in *UpdateInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
}

// validateInput runs the struct tags and converts failures into a ValidationError.
func validateInput(v *validator.Validate, in any) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		if _, seen := verr.Fields[fe.Field()]; seen {
			continue
		}
		verr.Fields[fe.Field()] = message(fe)
	}
	return verr
}

func message(fe validator.FieldError) string {
	attr := fe.Field()
	if name, ok := attributeNames[attr]; ok {
		attr = name
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "max":
		return fmt.Sprintf("The %s must not be greater than %s characters.", attr, fe.Param())
	}
	return fmt.Sprintf("The %s is invalid.", attr)
}
