package checkout

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"cartquote/internal/errx"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// Validate checks the struct tags of r. Failures are errx.KindInvalidRequest
// and name fields by their JSON path.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return errx.Wrap(errx.KindInvalidRequest, err, "validation failed")
	}
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, fieldPath(fe)+" "+validationMessage(fe))
	}
	sort.Strings(msgs)
	return errx.New(errx.KindInvalidRequest, "validation failed: %s", strings.Join(msgs, "; "))
}

// fieldPath drops the root struct name: "Request.products[0].quantity" becomes "products[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s item(s)", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	}
	return "is invalid"
}
