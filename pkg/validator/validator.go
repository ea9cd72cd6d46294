package validator

import (
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

type CustomValidator struct {
	validator *validator.Validate
	now       func() time.Time
}

// NewValidator builds a validator with two date rules on YYYY-MM-DD
// strings: "isodate" accepts real calendar dates from year 1 on, and
// "pastdate" accepts dates strictly before the day reported by now.
func NewValidator(now func() time.Time) *CustomValidator {
	cv := &CustomValidator{
		validator: validator.New(),
		now:       now,
	}

	// Error messages name fields by their label tag.
	cv.validator.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = cv.validator.RegisterValidation("isodate", isISODate)
	_ = cv.validator.RegisterValidation("pastdate", cv.isPastDate)

	return cv
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormatValidationErrors renders one message per failing field, in field
// declaration order.
func (cv *CustomValidator) FormatValidationErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			messages = append(messages, field+" is required.")
		case "isodate":
			messages = append(messages, field+" must be a valid date (YYYY-MM-DD).")
		case "pastdate":
			messages = append(messages, field+" must be in the past.")
		case "max":
			messages = append(messages, field+" must be at most "+e.Param()+" characters.")
		default:
			messages = append(messages, field+" is invalid.")
		}
	}

	return messages
}

func parseDate(value string) (time.Time, bool) {
	date, err := time.Parse(dateLayout, value)
	if err != nil || date.Year() < 1 {
		return time.Time{}, false
	}
	return date, true
}

func isISODate(fl validator.FieldLevel) bool {
	_, ok := parseDate(fl.Field().String())
	return ok
}

// isPastDate accepts YYYY-MM-DD strings strictly before today.
func (cv *CustomValidator) isPastDate(fl validator.FieldLevel) bool {
	date, ok := parseDate(fl.Field().String())
	if !ok {
		return false
	}

	now := cv.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return date.Before(today)
}
