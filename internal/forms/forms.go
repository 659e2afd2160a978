// Package forms binds submitted HTML forms onto whitelisted structs and turns
// validation failures into per-field messages for re-rendering.
package forms

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// NonFieldKey collects errors that do not belong to a single input.
const NonFieldKey = "__all__"

const maxMultipartMemory = 32 << 20

const (
	MsgRequired      = "This field is required."
	MsgInvalidEmail  = "Enter a valid email address."
	MsgInvalidDate   = "Enter a valid date."
	MsgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
	MsgInvalidForm   = "The submitted form could not be read."
	MsgInvalidImage  = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("pk", validPrimaryKey)
	}
}

// validPrimaryKey accepts a positive id that fits a uint64 column.
func validPrimaryKey(fl validator.FieldLevel) bool {
	id, err := strconv.ParseUint(fl.Field().String(), 10, 64)
	return err == nil && id > 0
}

// untrimmed inputs keep surrounding whitespace.
var untrimmed = map[string]bool{"password": true}

// Errors maps a form field name to its first validation message.
type Errors map[string]string

func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Errors) Get(field string) string {
	return e[field]
}

func (e Errors) NonField() string {
	return e[NonFieldKey]
}

func (e Errors) Any() bool {
	return len(e) > 0
}

// Bind copies the posted values onto form (trimmed, by `form` tag) and runs
// the `binding` tag validators. A nil result means the form is valid.
func Bind(c *gin.Context, form any) Errors {
	errs := Errors{}

	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		errs.Add(NonFieldKey, MsgInvalidForm)
		return errs
	}

	values := make(map[string][]string, len(c.Request.PostForm))
	for key, vs := range c.Request.PostForm {
		cleaned := make([]string, len(vs))
		for i, v := range vs {
			if untrimmed[key] {
				cleaned[i] = v
			} else {
				cleaned[i] = strings.TrimSpace(v)
			}
		}
		values[key] = cleaned
	}

	if err := binding.MapFormWithTag(form, values, "form"); err != nil {
		errs.Add(NonFieldKey, MsgInvalidForm)
		return errs
	}

	if err := binding.Validator.ValidateStruct(form); err != nil {
		translate(err, form, errs)
	}

	if errs.Any() {
		return errs
	}
	return nil
}

func translate(err error, form any, errs Errors) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(NonFieldKey, MsgInvalidForm)
		return
	}

	formType := reflect.TypeOf(form)
	for formType.Kind() == reflect.Ptr {
		formType = formType.Elem()
	}

	for _, fe := range verrs {
		name := fe.Field()
		if sf, ok := formType.FieldByName(fe.StructField()); ok {
			if tag := sf.Tag.Get("form"); tag != "" {
				name = strings.Split(tag, ",")[0]
			}
		}
		errs.Add(name, message(fe))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return MsgInvalidEmail
	case "datetime":
		return MsgInvalidDate
	case "oneof":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	case "pk":
		return MsgInvalidChoice
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).",
			fe.Param(), len([]rune(fmt.Sprint(fe.Value()))))
	default:
		return "Enter a valid value."
	}
}

// optionalID parses an optional user id select; empty means "none".
func optionalID(raw string) *uint64 {
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	return &id
}

func formatID(id *uint64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatUint(*id, 10)
}
