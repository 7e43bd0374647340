// Package validation runs ordered, declarative field checks against a
// request before it reaches its handler.
//
// A Chain names one field (in the JSON body or the path parameters) and an
// ordered list of checks, each a validator tag paired with the message
// reported when it fails. Every check of every chain is evaluated; failures
// accumulate on the request and are turned into a 400 response by
// middleware.HandleInputErrors.
package validation

import (
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
)

// Locations a field can be read from.
const (
	LocationBody   = "body"
	LocationParams = "params"
)

const (
	errorsKey    = "validation.errors"
	bodyKey      = "validation.body"
	bodyErrorKey = "validation.body_error"
)

// FieldError is a single failed check as reported to clients.
type FieldError struct {
	Type     string      `json:"type"`
	Value    interface{} `json:"value"`
	Msg      string      `json:"msg"`
	Path     string      `json:"path"`
	Location string      `json:"location"`
}

type check struct {
	tag     string
	message string
}

// Chain is the ordered list of checks for one field.
type Chain struct {
	location string
	field    string
	optional bool
	checks   []check
}

// BodyField starts a chain for a top-level JSON body field.
func BodyField(field string) *Chain {
	return &Chain{location: LocationBody, field: field}
}

// ParamField starts a chain for a route parameter.
func ParamField(field string) *Chain {
	return &Chain{location: LocationParams, field: field}
}

// Optional skips the chain's checks when the field is missing or null.
func (ch *Chain) Optional() *Chain {
	ch.optional = true
	return ch
}

// Is appends a check. tag is one of the tags registered by New.
func (ch *Chain) Is(tag, message string) *Chain {
	ch.checks = append(ch.checks, check{tag: tag, message: message})
	return ch
}

var (
	numericPattern = regexp.MustCompile(`^[+-]?([0-9]*[.])?[0-9]+$`)
	intPattern     = regexp.MustCompile(`^[-+]?(?:0|[1-9][0-9]*)$`)
)

// Validator evaluates chains with a go-playground validator carrying the
// custom tags below.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the check tags registered:
//
//	notempty     value stringifies to a non-empty string
//	isnumeric    value stringifies to a decimal number
//	isint        value stringifies to an integer that fits in an int
//	isstring     value is a string
//	isboolean    value is a boolean
//	booleanlike  value is a boolean, "true", "false", 1 or 0
//	positive     value coerces to a number greater than zero
func New() *Validator {
	validate := validator.New()
	tags := map[string]validator.Func{
		"notempty": func(fl validator.FieldLevel) bool {
			return stringify(fl) != ""
		},
		"isnumeric": func(fl validator.FieldLevel) bool {
			return numericPattern.MatchString(stringify(fl))
		},
		"isint": func(fl validator.FieldLevel) bool {
			s := stringify(fl)
			if !intPattern.MatchString(s) {
				return false
			}
			_, err := strconv.Atoi(s)
			return err == nil
		},
		"isstring": func(fl validator.FieldLevel) bool {
			_, ok := fl.Field().Interface().(string)
			return ok
		},
		"isboolean": func(fl validator.FieldLevel) bool {
			_, ok := fl.Field().Interface().(bool)
			return ok
		},
		"booleanlike": func(fl validator.FieldLevel) bool {
			_, ok := BooleanLike(fl.Field().Interface())
			return ok
		},
		"positive": func(fl validator.FieldLevel) bool {
			f, err := cast.ToFloat64E(fl.Field().Interface())
			return err == nil && f > 0
		},
	}
	for tag, fn := range tags {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return &Validator{validate: validate}
}

// BooleanLike converts the loose boolean forms a client may send for a
// flag: JSON booleans, the strings "true" and "false", and the numbers 1
// and 0.
func BooleanLike(value interface{}) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		if v == "true" || v == "false" {
			return cast.ToBool(v), true
		}
	case float64:
		if v == 1 || v == 0 {
			return cast.ToBool(v), true
		}
	}
	return false, false
}

func stringify(fl validator.FieldLevel) string {
	return cast.ToString(fl.Field().Interface())
}

// Check reports whether value passes tag. Missing and null values fail
// every check.
func (v *Validator) Check(value interface{}, tag string) bool {
	if value == nil {
		return false
	}
	return v.validate.Var(value, tag) == nil
}

// Validate runs the chains against the request and returns the failures
// in chain order, then check order.
func (v *Validator) Validate(c *fiber.Ctx, chains ...*Chain) []FieldError {
	var errs []FieldError

	body, bodyErr := Body(c)
	if bodyErr != nil && !bodyErrorReported(c) {
		c.Locals(bodyErrorKey, true)
		errs = append(errs, FieldError{
			Type:     "body",
			Msg:      "Invalid request body",
			Location: LocationBody,
		})
	}

	for _, ch := range chains {
		var value interface{}
		switch ch.location {
		case LocationParams:
			if p := c.Params(ch.field); p != "" {
				value = p
			}
		case LocationBody:
			if bodyErr != nil {
				continue
			}
			value = body[ch.field]
		}

		if ch.optional && value == nil {
			continue
		}
		for _, chk := range ch.checks {
			if v.Check(value, chk.tag) {
				continue
			}
			errs = append(errs, FieldError{
				Type:     "field",
				Value:    value,
				Msg:      chk.message,
				Path:     ch.field,
				Location: ch.location,
			})
		}
	}
	return errs
}

// Middleware returns a handler that validates the request against chains,
// records any failures and always continues to the next handler.
func (v *Validator) Middleware(chains ...*Chain) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errs := v.Validate(c, chains...); len(errs) > 0 {
			c.Locals(errorsKey, append(Errors(c), errs...))
		}
		return c.Next()
	}
}

// Errors returns the failures recorded on the request so far.
func Errors(c *fiber.Ctx) []FieldError {
	errs, _ := c.Locals(errorsKey).([]FieldError)
	return errs
}

func bodyErrorReported(c *fiber.Ctx) bool {
	reported, _ := c.Locals(bodyErrorKey).(bool)
	return reported
}

// Body returns the request's JSON object body as loosely typed fields.
// Requests without a JSON content type or without a body yield an empty
// map. The result is cached on the request.
func Body(c *fiber.Ctx) (map[string]interface{}, error) {
	if cached, ok := c.Locals(bodyKey).(map[string]interface{}); ok {
		return cached, nil
	}

	fields := make(map[string]interface{})
	if len(c.Body()) > 0 && c.Is("json") {
		if err := c.App().Config().JSONDecoder(c.Body(), &fields); err != nil {
			return nil, err
		}
		if fields == nil {
			// literal null body
			fields = make(map[string]interface{})
		}
	}
	c.Locals(bodyKey, fields)
	return fields, nil
}
