package dsl

import (
	"context"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
	"github.com/reoring/formskema/messages"
)

// emailValidate is shared; validator.Validate is safe for concurrent use.
var emailValidate = validator.New()

type stringRule struct {
	code  string
	msg   string
	check func(string) bool
	// params are copied onto the issue.
	params map[string]any
}

// StringSchema validates text through an ordered rule chain. The first
// failing rule short-circuits the chain. Methods return copies, so a base
// schema can be shared and extended.
type StringSchema struct {
	rules     []stringRule
	minLen    *int
	pattern   string
	format    string
	typeMsg   string
	firstMsg  string
	jsonTitle string
}

// String returns a string schema with no rules.
func String() StringSchema { return StringSchema{} }

func (s StringSchema) with(r stringRule) StringSchema {
	s.rules = append(s.rules[:len(s.rules):len(s.rules)], r)
	if s.firstMsg == "" {
		s.firstMsg = r.msg
	}
	return s
}

// Min requires at least n characters (Unicode code points).
func (s StringSchema) Min(n int, msg string) StringSchema {
	s.minLen = &n
	return s.with(stringRule{
		code:   formskema.CodeTooShort,
		msg:    msg,
		check:  func(v string) bool { return utf8.RuneCountInString(v) >= n },
		params: map[string]any{"min": n},
	})
}

// NonEmpty requires at least one character.
func (s StringSchema) NonEmpty(msg string) StringSchema { return s.Min(1, msg) }

// Regex requires the whole value to match pattern. The pattern is compiled
// immediately; an invalid pattern panics.
func (s StringSchema) Regex(pattern, msg string) StringSchema {
	re := regexp.MustCompile(pattern)
	s.pattern = pattern
	return s.with(stringRule{
		code:   formskema.CodePattern,
		msg:    msg,
		check:  re.MatchString,
		params: map[string]any{"pattern": pattern},
	})
}

// Email requires a syntactically valid email address.
func (s StringSchema) Email(msg string) StringSchema {
	s.format = "email"
	return s.with(stringRule{
		code:   formskema.CodeInvalidFormat,
		msg:    msg,
		check:  func(v string) bool { return emailValidate.Var(v, "email") == nil },
		params: map[string]any{"format": "email"},
	})
}

// TypeMessage sets the message for non-string input. It defaults to the first
// rule's message.
func (s StringSchema) TypeMessage(msg string) StringSchema {
	s.typeMsg = msg
	return s
}

// Describe sets the JSON Schema title.
func (s StringSchema) Describe(title string) StringSchema {
	s.jsonTitle = title
	return s
}

func (s StringSchema) primaryMessage() string {
	if s.typeMsg != "" {
		return s.typeMsg
	}
	return s.firstMsg
}

func (s StringSchema) Parse(ctx context.Context, v any) (string, error) {
	str, ok := v.(string)
	if !ok {
		return "", formskema.Issues{{
			Code:    formskema.CodeInvalidType,
			Message: messages.Or(s.primaryMessage(), formskema.CodeInvalidType),
			Hint:    "expected string",
		}}
	}
	for _, r := range s.rules {
		if r.check(str) {
			continue
		}
		params := make(map[string]any, len(r.params)+1)
		for k, pv := range r.params {
			params[k] = pv
		}
		if r.code == formskema.CodeTooShort {
			params["got"] = utf8.RuneCountInString(str)
		}
		return "", formskema.Issues{{Code: r.code, Message: messages.Or(r.msg, r.code), Params: params}}
	}
	return str, nil
}

func (s StringSchema) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}

func (s StringSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "string", Title: s.jsonTitle, MinLength: s.minLen, Pattern: s.pattern, Format: s.format, ErrorMessage: s.firstMsg}
	return out, nil
}

func (s StringSchema) anyAdapter() AnyAdapter {
	return AnyAdapter{
		parse:      func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		jsonSchema: s.JSONSchema,
		message:    s.primaryMessage(),
	}
}

var _ formskema.Schema[string] = StringSchema{}

// IntSchema validates integers. With Coerce, numeric text is accepted too.
type IntSchema struct {
	coerce    bool
	min       *int
	minMsg    string
	msg       string
	jsonTitle string
}

// Int returns an integer schema that accepts native numbers only.
func Int() IntSchema { return IntSchema{} }

// Coerce accepts strings that parse as an integer ("25", " 25 ").
func (s IntSchema) Coerce() IntSchema {
	s.coerce = true
	return s
}

// Min requires value >= n, checked after coercion.
func (s IntSchema) Min(n int, msg string) IntSchema {
	s.min = &n
	s.minMsg = msg
	return s
}

// Message sets the message for every failure of this schema.
func (s IntSchema) Message(msg string) IntSchema {
	s.msg = msg
	return s
}

// Describe sets the JSON Schema title.
func (s IntSchema) Describe(title string) IntSchema {
	s.jsonTitle = title
	return s
}

func (s IntSchema) primaryMessage() string {
	if s.msg != "" {
		return s.msg
	}
	return s.minMsg
}

func (s IntSchema) Parse(ctx context.Context, v any) (int, error) {
	n, ok := toInt(v, s.coerce)
	if !ok {
		return 0, formskema.Issues{{
			Code:    formskema.CodeInvalidType,
			Message: messages.Or(s.primaryMessage(), formskema.CodeInvalidType),
			Hint:    "expected integer",
		}}
	}
	if s.min != nil && n < *s.min {
		msg := s.minMsg
		if s.msg != "" {
			msg = s.msg
		}
		return 0, formskema.Issues{
			formskema.Root().Issue(formskema.CodeTooSmall, messages.Or(msg, formskema.CodeTooSmall), "min", *s.min, "got", n),
		}
	}
	return n, nil
}

func (s IntSchema) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}

func (s IntSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "integer", Title: s.jsonTitle, ErrorMessage: s.primaryMessage()}
	if s.min != nil {
		m := float64(*s.min)
		out.Minimum = &m
	}
	return out, nil
}

func (s IntSchema) anyAdapter() AnyAdapter {
	return AnyAdapter{
		parse:      func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		jsonSchema: s.JSONSchema,
		message:    s.primaryMessage(),
	}
}

var _ formskema.Schema[int] = IntSchema{}

// toInt converts native numbers, json.Number and (when coerce is set) text
// into an int. Fractional, non-finite and out-of-range values are rejected.
func toInt(v any, coerce bool) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int64ToInt(t)
	case uint:
		return uint64ToInt(uint64(t))
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return uint64ToInt(uint64(t))
	case uint64:
		return uint64ToInt(t)
	case float32:
		return floatToInt(float64(t))
	case float64:
		return floatToInt(t)
	case json.Number:
		return numericTextToInt(string(t))
	case string:
		if !coerce {
			return 0, false
		}
		return numericTextToInt(strings.TrimSpace(t))
	default:
		return 0, false
	}
}

func numericTextToInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if i, err := strconv.ParseInt(s, 10, strconv.IntSize); err == nil {
		return int(i), true
	}
	// "30.0" and "3e1" are whole numbers; hex floats are not numeric text here.
	if strings.ContainsAny(s, "xX") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return floatToInt(f)
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64ToInt(int64(f))
}

func int64ToInt(i int64) (int, bool) {
	if int64(int(i)) != i {
		return 0, false
	}
	return int(i), true
}

func uint64ToInt(u uint64) (int, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64ToInt(int64(u))
}
