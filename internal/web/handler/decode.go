package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Present is the set of top level keys a client sent.
type Present map[string]struct{}

// Has reports whether key was part of the body.
func (p Present) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Decode strictly decodes the json object in the request body into dst.
// Keys must match the json names of dst exactly, anything else is rejected.
// It reports which top level keys were sent.
func Decode(c *fiber.Ctx, dst any) (Present, error) {
	body := c.Body()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, fmt.Errorf("%w: expected a json object", ErrInvalidBody)
	}

	names := jsonNames(dst)
	for key := range raw {
		if _, ok := names[key]; !ok {
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidBody, key)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBody, describe(err))
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidBody)
	}

	present := make(Present, len(raw))
	for key := range raw {
		present[key] = struct{}{}
	}

	return present, nil
}

// jsonNames returns the json keys of the struct dst points to.
func jsonNames(dst any) map[string]struct{} {
	t := reflect.TypeOf(dst)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	names := make(map[string]struct{})
	if t == nil || t.Kind() != reflect.Struct {
		return names
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")

		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}

		names[name] = struct{}{}
	}

	return names
}

// describe turns decoder errors into messages safe to show to a client.
func describe(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field + " has the wrong type"
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) || errors.Is(err, ErrInvalidNumber) {
		return "expected a number"
	}

	return err.Error()
}

// ParseID returns the :id route parameter.
// Zero, negative and non numeric ids are reported as not ok.
func ParseID(c *fiber.Ctx) (uint64, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return id, true
}
