package handler_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-admin/folio-admin/internal/web/handler"
)

func TestInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: `2024`, want: 2024},
		{in: `"2024"`, want: 2024},
		{in: `" 7 "`, want: 7},
		{in: `""`, want: 0},
		{in: `null`, want: 0},
		{in: `"010"`, want: 10},
		{in: `"-3"`, want: -3},
		{in: `2024.0`, want: 2024},
		{in: `"soon"`, wantErr: true},
		{in: `1e300`, wantErr: true},
		{in: `2024.5`, wantErr: true},
		{in: `"0x10"`, wantErr: true},
		{in: `"99999999999999999999"`, wantErr: true},
		{in: `"NaN"`, wantErr: true},
		{in: `true`, wantErr: true},
		{in: `[1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var i handler.Int

			err := json.Unmarshal([]byte(tt.in), &i)
			if tt.wantErr {
				require.ErrorIs(t, err, handler.ErrInvalidNumber)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, int(i))
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := map[string]bool{
		`true`:  true,
		`false`: false,
		`1`:     true,
		`0`:     false,
		`"0"`:   true,
		`""`:    false,
		`null`:  false,
		`{}`:    true,
		`[]`:    true,
	}

	for in, want := range tests {
		var b handler.Truthy
		require.NoError(t, json.Unmarshal([]byte(in), &b), in)
		assert.Equal(t, want, bool(b), in)
	}
}

func TestScalarString(t *testing.T) {
	for _, tt := range []struct {
		in   any
		want string
		ok   bool
	}{
		{in: "x", want: "x", ok: true},
		{in: nil, want: "", ok: true},
		{in: true, want: "true", ok: true},
		{in: json.Number("12"), want: "12", ok: true},
		{in: map[string]any{}, ok: false},
		{in: []any{1}, ok: false},
	} {
		got, ok := handler.ScalarString(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

type payload struct {
	Name    string      `json:"name"    validate:"required"`
	Message string      `json:"message" validate:"required"`
	Rating  handler.Int `json:"rating"  validate:"omitempty,min=1,max=5"`
}

func TestValidatorCheck(t *testing.T) {
	v := handler.NewValidator()

	tests := []struct {
		name string
		in   payload
		want string
	}{
		{name: "valid", in: payload{Name: "a", Message: "b"}},
		{name: "one missing", in: payload{Message: "b"}, want: "Name is required"},
		{name: "two missing", in: payload{}, want: "Name and message are required"},
		{name: "range", in: payload{Name: "a", Message: "b", Rating: 9}, want: "Rating must be at most 5"},
		{name: "mixed", in: payload{Name: "a", Rating: 9}, want: "Message is required; Rating must be at most 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := v.Check(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, msg)
		})
	}
}

// decodeApp echoes the decoded payload and the sent keys.
func decodeApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})

	app.Post("/", func(c *fiber.Ctx) error {
		var p payload

		present, err := handler.Decode(c, &p)
		if err != nil {
			return handler.BadRequest(err)
		}

		keys := make([]string, 0, len(present))
		for _, k := range []string{"name", "message", "rating"} {
			if present.Has(k) {
				keys = append(keys, k)
			}
		}

		return handler.OK(c, keys)
	})

	app.Get("/item/:id", func(c *fiber.Ctx) error {
		if _, ok := handler.ParseID(c); !ok {
			return handler.NotFound("Item")
		}

		return handler.OK(c, nil)
	})

	app.Get("/boom", func(*fiber.Ctx) error {
		return errors.New("database is on fire") //nolint:goerr113
	})

	return app
}

func call(t *testing.T, app *fiber.App, method, target, body string) (int, handler.Response, json.RawMessage) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope struct {
		handler.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope), string(raw))

	return resp.StatusCode, envelope.Response, envelope.Data
}

func TestDecode(t *testing.T) {
	app := decodeApp()

	status, res, data := call(t, app, fiber.MethodPost, "/", `{"name":"a","rating":"3"}`)
	require.Equal(t, fiber.StatusOK, status, res.Error)
	assert.JSONEq(t, `["name","rating"]`, string(data))

	for body, want := range map[string]string{
		`{"name":"a","extra":1}`: "unknown field",
		`{"Name":"a"}`:           `unknown field "Name"`,
		`{"name":"a"} {"x":1}`:   "expected a json object",
		`"text"`:                 "expected a json object",
		`null`:                   "expected a json object",
		`{"rating":"many"}`:      "expected a number",
		`{"name":5}`:             "name has the wrong type",
	} {
		status, res, _ = call(t, app, fiber.MethodPost, "/", body)
		assert.Equal(t, fiber.StatusBadRequest, status, body)
		assert.False(t, res.Success)
		assert.True(t, strings.HasPrefix(res.Error, "Invalid request body"), res.Error)
		assert.Contains(t, res.Error, want, body)
	}
}

func TestParseID(t *testing.T) {
	app := decodeApp()

	status, _, _ := call(t, app, fiber.MethodGet, "/item/12", "")
	assert.Equal(t, fiber.StatusOK, status)

	for _, id := range []string{"0", "-3", "abc", "1.5"} {
		status, res, _ := call(t, app, fiber.MethodGet, "/item/"+id, "")
		assert.Equal(t, fiber.StatusNotFound, status, id)
		assert.Equal(t, "Item not found", res.Error)
	}
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	status, res, _ := call(t, decodeApp(), fiber.MethodGet, "/boom", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.False(t, res.Success)
	assert.Equal(t, handler.InternalServerErrorMessage, res.Error)
	assert.NotContains(t, res.Error, "fire")
}

func TestErrorHandlerUnknownRoute(t *testing.T) {
	status, res, _ := call(t, decodeApp(), fiber.MethodGet, "/nowhere", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}
