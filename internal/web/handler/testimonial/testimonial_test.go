package testimonial_test

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-admin/folio-admin/internal/db/models"
	"github.com/folio-admin/folio-admin/internal/web/handler/handlertest"
	"github.com/folio-admin/folio-admin/internal/web/handler/testimonial"
)

const path = "/api/testimonials"

func list(t *testing.T, env *handlertest.Env) []models.Testimonial {
	t.Helper()

	res := env.Do(t, fiber.MethodGet, path, nil, nil)
	require.Equal(t, fiber.StatusOK, res.Status)

	var rows []models.Testimonial
	handlertest.DecodeData(t, res, &rows)

	return rows
}

func TestCreateDefaultsRating(t *testing.T) {
	env := handlertest.New(t, testimonial.New())
	cookie := env.Login(t)

	res := env.Do(t, fiber.MethodPost, path, map[string]any{"name": "Ada", "message": "Great work"}, cookie)
	require.Equal(t, fiber.StatusOK, res.Status, res.Error)
	assert.Equal(t, uint64(1), res.ID)
	assert.Equal(t, "Testimonial created", res.Message)

	res = env.Do(t, fiber.MethodPost, path, map[string]any{
		"name": "Grace", "role": "CTO", "message": "Solid", "rating": "4",
	}, cookie)
	require.Equal(t, fiber.StatusOK, res.Status, res.Error)
	assert.Equal(t, uint64(2), res.ID)

	rows := list(t, env)
	require.Len(t, rows, 2)
	assert.Equal(t, models.DefaultRating, rows[0].Rating)
	assert.Equal(t, "Grace", rows[1].Name)
	assert.Equal(t, "CTO", rows[1].Role)
	assert.Equal(t, 4, rows[1].Rating)
}

func TestCreateValidation(t *testing.T) {
	env := handlertest.New(t, testimonial.New())
	cookie := env.Login(t)

	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{name: "empty name", body: map[string]any{"name": "", "message": "hi"}, want: "Name is required"},
		{name: "missing message", body: map[string]any{"name": "Ada"}, want: "Message is required"},
		{name: "both missing", body: map[string]any{"role": "CEO"}, want: "Name and message are required"},
		{name: "rating too high", body: map[string]any{"name": "a", "message": "b", "rating": 6}, want: "Rating must be at most 5"},
		{name: "rating negative", body: map[string]any{"name": "a", "message": "b", "rating": -1}, want: "Rating must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.Do(t, fiber.MethodPost, path, tt.body, cookie)
			assert.Equal(t, fiber.StatusBadRequest, res.Status)
			assert.False(t, res.Success)
			assert.Equal(t, tt.want, res.Error)
		})
	}

	assert.Empty(t, list(t, env))
}

func TestUpdateAndDelete(t *testing.T) {
	env := handlertest.New(t, testimonial.New())
	cookie := env.Login(t)

	res := env.Do(t, fiber.MethodPost, path, map[string]any{
		"name": "Ada", "role": "Engineer", "message": "first", "rating": 3,
	}, cookie)
	require.Equal(t, fiber.StatusOK, res.Status)

	res = env.Do(t, fiber.MethodPut, path+"/1", map[string]any{"name": "Ada L.", "message": "second"}, cookie)
	require.Equal(t, fiber.StatusOK, res.Status, res.Error)
	assert.Equal(t, "Testimonial updated", res.Message)

	got, err := env.Store.Testimonials.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.Name)
	assert.Equal(t, "second", got.Message)
	assert.Equal(t, "Engineer", got.Role)
	assert.Equal(t, 3, got.Rating)

	res = env.Do(t, fiber.MethodPut, path+"/1", map[string]any{"name": "", "message": "x"}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = env.Do(t, fiber.MethodPut, path+"/9", map[string]any{"name": "a", "message": "b"}, cookie)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
	assert.Equal(t, "Testimonial not found", res.Error)

	res = env.Do(t, fiber.MethodDelete, path+"/1", nil, cookie)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, "Testimonial deleted", res.Message)
	assert.Empty(t, list(t, env))
}

func TestIDsAreNotReusedWhileHigherExists(t *testing.T) {
	env := handlertest.New(t, testimonial.New())
	cookie := env.Login(t)

	for _, name := range []string{"a", "b", "c"} {
		res := env.Do(t, fiber.MethodPost, path, map[string]any{"name": name, "message": "m"}, cookie)
		require.Equal(t, fiber.StatusOK, res.Status)
	}

	res := env.Do(t, fiber.MethodDelete, path+"/2", nil, cookie)
	require.Equal(t, fiber.StatusOK, res.Status)

	res = env.Do(t, fiber.MethodPost, path, map[string]any{"name": "d", "message": "m"}, cookie)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, uint64(4), res.ID)
}

func TestMutationsRequireSession(t *testing.T) {
	env := handlertest.New(t, testimonial.New())

	res := env.Do(t, fiber.MethodPost, path, map[string]any{"name": "a", "message": "b"}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)
	assert.Empty(t, list(t, env))
}
