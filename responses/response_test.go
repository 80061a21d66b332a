package responses

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vegholic-api/apperror"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, 404, StatusFor(apperror.KindNotFound))
	assert.Equal(t, 400, StatusFor(apperror.KindInvalidArgument))
	assert.Equal(t, 503, StatusFor(apperror.KindUnavailable))
	assert.Equal(t, 500, StatusFor(apperror.KindInternal))
}

func TestError_HidesCause(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Error(c, apperror.Unavailable("store unavailable", errors.New("dial tcp 10.0.0.1:27017")))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "10.0.0.1")

	var out APIResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, 503, out.Status)
	assert.Equal(t, "store unavailable", out.Message)
	assert.Nil(t, out.Result)
}

func TestErrorWithResult_KeepsCauseForLogger(t *testing.T) {
	cause := apperror.Unavailable("order placed but cart not cleared", errors.New("write conflict"))
	var logged interface{}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		logged = c.Locals(ErrorLocal)
		return err
	})
	app.Post("/", func(c *fiber.Ctx) error {
		return ErrorWithResult(c, cause, fiber.Map{"order_id": "abc"})
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)

	var out APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "order placed but cart not cleared", out.Message)
	require.NotNil(t, out.Result)
	assert.Equal(t, "abc", (*out.Result)["order_id"])
	assert.Same(t, cause, logged)
}
