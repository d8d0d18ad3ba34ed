package transactionValidator

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCreateApp() *fiber.App {
	app := fiber.New()
	app.Post("/", Create(), func(c *fiber.Ctx) error {
		req := c.Locals("validatedTransaction").(*CreateRequest)
		return c.JSON(req)
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCreateValidatorPassesValidRequest(t *testing.T) {
	app := newCreateApp()

	status := postJSON(t, app, `{"campaignId":1,"buyerId":2,"addTransaction":true,"addCheckoutLink":true}`)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestCreateValidatorRejectsLinkWithoutTransaction(t *testing.T) {
	app := newCreateApp()

	status := postJSON(t, app, `{"campaignId":1,"buyerId":2,"addTransaction":false,"addCheckoutLink":true}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestCreateValidatorRejectsZeroIDs(t *testing.T) {
	app := newCreateApp()

	status := postJSON(t, app, `{"campaignId":0,"buyerId":0}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestCreateValidatorRejectsMalformedBody(t *testing.T) {
	app := newCreateApp()

	status := postJSON(t, app, `{"campaignId":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestWebhookValidator(t *testing.T) {
	app := fiber.New()
	app.Post("/webhook", Webhook(), func(c *fiber.Ctx) error {
		req := c.Locals("validatedWebhook").(*WebhookRequest)
		return c.JSON(req)
	})

	req := httptest.NewRequest("POST", "/webhook", bytes.NewBufferString(`{"transactionId":"txn-1","state":"paid","amount":5000}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("POST", "/webhook", bytes.NewBufferString(`{"transactionId":"","state":"paid","amount":-5}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
