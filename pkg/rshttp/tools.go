package rshttp

import (
	"github.com/gofiber/fiber/v2"
)

// Echo is the minimal demo tool exercised by the happy-path scenario: it
// echoes the msg query parameter back alongside the verified identity and
// scope the gateway's token carried.
func (h *Handlers) Echo(c *fiber.Ctx) error {
	info := tokenInfo(c)
	return c.JSON(fiber.Map{
		"ok":    true,
		"echo":  c.Query("msg"),
		"user":  info.Subject,
		"scope": info.Scope,
	})
}

// Tickets is a read-only demo tool standing in for a ticketing backend.
func (h *Handlers) Tickets(c *fiber.Ctx) error {
	info := tokenInfo(c)
	return c.JSON(fiber.Map{
		"ok":      true,
		"user":    info.Subject,
		"tickets": []fiber.Map{{"id": "tix-1", "status": "open"}},
	})
}

type payRequest struct {
	AmountCents int64  `json:"amount_cents"`
	MerchantID  string `json:"merchant_id"`
}

// Pay is the demo payment tool. When WalletPMToken is configured, it
// requires that wallet payment-method token in the header the gateway
// injects, never visible to the agent, alongside the bearer access token;
// when it is empty, the header is not checked.
func (h *Handlers) Pay(c *fiber.Ctx) error {
	orderID := c.Params("orderId")

	var body payRequest
	_ = c.BodyParser(&body)

	pmToken := c.Get("X-Wallet-PM-Token")
	if h.Cfg.WalletPMToken != "" && pmToken != h.Cfg.WalletPMToken {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "missing_payment_method_token",
		})
	}

	info := tokenInfo(c)
	return c.JSON(fiber.Map{
		"status":       "succeeded",
		"order_id":     orderID,
		"user":         info.Subject,
		"amount_cents": body.AmountCents,
		"merchant_id":  body.MerchantID,
	})
}
