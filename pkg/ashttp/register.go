package ashttp

import (
	"github.com/abraxas-iag/gateway/pkg/asrv"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type registerRequest struct {
	RedirectURIs []string `json:"redirect_uris"`
	ClientName   string   `json:"client_name,omitempty"`
}

// Register implements RFC 7591 dynamic client registration, issuing a
// generated client_id for a public client (no secret, PKCE-only).
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil || len(req.RedirectURIs) == 0 {
		return asrv.ErrInvalidRequest("redirect_uris is required")
	}

	client := asrv.Client{
		ClientID:     uuid.NewString(),
		ClientName:   req.ClientName,
		RedirectURIs: req.RedirectURIs,
	}
	if err := h.Clients.Put(client); err != nil {
		return asrv.ErrStoreError(err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(client)
}
