package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-Funkos-api/internal/application/cart"
	"github.com/jhoicas/Tienda-Funkos-api/internal/application/dto"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/media"
)

// CartHandler maneja el carrito del comprador autenticado, el checkout y los comprobantes.
type CartHandler struct {
	svc    *cart.Service
	images *media.Resolver
}

// NewCartHandler construye el handler.
func NewCartHandler(svc *cart.Service, images *media.Resolver) *CartHandler {
	return &CartHandler{svc: svc, images: images}
}

func (h *CartHandler) snapshotResponse(s cart.Snapshot) dto.CartResponse {
	return dto.NewCartResponse(s.Lines, s.Total, s.Count, h.images)
}

// Get godoc
// @Summary      Ver carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Failure      401  {object}  dto.RedirectResponse
// @Failure      403  {object}  dto.RedirectResponse
// @Router       /api/carrito [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.snapshotResponse(h.svc.Get(c.UserContext(), GetUserID(c))))
}

// Count godoc
// @Summary      Contador del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartCountResponse
// @Router       /api/carrito/contador [get]
func (h *CartHandler) Count(c *fiber.Ctx) error {
	return c.JSON(dto.CartCountResponse{Count: h.svc.Count(c.UserContext(), GetUserID(c))})
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Description  Si el producto ya está en el carrito suma la cantidad, limitada al stock.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "product_id, quantity"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/carrito/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	snap, err := h.svc.AddItem(c.UserContext(), GetUserID(c), in.ProductID, in.Quantity)
	if err != nil {
		return respondError(c, err, "producto no encontrado")
	}
	return c.JSON(h.snapshotResponse(snap))
}

// UpdateItem godoc
// @Summary      Cambiar cantidad de una línea
// @Description  La cantidad se limita al stock; 0 o negativo quita la línea.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateCartItemRequest  true  "quantity"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/carrito/items/{id} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	snap := h.svc.UpdateItem(c.UserContext(), GetUserID(c), c.Params("id"), in.Quantity)
	return c.JSON(h.snapshotResponse(snap))
}

// RemoveItem godoc
// @Summary      Quitar una línea del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/carrito/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	snap := h.svc.RemoveItem(c.UserContext(), GetUserID(c), c.Params("id"))
	return c.JSON(h.snapshotResponse(snap))
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/carrito [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	return c.JSON(h.snapshotResponse(h.svc.Clear(c.UserContext(), GetUserID(c))))
}

// Checkout godoc
// @Summary      Confirmar carrito
// @Description  Revalida el carrito contra el catálogo. Si el stock cambió devuelve 409 con los ajustes aplicados.
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.ReceiptResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.StockChangedResponse
// @Router       /api/carrito/checkout [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	session := GetSession(c)
	buyer := cart.Buyer{UserID: session.UserID, Username: session.Username}
	receipt, err := h.svc.Checkout(c.UserContext(), buyer)
	if err != nil {
		var changed *cart.StockChangedError
		if errors.As(err, &changed) {
			adjustments := make([]dto.CartAdjustmentResponse, 0, len(changed.Adjustments))
			for _, a := range changed.Adjustments {
				adjustments = append(adjustments, dto.CartAdjustmentResponse{
					ProductID: a.ProductID,
					Name:      a.Name,
					Previous:  a.Previous,
					Current:   a.Current,
				})
			}
			return c.Status(fiber.StatusConflict).JSON(dto.StockChangedResponse{
				Code:        "STOCK_CHANGED",
				Message:     "el stock de algunos productos cambió, revise su carrito",
				Adjustments: adjustments,
				Cart:        h.snapshotResponse(h.svc.Get(c.UserContext(), buyer.UserID)),
			})
		}
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(
		dto.NewReceiptResponse(receipt.ID, receipt.Lines, receipt.Total, receipt.Count, receipt.CreatedAt, h.images))
}

// Receipt godoc
// @Summary      Obtener comprobante
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carrito/comprobantes/{id} [get]
func (h *CartHandler) Receipt(c *fiber.Ctx) error {
	receipt, err := h.svc.Receipt(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "comprobante no encontrado")
	}
	return c.JSON(dto.NewReceiptResponse(receipt.ID, receipt.Lines, receipt.Total, receipt.Count, receipt.CreatedAt, h.images))
}

// ReceiptPDF godoc
// @Summary      Descargar comprobante en PDF
// @Tags         cart
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carrito/comprobantes/{id}/pdf [get]
func (h *CartHandler) ReceiptPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.svc.ReceiptPDF(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err, "comprobante no encontrado")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="comprobante-`+id+`.pdf"`)
	return c.Send(pdf)
}
