package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/dto"
	"github.com/firmdesk/firmdesk-backend/internal/service/fulfillment"
	"github.com/firmdesk/firmdesk-backend/pkg/firmctx"
	"github.com/firmdesk/firmdesk-backend/pkg/logger"
)

// OrderItemController gerencia as requisições relacionadas a itens de pedido
type OrderItemController struct {
	service *fulfillment.Service
	logger  logger.Logger
}

// NewOrderItemController cria uma nova instância de OrderItemController
func NewOrderItemController(service *fulfillment.Service, logger logger.Logger) *OrderItemController {
	return &OrderItemController{
		service: service,
		logger:  logger,
	}
}

// Add adiciona um item a um pedido existente
// @Summary Adicionar item ao pedido
// @Description Adiciona um item ao pedido, reservando estoque
// @Tags order-items
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Param item body dto.OrderItemRequest true "Dados do item"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /orders/{id}/items [post]
func (c *OrderItemController) Add(ctx *gin.Context) {
	var req dto.OrderItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	orderID := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	view, err := c.service.AddOrderItem(ctx, firmID, orderID, fulfillment.OrderItemInput{
		StockID:      req.StockID,
		Quantity:     req.Quantity,
		SellingPrice: req.SellingPrice,
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToOrderViewResponse(view))
}

// List retorna os itens de um pedido
// @Summary Listar itens do pedido
// @Description Retorna os itens do pedido com dados do estoque
// @Tags order-items
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Success 200 {array} dto.OrderLineResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /orders/{id}/items [get]
func (c *OrderItemController) List(ctx *gin.Context) {
	orderID := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	lines, err := c.service.GetOrderItems(ctx, firmID, orderID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	responses := make([]dto.OrderLineResponse, 0, len(lines))
	for _, l := range lines {
		responses = append(responses, dto.ToOrderLineResponse(l))
	}
	ctx.JSON(http.StatusOK, responses)
}

// Update altera quantidade e/ou preço de um item
// @Summary Atualizar item do pedido
// @Description Altera quantidade e/ou preço de um item, ajustando o estoque pelo delta
// @Tags order-items
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do item"
// @Param item body dto.OrderItemUpdateRequest true "Campos a atualizar"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /order-items/{id} [put]
func (c *OrderItemController) Update(ctx *gin.Context) {
	var req dto.OrderItemUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	lineID := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	view, err := c.service.UpdateOrderItem(ctx, firmID, lineID, req.Quantity, req.SellingPrice)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderViewResponse(view))
}

// Remove remove um item do pedido
// @Summary Remover item do pedido
// @Description Remove um item do pedido, devolvendo ao estoque o saldo não entregue
// @Tags order-items
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do item"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /order-items/{id} [delete]
func (c *OrderItemController) Remove(ctx *gin.Context) {
	lineID := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	view, err := c.service.RemoveOrderItem(ctx, firmID, lineID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderViewResponse(view))
}
