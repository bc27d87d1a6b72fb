package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/dto"
	"github.com/firmdesk/firmdesk-backend/internal/service/fulfillment"
	"github.com/firmdesk/firmdesk-backend/pkg/firmctx"
	"github.com/firmdesk/firmdesk-backend/pkg/logger"
)

// DeliveryController gerencia as requisições do razão de entregas
type DeliveryController struct {
	service *fulfillment.Service
	logger  logger.Logger
}

// NewDeliveryController cria uma nova instância de DeliveryController
func NewDeliveryController(service *fulfillment.Service, logger logger.Logger) *DeliveryController {
	return &DeliveryController{
		service: service,
		logger:  logger,
	}
}

// Record registra uma entrega parcial contra um item do pedido
// @Summary Registrar entrega
// @Description Registra uma entrega parcial de um item do pedido
// @Tags deliveries
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do item do pedido"
// @Param delivery body dto.DeliveryRequest true "Dados da entrega"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /order-items/{id}/deliveries [post]
func (c *DeliveryController) Record(ctx *gin.Context) {
	var req dto.DeliveryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	lineID := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	view, err := c.service.RecordDelivery(ctx, firmID, lineID, req.DeliveredQuantity, req.DeliveryDate, req.DeliveryNotes)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToOrderViewResponse(view))
}

// DeliverFull registra a entrega total do pedido
// @Summary Entregar pedido por completo
// @Description Registra entregas cobrindo o saldo restante de todos os itens
// @Tags deliveries
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Param delivery body dto.DeliverFullRequest false "Data e observações"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /orders/{id}/deliver [post]
func (c *DeliveryController) DeliverFull(ctx *gin.Context) {
	var req dto.DeliverFullRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	orderID := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	view, err := c.service.DeliverFullOrder(ctx, firmID, orderID, req.DeliveryDate, req.DeliveryNotes)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderViewResponse(view))
}

// Get retorna uma entrega pelo ID
// @Summary Buscar entrega
// @Description Retorna os dados de uma entrega pelo ID
// @Tags deliveries
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da entrega"
// @Success 200 {object} dto.DeliveryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /deliveries/{id} [get]
func (c *DeliveryController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	d, err := c.service.GetDelivery(ctx, firmID, id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDeliveryResponse(d))
}

// ListByOrder retorna as entregas de um pedido
// @Summary Listar entregas do pedido
// @Description Retorna todas as entregas registradas para o pedido
// @Tags deliveries
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Success 200 {array} dto.DeliveryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /orders/{id}/deliveries [get]
func (c *DeliveryController) ListByOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	deliveries, err := c.service.ListOrderDeliveries(ctx, firmID, orderID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDeliveryListResponse(deliveries))
}

// Summary retorna o resumo de entrega do pedido
// @Summary Resumo de entrega
// @Description Retorna o andamento de entrega do pedido item a item
// @Tags deliveries
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Success 200 {object} fulfillment.DeliverySummary
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /orders/{id}/delivery-summary [get]
func (c *DeliveryController) Summary(ctx *gin.Context) {
	orderID := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	summary, err := c.service.GetDeliverySummary(ctx, firmID, orderID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// Update corrige uma entrega registrada
// @Summary Corrigir entrega
// @Description Corrige quantidade, data ou observações de uma entrega
// @Tags deliveries
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da entrega"
// @Param delivery body dto.DeliveryUpdateRequest true "Campos a corrigir"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /deliveries/{id} [put]
func (c *DeliveryController) Update(ctx *gin.Context) {
	var req dto.DeliveryUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	view, err := c.service.UpdateDelivery(ctx, firmID, id, fulfillment.DeliveryPatch{
		DeliveredQuantity: req.DeliveredQuantity,
		DeliveryDate:      req.DeliveryDate,
		DeliveryNotes:     req.DeliveryNotes,
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderViewResponse(view))
}

// Delete remove uma entrega registrada
// @Summary Excluir entrega
// @Description Remove uma entrega, recalculando o andamento do pedido
// @Tags deliveries
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da entrega"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /deliveries/{id} [delete]
func (c *DeliveryController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	view, err := c.service.DeleteDelivery(ctx, firmID, id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderViewResponse(view))
}
