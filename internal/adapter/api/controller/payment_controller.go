package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/dto"
	"github.com/firmdesk/firmdesk-backend/internal/service/fulfillment"
	"github.com/firmdesk/firmdesk-backend/pkg/firmctx"
	"github.com/firmdesk/firmdesk-backend/pkg/logger"
)

// PaymentController gerencia as requisições do razão de pagamentos
type PaymentController struct {
	service *fulfillment.Service
	logger  logger.Logger
}

// NewPaymentController cria uma nova instância de PaymentController
func NewPaymentController(service *fulfillment.Service, logger logger.Logger) *PaymentController {
	return &PaymentController{
		service: service,
		logger:  logger,
	}
}

// Record registra um pagamento contra um pedido
// @Summary Registrar pagamento
// @Description Registra um pagamento parcial ou total contra o pedido
// @Tags payments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Param payment body dto.PaymentRequest true "Dados do pagamento"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /orders/{id}/payments [post]
func (c *PaymentController) Record(ctx *gin.Context) {
	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	orderID := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	view, err := c.service.RecordPayment(ctx, firmID, orderID, req.AmountPaid, req.PaymentMethod, req.Remarks, req.PaymentDate)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToOrderViewResponse(view))
}

// Get retorna um pagamento pelo ID
// @Summary Buscar pagamento
// @Description Retorna os dados de um pagamento pelo ID
// @Tags payments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pagamento"
// @Success 200 {object} dto.PaymentResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /payments/{id} [get]
func (c *PaymentController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	p, err := c.service.GetPayment(ctx, firmID, id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentResponse(p))
}

// ListByOrder retorna os pagamentos de um pedido
// @Summary Listar pagamentos do pedido
// @Description Retorna todos os pagamentos registrados para o pedido
// @Tags payments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Success 200 {array} dto.PaymentResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /orders/{id}/payments [get]
func (c *PaymentController) ListByOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	payments, err := c.service.ListOrderPayments(ctx, firmID, orderID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentListResponse(payments))
}

// Summary retorna o resumo financeiro do pedido
// @Summary Resumo financeiro
// @Description Retorna total, pago e saldo devedor do pedido
// @Tags payments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Success 200 {object} fulfillment.PaymentSummary
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /orders/{id}/payment-summary [get]
func (c *PaymentController) Summary(ctx *gin.Context) {
	orderID := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	summary, err := c.service.GetPaymentSummary(ctx, firmID, orderID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// Update corrige um pagamento registrado
// @Summary Corrigir pagamento
// @Description Corrige valor, forma, observações ou data de um pagamento
// @Tags payments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pagamento"
// @Param payment body dto.PaymentUpdateRequest true "Campos a corrigir"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /payments/{id} [put]
func (c *PaymentController) Update(ctx *gin.Context) {
	var req dto.PaymentUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	view, err := c.service.UpdatePayment(ctx, firmID, id, fulfillment.PaymentPatch{
		AmountPaid:    req.AmountPaid,
		PaymentMethod: req.PaymentMethod,
		Remarks:       req.Remarks,
		PaymentDate:   req.PaymentDate,
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderViewResponse(view))
}

// Delete remove um pagamento registrado
// @Summary Excluir pagamento
// @Description Remove um pagamento, recalculando o estado financeiro do pedido
// @Tags payments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pagamento"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /payments/{id} [delete]
func (c *PaymentController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	view, err := c.service.DeletePayment(ctx, firmID, id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderViewResponse(view))
}
