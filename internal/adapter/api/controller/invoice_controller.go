package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/dto"
	customerdomain "github.com/firmdesk/firmdesk-backend/internal/domain/customer"
	firmdomain "github.com/firmdesk/firmdesk-backend/internal/domain/firm"
	"github.com/firmdesk/firmdesk-backend/internal/service/fulfillment"
	"github.com/firmdesk/firmdesk-backend/pkg/firmctx"
	"github.com/firmdesk/firmdesk-backend/pkg/logger"
)

// InvoiceController monta a fatura de um pedido a partir dos dados da firma,
// do cliente e dos razões
type InvoiceController struct {
	service      *fulfillment.Service
	firmRepo     firmdomain.Repository
	customerRepo customerdomain.Repository
	logger       logger.Logger
}

// NewInvoiceController cria uma nova instância de InvoiceController
func NewInvoiceController(service *fulfillment.Service, firmRepo firmdomain.Repository, customerRepo customerdomain.Repository, logger logger.Logger) *InvoiceController {
	return &InvoiceController{
		service:      service,
		firmRepo:     firmRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Get monta e retorna a fatura do pedido
// @Summary Fatura do pedido
// @Description Monta a fatura com emitente, cliente, itens e resumo financeiro
// @Tags invoices
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /orders/{id}/invoice [get]
func (c *InvoiceController) Get(ctx *gin.Context) {
	orderID := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	view, err := c.service.GetOrder(ctx, firmID, orderID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	f, err := c.firmRepo.FindByID(ctx, firmID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	cust, err := c.customerRepo.FindByID(ctx, view.Order.CustomerID, firmID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	payments, err := c.service.ListOrderPayments(ctx, firmID, orderID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	deliveries, err := c.service.ListOrderDeliveries(ctx, firmID, orderID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	items := make([]dto.OrderLineResponse, 0, len(view.Lines))
	for _, l := range view.Lines {
		items = append(items, dto.ToOrderLineResponse(l))
	}

	ctx.JSON(http.StatusOK, dto.InvoiceResponse{
		Invoice:        view.Order.FormatInvoiceNo(),
		InvoiceNo:      view.Order.InvoiceNo,
		OrderID:        view.Order.ID,
		OrderDate:      view.Order.OrderDate,
		OrderStatus:    view.Order.OrderStatus,
		PaymentStatus:  view.Order.PaymentStatus,
		DeliveryStatus: view.Order.DeliveryStatus,
		Firm:           dto.ToFirmResponse(f),
		Customer:       dto.ToCustomerResponse(cust),
		Items:          items,
		TotalAmount:    view.Order.TotalAmount,
		TotalPaid:      view.Order.TotalPaidAmount,
		BalanceDue:     view.Order.BalanceDue(),
		Payments:       dto.ToPaymentListResponse(payments),
		Deliveries:     dto.ToDeliveryListResponse(deliveries),
	})
}
