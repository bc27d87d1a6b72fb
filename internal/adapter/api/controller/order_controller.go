package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/dto"
	orderdomain "github.com/firmdesk/firmdesk-backend/internal/domain/order"
	"github.com/firmdesk/firmdesk-backend/internal/service/fulfillment"
	"github.com/firmdesk/firmdesk-backend/pkg/firmctx"
	"github.com/firmdesk/firmdesk-backend/pkg/logger"
)

// OrderController gerencia as requisições relacionadas a pedidos
type OrderController struct {
	service *fulfillment.Service
	logger  logger.Logger
}

// NewOrderController cria uma nova instância de OrderController
func NewOrderController(service *fulfillment.Service, logger logger.Logger) *OrderController {
	return &OrderController{
		service: service,
		logger:  logger,
	}
}

// Create cria um novo pedido com seus itens
// @Summary Criar pedido
// @Description Cria um pedido com itens, reservando estoque atomicamente
// @Tags orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param order body dto.OrderCreateRequest true "Dados do pedido"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /orders [post]
func (c *OrderController) Create(ctx *gin.Context) {
	var req dto.OrderCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	firmID := firmctx.GetFirmID(ctx)
	userID := ctx.GetString("user_id")

	items := make([]fulfillment.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, fulfillment.OrderItemInput{
			StockID:      item.StockID,
			Quantity:     item.Quantity,
			SellingPrice: item.SellingPrice,
		})
	}

	view, err := c.service.CreateOrder(ctx, firmID, userID, fulfillment.CreateOrderInput{
		CustomerID: req.CustomerID,
		OrderDate:  req.OrderDate,
		InvoiceNo:  req.InvoiceNo,
		Items:      items,
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToOrderViewResponse(view))
}

// Get retorna um pedido pelo ID
// @Summary Buscar pedido
// @Description Retorna um pedido com seus itens
// @Tags orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /orders/{id} [get]
func (c *OrderController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	view, err := c.service.GetOrder(ctx, firmID, id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderViewResponse(view))
}

// List retorna os pedidos da firma
// @Summary Listar pedidos
// @Description Retorna os pedidos da firma com filtros de status e paginação
// @Tags orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param order_status query string false "Filtrar por status do pedido"
// @Param payment_status query string false "Filtrar por status de pagamento"
// @Param delivery_status query string false "Filtrar por status de entrega"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.OrderListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	p := dto.GetPagination(page, size)

	firmID := firmctx.GetFirmID(ctx)
	filter := orderdomain.Filter{
		OrderStatus:    orderdomain.Status(ctx.Query("order_status")),
		PaymentStatus:  orderdomain.PaymentStatus(ctx.Query("payment_status")),
		DeliveryStatus: orderdomain.DeliveryStatus(ctx.Query("delivery_status")),
	}

	orders, total, err := c.service.ListOrders(ctx, firmID, filter, p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderListResponse(orders, p, total))
}

// Update atualiza o cabeçalho do pedido
// @Summary Atualizar pedido
// @Description Atualiza data e/ou número de fatura do pedido
// @Tags orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Param order body dto.OrderUpdateRequest true "Campos a atualizar"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /orders/{id} [put]
func (c *OrderController) Update(ctx *gin.Context) {
	var req dto.OrderUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	view, err := c.service.UpdateOrder(ctx, firmID, id, req.OrderDate, req.InvoiceNo)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderViewResponse(view))
}

// Cancel cancela um pedido
// @Summary Cancelar pedido
// @Description Cancela um pedido pendente, devolvendo os itens ao estoque
// @Tags orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /orders/{id}/cancel [post]
func (c *OrderController) Cancel(ctx *gin.Context) {
	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	view, err := c.service.CancelOrder(ctx, firmID, id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderViewResponse(view))
}

// PendingDeliveries lista pedidos com entrega pendente ou parcial
// @Summary Pedidos com entrega pendente
// @Description Lista pedidos não cancelados ainda não totalmente entregues
// @Tags orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.OrderListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/pending-delivery [get]
func (c *OrderController) PendingDeliveries(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	p := dto.GetPagination(page, size)

	firmID := firmctx.GetFirmID(ctx)

	orders, total, err := c.service.ListPendingDeliveries(ctx, firmID, p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderListResponse(orders, p, total))
}

// PendingPayments lista pedidos ainda não quitados
// @Summary Pedidos com pagamento pendente
// @Description Lista pedidos não cancelados ainda não totalmente pagos
// @Tags orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.OrderListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/pending-payment [get]
func (c *OrderController) PendingPayments(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	p := dto.GetPagination(page, size)

	firmID := firmctx.GetFirmID(ctx)

	orders, total, err := c.service.ListPendingPayments(ctx, firmID, p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderListResponse(orders, p, total))
}

// NextInvoiceNo retorna o próximo número de fatura sugerido
// @Summary Próximo número de fatura
// @Description Retorna o próximo número de fatura disponível para a firma
// @Tags orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/next-invoice-no [get]
func (c *OrderController) NextInvoiceNo(ctx *gin.Context) {
	firmID := firmctx.GetFirmID(ctx)

	next, err := c.service.NextInvoiceNo(ctx, firmID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("próximo número de fatura", gin.H{"invoice_no": next}))
}
