package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/dto"
	stockdomain "github.com/firmdesk/firmdesk-backend/internal/domain/stock"
	"github.com/firmdesk/firmdesk-backend/pkg/firmctx"
	"github.com/firmdesk/firmdesk-backend/pkg/logger"
)

// StockController gerencia as requisições relacionadas a itens de estoque
type StockController struct {
	stockRepo stockdomain.Repository
	logger    logger.Logger
}

// NewStockController cria uma nova instância de StockController
func NewStockController(stockRepo stockdomain.Repository, logger logger.Logger) *StockController {
	return &StockController{
		stockRepo: stockRepo,
		logger:    logger,
	}
}

// Create cria um novo item de estoque
// @Summary Criar item de estoque
// @Description Cria um novo item de estoque na firma
// @Tags stocks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param stock body dto.StockRequest true "Dados do item"
// @Success 201 {object} dto.StockResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /stocks [post]
func (c *StockController) Create(ctx *gin.Context) {
	var req dto.StockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	firmID := firmctx.GetFirmID(ctx)

	stock, err := stockdomain.NewStock(firmID, req.CategoryID, req.StockName, req.SkuCode,
		req.Unit, req.QuantityAvailable, req.BuyPrice, req.LowUnitThreshold)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar item de estoque", err.Error()))
		return
	}
	stock.WeightPerUnit = req.WeightPerUnit
	stock.WeightUnit = req.WeightUnit

	if err := c.stockRepo.Create(ctx, stock); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToStockResponse(stock))
}

// Get retorna um item de estoque pelo ID
// @Summary Buscar item de estoque
// @Description Retorna os dados de um item de estoque pelo ID
// @Tags stocks
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do item"
// @Success 200 {object} dto.StockResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /stocks/{id} [get]
func (c *StockController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	stock, err := c.stockRepo.FindByID(ctx, id, firmID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStockResponse(stock))
}

// List retorna os itens de estoque da firma
// @Summary Listar estoque
// @Description Retorna os itens de estoque da firma com filtros e paginação
// @Tags stocks
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param category_id query string false "Filtrar por categoria"
// @Param search query string false "Busca por nome ou SKU"
// @Param start_date query string false "Data inicial (YYYY-MM-DD)"
// @Param end_date query string false "Data final (YYYY-MM-DD)"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.StockListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks [get]
func (c *StockController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	p := dto.GetPagination(page, size)

	firmID := firmctx.GetFirmID(ctx)
	filter := stockdomain.Filter{
		CategoryID: ctx.Query("category_id"),
		Search:     ctx.Query("search"),
		StartDate:  ctx.Query("start_date"),
		EndDate:    ctx.Query("end_date"),
	}

	stocks, total, err := c.stockRepo.List(ctx, firmID, filter, p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStockListResponse(stocks, p, total))
}

// LowStock retorna os itens abaixo do limite de alerta
// @Summary Listar estoque baixo
// @Description Retorna os itens com quantidade abaixo do limite de alerta
// @Tags stocks
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} dto.StockResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks/low [get]
func (c *StockController) LowStock(ctx *gin.Context) {
	firmID := firmctx.GetFirmID(ctx)

	stocks, err := c.stockRepo.FindLowStock(ctx, firmID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	responses := make([]dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		responses = append(responses, dto.ToStockResponse(s))
	}
	ctx.JSON(http.StatusOK, responses)
}

// Update atualiza um item de estoque
// @Summary Atualizar item de estoque
// @Description Atualiza os dados cadastrais de um item; a quantidade é ajustada pela rota de ajuste
// @Tags stocks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do item"
// @Param stock body dto.StockRequest true "Dados do item"
// @Success 200 {object} dto.StockResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /stocks/{id} [put]
func (c *StockController) Update(ctx *gin.Context) {
	var req dto.StockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	stock, err := c.stockRepo.FindByID(ctx, id, firmID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	stock.CategoryID = req.CategoryID
	stock.Name = req.StockName
	stock.SkuCode = req.SkuCode
	stock.Unit = req.Unit
	stock.BuyPrice = req.BuyPrice
	stock.LowUnitThreshold = req.LowUnitThreshold
	stock.WeightPerUnit = req.WeightPerUnit
	stock.WeightUnit = req.WeightUnit

	if err := c.stockRepo.Update(ctx, stock); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStockResponse(stock))
}

// Adjust aplica um ajuste manual de quantidade
// @Summary Ajustar quantidade
// @Description Aplica um delta positivo ou negativo à quantidade disponível
// @Tags stocks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do item"
// @Param adjust body dto.StockAdjustRequest true "Delta de quantidade"
// @Success 200 {object} dto.StockResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /stocks/{id}/adjust [patch]
func (c *StockController) Adjust(ctx *gin.Context) {
	var req dto.StockAdjustRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	stock, err := c.stockRepo.AdjustQuantity(ctx, id, firmID, req.Delta)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("quantidade de estoque ajustada", "stock_id", id, "firm_id", firmID, "delta", req.Delta.String())
	ctx.JSON(http.StatusOK, dto.ToStockResponse(stock))
}

// Delete desativa um item de estoque
// @Summary Excluir item de estoque
// @Description Desativa um item de estoque (exclusão lógica)
// @Tags stocks
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do item"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /stocks/{id} [delete]
func (c *StockController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	if err := c.stockRepo.SoftDelete(ctx, id, firmID); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("item de estoque desativado", nil))
}
