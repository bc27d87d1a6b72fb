package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/firmdesk/firmdesk-backend/internal/domain/stock"
)

// StockRequest representa a requisição de criação/atualização de item de estoque
type StockRequest struct {
	CategoryID        string          `json:"category_id" binding:"required"`
	StockName         string          `json:"stock_name" binding:"required"`
	SkuCode           string          `json:"sku_code" binding:"required"`
	Unit              string          `json:"unit" binding:"required"`
	QuantityAvailable decimal.Decimal `json:"quantity_available" binding:"gte=0"`
	BuyPrice          decimal.Decimal `json:"buy_price" binding:"gte=0"`
	LowUnitThreshold  decimal.Decimal `json:"low_unit_threshold" binding:"gte=0"`
	WeightPerUnit     decimal.Decimal `json:"weight_per_unit" binding:"gte=0"`
	WeightUnit        string          `json:"weight_unit"`
}

// StockAdjustRequest representa a requisição de ajuste manual de quantidade
type StockAdjustRequest struct {
	Delta decimal.Decimal `json:"delta" binding:"required"`
}

// StockResponse representa a resposta com dados de um item de estoque
type StockResponse struct {
	ID                string          `json:"id"`
	FirmID            string          `json:"firm_id"`
	CategoryID        string          `json:"category_id"`
	StockName         string          `json:"stock_name"`
	SkuCode           string          `json:"sku_code"`
	Unit              string          `json:"unit"`
	QuantityAvailable decimal.Decimal `json:"quantity_available"`
	BuyPrice          decimal.Decimal `json:"buy_price"`
	LowUnitThreshold  decimal.Decimal `json:"low_unit_threshold"`
	WeightPerUnit     decimal.Decimal `json:"weight_per_unit"`
	WeightUnit        string          `json:"weight_unit"`
	IsLow             bool            `json:"is_low"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// StockListResponse representa a resposta de listagem de estoque
type StockListResponse struct {
	Stocks []StockResponse `json:"stocks"`
	Meta   ListMeta        `json:"meta"`
}

// ToStockResponse converte um item de estoque do domínio para a resposta da API
func ToStockResponse(s *stock.Stock) StockResponse {
	return StockResponse{
		ID:                s.ID,
		FirmID:            s.FirmID,
		CategoryID:        s.CategoryID,
		StockName:         s.Name,
		SkuCode:           s.SkuCode,
		Unit:              s.Unit,
		QuantityAvailable: s.QuantityAvailable,
		BuyPrice:          s.BuyPrice,
		LowUnitThreshold:  s.LowUnitThreshold,
		WeightPerUnit:     s.WeightPerUnit,
		WeightUnit:        s.WeightUnit,
		IsLow:             s.IsLow(),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// ToStockListResponse converte uma lista de itens para a resposta da API
func ToStockListResponse(stocks []*stock.Stock, p Pagination, total int) StockListResponse {
	responses := make([]StockResponse, 0, len(stocks))
	for _, s := range stocks {
		responses = append(responses, ToStockResponse(s))
	}

	return StockListResponse{
		Stocks: responses,
		Meta:   NewListMeta(p, total),
	}
}
