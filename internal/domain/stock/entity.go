package stock

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName        = errors.New("nome do item não pode ser vazio")
	ErrEmptySku         = errors.New("código SKU não pode ser vazio")
	ErrNegativeQuantity = errors.New("quantidade disponível não pode ser negativa")
)

// Stock representa um item de estoque de uma firma
type Stock struct {
	ID                string          `json:"id"`
	FirmID            string          `json:"firm_id"`
	CategoryID        string          `json:"category_id"`
	Name              string          `json:"stock_name"`
	SkuCode           string          `json:"sku_code"`
	Unit              string          `json:"unit"` // Unidade de venda (kg, pç, cx)
	QuantityAvailable decimal.Decimal `json:"quantity_available"`
	BuyPrice          decimal.Decimal `json:"buy_price"`
	LowUnitThreshold  decimal.Decimal `json:"low_unit_threshold"` // Limite de alerta de estoque baixo
	WeightPerUnit     decimal.Decimal `json:"weight_per_unit"`
	WeightUnit        string          `json:"weight_unit"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NewStock cria um novo item de estoque
func NewStock(firmID, categoryID, name, skuCode, unit string, quantityAvailable, buyPrice, lowUnitThreshold decimal.Decimal) (*Stock, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if skuCode == "" {
		return nil, ErrEmptySku
	}
	if quantityAvailable.IsNegative() {
		return nil, ErrNegativeQuantity
	}

	now := time.Now()
	return &Stock{
		ID:                uuid.New().String(),
		FirmID:            firmID,
		CategoryID:        categoryID,
		Name:              name,
		SkuCode:           skuCode,
		Unit:              unit,
		QuantityAvailable: quantityAvailable,
		BuyPrice:          buyPrice,
		LowUnitThreshold:  lowUnitThreshold,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// IsLow verifica se o item está abaixo do limite de alerta
func (s *Stock) IsLow() bool {
	return s.QuantityAvailable.LessThanOrEqual(s.LowUnitThreshold)
}
