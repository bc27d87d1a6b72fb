package fulfillment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/firmdesk/firmdesk-backend/internal/domain/order"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
)

// AddOrderItem adiciona um item a um pedido existente, reservando estoque
func (s *Service) AddOrderItem(ctx context.Context, firmID, orderID string, item OrderItemInput) (*OrderView, error) {
	var view *OrderView
	err := s.withOrderLock(ctx, orderID, func() error {
		return s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
			ord, err := st.Orders().FindByIDForUpdate(ctx, orderID, firmID)
			if err != nil {
				return err
			}
			if ord.IsCancelled() {
				return apperror.InvalidState("não é possível adicionar itens a um pedido cancelado")
			}

			if err := s.reserveLine(ctx, st, orderID, firmID, item); err != nil {
				return err
			}

			updated, err := s.refreshStatus(ctx, st, orderID, firmID)
			if err != nil {
				return err
			}

			view, err = loadView(ctx, st, updated)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// UpdateOrderItem altera quantidade e/ou preço de um item, ajustando o
// inventário pelo delta exato de quantidade. A quantidade não pode ficar
// abaixo do que já foi entregue para a linha.
func (s *Service) UpdateOrderItem(ctx context.Context, firmID, lineID string, quantity, sellingPrice *decimal.Decimal) (*OrderView, error) {
	if quantity == nil && sellingPrice == nil {
		return nil, apperror.Validation("informe quantidade ou preço de venda")
	}

	var view *OrderView
	err := s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
		line, err := st.Lines().FindByID(ctx, lineID)
		if err != nil {
			return err
		}

		// Verificação de propriedade: o pedido pai precisa pertencer à firma
		ord, err := st.Orders().FindByIDForUpdate(ctx, line.OrderID, firmID)
		if err != nil {
			if apperror.Is(err, apperror.KindNotFound) {
				return apperror.Forbidden("item pertence a um pedido de outra firma")
			}
			return err
		}
		if ord.IsCancelled() {
			return apperror.InvalidState("não é possível alterar itens de um pedido cancelado")
		}

		if quantity != nil {
			if !quantity.IsPositive() {
				return apperror.Validation("quantidade deve ser maior que zero")
			}
			if quantity.LessThan(line.QuantityDelivered) {
				return apperror.Newf(apperror.KindValidation,
					"quantidade não pode ser menor que a já entregue (%s)", line.QuantityDelivered.String())
			}

			delta := quantity.Sub(line.Quantity)
			if delta.IsPositive() {
				available, name, err := st.Stocks().QuantityAvailable(ctx, line.StockID, firmID)
				if err != nil {
					return err
				}
				if available.LessThan(delta) {
					return apperror.InsufficientStock(name, available, delta)
				}
			}
			if !delta.IsZero() {
				if _, err := st.Stocks().AdjustQuantity(ctx, line.StockID, firmID, delta.Neg()); err != nil {
					return err
				}
			}
		}

		if _, err := st.Lines().UpdateByID(ctx, lineID, order.LinePatch{
			Quantity:     quantity,
			SellingPrice: sellingPrice,
		}); err != nil {
			return err
		}

		updated, err := s.refreshStatus(ctx, st, line.OrderID, firmID)
		if err != nil {
			return err
		}

		view, err = loadView(ctx, st, updated)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// RemoveOrderItem remove um item do pedido. Entregas já registradas para a
// linha são removidas em cascata e apenas o restante não entregue volta ao
// estoque; unidades expedidas não são devolvidas.
func (s *Service) RemoveOrderItem(ctx context.Context, firmID, lineID string) (*OrderView, error) {
	var view *OrderView
	err := s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
		line, err := st.Lines().FindByID(ctx, lineID)
		if err != nil {
			return err
		}

		ord, err := st.Orders().FindByIDForUpdate(ctx, line.OrderID, firmID)
		if err != nil {
			if apperror.Is(err, apperror.KindNotFound) {
				return apperror.Forbidden("item pertence a um pedido de outra firma")
			}
			return err
		}
		if ord.IsCancelled() {
			return apperror.InvalidState("não é possível remover itens de um pedido cancelado")
		}

		if err := st.Deliveries().RemoveByLineID(ctx, lineID); err != nil {
			return err
		}

		remaining := line.Remaining()
		if remaining.IsPositive() {
			if _, err := st.Stocks().AdjustQuantity(ctx, line.StockID, firmID, remaining); err != nil {
				return err
			}
		}

		if err := st.Lines().RemoveByID(ctx, lineID); err != nil {
			return err
		}

		updated, err := s.refreshStatus(ctx, st, line.OrderID, firmID)
		if err != nil {
			return err
		}

		view, err = loadView(ctx, st, updated)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// GetOrderItems lista os itens de um pedido, com verificação de propriedade
func (s *Service) GetOrderItems(ctx context.Context, firmID, orderID string) ([]*order.Line, error) {
	if _, err := s.reads.Orders().FindByID(ctx, orderID, firmID); err != nil {
		return nil, err
	}
	return s.reads.Lines().FindByOrderIDWithStock(ctx, orderID)
}
