package fulfillment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/firmdesk/firmdesk-backend/internal/domain/delivery"
	"github.com/firmdesk/firmdesk-backend/internal/domain/order"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
)

// DeliveryPatch agrupa os campos de correção de uma entrega
type DeliveryPatch struct {
	DeliveredQuantity *decimal.Decimal
	DeliveryDate      *time.Time
	DeliveryNotes     *string
}

// LineSummary descreve o andamento de entrega de um item do pedido
type LineSummary struct {
	StockID           string          `json:"stock_id"`
	StockName         string          `json:"stock_name"`
	Unit              string          `json:"unit"`
	QuantityOrdered   decimal.Decimal `json:"quantity_ordered"`
	QuantityDelivered decimal.Decimal `json:"quantity_delivered"`
	IsFulfilled       bool            `json:"is_fulfilled"`
}

// DeliverySummary descreve o andamento de entrega do pedido inteiro
type DeliverySummary struct {
	OrderID        string               `json:"order_id"`
	DeliveryStatus order.DeliveryStatus `json:"delivery_status"`
	OrderStatus    order.Status         `json:"order_status"`
	Items          []LineSummary        `json:"items"`
}

// guardDeliveryMutation carrega a linha e trava o pedido pai, validando
// propriedade e estado antes de qualquer mutação no razão de entregas
func guardDeliveryMutation(ctx context.Context, st Stores, firmID, lineID string) (*order.Line, *order.Order, error) {
	line, err := st.Lines().FindByID(ctx, lineID)
	if err != nil {
		return nil, nil, err
	}

	ord, err := st.Orders().FindByIDForUpdate(ctx, line.OrderID, firmID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, nil, apperror.Forbidden("item pertence a um pedido de outra firma")
		}
		return nil, nil, err
	}
	if ord.IsCancelled() {
		return nil, nil, apperror.InvalidState("não é possível registrar entregas em um pedido cancelado")
	}

	return line, ord, nil
}

// syncLineDelivered atualiza o cache quantity_delivered da linha a partir do
// total autoritativo do razão de entregas
func syncLineDelivered(ctx context.Context, st Stores, lineID string) error {
	total, err := st.Deliveries().CalculateTotalDelivered(ctx, lineID)
	if err != nil {
		return err
	}
	_, err = st.Lines().UpdateByID(ctx, lineID, order.LinePatch{QuantityDelivered: &total})
	return err
}

// RecordDelivery registra uma entrega parcial contra um item do pedido.
// A soma das entregas da linha nunca pode exceder a quantidade pedida.
func (s *Service) RecordDelivery(ctx context.Context, firmID, lineID string, qty decimal.Decimal, date time.Time, notes string) (*OrderView, error) {
	var view *OrderView
	err := s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
		line, ord, err := guardDeliveryMutation(ctx, st, firmID, lineID)
		if err != nil {
			return err
		}

		d, err := delivery.NewDelivery(lineID, firmID, qty, date, notes)
		if err != nil {
			return apperror.Wrap(apperror.KindValidation, "dados da entrega inválidos", err)
		}

		delivered, err := st.Deliveries().CalculateTotalDelivered(ctx, lineID)
		if err != nil {
			return err
		}
		if delivered.Add(qty).GreaterThan(line.Quantity) {
			return apperror.OverDelivery(line.Quantity.Sub(delivered))
		}

		if err := st.Deliveries().Create(ctx, d); err != nil {
			return err
		}
		if err := syncLineDelivered(ctx, st, lineID); err != nil {
			return err
		}

		updated, err := s.refreshStatus(ctx, st, ord.ID, firmID)
		if err != nil {
			return err
		}

		view, err = loadView(ctx, st, updated)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("entrega registrada", "order_stock_id", lineID, "firm_id", firmID)
	return view, nil
}

// DeliverFullOrder registra, para cada item com saldo a entregar, uma entrega
// cobrindo o restante, marcando o pedido como totalmente entregue
func (s *Service) DeliverFullOrder(ctx context.Context, firmID, orderID string, date time.Time, notes string) (*OrderView, error) {
	if notes == "" {
		notes = "Entrega total do pedido"
	}

	var view *OrderView
	err := s.withOrderLock(ctx, orderID, func() error {
		return s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
			ord, err := st.Orders().FindByIDForUpdate(ctx, orderID, firmID)
			if err != nil {
				return err
			}
			if ord.IsCancelled() {
				return apperror.InvalidState("não é possível registrar entregas em um pedido cancelado")
			}
			if ord.DeliveryStatus == order.DeliveryDelivered {
				return apperror.InvalidState("este pedido já foi totalmente entregue")
			}

			lines, err := st.Lines().FindByOrderID(ctx, orderID)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				return apperror.Validation("este pedido não possui itens para entregar")
			}

			for _, l := range lines {
				remaining := l.Remaining()
				if !remaining.IsPositive() {
					continue
				}

				d, err := delivery.NewDelivery(l.ID, firmID, remaining, date, notes)
				if err != nil {
					return apperror.Wrap(apperror.KindValidation, "dados da entrega inválidos", err)
				}
				if err := st.Deliveries().Create(ctx, d); err != nil {
					return err
				}
				if err := syncLineDelivered(ctx, st, l.ID); err != nil {
					return err
				}
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

	s.log.Info("pedido entregue por completo", "order_id", orderID, "firm_id", firmID)
	return view, nil
}

// UpdateDelivery corrige uma entrega existente, revalidando a regra de
// entrega máxima contra as demais entregas da linha
func (s *Service) UpdateDelivery(ctx context.Context, firmID, deliveryID string, patch DeliveryPatch) (*OrderView, error) {
	if patch.DeliveredQuantity == nil && patch.DeliveryDate == nil && patch.DeliveryNotes == nil {
		return nil, apperror.Validation("nenhum campo para atualizar foi informado")
	}

	var view *OrderView
	err := s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
		d, err := st.Deliveries().FindByID(ctx, deliveryID, firmID)
		if err != nil {
			return err
		}

		line, ord, err := guardDeliveryMutation(ctx, st, firmID, d.OrderStockID)
		if err != nil {
			return err
		}

		if patch.DeliveredQuantity != nil {
			newQty := *patch.DeliveredQuantity
			if !newQty.IsPositive() {
				return apperror.Validation("quantidade entregue deve ser maior que zero")
			}

			total, err := st.Deliveries().CalculateTotalDelivered(ctx, line.ID)
			if err != nil {
				return err
			}
			others := total.Sub(d.DeliveredQuantity)
			if others.Add(newQty).GreaterThan(line.Quantity) {
				return apperror.OverDelivery(line.Quantity.Sub(others))
			}
		}

		if err := st.Deliveries().UpdateByID(ctx, deliveryID, delivery.Patch{
			DeliveredQuantity: patch.DeliveredQuantity,
			DeliveryDate:      patch.DeliveryDate,
			DeliveryNotes:     patch.DeliveryNotes,
		}); err != nil {
			return err
		}
		if err := syncLineDelivered(ctx, st, line.ID); err != nil {
			return err
		}

		updated, err := s.refreshStatus(ctx, st, ord.ID, firmID)
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

// DeleteDelivery remove uma entrega e recalcula o cache da linha e os status
func (s *Service) DeleteDelivery(ctx context.Context, firmID, deliveryID string) (*OrderView, error) {
	var view *OrderView
	err := s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
		d, err := st.Deliveries().FindByID(ctx, deliveryID, firmID)
		if err != nil {
			return err
		}

		line, ord, err := guardDeliveryMutation(ctx, st, firmID, d.OrderStockID)
		if err != nil {
			return err
		}

		if err := st.Deliveries().RemoveByID(ctx, deliveryID); err != nil {
			return err
		}
		if err := syncLineDelivered(ctx, st, line.ID); err != nil {
			return err
		}

		updated, err := s.refreshStatus(ctx, st, ord.ID, firmID)
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

// GetDelivery retorna uma entrega pelo ID
func (s *Service) GetDelivery(ctx context.Context, firmID, deliveryID string) (*delivery.Delivery, error) {
	return s.reads.Deliveries().FindByID(ctx, deliveryID, firmID)
}

// ListOrderDeliveries lista as entregas de um pedido, com verificação de propriedade
func (s *Service) ListOrderDeliveries(ctx context.Context, firmID, orderID string) ([]*delivery.Delivery, error) {
	if _, err := s.reads.Orders().FindByID(ctx, orderID, firmID); err != nil {
		return nil, err
	}
	return s.reads.Deliveries().FindByOrderID(ctx, orderID)
}

// GetDeliverySummary monta o resumo de entrega do pedido item a item
func (s *Service) GetDeliverySummary(ctx context.Context, firmID, orderID string) (*DeliverySummary, error) {
	ord, err := s.reads.Orders().FindByID(ctx, orderID, firmID)
	if err != nil {
		return nil, err
	}

	lines, err := s.reads.Lines().FindByOrderIDWithStock(ctx, orderID)
	if err != nil {
		return nil, err
	}

	summary := &DeliverySummary{
		OrderID:        ord.ID,
		DeliveryStatus: ord.DeliveryStatus,
		OrderStatus:    ord.OrderStatus,
		Items:          make([]LineSummary, 0, len(lines)),
	}
	for _, l := range lines {
		summary.Items = append(summary.Items, LineSummary{
			StockID:           l.StockID,
			StockName:         l.StockName,
			Unit:              l.Unit,
			QuantityOrdered:   l.Quantity,
			QuantityDelivered: l.QuantityDelivered,
			IsFulfilled:       l.IsFulfilled(),
		})
	}
	return summary, nil
}

// ListPendingDeliveries lista pedidos com entrega pendente ou parcial
func (s *Service) ListPendingDeliveries(ctx context.Context, firmID string, limit, offset int) ([]*order.Order, int, error) {
	return s.reads.Orders().ListPendingDelivery(ctx, firmID, limit, offset)
}
