package fulfillment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/firmdesk/firmdesk-backend/internal/domain/order"
	"github.com/firmdesk/firmdesk-backend/internal/domain/payment"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
)

// PaymentPatch agrupa os campos de correção de um pagamento
type PaymentPatch struct {
	AmountPaid    *decimal.Decimal
	PaymentMethod *string
	Remarks       *string
	PaymentDate   *time.Time
}

// PaymentSummary descreve o andamento financeiro do pedido. BalanceDue fica
// negativo quando há pagamento a maior.
type PaymentSummary struct {
	OrderID       string              `json:"order_id"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	TotalPaid     decimal.Decimal     `json:"total_paid"`
	BalanceDue    decimal.Decimal     `json:"balance_due"`
	PaymentStatus order.PaymentStatus `json:"payment_status"`
}

// RecordPayment registra um pagamento contra um pedido. Pagamento a maior é
// permitido; o saldo devedor aparece negativo no resumo.
func (s *Service) RecordPayment(ctx context.Context, firmID, orderID string, amount decimal.Decimal, method, remarks string, date time.Time) (*OrderView, error) {
	var view *OrderView
	err := s.withOrderLock(ctx, orderID, func() error {
		return s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
			ord, err := st.Orders().FindByIDForUpdate(ctx, orderID, firmID)
			if err != nil {
				return err
			}
			if ord.IsCancelled() {
				return apperror.InvalidState("não é possível registrar pagamentos em um pedido cancelado")
			}

			p, err := payment.NewPayment(orderID, firmID, ord.CustomerID, amount, method, remarks, date)
			if err != nil {
				return apperror.Wrap(apperror.KindValidation, "dados do pagamento inválidos", err)
			}
			if err := st.Payments().Create(ctx, p); err != nil {
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

	s.log.Info("pagamento registrado", "order_id", orderID, "firm_id", firmID)
	return view, nil
}

// UpdatePayment corrige um pagamento existente e recalcula os status
func (s *Service) UpdatePayment(ctx context.Context, firmID, paymentID string, patch PaymentPatch) (*OrderView, error) {
	if patch.AmountPaid == nil && patch.PaymentMethod == nil && patch.Remarks == nil && patch.PaymentDate == nil {
		return nil, apperror.Validation("nenhum campo para atualizar foi informado")
	}
	if patch.AmountPaid != nil && !patch.AmountPaid.IsPositive() {
		return nil, apperror.Validation("valor pago deve ser maior que zero")
	}

	var view *OrderView
	err := s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
		p, err := st.Payments().FindByID(ctx, paymentID, firmID)
		if err != nil {
			return err
		}

		ord, err := st.Orders().FindByIDForUpdate(ctx, p.OrderID, firmID)
		if err != nil {
			return err
		}
		if ord.IsCancelled() {
			return apperror.InvalidState("não é possível alterar pagamentos de um pedido cancelado")
		}

		if err := st.Payments().UpdateByID(ctx, paymentID, payment.Patch{
			AmountPaid:    patch.AmountPaid,
			PaymentMethod: patch.PaymentMethod,
			Remarks:       patch.Remarks,
			PaymentDate:   patch.PaymentDate,
		}); err != nil {
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

// DeletePayment remove um pagamento e recalcula os status do pedido
func (s *Service) DeletePayment(ctx context.Context, firmID, paymentID string) (*OrderView, error) {
	var view *OrderView
	err := s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
		p, err := st.Payments().FindByID(ctx, paymentID, firmID)
		if err != nil {
			return err
		}

		ord, err := st.Orders().FindByIDForUpdate(ctx, p.OrderID, firmID)
		if err != nil {
			return err
		}
		if ord.IsCancelled() {
			return apperror.InvalidState("não é possível alterar pagamentos de um pedido cancelado")
		}

		if err := st.Payments().RemoveByID(ctx, paymentID); err != nil {
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

// GetPayment retorna um pagamento pelo ID
func (s *Service) GetPayment(ctx context.Context, firmID, paymentID string) (*payment.Payment, error) {
	return s.reads.Payments().FindByID(ctx, paymentID, firmID)
}

// ListOrderPayments lista os pagamentos de um pedido, com verificação de propriedade
func (s *Service) ListOrderPayments(ctx context.Context, firmID, orderID string) ([]*payment.Payment, error) {
	if _, err := s.reads.Orders().FindByID(ctx, orderID, firmID); err != nil {
		return nil, err
	}
	return s.reads.Payments().FindByOrderID(ctx, orderID)
}

// GetPaymentSummary monta o resumo financeiro do pedido
func (s *Service) GetPaymentSummary(ctx context.Context, firmID, orderID string) (*PaymentSummary, error) {
	ord, err := s.reads.Orders().FindByID(ctx, orderID, firmID)
	if err != nil {
		return nil, err
	}

	return &PaymentSummary{
		OrderID:       ord.ID,
		TotalAmount:   ord.TotalAmount,
		TotalPaid:     ord.TotalPaidAmount,
		BalanceDue:    ord.BalanceDue(),
		PaymentStatus: ord.PaymentStatus,
	}, nil
}

// ListPendingPayments lista pedidos não cancelados ainda não quitados
func (s *Service) ListPendingPayments(ctx context.Context, firmID string, limit, offset int) ([]*order.Order, int, error) {
	return s.reads.Orders().ListPendingPayment(ctx, firmID, limit, offset)
}
