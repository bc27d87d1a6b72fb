package fulfillment

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/shopspring/decimal"

	"github.com/firmdesk/firmdesk-backend/internal/domain/order"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
	"github.com/firmdesk/firmdesk-backend/pkg/logger"
)

// Service é o orquestrador de atendimento de pedidos: cada operação de
// mutação roda em uma única transação atômica e termina recalculando os
// status derivados do pedido a partir dos razões.
type Service struct {
	tx     TxManager
	reads  Stores
	locker *redislock.Client // Opcional; serializa mutações entre instâncias
	log    logger.Logger
}

// NewService cria uma nova instância do orquestrador
func NewService(tx TxManager, reads Stores, locker *redislock.Client, log logger.Logger) *Service {
	return &Service{
		tx:     tx,
		reads:  reads,
		locker: locker,
		log:    log,
	}
}

// OrderView é o retorno padrão das operações: pedido atualizado com seus itens
type OrderView struct {
	Order *order.Order  `json:"order"`
	Lines []*order.Line `json:"items"`
}

// OrderItemInput descreve um item na criação do pedido
type OrderItemInput struct {
	StockID      string
	Quantity     decimal.Decimal
	SellingPrice decimal.Decimal
}

// CreateOrderInput agrupa os dados de criação de pedido
type CreateOrderInput struct {
	CustomerID string
	OrderDate  time.Time
	InvoiceNo  *int64 // Opcional; padrão é o último da firma + 1
	Items      []OrderItemInput
}

// withOrderLock serializa mutações sobre o mesmo pedido entre instâncias,
// quando um cliente redis está configurado. A transação com trava de linha
// continua sendo a garantia de consistência; a trava distribuída apenas
// reduz contenção e abortes por conflito.
func (s *Service) withOrderLock(ctx context.Context, orderID string, fn func() error) error {
	if s.locker == nil {
		return fn()
	}

	lock, err := s.locker.Obtain(ctx, "fulfillment:order:"+orderID, 30*time.Second, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 50),
	})
	if err != nil {
		return apperror.Wrap(apperror.KindConflict, "pedido em uso por outra operação", err)
	}
	defer func() {
		if rerr := lock.Release(ctx); rerr != nil && rerr != redislock.ErrLockNotHeld {
			s.log.Warn("falha ao liberar trava do pedido", "order_id", orderID, "error", rerr)
		}
	}()

	return fn()
}

// refreshStatus recalcula e persiste os status derivados do pedido a partir
// dos razões de entrega e pagamento. É idempotente: sem mutação nos razões,
// duas chamadas consecutivas produzem o mesmo resultado. Pedidos cancelados
// são terminais e não são recalculados.
func (s *Service) refreshStatus(ctx context.Context, st Stores, orderID, firmID string) (*order.Order, error) {
	ord, err := st.Orders().FindByID(ctx, orderID, firmID)
	if err != nil {
		return nil, err
	}
	if ord.IsCancelled() {
		return ord, nil
	}

	lines, err := st.Lines().FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	totalAmount, err := st.Lines().CalculateTotalAmount(ctx, orderID)
	if err != nil {
		return nil, err
	}

	totalPaid, err := st.Payments().CalculateTotalPaid(ctx, orderID)
	if err != nil {
		return nil, err
	}

	deliveryStatus := order.DeriveDeliveryStatus(lines)
	paymentStatus := order.DerivePaymentStatus(totalPaid, totalAmount)
	orderStatus := order.DeriveOrderStatus(deliveryStatus, paymentStatus)

	return st.Orders().UpdateByID(ctx, orderID, firmID, order.StatusPatch{
		TotalAmount:     &totalAmount,
		TotalPaidAmount: &totalPaid,
		OrderStatus:     &orderStatus,
		PaymentStatus:   &paymentStatus,
		DeliveryStatus:  &deliveryStatus,
	})
}

// loadView monta o retorno padrão pedido + itens
func loadView(ctx context.Context, st Stores, ord *order.Order) (*OrderView, error) {
	lines, err := st.Lines().FindByOrderIDWithStock(ctx, ord.ID)
	if err != nil {
		return nil, err
	}
	return &OrderView{Order: ord, Lines: lines}, nil
}

// CreateOrder cria um pedido com seus itens, reservando estoque para cada um.
// O número de fatura deve ser estritamente maior que o último da firma; se
// omitido, usa último + 1. Falha atômica: nenhum item é criado se algum falhar.
func (s *Service) CreateOrder(ctx context.Context, firmID, actorID string, input CreateOrderInput) (*OrderView, error) {
	if input.CustomerID == "" {
		return nil, apperror.Validation("customer_id é obrigatório")
	}
	if len(input.Items) == 0 {
		return nil, apperror.Validation("pedido deve conter ao menos um item")
	}

	var view *OrderView
	err := s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
		// LatestInvoiceNo trava a numeração da firma, serializando criações
		// concorrentes de pedidos da mesma firma
		latest, err := st.Orders().LatestInvoiceNo(ctx, firmID)
		if err != nil {
			return err
		}

		invoiceNo := latest + 1
		if input.InvoiceNo != nil {
			if *input.InvoiceNo <= latest {
				return apperror.Newf(apperror.KindConflict,
					"número de fatura deve ser maior que o último emitido (%d)", latest)
			}
			invoiceNo = *input.InvoiceNo
		}

		ord, err := order.NewOrder(firmID, input.CustomerID, actorID, input.OrderDate, invoiceNo)
		if err != nil {
			return apperror.Wrap(apperror.KindValidation, "dados do pedido inválidos", err)
		}
		if err := st.Orders().Create(ctx, ord); err != nil {
			return err
		}

		for _, item := range input.Items {
			if err := s.reserveLine(ctx, st, ord.ID, firmID, item); err != nil {
				return err
			}
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

	s.log.Info("pedido criado", "order_id", view.Order.ID, "firm_id", firmID, "invoice_no", view.Order.InvoiceNo)
	return view, nil
}

// reserveLine verifica a suficiência de estoque, cria o item e decrementa o
// inventário; verificação e ajuste rodam na mesma transação com trava de linha
func (s *Service) reserveLine(ctx context.Context, st Stores, orderID, firmID string, item OrderItemInput) error {
	line, err := order.NewLine(orderID, item.StockID, item.Quantity, item.SellingPrice)
	if err != nil {
		return apperror.Wrap(apperror.KindValidation, "item do pedido inválido", err)
	}

	available, name, err := st.Stocks().QuantityAvailable(ctx, item.StockID, firmID)
	if err != nil {
		return err
	}
	if available.LessThan(item.Quantity) {
		return apperror.InsufficientStock(name, available, item.Quantity)
	}

	if err := st.Lines().Create(ctx, line); err != nil {
		return err
	}

	_, err = st.Stocks().AdjustQuantity(ctx, item.StockID, firmID, item.Quantity.Neg())
	return err
}

// CancelOrder cancela um pedido, devolvendo ao estoque a quantidade pedida
// integral de cada item. O cancelamento desfaz a reserva, não a expedição;
// os status de entrega e pagamento permanecem como registro histórico.
func (s *Service) CancelOrder(ctx context.Context, firmID, orderID string) (*OrderView, error) {
	var view *OrderView
	err := s.withOrderLock(ctx, orderID, func() error {
		return s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
			ord, err := st.Orders().FindByIDForUpdate(ctx, orderID, firmID)
			if err != nil {
				return err
			}
			if ord.OrderStatus == order.StatusCompleted || ord.OrderStatus == order.StatusCancelled {
				return apperror.Newf(apperror.KindInvalidState,
					"não é possível cancelar um pedido %s", ord.OrderStatus)
			}

			lines, err := st.Lines().FindByOrderID(ctx, orderID)
			if err != nil {
				return err
			}
			for _, l := range lines {
				if _, err := st.Stocks().AdjustQuantity(ctx, l.StockID, firmID, l.Quantity); err != nil {
					return err
				}
			}

			cancelled := order.StatusCancelled
			updated, err := st.Orders().UpdateByID(ctx, orderID, firmID, order.StatusPatch{
				OrderStatus: &cancelled,
			})
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

	s.log.Info("pedido cancelado", "order_id", orderID, "firm_id", firmID)
	return view, nil
}

// UpdateOrder atualiza campos básicos do cabeçalho (data, número de fatura)
func (s *Service) UpdateOrder(ctx context.Context, firmID, orderID string, orderDate *time.Time, invoiceNo *int64) (*OrderView, error) {
	if orderDate == nil && invoiceNo == nil {
		return nil, apperror.Validation("nenhum campo para atualizar foi informado")
	}

	var view *OrderView
	err := s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
		ord, err := st.Orders().FindByIDForUpdate(ctx, orderID, firmID)
		if err != nil {
			return err
		}
		if ord.IsCancelled() {
			return apperror.InvalidState("não é possível alterar um pedido cancelado")
		}

		updated, err := st.Orders().UpdateByID(ctx, orderID, firmID, order.StatusPatch{
			OrderDate: orderDate,
			InvoiceNo: invoiceNo,
		})
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

// GetOrder retorna o pedido com seus itens
func (s *Service) GetOrder(ctx context.Context, firmID, orderID string) (*OrderView, error) {
	ord, err := s.reads.Orders().FindByID(ctx, orderID, firmID)
	if err != nil {
		return nil, err
	}
	return loadView(ctx, s.reads, ord)
}

// ListOrders lista os pedidos da firma com filtros de status e paginação
func (s *Service) ListOrders(ctx context.Context, firmID string, filter order.Filter, limit, offset int) ([]*order.Order, int, error) {
	return s.reads.Orders().List(ctx, firmID, filter, limit, offset)
}

// NextInvoiceNo retorna o próximo número de fatura sugerido para a firma
func (s *Service) NextInvoiceNo(ctx context.Context, firmID string) (int64, error) {
	latest, err := s.reads.Orders().LatestInvoiceNo(ctx, firmID)
	if err != nil {
		return 0, err
	}
	return latest + 1, nil
}
