package fulfillment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/firmdesk/firmdesk-backend/internal/domain/order"
	"github.com/firmdesk/firmdesk-backend/internal/domain/stock"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
	"github.com/firmdesk/firmdesk-backend/pkg/logger"
)

const (
	testFirm     = "firm-1"
	otherFirm    = "firm-2"
	testCustomer = "customer-1"
	testActor    = "user-1"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService() (*Service, *memDB) {
	db := newMemDB()
	svc := NewService(&memTxManager{db: db}, &memStores{db: db}, nil, logger.NewLogger())
	return svc, db
}

func seedStock(db *memDB, id, name, qty string) {
	now := time.Now()
	db.stocks[id] = &stock.Stock{
		ID:                id,
		FirmID:            testFirm,
		Name:              name,
		SkuCode:           "SKU-" + id,
		Unit:              "kg",
		QuantityAvailable: dec(qty),
		BuyPrice:          dec("10"),
		LowUnitThreshold:  dec("5"),
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func mustCreateOrder(t *testing.T, svc *Service, items ...OrderItemInput) *OrderView {
	t.Helper()
	view, err := svc.CreateOrder(context.Background(), testFirm, testActor, CreateOrderInput{
		CustomerID: testCustomer,
		Items:      items,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	return view
}

func TestCreateOrderReservesStockAndDerivesStatus(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")
	seedStock(db, "stock-2", "Feijão", "50")

	view := mustCreateOrder(t, svc,
		OrderItemInput{StockID: "stock-1", Quantity: dec("10"), SellingPrice: dec("5")},
		OrderItemInput{StockID: "stock-2", Quantity: dec("4"), SellingPrice: dec("8")},
	)

	ord := view.Order
	if ord.InvoiceNo != 1 {
		t.Fatalf("invoice_no = %d, esperado 1", ord.InvoiceNo)
	}
	if !ord.TotalAmount.Equal(dec("82")) {
		t.Fatalf("total_amount = %s, esperado 82", ord.TotalAmount)
	}
	if ord.OrderStatus != order.StatusPending || ord.PaymentStatus != order.PaymentUnpaid || ord.DeliveryStatus != order.DeliveryPending {
		t.Fatalf("status inicial inesperado: %s/%s/%s", ord.OrderStatus, ord.PaymentStatus, ord.DeliveryStatus)
	}
	if len(view.Lines) != 2 {
		t.Fatalf("len(lines) = %d, esperado 2", len(view.Lines))
	}

	if got := db.stocks["stock-1"].QuantityAvailable; !got.Equal(dec("90")) {
		t.Fatalf("estoque stock-1 = %s, esperado 90", got)
	}
	if got := db.stocks["stock-2"].QuantityAvailable; !got.Equal(dec("46")) {
		t.Fatalf("estoque stock-2 = %s, esperado 46", got)
	}
}

func TestCreateOrderInsufficientStockIsAtomic(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")
	seedStock(db, "stock-2", "Feijão", "3")

	_, err := svc.CreateOrder(context.Background(), testFirm, testActor, CreateOrderInput{
		CustomerID: testCustomer,
		Items: []OrderItemInput{
			{StockID: "stock-1", Quantity: dec("10"), SellingPrice: dec("5")},
			{StockID: "stock-2", Quantity: dec("4"), SellingPrice: dec("8")},
		},
	})
	if !apperror.Is(err, apperror.KindInsufficientStock) {
		t.Fatalf("erro = %v, esperado KindInsufficientStock", err)
	}

	// Nada pode ter sido persistido: nem o pedido nem a reserva do primeiro item
	if len(db.orders) != 0 || len(db.lines) != 0 {
		t.Fatalf("pedido parcial persistido: %d pedidos, %d itens", len(db.orders), len(db.lines))
	}
	if got := db.stocks["stock-1"].QuantityAvailable; !got.Equal(dec("100")) {
		t.Fatalf("estoque stock-1 = %s, esperado 100 após rollback", got)
	}
}

func TestCreateOrderInvoiceNumbering(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")

	first := mustCreateOrder(t, svc, OrderItemInput{StockID: "stock-1", Quantity: dec("1"), SellingPrice: dec("5")})
	if first.Order.InvoiceNo != 1 {
		t.Fatalf("primeiro invoice_no = %d, esperado 1", first.Order.InvoiceNo)
	}

	custom := int64(10)
	second, err := svc.CreateOrder(context.Background(), testFirm, testActor, CreateOrderInput{
		CustomerID: testCustomer,
		InvoiceNo:  &custom,
		Items:      []OrderItemInput{{StockID: "stock-1", Quantity: dec("1"), SellingPrice: dec("5")}},
	})
	if err != nil {
		t.Fatalf("CreateOrder com invoice_no explícito: %v", err)
	}
	if second.Order.InvoiceNo != 10 {
		t.Fatalf("invoice_no = %d, esperado 10", second.Order.InvoiceNo)
	}

	// Números devem ser estritamente crescentes por firma
	stale := int64(7)
	_, err = svc.CreateOrder(context.Background(), testFirm, testActor, CreateOrderInput{
		CustomerID: testCustomer,
		InvoiceNo:  &stale,
		Items:      []OrderItemInput{{StockID: "stock-1", Quantity: dec("1"), SellingPrice: dec("5")}},
	})
	if !apperror.Is(err, apperror.KindConflict) {
		t.Fatalf("erro = %v, esperado KindConflict", err)
	}

	next, err := svc.NextInvoiceNo(context.Background(), testFirm)
	if err != nil {
		t.Fatalf("NextInvoiceNo: %v", err)
	}
	if next != 11 {
		t.Fatalf("próximo invoice_no = %d, esperado 11", next)
	}
}

func TestRecordDeliveryStatusTransitions(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")

	view := mustCreateOrder(t, svc, OrderItemInput{StockID: "stock-1", Quantity: dec("10"), SellingPrice: dec("5")})
	lineID := view.Lines[0].ID

	view, err := svc.RecordDelivery(context.Background(), testFirm, lineID, dec("4"), time.Now(), "primeira remessa")
	if err != nil {
		t.Fatalf("RecordDelivery parcial: %v", err)
	}
	if view.Order.DeliveryStatus != order.DeliveryPartiallyDelivered {
		t.Fatalf("delivery_status = %s, esperado PARTIALLY_DELIVERED", view.Order.DeliveryStatus)
	}
	if !view.Lines[0].QuantityDelivered.Equal(dec("4")) {
		t.Fatalf("quantity_delivered = %s, esperado 4", view.Lines[0].QuantityDelivered)
	}

	// Entregar acima do saldo restante deve falhar informando o máximo permitido
	_, err = svc.RecordDelivery(context.Background(), testFirm, lineID, dec("7"), time.Now(), "")
	if !apperror.Is(err, apperror.KindOverDelivery) {
		t.Fatalf("erro = %v, esperado KindOverDelivery", err)
	}
	var oe *apperror.Error
	if !errors.As(err, &oe) {
		t.Fatalf("erro = %T, esperado *apperror.Error", err)
	}
	if oe.Context["max_allowed"] != "6" {
		t.Fatalf("max_allowed = %v, esperado 6", oe.Context["max_allowed"])
	}

	view, err = svc.RecordDelivery(context.Background(), testFirm, lineID, dec("6"), time.Now(), "saldo")
	if err != nil {
		t.Fatalf("RecordDelivery final: %v", err)
	}
	if view.Order.DeliveryStatus != order.DeliveryDelivered {
		t.Fatalf("delivery_status = %s, esperado DELIVERED", view.Order.DeliveryStatus)
	}
	// Sem pagamento o pedido segue pendente
	if view.Order.OrderStatus != order.StatusPending {
		t.Fatalf("order_status = %s, esperado PENDING", view.Order.OrderStatus)
	}
}

func TestDeliverFullOrder(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")
	seedStock(db, "stock-2", "Feijão", "50")

	view := mustCreateOrder(t, svc,
		OrderItemInput{StockID: "stock-1", Quantity: dec("10"), SellingPrice: dec("5")},
		OrderItemInput{StockID: "stock-2", Quantity: dec("4"), SellingPrice: dec("8")},
	)
	orderID := view.Order.ID

	// Uma entrega parcial antes da entrega total
	if _, err := svc.RecordDelivery(context.Background(), testFirm, view.Lines[0].ID, dec("3"), time.Now(), ""); err != nil {
		t.Fatalf("RecordDelivery: %v", err)
	}

	view, err := svc.DeliverFullOrder(context.Background(), testFirm, orderID, time.Now(), "")
	if err != nil {
		t.Fatalf("DeliverFullOrder: %v", err)
	}
	if view.Order.DeliveryStatus != order.DeliveryDelivered {
		t.Fatalf("delivery_status = %s, esperado DELIVERED", view.Order.DeliveryStatus)
	}
	for _, l := range view.Lines {
		if !l.QuantityDelivered.Equal(l.Quantity) {
			t.Fatalf("linha %s entregue %s de %s", l.ID, l.QuantityDelivered, l.Quantity)
		}
	}

	// Repetir a entrega total de um pedido já entregue é inválido
	if _, err := svc.DeliverFullOrder(context.Background(), testFirm, orderID, time.Now(), ""); !apperror.Is(err, apperror.KindInvalidState) {
		t.Fatalf("erro = %v, esperado KindInvalidState", err)
	}
}

func TestRecordPaymentStatusTransitions(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")

	view := mustCreateOrder(t, svc, OrderItemInput{StockID: "stock-1", Quantity: dec("10"), SellingPrice: dec("5")})
	orderID := view.Order.ID

	view, err := svc.RecordPayment(context.Background(), testFirm, orderID, dec("20"), "pix", "", time.Now())
	if err != nil {
		t.Fatalf("RecordPayment parcial: %v", err)
	}
	if view.Order.PaymentStatus != order.PaymentPartiallyPaid {
		t.Fatalf("payment_status = %s, esperado PARTIALLY_PAID", view.Order.PaymentStatus)
	}

	view, err = svc.RecordPayment(context.Background(), testFirm, orderID, dec("30"), "pix", "quitação", time.Now())
	if err != nil {
		t.Fatalf("RecordPayment final: %v", err)
	}
	if view.Order.PaymentStatus != order.PaymentPaid {
		t.Fatalf("payment_status = %s, esperado PAID", view.Order.PaymentStatus)
	}
	// Pago mas não entregue: pedido segue pendente
	if view.Order.OrderStatus != order.StatusPending {
		t.Fatalf("order_status = %s, esperado PENDING", view.Order.OrderStatus)
	}

	// Entrega total + pagamento total completam o pedido
	view, err = svc.DeliverFullOrder(context.Background(), testFirm, orderID, time.Now(), "")
	if err != nil {
		t.Fatalf("DeliverFullOrder: %v", err)
	}
	if view.Order.OrderStatus != order.StatusCompleted {
		t.Fatalf("order_status = %s, esperado COMPLETED", view.Order.OrderStatus)
	}
}

func TestOverpaymentAllowed(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")

	view := mustCreateOrder(t, svc, OrderItemInput{StockID: "stock-1", Quantity: dec("10"), SellingPrice: dec("5")})
	orderID := view.Order.ID

	view, err := svc.RecordPayment(context.Background(), testFirm, orderID, dec("60"), "dinheiro", "", time.Now())
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if view.Order.PaymentStatus != order.PaymentPaid {
		t.Fatalf("payment_status = %s, esperado PAID", view.Order.PaymentStatus)
	}

	summary, err := svc.GetPaymentSummary(context.Background(), testFirm, orderID)
	if err != nil {
		t.Fatalf("GetPaymentSummary: %v", err)
	}
	if !summary.BalanceDue.Equal(dec("-10")) {
		t.Fatalf("balance_due = %s, esperado -10", summary.BalanceDue)
	}
}

func TestCancelOrderRestoresStockAndIsTerminal(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")

	view := mustCreateOrder(t, svc, OrderItemInput{StockID: "stock-1", Quantity: dec("10"), SellingPrice: dec("5")})
	orderID := view.Order.ID
	lineID := view.Lines[0].ID

	view, err := svc.CancelOrder(context.Background(), testFirm, orderID)
	if err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if view.Order.OrderStatus != order.StatusCancelled {
		t.Fatalf("order_status = %s, esperado CANCELLED", view.Order.OrderStatus)
	}
	if got := db.stocks["stock-1"].QuantityAvailable; !got.Equal(dec("100")) {
		t.Fatalf("estoque = %s, esperado 100 após cancelamento", got)
	}

	// Cancelamento é terminal
	if _, err := svc.CancelOrder(context.Background(), testFirm, orderID); !apperror.Is(err, apperror.KindInvalidState) {
		t.Fatalf("erro = %v, esperado KindInvalidState", err)
	}

	// Pedido cancelado rejeita novas mutações
	if _, err := svc.RecordDelivery(context.Background(), testFirm, lineID, dec("1"), time.Now(), ""); !apperror.Is(err, apperror.KindInvalidState) {
		t.Fatalf("entrega em cancelado: erro = %v, esperado KindInvalidState", err)
	}
	if _, err := svc.RecordPayment(context.Background(), testFirm, orderID, dec("10"), "pix", "", time.Now()); !apperror.Is(err, apperror.KindInvalidState) {
		t.Fatalf("pagamento em cancelado: erro = %v, esperado KindInvalidState", err)
	}
}

func TestCancelCompletedOrderRejected(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")

	view := mustCreateOrder(t, svc, OrderItemInput{StockID: "stock-1", Quantity: dec("2"), SellingPrice: dec("5")})
	orderID := view.Order.ID

	if _, err := svc.DeliverFullOrder(context.Background(), testFirm, orderID, time.Now(), ""); err != nil {
		t.Fatalf("DeliverFullOrder: %v", err)
	}
	if _, err := svc.RecordPayment(context.Background(), testFirm, orderID, dec("10"), "pix", "", time.Now()); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	if _, err := svc.CancelOrder(context.Background(), testFirm, orderID); !apperror.Is(err, apperror.KindInvalidState) {
		t.Fatalf("erro = %v, esperado KindInvalidState", err)
	}
}

func TestUpdateOrderItemAdjustsInventoryByDelta(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")

	view := mustCreateOrder(t, svc, OrderItemInput{StockID: "stock-1", Quantity: dec("10"), SellingPrice: dec("5")})
	lineID := view.Lines[0].ID

	// Aumentar a quantidade consome apenas o delta
	qty := dec("15")
	view, err := svc.UpdateOrderItem(context.Background(), testFirm, lineID, &qty, nil)
	if err != nil {
		t.Fatalf("UpdateOrderItem: %v", err)
	}
	if got := db.stocks["stock-1"].QuantityAvailable; !got.Equal(dec("85")) {
		t.Fatalf("estoque = %s, esperado 85", got)
	}
	if !view.Order.TotalAmount.Equal(dec("75")) {
		t.Fatalf("total_amount = %s, esperado 75", view.Order.TotalAmount)
	}

	// Reduzir devolve o delta
	qty = dec("8")
	if _, err := svc.UpdateOrderItem(context.Background(), testFirm, lineID, &qty, nil); err != nil {
		t.Fatalf("UpdateOrderItem redução: %v", err)
	}
	if got := db.stocks["stock-1"].QuantityAvailable; !got.Equal(dec("92")) {
		t.Fatalf("estoque = %s, esperado 92", got)
	}

	// Quantidade não pode ficar abaixo do já entregue
	if _, err := svc.RecordDelivery(context.Background(), testFirm, lineID, dec("6"), time.Now(), ""); err != nil {
		t.Fatalf("RecordDelivery: %v", err)
	}
	qty = dec("5")
	if _, err := svc.UpdateOrderItem(context.Background(), testFirm, lineID, &qty, nil); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("erro = %v, esperado KindValidation", err)
	}
}

func TestRemoveOrderItemRestoresUndeliveredRemainder(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")
	seedStock(db, "stock-2", "Feijão", "50")

	view := mustCreateOrder(t, svc,
		OrderItemInput{StockID: "stock-1", Quantity: dec("10"), SellingPrice: dec("5")},
		OrderItemInput{StockID: "stock-2", Quantity: dec("4"), SellingPrice: dec("8")},
	)

	var target string
	for _, l := range view.Lines {
		if l.StockID == "stock-1" {
			target = l.ID
		}
	}

	// Entregar 3 das 10 unidades; na remoção só as 7 restantes voltam
	if _, err := svc.RecordDelivery(context.Background(), testFirm, target, dec("3"), time.Now(), ""); err != nil {
		t.Fatalf("RecordDelivery: %v", err)
	}

	view, err := svc.RemoveOrderItem(context.Background(), testFirm, target)
	if err != nil {
		t.Fatalf("RemoveOrderItem: %v", err)
	}
	if got := db.stocks["stock-1"].QuantityAvailable; !got.Equal(dec("97")) {
		t.Fatalf("estoque = %s, esperado 97", got)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("len(lines) = %d, esperado 1", len(view.Lines))
	}
	if !view.Order.TotalAmount.Equal(dec("32")) {
		t.Fatalf("total_amount = %s, esperado 32", view.Order.TotalAmount)
	}
	if len(db.deliveries) != 0 {
		t.Fatalf("entregas órfãs não removidas: %d", len(db.deliveries))
	}
}

func TestDeleteDeliveryRecomputesStatus(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")

	view := mustCreateOrder(t, svc, OrderItemInput{StockID: "stock-1", Quantity: dec("10"), SellingPrice: dec("5")})
	lineID := view.Lines[0].ID

	if _, err := svc.RecordDelivery(context.Background(), testFirm, lineID, dec("4"), time.Now(), ""); err != nil {
		t.Fatalf("RecordDelivery: %v", err)
	}

	deliveries, err := svc.ListOrderDeliveries(context.Background(), testFirm, view.Order.ID)
	if err != nil {
		t.Fatalf("ListOrderDeliveries: %v", err)
	}
	if len(deliveries) != 1 {
		t.Fatalf("len(deliveries) = %d, esperado 1", len(deliveries))
	}

	view, err = svc.DeleteDelivery(context.Background(), testFirm, deliveries[0].ID)
	if err != nil {
		t.Fatalf("DeleteDelivery: %v", err)
	}
	if view.Order.DeliveryStatus != order.DeliveryPending {
		t.Fatalf("delivery_status = %s, esperado PENDING", view.Order.DeliveryStatus)
	}
	if !view.Lines[0].QuantityDelivered.IsZero() {
		t.Fatalf("quantity_delivered = %s, esperado 0", view.Lines[0].QuantityDelivered)
	}
}

func TestUpdateDeliveryRevalidatesAgainstOthers(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")

	view := mustCreateOrder(t, svc, OrderItemInput{StockID: "stock-1", Quantity: dec("10"), SellingPrice: dec("5")})
	lineID := view.Lines[0].ID

	if _, err := svc.RecordDelivery(context.Background(), testFirm, lineID, dec("4"), time.Now(), ""); err != nil {
		t.Fatalf("RecordDelivery: %v", err)
	}
	if _, err := svc.RecordDelivery(context.Background(), testFirm, lineID, dec("3"), time.Now(), ""); err != nil {
		t.Fatalf("RecordDelivery: %v", err)
	}

	deliveries, err := svc.ListOrderDeliveries(context.Background(), testFirm, view.Order.ID)
	if err != nil {
		t.Fatalf("ListOrderDeliveries: %v", err)
	}

	var target string
	for _, d := range deliveries {
		if d.DeliveredQuantity.Equal(dec("4")) {
			target = d.ID
		}
	}

	// Corrigir a entrega de 4 para além do saldo permitido deve falhar:
	// com 3 já entregues na outra, o máximo para esta é 7
	tooMuch := dec("8")
	if _, err := svc.UpdateDelivery(context.Background(), testFirm, target, DeliveryPatch{DeliveredQuantity: &tooMuch}); !apperror.Is(err, apperror.KindOverDelivery) {
		t.Fatalf("erro = %v, esperado KindOverDelivery", err)
	}

	ok := dec("7")
	view, err = svc.UpdateDelivery(context.Background(), testFirm, target, DeliveryPatch{DeliveredQuantity: &ok})
	if err != nil {
		t.Fatalf("UpdateDelivery: %v", err)
	}
	if view.Order.DeliveryStatus != order.DeliveryDelivered {
		t.Fatalf("delivery_status = %s, esperado DELIVERED", view.Order.DeliveryStatus)
	}
}

func TestRefreshStatusIsIdempotent(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")

	view := mustCreateOrder(t, svc, OrderItemInput{StockID: "stock-1", Quantity: dec("10"), SellingPrice: dec("5")})
	orderID := view.Order.ID

	if _, err := svc.RecordDelivery(context.Background(), testFirm, view.Lines[0].ID, dec("4"), time.Now(), ""); err != nil {
		t.Fatalf("RecordDelivery: %v", err)
	}
	if _, err := svc.RecordPayment(context.Background(), testFirm, orderID, dec("20"), "pix", "", time.Now()); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	// Sem mutação nos razões, recalcular duas vezes seguidas produz o mesmo estado
	st := &memStores{db: db}
	first, err := svc.refreshStatus(context.Background(), st, orderID, testFirm)
	if err != nil {
		t.Fatalf("refreshStatus: %v", err)
	}
	second, err := svc.refreshStatus(context.Background(), st, orderID, testFirm)
	if err != nil {
		t.Fatalf("refreshStatus repetido: %v", err)
	}

	if first.OrderStatus != second.OrderStatus || first.PaymentStatus != second.PaymentStatus || first.DeliveryStatus != second.DeliveryStatus {
		t.Fatalf("status divergentes: %s/%s/%s vs %s/%s/%s",
			first.OrderStatus, first.PaymentStatus, first.DeliveryStatus,
			second.OrderStatus, second.PaymentStatus, second.DeliveryStatus)
	}
	if !first.TotalAmount.Equal(second.TotalAmount) || !first.TotalPaidAmount.Equal(second.TotalPaidAmount) {
		t.Fatalf("totais divergentes: %s/%s vs %s/%s",
			first.TotalAmount, first.TotalPaidAmount, second.TotalAmount, second.TotalPaidAmount)
	}
	if second.OrderStatus != order.StatusPending || second.PaymentStatus != order.PaymentPartiallyPaid || second.DeliveryStatus != order.DeliveryPartiallyDelivered {
		t.Fatalf("estado inesperado: %s/%s/%s", second.OrderStatus, second.PaymentStatus, second.DeliveryStatus)
	}
}

func TestConcurrentPaymentAndCancel(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")

	view := mustCreateOrder(t, svc, OrderItemInput{StockID: "stock-1", Quantity: dec("10"), SellingPrice: dec("5")})
	orderID := view.Order.ID

	var wg sync.WaitGroup
	var payErr, cancelErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, payErr = svc.RecordPayment(context.Background(), testFirm, orderID, dec("50"), "pix", "", time.Now())
	}()
	go func() {
		defer wg.Done()
		_, cancelErr = svc.CancelOrder(context.Background(), testFirm, orderID)
	}()
	wg.Wait()

	// Pago mas não entregue o pedido nunca chega a COMPLETED, então o
	// cancelamento sempre é aceito
	if cancelErr != nil {
		t.Fatalf("CancelOrder: %v", cancelErr)
	}

	after, err := svc.GetOrder(context.Background(), testFirm, orderID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if after.Order.OrderStatus != order.StatusCancelled {
		t.Fatalf("order_status = %s, esperado CANCELLED", after.Order.OrderStatus)
	}
	if got := db.stocks["stock-1"].QuantityAvailable; !got.Equal(dec("100")) {
		t.Fatalf("estoque = %s, esperado 100 após cancelamento", got)
	}

	// Conforme a ordem de chegada, o pagamento entra antes do cancelamento e
	// fica como histórico, ou é rejeitado pelo estado terminal
	payments, err := svc.ListOrderPayments(context.Background(), testFirm, orderID)
	if err != nil {
		t.Fatalf("ListOrderPayments: %v", err)
	}
	if payErr == nil {
		if len(payments) != 1 {
			t.Fatalf("len(payments) = %d, esperado 1", len(payments))
		}
	} else {
		if !apperror.Is(payErr, apperror.KindInvalidState) {
			t.Fatalf("erro = %v, esperado KindInvalidState", payErr)
		}
		if len(payments) != 0 {
			t.Fatalf("len(payments) = %d, esperado 0", len(payments))
		}
	}
}

func TestFirmScoping(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")

	view := mustCreateOrder(t, svc, OrderItemInput{StockID: "stock-1", Quantity: dec("10"), SellingPrice: dec("5")})

	if _, err := svc.GetOrder(context.Background(), otherFirm, view.Order.ID); !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("erro = %v, esperado KindNotFound", err)
	}

	// Mutação de linha por outra firma é bloqueada como acesso indevido
	if _, err := svc.RecordDelivery(context.Background(), otherFirm, view.Lines[0].ID, dec("1"), time.Now(), ""); !apperror.Is(err, apperror.KindForbidden) {
		t.Fatalf("erro = %v, esperado KindForbidden", err)
	}
}

func TestListPendingOrders(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")

	first := mustCreateOrder(t, svc, OrderItemInput{StockID: "stock-1", Quantity: dec("2"), SellingPrice: dec("5")})
	second := mustCreateOrder(t, svc, OrderItemInput{StockID: "stock-1", Quantity: dec("3"), SellingPrice: dec("5")})

	// Entregar e quitar o primeiro pedido
	if _, err := svc.DeliverFullOrder(context.Background(), testFirm, first.Order.ID, time.Now(), ""); err != nil {
		t.Fatalf("DeliverFullOrder: %v", err)
	}
	if _, err := svc.RecordPayment(context.Background(), testFirm, first.Order.ID, dec("10"), "pix", "", time.Now()); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	pendingDelivery, total, err := svc.ListPendingDeliveries(context.Background(), testFirm, 10, 0)
	if err != nil {
		t.Fatalf("ListPendingDeliveries: %v", err)
	}
	if total != 1 || len(pendingDelivery) != 1 || pendingDelivery[0].ID != second.Order.ID {
		t.Fatalf("entrega pendente inesperada: total=%d", total)
	}

	pendingPayment, total, err := svc.ListPendingPayments(context.Background(), testFirm, 10, 0)
	if err != nil {
		t.Fatalf("ListPendingPayments: %v", err)
	}
	if total != 1 || len(pendingPayment) != 1 || pendingPayment[0].ID != second.Order.ID {
		t.Fatalf("pagamento pendente inesperado: total=%d", total)
	}
}

func TestDeletePaymentRecomputesStatus(t *testing.T) {
	svc, db := newTestService()
	seedStock(db, "stock-1", "Arroz", "100")

	view := mustCreateOrder(t, svc, OrderItemInput{StockID: "stock-1", Quantity: dec("10"), SellingPrice: dec("5")})
	orderID := view.Order.ID

	if _, err := svc.RecordPayment(context.Background(), testFirm, orderID, dec("50"), "pix", "", time.Now()); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	payments, err := svc.ListOrderPayments(context.Background(), testFirm, orderID)
	if err != nil {
		t.Fatalf("ListOrderPayments: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("len(payments) = %d, esperado 1", len(payments))
	}

	view, err = svc.DeletePayment(context.Background(), testFirm, payments[0].ID)
	if err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}
	if view.Order.PaymentStatus != order.PaymentUnpaid {
		t.Fatalf("payment_status = %s, esperado UNPAID", view.Order.PaymentStatus)
	}
	if !view.Order.TotalPaidAmount.IsZero() {
		t.Fatalf("total_paid_amount = %s, esperado 0", view.Order.TotalPaidAmount)
	}
}
