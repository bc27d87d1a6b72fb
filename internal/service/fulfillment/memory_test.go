package fulfillment

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/firmdesk/firmdesk-backend/internal/domain/delivery"
	"github.com/firmdesk/firmdesk-backend/internal/domain/order"
	"github.com/firmdesk/firmdesk-backend/internal/domain/payment"
	"github.com/firmdesk/firmdesk-backend/internal/domain/stock"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
)

// memDB guarda o estado dos razões em memória para os testes do orquestrador.
// O mutex serializa as transações, imitando a trava de linha do banco real.
type memDB struct {
	mu         sync.Mutex
	orders     map[string]*order.Order
	lines      map[string]*order.Line
	deliveries map[string]*delivery.Delivery
	payments   map[string]*payment.Payment
	stocks     map[string]*stock.Stock
}

func newMemDB() *memDB {
	return &memDB{
		orders:     make(map[string]*order.Order),
		lines:      make(map[string]*order.Line),
		deliveries: make(map[string]*delivery.Delivery),
		payments:   make(map[string]*payment.Payment),
		stocks:     make(map[string]*stock.Stock),
	}
}

func cloneOrder(o *order.Order) *order.Order             { c := *o; return &c }
func cloneLine(l *order.Line) *order.Line                { c := *l; return &c }
func cloneDelivery(d *delivery.Delivery) *delivery.Delivery { c := *d; return &c }
func clonePayment(p *payment.Payment) *payment.Payment   { c := *p; return &c }
func cloneStock(s *stock.Stock) *stock.Stock             { c := *s; return &c }

// snapshot copia o estado inteiro; restore devolve o banco ao ponto salvo.
// Juntos imitam o rollback transacional do banco real.
func (db *memDB) snapshot() *memDB {
	s := newMemDB()
	for k, v := range db.orders {
		s.orders[k] = cloneOrder(v)
	}
	for k, v := range db.lines {
		s.lines[k] = cloneLine(v)
	}
	for k, v := range db.deliveries {
		s.deliveries[k] = cloneDelivery(v)
	}
	for k, v := range db.payments {
		s.payments[k] = clonePayment(v)
	}
	for k, v := range db.stocks {
		s.stocks[k] = cloneStock(v)
	}
	return s
}

func (db *memDB) restore(s *memDB) {
	db.orders = s.orders
	db.lines = s.lines
	db.deliveries = s.deliveries
	db.payments = s.payments
	db.stocks = s.stocks
}

// memStores implementa Stores sobre o memDB
type memStores struct {
	db *memDB
}

func (s *memStores) Orders() order.Repository        { return &memOrderRepo{db: s.db} }
func (s *memStores) Lines() order.LineRepository     { return &memLineRepo{db: s.db} }
func (s *memStores) Deliveries() delivery.Repository { return &memDeliveryRepo{db: s.db} }
func (s *memStores) Payments() payment.Repository    { return &memPaymentRepo{db: s.db} }
func (s *memStores) Stocks() stock.Repository        { return &memStockRepo{db: s.db} }

// memTxManager desfaz todas as escritas quando fn retorna erro
type memTxManager struct {
	db *memDB
}

func (m *memTxManager) InTx(ctx context.Context, fn func(ctx context.Context, st Stores) error) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	snap := m.db.snapshot()
	if err := fn(ctx, &memStores{db: m.db}); err != nil {
		m.db.restore(snap)
		return err
	}
	return nil
}

type memOrderRepo struct {
	db *memDB
}

func (r *memOrderRepo) Create(ctx context.Context, o *order.Order) error {
	for _, other := range r.db.orders {
		if other.FirmID == o.FirmID && other.InvoiceNo == o.InvoiceNo {
			return apperror.Conflict("já existe um pedido com este número de fatura")
		}
	}
	r.db.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *memOrderRepo) FindByID(ctx context.Context, id, firmID string) (*order.Order, error) {
	o, ok := r.db.orders[id]
	if !ok || o.FirmID != firmID {
		return nil, apperror.NotFound("pedido não encontrado")
	}
	return cloneOrder(o), nil
}

func (r *memOrderRepo) FindByIDForUpdate(ctx context.Context, id, firmID string) (*order.Order, error) {
	return r.FindByID(ctx, id, firmID)
}

func (r *memOrderRepo) LatestInvoiceNo(ctx context.Context, firmID string) (int64, error) {
	var latest int64
	for _, o := range r.db.orders {
		if o.FirmID == firmID && o.InvoiceNo > latest {
			latest = o.InvoiceNo
		}
	}
	return latest, nil
}

func (r *memOrderRepo) list(firmID string, keep func(*order.Order) bool, limit, offset int) ([]*order.Order, int, error) {
	var all []*order.Order
	for _, o := range r.db.orders {
		if o.FirmID == firmID && keep(o) {
			all = append(all, cloneOrder(o))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].InvoiceNo < all[j].InvoiceNo })

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (r *memOrderRepo) List(ctx context.Context, firmID string, filter order.Filter, limit, offset int) ([]*order.Order, int, error) {
	return r.list(firmID, func(o *order.Order) bool {
		if filter.OrderStatus != "" && o.OrderStatus != filter.OrderStatus {
			return false
		}
		if filter.PaymentStatus != "" && o.PaymentStatus != filter.PaymentStatus {
			return false
		}
		if filter.DeliveryStatus != "" && o.DeliveryStatus != filter.DeliveryStatus {
			return false
		}
		return true
	}, limit, offset)
}

func (r *memOrderRepo) ListPendingDelivery(ctx context.Context, firmID string, limit, offset int) ([]*order.Order, int, error) {
	return r.list(firmID, func(o *order.Order) bool {
		return o.OrderStatus != order.StatusCancelled && o.DeliveryStatus != order.DeliveryDelivered
	}, limit, offset)
}

func (r *memOrderRepo) ListPendingPayment(ctx context.Context, firmID string, limit, offset int) ([]*order.Order, int, error) {
	return r.list(firmID, func(o *order.Order) bool {
		return o.OrderStatus != order.StatusCancelled && o.PaymentStatus != order.PaymentPaid
	}, limit, offset)
}

func (r *memOrderRepo) UpdateByID(ctx context.Context, id, firmID string, patch order.StatusPatch) (*order.Order, error) {
	o, ok := r.db.orders[id]
	if !ok || o.FirmID != firmID {
		return nil, apperror.NotFound("pedido não encontrado")
	}
	if patch.TotalAmount != nil {
		o.TotalAmount = *patch.TotalAmount
	}
	if patch.TotalPaidAmount != nil {
		o.TotalPaidAmount = *patch.TotalPaidAmount
	}
	if patch.OrderStatus != nil {
		o.OrderStatus = *patch.OrderStatus
	}
	if patch.PaymentStatus != nil {
		o.PaymentStatus = *patch.PaymentStatus
	}
	if patch.DeliveryStatus != nil {
		o.DeliveryStatus = *patch.DeliveryStatus
	}
	if patch.OrderDate != nil {
		o.OrderDate = *patch.OrderDate
	}
	if patch.InvoiceNo != nil {
		for _, other := range r.db.orders {
			if other.ID != o.ID && other.FirmID == firmID && other.InvoiceNo == *patch.InvoiceNo {
				return nil, apperror.Conflict("já existe um pedido com este número de fatura")
			}
		}
		o.InvoiceNo = *patch.InvoiceNo
	}
	return cloneOrder(o), nil
}

type memLineRepo struct {
	db *memDB
}

func (r *memLineRepo) Create(ctx context.Context, l *order.Line) error {
	r.db.lines[l.ID] = cloneLine(l)
	return nil
}

func (r *memLineRepo) FindByID(ctx context.Context, id string) (*order.Line, error) {
	l, ok := r.db.lines[id]
	if !ok {
		return nil, apperror.NotFound("item do pedido não encontrado")
	}
	return cloneLine(l), nil
}

func (r *memLineRepo) FindByOrderID(ctx context.Context, orderID string) ([]*order.Line, error) {
	var out []*order.Line
	for _, l := range r.db.lines {
		if l.OrderID == orderID {
			out = append(out, cloneLine(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memLineRepo) FindByOrderIDWithStock(ctx context.Context, orderID string) ([]*order.Line, error) {
	lines, err := r.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		if s, ok := r.db.stocks[l.StockID]; ok {
			l.StockName = s.Name
			l.Unit = s.Unit
		}
	}
	return lines, nil
}

func (r *memLineRepo) UpdateByID(ctx context.Context, id string, patch order.LinePatch) (*order.Line, error) {
	l, ok := r.db.lines[id]
	if !ok {
		return nil, apperror.NotFound("item do pedido não encontrado")
	}
	if patch.Quantity != nil || patch.SellingPrice != nil {
		if err := l.ApplyPatch(patch.Quantity, patch.SellingPrice); err != nil {
			return nil, apperror.Wrap(apperror.KindValidation, "item do pedido inválido", err)
		}
	}
	if patch.QuantityDelivered != nil {
		l.QuantityDelivered = *patch.QuantityDelivered
	}
	return cloneLine(l), nil
}

func (r *memLineRepo) RemoveByID(ctx context.Context, id string) error {
	if _, ok := r.db.lines[id]; !ok {
		return apperror.NotFound("item do pedido não encontrado")
	}
	delete(r.db.lines, id)
	return nil
}

func (r *memLineRepo) CalculateTotalAmount(ctx context.Context, orderID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range r.db.lines {
		if l.OrderID == orderID {
			total = total.Add(l.Subtotal)
		}
	}
	return total, nil
}

type memDeliveryRepo struct {
	db *memDB
}

func (r *memDeliveryRepo) Create(ctx context.Context, d *delivery.Delivery) error {
	r.db.deliveries[d.ID] = cloneDelivery(d)
	return nil
}

func (r *memDeliveryRepo) FindByID(ctx context.Context, id, firmID string) (*delivery.Delivery, error) {
	d, ok := r.db.deliveries[id]
	if !ok || d.FirmID != firmID {
		return nil, apperror.NotFound("entrega não encontrada")
	}
	return cloneDelivery(d), nil
}

func (r *memDeliveryRepo) FindByOrderID(ctx context.Context, orderID string) ([]*delivery.Delivery, error) {
	var out []*delivery.Delivery
	for _, d := range r.db.deliveries {
		l, ok := r.db.lines[d.OrderStockID]
		if !ok || l.OrderID != orderID {
			continue
		}
		c := cloneDelivery(d)
		c.StockID = l.StockID
		if s, ok := r.db.stocks[l.StockID]; ok {
			c.StockName = s.Name
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memDeliveryRepo) UpdateByID(ctx context.Context, id string, patch delivery.Patch) error {
	d, ok := r.db.deliveries[id]
	if !ok {
		return apperror.NotFound("entrega não encontrada")
	}
	if patch.DeliveredQuantity != nil {
		d.DeliveredQuantity = *patch.DeliveredQuantity
	}
	if patch.DeliveryDate != nil {
		d.DeliveryDate = *patch.DeliveryDate
	}
	if patch.DeliveryNotes != nil {
		d.DeliveryNotes = *patch.DeliveryNotes
	}
	return nil
}

func (r *memDeliveryRepo) RemoveByID(ctx context.Context, id string) error {
	if _, ok := r.db.deliveries[id]; !ok {
		return apperror.NotFound("entrega não encontrada")
	}
	delete(r.db.deliveries, id)
	return nil
}

func (r *memDeliveryRepo) RemoveByLineID(ctx context.Context, lineID string) error {
	for id, d := range r.db.deliveries {
		if d.OrderStockID == lineID {
			delete(r.db.deliveries, id)
		}
	}
	return nil
}

func (r *memDeliveryRepo) CalculateTotalDelivered(ctx context.Context, lineID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range r.db.deliveries {
		if d.OrderStockID == lineID {
			total = total.Add(d.DeliveredQuantity)
		}
	}
	return total, nil
}

type memPaymentRepo struct {
	db *memDB
}

func (r *memPaymentRepo) Create(ctx context.Context, p *payment.Payment) error {
	for _, other := range r.db.payments {
		if other.ReferenceNo == p.ReferenceNo {
			return apperror.Conflict("já existe um pagamento com esta referência")
		}
	}
	r.db.payments[p.ID] = clonePayment(p)
	return nil
}

func (r *memPaymentRepo) FindByID(ctx context.Context, id, firmID string) (*payment.Payment, error) {
	p, ok := r.db.payments[id]
	if !ok || p.FirmID != firmID {
		return nil, apperror.NotFound("pagamento não encontrado")
	}
	return clonePayment(p), nil
}

func (r *memPaymentRepo) FindByOrderID(ctx context.Context, orderID string) ([]*payment.Payment, error) {
	var out []*payment.Payment
	for _, p := range r.db.payments {
		if p.OrderID == orderID {
			out = append(out, clonePayment(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentDate.Before(out[j].PaymentDate) })
	return out, nil
}

func (r *memPaymentRepo) UpdateByID(ctx context.Context, id string, patch payment.Patch) error {
	p, ok := r.db.payments[id]
	if !ok {
		return apperror.NotFound("pagamento não encontrado")
	}
	if patch.AmountPaid != nil {
		p.AmountPaid = *patch.AmountPaid
	}
	if patch.PaymentMethod != nil {
		p.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Remarks != nil {
		p.Remarks = *patch.Remarks
	}
	if patch.PaymentDate != nil {
		p.PaymentDate = *patch.PaymentDate
	}
	return nil
}

func (r *memPaymentRepo) RemoveByID(ctx context.Context, id string) error {
	if _, ok := r.db.payments[id]; !ok {
		return apperror.NotFound("pagamento não encontrado")
	}
	delete(r.db.payments, id)
	return nil
}

func (r *memPaymentRepo) CalculateTotalPaid(ctx context.Context, orderID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.db.payments {
		if p.OrderID == orderID {
			total = total.Add(p.AmountPaid)
		}
	}
	return total, nil
}

type memStockRepo struct {
	db *memDB
}

func (r *memStockRepo) Create(ctx context.Context, s *stock.Stock) error {
	r.db.stocks[s.ID] = cloneStock(s)
	return nil
}

func (r *memStockRepo) FindByID(ctx context.Context, id, firmID string) (*stock.Stock, error) {
	s, ok := r.db.stocks[id]
	if !ok || s.FirmID != firmID || !s.IsActive {
		return nil, apperror.NotFound("item de estoque não encontrado")
	}
	return cloneStock(s), nil
}

func (r *memStockRepo) FindBySku(ctx context.Context, sku, firmID string) (*stock.Stock, error) {
	for _, s := range r.db.stocks {
		if s.FirmID == firmID && s.SkuCode == sku && s.IsActive {
			return cloneStock(s), nil
		}
	}
	return nil, apperror.NotFound("item de estoque não encontrado")
}

func (r *memStockRepo) List(ctx context.Context, firmID string, filter stock.Filter, limit, offset int) ([]*stock.Stock, int, error) {
	var out []*stock.Stock
	for _, s := range r.db.stocks {
		if s.FirmID != firmID || !s.IsActive {
			continue
		}
		if filter.CategoryID != "" && s.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, cloneStock(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (r *memStockRepo) FindLowStock(ctx context.Context, firmID string) ([]*stock.Stock, error) {
	var out []*stock.Stock
	for _, s := range r.db.stocks {
		if s.FirmID == firmID && s.IsActive && s.QuantityAvailable.LessThanOrEqual(s.LowUnitThreshold) {
			out = append(out, cloneStock(s))
		}
	}
	return out, nil
}

func (r *memStockRepo) Update(ctx context.Context, s *stock.Stock) error {
	if _, ok := r.db.stocks[s.ID]; !ok {
		return apperror.NotFound("item de estoque não encontrado")
	}
	r.db.stocks[s.ID] = cloneStock(s)
	return nil
}

func (r *memStockRepo) AdjustQuantity(ctx context.Context, id, firmID string, delta decimal.Decimal) (*stock.Stock, error) {
	s, ok := r.db.stocks[id]
	if !ok || s.FirmID != firmID || !s.IsActive {
		return nil, apperror.NotFound("item de estoque não encontrado")
	}
	next := s.QuantityAvailable.Add(delta)
	if next.IsNegative() {
		return nil, apperror.New(apperror.KindInsufficientStock, "ajuste deixaria a quantidade disponível negativa")
	}
	s.QuantityAvailable = next
	return cloneStock(s), nil
}

func (r *memStockRepo) QuantityAvailable(ctx context.Context, id, firmID string) (decimal.Decimal, string, error) {
	s, ok := r.db.stocks[id]
	if !ok || s.FirmID != firmID || !s.IsActive {
		return decimal.Zero, "", apperror.NotFound("item de estoque não encontrado")
	}
	return s.QuantityAvailable, s.Name, nil
}

func (r *memStockRepo) SoftDelete(ctx context.Context, id, firmID string) error {
	s, ok := r.db.stocks[id]
	if !ok || s.FirmID != firmID {
		return apperror.NotFound("item de estoque não encontrado")
	}
	s.IsActive = false
	return nil
}
