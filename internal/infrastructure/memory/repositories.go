package memory

import (
	"sort"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var (
	_ repository.StockRepository         = (*stockRepo)(nil)
	_ repository.StockHistoryRepository  = (*historyRepo)(nil)
	_ repository.BatchRepository         = (*batchRepo)(nil)
	_ repository.PurchaseOrderRepository = (*purchaseRepo)(nil)
	_ repository.TransferOrderRepository = (*transferRepo)(nil)
	_ repository.ReceiveOrderRepository  = (*receiveRepo)(nil)
	_ repository.ItemRepository          = (*ItemRepo)(nil)
	_ repository.LocationRepository      = (*LocationRepo)(nil)
)

// ──────────────────────────────────────────────────────────────────────────────
// Stock
// ──────────────────────────────────────────────────────────────────────────────

type stockRepo struct {
	s       *Store
	locking bool
}

func (r *stockRepo) Get(locationID, itemID, batchID string) (*entity.Stock, error) {
	defer r.s.enter(r.locking)()
	if st, ok := r.s.stock[stockKey(locationID, itemID, batchID)]; ok {
		cp := *st
		return &cp, nil
	}
	// Fila lazy: cantidad cero si nunca se escribió.
	return &entity.Stock{LocationID: locationID, ItemID: itemID, BatchID: batchID}, nil
}

// GetForUpdate no necesita bloqueo por fila: el mutex del TxRunner ya
// serializa la transacción completa.
func (r *stockRepo) GetForUpdate(locationID, itemID, batchID string) (*entity.Stock, error) {
	return r.Get(locationID, itemID, batchID)
}

func (r *stockRepo) Upsert(stock *entity.Stock) error {
	defer r.s.enter(r.locking)()
	cp := *stock
	if cp.UpdatedAt.IsZero() {
		cp.UpdatedAt = time.Now()
	}
	r.s.stock[stockKey(cp.LocationID, cp.ItemID, cp.BatchID)] = &cp
	return nil
}

func (r *stockRepo) AvailableBatches(locationID, itemID string) ([]*entity.BatchStock, error) {
	defer r.s.enter(r.locking)()
	var result []*entity.BatchStock
	for key, st := range r.s.stock {
		loc, item, batchID := splitStockKey(key)
		if loc != locationID || item != itemID || batchID == "" || st.Quantity <= 0 {
			continue
		}
		code := ""
		if b, ok := r.s.batches[batchID]; ok {
			code = b.Code
		}
		result = append(result, &entity.BatchStock{
			BatchID:   batchID,
			BatchCode: code,
			Quantity:  st.Quantity,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].BatchCode < result[j].BatchCode })
	return result, nil
}

func (r *stockRepo) AvailableBatchesForUpdate(locationID, itemID string) ([]*entity.BatchStock, error) {
	return r.AvailableBatches(locationID, itemID)
}

func (r *stockRepo) ListUnbatched(limit int) ([]*entity.Stock, error) {
	defer r.s.enter(r.locking)()
	var result []*entity.Stock
	for key, st := range r.s.stock {
		if _, _, batchID := splitStockKey(key); batchID != "" {
			continue
		}
		cp := *st
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LocationID != result[j].LocationID {
			return result[i].LocationID < result[j].LocationID
		}
		return result[i].ItemID < result[j].ItemID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *stockRepo) GetUnbatchedForUpdate(locationID, itemID string) (*entity.Stock, error) {
	defer r.s.enter(r.locking)()
	if st, ok := r.s.stock[stockKey(locationID, itemID, "")]; ok {
		cp := *st
		return &cp, nil
	}
	return nil, nil
}

func (r *stockRepo) DeleteUnbatched(locationID, itemID string) error {
	defer r.s.enter(r.locking)()
	delete(r.s.stock, stockKey(locationID, itemID, ""))
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial
// ──────────────────────────────────────────────────────────────────────────────

type historyRepo struct {
	s       *Store
	locking bool
}

func (r *historyRepo) Create(row *entity.StockHistory) error {
	defer r.s.enter(r.locking)()
	cp := *row
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	r.s.history = append(r.s.history, &cp)
	return nil
}

func (r *historyRepo) List(filter repository.StockHistoryFilter) ([]*entity.StockHistory, error) {
	defer r.s.enter(r.locking)()
	var result []*entity.StockHistory
	for _, row := range r.s.history {
		if filter.LocationID != "" && row.LocationID != filter.LocationID {
			continue
		}
		if filter.ItemID != "" && row.ItemID != filter.ItemID {
			continue
		}
		if filter.BatchID != "" && row.BatchID != filter.BatchID {
			continue
		}
		if filter.Reason != "" && row.Reason != filter.Reason {
			continue
		}
		if filter.From != nil && row.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && row.CreatedAt.After(*filter.To) {
			continue
		}
		cp := *row
		result = append(result, &cp)
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return nil, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *historyRepo) ListByKey(locationID, itemID, batchID string) ([]*entity.StockHistory, error) {
	return r.List(repository.StockHistoryFilter{
		LocationID: locationID,
		ItemID:     itemID,
		BatchID:    batchID,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Lotes
// ──────────────────────────────────────────────────────────────────────────────

type batchRepo struct {
	s       *Store
	locking bool
}

func (r *batchRepo) Create(batch *entity.Batch) error {
	defer r.s.enter(r.locking)()
	for _, b := range r.s.batches {
		if b.LocationID == batch.LocationID && b.Code == batch.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *batch
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	r.s.batches[cp.ID] = &cp
	return nil
}

func (r *batchRepo) GetByID(id string) (*entity.Batch, error) {
	defer r.s.enter(r.locking)()
	if b, ok := r.s.batches[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *batchRepo) GetByCode(locationID, code string) (*entity.Batch, error) {
	defer r.s.enter(r.locking)()
	for _, b := range r.s.batches {
		if b.LocationID == locationID && b.Code == code {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *batchRepo) ListByLocation(locationID string) ([]*entity.Batch, error) {
	defer r.s.enter(r.locking)()
	var result []*entity.Batch
	for _, b := range r.s.batches {
		if b.LocationID != locationID {
			continue
		}
		cp := *b
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de compra
// ──────────────────────────────────────────────────────────────────────────────

type purchaseRepo struct {
	s       *Store
	locking bool
}

func clonePO(po *entity.PurchaseOrder) *entity.PurchaseOrder {
	cp := *po
	cp.Lines = append([]entity.PurchaseOrderLine(nil), po.Lines...)
	return &cp
}

func (r *purchaseRepo) Create(po *entity.PurchaseOrder) error {
	defer r.s.enter(r.locking)()
	r.s.purchase[po.ID] = clonePO(po)
	return nil
}

func (r *purchaseRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	defer r.s.enter(r.locking)()
	if po, ok := r.s.purchase[id]; ok {
		return clonePO(po), nil
	}
	return nil, nil
}

func (r *purchaseRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *purchaseRepo) UpdateStatus(id, status string) error {
	defer r.s.enter(r.locking)()
	po, ok := r.s.purchase[id]
	if !ok {
		return domain.ErrNotFound
	}
	cp := clonePO(po)
	cp.Status = status
	cp.UpdatedAt = time.Now()
	r.s.purchase[id] = cp
	return nil
}

func (r *purchaseRepo) Deactivate(id string) error {
	defer r.s.enter(r.locking)()
	po, ok := r.s.purchase[id]
	if !ok {
		return domain.ErrNotFound
	}
	cp := clonePO(po)
	cp.IsActive = false
	cp.UpdatedAt = time.Now()
	r.s.purchase[id] = cp
	return nil
}

func (r *purchaseRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	defer r.s.enter(r.locking)()
	var result []*entity.PurchaseOrder
	for _, po := range r.s.purchase {
		result = append(result, clonePO(po))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if offset > 0 {
		if offset >= len(result) {
			return nil, nil
		}
		result = result[offset:]
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de traslado
// ──────────────────────────────────────────────────────────────────────────────

type transferRepo struct {
	s       *Store
	locking bool
}

func cloneTO(to *entity.TransferOrder) *entity.TransferOrder {
	cp := *to
	cp.Lines = append([]entity.TransferOrderLine(nil), to.Lines...)
	return &cp
}

func (r *transferRepo) Create(to *entity.TransferOrder) error {
	defer r.s.enter(r.locking)()
	r.s.transfer[to.ID] = cloneTO(to)
	return nil
}

func (r *transferRepo) GetByID(id string) (*entity.TransferOrder, error) {
	defer r.s.enter(r.locking)()
	if to, ok := r.s.transfer[id]; ok {
		return cloneTO(to), nil
	}
	return nil, nil
}

func (r *transferRepo) GetByIDForUpdate(id string) (*entity.TransferOrder, error) {
	return r.GetByID(id)
}

func (r *transferRepo) UpdateStatus(id, status string) error {
	defer r.s.enter(r.locking)()
	to, ok := r.s.transfer[id]
	if !ok {
		return domain.ErrNotFound
	}
	cp := cloneTO(to)
	cp.Status = status
	cp.UpdatedAt = time.Now()
	r.s.transfer[id] = cp
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de recepción
// ──────────────────────────────────────────────────────────────────────────────

type receiveRepo struct {
	s       *Store
	locking bool
}

func cloneRO(ro *entity.ReceiveOrder) *entity.ReceiveOrder {
	cp := *ro
	cp.Lines = append([]entity.ReceiveOrderLine(nil), ro.Lines...)
	return &cp
}

func (r *receiveRepo) Create(ro *entity.ReceiveOrder) error {
	defer r.s.enter(r.locking)()
	for _, existing := range r.s.receive {
		if existing.TransferOrderID == ro.TransferOrderID {
			return domain.ErrDuplicate
		}
	}
	r.s.receive[ro.ID] = cloneRO(ro)
	return nil
}

func (r *receiveRepo) GetByID(id string) (*entity.ReceiveOrder, error) {
	defer r.s.enter(r.locking)()
	if ro, ok := r.s.receive[id]; ok {
		return cloneRO(ro), nil
	}
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Datos maestros
// ──────────────────────────────────────────────────────────────────────────────

// ItemRepo implementación en memoria del catálogo de items.
type ItemRepo struct {
	s       *Store
	locking bool
}

func (r *ItemRepo) Create(item *entity.Item) error {
	defer r.s.enter(r.locking)()
	for _, it := range r.s.items {
		if it.Code == item.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *item
	r.s.items[cp.ID] = &cp
	return nil
}

func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	defer r.s.enter(r.locking)()
	if it, ok := r.s.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	defer r.s.enter(r.locking)()
	var result []*entity.Item
	for _, it := range r.s.items {
		cp := *it
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	if offset > 0 {
		if offset >= len(result) {
			return nil, nil
		}
		result = result[offset:]
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// LocationRepo implementación en memoria de ubicaciones.
type LocationRepo struct {
	s       *Store
	locking bool
}

func (r *LocationRepo) Create(location *entity.Location) error {
	defer r.s.enter(r.locking)()
	for _, loc := range r.s.locations {
		if loc.Code == location.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *location
	r.s.locations[cp.ID] = &cp
	return nil
}

func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	defer r.s.enter(r.locking)()
	if loc, ok := r.s.locations[id]; ok {
		cp := *loc
		return &cp, nil
	}
	return nil, nil
}

func (r *LocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	defer r.s.enter(r.locking)()
	var result []*entity.Location
	for _, loc := range r.s.locations {
		cp := *loc
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	if offset > 0 {
		if offset >= len(result) {
			return nil, nil
		}
		result = result[offset:]
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *LocationRepo) FirstByKind(kind string) (*entity.Location, error) {
	defer r.s.enter(r.locking)()
	var result []*entity.Location
	for _, loc := range r.s.locations {
		if loc.Kind == kind && loc.IsActive {
			result = append(result, loc)
		}
	}
	if len(result) == 0 {
		return nil, nil
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	cp := *result[0]
	return &cp, nil
}
