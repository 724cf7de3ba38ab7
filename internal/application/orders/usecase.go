package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/batch"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/ports"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
	"github.com/jhoicas/Almacen-api/pkg/metrics"
)

// UseCase coordina la máquina de estados PO → TO → RO. Es el único escritor
// que invoca el asignador de lotes y el ledger, siempre dentro de
// transacciones atómicas: ninguna operación deja estado parcial visible.
type UseCase struct {
	txRunner  ports.TxRunner
	locations repository.LocationRepository
	items     repository.ItemRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de órdenes.
func NewUseCase(
	txRunner ports.TxRunner,
	locations repository.LocationRepository,
	items repository.ItemRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		locations: locations,
		items:     items,
		log:       log,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden de compra
// ──────────────────────────────────────────────────────────────────────────────

// PurchaseLine línea solicitada de una orden de compra.
type PurchaseLine struct {
	ItemID   string
	Quantity int64
}

// PurchaseOrderInput entrada para crear una orden de compra.
type PurchaseOrderInput struct {
	SourceLocID string
	DestLocID   string
	Lines       []PurchaseLine
	ActorID     string
}

// CreatePurchaseOrder valida las referencias y persiste la orden con sus
// líneas en una transacción. La orden nace CREATED y activa.
func (uc *UseCase) CreatePurchaseOrder(ctx context.Context, input PurchaseOrderInput) (*entity.PurchaseOrder, error) {
	if input.ActorID == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.SourceLocID == input.DestLocID {
		return nil, domain.ErrInvalidInput
	}
	source, err := uc.locations.GetByID(input.SourceLocID)
	if err != nil || source == nil {
		return nil, domain.ErrNotFound
	}
	dest, err := uc.locations.GetByID(input.DestLocID)
	if err != nil || dest == nil {
		return nil, domain.ErrNotFound
	}
	if !source.IsActive || !dest.IsActive {
		return nil, domain.ErrInvalidInput
	}
	for i, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, domain.NewLineError(i, line.ItemID, domain.ErrInvalidInput)
		}
		item, err := uc.items.GetByID(line.ItemID)
		if err != nil || item == nil {
			return nil, domain.NewLineError(i, line.ItemID, domain.ErrNotFound)
		}
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:          uuid.New().String(),
		SourceLocID: input.SourceLocID,
		DestLocID:   input.DestLocID,
		Status:      entity.POStatusCreated,
		IsActive:    true,
		CreatedBy:   input.ActorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, line := range input.Lines {
		po.Lines = append(po.Lines, entity.PurchaseOrderLine{ItemID: line.ItemID, Quantity: line.Quantity})
	}

	err = uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		return r.Purchase.Create(po)
	})
	if err != nil {
		return nil, err
	}
	metrics.OrdersCreatedTotal.WithLabelValues("purchase").Inc()
	uc.log.Info().Str("po_id", po.ID).Int("lines", len(po.Lines)).Msg("orden de compra creada")
	return po, nil
}

// DeactivatePurchaseOrder desactiva una orden de compra. Solo es válido
// mientras la orden sigue en CREATED; en cualquier otro estado → ErrConflict.
func (uc *UseCase) DeactivatePurchaseOrder(ctx context.Context, poID, actorID string) error {
	if poID == "" || actorID == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		po, err := r.Purchase.GetByIDForUpdate(poID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.POStatusCreated || !po.IsActive {
			return domain.ErrConflict
		}
		return r.Purchase.Deactivate(poID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("po_id", poID).Str("actor", actorID).Msg("orden de compra desactivada")
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden de traslado
// ──────────────────────────────────────────────────────────────────────────────

// TransferLine línea solicitada de un traslado. BatchID vacío deja la
// selección de lotes al asignador (greedy, más antiguo primero).
type TransferLine struct {
	ItemID   string
	BatchID  string
	Quantity int64
}

// TransferOrderInput entrada para crear una orden de traslado contra una PO.
type TransferOrderInput struct {
	PurchaseOrderID string
	EmployeeID      string
	Lines           []TransferLine
	ActorID         string
}

// CreateTransferOrder resuelve los lotes de cada línea con el asignador y
// aplica el descuento TRANSFER_OUT en el origen de la PO, todo en una sola
// transacción: si alguna línea no puede asignarse, nada se descuenta.
// Transiciona la PO a IN_TRANSIT.
func (uc *UseCase) CreateTransferOrder(ctx context.Context, input TransferOrderInput) (*entity.TransferOrder, error) {
	if input.ActorID == "" || input.EmployeeID == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for i, line := range input.Lines {
		if line.ItemID == "" || line.Quantity <= 0 {
			return nil, domain.NewLineError(i, line.ItemID, domain.ErrInvalidInput)
		}
	}

	now := time.Now()
	to := &entity.TransferOrder{
		ID:              uuid.New().String(),
		PurchaseOrderID: input.PurchaseOrderID,
		EmployeeID:      input.EmployeeID,
		Status:          entity.TOStatusInTransit,
		CreatedBy:       input.ActorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		po, err := r.Purchase.GetByIDForUpdate(input.PurchaseOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if !po.IsActive || po.Status != entity.POStatusCreated {
			return domain.ErrConflict
		}

		// El runner puede reintentar este callback tras un rollback; las
		// líneas se acumulan en una local y se asignan al final para que un
		// reintento no duplique lo acumulado por el intento revertido.
		var lines []entity.TransferOrderLine
		alloc := batch.NewAllocator(r.Stock)
		led := ledger.New(r.Stock, r.History)
		for i, line := range input.Lines {
			if !po.HasItem(line.ItemID) {
				return domain.NewLineError(i, line.ItemID, domain.ErrInvalidInput)
			}
			allocations, err := alloc.Allocate(po.SourceLocID, line.ItemID, line.Quantity, line.BatchID)
			if err != nil {
				return domain.NewLineError(i, line.ItemID, err)
			}
			for _, a := range allocations {
				_, err := led.ApplyDelta(po.SourceLocID, line.ItemID, a.BatchID,
					-a.Quantity, entity.ReasonTransferOut, input.ActorID)
				if err != nil {
					// El asignador ya bloqueó y aprobó estas filas dentro de
					// esta misma tx; un rechazo aquí es un defecto de locking.
					if errors.Is(err, domain.ErrInsufficientStock) {
						return domain.NewLineError(i, line.ItemID, domain.ErrInvariantViolation)
					}
					return domain.NewLineError(i, line.ItemID, err)
				}
				lines = append(lines, entity.TransferOrderLine{
					ItemID:   line.ItemID,
					BatchID:  a.BatchID,
					Quantity: a.Quantity,
				})
			}
		}
		to.Lines = lines

		if err := r.Transfer.Create(to); err != nil {
			return err
		}
		return r.Purchase.UpdateStatus(po.ID, entity.POStatusInTransit)
	})
	if err != nil {
		return nil, err
	}
	metrics.OrdersCreatedTotal.WithLabelValues("transfer").Inc()
	uc.log.Info().
		Str("to_id", to.ID).
		Str("po_id", to.PurchaseOrderID).
		Int("lines", len(to.Lines)).
		Msg("orden de traslado creada")
	return to, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden de recepción
// ──────────────────────────────────────────────────────────────────────────────

// ReceiveLine línea recibida contra una línea despachada (mismo item y lote).
type ReceiveLine struct {
	ItemID      string
	BatchID     string
	QtyReceived int64
}

// ReceiveOrderInput entrada para crear la orden de recepción que cierra un TO.
type ReceiveOrderInput struct {
	TransferOrderID string
	Lines           []ReceiveLine
	ActorID         string
}

// CreateReceiveOrder aplica la entrada RECEIVE_IN en el destino de la PO
// contra el mismo lote despachado, en una sola transacción. Lo recibido nunca
// puede exceder lo despachado por línea; el faltante (despachado - recibido)
// se registra como discrepancia de auditoría y no dispara ningún reverso.
// Cierra el TO (RECEIVED) y la PO (FULFILLED); un TO solo admite una RO.
func (uc *UseCase) CreateReceiveOrder(ctx context.Context, input ReceiveOrderInput) (*entity.ReceiveOrder, error) {
	if input.ActorID == "" {
		return nil, domain.ErrInvalidInput
	}
	for i, line := range input.Lines {
		if line.ItemID == "" || line.BatchID == "" || line.QtyReceived < 0 {
			return nil, domain.NewLineError(i, line.ItemID, domain.ErrInvalidInput)
		}
	}

	now := time.Now()
	ro := &entity.ReceiveOrder{
		ID:              uuid.New().String(),
		TransferOrderID: input.TransferOrderID,
		CreatedBy:       input.ActorID,
		CreatedAt:       now,
	}
	var discrepancies int64

	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		to, err := r.Transfer.GetByIDForUpdate(input.TransferOrderID)
		if err != nil {
			return err
		}
		if to == nil {
			return domain.ErrNotFound
		}
		if to.Status != entity.TOStatusInTransit {
			// Ya cerrada: el modelo es de recepción única y terminal
			return domain.ErrConflict
		}
		po, err := r.Purchase.GetByID(to.PurchaseOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}

		// Toda línea recibida debe corresponder a una línea despachada
		for i, line := range input.Lines {
			if to.FindLine(line.ItemID, line.BatchID) == nil {
				return domain.NewLineError(i, line.ItemID, domain.ErrInvalidInput)
			}
		}

		// Acumular en locales y asignar al final: el runner puede reintentar
		// el callback y lo ya acumulado por un intento revertido no se limpia.
		var lines []entity.ReceiveOrderLine
		var missing int64
		led := ledger.New(r.Stock, r.History)
		for i, shipped := range to.Lines {
			received := int64(0)
			for _, line := range input.Lines {
				if line.ItemID == shipped.ItemID && line.BatchID == shipped.BatchID {
					received = line.QtyReceived
					break
				}
			}
			if received > shipped.Quantity {
				return domain.NewLineError(i, shipped.ItemID, domain.ErrInvalidInput)
			}
			if received > 0 {
				// Entrada en destino contra el mismo lote despachado
				_, err := led.ApplyDelta(po.DestLocID, shipped.ItemID, shipped.BatchID,
					received, entity.ReasonReceiveIn, input.ActorID)
				if err != nil {
					return domain.NewLineError(i, shipped.ItemID, err)
				}
			}
			disc := shipped.Quantity - received
			if disc > 0 {
				missing += disc
			}
			lines = append(lines, entity.ReceiveOrderLine{
				ItemID:      shipped.ItemID,
				BatchID:     shipped.BatchID,
				QtyShipped:  shipped.Quantity,
				QtyReceived: received,
				Discrepancy: disc,
			})
		}
		ro.Lines = lines
		discrepancies = missing

		if err := r.Receive.Create(ro); err != nil {
			return err
		}
		if err := r.Transfer.UpdateStatus(to.ID, entity.TOStatusReceived); err != nil {
			return err
		}
		return r.Purchase.UpdateStatus(po.ID, entity.POStatusFulfilled)
	})
	if err != nil {
		return nil, err
	}
	metrics.OrdersCreatedTotal.WithLabelValues("receive").Inc()
	if discrepancies > 0 {
		metrics.ReceiveDiscrepanciesTotal.Add(float64(discrepancies))
		uc.log.Warn().
			Str("ro_id", ro.ID).
			Str("to_id", ro.TransferOrderID).
			Int64("missing_units", discrepancies).
			Msg("recepción con discrepancia: faltante auditado, sin reverso automático")
	}
	uc.log.Info().Str("ro_id", ro.ID).Str("to_id", ro.TransferOrderID).Msg("orden de recepción creada")
	return ro, nil
}
