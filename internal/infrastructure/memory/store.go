// Package memory implementa los puertos de persistencia en memoria, con un
// TxRunner que serializa con un mutex (el equivalente del bloqueo por fila de
// PostgreSQL) y revierte por snapshot. Respaldo de los tests de la capa de
// aplicación; no apto para producción.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/Almacen-api/internal/application/ports"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Store contiene todo el estado. Las operaciones mutadoras reemplazan entradas
// (nunca mutan in place) para que el snapshot de rollback sea una copia
// superficial de los mapas.
type Store struct {
	mu        sync.Mutex
	locations map[string]*entity.Location
	items     map[string]*entity.Item
	batches   map[string]*entity.Batch
	stock     map[string]*entity.Stock // clave loc|item|batch; batch vacío = sin lote
	history   []*entity.StockHistory
	purchase  map[string]*entity.PurchaseOrder
	transfer  map[string]*entity.TransferOrder
	receive   map[string]*entity.ReceiveOrder
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		locations: map[string]*entity.Location{},
		items:     map[string]*entity.Item{},
		batches:   map[string]*entity.Batch{},
		stock:     map[string]*entity.Stock{},
		purchase:  map[string]*entity.PurchaseOrder{},
		transfer:  map[string]*entity.TransferOrder{},
		receive:   map[string]*entity.ReceiveOrder{},
	}
}

func stockKey(locationID, itemID, batchID string) string {
	return locationID + "|" + itemID + "|" + batchID
}

func splitStockKey(key string) (locationID, itemID, batchID string) {
	parts := strings.SplitN(key, "|", 3)
	return parts[0], parts[1], parts[2]
}

type snapshot struct {
	locations  map[string]*entity.Location
	items      map[string]*entity.Item
	batches    map[string]*entity.Batch
	stock      map[string]*entity.Stock
	historyLen int
	purchase   map[string]*entity.PurchaseOrder
	transfer   map[string]*entity.TransferOrder
	receive    map[string]*entity.ReceiveOrder
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		locations:  copyMap(s.locations),
		items:      copyMap(s.items),
		batches:    copyMap(s.batches),
		stock:      copyMap(s.stock),
		historyLen: len(s.history),
		purchase:   copyMap(s.purchase),
		transfer:   copyMap(s.transfer),
		receive:    copyMap(s.receive),
	}
}

func (s *Store) restore(snap snapshot) {
	s.locations = snap.locations
	s.items = snap.items
	s.batches = snap.batches
	s.stock = snap.stock
	s.history = s.history[:snap.historyLen]
	s.purchase = snap.purchase
	s.transfer = snap.transfer
	s.receive = snap.receive
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

type txRunner struct {
	s *Store
}

// TxRunner devuelve un runner transaccional sobre el almacén. El mutex global
// serializa las transacciones completas; un error de fn revierte al snapshot.
func (s *Store) TxRunner() ports.TxRunner {
	return &txRunner{s: s}
}

func (t *txRunner) Run(_ context.Context, fn func(r ports.TxRepos) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	snap := t.s.snapshot()
	repos := ports.TxRepos{
		Stock:    &stockRepo{s: t.s},
		History:  &historyRepo{s: t.s},
		Batches:  &batchRepo{s: t.s},
		Purchase: &purchaseRepo{s: t.s},
		Transfer: &transferRepo{s: t.s},
		Receive:  &receiveRepo{s: t.s},
	}
	if err := fn(repos); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// Repos devuelve repositorios directos (con bloqueo por operación) para
// lecturas y datos maestros fuera de transacción. No usarlos dentro de Run.
func (s *Store) Repos() ports.TxRepos {
	return ports.TxRepos{
		Stock:    &stockRepo{s: s, locking: true},
		History:  &historyRepo{s: s, locking: true},
		Batches:  &batchRepo{s: s, locking: true},
		Purchase: &purchaseRepo{s: s, locking: true},
		Transfer: &transferRepo{s: s, locking: true},
		Receive:  &receiveRepo{s: s, locking: true},
	}
}

// Locations devuelve el repositorio directo de ubicaciones.
func (s *Store) Locations() *LocationRepo { return &LocationRepo{s: s, locking: true} }

// Items devuelve el repositorio directo de items.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s, locking: true} }

// enter toma el lock del almacén cuando el repo es directo; dentro de Run el
// lock ya lo sostiene el TxRunner.
func (s *Store) enter(locking bool) func() {
	if !locking {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}
