package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvariantViolation = errors.New("violación de invariante del ledger")
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")
)

// LineError indica qué línea de una operación multi-línea (lote de producción,
// orden de traslado u orden de recepción) violó qué invariante. La operación
// completa se revierte; este error identifica la línea culpable para el caller.
type LineError struct {
	Line   int    // índice de la línea (0-based) en el request
	ItemID string // SKU de la línea
	Err    error  // error sentinel subyacente (ErrInsufficientStock, ErrInvalidInput, ...)
}

func (e *LineError) Error() string {
	return fmt.Sprintf("línea %d (item %s): %v", e.Line, e.ItemID, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// NewLineError construye un LineError envolviendo el error sentinel.
func NewLineError(line int, itemID string, err error) *LineError {
	return &LineError{Line: line, ItemID: itemID, Err: err}
}
