package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// UnmatchedProduct producto vendido sin entrada de stock correspondiente.
// Se reporta como clase de aviso propia: nunca se descarta en silencio.
type UnmatchedProduct struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
	Sales    int    `json:"sales"`
}

// ReconcileResult resumen de la reconciliación de un lote.
type ReconcileResult struct {
	Movements []*entity.StockMovement
	Unmatched []UnmatchedProduct
}

// ReconcileStock agrega las cantidades vendidas por producto (clave: nombre
// en minúsculas, orden de primera aparición en el lote), descuenta el total
// de cada grupo del stock del producto coincidente y registra UN movimiento
// "out" consolidado por grupo, cuyo motivo incluye el número de ventas
// subyacentes.
//
// Ambos backends pasan por aquí: el remoto dentro de la transacción del lote
// y el local de forma secuencial. Un solo camino, un solo comportamiento.
func ReconcileStock(
	ownerID string,
	sales []*entity.Sale,
	items repository.StockItemRepository,
	movements repository.StockMovementRepository,
) (*ReconcileResult, error) {
	type group struct {
		product string // nombre tal como aparece en la primera venta
		total   int
		count   int
	}

	var order []string
	groups := make(map[string]*group)
	for _, sale := range sales {
		key := normalizeProductKey(sale.Product)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &group{product: sale.Product}
			groups[key] = g
			order = append(order, key)
		}
		g.total += sale.Quantity
		g.count++
	}

	existing, err := items.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("listar stock para reconciliar: %w", err)
	}
	byName := make(map[string]*entity.StockItem, len(existing))
	for _, item := range existing {
		byName[normalizeProductKey(item.Name)] = item
	}

	result := &ReconcileResult{}
	now := time.Now()
	for _, key := range order {
		g := groups[key]
		item, ok := byName[key]
		if !ok {
			result.Unmatched = append(result.Unmatched, UnmatchedProduct{
				Product:  g.product,
				Quantity: g.total,
				Sales:    g.count,
			})
			continue
		}

		newStock := item.CurrentStock - g.total
		if err := items.UpdateStock(item.ID, newStock); err != nil {
			return nil, fmt.Errorf("descontar stock de %q: %w", item.Name, err)
		}
		item.CurrentStock = newStock

		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			OwnerID:   ownerID,
			ItemID:    item.ID,
			Type:      entity.MovementTypeOut,
			Quantity:  g.total,
			Reason:    fmt.Sprintf("Importación de ventas (%d venta(s))", g.count),
			CreatedAt: now,
		}
		if err := movements.Create(mov); err != nil {
			return nil, fmt.Errorf("registrar movimiento de %q: %w", item.Name, err)
		}
		result.Movements = append(result.Movements, mov)
	}
	return result, nil
}
