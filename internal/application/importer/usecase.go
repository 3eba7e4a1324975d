package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/storage"
)

// Limits límites de la importación.
type Limits struct {
	MaxRows     int
	MaxFileSize int64
}

// ImportUseCase pipeline de importación en dos fases: Preview analiza el
// archivo y devuelve registros, duplicados y errores por fila sin persistir
// nada; Commit persiste los registros confirmados por el operador y
// reconcilia el stock en la misma transacción.
type ImportUseCase struct {
	store  *storage.Facade
	limits Limits
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(store *storage.Facade, limits Limits) *ImportUseCase {
	return &ImportUseCase{store: store, limits: limits}
}

// Template devuelve la plantilla XLSX que el usuario rellena y vuelve a
// subir al importador. La fila de ejemplo muestra el formato esperado
// (fechas día-primero, decimales con coma).
func (uc *ImportUseCase) Template(kindStr string) (string, []byte, error) {
	if kindStr == string(KindStock) {
		data, err := spreadsheet.WriteTemplate("Stock",
			[]string{"Nombre", "Categoría", "Subcategoría", "Stock", "Umbral Alerta", "Stock Inicial", "Precio Unitario"},
			[]string{"Café en grano", "Bebidas", "Café", "40", "10", "50", "5,50"},
		)
		if err != nil {
			return "", nil, err
		}
		return "plantilla_stock.xlsx", data, nil
	}
	data, err := spreadsheet.WriteTemplate("Ventas",
		[]string{"Fecha", "Cliente", "Producto", "Cantidad", "Importe", "Pago", "Vendedor", "Caja", "Categoría", "Notas"},
		[]string{"15/03/2024", "", "Café en grano", "2", "11,00", "efectivo", "Ana", "Caja 1", "Bebidas", ""},
	)
	if err != nil {
		return "", nil, err
	}
	return "plantilla_ventas.xlsx", data, nil
}

// Preview lee el archivo, mapea encabezados, valida filas y marca duplicados
// contra los datos ya persistidos. No escribe nada.
func (uc *ImportUseCase) Preview(ownerID, filename, kindStr string, data []byte) (*dto.ImportPreviewResponse, error) {
	if uc.limits.MaxFileSize > 0 && int64(len(data)) > uc.limits.MaxFileSize {
		return nil, fmt.Errorf("%w: el archivo supera el tamaño máximo (%d bytes)", domain.ErrInvalidInput, uc.limits.MaxFileSize)
	}

	sheet, err := spreadsheet.Read(filename, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if uc.limits.MaxRows > 0 && len(sheet.Rows) > uc.limits.MaxRows {
		return nil, fmt.Errorf("%w: el archivo supera el máximo de %d filas", domain.ErrInvalidInput, uc.limits.MaxRows)
	}

	kind := KindSales
	if kindStr == string(KindStock) {
		kind = KindStock
	}

	hm := MapHeaders(kind, sheet.Headers)
	res := ValidateRows(kind, sheet.Rows, hm)

	resp := &dto.ImportPreviewResponse{
		Kind:      string(kind),
		HeaderMap: hm,
		Total:     len(sheet.Rows),
	}
	for _, re := range res.RowErrors {
		resp.Errors = append(resp.Errors, dto.RowErrorDTO{Row: re.Row, Errors: re.Errors})
	}

	switch kind {
	case KindStock:
		existing, err := uc.store.ListItems(ownerID)
		if err != nil {
			return nil, err
		}
		for i, c := range DetectStockDuplicates(res.Items, existing) {
			if c.Duplicate {
				resp.Duplicates++
			}
			resp.Items = append(resp.Items, toImportStockRecord(c, res.ItemRows[i]))
		}
	default:
		existing, err := uc.store.ListSales(ownerID)
		if err != nil {
			return nil, err
		}
		for i, c := range DetectSaleDuplicates(res.Sales, existing) {
			if c.Duplicate {
				resp.Duplicates++
			}
			resp.Sales = append(resp.Sales, toImportSaleRecord(c, res.SaleRows[i]))
		}
	}
	return resp, nil
}

// Commit persiste los registros marcados con should_keep. Las ventas se
// insertan y reconcilian contra el stock en un solo lote: en remoto dentro
// de una transacción, en local de forma secuencial.
func (uc *ImportUseCase) Commit(ctx context.Context, ownerID string, in dto.ImportCommitRequest) (*dto.ImportCommitResponse, error) {
	if in.Kind == string(KindStock) {
		return uc.commitStock(ctx, ownerID, in)
	}
	return uc.commitSales(ctx, ownerID, in)
}

func (uc *ImportUseCase) commitSales(ctx context.Context, ownerID string, in dto.ImportCommitRequest) (*dto.ImportCommitResponse, error) {
	now := time.Now()
	var kept []*entity.Sale
	for _, rec := range in.Sales {
		if !rec.ShouldKeep {
			continue
		}
		date, err := ParseDate(rec.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d: date inválida", domain.ErrInvalidInput, rec.Row)
		}
		kept = append(kept, &entity.Sale{
			ID:        uuid.New().String(),
			OwnerID:   ownerID,
			Date:      date,
			Client:    rec.Client,
			Product:   rec.Product,
			Quantity:  rec.Quantity,
			UnitPrice: rec.UnitPrice,
			Amount:    rec.Amount,
			Payment:   rec.Payment,
			Seller:    rec.Seller,
			Register:  rec.Register,
			Category:  rec.Category,
			Notes:     rec.Notes,
			CreatedAt: now,
		})
	}

	var rec *ReconcileResult
	receipt, err := uc.store.RunImport(ctx, func(
		saleRepo repository.SaleRepository,
		itemRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		for _, sale := range kept {
			if err := saleRepo.Create(sale); err != nil {
				return err
			}
		}
		var err error
		rec, err = ReconcileStock(ownerID, kept, itemRepo, movRepo)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ImportCommitResponse{
		Imported:  len(kept),
		Skipped:   len(in.Sales) - len(kept),
		Movements: len(rec.Movements),
		Write:     dto.WriteInfo{Backend: receipt.Backend, Warning: receipt.Warning},
	}
	for _, u := range rec.Unmatched {
		resp.Unmatched = append(resp.Unmatched, dto.UnmatchedProductDTO{
			Product:  u.Product,
			Quantity: u.Quantity,
			Sales:    u.Sales,
		})
	}
	return resp, nil
}

func (uc *ImportUseCase) commitStock(ctx context.Context, ownerID string, in dto.ImportCommitRequest) (*dto.ImportCommitResponse, error) {
	now := time.Now()
	var kept []*entity.StockItem
	for _, rec := range in.Items {
		if !rec.ShouldKeep {
			continue
		}
		kept = append(kept, &entity.StockItem{
			ID:             uuid.New().String(),
			OwnerID:        ownerID,
			Name:           rec.Name,
			Category:       rec.Category,
			Subcategory:    rec.Subcategory,
			CurrentStock:   rec.CurrentStock,
			AlertThreshold: rec.AlertThreshold,
			InitialStock:   rec.InitialStock,
			UnitPrice:      rec.UnitPrice,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	receipt, err := uc.store.RunImport(ctx, func(
		_ repository.SaleRepository,
		itemRepo repository.StockItemRepository,
		_ repository.StockMovementRepository,
	) error {
		for _, item := range kept {
			if err := itemRepo.Create(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.ImportCommitResponse{
		Imported: len(kept),
		Skipped:  len(in.Items) - len(kept),
		Write:    dto.WriteInfo{Backend: receipt.Backend, Warning: receipt.Warning},
	}, nil
}

func toImportSaleRecord(c SaleCandidate, row int) dto.ImportSaleRecord {
	return dto.ImportSaleRecord{
		Row:        row,
		Date:       c.Sale.Date.Format("2006-01-02"),
		Client:     c.Sale.Client,
		Product:    c.Sale.Product,
		Quantity:   c.Sale.Quantity,
		UnitPrice:  c.Sale.UnitPrice,
		Amount:     c.Sale.Amount,
		Payment:    c.Sale.Payment,
		Seller:     c.Sale.Seller,
		Register:   c.Sale.Register,
		Category:   c.Sale.Category,
		Notes:      c.Sale.Notes,
		Duplicate:  c.Duplicate,
		ShouldKeep: c.ShouldKeep,
	}
}

func toImportStockRecord(c StockCandidate, row int) dto.ImportStockRecord {
	return dto.ImportStockRecord{
		Row:            row,
		Name:           c.Item.Name,
		Category:       c.Item.Category,
		Subcategory:    c.Item.Subcategory,
		CurrentStock:   c.Item.CurrentStock,
		AlertThreshold: c.Item.AlertThreshold,
		InitialStock:   c.Item.InitialStock,
		UnitPrice:      c.Item.UnitPrice,
		Duplicate:      c.Duplicate,
		ShouldKeep:     c.ShouldKeep,
	}
}
