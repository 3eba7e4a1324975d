package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/importer"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/storage"
)

// SaleUseCase casos de uso CRUD para ventas. Crear una venta descuenta stock
// y registra un movimiento; borrarla NO lo repone (política asimétrica: el
// borrado corrige errores de captura, no deshace la venta física).
type SaleUseCase struct {
	store *storage.Facade
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(store *storage.Facade) *SaleUseCase {
	return &SaleUseCase{store: store}
}

// Create crea una venta manual. Si Amount viene en cero se deriva de
// quantity × unit_price. Descuenta stock del producto coincidente (matching
// laxo por nombre) y registra un movimiento "out"; sin coincidencia no hay
// movimiento y la venta se guarda igual.
func (uc *SaleUseCase) Create(ownerID string, in dto.CreateSaleRequest) (*dto.SaleResponse, dto.WriteInfo, error) {
	if strings.TrimSpace(in.Product) == "" || in.Quantity <= 0 {
		return nil, dto.WriteInfo{}, domain.ErrInvalidInput
	}
	date, err := importer.ParseDate(in.Date)
	if err != nil {
		return nil, dto.WriteInfo{}, domain.ErrInvalidInput
	}

	amount := in.Amount
	unitPrice := in.UnitPrice
	qty := decimal.NewFromInt(int64(in.Quantity))
	if amount.IsZero() && !unitPrice.IsZero() {
		amount = unitPrice.Mul(qty)
	}
	if unitPrice.IsZero() && !amount.IsZero() {
		unitPrice = amount.DivRound(qty, 4)
	}

	sale := &entity.Sale{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Date:      date,
		Client:    in.Client,
		Product:   strings.TrimSpace(in.Product),
		Quantity:  in.Quantity,
		UnitPrice: unitPrice,
		Amount:    amount,
		Payment:   in.Payment,
		Seller:    in.Seller,
		Register:  in.Register,
		Category:  in.Category,
		Notes:     in.Notes,
		CreatedAt: time.Now(),
	}
	receipt, err := uc.store.CreateSale(sale)
	if err != nil {
		return nil, dto.WriteInfo{}, err
	}

	uc.deductStock(sale)

	return toSaleResponse(sale), writeInfo(receipt), nil
}

// deductStock descuenta la cantidad vendida del producto coincidente y
// registra el movimiento. Sin coincidencia no pasa nada.
func (uc *SaleUseCase) deductStock(sale *entity.Sale) {
	items, err := uc.store.ListItems(sale.OwnerID)
	if err != nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(sale.Product))
	for _, item := range items {
		if strings.ToLower(strings.TrimSpace(item.Name)) != key {
			continue
		}
		if _, err := uc.store.UpdateStock(item.ID, item.CurrentStock-sale.Quantity); err != nil {
			return
		}
		_, _ = uc.store.CreateMovement(&entity.StockMovement{
			ID:        uuid.New().String(),
			OwnerID:   sale.OwnerID,
			ItemID:    item.ID,
			Type:      entity.MovementTypeOut,
			Quantity:  sale.Quantity,
			Reason:    "Venta manual",
			Register:  sale.Register,
			Seller:    sale.Seller,
			CreatedAt: time.Now(),
		})
		return
	}
}

// GetByID obtiene una venta del usuario.
func (uc *SaleUseCase) GetByID(ownerID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.store.GetSale(id)
	if err != nil {
		return nil, err
	}
	if sale == nil || (sale.OwnerID != "" && sale.OwnerID != ownerID) {
		return nil, nil
	}
	return toSaleResponse(sale), nil
}

// List lista las ventas del usuario, más recientes primero.
func (uc *SaleUseCase) List(ownerID string) ([]dto.SaleResponse, error) {
	sales, err := uc.store.ListSales(ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, *toSaleResponse(s))
	}
	return out, nil
}

// Update edita una venta existente. No ajusta stock: el ajuste solo ocurre
// en la creación.
func (uc *SaleUseCase) Update(ownerID, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, dto.WriteInfo, error) {
	sale, err := uc.store.GetSale(id)
	if err != nil {
		return nil, dto.WriteInfo{}, err
	}
	if sale == nil || (sale.OwnerID != "" && sale.OwnerID != ownerID) {
		return nil, dto.WriteInfo{}, nil
	}
	if in.Date != "" {
		date, err := importer.ParseDate(in.Date)
		if err != nil {
			return nil, dto.WriteInfo{}, domain.ErrInvalidInput
		}
		sale.Date = date
	}
	if in.Product != "" {
		sale.Product = strings.TrimSpace(in.Product)
	}
	if in.Quantity > 0 {
		sale.Quantity = in.Quantity
	}
	if !in.UnitPrice.IsZero() {
		sale.UnitPrice = in.UnitPrice
	}
	if !in.Amount.IsZero() {
		sale.Amount = in.Amount
	}
	sale.Client = in.Client
	sale.Payment = in.Payment
	sale.Seller = in.Seller
	sale.Register = in.Register
	sale.Category = in.Category
	sale.Notes = in.Notes

	receipt, err := uc.store.UpdateSale(sale)
	if err != nil {
		return nil, dto.WriteInfo{}, err
	}
	return toSaleResponse(sale), writeInfo(receipt), nil
}

// Delete elimina una venta. No repone stock.
func (uc *SaleUseCase) Delete(ownerID, id string) (dto.WriteInfo, error) {
	sale, err := uc.store.GetSale(id)
	if err != nil {
		return dto.WriteInfo{}, err
	}
	if sale == nil || (sale.OwnerID != "" && sale.OwnerID != ownerID) {
		return dto.WriteInfo{}, domain.ErrNotFound
	}
	receipt, err := uc.store.DeleteSale(id)
	if err != nil {
		return dto.WriteInfo{}, err
	}
	return writeInfo(receipt), nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:        s.ID,
		Date:      s.Date.Format("2006-01-02"),
		Client:    s.Client,
		Product:   s.Product,
		Quantity:  s.Quantity,
		UnitPrice: s.UnitPrice,
		Amount:    s.Amount,
		Payment:   s.Payment,
		Seller:    s.Seller,
		Register:  s.Register,
		Category:  s.Category,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
	}
}

// writeInfo traduce el recibo de la fachada al DTO del cliente.
func writeInfo(r storage.WriteReceipt) dto.WriteInfo {
	return dto.WriteInfo{Backend: r.Backend, Warning: r.Warning}
}
