package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/storage"
)

// StockUseCase casos de uso CRUD para productos en stock y registro manual
// de movimientos. El nombre del producto es único por usuario.
type StockUseCase struct {
	store *storage.Facade
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(store *storage.Facade) *StockUseCase {
	return &StockUseCase{store: store}
}

// Create crea un producto. InitialStock queda fijado al stock de alta.
func (uc *StockUseCase) Create(ownerID string, in dto.CreateStockItemRequest) (*dto.StockItemResponse, dto.WriteInfo, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Category) == "" {
		return nil, dto.WriteInfo{}, domain.ErrInvalidInput
	}
	existing, _ := uc.store.GetItemByName(ownerID, name)
	if existing != nil {
		return nil, dto.WriteInfo{}, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.StockItem{
		ID:             uuid.New().String(),
		OwnerID:        ownerID,
		Name:           name,
		Category:       strings.TrimSpace(in.Category),
		Subcategory:    strings.TrimSpace(in.Subcategory),
		CurrentStock:   in.CurrentStock,
		AlertThreshold: in.AlertThreshold,
		InitialStock:   in.CurrentStock,
		UnitPrice:      in.UnitPrice,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	receipt, err := uc.store.CreateItem(item)
	if err != nil {
		return nil, dto.WriteInfo{}, err
	}
	return toStockItemResponse(item), writeInfo(receipt), nil
}

// GetByID obtiene un producto del usuario.
func (uc *StockUseCase) GetByID(ownerID, id string) (*dto.StockItemResponse, error) {
	item, err := uc.store.GetItem(id)
	if err != nil {
		return nil, err
	}
	if item == nil || (item.OwnerID != "" && item.OwnerID != ownerID) {
		return nil, nil
	}
	return toStockItemResponse(item), nil
}

// List lista los productos del usuario.
func (uc *StockUseCase) List(ownerID string) ([]dto.StockItemResponse, error) {
	items, err := uc.store.ListItems(ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toStockItemResponse(it))
	}
	return out, nil
}

// Update edita los datos de un producto. CurrentStock no se toca aquí.
func (uc *StockUseCase) Update(ownerID, id string, in dto.UpdateStockItemRequest) (*dto.StockItemResponse, dto.WriteInfo, error) {
	item, err := uc.store.GetItem(id)
	if err != nil {
		return nil, dto.WriteInfo{}, err
	}
	if item == nil || (item.OwnerID != "" && item.OwnerID != ownerID) {
		return nil, dto.WriteInfo{}, nil
	}
	if name := strings.TrimSpace(in.Name); name != "" && name != item.Name {
		existing, _ := uc.store.GetItemByName(ownerID, name)
		if existing != nil && existing.ID != item.ID {
			return nil, dto.WriteInfo{}, domain.ErrDuplicate
		}
		item.Name = name
	}
	if c := strings.TrimSpace(in.Category); c != "" {
		item.Category = c
	}
	item.Subcategory = strings.TrimSpace(in.Subcategory)
	item.AlertThreshold = in.AlertThreshold
	if !in.UnitPrice.IsZero() {
		item.UnitPrice = in.UnitPrice
	}
	item.UpdatedAt = time.Now()

	receipt, err := uc.store.UpdateItem(item)
	if err != nil {
		return nil, dto.WriteInfo{}, err
	}
	return toStockItemResponse(item), writeInfo(receipt), nil
}

// Delete elimina un producto. Los movimientos ya registrados se conservan.
func (uc *StockUseCase) Delete(ownerID, id string) (dto.WriteInfo, error) {
	item, err := uc.store.GetItem(id)
	if err != nil {
		return dto.WriteInfo{}, err
	}
	if item == nil || (item.OwnerID != "" && item.OwnerID != ownerID) {
		return dto.WriteInfo{}, domain.ErrNotFound
	}
	receipt, err := uc.store.DeleteItem(id)
	if err != nil {
		return dto.WriteInfo{}, err
	}
	return writeInfo(receipt), nil
}

// RegisterMovement registra un movimiento manual de entrada o salida y
// ajusta el stock actual del producto. La cantidad siempre es positiva; el
// signo lo da el tipo.
func (uc *StockUseCase) RegisterMovement(ownerID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, dto.WriteInfo, error) {
	if in.Quantity <= 0 {
		return nil, dto.WriteInfo{}, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeIn && in.Type != entity.MovementTypeOut {
		return nil, dto.WriteInfo{}, domain.ErrInvalidInput
	}
	item, err := uc.store.GetItem(in.ItemID)
	if err != nil {
		return nil, dto.WriteInfo{}, err
	}
	if item == nil || (item.OwnerID != "" && item.OwnerID != ownerID) {
		return nil, dto.WriteInfo{}, domain.ErrNotFound
	}

	newStock := item.CurrentStock
	if in.Type == entity.MovementTypeIn {
		newStock += in.Quantity
	} else {
		newStock -= in.Quantity
	}
	if _, err := uc.store.UpdateStock(item.ID, newStock); err != nil {
		return nil, dto.WriteInfo{}, err
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		ItemID:    item.ID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Register:  in.Register,
		Seller:    in.Seller,
		CreatedAt: time.Now(),
	}
	receipt, err := uc.store.CreateMovement(mov)
	if err != nil {
		return nil, dto.WriteInfo{}, err
	}
	resp := toMovementResponse(mov)
	resp.ItemName = item.Name
	return resp, writeInfo(receipt), nil
}

// ListMovements lista los movimientos del usuario con el nombre del producto.
func (uc *StockUseCase) ListMovements(ownerID string) ([]dto.MovementResponse, error) {
	movs, err := uc.store.ListMovements(ownerID)
	if err != nil {
		return nil, err
	}
	items, err := uc.store.ListItems(ownerID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(items))
	for _, it := range items {
		names[it.ID] = it.Name
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		resp := toMovementResponse(m)
		resp.ItemName = names[m.ItemID]
		out = append(out, *resp)
	}
	return out, nil
}

func toStockItemResponse(it *entity.StockItem) *dto.StockItemResponse {
	if it == nil {
		return nil
	}
	return &dto.StockItemResponse{
		ID:             it.ID,
		Name:           it.Name,
		Category:       it.Category,
		Subcategory:    it.Subcategory,
		CurrentStock:   it.CurrentStock,
		AlertThreshold: it.AlertThreshold,
		InitialStock:   it.InitialStock,
		UnitPrice:      it.UnitPrice,
		BelowThreshold: it.BelowThreshold(),
		CreatedAt:      it.CreatedAt,
		UpdatedAt:      it.UpdatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:        m.ID,
		ItemID:    m.ItemID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		Register:  m.Register,
		Seller:    m.Seller,
		CreatedAt: m.CreatedAt,
	}
}
