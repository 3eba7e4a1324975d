package dto

import "github.com/shopspring/decimal"

// ImportSaleRecord venta parseada del archivo, lista para confirmar.
type ImportSaleRecord struct {
	Row        int             `json:"row"`  // numeración visible de la hoja
	Date       string          `json:"date"` // YYYY-MM-DD
	Client     string          `json:"client,omitempty"`
	Product    string          `json:"product"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Amount     decimal.Decimal `json:"amount"`
	Payment    string          `json:"payment,omitempty"`
	Seller     string          `json:"seller,omitempty"`
	Register   string          `json:"register,omitempty"`
	Category   string          `json:"category,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	Duplicate  bool            `json:"duplicate"`
	ShouldKeep bool            `json:"should_keep"`
}

// ImportStockRecord producto parseado del archivo.
type ImportStockRecord struct {
	Row            int             `json:"row"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Subcategory    string          `json:"subcategory,omitempty"`
	CurrentStock   int             `json:"current_stock"`
	AlertThreshold int             `json:"alert_threshold"`
	InitialStock   int             `json:"initial_stock"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Duplicate      bool            `json:"duplicate"`
	ShouldKeep     bool            `json:"should_keep"`
}

// RowErrorDTO errores de una fila inválida.
type RowErrorDTO struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// ImportPreviewResponse resultado del análisis del archivo, antes del commit.
// El commit queda deshabilitado mientras Errors no esté vacío.
type ImportPreviewResponse struct {
	Kind       string              `json:"kind"` // sales | stock
	HeaderMap  map[string]string   `json:"header_map"`
	Sales      []ImportSaleRecord  `json:"sales,omitempty"`
	Items      []ImportStockRecord `json:"items,omitempty"`
	Errors     []RowErrorDTO       `json:"errors,omitempty"`
	Total      int                 `json:"total"`
	Duplicates int                 `json:"duplicates"`
}

// ImportCommitRequest registros confirmados por el operador. Solo se
// persisten los marcados con should_keep.
type ImportCommitRequest struct {
	Kind  string              `json:"kind"`
	Sales []ImportSaleRecord  `json:"sales,omitempty"`
	Items []ImportStockRecord `json:"items,omitempty"`
}

// UnmatchedProductDTO producto vendido sin entrada de stock: aviso, no error.
type UnmatchedProductDTO struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
	Sales    int    `json:"sales"`
}

// ImportCommitResponse resultado del commit.
type ImportCommitResponse struct {
	Imported  int                   `json:"imported"`
	Skipped   int                   `json:"skipped"` // descartados por el operador
	Movements int                   `json:"movements"`
	Unmatched []UnmatchedProductDTO `json:"unmatched,omitempty"`
	Write     WriteInfo             `json:"write"`
}
