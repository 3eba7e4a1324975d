// Package export arma el paquete de exportación completa: los datos del
// usuario en CSV, JSON y XML, un resumen de texto y el informe PDF, todo en
// un único ZIP.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/archive"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/storage"
)

// ExportUseCase genera el paquete de exportación.
type ExportUseCase struct {
	store   *storage.Facade
	reports *pdf.SalesReportGenerator
	appName string
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(store *storage.Facade, reports *pdf.SalesReportGenerator, appName string) *ExportUseCase {
	return &ExportUseCase{store: store, reports: reports, appName: appName}
}

// Export reúne los datos del usuario y devuelve el nombre y los bytes del ZIP.
func (uc *ExportUseCase) Export(ownerID string) (string, []byte, error) {
	sales, err := uc.store.ListSales(ownerID)
	if err != nil {
		return "", nil, err
	}
	items, err := uc.store.ListItems(ownerID)
	if err != nil {
		return "", nil, err
	}
	movs, err := uc.store.ListMovements(ownerID)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()

	salesCSV, err := salesToCSV(sales)
	if err != nil {
		return "", nil, err
	}
	stockCSV, err := itemsToCSV(items)
	if err != nil {
		return "", nil, err
	}
	movsCSV, err := movementsToCSV(movs)
	if err != nil {
		return "", nil, err
	}
	dump, err := json.MarshalIndent(map[string]interface{}{
		"exported_at": now.Format(time.RFC3339),
		"sales":       sales,
		"stock":       items,
		"movements":   movs,
	}, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("serializar datos: %w", err)
	}
	xmlBytes, err := salesToXML(sales, now)
	if err != nil {
		return "", nil, err
	}
	report, err := uc.reports.Generate(uc.appName, sales, items, now)
	if err != nil {
		return "", nil, err
	}

	bundle, err := archive.BuildBundle([]archive.File{
		{Name: "ventas.csv", Data: salesCSV},
		{Name: "stock.csv", Data: stockCSV},
		{Name: "movimientos.csv", Data: movsCSV},
		{Name: "datos.json", Data: dump},
		{Name: "ventas.xml", Data: xmlBytes},
		{Name: "resumen.txt", Data: summary(sales, items, movs, now)},
		{Name: "informe.pdf", Data: report},
	})
	if err != nil {
		return "", nil, err
	}
	return archive.BundleName(now), bundle, nil
}

// ── serializadores ───────────────────────────────────────────────────────────

func salesToCSV(sales []*entity.Sale) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"fecha", "cliente", "producto", "cantidad", "precio_unitario", "importe", "pago", "vendedor", "caja", "categoria", "notas"}); err != nil {
		return nil, fmt.Errorf("escribir CSV de ventas: %w", err)
	}
	for _, s := range sales {
		record := []string{
			s.Date.Format("2006-01-02"), s.Client, s.Product,
			fmt.Sprintf("%d", s.Quantity), s.UnitPrice.StringFixed(2),
			s.Amount.StringFixed(2), s.Payment, s.Seller, s.Register,
			s.Category, s.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("escribir CSV de ventas: %w", err)
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func itemsToCSV(items []*entity.StockItem) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"nombre", "categoria", "subcategoria", "stock_actual", "umbral_alerta", "stock_inicial", "precio_unitario"}); err != nil {
		return nil, fmt.Errorf("escribir CSV de stock: %w", err)
	}
	for _, it := range items {
		record := []string{
			it.Name, it.Category, it.Subcategory,
			fmt.Sprintf("%d", it.CurrentStock),
			fmt.Sprintf("%d", it.AlertThreshold),
			fmt.Sprintf("%d", it.InitialStock),
			it.UnitPrice.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("escribir CSV de stock: %w", err)
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func movementsToCSV(movs []*entity.StockMovement) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"fecha", "producto_id", "tipo", "cantidad", "motivo", "caja", "vendedor"}); err != nil {
		return nil, fmt.Errorf("escribir CSV de movimientos: %w", err)
	}
	for _, m := range movs {
		record := []string{
			m.CreatedAt.Format("2006-01-02 15:04:05"), m.ItemID, m.Type,
			fmt.Sprintf("%d", m.Quantity), m.Reason, m.Register, m.Seller,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("escribir CSV de movimientos: %w", err)
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// salesToXML serializa las ventas con etree.
func salesToXML(sales []*entity.Sale, generatedAt time.Time) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("ventas")
	root.CreateAttr("generado", generatedAt.Format(time.RFC3339))

	for _, s := range sales {
		venta := root.CreateElement("venta")
		venta.CreateAttr("id", s.ID)
		venta.CreateElement("fecha").SetText(s.Date.Format("2006-01-02"))
		venta.CreateElement("producto").SetText(s.Product)
		venta.CreateElement("cantidad").SetText(fmt.Sprintf("%d", s.Quantity))
		venta.CreateElement("precioUnitario").SetText(s.UnitPrice.StringFixed(2))
		venta.CreateElement("importe").SetText(s.Amount.StringFixed(2))
		if s.Client != "" {
			venta.CreateElement("cliente").SetText(s.Client)
		}
		if s.Payment != "" {
			venta.CreateElement("pago").SetText(s.Payment)
		}
		if s.Seller != "" {
			venta.CreateElement("vendedor").SetText(s.Seller)
		}
		if s.Register != "" {
			venta.CreateElement("caja").SetText(s.Register)
		}
		if s.Category != "" {
			venta.CreateElement("categoria").SetText(s.Category)
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializar XML de ventas: %w", err)
	}
	return out, nil
}

// summary arma el resumen legible que acompaña al paquete.
func summary(sales []*entity.Sale, items []*entity.StockItem, movs []*entity.StockMovement, now time.Time) []byte {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Amount)
	}
	low := 0
	for _, it := range items {
		if it.BelowThreshold() {
			low++
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Exportación de datos - %s\n", now.Format("02/01/2006 15:04"))
	fmt.Fprintf(&buf, "\n")
	fmt.Fprintf(&buf, "Ventas registradas:    %d\n", len(sales))
	fmt.Fprintf(&buf, "Ingresos totales:      %s €\n", total.StringFixed(2))
	fmt.Fprintf(&buf, "Productos en stock:    %d\n", len(items))
	fmt.Fprintf(&buf, "Bajo umbral de alerta: %d\n", low)
	fmt.Fprintf(&buf, "Movimientos de stock:  %d\n", len(movs))
	return buf.Bytes()
}
