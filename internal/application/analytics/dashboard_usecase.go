// Package analytics calcula los indicadores del dashboard a partir de los
// datos persistidos. Todo se computa en memoria sobre las listas de la
// fachada para que funcione igual con backend remoto o local.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/storage"
)

// topProductsLimit productos que entran al ranking del dashboard.
const topProductsLimit = 5

// DashboardUseCase resumen de KPIs del día y del mes.
type DashboardUseCase struct {
	store *storage.Facade
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(store *storage.Facade) *DashboardUseCase {
	return &DashboardUseCase{store: store}
}

// Summary calcula ingresos y conteos de hoy y del mes en curso, totales por
// medio de pago, ranking de productos y alertas de stock bajo.
func (uc *DashboardUseCase) Summary(ownerID string) (*dto.DashboardSummaryDTO, error) {
	sales, err := uc.store.ListSales(ownerID)
	if err != nil {
		return nil, err
	}
	items, err := uc.store.ListItems(ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	today := now.Format("2006-01-02")
	month := now.Format("2006-01")

	out := &dto.DashboardSummaryDTO{
		TodayRevenue: decimal.Zero,
		MonthRevenue: decimal.Zero,
	}

	type paymentAgg struct {
		count int
		total decimal.Decimal
	}
	type productAgg struct {
		product  string
		quantity int
		revenue  decimal.Decimal
	}
	payments := make(map[string]*paymentAgg)
	var paymentOrder []string
	products := make(map[string]*productAgg)
	var productOrder []string

	for _, s := range sales {
		day := s.Date.Format("2006-01-02")
		if day == today {
			out.TodayRevenue = out.TodayRevenue.Add(s.Amount)
			out.TodaySales++
		}
		if s.Date.Format("2006-01") == month {
			out.MonthRevenue = out.MonthRevenue.Add(s.Amount)
			out.MonthSales++

			payment := s.Payment
			if payment == "" {
				payment = "sin especificar"
			}
			p, ok := payments[payment]
			if !ok {
				p = &paymentAgg{total: decimal.Zero}
				payments[payment] = p
				paymentOrder = append(paymentOrder, payment)
			}
			p.count++
			p.total = p.total.Add(s.Amount)

			pr, ok := products[s.Product]
			if !ok {
				pr = &productAgg{product: s.Product, revenue: decimal.Zero}
				products[s.Product] = pr
				productOrder = append(productOrder, s.Product)
			}
			pr.quantity += s.Quantity
			pr.revenue = pr.revenue.Add(s.Amount)
		}
	}

	for _, name := range paymentOrder {
		p := payments[name]
		out.PaymentTotals = append(out.PaymentTotals, dto.PaymentTotalDTO{
			Payment: name,
			Count:   p.count,
			Total:   p.total,
		})
	}

	ranked := make([]*productAgg, 0, len(productOrder))
	for _, name := range productOrder {
		ranked = append(ranked, products[name])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].quantity > ranked[j].quantity
	})
	for i, pr := range ranked {
		if i >= topProductsLimit {
			break
		}
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			Product:  pr.product,
			Quantity: pr.quantity,
			Revenue:  pr.revenue,
		})
	}

	for _, it := range items {
		if it.BelowThreshold() {
			out.LowStockAlerts = append(out.LowStockAlerts, dto.LowStockAlertDTO{
				ItemID:         it.ID,
				Name:           it.Name,
				CurrentStock:   it.CurrentStock,
				AlertThreshold: it.AlertThreshold,
			})
		}
	}
	return out, nil
}
