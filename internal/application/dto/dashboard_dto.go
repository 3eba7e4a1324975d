package dto

import "github.com/shopspring/decimal"

// PaymentTotalDTO total vendido por medio de pago.
type PaymentTotalDTO struct {
	Payment string          `json:"payment"`
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
}

// TopProductDTO producto más vendido del período.
type TopProductDTO struct {
	Product  string          `json:"product"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// LowStockAlertDTO producto en o bajo su umbral de alerta.
type LowStockAlertDTO struct {
	ItemID         string `json:"item_id"`
	Name           string `json:"name"`
	CurrentStock   int    `json:"current_stock"`
	AlertThreshold int    `json:"alert_threshold"`
}

// DashboardSummaryDTO resumen del día y del mes en curso.
type DashboardSummaryDTO struct {
	TodayRevenue   decimal.Decimal    `json:"today_revenue"`
	TodaySales     int                `json:"today_sales"`
	MonthRevenue   decimal.Decimal    `json:"month_revenue"`
	MonthSales     int                `json:"month_sales"`
	PaymentTotals  []PaymentTotalDTO  `json:"payment_totals"`
	TopProducts    []TopProductDTO    `json:"top_products"`
	LowStockAlerts []LowStockAlertDTO `json:"low_stock_alerts"`
}
