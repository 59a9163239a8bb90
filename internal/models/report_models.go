package models

import "github.com/shopspring/decimal"

// LowStockProduct is a product at or below the reorder threshold.
type LowStockProduct struct {
	ProductID int64  `json:"productoId"`
	Name      string `json:"nombre"`
	Stock     int    `json:"stock"`
}

// ReportSummary is the back-office dashboard payload.
type ReportSummary struct {
	CustomerCount      int64             `json:"totalClientes"`
	ActiveProductCount int64             `json:"productosActivos"`
	PendingOrders      int64             `json:"pedidosPendientes"`
	LowStockProducts   []LowStockProduct `json:"productosBajoStock"`
	TotalSold          decimal.Decimal   `json:"totalVendido"`
	TotalOrdered       decimal.Decimal   `json:"totalPedidos"`
	RecentSales        []Sale            `json:"ventasRecientes"`
}

// ProductSalesRow aggregates sale lines of one product.
type ProductSalesRow struct {
	ProductID    int64           `json:"productoId"`
	Name         string          `json:"nombre"`
	QuantitySold int64           `json:"cantidadVendida"`
	Revenue      decimal.Decimal `json:"ingresos"`
}
