package services

import (
	"context"
	"fmt"

	"geobike_backend/internal/models"
	"geobike_backend/internal/repositories"
)

const recentSalesLimit = 5

type ReportService interface {
	GetSummary(ctx context.Context) (*models.ReportSummary, error)
	GetProductSales(ctx context.Context) ([]models.ProductSalesRow, error)
}

type reportService struct {
	customerRepo      repositories.CustomerRepository
	productRepo       repositories.ProductRepository
	orderRepo         repositories.OrderRepository
	saleRepo          repositories.SaleRepository
	lowStockThreshold int
}

func NewReportService(
	cr repositories.CustomerRepository,
	pr repositories.ProductRepository,
	or repositories.OrderRepository,
	sr repositories.SaleRepository,
	lowStockThreshold int,
) ReportService {
	return &reportService{customerRepo: cr, productRepo: pr, orderRepo: or, saleRepo: sr, lowStockThreshold: lowStockThreshold}
}

// GetSummary reads persisted line prices and order totals only.
func (s *reportService) GetSummary(ctx context.Context) (*models.ReportSummary, error) {
	var (
		summary models.ReportSummary
		err     error
	)
	if summary.CustomerCount, err = s.customerRepo.CountCustomers(ctx); err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	if summary.ActiveProductCount, err = s.productRepo.CountActiveProducts(ctx); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if summary.PendingOrders, err = s.orderRepo.CountOrdersByStatus(ctx, models.OrderStatusPending); err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}
	if summary.LowStockProducts, err = s.productRepo.GetLowStockProducts(ctx, s.lowStockThreshold); err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}
	if summary.TotalSold, err = s.saleRepo.SumSoldAmount(ctx); err != nil {
		return nil, fmt.Errorf("failed to sum sales: %w", err)
	}
	if summary.TotalOrdered, err = s.orderRepo.SumOrderTotals(ctx, models.OrderStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to sum orders: %w", err)
	}
	if summary.RecentSales, err = s.saleRepo.GetRecentSales(ctx, recentSalesLimit); err != nil {
		return nil, fmt.Errorf("failed to list recent sales: %w", err)
	}
	if summary.LowStockProducts == nil {
		summary.LowStockProducts = []models.LowStockProduct{}
	}
	if summary.RecentSales == nil {
		summary.RecentSales = []models.Sale{}
	}
	return &summary, nil
}

func (s *reportService) GetProductSales(ctx context.Context) ([]models.ProductSalesRow, error) {
	rows, err := s.saleRepo.GetProductSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate product sales: %w", err)
	}
	if rows == nil {
		rows = []models.ProductSalesRow{}
	}
	return rows, nil
}
