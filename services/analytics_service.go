package services

import (
	"errors"
	"sort"
	"time"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

// AnalyticsService reads committed orders and never mutates them.
type AnalyticsService struct {
	Repo     *repository.AnalyticsRepository
	ShopRepo *repository.ShopRepository
}

func NewAnalyticsService(repo *repository.AnalyticsRepository, shopRepo *repository.ShopRepository) *AnalyticsService {
	return &AnalyticsService{Repo: repo, ShopRepo: shopRepo}
}

// ----- Shop sales summary -----

type RevenueMetrics struct {
	TotalOrders       int64   `json:"totalOrders"`
	TotalRevenue      float64 `json:"totalRevenue"`
	AverageTicketSize float64 `json:"averageTicketSize"`
	PaidRevenue       float64 `json:"paidRevenue"`
}

type SalesSummary struct {
	OrderStatusBreakdown   []repository.StatusCount `json:"orderStatusBreakdown"`
	PaymentStatusBreakdown []repository.StatusCount `json:"paymentStatusBreakdown"`
	RevenueMetrics         RevenueMetrics           `json:"revenueMetrics"`
	TopProducts            []repository.ProductStat `json:"topProducts"`
	HourlyDemand           []repository.HourCount   `json:"hourlyDemand"`
}

type SalesSummaryOut struct {
	ShopID      uint         `json:"shopId"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Summary     SalesSummary `json:"summary"`
}

// ShopSalesSummary computes the five report facets independently over the same
// order set. A shop with no orders yields empty facets, not an error.
func (s *AnalyticsService) ShopSalesSummary(actor *entity.User, shopID uint) (*SalesSummaryOut, error) {
	shop, err := s.ShopRepo.FindByID(shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	if shop.Archived {
		return nil, ErrShopNotFound
	}
	if !IsShopStaff(actor, shop) {
		return nil, ErrForbidden
	}

	statuses, err := s.Repo.StatusBreakdown(shopID)
	if err != nil {
		return nil, err
	}
	payments, err := s.Repo.PaymentBreakdown(shopID)
	if err != nil {
		return nil, err
	}
	revenue, err := s.Repo.RevenueMetrics(shopID)
	if err != nil {
		return nil, err
	}
	products, err := s.Repo.TopProducts(shopID, 5)
	if err != nil {
		return nil, err
	}
	hours, err := s.Repo.HourlyDemand(shopID)
	if err != nil {
		return nil, err
	}

	for i := range products {
		products[i].TotalSales = Round2(products[i].TotalSales)
	}

	out := &SalesSummaryOut{
		ShopID:      shopID,
		GeneratedAt: time.Now().UTC(),
		Summary: SalesSummary{
			OrderStatusBreakdown:   statuses,
			PaymentStatusBreakdown: payments,
			RevenueMetrics: RevenueMetrics{
				TotalOrders:       revenue.TotalOrders,
				TotalRevenue:      Round2(revenue.TotalRevenue),
				AverageTicketSize: Round2(revenue.AverageTicketSize),
				PaidRevenue:       Round2(revenue.PaidRevenue),
			},
			TopProducts:  products,
			HourlyDemand: hours,
		},
	}
	return out, nil
}

// ----- Staff performance -----

type StatusStat struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type StaffStats struct {
	UserID       uint         `json:"userId"`
	FullName     string       `json:"fullName"`
	Email        string       `json:"email"`
	TotalOrders  int64        `json:"totalOrders"`
	TotalRevenue float64      `json:"totalRevenue"`
	StatusStats  []StatusStat `json:"statusStats"`
}

type StaffPerformanceOut struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Staff       []StaffStats `json:"staff"`
}

// StaffPerformance ranks cashiers over the shops where the actor is owner or
// staff. The scope is derived from shop membership, not from the admin role.
func (s *AnalyticsService) StaffPerformance(actor *entity.User) (*StaffPerformanceOut, error) {
	shopIDs, err := s.ShopRepo.ShopIDsForStaff(actor.ID)
	if err != nil {
		return nil, err
	}

	rows, err := s.Repo.CashierStatusStats(shopIDs)
	if err != nil {
		return nil, err
	}

	// Regroup (cashier, status) rows per cashier.
	byCashier := make(map[uint]*StaffStats)
	order := make([]uint, 0)
	for _, row := range rows {
		st, ok := byCashier[row.CashierID]
		if !ok {
			st = &StaffStats{UserID: row.CashierID}
			byCashier[row.CashierID] = st
			order = append(order, row.CashierID)
		}
		st.TotalOrders += row.OrderCount
		st.TotalRevenue += row.TotalRevenue
		st.StatusStats = append(st.StatusStats, StatusStat{Status: row.Status, Count: row.OrderCount})
	}

	users, err := s.Repo.UsersByIDs(order)
	if err != nil {
		return nil, err
	}
	identity := make(map[uint]entity.User, len(users))
	for _, u := range users {
		identity[u.ID] = u
	}

	staff := make([]StaffStats, 0, len(byCashier))
	for _, id := range order {
		st := byCashier[id]
		if u, ok := identity[id]; ok {
			st.FullName = u.FullName
			st.Email = u.Email
		}
		st.TotalRevenue = Round2(st.TotalRevenue)
		staff = append(staff, *st)
	}

	sort.Slice(staff, func(i, j int) bool {
		return staff[i].TotalRevenue > staff[j].TotalRevenue
	})

	return &StaffPerformanceOut{GeneratedAt: time.Now().UTC(), Staff: staff}, nil
}
