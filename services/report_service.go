package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/cuecafe/pos/models"
)

// ReportService derives revenue and popularity rollups from paid orders.
// Revenue bucketing is done in Go over the fetched rows; only the popularity
// rollup pushes a join down to the database.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type DailySummary struct {
	TotalOrders  int64   `json:"total_orders"`
	TotalRevenue float64 `json:"total_revenue"`
}

type RevenueDataPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type PopularityDataPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Fill  string `json:"fill"`
}

// Chart palette cycled over the popularity ranking, render-side tokens.
var popularityPalette = []string{
	"hsl(var(--chart-1))",
	"hsl(var(--chart-2))",
	"hsl(var(--chart-3))",
	"hsl(var(--chart-4))",
	"hsl(var(--chart-5))",
}

const popularityLimit = 8

// DailySummary counts paid orders created within the current calendar day,
// local midnight to midnight.
func (s *ReportService) DailySummary() (DailySummary, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	var orders []models.Order
	err := s.DB.
		Where("status = ? AND created_at >= ? AND created_at < ?", models.OrderStatusPaid, start, end).
		Find(&orders).Error
	if err != nil {
		return DailySummary{}, err
	}

	summary := DailySummary{TotalOrders: int64(len(orders))}
	for _, o := range orders {
		summary.TotalRevenue += o.TotalAmount
	}
	return summary, nil
}

// reportRange describes a window: how many buckets, and how a timestamp
// truncates to its bucket start.
type reportRange struct {
	buckets  int
	truncate func(time.Time) time.Time
	step     func(time.Time, int) time.Time
}

func truncDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func truncMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func truncYear(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
}

func resolveRange(rng string) (reportRange, error) {
	switch rng {
	case "5days":
		return reportRange{5, truncDay, func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }}, nil
	case "7days":
		return reportRange{7, truncDay, func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }}, nil
	case "15days":
		return reportRange{15, truncDay, func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }}, nil
	case "month":
		return reportRange{12, truncMonth, func(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) }}, nil
	case "year":
		return reportRange{5, truncYear, func(t time.Time, n int) time.Time { return t.AddDate(n, 0, 0) }}, nil
	}
	return reportRange{}, FieldErrors{"range": "Range must be 5days, 7days, 15days, month or year"}
}

// RevenueReport buckets paid-order revenue over the range, one data point per
// bucket even when revenue is zero, labeled by the truncated bucket start.
func (s *ReportService) RevenueReport(rng string) ([]RevenueDataPoint, error) {
	rr, err := resolveRange(rng)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	first := rr.step(rr.truncate(now), -(rr.buckets - 1))

	var orders []models.Order
	if err := s.DB.
		Where("status = ? AND created_at >= ?", models.OrderStatusPaid, first).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	index := make(map[string]int, rr.buckets)
	points := make([]RevenueDataPoint, rr.buckets)
	for i := 0; i < rr.buckets; i++ {
		label := rr.step(first, i).Format("2006-01-02")
		index[label] = i
		points[i] = RevenueDataPoint{Date: label}
	}

	for _, o := range orders {
		label := rr.truncate(o.CreatedAt).Format("2006-01-02")
		if i, ok := index[label]; ok {
			points[i].Revenue += o.TotalAmount
		}
	}
	return points, nil
}

// ItemPopularity sums quantities per item name across paid orders in the
// range, descending, top 8, with a cyclic chart color per slice.
func (s *ReportService) ItemPopularity(rng string) ([]PopularityDataPoint, error) {
	rr, err := resolveRange(rng)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	first := rr.step(rr.truncate(now), -(rr.buckets - 1))

	var rows []PopularityDataPoint
	err = s.DB.Model(&models.OrderItem{}).
		Select("order_items.name AS name, SUM(order_items.quantity) AS value").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ? AND orders.created_at >= ?", models.OrderStatusPaid, first).
		Group("order_items.name").
		Order("value DESC").
		Limit(popularityLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		rows[i].Fill = popularityPalette[i%len(popularityPalette)]
	}
	return rows, nil
}
