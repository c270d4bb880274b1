package handlers

import (
	"strconv"
	"time"

	"github.com/bandkasse/bandkasse/database"
	"github.com/bandkasse/bandkasse/models"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type DashboardAnalyticsResponse struct {
	TotalMusicians        int64                  `json:"total_musicians"`
	TotalGroups           int64                  `json:"total_groups"`
	PendingPayoutRequests int64                  `json:"pending_payout_requests"`
	ConcertsLast30Days    int64                  `json:"concerts_last_30_days"`
	LedgerTotal           decimal.Decimal        `json:"ledger_total"`
	RecentBookings        []models.Booking       `json:"recent_bookings"`
	RecentPayoutRequests  []models.PayoutRequest `json:"recent_payout_requests"`
}

func GetDashboardAnalytics(c *fiber.Ctx) error {
	var response DashboardAnalyticsResponse

	database.DB.Model(&models.Musician{}).Where("archived = ?", false).Count(&response.TotalMusicians)
	database.DB.Model(&models.Group{}).Count(&response.TotalGroups)
	database.DB.Model(&models.PayoutRequest{}).Where("status = ?", models.PayoutStatusPending).Count(&response.PendingPayoutRequests)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&models.Concert{}).Where("date > ?", thirtyDaysAgo).Count(&response.ConcertsLast30Days)

	var ledgerTotal decimal.Decimal
	database.DB.Model(&models.Transaction{}).Select("COALESCE(SUM(amount), 0)").Row().Scan(&ledgerTotal)
	response.LedgerTotal = ledgerTotal

	database.DB.Order("created_at desc").Limit(5).Preload("Group").Find(&response.RecentBookings)
	database.DB.Order("requested_at desc").Limit(5).Preload("Musician").Find(&response.RecentPayoutRequests)

	return c.JSON(response)
}

func ListLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset := (page - 1) * limit

	query := database.DB.Model(&models.LogEntry{}).Order("created_at desc")
	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}

	var total int64
	query.Count(&total)

	var entries []models.LogEntry
	query.Offset(offset).Limit(limit).Find(&entries)

	return c.JSON(fiber.Map{
		"data": entries,
		"meta": fiber.Map{
			"total":        total,
			"current_page": page,
		},
	})
}
