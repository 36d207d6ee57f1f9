package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"lodge-backend/models"
	"lodge-backend/utils"
)

const statsCacheTTL = 60 * time.Second

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalBookings  int64            `json:"totalBookings"`
	ByStatus       map[string]int64 `json:"byStatus"`
	Revenue        float64          `json:"revenue"`
	RoomsAvailable int64            `json:"roomsAvailable"`
	Lodges         int64            `json:"lodges"`
}

// StatsService computes dashboard aggregates. Redis is optional; with no
// client the numbers are computed on every request.
type StatsService struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewStatsService(db *gorm.DB, rdb *redis.Client) *StatsService {
	return &StatsService{DB: db, Redis: rdb}
}

func statsCacheKey(claims *utils.AuthClaims) string {
	if claims != nil && !claims.SuperAdmin() && claims.LodgeID != nil {
		return fmt.Sprintf("dashboard:lodge:%d", *claims.LodgeID)
	}
	return "dashboard:all"
}

// Dashboard returns stats scoped to the caller: a lodge admin sees only their
// lodge, a super admin sees everything.
func (s *StatsService) Dashboard(ctx context.Context, claims *utils.AuthClaims) (*DashboardStats, error) {
	key := statsCacheKey(claims)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var stats DashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	var lodgeID *uint
	if claims != nil && !claims.SuperAdmin() && claims.LodgeID != nil {
		lodgeID = claims.LodgeID
	}

	scoped := func(q *gorm.DB) *gorm.DB {
		if lodgeID != nil {
			return q.Where("lodge_id = ?", *lodgeID)
		}
		return q
	}

	stats := &DashboardStats{ByStatus: map[string]int64{}}

	if err := scoped(s.DB.Model(&models.Booking{})).Count(&stats.TotalBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	type statusRow struct {
		Status string
		N      int64
	}
	var rows []statusRow
	if err := scoped(s.DB.Model(&models.Booking{})).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to group bookings: %w", err)
	}
	for _, r := range rows {
		stats.ByStatus[r.Status] = r.N
	}

	if err := scoped(s.DB.Model(&models.Booking{})).
		Where("payment_status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.Revenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	if err := scoped(s.DB.Model(&models.Room{})).
		Select("COALESCE(SUM(available), 0)").
		Scan(&stats.RoomsAvailable).Error; err != nil {
		return nil, fmt.Errorf("failed to sum room stock: %w", err)
	}

	if lodgeID != nil {
		stats.Lodges = 1
	} else if err := s.DB.Model(&models.Lodge{}).Count(&stats.Lodges).Error; err != nil {
		return nil, fmt.Errorf("failed to count lodges: %w", err)
	}

	if s.Redis != nil {
		if blob, err := json.Marshal(stats); err == nil {
			if err := s.Redis.Set(ctx, key, blob, statsCacheTTL).Err(); err != nil {
				log.Printf("warning: dashboard cache write failed: %v", err)
			}
		}
	}

	return stats, nil
}
