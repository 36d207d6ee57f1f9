package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"lodge-backend/models"
	"lodge-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := os.Getenv("DB_PASS")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "lodge_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func jsonList(items ...string) datatypes.JSON {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, it := range items {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(fmt.Sprintf("%q", it))
	}
	sb.WriteByte(']')
	return datatypes.JSON(sb.String())
}

// SeedDatabase creates the bootstrap super admin and, on an empty catalog, a
// demo lodge so the public pages render something on first run.
func SeedDatabase() {
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		email := envOrDefault("SUPERADMIN_EMAIL", "admin@lodge.local")
		password := envOrDefault("SUPERADMIN_PASSWORD", "admin123")
		hash, err := utils.HashPassword(password)
		if err != nil {
			log.Printf("warning: failed to hash default super admin password: %v", err)
		} else {
			admin := models.User{
				Name:     "Super Admin",
				Email:    email,
				Password: hash,
				Role:     models.RoleSuperAdmin,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default super admin: %v", err)
			} else {
				log.Println("Default super admin seeded")
			}
		}
	}

	var lodgeCount int64
	DB.Model(&models.Lodge{}).Count(&lodgeCount)
	if lodgeCount == 0 {
		lodge := models.Lodge{
			Slug:          "bhakti-nivas",
			Name:          "Bhakti Nivas",
			Tagline:       "Simple rooms, two minutes from the temple",
			Description:   "A quiet lodge for pilgrims with clean rooms and filtered water on every floor.",
			Address:       "Temple Road, Old Town",
			Phone:         "+91-9000000001",
			Whatsapp:      "+91-9000000001",
			PriceStarting: 600,
			Availability:  models.LodgeAvailable,
			Amenities:     jsonList("Hot water", "Filtered water", "Parking"),
			Featured:      true,
			Rooms: []models.Room{
				{Type: models.RoomTypeNonAC, Name: "Basic Room", Price: 600, MaxOccupancy: 2, Available: 2, Amenities: jsonList("Fan", "Attached bath")},
				{Type: models.RoomTypeAC, Name: "AC Room", Price: 1100, MaxOccupancy: 3, Available: 3, Amenities: jsonList("AC", "Attached bath", "TV")},
				{Type: models.RoomTypeDormitory, Name: "Dormitory Bed", Price: 250, MaxOccupancy: 1, Available: 10, Amenities: jsonList("Shared bath", "Locker")},
			},
		}
		if err := DB.Create(&lodge).Error; err != nil {
			log.Printf("warning: failed to seed demo lodge: %v", err)
		} else {
			log.Println("Demo lodge seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// Parent tables first so FK constraints resolve.
	if err := DB.AutoMigrate(
		&models.Lodge{},
		&models.Room{},
		&models.User{},
		&models.Booking{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
