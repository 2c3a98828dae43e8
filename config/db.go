package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hostel-backend/models"

	"golang.org/x/crypto/bcrypt"
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
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hostel_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase is idempotent: a default admin, the four gender-restricted
// blocks, and five floor-1 rooms for any block created empty.
func SeedDatabase() {
	// ---------------- Admin ----------------
	var adminCount int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				Username: "admin",
				Email:    "admin@hostel.com",
				Password: string(hash),
				FullName: "System Administrator",
				Role:     models.RoleAdmin,
				Phone:    "0000000000",
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded (change the password after first login)")
			}
		}
	}

	// ---------------- Blocks ----------------
	blocks := []models.Block{
		{Name: "Block A", Gender: "male", Description: "Boys Hostel Block A"},
		{Name: "Block B", Gender: "female", Description: "Girls Hostel Block B"},
		{Name: "Block C", Gender: "male", Description: "Boys Hostel Block C"},
		{Name: "Block D", Gender: "female", Description: "Girls Hostel Block D"},
	}
	for i := range blocks {
		var existing models.Block
		err := DB.Where("name = ?", blocks[i].Name).First(&existing).Error
		if err == nil && existing.ID != 0 {
			continue
		}
		if err := DB.Create(&blocks[i]).Error; err != nil {
			log.Printf("warning: failed to create block %s: %v", blocks[i].Name, err)
		} else {
			log.Printf("Block %s seeded", blocks[i].Name)
		}
	}

	// ---------------- Rooms ----------------
	var allBlocks []models.Block
	DB.Find(&allBlocks)
	for _, block := range allBlocks {
		var roomCount int64
		DB.Model(&models.Room{}).Where("block_id = ?", block.ID).Count(&roomCount)
		if roomCount > 0 {
			continue
		}

		// Odd room numbers get AC at the higher rate, even ones Non-AC.
		for i, num := range []string{"101", "102", "103", "104", "105"} {
			room := models.Room{
				BlockID:    block.ID,
				Floor:      1,
				RoomNumber: num,
				Capacity:   2,
				Status:     models.RoomAvailable,
			}
			if i%2 == 0 {
				room.RoomType = "AC"
				room.Price = 5000
			} else {
				room.RoomType = "Non-AC"
				room.Price = 3500
			}
			if err := DB.Create(&room).Error; err != nil {
				log.Printf("warning: failed to seed room %s in %s: %v", num, block.Name, err)
			}
		}
		log.Printf("Created 5 rooms for %s", block.Name)
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

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Block{},
		&models.Room{},
		&models.Application{},
		&models.Allocation{},
		&models.Complaint{},
		&models.Fee{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
