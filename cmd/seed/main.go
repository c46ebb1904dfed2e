// Command seed populates the database with demo accounts and sweets.
//
//	go run ./cmd/seed          # no-op when sweets already exist
//	go run ./cmd/seed --force  # wipe and reseed
package main

import (
	"os"

	"go-sweetshop/internal/config"
	"go-sweetshop/internal/model"
	"go-sweetshop/pkg/database"
	"go-sweetshop/pkg/logger"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	db, err := database.Connect(cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.AutoMigrate(&model.User{}, &model.Sweet{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	force := len(os.Args) > 1 && os.Args[1] == "--force"

	var count int64
	db.Model(&model.Sweet{}).Count(&count)
	if count > 0 {
		if !force {
			log.Warn().Msg("database already has data, use --force to reseed")
			return
		}
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Sweet{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.User{})
		log.Info().Msg("cleared existing data")
	}

	seedUsers(db)
	seedSweets(db)
	log.Info().Msg("seed complete")
}

func seedUsers(db *gorm.DB) {
	log := logger.Get()

	admin := &model.User{
		EmailAddress:    "admin@sweetshop.com",
		FullName:        "Shop Admin",
		IsAdministrator: true,
	}
	if err := admin.SetPassword("admin123"); err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}

	customer := &model.User{
		EmailAddress:    "user@sweetshop.com",
		FullName:        "Regular Customer",
		IsAdministrator: false,
	}
	if err := customer.SetPassword("user1234"); err != nil {
		log.Fatal().Err(err).Msg("failed to hash customer password")
	}

	for _, u := range []*model.User{admin, customer} {
		if err := db.Create(u).Error; err != nil {
			log.Warn().Err(err).Str("email", u.EmailAddress).Msg("failed to create user")
		} else {
			log.Info().Str("email", u.EmailAddress).Msg("user created")
		}
	}
}

func seedSweets(db *gorm.DB) {
	sweets := []model.Sweet{
		{Name: "Kaju Katli", Category: "Traditional", Price: 450.00, QuantityInStock: 50, Description: "Premium cashew fudge with silver foil"},
		{Name: "Chocolate Truffle", Category: "Chocolate", Price: 299.00, QuantityInStock: 50, Description: "Rich dark chocolate truffles with creamy center"},
		{Name: "Gulab Jamun", Category: "Traditional", Price: 180.00, QuantityInStock: 75, Description: "Soft milk dumplings in sugar syrup"},
		{Name: "Gummy Bears", Category: "Gummy", Price: 120.00, QuantityInStock: 200, Description: "Colorful fruit-flavored gummy bears"},
		{Name: "Rasgulla", Category: "Traditional", Price: 220.00, QuantityInStock: 100, Description: "Spongy cottage cheese balls in sugar syrup"},
		{Name: "Strawberry Lollipop", Category: "Lollipop", Price: 20.00, QuantityInStock: 150, Description: "Sweet strawberry flavored lollipops"},
		{Name: "Soan Papdi", Category: "Traditional", Price: 160.00, QuantityInStock: 40, Description: "Flaky crispy sweet with cardamom"},
		{Name: "Jalebi", Category: "Traditional", Price: 140.00, QuantityInStock: 180, Description: "Crispy spiral sweets soaked in syrup"},
		{Name: "Dairy Milk Silk", Category: "Chocolate", Price: 85.00, QuantityInStock: 60, Description: "Smooth and creamy milk chocolate"},
		{Name: "Cotton Candy", Category: "Candy", Price: 50.00, QuantityInStock: 0, Description: "Fluffy pink cotton candy"},
		{Name: "Motichoor Ladoo", Category: "Traditional", Price: 280.00, QuantityInStock: 250, Description: "Fine boondi ladoos with nuts"},
		{Name: "5 Star Chocolate", Category: "Chocolate", Price: 25.00, QuantityInStock: 120, Description: "Classic caramel filled chocolate bar"},
		{Name: "Mysore Pak", Category: "Traditional", Price: 320.00, QuantityInStock: 90, Description: "Rich gram flour sweet with ghee"},
		{Name: "Barfi Mix", Category: "Traditional", Price: 380.00, QuantityInStock: 45, Description: "Assorted barfi - kaju, pista, badam"},
	}

	log := logger.Get()
	if err := db.Create(&sweets).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to seed sweets")
	}
	log.Info().Int("count", len(sweets)).Msg("sweets seeded")
}
