package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/carewatch/backend/internal/db"
	"github.com/carewatch/backend/internal/models"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// SeedData is the shape of data/seed.json.
type SeedData struct {
	Users []struct {
		Username   string  `json:"username"`
		Password   string  `json:"password"`
		Role       string  `json:"role"`
		ShiftStart *string `json:"shiftStart"`
		ShiftEnd   *string `json:"shiftEnd"`
	} `json:"users"`
	Residents []struct {
		FullName            string `json:"fullName"`
		NeedsWalkingSupport bool   `json:"needsWalkingSupport"`
	} `json:"residents"`
	Professionals []struct {
		Code     string `json:"code"`
		Name     string `json:"name"`
		Schedule string `json:"schedule"`
		Status   string `json:"status"`
	} `json:"professionals"`
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	db.Connect()
	db.AutoMigrate()

	path := "data/seed.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read seed file %s: %v", path, err)
	}

	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}

	seedUsers(data)
	seedResidents(data)
	seedProfessionals(data)

	log.Println("✅ Database seeding completed successfully!")
}

func seedUsers(data SeedData) {
	for _, u := range data.Users {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Error hashing password for %s: %v", u.Username, err)
			continue
		}

		role := models.RoleWorker
		if u.Role == "admin" || u.Role == "ADMIN" {
			role = models.RoleAdmin
		}

		user := models.User{
			Username:   u.Username,
			Password:   string(hashedPassword),
			Role:       role,
			ShiftStart: u.ShiftStart,
			ShiftEnd:   u.ShiftEnd,
		}

		var existing models.User
		if err := db.DB.Where("username = ?", user.Username).First(&existing).Error; err != nil {
			if err := db.DB.Create(&user).Error; err != nil {
				log.Printf("Error creating user %s: %v", user.Username, err)
			} else {
				log.Printf("✅ Created user: %s (%s)", user.Username, user.Role)
			}
		} else {
			log.Printf("⚠️  User already exists: %s", user.Username)
		}
	}
}

func seedResidents(data SeedData) {
	for _, r := range data.Residents {
		var existing models.Resident
		if err := db.DB.Where("full_name = ?", r.FullName).First(&existing).Error; err == nil {
			log.Printf("⚠️  Resident already exists: %s", r.FullName)
			continue
		}
		resident := models.Resident{
			FullName:            r.FullName,
			NeedsWalkingSupport: r.NeedsWalkingSupport,
		}
		if err := db.DB.Create(&resident).Error; err != nil {
			log.Printf("Error creating resident %s: %v", r.FullName, err)
		} else {
			log.Printf("✅ Created resident: %s", r.FullName)
		}
	}
}

func seedProfessionals(data SeedData) {
	for _, p := range data.Professionals {
		var existing models.Professional
		if err := db.DB.Where("code = ?", p.Code).First(&existing).Error; err == nil {
			log.Printf("⚠️  Professional already exists: %s", p.Code)
			continue
		}
		status := models.ProfessionalStatus(p.Status)
		if status != models.ProfessionalActive && status != models.ProfessionalInactive {
			status = models.ProfessionalActive
		}
		professional := models.Professional{
			Code:     p.Code,
			Name:     p.Name,
			Schedule: p.Schedule,
			Status:   status,
		}
		if err := db.DB.Create(&professional).Error; err != nil {
			log.Printf("Error creating professional %s: %v", p.Code, err)
		} else {
			log.Printf("✅ Created professional: %s (%s)", p.Code, p.Name)
		}
	}
}
