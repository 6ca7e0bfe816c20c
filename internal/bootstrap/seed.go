package bootstrap

import (
	"log"

	"anoa.com/placementportal/internal/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.StudentProfile{},
		&entity.CompanyProfile{},
		&entity.Job{},
		&entity.Application{},
		&entity.Notification{},
	)
}

// SeedAdminUser creates the development administrator when it is missing.
func SeedAdminUser(db *gorm.DB, email, password string) error {
	email = entity.NormalizeEmail(email)

	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := entity.User{
		Email:        email,
		PasswordHash: string(hashedPasswordBytes),
		Role:         entity.RoleAdmin,
		Approved:     true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("✅ Admin user seeded successfully")
	log.Printf("   Email: %s", email)

	return nil
}
