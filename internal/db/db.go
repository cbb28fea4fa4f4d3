package db

import (
	"context"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/accesshub/campus-back/internal/models"
)

var DB *gorm.DB

func InitDB(dsn string) {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Credential{},
		&models.Room{},
		&models.DeviceBoard{},
		&models.AccessLog{},
		&models.Subject{},
		&models.Section{},
		&models.SectionSubject{},
		&models.SectionSubjectStudent{},
		&models.Schedule{},
		&models.SchedulePeriod{},
		&models.SectionSubjectSchedule{},
		&models.StudentSchedule{},
		&models.ScheduleSession{},
		&models.ScheduleAttendance{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	log.Println("database connected and migrated")
}

func PingDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// UserByID loads a user, optionally requiring a role. Wrong role and
// missing row both come back as gorm.ErrRecordNotFound so callers can
// surface a single "invalid reference" validation error.
func UserByID(ctx context.Context, id uint, role string) (*models.User, error) {
	var user models.User
	tx := DB.WithContext(ctx)
	if role != "" {
		tx = tx.Where("role = ?", role)
	}
	if err := tx.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
