package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hrportal/models"
)

var DB *gorm.DB

func Init(dsn string) error {
	return Open(postgres.Open(dsn), logger.Default.LogMode(logger.Info))
}

// Open initializes the global handle from any dialector; tests pass sqlite.
func Open(dialector gorm.Dialector, logMode logger.Interface) error {
	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logMode,
	})
	if err != nil {
		return err
	}

	if err := Migrate(DB); err != nil {
		return err
	}

	if err := seedDefaultAdmin(); err != nil {
		return err
	}
	return seedProjectCatalog()
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Timesheet{},
		&models.TimesheetDetail{},
		&models.LeaveApplication{},
		&models.WorkflowEvent{},
	)
}

func seedDefaultAdmin() error {
	var count int64
	DB.Model(&models.User{}).Where("email = ?", "admin@local").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:          "admin@local",
		FullName:       "Administrator",
		PasswordHash:   string(hashedPassword),
		Role:           models.RoleAdmin,
		EmployeeNumber: "EMP000",
	}

	if result := DB.Create(&admin); result.Error != nil {
		return result.Error
	}

	log.Println("Default admin user created (email: admin@local, password: admin)")
	return nil
}

// seedProjectCatalog makes the server the authoritative name->id source;
// clients never ship their own lookup table.
func seedProjectCatalog() error {
	var count int64
	DB.Model(&models.Project{}).Count(&count)
	if count > 0 {
		return nil
	}

	seed := []models.Project{
		{Code: "ALPHA", Name: "Project Alpha", Active: true},
		{Code: "BETA", Name: "Project Beta", Active: true},
		{Code: "INTERNAL", Name: "Internal", Active: true},
	}
	return DB.Create(&seed).Error
}

func GetDB() *gorm.DB {
	return DB
}
