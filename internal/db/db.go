package db

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mdbarber/booking-api/internal/config"
	"github.com/mdbarber/booking-api/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Barber{},
		&models.Client{},
		&models.Service{},
		&models.WeeklySchedule{},
		&models.BlackoutPeriod{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	// Sin el constraint de exclusión el chequeo FOR UPDATE de la app
	// no alcanza: dos inserts concurrentes sobre un slot libre no ven
	// filas que bloquear y ambos confirman. Arrancar sin el candado
	// sería arrancar con dobles reservas posibles.
	if err := installOverlapGuard(db); err != nil {
		log.Fatal("failed to install overlap constraint", zap.Error(err))
	}

	seedDefaultAdmin(db, cfg, log)

	return db
}

// installOverlapGuard instala el candado autoritativo contra dobles
// reservas: dos citas no canceladas jamás pueden solapar su
// [start_time, end_time). El segundo escritor concurrente recibe
// SQLSTATE 23P01.
func installOverlapGuard(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	return db.Exec(`
        DO $$ BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
            ) THEN
                ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (tstzrange(start_time, end_time) WITH &&)
                WHERE (status <> 'cancelled');
            END IF;
        END $$
    `).Error
}

// seedDefaultAdmin crea la cuenta del barbero si la tabla está vacía.
// Solo corre cuando ADMIN_PASSWORD está definido.
func seedDefaultAdmin(db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	if cfg.AdminPassword == "" {
		return
	}

	var count int64
	if err := db.Model(&models.Barber{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash admin password", zap.Error(err))
		return
	}

	admin := models.Barber{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hashed),
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Error("failed to seed admin", zap.Error(err))
		return
	}

	log.Info("seeded default admin", zap.String("email", admin.Email))
}
