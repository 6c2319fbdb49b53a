package configs

import (
	"backend/entity"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin bootstraps the first admin account from env, once.
func SeedAdmin(cfg *Config) error {
	if cfg.AdminSeedEmail == "" || cfg.AdminSeedPass == "" {
		log.Info("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", cfg.AdminSeedEmail).Count(&count)
	if count > 0 {
		log.WithField("email", cfg.AdminSeedEmail).Info("admin already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminSeedPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		FullName: "Seed Admin",
		Email:    cfg.AdminSeedEmail,
		Password: string(hash),
		Role:     "admin",
	}
	return db.Create(&admin).Error
}
