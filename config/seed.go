package config

import (
	"github.com/ichi1107/bento-order-system/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// SeedRoles ensures the fine-grained role rows exist.
func SeedRoles() error {
	roles := []models.Role{
		{Name: models.RoleNameOwner, Description: "Full control of the store, including menu deletion and staff management"},
		{Name: models.RoleNameManager, Description: "Menu and order management plus sales reports"},
		{Name: models.RoleNameStaff, Description: "Order handling only"},
	}
	for _, r := range roles {
		if err := DB.Where(models.Role{Name: r.Name}).FirstOrCreate(&r).Error; err != nil {
			return err
		}
	}
	logrus.Info("✅ Fine-grained roles seeded")
	return nil
}

// SeedOwner bootstraps a default store with an owner account when the
// SEED_OWNER_* variables are present. Skipped otherwise.
func SeedOwner() error {
	username := getEnv("SEED_OWNER_USERNAME", "")
	password := getEnv("SEED_OWNER_PASSWORD", "")
	if username == "" || password == "" {
		logrus.Info("⚠️ skip seeding owner: missing SEED_OWNER_USERNAME/SEED_OWNER_PASSWORD")
		return nil
	}

	var count int64
	DB.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		logrus.Infof("ℹ️ owner already exists: %s", username)
		return nil
	}

	store := models.Store{Name: getEnv("SEED_STORE_NAME", "Bento Store"), IsActive: true}
	if err := DB.Where(models.Store{Name: store.Name}).FirstOrCreate(&store).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	owner := models.User{
		Username:     username,
		Email:        getEnv("SEED_OWNER_EMAIL", username+"@example.com"),
		PasswordHash: string(hash),
		Role:         models.RoleStore,
		FullName:     "Store Owner",
		IsActive:     true,
		StoreID:      &store.ID,
	}
	if err := DB.Create(&owner).Error; err != nil {
		return err
	}

	var ownerRole models.Role
	if err := DB.Where("name = ?", models.RoleNameOwner).First(&ownerRole).Error; err != nil {
		return err
	}
	if err := DB.Create(&models.RoleAssignment{UserID: owner.ID, RoleID: ownerRole.ID}).Error; err != nil {
		return err
	}

	logrus.Infof("✅ Seeded store %q with owner %s", store.Name, username)
	return nil
}
