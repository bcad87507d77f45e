package repositories

import (
	"github.com/drinkph/portal-go/db"
	"github.com/drinkph/portal-go/models"
)

type DBUserRepo struct{}

func (r *DBUserRepo) Create(user *models.User) error {
	return db.DB.Create(user).Error
}

func (r *DBUserRepo) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := db.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *DBUserRepo) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := db.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
