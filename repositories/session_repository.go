package repositories

import (
	"time"

	"github.com/drinkph/portal-go/db"
	"github.com/drinkph/portal-go/models"
)

type DBSessionRepo struct{}

func (r *DBSessionRepo) Create(session *models.Session) error {
	return db.DB.Create(session).Error
}

func (r *DBSessionRepo) FindByID(id string) (*models.Session, error) {
	var session models.Session
	err := db.DB.Preload("User").Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *DBSessionRepo) Delete(id string) error {
	return db.DB.Where("id = ?", id).Delete(&models.Session{}).Error
}

func (r *DBSessionRepo) DeleteExpired() (int64, error) {
	res := db.DB.Where("expires_at <= ?", time.Now()).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
