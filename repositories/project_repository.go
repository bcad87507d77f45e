package repositories

import (
	"github.com/drinkph/portal-go/db"
	"github.com/drinkph/portal-go/models"
)

type DBProjectRepo struct{}

func (r *DBProjectRepo) Create(sub *models.ProjectSubmission) error {
	return db.DB.Create(sub).Error
}

// Update applies a partial field map and returns the authoritative stored
// record.
func (r *DBProjectRepo) Update(id string, fields map[string]interface{}) (*models.ProjectSubmission, error) {
	if err := db.DB.Model(&models.ProjectSubmission{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

func (r *DBProjectRepo) FindAll() ([]models.ProjectSubmission, error) {
	var subs []models.ProjectSubmission
	err := db.DB.Order("submitted_at desc").Find(&subs).Error
	return subs, err
}

func (r *DBProjectRepo) FindByID(id string) (*models.ProjectSubmission, error) {
	var sub models.ProjectSubmission
	err := db.DB.Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *DBProjectRepo) FindByClientID(clientID uint) ([]models.ProjectSubmission, error) {
	var subs []models.ProjectSubmission
	err := db.DB.Where("client_id = ?", clientID).Order("submitted_at desc").Find(&subs).Error
	return subs, err
}
