package repositories

import (
	"github.com/drinkph/portal-go/db"
	"github.com/drinkph/portal-go/models"
)

type DBStatusUpdateRepo struct{}

func (r *DBStatusUpdateRepo) Create(update *models.StatusUpdate) error {
	return db.DB.Create(update).Error
}

func (r *DBStatusUpdateRepo) FindByProjectID(projectID string) ([]models.StatusUpdate, error) {
	var updates []models.StatusUpdate
	err := db.DB.Where("project_id = ?", projectID).Order("created_at desc").Find(&updates).Error
	return updates, err
}
