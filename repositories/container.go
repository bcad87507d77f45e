package repositories

import "github.com/drinkph/portal-go/models"

type ProjectRepo interface {
	Create(sub *models.ProjectSubmission) error
	Update(id string, fields map[string]interface{}) (*models.ProjectSubmission, error)
	FindAll() ([]models.ProjectSubmission, error)
	FindByID(id string) (*models.ProjectSubmission, error)
	FindByClientID(clientID uint) ([]models.ProjectSubmission, error)
}

type UserRepo interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
}

type SessionRepo interface {
	Create(session *models.Session) error
	FindByID(id string) (*models.Session, error)
	Delete(id string) error
	DeleteExpired() (int64, error)
}

type StatusUpdateRepo interface {
	Create(update *models.StatusUpdate) error
	FindByProjectID(projectID string) ([]models.StatusUpdate, error)
}

type Repos struct {
	Project      ProjectRepo
	User         UserRepo
	Session      SessionRepo
	StatusUpdate StatusUpdateRepo
}

func New() *Repos {
	return &Repos{
		Project:      &DBProjectRepo{},
		User:         &DBUserRepo{},
		Session:      &DBSessionRepo{},
		StatusUpdate: &DBStatusUpdateRepo{},
	}
}
