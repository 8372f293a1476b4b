package repository

import (
	apperrors "github.com/olgakuzina/task-manager/internal/errors"
	"github.com/olgakuzina/task-manager/internal/models"
	"gorm.io/gorm"
)

// GormLabelRepository is a GORM implementation of LabelRepository
type GormLabelRepository struct {
	db *gorm.DB
}

// NewLabelRepository creates a new LabelRepository
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &GormLabelRepository{db: db}
}

// Create creates a new label
func (r *GormLabelRepository) Create(label *models.Label) error {
	return r.db.Create(label).Error
}

// FindByID finds a label by ID
func (r *GormLabelRepository) FindByID(id uint64) (*models.Label, error) {
	var label models.Label
	if err := r.db.First(&label, id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// FindByName finds a label by its unique name
func (r *GormLabelRepository) FindByName(name string) (*models.Label, error) {
	var label models.Label
	if err := r.db.Where("name = ?", name).First(&label).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// List returns all labels ordered by id
func (r *GormLabelRepository) List() ([]models.Label, error) {
	var labels []models.Label
	if err := r.db.Order("id").Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// CountByIDs counts how many of the given label IDs exist
func (r *GormLabelRepository) CountByIDs(ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.Label{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// Update updates a label
func (r *GormLabelRepository) Update(label *models.Label) error {
	return r.db.Save(label).Error
}

// Delete deletes a label. The association check and the delete run inside
// one transaction; a label still attached to a task stays intact and the
// delete reports errors.ErrInUse.
func (r *GormLabelRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.TaskLabel{}).
			Where("label_id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrInUse
		}

		return tx.Delete(&models.Label{}, id).Error
	})
}
