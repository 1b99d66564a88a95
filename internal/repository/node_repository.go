package repository

import (
	"context"
	"errors"

	"github.com/airsense/platform/internal/models"
	appErr "github.com/airsense/platform/pkg/errors"
	"gorm.io/gorm"
)

// NodeRepository resolves both directions of the uuid<->id mapping. The two
// lookup methods return (nil, nil) when no row matches: absence is not a
// failure there, callers check for nil.
type NodeRepository interface {
	BaseRepository[models.Node]
	GetByUserID(ctx context.Context, userID uint) (*models.Node, error)
	GetByUUID(ctx context.Context, uuid string) (*models.Node, error)
	ListWithLastDate(ctx context.Context) ([]models.NodeWithLastDate, error)
}

type nodeRepository struct {
	BaseRepository[models.Node]
	db *gorm.DB
}

func NewNodeRepository(db *gorm.DB) NodeRepository {
	return &nodeRepository{BaseRepository: NewBaseRepository[models.Node](db), db: db}
}

func (r *nodeRepository) GetByUserID(ctx context.Context, userID uint) (*models.Node, error) {
	var n models.Node
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get node by user failed")
	}
	return &n, nil
}

func (r *nodeRepository) GetByUUID(ctx context.Context, uuid string) (*models.Node, error) {
	var n models.Node
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get node by uuid failed")
	}
	return &n, nil
}

func (r *nodeRepository) ListWithLastDate(ctx context.Context) ([]models.NodeWithLastDate, error) {
	var rows []models.NodeWithLastDate
	err := r.db.WithContext(ctx).
		Table("nodes").
		Select("nodes.id AS id, nodes.uuid AS uuid, nodes.user_id AS user_id, MAX(measurements.timestamp) AS last_date").
		Joins("LEFT JOIN measurements ON measurements.node_id = nodes.id").
		Where("nodes.deleted_at IS NULL").
		Group("nodes.id, nodes.uuid, nodes.user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list nodes failed")
	}
	return rows, nil
}
