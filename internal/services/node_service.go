package services

import (
	"context"

	"github.com/airsense/platform/internal/models"
	"github.com/airsense/platform/internal/repository"
	appErr "github.com/airsense/platform/pkg/errors"
)

// NodeService manages the sensor-uuid to owner mapping. Lookups return
// (nil, nil) when no node matches; absence is not a failure.
type NodeService interface {
	Create(ctx context.Context, uuid string, userID uint) (uint, error)
	GetByID(ctx context.Context, id uint) (*models.Node, error)
	GetByUUID(ctx context.Context, uuid string) (*models.Node, error)
	ListWithLastDate(ctx context.Context) ([]models.NodeWithLastDate, error)
}

type nodeService struct {
	nodes repository.NodeRepository
	users repository.UserRepository
}

func NewNodeService(nodes repository.NodeRepository, users repository.UserRepository) NodeService {
	return &nodeService{nodes: nodes, users: users}
}

// Create registers a node for the user. A user owns at most one node.
func (s *nodeService) Create(ctx context.Context, uuid string, userID uint) (uint, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, appErr.New(appErr.CodeNotFound, "user not found")
	}

	owned, err := s.nodes.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if owned != nil {
		return 0, appErr.New(appErr.CodeForbidden, "user already has a node")
	}

	node := models.Node{UUID: uuid, UserID: userID}
	if err := s.nodes.Create(ctx, &node); err != nil {
		return 0, err
	}
	return node.ID, nil
}

func (s *nodeService) GetByID(ctx context.Context, id uint) (*models.Node, error) {
	var n models.Node
	if err := s.nodes.GetByID(ctx, id, &n); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (s *nodeService) GetByUUID(ctx context.Context, uuid string) (*models.Node, error) {
	return s.nodes.GetByUUID(ctx, uuid)
}

func (s *nodeService) ListWithLastDate(ctx context.Context) ([]models.NodeWithLastDate, error) {
	return s.nodes.ListWithLastDate(ctx)
}
