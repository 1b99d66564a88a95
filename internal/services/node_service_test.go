package services

import (
	"context"
	"testing"

	"github.com/airsense/platform/internal/repository"
	appErr "github.com/airsense/platform/pkg/errors"
	"gorm.io/gorm"
)

func newNodeFixture(t *testing.T) (NodeService, UserService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	nodes := repository.NewNodeRepository(db)
	return NewNodeService(nodes, users), NewUserService(users), db
}

func TestCreateNodeRequiresExistingUser(t *testing.T) {
	svc, _, _ := newNodeFixture(t)

	_, err := svc.Create(context.Background(), "8400d8e4-0000-4000-8000-000000000001", 42)
	if !appErr.IsCode(err, appErr.CodeNotFound) {
		t.Fatalf("expected not_found for unknown user, got %v", err)
	}
}

func TestCreateNodeOnePerUser(t *testing.T) {
	svc, users, _ := newNodeFixture(t)
	owner := createTestUser(t, users, "ana@x.com")

	id, err := svc.Create(context.Background(), "8400d8e4-0000-4000-8000-000000000001", owner.ID)
	if err != nil {
		t.Fatalf("create first node: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero node id")
	}

	_, err = svc.Create(context.Background(), "8400d8e4-0000-4000-8000-000000000002", owner.ID)
	if !appErr.IsCode(err, appErr.CodeForbidden) {
		t.Fatalf("expected forbidden for second node, got %v", err)
	}
}

func TestGetNodeAbsenceIsNil(t *testing.T) {
	svc, _, _ := newNodeFixture(t)

	node, err := svc.GetByID(context.Background(), 99)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if node != nil {
		t.Fatalf("expected nil node, got %+v", node)
	}

	node, err = svc.GetByUUID(context.Background(), "no-such-uuid")
	if err != nil {
		t.Fatalf("get by uuid: %v", err)
	}
	if node != nil {
		t.Fatalf("expected nil node, got %+v", node)
	}
}

func TestGetNodeByUUID(t *testing.T) {
	svc, users, _ := newNodeFixture(t)
	owner := createTestUser(t, users, "ana@x.com")

	uuid := "8400d8e4-0000-4000-8000-000000000001"
	id, err := svc.Create(context.Background(), uuid, owner.ID)
	if err != nil {
		t.Fatalf("create node: %v", err)
	}

	node, err := svc.GetByUUID(context.Background(), uuid)
	if err != nil {
		t.Fatalf("get by uuid: %v", err)
	}
	if node == nil || node.ID != id || node.UserID != owner.ID {
		t.Fatalf("unexpected node: %+v", node)
	}
}

func TestListNodesWithLastDate(t *testing.T) {
	svc, users, db := newNodeFixture(t)
	measurements := repository.NewMeasurementRepository(db)
	msvc := NewMeasurementService(measurements, repository.NewNodeRepository(db))

	ana := createTestUser(t, users, "ana@x.com")
	bea := createTestUser(t, users, "bea@x.com")

	anaUUID := "8400d8e4-0000-4000-8000-000000000001"
	beaUUID := "8400d8e4-0000-4000-8000-000000000002"
	if _, err := svc.Create(context.Background(), anaUUID, ana.ID); err != nil {
		t.Fatalf("create node: %v", err)
	}
	if _, err := svc.Create(context.Background(), beaUUID, bea.ID); err != nil {
		t.Fatalf("create node: %v", err)
	}

	if _, err := msvc.Ingest(context.Background(), IngestInput{Value: 41.2, GasID: 1, UUID: anaUUID}); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	list, err := svc.ListWithLastDate(context.Background())
	if err != nil {
		t.Fatalf("list nodes: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(list))
	}
	for _, n := range list {
		switch n.UUID {
		case anaUUID:
			if n.LastDate == nil {
				t.Fatalf("expected last date for node %s", n.UUID)
			}
		case beaUUID:
			if n.LastDate != nil {
				t.Fatalf("expected no last date for node %s, got %v", n.UUID, n.LastDate)
			}
		default:
			t.Fatalf("unexpected node uuid %s", n.UUID)
		}
	}
}
