package services

import (
	"context"
	"testing"
	"time"

	"github.com/airsense/platform/internal/repository"
	appErr "github.com/airsense/platform/pkg/errors"
)

type measurementFixture struct {
	measurements MeasurementService
	nodes        NodeService
	users        UserService
}

func newMeasurementFixture(t *testing.T) measurementFixture {
	t.Helper()
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	nodes := repository.NewNodeRepository(db)
	return measurementFixture{
		measurements: NewMeasurementService(repository.NewMeasurementRepository(db), nodes),
		nodes:        NewNodeService(nodes, users),
		users:        NewUserService(users),
	}
}

// registerNode creates a user with a node and returns the node uuid.
func (f measurementFixture) registerNode(t *testing.T, email, uuid string) {
	t.Helper()
	owner := createTestUser(t, f.users, email)
	if _, err := f.nodes.Create(context.Background(), uuid, owner.ID); err != nil {
		t.Fatalf("create node: %v", err)
	}
}

func TestIngestUnknownNodeUUID(t *testing.T) {
	f := newMeasurementFixture(t)

	_, err := f.measurements.Ingest(context.Background(), IngestInput{Value: 12.5, GasID: 1, UUID: "no-such-uuid"})
	if !appErr.IsCode(err, appErr.CodeNotFound) {
		t.Fatalf("expected not_found for unknown node, got %v", err)
	}
}

func TestIngestResolvesNode(t *testing.T) {
	f := newMeasurementFixture(t)
	uuid := "8400d8e4-0000-4000-8000-000000000001"
	f.registerNode(t, "ana@x.com", uuid)

	m, err := f.measurements.Ingest(context.Background(), IngestInput{
		Value: 38.7,
		LocX:  39.48,
		LocY:  -0.34,
		GasID: 1,
		UUID:  uuid,
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if m.ID == 0 || m.NodeID == 0 {
		t.Fatalf("measurement not persisted: %+v", m)
	}

	node, err := f.nodes.GetByUUID(context.Background(), uuid)
	if err != nil || node == nil {
		t.Fatalf("resolve node: %v", err)
	}
	if m.NodeID != node.ID {
		t.Fatalf("measurement bound to node %d, want %d", m.NodeID, node.ID)
	}
}

func TestLatestAbsenceIsNil(t *testing.T) {
	f := newMeasurementFixture(t)

	m, err := f.measurements.Latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if m != nil {
		t.Fatalf("expected nil on empty store, got %+v", m)
	}
}

func TestLatestReturnsNewest(t *testing.T) {
	f := newMeasurementFixture(t)
	uuid := "8400d8e4-0000-4000-8000-000000000001"
	f.registerNode(t, "ana@x.com", uuid)

	for _, v := range []float64{10, 20, 30} {
		if _, err := f.measurements.Ingest(context.Background(), IngestInput{Value: v, GasID: 1, UUID: uuid}); err != nil {
			t.Fatalf("ingest: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	m, err := f.measurements.Latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if m == nil || m.Value != 30 {
		t.Fatalf("expected latest value 30, got %+v", m)
	}
}

func TestHeatmapProjection(t *testing.T) {
	f := newMeasurementFixture(t)
	uuid := "8400d8e4-0000-4000-8000-000000000001"
	f.registerNode(t, "ana@x.com", uuid)

	if _, err := f.measurements.Ingest(context.Background(), IngestInput{Value: 55, LocX: 1.5, LocY: -2.5, GasID: 1, UUID: uuid}); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	points, err := f.measurements.Heatmap(context.Background())
	if err != nil {
		t.Fatalf("heatmap: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	p := points[0]
	if p.Value != 55 || p.LocX != 1.5 || p.LocY != -2.5 {
		t.Fatalf("unexpected point: %+v", p)
	}
}

func TestDailyByUserFiltersOwner(t *testing.T) {
	f := newMeasurementFixture(t)
	anaUUID := "8400d8e4-0000-4000-8000-000000000001"
	beaUUID := "8400d8e4-0000-4000-8000-000000000002"
	f.registerNode(t, "ana@x.com", anaUUID)
	f.registerNode(t, "bea@x.com", beaUUID)

	if _, err := f.measurements.Ingest(context.Background(), IngestInput{Value: 11, GasID: 1, UUID: anaUUID}); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if _, err := f.measurements.Ingest(context.Background(), IngestInput{Value: 22, GasID: 1, UUID: beaUUID}); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	ana, err := f.users.GetByEmail(context.Background(), "ana@x.com")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}

	rows, err := f.measurements.DailyByUser(context.Background(), ana.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if len(rows) != 1 || rows[0].Value != 11 {
		t.Fatalf("expected only the owner's reading, got %+v", rows)
	}

	rows, err = f.measurements.DailyByUser(context.Background(), ana.ID, time.Now().UTC().AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("daily previous day: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no readings on another day, got %+v", rows)
	}
}

func TestRangeValidatesOrder(t *testing.T) {
	f := newMeasurementFixture(t)

	now := time.Now().UTC()
	if _, err := f.measurements.Range(context.Background(), now, now.Add(-time.Hour)); !appErr.IsCode(err, appErr.CodeInvalid) {
		t.Fatalf("expected invalid range error, got %v", err)
	}
}

func TestRangeReturnsWindow(t *testing.T) {
	f := newMeasurementFixture(t)
	uuid := "8400d8e4-0000-4000-8000-000000000001"
	f.registerNode(t, "ana@x.com", uuid)

	if _, err := f.measurements.Ingest(context.Background(), IngestInput{Value: 77, GasID: 1, UUID: uuid}); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	now := time.Now().UTC()
	rows, err := f.measurements.Range(context.Background(), now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(rows) != 1 || rows[0].Value != 77 {
		t.Fatalf("expected one reading in window, got %+v", rows)
	}

	rows, err = f.measurements.Range(context.Background(), now.Add(-2*time.Hour), now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty window, got %+v", rows)
	}
}
