package services

import (
	"context"
	"time"

	"github.com/airsense/platform/internal/models"
	"github.com/airsense/platform/internal/repository"
	appErr "github.com/airsense/platform/pkg/errors"
)

// IngestInput is a reading as submitted by a sensor: the node identifies
// itself by its client-supplied uuid, resolved to an internal id here.
type IngestInput struct {
	Value float64
	LocX  float64
	LocY  float64
	GasID uint
	UUID  string
}

type MeasurementService interface {
	Ingest(ctx context.Context, in IngestInput) (*models.Measurement, error)
	Latest(ctx context.Context) (*models.Measurement, error)
	List(ctx context.Context) ([]models.Measurement, error)
	Heatmap(ctx context.Context) ([]models.HeatmapPoint, error)
	DailyByUser(ctx context.Context, userID uint, day time.Time) ([]models.Measurement, error)
	Range(ctx context.Context, from, to time.Time) ([]models.Measurement, error)
}

type measurementService struct {
	measurements repository.MeasurementRepository
	nodes        repository.NodeRepository
}

func NewMeasurementService(measurements repository.MeasurementRepository, nodes repository.NodeRepository) MeasurementService {
	return &measurementService{measurements: measurements, nodes: nodes}
}

func (s *measurementService) Ingest(ctx context.Context, in IngestInput) (*models.Measurement, error) {
	node, err := s.nodes.GetByUUID(ctx, in.UUID)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, appErr.New(appErr.CodeNotFound, "node not found")
	}

	m := models.Measurement{
		Value:  in.Value,
		LocX:   in.LocX,
		LocY:   in.LocY,
		GasID:  in.GasID,
		NodeID: node.ID,
	}
	ok, err := s.measurements.Insert(ctx, &m)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErr.New(appErr.CodeInternal, "measurement not inserted")
	}
	return &m, nil
}

func (s *measurementService) Latest(ctx context.Context) (*models.Measurement, error) {
	return s.measurements.Latest(ctx)
}

func (s *measurementService) List(ctx context.Context) ([]models.Measurement, error) {
	return s.measurements.List(ctx)
}

func (s *measurementService) Heatmap(ctx context.Context) ([]models.HeatmapPoint, error) {
	return s.measurements.Heatmap(ctx)
}

func (s *measurementService) DailyByUser(ctx context.Context, userID uint, day time.Time) ([]models.Measurement, error) {
	return s.measurements.ListByUserAndDay(ctx, userID, day)
}

func (s *measurementService) Range(ctx context.Context, from, to time.Time) ([]models.Measurement, error) {
	if to.Before(from) {
		return nil, appErr.New(appErr.CodeInvalid, "range end precedes range start")
	}
	return s.measurements.ListByDateRange(ctx, from, to)
}
