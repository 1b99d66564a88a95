package repository

import (
	"context"
	"errors"
	"time"

	"github.com/airsense/platform/internal/models"
	appErr "github.com/airsense/platform/pkg/errors"
	"gorm.io/gorm"
)

type MeasurementRepository interface {
	Insert(ctx context.Context, m *models.Measurement) (bool, error)
	Latest(ctx context.Context) (*models.Measurement, error)
	List(ctx context.Context) ([]models.Measurement, error)
	Heatmap(ctx context.Context) ([]models.HeatmapPoint, error)
	ListByUserAndDay(ctx context.Context, userID uint, day time.Time) ([]models.Measurement, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Measurement, error)
}

type measurementRepository struct {
	db *gorm.DB
}

func NewMeasurementRepository(db *gorm.DB) MeasurementRepository {
	return &measurementRepository{db: db}
}

// Insert reports whether exactly one row was written.
func (r *measurementRepository) Insert(ctx context.Context, m *models.Measurement) (bool, error) {
	res := r.db.WithContext(ctx).Create(m)
	if res.Error != nil {
		return false, appErr.Wrap(res.Error, appErr.CodeInternal, "insert measurement failed")
	}
	return res.RowsAffected == 1, nil
}

func (r *measurementRepository) Latest(ctx context.Context) (*models.Measurement, error) {
	var m models.Measurement
	if err := r.db.WithContext(ctx).Order("timestamp DESC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get latest measurement failed")
	}
	return &m, nil
}

func (r *measurementRepository) List(ctx context.Context) ([]models.Measurement, error) {
	var rows []models.Measurement
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&rows).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list measurements failed")
	}
	return rows, nil
}

func (r *measurementRepository) Heatmap(ctx context.Context) ([]models.HeatmapPoint, error) {
	var rows []models.HeatmapPoint
	err := r.db.WithContext(ctx).
		Model(&models.Measurement{}).
		Select("value, loc_x, loc_y").
		Scan(&rows).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "heatmap query failed")
	}
	return rows, nil
}

// ListByUserAndDay returns the readings taken by the user's node during the
// calendar day containing the given instant (UTC).
func (r *measurementRepository) ListByUserAndDay(ctx context.Context, userID uint, day time.Time) ([]models.Measurement, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	var rows []models.Measurement
	err := r.db.WithContext(ctx).
		Joins("JOIN nodes ON nodes.id = measurements.node_id").
		Where("nodes.user_id = ? AND measurements.timestamp >= ? AND measurements.timestamp < ?", userID, start, end).
		Order("measurements.timestamp ASC").
		Find(&rows).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "daily measurements query failed")
	}
	return rows, nil
}

func (r *measurementRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Measurement, error) {
	var rows []models.Measurement
	err := r.db.WithContext(ctx).
		Where("timestamp >= ? AND timestamp <= ?", from, to).
		Order("timestamp ASC").
		Find(&rows).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "range measurements query failed")
	}
	return rows, nil
}
