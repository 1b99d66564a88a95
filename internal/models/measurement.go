package models

import "time"

// Gas is the gas-type enumeration measurements reference.
type Gas struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// Measurement is a single timestamped geolocated gas reading. Coordinates
// are sexagesimal degrees: LocX longitude, LocY latitude.
type Measurement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Value     float64   `gorm:"not null" json:"value"`
	LocX      float64   `gorm:"column:loc_x;not null" json:"LocX"`
	LocY      float64   `gorm:"column:loc_y;not null" json:"LocY"`
	GasID     uint      `gorm:"not null;index" json:"gasId"`
	Gas       Gas       `gorm:"foreignKey:GasID" json:"-"`
	NodeID    uint      `gorm:"not null;index" json:"nodeId"`
	Node      Node      `gorm:"foreignKey:NodeID" json:"-"`
	Timestamp time.Time `gorm:"not null;index;autoCreateTime" json:"timestamp"`
}

// HeatmapPoint is the reduced read shape the heat-map feed serves.
type HeatmapPoint struct {
	Value float64 `json:"value"`
	LocX  float64 `json:"LocX"`
	LocY  float64 `json:"LocY"`
}
