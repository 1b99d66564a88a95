package models

import (
	"time"

	"gorm.io/gorm"
)

// Node links a physical sensor's client-supplied UUID to its owning user.
// A user owns at most one node.
type Node struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UUID      string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"idUser"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// NodeWithLastDate is the read shape for the node overview listing: each
// node together with the timestamp of its most recent measurement, if any.
type NodeWithLastDate struct {
	ID       uint       `json:"id"`
	UUID     string     `json:"uuid"`
	UserID   uint       `json:"idUser"`
	LastDate *time.Time `json:"lastDate"`
}
