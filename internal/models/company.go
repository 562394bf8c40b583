package models

import "time"

type Company struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;type:text" json:"name"`
	Description *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	Website     *string   `gorm:"column:website;type:text" json:"website,omitempty"`
	Industry    *string   `gorm:"column:industry;type:text" json:"industry,omitempty"`
	Size        *string   `gorm:"column:size;type:text" json:"size,omitempty"`
	Location    *string   `gorm:"column:location;type:text" json:"location,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Company) TableName() string { return "companies" }
