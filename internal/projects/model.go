package projects

import (
	"time"

	"github.com/measurebook/measurebook/internal/billing"
)

// ProjectStatus tracks where a project is in its life.
type ProjectStatus string

const (
	StatusActive    ProjectStatus = "Active"
	StatusCompleted ProjectStatus = "Completed"
	StatusDraft     ProjectStatus = "Draft"
)

// Project is the aggregate root of one measurement sheet. TotalAmount is
// derived by the reconciliation save and never edited directly.
type Project struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	ClientName    string        `json:"clientName"`
	Date          time.Time     `json:"date"`
	Location      string        `json:"location"`
	Notes         *string       `json:"notes,omitempty"`
	CompanyID     int64         `json:"companyId"`
	CreatedBy     int64         `json:"createdBy"`
	GSTPercentage float64       `json:"gstPercentage"`
	Status        ProjectStatus `json:"status"`
	TotalAmount   float64       `json:"totalAmount"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Section groups items inside a project. It exists only as part of its
// project's sheet and is replaced wholesale on every save.
type Section struct {
	ID          int64   `json:"id"`
	ProjectID   int64   `json:"projectId"`
	Title       string  `json:"title"`
	Order       int     `json:"order"`
	TotalAmount float64 `json:"totalAmount"`
	Items       []Item  `json:"items"`
}

// Item is one measurement line. Amount is always size * qty * rate.
type Item struct {
	ID          int64       `json:"id"`
	SectionID   int64       `json:"sectionId"`
	Description string      `json:"description"`
	UOM         billing.UOM `json:"uom"`
	Size        float64     `json:"size"`
	Qty         float64     `json:"qty"`
	Rate        float64     `json:"rate"`
	Amount      float64     `json:"amount"`
	Order       int         `json:"order"`
}
