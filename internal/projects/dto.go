package projects

// CreateProjectRequest is the body of POST /api/projects.
type CreateProjectRequest struct {
	Name       string  `json:"name" validate:"required"`
	ClientName string  `json:"clientName" validate:"required"`
	Date       string  `json:"date" validate:"required"`
	Location   string  `json:"location" validate:"required"`
	Notes      *string `json:"notes,omitempty"`
}

// SaveSheetRequest is the body of PUT /api/projects/{id}: the full edited
// sheet plus the tax percentage. Client-supplied amount and totalAmount
// fields are carried for wire compatibility but the server recomputes all
// derived values from size, qty, and rate.
type SaveSheetRequest struct {
	Sections      []SheetSectionInput `json:"sections"`
	GSTPercentage float64             `json:"gstPercentage"`
}

// SheetSectionInput is one section of a submitted sheet.
type SheetSectionInput struct {
	Title       string           `json:"title"`
	Order       int              `json:"order"`
	TotalAmount float64          `json:"totalAmount"`
	Items       []SheetItemInput `json:"items"`
}

// SheetItemInput is one line of a submitted sheet.
type SheetItemInput struct {
	Description string  `json:"description"`
	UOM         string  `json:"uom"`
	Size        float64 `json:"size"`
	Qty         float64 `json:"qty"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
	Order       int     `json:"order"`
}

// SaveSheetResponse is the success body of PUT /api/projects/{id}.
type SaveSheetResponse struct {
	Message     string  `json:"message"`
	TotalAmount float64 `json:"totalAmount"`
}

// CreateProjectResponse is the success body of POST /api/projects.
type CreateProjectResponse struct {
	Message   string `json:"message"`
	ProjectID int64  `json:"projectId"`
}

// FetchProjectResponse is the body of GET /api/projects/{id}.
type FetchProjectResponse struct {
	Project  *Project  `json:"project"`
	Sections []Section `json:"sections"`
}

// ProjectSummary is a list entry with a display-formatted total.
type ProjectSummary struct {
	Project
	TotalDisplay string `json:"totalDisplay"`
}

// ListProjectsResponse is the body of GET /api/projects.
type ListProjectsResponse struct {
	Projects []ProjectSummary `json:"projects"`
}
