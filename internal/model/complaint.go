package model

import (
	"time"

	"github.com/google/uuid"
)

type ComplaintStatus string

const (
	StatusSubmitted  ComplaintStatus = "submitted"
	StatusInReview   ComplaintStatus = "in-review"
	StatusAssigned   ComplaintStatus = "assigned"
	StatusInProgress ComplaintStatus = "in-progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusClosed     ComplaintStatus = "closed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Category struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	DefaultAgencyID *uuid.UUID `json:"default_agency_id,omitempty"`
	IsActive        bool       `json:"is_active"`
}

type AgencyStatus string

const (
	AgencyActive   AgencyStatus = "active"
	AgencyInactive AgencyStatus = "inactive"
)

type Agency struct {
	ID              uuid.UUID    `json:"id"`
	Name            string       `json:"name"`
	Description     *string      `json:"description,omitempty"`
	Address         *string      `json:"address,omitempty"`
	Phone           *string      `json:"phone,omitempty"`
	Email           *string      `json:"email,omitempty"`
	Website         *string      `json:"website,omitempty"`
	AdministratorID uuid.UUID    `json:"administrator_id"`
	Status          AgencyStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
}

// Request DTO for agency provisioning: the agency and its administering
// official account are created together or not at all.
type ProvisionAgencyRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Website     *string `json:"website"`

	OfficialFirstName string  `json:"official_first_name" binding:"required"`
	OfficialLastName  string  `json:"official_last_name" binding:"required"`
	OfficialEmail     string  `json:"official_email" binding:"required,email"`
	OfficialPassword  string  `json:"official_password" binding:"required,min=6"`
	OfficialPhone     *string `json:"official_phone"`
}

type ProvisionAgencyResponse struct {
	Agency   Agency `json:"agency"`
	Official User   `json:"official"`
}

type Complaint struct {
	ID                uuid.UUID       `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	CategoryID        int             `json:"category_id"`
	Category          *Category       `json:"category,omitempty"`
	Status            ComplaintStatus `json:"status"`
	Priority          Priority        `json:"priority"`
	Location          *string         `json:"location,omitempty"`
	Latitude          *float64        `json:"latitude,omitempty"`
	Longitude         *float64        `json:"longitude,omitempty"`
	SubmittedByID     uuid.UUID       `json:"submitted_by_id"`
	SubmitterName     *string         `json:"submitter_name,omitempty"`
	AssignedToID      *uuid.UUID      `json:"assigned_to_id,omitempty"`
	AssignedAgency    *Agency         `json:"assigned_agency,omitempty"`
	ResolutionDate    *time.Time      `json:"resolution_date,omitempty"`
	ResolutionDetails *string         `json:"resolution_details,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type Response struct {
	ID            uuid.UUID `json:"id"`
	ComplaintID   uuid.UUID `json:"complaint_id"`
	Content       string    `json:"content"`
	RespondedByID uuid.UUID `json:"responded_by_id"`
	ResponderName *string   `json:"responder_name,omitempty"`
	InternalNotes *string   `json:"internal_notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Request/Response DTOs
type CreateComplaintRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	CategoryID  int      `json:"category_id" binding:"required"`
	Priority    Priority `json:"priority"`
	Location    *string  `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type UpdateComplaintRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	CategoryID  *int     `json:"category_id"`
	Location    *string  `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type TransitionRequest struct {
	Status            ComplaintStatus `json:"status" binding:"required"`
	ResolutionDetails *string         `json:"resolution_details"`
}

type AssignRequest struct {
	AgencyID uuid.UUID `json:"agency_id" binding:"required"`
}

type AddResponseRequest struct {
	Content       string  `json:"content" binding:"required"`
	InternalNotes *string `json:"internal_notes"`
}

type CreateCategoryRequest struct {
	Name            string     `json:"name" binding:"required"`
	DefaultAgencyID *uuid.UUID `json:"default_agency_id"`
}

type ComplaintListResponse struct {
	Complaints []Complaint `json:"complaints"`
	Total      int         `json:"total"`
}

// CreateComplaintResponse carries the suggested routing agency derived from
// the category's default, if any. The suggestion is advisory only; assignment
// happens through the assign operation.
type CreateComplaintResponse struct {
	Complaint       Complaint  `json:"complaint"`
	SuggestedAgency *uuid.UUID `json:"suggested_agency_id,omitempty"`
}
