package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"complaint-service/internal/auth"
	"complaint-service/internal/model"
)

type ComplaintStore interface {
	Create(complaint *model.Complaint) error
	FindByID(id uuid.UUID) (*model.Complaint, error)
	FindAll() ([]model.Complaint, error)
	FindBySubmitter(userID uuid.UUID) ([]model.Complaint, error)
	FindByAgency(agencyID uuid.UUID) ([]model.Complaint, error)
	UpdateContent(id uuid.UUID, req *model.UpdateComplaintRequest) error
	UpdateStatus(id uuid.UUID, from, to model.ComplaintStatus, resolutionDate *time.Time, resolutionDetails *string) (bool, error)
	UpdateAssignment(id uuid.UUID, agencyID uuid.UUID, from, to model.ComplaintStatus) (bool, error)
}

type CategoryStore interface {
	FindByID(id int) (*model.Category, error)
	FindAll() ([]model.Category, error)
	Create(category *model.Category) error
}

type ResponseStore interface {
	Create(response *model.Response) error
	FindByID(id uuid.UUID) (*model.Response, error)
	FindByComplaint(complaintID uuid.UUID) ([]model.Response, error)
}

// TransitionResult carries the updated complaint plus a non-fatal dispatch
// warning: a failed notification never rolls back the state change.
type TransitionResult struct {
	Complaint *model.Complaint
	Warning   error
}

type ResponseResult struct {
	Response *model.Response
	Warning  error
}

type ComplaintService struct {
	complaints ComplaintStore
	categories CategoryStore
	agencies   AgencyStore
	responses  ResponseStore
	dispatcher *NotificationService
}

func NewComplaintService(complaints ComplaintStore, categories CategoryStore,
	agencies AgencyStore, responses ResponseStore, dispatcher *NotificationService) *ComplaintService {

	return &ComplaintService{
		complaints: complaints,
		categories: categories,
		agencies:   agencies,
		responses:  responses,
		dispatcher: dispatcher,
	}
}

// ownershipOf computes the claim's relation to a complaint for the capability
// table: submitter ownership, and for officials whether they administer the
// assigned agency.
func (s *ComplaintService) ownershipOf(claim auth.IdentityClaim, complaint *model.Complaint) (auth.Ownership, error) {
	own := auth.Ownership{Owner: complaint.SubmittedByID == claim.UserID}

	if claim.Role == model.RoleOfficial && complaint.AssignedToID != nil {
		agency, err := s.agencies.FindByAdministrator(claim.UserID)
		if err != nil {
			return own, err
		}
		own.AgencyMatch = agency != nil && agency.ID == *complaint.AssignedToID
	}

	return own, nil
}

// Create opens a new complaint in submitted status. The category's default
// agency, if any, is returned as a routing suggestion only.
func (s *ComplaintService) Create(claim auth.IdentityClaim, req *model.CreateComplaintRequest) (*model.CreateComplaintResponse, error) {
	if !auth.Allowed(claim, auth.ActionCreateComplaint, auth.Ownership{}) {
		return nil, ErrForbidden
	}

	category, err := s.categories.FindByID(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil || !category.IsActive {
		return nil, ErrInvalidArgument
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	switch priority {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityUrgent:
	default:
		return nil, ErrInvalidArgument
	}

	now := time.Now()
	complaint := &model.Complaint{
		ID:            uuid.New(),
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Category:      category,
		Status:        model.StatusSubmitted,
		Priority:      priority,
		Location:      req.Location,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		SubmittedByID: claim.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.complaints.Create(complaint); err != nil {
		return nil, err
	}

	return &model.CreateComplaintResponse{
		Complaint:       *complaint,
		SuggestedAgency: category.DefaultAgencyID,
	}, nil
}

func (s *ComplaintService) Get(claim auth.IdentityClaim, id uuid.UUID) (*model.Complaint, error) {
	complaint, err := s.complaints.FindByID(id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrNotFound
	}

	own, err := s.ownershipOf(claim, complaint)
	if err != nil {
		return nil, err
	}
	if !auth.Allowed(claim, auth.ActionViewComplaint, own) {
		return nil, ErrForbidden
	}

	return complaint, nil
}

// List scopes results by role: citizens see their own complaints, officials
// their agency's queue, admins everything.
func (s *ComplaintService) List(claim auth.IdentityClaim) (*model.ComplaintListResponse, error) {
	var complaints []model.Complaint
	var err error

	switch claim.Role {
	case model.RoleAdmin:
		complaints, err = s.complaints.FindAll()
	case model.RoleOfficial:
		agency, aerr := s.agencies.FindByAdministrator(claim.UserID)
		if aerr != nil {
			return nil, aerr
		}
		if agency == nil {
			complaints = []model.Complaint{}
		} else {
			complaints, err = s.complaints.FindByAgency(agency.ID)
		}
	case model.RoleCitizen:
		complaints, err = s.complaints.FindBySubmitter(claim.UserID)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	if complaints == nil {
		complaints = []model.Complaint{}
	}

	return &model.ComplaintListResponse{
		Complaints: complaints,
		Total:      len(complaints),
	}, nil
}

// UpdateContent edits a citizen's own submission. Editing is possible only
// while the complaint is still submitted and unassigned.
func (s *ComplaintService) UpdateContent(claim auth.IdentityClaim, id uuid.UUID, req *model.UpdateComplaintRequest) (*model.Complaint, error) {
	complaint, err := s.complaints.FindByID(id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrNotFound
	}

	own, err := s.ownershipOf(claim, complaint)
	if err != nil {
		return nil, err
	}
	if claim.Role != model.RoleAdmin {
		if !auth.Allowed(claim, auth.ActionEditComplaint, own) {
			return nil, ErrForbidden
		}
		if complaint.Status != model.StatusSubmitted || complaint.AssignedToID != nil {
			return nil, ErrForbidden
		}
	}

	if req.Title == nil && req.Description == nil && req.CategoryID == nil &&
		req.Location == nil && req.Latitude == nil && req.Longitude == nil {
		return nil, ErrInvalidArgument
	}

	if req.CategoryID != nil {
		category, err := s.categories.FindByID(*req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil || !category.IsActive {
			return nil, ErrInvalidArgument
		}
	}

	if err := s.complaints.UpdateContent(id, req); err != nil {
		return nil, err
	}

	return s.complaints.FindByID(id)
}

// TransitionStatus moves a complaint through its lifecycle. Citizens only get
// the cancel variant: closing their own complaint while it is still
// submitted. Officials act on their agency's complaints; admins anywhere.
// The status is re-validated by a conditional write so concurrent transitions
// surface as a conflict instead of silently overwriting each other.
func (s *ComplaintService) TransitionStatus(claim auth.IdentityClaim, id uuid.UUID, req *model.TransitionRequest) (*TransitionResult, error) {
	if !validStatus(req.Status) {
		return nil, ErrInvalidArgument
	}

	complaint, err := s.complaints.FindByID(id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrNotFound
	}

	own, err := s.ownershipOf(claim, complaint)
	if err != nil {
		return nil, err
	}
	from := complaint.Status
	to := req.Status

	if claim.Role == model.RoleCitizen {
		// Cancel-only variant: close an own, still-unhandled submission.
		if to != model.StatusClosed || !auth.Allowed(claim, auth.ActionCancelComplaint, own) {
			return nil, ErrForbidden
		}
		if from != model.StatusSubmitted {
			return nil, ErrInvalidTransition
		}
	} else {
		if !auth.Allowed(claim, auth.ActionTransition, own) {
			return nil, ErrForbidden
		}
		if err := validateTransition(claim.Role, from, to); err != nil {
			return nil, err
		}
	}

	if to == model.StatusAssigned && complaint.AssignedToID == nil {
		return nil, ErrMissingField
	}

	var resolutionDate *time.Time
	var resolutionDetails *string
	if to == model.StatusResolved {
		if req.ResolutionDetails == nil || *req.ResolutionDetails == "" {
			return nil, ErrMissingField
		}
		now := time.Now()
		resolutionDate = &now
		resolutionDetails = req.ResolutionDetails
	}

	if claim.Role == model.RoleAdmin && adminOverride(from, to) {
		log.Printf("complaint %s: administrative override close from %s by admin %s", id, from, claim.UserID)
	}

	matched, err := s.complaints.UpdateStatus(id, from, to, resolutionDate, resolutionDetails)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrConflict
	}

	complaint.Status = to
	if resolutionDate != nil {
		complaint.ResolutionDate = resolutionDate
		complaint.ResolutionDetails = resolutionDetails
	}

	warning := s.dispatcher.NotifyStatusChanged(complaint, from, to, claim.UserID)
	if to == model.StatusAssigned && complaint.AssignedToID != nil {
		agency, aerr := s.agencies.FindByID(*complaint.AssignedToID)
		if aerr == nil && agency != nil {
			warning = errors.Join(warning, s.dispatcher.NotifyAssigned(complaint, agency, claim.UserID))
		}
	}

	return &TransitionResult{Complaint: complaint, Warning: warning}, nil
}

// Assign routes a complaint to an agency. Officials may assign to their own
// agency while the complaint is early in its lifecycle; only admins may move
// an already-assigned complaint to a different agency, and re-assignment
// never regresses status.
func (s *ComplaintService) Assign(claim auth.IdentityClaim, id, agencyID uuid.UUID) (*TransitionResult, error) {
	complaint, err := s.complaints.FindByID(id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrNotFound
	}

	agency, err := s.agencies.FindByID(agencyID)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, ErrNotFound
	}
	if agency.Status != model.AgencyActive {
		return nil, ErrInvalidArgument
	}

	// For assign, agency match means administering the target agency.
	own := auth.Ownership{AgencyMatch: claim.Role == model.RoleOfficial && agency.AdministratorID == claim.UserID}
	if !auth.Allowed(claim, auth.ActionAssign, own) {
		return nil, ErrForbidden
	}

	from := complaint.Status
	if from == model.StatusResolved || from == model.StatusClosed {
		return nil, ErrInvalidTransition
	}

	if complaint.AssignedToID != nil && *complaint.AssignedToID != agencyID && claim.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}

	to := from
	if from == model.StatusSubmitted || from == model.StatusInReview {
		to = model.StatusAssigned
	}

	matched, err := s.complaints.UpdateAssignment(id, agencyID, from, to)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrConflict
	}

	complaint.AssignedToID = &agencyID
	complaint.AssignedAgency = agency
	complaint.Status = to

	var warning error
	if to != from {
		warning = s.dispatcher.NotifyStatusChanged(complaint, from, to, claim.UserID)
	}
	warning = errors.Join(warning, s.dispatcher.NotifyAssigned(complaint, agency, claim.UserID))

	return &TransitionResult{Complaint: complaint, Warning: warning}, nil
}

// AddResponse records an official response and notifies the submitter.
func (s *ComplaintService) AddResponse(claim auth.IdentityClaim, complaintID uuid.UUID, req *model.AddResponseRequest) (*ResponseResult, error) {
	complaint, err := s.complaints.FindByID(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrNotFound
	}

	own, err := s.ownershipOf(claim, complaint)
	if err != nil {
		return nil, err
	}
	if !auth.Allowed(claim, auth.ActionRespond, own) {
		return nil, ErrForbidden
	}

	response := &model.Response{
		ID:            uuid.New(),
		ComplaintID:   complaintID,
		Content:       req.Content,
		RespondedByID: claim.UserID,
		InternalNotes: req.InternalNotes,
		CreatedAt:     time.Now(),
	}

	if err := s.responses.Create(response); err != nil {
		return nil, err
	}

	warning := s.dispatcher.NotifyResponseAdded(complaint, claim.UserID)

	return &ResponseResult{Response: response, Warning: warning}, nil
}

// ListResponses returns a complaint's responses. Internal notes are visible
// only to officials and admins.
func (s *ComplaintService) ListResponses(claim auth.IdentityClaim, complaintID uuid.UUID) ([]model.Response, error) {
	complaint, err := s.complaints.FindByID(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrNotFound
	}

	own, err := s.ownershipOf(claim, complaint)
	if err != nil {
		return nil, err
	}
	if !auth.Allowed(claim, auth.ActionViewComplaint, own) {
		return nil, ErrForbidden
	}

	responses, err := s.responses.FindByComplaint(complaintID)
	if err != nil {
		return nil, err
	}

	if claim.Role == model.RoleCitizen {
		for i := range responses {
			responses[i].InternalNotes = nil
		}
	}

	if responses == nil {
		responses = []model.Response{}
	}
	return responses, nil
}

func (s *ComplaintService) GetCategories() ([]model.Category, error) {
	categories, err := s.categories.FindAll()
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

// CreateCategory is an admin operation. A default agency, when given, must
// exist; it is only ever used as a routing suggestion.
func (s *ComplaintService) CreateCategory(claim auth.IdentityClaim, req *model.CreateCategoryRequest) (*model.Category, error) {
	if !auth.Allowed(claim, auth.ActionManageCategory, auth.Ownership{}) {
		return nil, ErrForbidden
	}

	if req.DefaultAgencyID != nil {
		agency, err := s.agencies.FindByID(*req.DefaultAgencyID)
		if err != nil {
			return nil, err
		}
		if agency == nil {
			return nil, ErrInvalidArgument
		}
	}

	category := &model.Category{
		Name:            req.Name,
		DefaultAgencyID: req.DefaultAgencyID,
		IsActive:        true,
	}
	if err := s.categories.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}
