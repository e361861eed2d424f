package service

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"complaint-service/internal/auth"
	"complaint-service/internal/model"
)

type AgencyStore interface {
	FindByID(id uuid.UUID) (*model.Agency, error)
	FindByAdministrator(userID uuid.UUID) (*model.Agency, error)
	FindAll() ([]model.Agency, error)
	Provision(official *model.User, agency *model.Agency) error
}

// EmailChecker is the slice of the user store the provisioner needs.
type EmailChecker interface {
	EmailExists(email string) (bool, error)
}

// AgencyService provisions agencies. Creating an agency always creates its
// administering official in the same transaction; this is the core's only
// multi-entity write.
type AgencyService struct {
	agencies   AgencyStore
	users      EmailChecker
	complaints ComplaintStore
}

func NewAgencyService(agencies AgencyStore, users EmailChecker, complaints ComplaintStore) *AgencyService {
	return &AgencyService{
		agencies:   agencies,
		users:      users,
		complaints: complaints,
	}
}

func (s *AgencyService) Provision(claim auth.IdentityClaim, req *model.ProvisionAgencyRequest) (*model.ProvisionAgencyResponse, error) {
	if !auth.Allowed(claim, auth.ActionProvisionAgency, auth.Ownership{}) {
		return nil, ErrForbidden
	}

	if req.Name == "" || req.OfficialFirstName == "" || req.OfficialLastName == "" ||
		req.OfficialEmail == "" || req.OfficialPassword == "" {
		return nil, ErrInvalidArgument
	}

	exists, err := s.users.EmailExists(req.OfficialEmail)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.OfficialPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	official := &model.User{
		ID:           uuid.New(),
		FirstName:    req.OfficialFirstName,
		LastName:     req.OfficialLastName,
		Email:        req.OfficialEmail,
		PasswordHash: string(hashedPassword),
		Phone:        req.OfficialPhone,
		Address:      req.Address,
		Role:         model.RoleOfficial,
		Status:       model.UserActive,
		CreatedAt:    now,
	}

	agency := &model.Agency{
		ID:              uuid.New(),
		Name:            req.Name,
		Description:     req.Description,
		Address:         req.Address,
		Phone:           req.Phone,
		Email:           req.Email,
		Website:         req.Website,
		AdministratorID: official.ID,
		Status:          model.AgencyActive,
		CreatedAt:       now,
	}

	if err := s.agencies.Provision(official, agency); err != nil {
		// The email uniqueness pre-check can race a concurrent registration.
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return &model.ProvisionAgencyResponse{
		Agency:   *agency,
		Official: *official,
	}, nil
}

func (s *AgencyService) Get(id uuid.UUID) (*model.Agency, error) {
	agency, err := s.agencies.FindByID(id)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, ErrNotFound
	}
	return agency, nil
}

func (s *AgencyService) List() ([]model.Agency, error) {
	agencies, err := s.agencies.FindAll()
	if err != nil {
		return nil, err
	}
	if agencies == nil {
		agencies = []model.Agency{}
	}
	return agencies, nil
}

// ListComplaints returns an agency's queue: for officials, only their own.
func (s *AgencyService) ListComplaints(claim auth.IdentityClaim, agencyID uuid.UUID) ([]model.Complaint, error) {
	agency, err := s.agencies.FindByID(agencyID)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, ErrNotFound
	}

	own := auth.Ownership{AgencyMatch: claim.Role == model.RoleOfficial && agency.AdministratorID == claim.UserID}
	if !auth.Allowed(claim, auth.ActionViewComplaint, own) {
		return nil, ErrForbidden
	}

	complaints, err := s.complaints.FindByAgency(agencyID)
	if err != nil {
		return nil, err
	}
	if complaints == nil {
		complaints = []model.Complaint{}
	}
	return complaints, nil
}
