package service

import (
	"time"

	"github.com/google/uuid"

	"complaint-service/internal/auth"
	"complaint-service/internal/model"
)

type AttachmentStore interface {
	Create(attachment *model.Attachment) error
	FindByID(id uuid.UUID) (*model.Attachment, error)
	FindByRelated(relatedType model.RelatedType, relatedID uuid.UUID) ([]model.Attachment, error)
}

// AttachmentService manages the polymorphic link between an attachment and
// its parent complaint or response. No foreign key covers both target tables,
// so the parent's existence is validated here before any write, and callers
// resolve the parent through ResolveRelated rather than a join.
type AttachmentService struct {
	attachments AttachmentStore
	complaints  ComplaintStore
	responses   ResponseStore
	agencies    AgencyStore
}

func NewAttachmentService(attachments AttachmentStore, complaints ComplaintStore,
	responses ResponseStore, agencies AgencyStore) *AttachmentService {

	return &AttachmentService{
		attachments: attachments,
		complaints:  complaints,
		responses:   responses,
		agencies:    agencies,
	}
}

// parentComplaint walks the tagged reference to the complaint that governs
// visibility: directly for complaint targets, through the response's
// complaint for response targets. A missing parent is an invalid reference.
func (s *AttachmentService) parentComplaint(relatedType model.RelatedType, relatedID uuid.UUID) (*model.Complaint, error) {
	switch relatedType {
	case model.RelatedComplaint:
		complaint, err := s.complaints.FindByID(relatedID)
		if err != nil {
			return nil, err
		}
		if complaint == nil {
			return nil, ErrInvalidReference
		}
		return complaint, nil

	case model.RelatedResponse:
		response, err := s.responses.FindByID(relatedID)
		if err != nil {
			return nil, err
		}
		if response == nil {
			return nil, ErrInvalidReference
		}
		complaint, err := s.complaints.FindByID(response.ComplaintID)
		if err != nil {
			return nil, err
		}
		if complaint == nil {
			return nil, ErrInvalidReference
		}
		return complaint, nil
	}

	return nil, ErrInvalidArgument
}

// Attach validates the polymorphic target and the uploader's access to it,
// then persists the attachment metadata.
func (s *AttachmentService) Attach(claim auth.IdentityClaim, req *model.AttachRequest) (*model.Attachment, error) {
	complaint, err := s.parentComplaint(req.RelatedType, req.RelatedID)
	if err != nil {
		return nil, err
	}

	own := auth.Ownership{Owner: complaint.SubmittedByID == claim.UserID}
	if claim.Role == model.RoleOfficial && complaint.AssignedToID != nil {
		agency, err := s.agencies.FindByAdministrator(claim.UserID)
		if err != nil {
			return nil, err
		}
		own.AgencyMatch = agency != nil && agency.ID == *complaint.AssignedToID
	}
	if !auth.Allowed(claim, auth.ActionAttach, own) {
		return nil, ErrForbidden
	}

	attachment := &model.Attachment{
		ID:           uuid.New(),
		FileName:     req.FileName,
		FileType:     req.FileType,
		FileSize:     req.FileSize,
		FilePath:     req.FilePath,
		UploadedByID: claim.UserID,
		RelatedType:  req.RelatedType,
		RelatedID:    req.RelatedID,
		CreatedAt:    time.Now(),
	}

	if err := s.attachments.Create(attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

// ResolveRelated returns the parent of an attachment as a tagged union,
// dispatching on the attachment's related type.
func (s *AttachmentService) ResolveRelated(attachment *model.Attachment) (*model.Related, error) {
	switch attachment.RelatedType {
	case model.RelatedComplaint:
		complaint, err := s.complaints.FindByID(attachment.RelatedID)
		if err != nil {
			return nil, err
		}
		if complaint == nil {
			return nil, ErrInvalidReference
		}
		return &model.Related{Type: model.RelatedComplaint, Complaint: complaint}, nil

	case model.RelatedResponse:
		response, err := s.responses.FindByID(attachment.RelatedID)
		if err != nil {
			return nil, err
		}
		if response == nil {
			return nil, ErrInvalidReference
		}
		return &model.Related{Type: model.RelatedResponse, Response: response}, nil
	}

	return nil, ErrInvalidArgument
}

// ListByRelated returns the attachments of a complaint or response, gated by
// access to the governing complaint.
func (s *AttachmentService) ListByRelated(claim auth.IdentityClaim, relatedType model.RelatedType, relatedID uuid.UUID) ([]model.Attachment, error) {
	complaint, err := s.parentComplaint(relatedType, relatedID)
	if err != nil {
		return nil, err
	}

	own := auth.Ownership{Owner: complaint.SubmittedByID == claim.UserID}
	if claim.Role == model.RoleOfficial && complaint.AssignedToID != nil {
		agency, err := s.agencies.FindByAdministrator(claim.UserID)
		if err != nil {
			return nil, err
		}
		own.AgencyMatch = agency != nil && agency.ID == *complaint.AssignedToID
	}
	if !auth.Allowed(claim, auth.ActionViewComplaint, own) {
		return nil, ErrForbidden
	}

	attachments, err := s.attachments.FindByRelated(relatedType, relatedID)
	if err != nil {
		return nil, err
	}
	if attachments == nil {
		attachments = []model.Attachment{}
	}
	return attachments, nil
}
