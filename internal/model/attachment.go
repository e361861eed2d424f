package model

import (
	"time"

	"github.com/google/uuid"
)

// RelatedType tags the polymorphic parent of an attachment. The storage layer
// cannot enforce a foreign key across the two target tables, so existence is
// validated at attach time.
type RelatedType string

const (
	RelatedComplaint RelatedType = "complaint"
	RelatedResponse  RelatedType = "response"
)

type Attachment struct {
	ID           uuid.UUID   `json:"id"`
	FileName     string      `json:"file_name"`
	FileType     string      `json:"file_type"`
	FileSize     int64       `json:"file_size"`
	FilePath     string      `json:"file_path"`
	UploadedByID uuid.UUID   `json:"uploaded_by_id"`
	RelatedType  RelatedType `json:"related_type"`
	RelatedID    uuid.UUID   `json:"related_id"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Related is the resolved parent of an attachment: exactly one of Complaint
// or Response is set, matching the attachment's RelatedType tag.
type Related struct {
	Type      RelatedType `json:"type"`
	Complaint *Complaint  `json:"complaint,omitempty"`
	Response  *Response   `json:"response,omitempty"`
}

type AttachRequest struct {
	FileName    string      `json:"file_name" binding:"required"`
	FileType    string      `json:"file_type" binding:"required"`
	FileSize    int64       `json:"file_size" binding:"required"`
	FilePath    string      `json:"file_path" binding:"required"`
	RelatedType RelatedType `json:"related_type" binding:"required"`
	RelatedID   uuid.UUID   `json:"related_id" binding:"required"`
}
