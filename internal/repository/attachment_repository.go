package repository

import (
	"database/sql"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"complaint-service/internal/model"
)

type AttachmentRepository struct {
	db *sql.DB
}

func NewAttachmentRepository(db *sql.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) Create(attachment *model.Attachment) error {
	query := `
		INSERT INTO attachments (id, file_name, file_type, file_size, file_path,
			uploaded_by_id, related_type, related_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(query,
		attachment.ID,
		attachment.FileName,
		attachment.FileType,
		attachment.FileSize,
		attachment.FilePath,
		attachment.UploadedByID,
		attachment.RelatedType,
		attachment.RelatedID,
		attachment.CreatedAt,
	)
	return err
}

const attachmentColumns = `id, file_name, file_type, file_size, file_path, uploaded_by_id, related_type, related_id, created_at`

func scanAttachment(row interface{ Scan(...interface{}) error }) (*model.Attachment, error) {
	attachment := &model.Attachment{}
	err := row.Scan(
		&attachment.ID,
		&attachment.FileName,
		&attachment.FileType,
		&attachment.FileSize,
		&attachment.FilePath,
		&attachment.UploadedByID,
		&attachment.RelatedType,
		&attachment.RelatedID,
		&attachment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return attachment, nil
}

func (r *AttachmentRepository) FindByID(id uuid.UUID) (*model.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE id = $1`
	attachment, err := scanAttachment(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return attachment, nil
}

// FindByRelated lists attachments for one side of the polymorphic relation.
func (r *AttachmentRepository) FindByRelated(relatedType model.RelatedType, relatedID uuid.UUID) ([]model.Attachment, error) {
	query := `SELECT ` + attachmentColumns + `
		FROM attachments WHERE related_type = $1 AND related_id = $2 ORDER BY created_at ASC`
	rows, err := r.db.Query(query, relatedType, relatedID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []model.Attachment
	for rows.Next() {
		attachment, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, *attachment)
	}
	return attachments, rows.Err()
}
