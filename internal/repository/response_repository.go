package repository

import (
	"database/sql"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"complaint-service/internal/model"
)

type ResponseRepository struct {
	db *sql.DB
}

func NewResponseRepository(db *sql.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

func (r *ResponseRepository) Create(response *model.Response) error {
	query := `
		INSERT INTO responses (id, complaint_id, content, responded_by_id, internal_notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(query,
		response.ID,
		response.ComplaintID,
		response.Content,
		response.RespondedByID,
		response.InternalNotes,
		response.CreatedAt,
	)
	return err
}

func scanResponse(row interface{ Scan(...interface{}) error }) (*model.Response, error) {
	response := &model.Response{}
	var internalNotes, responderName sql.NullString

	err := row.Scan(
		&response.ID,
		&response.ComplaintID,
		&response.Content,
		&response.RespondedByID,
		&internalNotes,
		&response.CreatedAt,
		&responderName,
	)
	if err != nil {
		return nil, err
	}

	if internalNotes.Valid {
		response.InternalNotes = &internalNotes.String
	}
	if responderName.Valid {
		response.ResponderName = &responderName.String
	}

	return response, nil
}

const responseSelect = `
	SELECT r.id, r.complaint_id, r.content, r.responded_by_id, r.internal_notes, r.created_at,
		u.first_name || ' ' || u.last_name
	FROM responses r
	JOIN users u ON r.responded_by_id = u.id`

func (r *ResponseRepository) FindByID(id uuid.UUID) (*model.Response, error) {
	query := responseSelect + ` WHERE r.id = $1`
	response, err := scanResponse(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (r *ResponseRepository) FindByComplaint(complaintID uuid.UUID) ([]model.Response, error) {
	query := responseSelect + ` WHERE r.complaint_id = $1 ORDER BY r.created_at ASC`
	rows, err := r.db.Query(query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []model.Response
	for rows.Next() {
		response, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}
	return responses, rows.Err()
}
