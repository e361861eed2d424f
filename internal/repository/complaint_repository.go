package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"complaint-service/internal/model"
)

type ComplaintRepository struct {
	db *sql.DB
}

func NewComplaintRepository(db *sql.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

const complaintColumns = `
	c.id, c.title, c.description, c.category_id, c.status, c.priority,
	c.location, c.latitude, c.longitude, c.submitted_by_id, c.assigned_to_id,
	c.resolution_date, c.resolution_details, c.created_at, c.updated_at,
	cat.id, cat.name, cat.default_agency_id, cat.is_active,
	u.first_name || ' ' || u.last_name`

const complaintJoins = `
	FROM complaints c
	JOIN categories cat ON c.category_id = cat.id
	JOIN users u ON c.submitted_by_id = u.id`

func (r *ComplaintRepository) Create(complaint *model.Complaint) error {
	query := `
		INSERT INTO complaints (id, title, description, category_id, status, priority,
			location, latitude, longitude, submitted_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(query,
		complaint.ID,
		complaint.Title,
		complaint.Description,
		complaint.CategoryID,
		complaint.Status,
		complaint.Priority,
		complaint.Location,
		complaint.Latitude,
		complaint.Longitude,
		complaint.SubmittedByID,
		complaint.CreatedAt,
		complaint.UpdatedAt,
	)
	return err
}

func scanComplaint(row interface{ Scan(...interface{}) error }) (*model.Complaint, error) {
	complaint := &model.Complaint{Category: &model.Category{}}
	var location, resolutionDetails sql.NullString
	var latitude, longitude sql.NullFloat64
	var assignedToID, defaultAgencyID sql.NullString
	var resolutionDate sql.NullTime
	var submitterName sql.NullString

	err := row.Scan(
		&complaint.ID,
		&complaint.Title,
		&complaint.Description,
		&complaint.CategoryID,
		&complaint.Status,
		&complaint.Priority,
		&location,
		&latitude,
		&longitude,
		&complaint.SubmittedByID,
		&assignedToID,
		&resolutionDate,
		&resolutionDetails,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
		&complaint.Category.ID,
		&complaint.Category.Name,
		&defaultAgencyID,
		&complaint.Category.IsActive,
		&submitterName,
	)
	if err != nil {
		return nil, err
	}

	if location.Valid {
		complaint.Location = &location.String
	}
	if latitude.Valid {
		complaint.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		complaint.Longitude = &longitude.Float64
	}
	if resolutionDetails.Valid {
		complaint.ResolutionDetails = &resolutionDetails.String
	}
	if resolutionDate.Valid {
		t := resolutionDate.Time
		complaint.ResolutionDate = &t
	}
	if assignedToID.Valid {
		id, err := uuid.Parse(assignedToID.String)
		if err == nil {
			complaint.AssignedToID = &id
		}
	}
	if defaultAgencyID.Valid {
		id, err := uuid.Parse(defaultAgencyID.String)
		if err == nil {
			complaint.Category.DefaultAgencyID = &id
		}
	}
	if submitterName.Valid {
		complaint.SubmitterName = &submitterName.String
	}

	return complaint, nil
}

func (r *ComplaintRepository) FindByID(id uuid.UUID) (*model.Complaint, error) {
	query := `SELECT ` + complaintColumns + complaintJoins + ` WHERE c.id = $1`

	complaint, err := scanComplaint(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return complaint, nil
}

func (r *ComplaintRepository) queryComplaints(query string, args ...interface{}) ([]model.Complaint, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []model.Complaint
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		complaints = append(complaints, *complaint)
	}
	return complaints, rows.Err()
}

func (r *ComplaintRepository) FindAll() ([]model.Complaint, error) {
	query := `SELECT ` + complaintColumns + complaintJoins + ` ORDER BY c.created_at DESC`
	return r.queryComplaints(query)
}

func (r *ComplaintRepository) FindBySubmitter(userID uuid.UUID) ([]model.Complaint, error) {
	query := `SELECT ` + complaintColumns + complaintJoins + `
		WHERE c.submitted_by_id = $1 ORDER BY c.created_at DESC`
	return r.queryComplaints(query, userID)
}

func (r *ComplaintRepository) FindByAgency(agencyID uuid.UUID) ([]model.Complaint, error) {
	query := `SELECT ` + complaintColumns + complaintJoins + `
		WHERE c.assigned_to_id = $1 ORDER BY c.created_at DESC`
	return r.queryComplaints(query, agencyID)
}

// UpdateContent edits the citizen-owned fields. Only non-nil fields change.
func (r *ComplaintRepository) UpdateContent(id uuid.UUID, req *model.UpdateComplaintRequest) error {
	query := `
		UPDATE complaints SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			category_id = COALESCE($4, category_id),
			location = COALESCE($5, location),
			latitude = COALESCE($6, latitude),
			longitude = COALESCE($7, longitude),
			updated_at = $8
		WHERE id = $1
	`
	_, err := r.db.Exec(query, id, req.Title, req.Description, req.CategoryID,
		req.Location, req.Latitude, req.Longitude, time.Now())
	return err
}

// UpdateStatus performs a conditional status write: the row only changes if
// its current status still matches the one the caller validated against.
// Returns false when no row matched, which the service maps to a conflict.
func (r *ComplaintRepository) UpdateStatus(id uuid.UUID, from, to model.ComplaintStatus,
	resolutionDate *time.Time, resolutionDetails *string) (bool, error) {

	query := `
		UPDATE complaints SET
			status = $3,
			resolution_date = COALESCE($4, resolution_date),
			resolution_details = COALESCE($5, resolution_details),
			updated_at = $6
		WHERE id = $1 AND status = $2
	`
	result, err := r.db.Exec(query, id, from, to, resolutionDate, resolutionDetails, time.Now())
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// UpdateAssignment sets the assigned agency, optionally advancing status, with
// the same conditional-write conflict guard as UpdateStatus.
func (r *ComplaintRepository) UpdateAssignment(id uuid.UUID, agencyID uuid.UUID,
	from, to model.ComplaintStatus) (bool, error) {

	query := `
		UPDATE complaints SET
			assigned_to_id = $3,
			status = $4,
			updated_at = $5
		WHERE id = $1 AND status = $2
	`
	result, err := r.db.Exec(query, id, from, agencyID, to, time.Now())
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
