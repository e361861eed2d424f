package repository

import (
	"database/sql"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"complaint-service/internal/model"
)

type AgencyRepository struct {
	db *sql.DB
}

func NewAgencyRepository(db *sql.DB) *AgencyRepository {
	return &AgencyRepository{db: db}
}

const agencyColumns = `id, name, description, address, phone, email, website, administrator_id, status, created_at`

func scanAgency(row interface{ Scan(...interface{}) error }) (*model.Agency, error) {
	agency := &model.Agency{}
	var description, address, phone, email, website sql.NullString

	err := row.Scan(
		&agency.ID,
		&agency.Name,
		&description,
		&address,
		&phone,
		&email,
		&website,
		&agency.AdministratorID,
		&agency.Status,
		&agency.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		agency.Description = &description.String
	}
	if address.Valid {
		agency.Address = &address.String
	}
	if phone.Valid {
		agency.Phone = &phone.String
	}
	if email.Valid {
		agency.Email = &email.String
	}
	if website.Valid {
		agency.Website = &website.String
	}

	return agency, nil
}

func (r *AgencyRepository) FindByID(id uuid.UUID) (*model.Agency, error) {
	query := `SELECT ` + agencyColumns + ` FROM agencies WHERE id = $1`
	agency, err := scanAgency(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return agency, nil
}

// FindByAdministrator returns the agency an official administers, or nil.
// An official administers at most one agency.
func (r *AgencyRepository) FindByAdministrator(userID uuid.UUID) (*model.Agency, error) {
	query := `SELECT ` + agencyColumns + ` FROM agencies WHERE administrator_id = $1`
	agency, err := scanAgency(r.db.QueryRow(query, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return agency, nil
}

func (r *AgencyRepository) FindAll() ([]model.Agency, error) {
	query := `SELECT ` + agencyColumns + ` FROM agencies ORDER BY name ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agencies []model.Agency
	for rows.Next() {
		agency, err := scanAgency(rows)
		if err != nil {
			return nil, err
		}
		agencies = append(agencies, *agency)
	}
	return agencies, rows.Err()
}

// Provision inserts the official user and their agency as one transaction:
// either both rows are committed or neither is.
func (r *AgencyRepository) Provision(official *model.User, agency *model.Agency) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	userQuery := `
		INSERT INTO users (id, first_name, last_name, email, password_hash, phone, address, role, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.Exec(userQuery,
		official.ID,
		official.FirstName,
		official.LastName,
		official.Email,
		official.PasswordHash,
		official.Phone,
		official.Address,
		official.Role,
		official.Status,
		official.CreatedAt,
	)
	if err != nil {
		return err
	}

	agencyQuery := `
		INSERT INTO agencies (id, name, description, address, phone, email, website, administrator_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.Exec(agencyQuery,
		agency.ID,
		agency.Name,
		agency.Description,
		agency.Address,
		agency.Phone,
		agency.Email,
		agency.Website,
		agency.AdministratorID,
		agency.Status,
		agency.CreatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}
