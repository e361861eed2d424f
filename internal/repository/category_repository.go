package repository

import (
	"database/sql"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"complaint-service/internal/model"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func scanCategory(row interface{ Scan(...interface{}) error }) (*model.Category, error) {
	category := &model.Category{}
	var defaultAgencyID sql.NullString

	err := row.Scan(
		&category.ID,
		&category.Name,
		&defaultAgencyID,
		&category.IsActive,
	)
	if err != nil {
		return nil, err
	}

	if defaultAgencyID.Valid {
		id, err := uuid.Parse(defaultAgencyID.String)
		if err == nil {
			category.DefaultAgencyID = &id
		}
	}

	return category, nil
}

func (r *CategoryRepository) FindByID(id int) (*model.Category, error) {
	query := `SELECT id, name, default_agency_id, is_active FROM categories WHERE id = $1`
	category, err := scanCategory(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepository) FindAll() ([]model.Category, error) {
	query := `SELECT id, name, default_agency_id, is_active FROM categories ORDER BY name ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Create(category *model.Category) error {
	query := `
		INSERT INTO categories (name, default_agency_id, is_active)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.db.QueryRow(query, category.Name, category.DefaultAgencyID, category.IsActive).Scan(&category.ID)
}
