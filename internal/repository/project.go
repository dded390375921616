package repository

import (
	"projecthub/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type ProjectRepository interface {
	Create(project *models.Project) error
	Exists(id string) (bool, error)
	IsOwnedBy(id, ownerID string) (bool, error)
	AddMembers(member *models.ProjectMember) error
	ListByOwner(ownerID string, offset, limit int) ([]models.ProjectInfo, error)
	ListMembers(projectID, ownerID string) ([]models.ProjectMember, error)
	AddDocument(document *models.ProjectDocument) error
}

type projectRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewProjectRepository(db *sqlx.DB, logger *zap.Logger) ProjectRepository {
	return &projectRepository{db: db, logger: logger}
}

func (r *projectRepository) Create(project *models.Project) error {
	query := `INSERT INTO projects (id, name, description, city, country, start_date, end_date, status, project_owner_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at, updated_at`
	return r.db.QueryRowx(query, project.ID, project.Name, project.Description, project.City,
		project.Country, project.StartDate, project.EndDate, project.Status, project.OwnerID).StructScan(project)
}

func (r *projectRepository) Exists(id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`
	err := r.db.Get(&exists, query, id)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *projectRepository) IsOwnedBy(id, ownerID string) (bool, error) {
	var owned bool
	query := `SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1 AND project_owner_id = $2)`
	err := r.db.Get(&owned, query, id, ownerID)
	if err != nil {
		return false, err
	}
	return owned, nil
}

func (r *projectRepository) AddMembers(member *models.ProjectMember) error {
	query := `INSERT INTO project_members (id, project_id, email_ids)
	          VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`
	return r.db.QueryRowx(query, member.ID, member.ProjectID, member.EmailIDs).StructScan(member)
}

func (r *projectRepository) ListByOwner(ownerID string, offset, limit int) ([]models.ProjectInfo, error) {
	projects := []models.ProjectInfo{}
	query := `
		SELECT
			p.id,
			p.name,
			p.description,
			p.city,
			p.country,
			p.start_date,
			p.end_date,
			p.status,
			p.created_at,
			p.updated_at,
			p.project_owner_id,
			u.first_name AS owner_first_name,
			u.last_name AS owner_last_name,
			u.email AS owner_email,
			u.username AS owner_username,
			COALESCE((SELECT array_agg(e ORDER BY pm.created_at)
			          FROM project_members pm, unnest(pm.email_ids) AS e
			          WHERE pm.project_id = p.id), '{}') AS member_emails,
			COALESCE((SELECT array_agg(pd.document_path ORDER BY pd.created_at)
			          FROM project_documents pd
			          WHERE pd.project_id = p.id), '{}') AS document_paths
		FROM projects p
		JOIN users u ON u.id = p.project_owner_id
		WHERE p.project_owner_id = $1
		ORDER BY p.created_at, p.id
		OFFSET $2 LIMIT $3
	`
	err := r.db.Select(&projects, query, ownerID, offset, limit)
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// ListMembers returns member rows only for projects owned by ownerID;
// ownership is enforced by the join, not as a separate step.
func (r *projectRepository) ListMembers(projectID, ownerID string) ([]models.ProjectMember, error) {
	members := []models.ProjectMember{}
	query := `
		SELECT pm.id, pm.project_id, pm.email_ids, pm.created_at, pm.updated_at
		FROM project_members pm
		JOIN projects p ON p.id = pm.project_id
		WHERE pm.project_id = $1 AND p.project_owner_id = $2
		ORDER BY pm.created_at, pm.id
	`
	err := r.db.Select(&members, query, projectID, ownerID)
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *projectRepository) AddDocument(document *models.ProjectDocument) error {
	query := `INSERT INTO project_documents (id, project_id, document_path)
	          VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`
	return r.db.QueryRowx(query, document.ID, document.ProjectID, document.DocumentPath).StructScan(document)
}
