package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"projecthub/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByIdentifier(identifier string) (*models.User, error)
	GetByID(id string) (*models.UserInfoExtended, error)
	GetByClaims(id, email, username string) (*models.UserInfo, error)
	List(offset, limit int) ([]models.UserInfoExtended, error)
	Update(id string, upd *models.UserUpdate) error
	CountUsers() (int, error)
}

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *sqlx.DB, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) Create(user *models.User) error {
	query := `INSERT INTO users (id, first_name, last_name, username, email, password, role)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	return r.db.QueryRowx(query, user.ID, user.FirstName, user.LastName, user.Username,
		user.Email, user.Password, user.Role).StructScan(user)
}

// GetByIdentifier looks a user up by username or lowercased email.
func (r *userRepository) GetByIdentifier(identifier string) (*models.User, error) {
	var user models.User
	query := `SELECT id, first_name, last_name, username, email, password, profile_picture, role,
	                 is_verified, is_deleted, created_at, updated_at
	          FROM users WHERE username = $1 OR email = $2 LIMIT 1`
	err := r.db.Get(&user, query, identifier, strings.ToLower(identifier))
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(id string) (*models.UserInfoExtended, error) {
	var user models.UserInfoExtended
	query := `SELECT id, first_name, last_name, username, email, role, profile_picture,
	                 is_verified, is_deleted, created_at, updated_at
	          FROM users WHERE id = $1`
	err := r.db.Get(&user, query, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByClaims resolves a user only when id, email and username all still
// match, so tokens minted before an account mutation stop resolving.
func (r *userRepository) GetByClaims(id, email, username string) (*models.UserInfo, error) {
	var user models.UserInfo
	query := `SELECT id, email, first_name, last_name, username, role
	          FROM users WHERE id = $1 AND email = $2 AND username = $3 LIMIT 1`
	err := r.db.Get(&user, query, id, email, username)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(offset, limit int) ([]models.UserInfoExtended, error) {
	users := []models.UserInfoExtended{}
	query := `SELECT id, first_name, last_name, username, email, role, profile_picture,
	                 is_verified, is_deleted, created_at, updated_at
	          FROM users ORDER BY created_at, id OFFSET $1 LIMIT $2`
	err := r.db.Select(&users, query, offset, limit)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update writes only the fields present in upd and always stamps updated_at.
func (r *userRepository) Update(id string, upd *models.UserUpdate) error {
	set := []string{}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.FirstName != nil {
		add("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		add("last_name", *upd.LastName)
	}
	if upd.Username != nil {
		add("username", *upd.Username)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Role != nil {
		add("role", *upd.Role)
	}
	if upd.IsVerified != nil {
		add("is_verified", *upd.IsVerified)
	}
	if upd.IsDeleted != nil {
		add("is_deleted", *upd.IsDeleted)
	}
	if upd.ProfilePicture != nil {
		add("profile_picture", *upd.ProfilePicture)
	}
	add("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args))

	res, err := r.db.Exec(query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *userRepository) CountUsers() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users`
	err := r.db.Get(&count, query)
	if err != nil {
		return 0, err
	}
	return count, nil
}
