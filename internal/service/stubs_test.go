package service

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"projecthub/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

// stubUserRepository keeps users in memory and mimics the postgres behavior
// the services rely on: unique violations on username/email and
// sql.ErrNoRows on misses.
type stubUserRepository struct {
	users     []*models.User
	updates   map[string]*models.UserUpdate
	updateErr error
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{updates: map[string]*models.UserUpdate{}}
}

func (r *stubUserRepository) Create(user *models.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return &pq.Error{Code: "23505"}
		}
	}
	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *stubUserRepository) GetByIdentifier(identifier string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == identifier || u.Email == strings.ToLower(identifier) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *stubUserRepository) GetByID(id string) (*models.UserInfoExtended, error) {
	for _, u := range r.users {
		if u.ID == id {
			return &models.UserInfoExtended{
				ID:        u.ID,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Username:  u.Username,
				Email:     u.Email,
				Role:      u.Role,
			}, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *stubUserRepository) GetByClaims(id, email, username string) (*models.UserInfo, error) {
	for _, u := range r.users {
		if u.ID == id && u.Email == email && u.Username == username {
			return &models.UserInfo{
				ID:        u.ID,
				Email:     u.Email,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Username:  u.Username,
				Role:      u.Role,
			}, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *stubUserRepository) List(offset, limit int) ([]models.UserInfoExtended, error) {
	users := []models.UserInfoExtended{}
	for i := offset; i < len(r.users) && i < offset+limit; i++ {
		info, _ := r.GetByID(r.users[i].ID)
		users = append(users, *info)
	}
	return users, nil
}

func (r *stubUserRepository) Update(id string, upd *models.UserUpdate) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for _, u := range r.users {
		if u.ID == id {
			r.updates[id] = upd
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *stubUserRepository) CountUsers() (int, error) {
	return len(r.users), nil
}

// stubProjectRepository tracks projects by owner and records inserted member
// and document rows.
type stubProjectRepository struct {
	owners      map[string]string // project id -> owner id
	members     []*models.ProjectMember
	documents   []*models.ProjectDocument
	lastOffset  int
	lastLimit   int
	addDocErr   error
	listResults []models.ProjectInfo
}

func newStubProjectRepository() *stubProjectRepository {
	return &stubProjectRepository{owners: map[string]string{}}
}

func (r *stubProjectRepository) Create(project *models.Project) error {
	r.owners[project.ID] = project.OwnerID
	return nil
}

func (r *stubProjectRepository) Exists(id string) (bool, error) {
	_, ok := r.owners[id]
	return ok, nil
}

func (r *stubProjectRepository) IsOwnedBy(id, ownerID string) (bool, error) {
	return r.owners[id] == ownerID, nil
}

func (r *stubProjectRepository) AddMembers(member *models.ProjectMember) error {
	cp := *member
	r.members = append(r.members, &cp)
	return nil
}

func (r *stubProjectRepository) ListByOwner(ownerID string, offset, limit int) ([]models.ProjectInfo, error) {
	r.lastOffset = offset
	r.lastLimit = limit
	return r.listResults, nil
}

func (r *stubProjectRepository) ListMembers(projectID, ownerID string) ([]models.ProjectMember, error) {
	members := []models.ProjectMember{}
	for _, m := range r.members {
		if m.ProjectID == projectID && r.owners[projectID] == ownerID {
			members = append(members, *m)
		}
	}
	return members, nil
}

func (r *stubProjectRepository) AddDocument(document *models.ProjectDocument) error {
	if r.addDocErr != nil {
		return r.addDocErr
	}
	cp := *document
	r.documents = append(r.documents, &cp)
	return nil
}

// stubStorage records saved and removed keys.
type stubStorage struct {
	saved   map[string][]byte
	removed []string
	saveErr error
}

func newStubStorage() *stubStorage {
	return &stubStorage{saved: map[string][]byte{}}
}

func (s *stubStorage) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.saved[key] = data
	return "/uploads/" + key, nil
}

func (s *stubStorage) Remove(ctx context.Context, key string) error {
	delete(s.saved, key)
	s.removed = append(s.removed, key)
	return nil
}

// makeFileHeaders builds real multipart.FileHeader values by writing and
// re-parsing a multipart body.
func makeFileHeaders(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for i, name := range names {
		fw, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fmt.Fprintf(fw, "content of file %d", i)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["files"]
}
