package rtdb

import (
	"context"
	"sort"

	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/repository"
	"lapak/internal/domain/service"
	"lapak/internal/infra/persistence/model"

	"github.com/pkg/errors"
)

// userRepository implements repository.UserRepository over the document store.
type userRepository struct {
	store service.DocumentStore
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(store service.DocumentStore) repository.UserRepository {
	return &userRepository{store: store}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var doc model.UserDoc
	if err := repo.store.Get(ctx, userPath(id), &doc); err != nil {
		if errors.Is(err, service.ErrPathNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to find user by id")
	}

	return toUserDomain(id, &doc), nil
}

// FindByEmail retrieves a single user by their email address. The tree is
// keyed by user ID, so this scans the users node.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	docs, err := repo.readAll(ctx)
	if err != nil {
		return nil, err
	}

	for id, doc := range docs {
		if doc.Email == email {
			return toUserDomain(id, &doc), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// List retrieves all users in storage order.
func (repo *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	docs, err := repo.readAll(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0, len(docs))
	for id, doc := range docs {
		users = append(users, toUserDomain(id, &doc))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

// Create persists a new user entity keyed by its ID. Timestamps are assigned
// by the store's server clock.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	doc := fromUserDomain(user)
	doc.CreatedAt = repo.store.ServerTimestamp()
	doc.UpdatedAt = repo.store.ServerTimestamp()

	if err := repo.store.Set(ctx, userPath(user.ID), doc); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to create user")
	}

	return nil
}

// Update merges the mutable profile fields of an existing user. Role, level
// and the moderation flag have dedicated operations and are never touched here.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	hobbies := make([]model.HobbyDoc, 0, len(user.Hobbies))
	for _, hobby := range user.Hobbies {
		hobbies = append(hobbies, model.HobbyDoc{Name: hobby.Name, Value: hobby.Value})
	}

	fields := map[string]any{
		"username":  user.Username,
		"email":     user.Email,
		"address":   user.Address,
		"phone":     user.Phone,
		"photoUrl":  user.PhotoURL,
		"hobbies":   hobbies,
		"updatedAt": repo.store.ServerTimestamp(),
	}

	if err := repo.store.Update(ctx, userPath(user.ID), fields); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to update user")
	}

	return nil
}

// UpdateRole rewrites the user's role together with its derived level.
func (repo *userRepository) UpdateRole(ctx context.Context, id string, role entity.Role) error {
	fields := map[string]any{
		"role":      role.String(),
		"level":     int(role.Level()),
		"updatedAt": repo.store.ServerTimestamp(),
	}

	if err := repo.store.Update(ctx, userPath(id), fields); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to update user role")
	}

	return nil
}

// SetBlocked flips the moderation flag on the user.
func (repo *userRepository) SetBlocked(ctx context.Context, id string, blocked bool) error {
	fields := map[string]any{
		"blocked":   blocked,
		"updatedAt": repo.store.ServerTimestamp(),
	}

	if err := repo.store.Update(ctx, userPath(id), fields); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to update user blocked flag")
	}

	return nil
}

// Delete removes the user record.
func (repo *userRepository) Delete(ctx context.Context, id string) error {
	if err := repo.store.Remove(ctx, userPath(id)); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to delete user")
	}

	return nil
}

func (repo *userRepository) readAll(ctx context.Context) (map[string]model.UserDoc, error) {
	var docs map[string]model.UserDoc
	if err := repo.store.Get(ctx, usersPath, &docs); err != nil {
		if errors.Is(err, service.ErrPathNotFound) {
			return nil, nil
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to list users")
	}

	return docs, nil
}

// --- Mapper Functions ---

// toUserDomain converts a stored user document to a domain User entity. The
// role string is parsed leniently: unknown roles degrade to customer.
func toUserDomain(id string, doc *model.UserDoc) *entity.User {
	hobbies := make([]entity.Hobby, 0, len(doc.Hobbies))
	for _, hobby := range doc.Hobbies {
		hobbies = append(hobbies, entity.Hobby{Name: hobby.Name, Value: hobby.Value})
	}

	return &entity.User{
		ID:        id,
		Username:  doc.Username,
		Email:     doc.Email,
		Role:      entity.ParseRole(doc.Role),
		Address:   doc.Address,
		Phone:     doc.Phone,
		Blocked:   doc.Blocked,
		PhotoURL:  doc.PhotoURL,
		Hobbies:   hobbies,
		CreatedAt: model.TimeOf(doc.CreatedAt),
		UpdatedAt: model.TimeOf(doc.UpdatedAt),
	}
}

// fromUserDomain converts a domain User entity to its stored document.
func fromUserDomain(user *entity.User) *model.UserDoc {
	hobbies := make([]model.HobbyDoc, 0, len(user.Hobbies))
	for _, hobby := range user.Hobbies {
		hobbies = append(hobbies, model.HobbyDoc{Name: hobby.Name, Value: hobby.Value})
	}

	return &model.UserDoc{
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role.String(),
		Level:    int(user.Role.Level()),
		Address:  user.Address,
		Phone:    user.Phone,
		Blocked:  user.Blocked,
		PhotoURL: user.PhotoURL,
		Hobbies:  hobbies,
	}
}

func toSnapshotDomain(doc model.SnapshotDoc) entity.ProfileSnapshot {
	return entity.ProfileSnapshot{
		UserID:   doc.UserID,
		Username: doc.Username,
		Email:    doc.Email,
		Address:  doc.Address,
		Phone:    doc.Phone,
		Blocked:  doc.Blocked,
	}
}

func fromSnapshotDomain(snapshot entity.ProfileSnapshot) model.SnapshotDoc {
	return model.SnapshotDoc{
		UserID:   snapshot.UserID,
		Username: snapshot.Username,
		Email:    snapshot.Email,
		Address:  snapshot.Address,
		Phone:    snapshot.Phone,
		Blocked:  snapshot.Blocked,
	}
}
