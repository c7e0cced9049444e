package impl

import (
	"context"
	"log/slog"

	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/repository"
	"lapak/internal/domain/service"
	"lapak/internal/usecase"

	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo     repository.UserRepository
	reauth       service.Reauthenticator
	imageStorage service.ImageStorage
	logger       *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	userRepo repository.UserRepository,
	reauth service.Reauthenticator,
	imageStorage service.ImageStorage,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		userRepo:     userRepo,
		reauth:       reauth,
		imageStorage: imageStorage,
		logger:       logger,
	}
}

// GetProfile retrieves the caller's own record.
func (srv *profileService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return srv.findUser(ctx, userID)
}

// UpdateProfile merges the changed fields into the caller's record. Nil
// pointers leave the stored value untouched; a hobby list replaces the stored
// list wholesale.
func (srv *profileService) UpdateProfile(ctx context.Context, userID string, input usecase.UpdateProfileInput) (*entity.User, error) {
	if input.Username != nil && *input.Username == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username must not be empty")
	}
	for _, hobby := range input.Hobbies {
		if err := validateInput(hobby); err != nil {
			return nil, err
		}
	}

	user, err := srv.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Hobbies != nil {
		hobbies := make([]entity.Hobby, 0, len(input.Hobbies))
		for _, hobby := range input.Hobbies {
			hobbies = append(hobbies, entity.Hobby{Name: hobby.Name, Value: hobby.Value})
		}
		user.Hobbies = hobbies
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	return user, nil
}

// ChangeEmail re-authenticates with the current password, then rewrites the
// email. The password check happens before any uniqueness probe so a wrong
// password never leaks whether the address is taken.
func (srv *profileService) ChangeEmail(ctx context.Context, userID string, input usecase.ChangeEmailInput) (*entity.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	user, err := srv.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Blocked {
		return nil, domainerrors.ErrUserBlocked
	}
	if user.Email == input.NewEmail {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email is unchanged")
	}

	if err := srv.reauth.Reauthenticate(ctx, user.Email, input.Password); err != nil {
		return nil, err
	}

	if _, err := srv.userRepo.FindByEmail(ctx, input.NewEmail); err == nil {
		return nil, domainerrors.ErrEmailInUse
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email")
	}

	user.Email = input.NewEmail
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update email")
	}

	log(ctx, srv.logger).InfoContext(ctx, "email changed",
		slog.String("user_id", userID),
	)

	return user, nil
}

// UploadPhoto stores the photo and records its URL on the profile. The
// previous photo is removed once the new URL is recorded.
func (srv *profileService) UploadPhoto(ctx context.Context, userID string, input usecase.UploadPhotoInput) (string, error) {
	if err := validateInput(input); err != nil {
		return "", err
	}

	user, err := srv.findUser(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := srv.imageStorage.UploadImage(ctx, "profiles", input.Filename, input.ContentType, input.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to upload profile photo")
	}

	previous := user.PhotoURL
	user.PhotoURL = url
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return "", errors.Wrap(err, "failed to record profile photo")
	}

	if previous != "" {
		_ = srv.imageStorage.DeleteImage(ctx, previous)
	}

	return url, nil
}

func (srv *profileService) findUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}
