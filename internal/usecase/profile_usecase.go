package usecase

import (
	"context"
	"io"

	"lapak/internal/domain/entity"
)

// HobbyInput is one ordered hobby record.
type HobbyInput struct {
	Name  string `validate:"required"`
	Value string `validate:"required"`
}

// UpdateProfileInput defines the editable profile fields. Nil pointers leave
// the stored value untouched.
type UpdateProfileInput struct {
	Username *string
	Address  *string
	Phone    *string
	Hobbies  []HobbyInput
}

// ChangeEmailInput defines an email change, which requires the current
// password for re-authentication.
type ChangeEmailInput struct {
	NewEmail string `validate:"required,email"`
	Password string `validate:"required"`
}

// UploadPhotoInput carries one profile photo upload.
type UploadPhotoInput struct {
	Filename    string `validate:"required"`
	ContentType string
	Body        io.Reader
}

// ProfileUsecase defines the self-service profile operations.
type ProfileUsecase interface {
	// GetProfile retrieves the caller's own record.
	GetProfile(ctx context.Context, userID string) (*entity.User, error)

	// UpdateProfile merges the changed fields into the caller's record.
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error)

	// ChangeEmail re-authenticates with the current password, then rewrites
	// the email. A taken email surfaces as a field error on "email".
	ChangeEmail(ctx context.Context, userID string, input ChangeEmailInput) (*entity.User, error)

	// UploadPhoto stores the photo and records its URL on the profile.
	UploadPhoto(ctx context.Context, userID string, input UploadPhotoInput) (string, error)
}
