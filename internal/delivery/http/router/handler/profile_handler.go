package handler

import (
	"net/http"

	"lapak/internal/delivery/http/middleware"
	"lapak/internal/delivery/http/response"
	"lapak/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for self-service profile handlers.
type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

type hobbyRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type updateProfileRequest struct {
	Username *string        `json:"username"`
	Address  *string        `json:"address"`
	Phone    *string        `json:"phone"`
	Hobbies  []hobbyRequest `json:"hobbies"`
}

type changeEmailRequest struct {
	NewEmail string `json:"newEmail"`
	Password string `json:"password"`
}

// Get retrieves the caller's profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	user, err := h.uc.GetProfile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile retrieved successfully")
}

// Update merges changed profile fields.
func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	input := usecase.UpdateProfileInput{
		Username: req.Username,
		Address:  req.Address,
		Phone:    req.Phone,
	}
	if req.Hobbies != nil {
		input.Hobbies = make([]usecase.HobbyInput, 0, len(req.Hobbies))
		for _, hobby := range req.Hobbies {
			input.Hobbies = append(input.Hobbies, usecase.HobbyInput{Name: hobby.Name, Value: hobby.Value})
		}
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), middleware.UserID(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile updated successfully")
}

// ChangeEmail rewrites the caller's email after re-authentication.
func (h *ProfileHandler) ChangeEmail(c echo.Context) error {
	var req changeEmailRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}

	user, err := h.uc.ChangeEmail(c.Request().Context(), middleware.UserID(c), usecase.ChangeEmailInput{
		NewEmail: req.NewEmail,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Email changed successfully")
}

// UploadPhoto stores a new profile photo.
func (h *ProfileHandler) UploadPhoto(c echo.Context) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "photo file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	url, err := h.uc.UploadPhoto(c.Request().Context(), middleware.UserID(c), usecase.UploadPhotoInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"photoUrl": url}, "Photo uploaded successfully")
}
