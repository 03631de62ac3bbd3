package validation

import (
	"strings"

	"github.com/dmitrijs2005/taskmanager/internal/server/models"
)

type SignupRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// UpdateTaskRequest fields are optional; absent fields stay unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

type CreateTaskInput struct {
	Title       string
	Description *string
}

// ValidateSignup trims email and full name; the password is kept verbatim.
func ValidateSignup(req SignupRequest) (SignupRequest, error) {
	in := SignupRequest{
		Email:    strings.TrimSpace(req.Email),
		FullName: strings.TrimSpace(req.FullName),
		Password: req.Password,
	}

	v := newValidator()
	v.checkEmail(in.Email)
	v.checkCond(in.FullName != "", "fullName", "must be provided")
	v.checkPassword(in.Password)

	if err := v.err(); err != nil {
		return SignupRequest{}, err
	}
	return in, nil
}

// ValidateSignin only checks presence and shape; password policy is not
// applied so older accounts can still sign in.
func ValidateSignin(req SigninRequest) (SigninRequest, error) {
	in := SigninRequest{Email: strings.TrimSpace(req.Email), Password: req.Password}

	v := newValidator()
	v.checkEmail(in.Email)
	v.checkCond(in.Password != "", "password", "must be provided")

	if err := v.err(); err != nil {
		return SigninRequest{}, err
	}
	return in, nil
}

func ValidateCreateTask(req CreateTaskRequest) (CreateTaskInput, error) {
	in := CreateTaskInput{Title: strings.TrimSpace(req.Title), Description: req.Description}

	v := newValidator()
	v.checkTitle(in.Title)

	if err := v.err(); err != nil {
		return CreateTaskInput{}, err
	}
	return in, nil
}

func ValidateUpdateTask(req UpdateTaskRequest) (models.TaskPatch, error) {
	patch := models.TaskPatch{Description: req.Description, Completed: req.Completed}

	v := newValidator()
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		v.checkTitle(title)
		patch.Title = &title
	}

	if err := v.err(); err != nil {
		return models.TaskPatch{}, err
	}
	return patch, nil
}
