package rest

import (
	"net/http"

	"github.com/dmitrijs2005/taskmanager/internal/server/validation"
)

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req validation.SignupRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	in, err := validation.ValidateSignup(req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	user, err := s.users.Signup(r.Context(), in.Email, in.FullName, in.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) signinHandler(w http.ResponseWriter, r *http.Request) {
	var req validation.SigninRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	in, err := validation.ValidateSignin(req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	res, err := s.users.Signin(r.Context(), in.Email, in.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromContext(r.Context())

	var req validation.CreateTaskRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	in, err := validation.ValidateCreateTask(req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	task, err := s.tasks.Create(r.Context(), id, in.Title, in.Description)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromContext(r.Context())

	tasks, err := s.tasks.ListOwned(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) getTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromContext(r.Context())

	task, err := s.tasks.Get(r.Context(), id, r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (s *Server) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromContext(r.Context())

	var req validation.UpdateTaskRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	patch, err := validation.ValidateUpdateTask(req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	task, err := s.tasks.Update(r.Context(), id, r.PathValue("id"), patch)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromContext(r.Context())

	task, err := s.tasks.Delete(r.Context(), id, r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}
