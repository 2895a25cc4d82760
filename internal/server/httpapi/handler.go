package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sanjaympqwer/TASK-MASTER/internal/common"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/models"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/services"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"accessToken"`
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type suggestRequest struct {
	Title               string `json:"title"`
	ExistingDescription string `json:"existingDescription"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps service errors onto HTTP statuses with uniform bodies.
// Unknown errors become a bare 500 so internals never leak to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		errorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorInvalidCredentials):
		errorJSON(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, common.ErrorNotAuthenticated):
		errorJSON(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, common.ErrorEmailTaken):
		errorJSON(w, http.StatusConflict, "email already registered")
	case errors.Is(err, common.ErrorNotFound):
		errorJSON(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorSuggestionUnavailable):
		errorJSON(w, http.StatusBadGateway, "suggestion service unavailable")
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", common.ErrorValidation)
	}
	return nil
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.sessions.Create(w, user.ID); err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.users.AccessToken(user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user signed up", "userID", user.ID)
	writeJSON(w, http.StatusCreated, authResponse{User: user, AccessToken: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.sessions.Create(w, user.ID); err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.users.AccessToken(user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user logged in", "userID", user.ID)
	writeJSON(w, http.StatusOK, authResponse{User: user, AccessToken: token})
}

// handleLogout clears the session cookie. It never fails, even without one.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Destroy(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByID(r.Context(), currentUserID(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), currentUserID(r.Context()), req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleAvatarUpload hands the client a presigned PUT URL and records the
// fresh object key on the account. The client uploads directly to storage.
// The key is recorded before the upload happens; if the client abandons the
// PUT the key points at nothing until the next upload request overwrites it.
func (s *Server) handleAvatarUpload(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r.Context())

	key, uploadURL, err := s.users.AvatarUploadURL(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.users.SetAvatar(r.Context(), userID, key); err != nil {
		s.writeError(w, r, err)
		return
	}

	downloadURL, err := s.users.AvatarDownloadURL(r.Context(), key)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"key":         key,
		"uploadUrl":   uploadURL,
		"downloadUrl": downloadURL,
	})
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.List(r.Context(), currentUserID(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Status == "" {
		req.Status = models.StatusTodo
	}

	task, err := s.tasks.Create(r.Context(), currentUserID(r.Context()), req.Title, req.Description, req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	patch := services.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}

	task, err := s.tasks.Update(r.Context(), currentUserID(r.Context()), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ok, err := s.tasks.Delete(r.Context(), currentUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

func (s *Server) handleSuggestDescription(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	text, err := s.suggestions.SuggestDescription(r.Context(), req.Title, req.ExistingDescription)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"description": text})
}
