package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/bet-tracker/internal/auth"
	"github.com/radieske/bet-tracker/internal/auth/repo"
	"github.com/radieske/bet-tracker/internal/blob"
)

const maxPhotoBytes = 1 << 20 // 1MB, mesmo limite do bucket original

// Users é a interface de persistência consumida pelos handlers de auth.
type Users interface {
	Create(ctx context.Context, u repo.User) (repo.User, error)
	GetByEmail(ctx context.Context, email string) (repo.User, error)
	GetByID(ctx context.Context, id string) (repo.User, error)
	UpdateProfileImage(ctx context.Context, id, url string) (repo.User, error)
}

// Server expõe registro, login, logout, perfil e upload de foto.
type Server struct {
	log      *zap.Logger
	users    Users
	tokens   *auth.TokenManager
	sessions *auth.SessionStore
	photos   blob.Store
}

func NewServer(log *zap.Logger, users Users, t *auth.TokenManager, s *auth.SessionStore, photos blob.Store) *Server {
	return &Server{log: log, users: users, tokens: t, sessions: s, photos: photos}
}

// RegisterPublic registra as rotas abertas no router raiz.
func (s *Server) RegisterPublic(r chi.Router) {
	r.Post("/api/auth/register", s.register)
	r.Post("/api/auth/login", s.login)
}

// RegisterProtected registra as rotas que exigem sessão; o middleware de auth
// entra por fora, no main.
func (s *Server) RegisterProtected(r chi.Router) {
	r.Post("/api/auth/logout", s.logout)
	r.Get("/api/auth/user", s.currentUser)
	r.Post("/api/profile/photo", s.uploadPhoto)
}

type credentialsRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type sessionResponse struct {
	Token string    `json:"token"`
	User  repo.User `json:"user"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "email and password (min 8 chars) required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.internal(w, r, "hash password", err)
		return
	}
	u, err := s.users.Create(r.Context(), repo.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if errors.Is(err, repo.ErrEmailTaken) {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		s.internal(w, r, "create user", err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	u, err := s.users.GetByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, repo.ErrNotFound) || (err == nil && !auth.CheckPassword(req.Password, u.PasswordHash)) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		s.internal(w, r, "get user", err)
		return
	}

	sid := uuid.NewString()
	if err := s.sessions.Create(r.Context(), sid, u.ID, s.tokens.TTL()); err != nil {
		s.internal(w, r, "create session", err)
		return
	}
	token, err := s.tokens.Issue(u.ID, sid)
	if err != nil {
		s.internal(w, r, "issue token", err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: u})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	sid, ok := auth.SessionID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}
	if err := s.sessions.Revoke(r.Context(), sid); err != nil {
		s.internal(w, r, "revoke session", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserID(r.Context())
	u, err := s.users.GetByID(r.Context(), uid)
	if errors.Is(err, repo.ErrNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		s.internal(w, r, "get user", err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// uploadPhoto recebe multipart, manda pro blob store e grava a URL no perfil.
func (s *Server) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserID(r.Context())

	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()
	if header.Size > maxPhotoBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large (max 1MB)")
		return
	}

	url, err := s.photos.Put(r.Context(), uid, header.Filename, file)
	if err != nil {
		s.internal(w, r, "store photo", err)
		return
	}
	u, err := s.users.UpdateProfileImage(r.Context(), uid, url)
	if err != nil {
		s.internal(w, r, "update profile image", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u, "imageUrl": url})
}

func (s *Server) internal(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
