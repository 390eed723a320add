package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/inkframe/inkframe/backend-go/internal/command"
	"github.com/inkframe/inkframe/backend-go/internal/document"
	"github.com/inkframe/inkframe/backend-go/internal/engine"
	"github.com/inkframe/inkframe/backend-go/internal/render"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
	"github.com/inkframe/inkframe/backend-go/internal/session"
	"github.com/inkframe/inkframe/backend-go/internal/store"
)

const maxBodySize = 8 << 20

// maxRasterPixels bounds the image a PNG export may allocate.
const maxRasterPixels = 16 << 20

type Handler struct {
	sessions *session.Manager
	store    store.Store
}

func NewHandler(sessions *session.Manager, st store.Store) *Handler {
	return &Handler{sessions: sessions, store: st}
}

type createSessionRequest struct {
	DocumentID string `json:"documentId,omitempty"`
	Sample     bool   `json:"sample,omitempty"`
}

type createSessionResponse struct {
	SessionID  string `json:"sessionId"`
	Token      string `json:"token"`
	DocumentID string `json:"documentId,omitempty"`
}

type saveRequest struct {
	Name string `json:"name,omitempty"`
}

type saveResponse struct {
	DocumentID string `json:"documentId"`
	Version    int    `json:"version"`
}

// CreateSession opens an editor on a stored document, the sample scene or
// an empty scene.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}

	var g *scene.Graph
	switch {
	case req.DocumentID != "":
		snap, err := h.store.Latest(r.Context(), req.DocumentID)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		g, err = document.FromJSON(snap.Data)
		if err != nil {
			slog.Error("stored document unreadable", "document", req.DocumentID, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "stored document is unreadable"})
			return
		}
	case req.Sample:
		g = document.NewSampleScene()
	}

	s, err := h.sessions.Create(req.DocumentID, g)
	if err != nil {
		slog.Error("create session failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID:  s.ID,
		Token:      s.Token,
		DocumentID: req.DocumentID,
	})
}

func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())
	if err := h.sessions.Close(s.ID); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Command runs one editor command.
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())

	var cmd command.Command
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	var res command.Result
	err := s.Do(func(e *engine.Editor) error {
		var err error
		res, err = command.Dispatch(e, cmd)
		return err
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())

	var cmds []render.DrawCommand
	s.Do(func(e *engine.Editor) error {
		cmds = e.RenderCommands()
		return nil
	})
	if cmds == nil {
		cmds = []render.DrawCommand{}
	}
	writeJSON(w, http.StatusOK, cmds)
}

func (h *Handler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())

	width, err := intParam(r, "width", 1280)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	height, err := intParam(r, "height", 720)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var svg string
	s.Do(func(e *engine.Editor) error {
		svg = e.ExportSVG(width, height)
		return nil
	})

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, svg)
}

// ExportPNG rasterizes the scene. The image is encoded before any header is
// written so a failure can still be reported as JSON.
func (h *Handler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())

	width, err := intParam(r, "width", 1280)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	height, err := intParam(r, "height", 720)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if width > maxRasterPixels/height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "image too large"})
		return
	}

	var buf bytes.Buffer
	err = s.Do(func(e *engine.Editor) error {
		return e.ExportPNG(&buf, width, height)
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) GetScene(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())

	var data []byte
	err := s.Do(func(e *engine.Editor) error {
		var err error
		data, err = e.ExportScene()
		return err
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// PutScene replaces the session's scene. A malformed document leaves the
// scene as it was.
func (h *Handler) PutScene(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	var count int
	err = s.Do(func(e *engine.Editor) error {
		if err := e.ImportScene(data); err != nil {
			return err
		}
		count = e.ObjectCount()
		return nil
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"objectCount": count})
}

// Save stores the scene as a new version of the session's document,
// creating the document on first save.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())

	var req saveRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}

	var data []byte
	err := s.Do(func(e *engine.Editor) error {
		var err error
		data, err = e.ExportScene()
		return err
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp, err := h.save(r.Context(), s, req.Name, data)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	slog.Info("document saved", "session", s.ID, "document", resp.DocumentID, "version", resp.Version)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) save(ctx context.Context, s *session.Session, name string, data []byte) (saveResponse, error) {
	var resp saveResponse
	err := s.Persist(func(docID string) (string, error) {
		if docID != "" {
			version, err := h.store.SaveVersion(ctx, docID, data)
			if err != nil {
				return "", err
			}
			resp = saveResponse{DocumentID: docID, Version: version}
			return docID, nil
		}

		if name == "" {
			name = "Untitled"
		}
		doc, err := h.store.Create(ctx, name, data)
		if err != nil {
			return "", err
		}
		resp = saveResponse{DocumentID: doc.ID, Version: doc.Version}
		return doc.ID, nil
	})
	return resp, err
}

func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.store.List(r.Context())
	if err != nil {
		slog.Error("list documents failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if docs == nil {
		docs = []store.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

type contextKey string

const sessionKey contextKey = "session"

// RequireSession authorizes the {sessionId} route variable against a bearer
// token or a token query parameter.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid authorization format"})
				return
			}
			token = parts[1]
		}
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing token"})
			return
		}

		s, err := h.sessions.Authorize(mux.Vars(r)["sessionId"], token)
		if err != nil {
			handleServiceError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, s)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromContext(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey).(*session.Session)
	return s
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return n, nil
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
	case errors.Is(err, session.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "document not found"})
	case errors.Is(err, command.ErrUnknownCommand), errors.Is(err, command.ErrInvalidCommand), errors.Is(err, document.ErrMalformed):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
