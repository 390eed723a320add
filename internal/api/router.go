package api

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// NewRouter wires every endpoint. origins lists the browser origins allowed
// to call the API and open websockets.
func NewRouter(h *Handler, origins []string) *mux.Router {
	r := mux.NewRouter()

	r.Use(Recovery)
	r.Use(Logger)
	r.Use(CORS(origins))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	r.HandleFunc("/sessions", h.CreateSession).Methods("POST", "OPTIONS")
	r.HandleFunc("/documents", h.ListDocuments).Methods("GET")

	s := r.PathPrefix("/sessions/{sessionId}").Subrouter()
	s.Use(h.RequireSession)
	s.HandleFunc("", h.CloseSession).Methods("DELETE", "OPTIONS")
	s.HandleFunc("/commands", h.Command).Methods("POST", "OPTIONS")
	s.HandleFunc("/render", h.Render).Methods("GET")
	s.HandleFunc("/export.svg", h.ExportSVG).Methods("GET")
	s.HandleFunc("/export.png", h.ExportPNG).Methods("GET")
	s.HandleFunc("/scene", h.GetScene).Methods("GET")
	s.HandleFunc("/scene", h.PutScene).Methods("PUT", "OPTIONS")
	s.HandleFunc("/save", h.Save).Methods("POST", "OPTIONS")

	patterns := originPatterns(origins)
	ws := r.PathPrefix("/ws/sessions/{sessionId}").Subrouter()
	ws.Use(h.RequireSession)
	ws.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, patterns)
	})

	return r
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, patterns []string) {
	s := sessionFromContext(r.Context())

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: patterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(conn, s, uuid.New().String())
	slog.Info("client connected", "session", s.ID, "conn", client.ConnID)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)

	slog.Info("client disconnected", "session", s.ID, "conn", client.ConnID)
}

// originPatterns turns "http://host:port" origins into the host patterns
// websocket.Accept matches against.
func originPatterns(origins []string) []string {
	var out []string
	for _, o := range origins {
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			continue
		}
		out = append(out, u.Host)
	}
	return out
}
