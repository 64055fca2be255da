package handler

import "net/http"

// healthResponse is the body returned by GET /healthz.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// GetHealth handles GET /healthz. It pings the database so a healthy
// response means the full request path is serviceable, not just that the
// process is up.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, healthResponse{Status: "unhealthy", Database: "unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Database: "connected"})
}
