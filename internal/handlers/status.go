package handlers

import "net/http"

// StatusMessage is served at the root path.
const StatusMessage = "Legal AI Backend is running"

// Status reports that the server is up without touching any dependency.
func Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": StatusMessage})
}
