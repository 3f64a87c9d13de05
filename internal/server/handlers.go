package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"reportforge/internal/intelligence"
)

// GenerateRequest is the POST /generate-pdf payload.
type GenerateRequest struct {
	Sections []intelligence.Section `json:"sections"`
	Filename string                 `json:"filename,omitempty"`
}

// GenerateResponse reports where the rendered document can be fetched.
type GenerateResponse struct {
	Success     bool           `json:"success"`
	Filename    string         `json:"filename"`
	DownloadURL string         `json:"download_url"`
	Metadata    map[string]any `json:"metadata"`
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "OK")
}

func (s *Server) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for GenerateHandler")

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Println("Error decoding request body: ", err)
		http.Error(w, "Error decoding request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	data, err := s.generator.Generate(r.Context(), req.Sections)
	if err != nil {
		log.Println("Error generating document: ", err)
		status := http.StatusInternalServerError
		if strings.HasPrefix(err.Error(), "invalid input") {
			status = http.StatusBadRequest
		}
		http.Error(w, "Error generating document: "+err.Error(), status)
		return
	}

	filename := buildFilename(req.Filename)
	path := filepath.Join(s.cfg.Server.OutputDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Println("Error writing document: ", err)
		http.Error(w, "Error writing document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := GenerateResponse{
		Success:     true,
		Filename:    filename,
		DownloadURL: "/download/" + filename,
		Metadata: map[string]any{
			"sections":   len(req.Sections),
			"size_bytes": len(data),
		},
	}
	bytes, err := json.Marshal(resp)
	if err != nil {
		log.Println("Error marshalling response: ", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully processed request for GenerateHandler")

	w.Header().Set("Content-Type", "application/json")
	w.Write(bytes)
}

func (s *Server) DownloadHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for DownloadHandler")

	vars := mux.Vars(r)
	// filepath.Base strips any path traversal from the requested name.
	filename := filepath.Base(vars["filename"])
	if filename == "." || filename == string(filepath.Separator) {
		http.Error(w, "Invalid filename", http.StatusBadRequest)
		return
	}

	path := filepath.Join(s.cfg.Server.OutputDir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		log.Println("Error reading document: ", err)
		http.Error(w, "Error reading document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// buildFilename appends a short unique suffix so concurrent requests with the
// same requested name never clobber each other on disk.
func buildFilename(requested string) string {
	base := strings.TrimSuffix(filepath.Base(requested), ".pdf")
	if base == "" || base == "." {
		base = "document"
	}
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s.pdf", base, suffix)
}
