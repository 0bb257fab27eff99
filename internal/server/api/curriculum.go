package api

import (
	"net/http"

	"github.com/naufalhakim/iqro-isyarat/internal/curriculum"
)

// CurriculumHandler serves the read-only curriculum.
type CurriculumHandler struct {
	curriculum *curriculum.Curriculum
}

// NewCurriculumHandler creates a CurriculumHandler over the given curriculum.
func NewCurriculumHandler(c *curriculum.Curriculum) *CurriculumHandler {
	return &CurriculumHandler{curriculum: c}
}

// ServeHTTP handles GET /api/curriculum.
func (h *CurriculumHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.curriculum)
}
