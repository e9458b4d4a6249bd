package handlers

import (
	"net/http"
	"strings"

	"hrportal/api"
	"hrportal/database"
	"hrportal/models"
)

// ProjectHandler serves the authoritative project catalog. Name resolution
// happens here; clients carry no fallback table.
type ProjectHandler struct{}

func NewProjectHandler() *ProjectHandler {
	return &ProjectHandler{}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	var projects []models.Project
	if err := database.GetDB().Where("active = ?", true).Order("name asc").Find(&projects).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load projects")
		return
	}

	items := make([]api.ProjectItem, 0, len(projects))
	for _, p := range projects {
		items = append(items, api.ProjectItem{ID: p.ID, Code: p.Code, Name: p.Name})
	}
	respondJSON(w, http.StatusOK, items)
}

// Resolve maps a project name (or code) to its catalog entry.
func (h *ProjectHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	var project models.Project
	err := database.GetDB().
		Where("active = ?", true).
		Where("name = ? OR code = ?", name, name).
		First(&project).Error
	if err != nil {
		respondError(w, http.StatusNotFound, "unknown project")
		return
	}

	respondJSON(w, http.StatusOK, api.ProjectItem{ID: project.ID, Code: project.Code, Name: project.Name})
}
