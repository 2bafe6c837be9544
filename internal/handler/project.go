package handler

import (
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/sakif/portfolio-server/internal/service"
)

// multipartMemory is how much of a parsed form is held in memory before
// spilling to temp files. Uploads are capped well below this by the
// upload processor, so the limit here only bounds form parsing itself.
const multipartMemory = 10 << 20

// ProjectHandler serves both the public project listing and the admin
// write endpoints. The admin endpoints accept multipart forms because the
// admin UI submits the project fields and the screenshot together.
type ProjectHandler struct {
	projects *service.ProjectService
	logger   *slog.Logger
}

func NewProjectHandler(projects *service.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

// HandleList returns all projects, newest first.
//
// HTTP: GET /api/projects
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// techStackField accepts either a JSON array of strings or a single
// comma-separated string, so both API clients and form-derived payloads
// can submit a stack.
type techStackField []string

func (f *techStackField) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = service.ParseTechStack(raw)
	return nil
}

type createProjectRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	TechStack   techStackField `json:"techStack"`
	LiveLink    string         `json:"liveLink"`
	GithubLink  string         `json:"githubLink"`
	ImageURL    string         `json:"imageUrl"`
}

// HandlePublicCreate creates a project from a JSON body. No file upload
// here — an image is referenced by URL if at all.
//
// HTTP: POST /api/projects
func (h *ProjectHandler) HandlePublicCreate(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid project JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	project, err := h.projects.Create(r.Context(), service.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		TechStack:   req.TechStack,
		LiveLink:    req.LiveLink,
		GithubLink:  req.GithubLink,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

// HandleAdminCreate creates a project from a multipart form, optionally
// including a screenshot file under the "image" key.
//
// HTTP: POST /admin/projects (token required)
func (h *ProjectHandler) HandleAdminCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.logger.Warn("invalid multipart form", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid multipart form",
		})
		return
	}
	form := r.MultipartForm
	defer form.RemoveAll()

	in := service.CreateProjectInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		TechStack:   service.ParseTechStack(r.FormValue("techStack")),
		LiveLink:    r.FormValue("liveLink"),
		GithubLink:  r.FormValue("githubLink"),
		ImageURL:    r.FormValue("imageUrl"),
		Image:       formFile(form, "image"),
	}

	project, err := h.projects.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// HandleAdminUpdate partially updates a project from a multipart form.
// Only keys present in the form overwrite the stored record; a new file
// under "image" replaces the screenshot.
//
// HTTP: PUT /admin/projects/{id} (token required)
func (h *ProjectHandler) HandleAdminUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.logger.Warn("invalid multipart form", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid multipart form",
		})
		return
	}
	form := r.MultipartForm
	defer form.RemoveAll()

	patch := service.ProjectPatch{
		Title:        formValue(form, "title"),
		Description:  formValue(form, "description"),
		TechStackRaw: formValue(form, "techStack"),
		LiveLink:     formValue(form, "liveLink"),
		GithubLink:   formValue(form, "githubLink"),
		ImageURL:     formValue(form, "imageUrl"),
		Image:        formFile(form, "image"),
	}

	project, err := h.projects.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// HandleAdminDelete removes a project and its locally stored screenshot.
//
// HTTP: DELETE /admin/projects/{id} (token required)
func (h *ProjectHandler) HandleAdminDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.projects.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"msg": "Project removed"})
}

// formValue returns a pointer to the first value for key, or nil when the
// key is absent or empty. The admin form round-trips unchanged fields as
// empty strings, so present-but-empty means "leave unchanged" just like
// absent — clearing a stored field is not expressible here.
func formValue(form *multipart.Form, key string) *string {
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 || vals[0] == "" {
		return nil
	}
	return &vals[0]
}

// formFile returns the first file header for key, or nil when no file was
// submitted.
func formFile(form *multipart.Form, key string) *multipart.FileHeader {
	files, ok := form.File[key]
	if !ok || len(files) == 0 {
		return nil
	}
	return files[0]
}
