package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/calref/inboxcal/internal/email"
	"github.com/calref/inboxcal/internal/extract"
	"github.com/calref/inboxcal/internal/extract/rules"
	"github.com/calref/inboxcal/internal/models"
)

const (
	// MaxUploadFiles is the maximum number of files per upload
	MaxUploadFiles = 25
	// MaxUploadFileSize is the maximum size of a single uploaded file (2MB)
	MaxUploadFileSize int64 = 2 << 20
	// uploadMemoryLimit is the multipart in-memory parse threshold
	uploadMemoryLimit int64 = 8 << 20
)

// UploadHandler accepts .eml or .txt files and runs the rules pass
// over each one.
type UploadHandler struct {
	rules *rules.Extractor
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(rulesEx *rules.Extractor) *UploadHandler {
	return &UploadHandler{rules: rulesEx}
}

// UploadFileResult is the extraction result for one uploaded file.
type UploadFileResult struct {
	Filename string                 `json:"filename"`
	Subject  string                 `json:"subject"`
	Items    []models.ExtractedItem `json:"items"`
	Error    string                 `json:"error,omitempty"`
}

// UploadResponse represents the upload extraction response
type UploadResponse struct {
	Results []UploadFileResult `json:"results"`
}

// Upload handles POST /api/upload. Files are processed concurrently;
// each goroutine writes its own slot, so results come back in
// submission order.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "No files uploaded (use field name 'files')")
		return
	}
	if len(files) > MaxUploadFiles {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Too many files (maximum 25)")
		return
	}

	now := extract.ReferenceTime(h.rules.Location(), r.FormValue("nowISO"))

	results := make([]UploadFileResult, len(files))
	var wg sync.WaitGroup
	for i, header := range files {
		wg.Add(1)
		go func(i int, header *multipart.FileHeader) {
			defer wg.Done()
			results[i] = h.processFile(header, i, now)
		}(i, header)
	}
	wg.Wait()

	respondJSON(w, http.StatusOK, UploadResponse{Results: results})
}

// processFile parses one uploaded file and runs the rules pass. Item
// titles are prefixed with the email subject so downstream consumers
// can tell files apart in a merged list.
func (h *UploadHandler) processFile(header *multipart.FileHeader, index int, now time.Time) UploadFileResult {
	result := UploadFileResult{Filename: header.Filename, Items: []models.ExtractedItem{}}

	if header.Size > MaxUploadFileSize {
		result.Error = "file exceeds 2MB limit"
		return result
	}

	f, err := header.Open()
	if err != nil {
		result.Error = "failed to open file"
		return result
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, MaxUploadFileSize+1))
	if err != nil {
		result.Error = "failed to read file"
		return result
	}
	if int64(len(content)) > MaxUploadFileSize {
		result.Error = "file exceeds 2MB limit"
		return result
	}

	parsed := email.Parse(content, index)
	result.Subject = parsed.Subject

	items := h.rules.Extract([]string{parsed.Text}, now)
	for i := range items {
		if parsed.Subject != "" && parsed.Subject != email.NoSubject {
			items[i].Title = "[" + parsed.Subject + "] " + items[i].Title
		}
		if items[i].Source == "" {
			items[i].Source = models.SourceRules
		}
		items[i].Confidence = extract.RulesConfidence
	}
	result.Items = items

	return result
}
