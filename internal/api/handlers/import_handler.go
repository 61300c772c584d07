package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/leadpilot/leadpilot-backend/internal/api/middleware"
	"github.com/leadpilot/leadpilot-backend/internal/config"
	"github.com/leadpilot/leadpilot-backend/internal/service"
	"github.com/leadpilot/leadpilot-backend/internal/spreadsheet"
)

var allowedImportExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

type ImportHandler struct {
	cfg           *config.Config
	importService service.ImportService
}

func NewImportHandler(cfg *config.Config, importService service.ImportService) *ImportHandler {
	return &ImportHandler{cfg: cfg, importService: importService}
}

// Import ingests a CSV/XLSX file of leads.
// POST /api/leads/import
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImportExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only .csv and .xlsx files are allowed"})
		return
	}
	if fileHeader.Size > h.cfg.MaxImportBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the maximum allowed size"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxImportBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	if int64(len(data)) > h.cfg.MaxImportBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the maximum allowed size"})
		return
	}

	result, err := h.importService.Import(
		c.Request.Context(), data, fileHeader.Filename, middleware.GetUserID(c),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyFile):
			c.JSON(http.StatusBadRequest, gin.H{"error": "File is empty or invalid"})
		case errors.Is(err, spreadsheet.ErrUnsupportedFormat):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only .csv and .xlsx files are allowed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// Template serves a pre-filled workbook showing the expected columns.
// GET /api/leads/import/template
func (h *ImportHandler) Template(c *gin.Context) {
	data, err := h.importService.Template()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate template"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="leads_template.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
