package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"green_index/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	maxUploadBytes = 10 << 20 // 10 MB
	uploadField    = "file"
	exportFilename = "green_index_dataset.csv"
)

// @Summary      Upload dataset
// @Description  CSV as a text/csv body or a multipart "file" field. Replaces the current dataset.
// @Tags         datasets
// @Accept       text/csv,multipart/form-data
// @Produce      json
// @Param        file  formData  file  false  "CSV file"
// @Success      200   {object}  models.ProcessedResult
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/datasets [post]
func (h *Handler) uploadDataset(c *gin.Context) {
	text, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	res, err := h.services.Dataset.Ingest(c.Request.Context(), text)
	if err != nil {
		h.respondError(c, "dataset_upload_failed", err)
		return
	}
	if h.log != nil {
		h.log.Infow("dataset_uploaded", "upload_id", res.UploadID, "valid_rows", res.ValidRows, "invalid_rows", res.InvalidRows)
	}
	c.JSON(http.StatusOK, res)
}

// readUpload returns the CSV text from either a multipart file or the raw body.
func readUpload(c *gin.Context) (string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile(uploadField)
		if err != nil {
			return "", fmt.Errorf("missing %q file field: %w", uploadField, err)
		}
		return readFormFile(fh)
	}
	b, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func readFormFile(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	b, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// @Summary      Dataset rows
// @Tags         datasets
// @Produce      json
// @Param        category  query  string  false  "Category (case-insensitive)"
// @Param        zone      query  string  false  "Exact zone name"
// @Success      200  {object}  map[string]interface{}  "count, rows"
// @Router       /api/v1/datasets/rows [get]
func (h *Handler) datasetRows(c *gin.Context) {
	rows := h.services.Dataset.Rows(service.RowFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Zone:     c.Query("zone"),
	})
	c.JSON(http.StatusOK, gin.H{"count": len(rows), "rows": rows})
}

// @Summary      Dataset statistics
// @Tags         datasets
// @Produce      json
// @Success      200  {object}  models.Statistics
// @Router       /api/v1/datasets/statistics [get]
func (h *Handler) datasetStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Dataset.Statistics())
}

// @Summary      Zone leaderboard
// @Tags         datasets
// @Produce      json
// @Success      200  {object}  models.Leaderboard
// @Router       /api/v1/datasets/leaderboard [get]
func (h *Handler) leaderboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Dataset.Leaderboard())
}

// @Summary      Campus green index
// @Tags         datasets
// @Produce      json
// @Success      200  {object}  map[string]int  "green_index"
// @Router       /api/v1/datasets/green-index [get]
func (h *Handler) greenIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"green_index": h.services.Dataset.GreenIndex()})
}

// @Summary      Averaged category scores
// @Description  category_scores is null until some zone is ranked
// @Tags         datasets
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "category_scores"
// @Router       /api/v1/datasets/category-scores [get]
func (h *Handler) categoryScores(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"category_scores": h.services.Dataset.CategoryScores()})
}

// @Summary      Export dataset
// @Tags         datasets
// @Produce      text/csv
// @Success      200  {string}  string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/datasets/export [get]
func (h *Handler) exportDataset(c *gin.Context) {
	text, err := h.services.Dataset.Export()
	if err != nil {
		h.respondError(c, "dataset_export_failed", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(text))
}

// @Summary      Clear dataset
// @Tags         datasets
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/v1/datasets [delete]
func (h *Handler) clearDataset(c *gin.Context) {
	h.services.Dataset.Clear(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": statusCleared})
}
