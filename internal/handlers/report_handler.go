package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"aqarat-crm/config"
	"aqarat-crm/internal/reports"

	"github.com/gin-gonic/gin"
)

// DownloadReportHandler формирует отчет и отдает его файлом.
// Тип и формат приходят в query: ?type=financial&format=pdf.
// При save=true копия остается в архиве отчетов на диске.
func DownloadReportHandler(c *gin.Context) {
	reportType := c.DefaultQuery("type", reports.TypeFinancial)
	format := c.DefaultQuery("format", reports.FormatPDF)

	doc, err := reports.Generate(config.DB, reportType, format)
	if err != nil {
		if errors.Is(err, reports.ErrInvalidReport) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Не удалось сформировать отчет", "error", err, "type", reportType, "format", format)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось сформировать отчет"})
		return
	}

	if c.Query("save") == "true" {
		dir := reportsBaseDir()
		if err := ensureDir(dir); err == nil {
			if err := os.WriteFile(filepath.Join(dir, doc.Filename), doc.Data, 0o644); err != nil {
				slog.Warn("Не удалось сохранить копию отчета", "error", err, "file", doc.Filename)
			}
		}
	}

	c.Header("Content-Disposition", "attachment; filename="+doc.Filename)
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}
