package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance_backend/internal/attendance"
	"github.com/campuskit/attendance_backend/internal/export"
	"github.com/campuskit/attendance_backend/internal/middleware"
	"github.com/campuskit/attendance_backend/internal/models"
	"github.com/campuskit/attendance_backend/internal/store"
)

type HistoryController struct {
	Store store.Store
}

// historyFilter reads the shared query params. An inverted or malformed
// range is not an error; it just matches nothing.
func historyFilter(c *gin.Context) attendance.Filter {
	f := attendance.Filter{
		Start:    c.Query("start"),
		End:      c.Query("end"),
		CourseID: c.Query("course"),
	}
	if raw := c.Query("status"); raw != "" && raw != "all" {
		if status, ok := models.ParseStatus(raw); ok {
			f.Status = status
		} else {
			// unknown status matches nothing rather than failing the request
			f.Status = models.Status(raw)
		}
	}
	return f
}

// History returns the filtered records (date descending) plus statistics
// over the same filter.
func (h *HistoryController) History(c *gin.Context) {
	account, ok := middleware.Account(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	records, err := h.Store.Load(account.StudentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load attendance records"})
		return
	}

	f := historyFilter(c)
	filtered := f.Apply(records)

	limit := len(filtered)
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	c.JSON(http.StatusOK, gin.H{
		"records": attendance.SortRecent(filtered, limit),
		"stats":   attendance.ComputeStatistics(records, f),
	})
}

// Recent returns the latest records for the attendance page panel.
func (h *HistoryController) Recent(c *gin.Context) {
	account, ok := middleware.Account(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	records, err := h.Store.Load(account.StudentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load attendance records"})
		return
	}
	limit := 0 // SortRecent applies the default panel size
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	c.JSON(http.StatusOK, gin.H{"records": attendance.SortRecent(records, limit)})
}

// Export streams the filtered history as CSV (default) or xlsx.
func (h *HistoryController) Export(c *gin.Context) {
	account, ok := middleware.Account(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	records, err := h.Store.Load(account.StudentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load attendance records"})
		return
	}

	f := historyFilter(c)
	filtered := attendance.SortRecent(f.Apply(records), len(records))
	// exports read oldest-first
	reverse(filtered)

	base := fmt.Sprintf("attendance_%s_%s_to_%s", account.StudentID, orAll(f.Start), orAll(f.End))

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		data, err := export.MarshalCSV(filtered)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build csv"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+base+`.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	case "xlsx":
		buf, err := export.WriteXLSX(filtered, attendance.ComputeStatistics(records, f))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+base+`.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
	}
}

func reverse(records []models.AttendanceRecord) {
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}
