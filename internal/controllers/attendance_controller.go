package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance_backend/internal/attendance"
	"github.com/campuskit/attendance_backend/internal/middleware"
	"github.com/campuskit/attendance_backend/internal/models"
	"github.com/campuskit/attendance_backend/internal/schedule"
	"github.com/campuskit/attendance_backend/internal/store"
	"github.com/campuskit/attendance_backend/internal/ws"
)

type AttendanceController struct {
	Store    store.Store
	Schedule *schedule.Table
	Hub      *ws.FeedHub

	// Now is the clock; tests pin it. Nil means time.Now.
	Now func() time.Time
}

func (ac *AttendanceController) now() time.Time {
	if ac.Now != nil {
		return ac.Now()
	}
	return time.Now()
}

// Today reports the display status, today's record (if any) and today's
// session for the logged-in student.
func (ac *AttendanceController) Today(c *gin.Context) {
	account, ok := middleware.Account(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	now := ac.now()

	records, err := ac.Store.Load(account.StudentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load attendance records"})
		return
	}
	_, sess := ac.Schedule.SessionFor(account.CourseID, now)
	rec := todayRecord(records, now)

	resp := gin.H{
		"date":   now.Format(attendance.DateLayout),
		"status": attendance.DeriveDisplayStatus(rec, sess != nil),
	}
	if rec != nil {
		resp["record"] = rec
	}
	if sess != nil {
		resp["session"] = sess
	}
	c.JSON(http.StatusOK, resp)
}

// CheckIn evaluates and persists a check-in at the current clock, then
// broadcasts it to the live feed.
func (ac *AttendanceController) CheckIn(c *gin.Context) {
	account, ok := middleware.Account(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	now := ac.now()

	course, sess := ac.Schedule.SessionFor(account.CourseID, now)
	records, err := ac.Store.Load(account.StudentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load attendance records"})
		return
	}

	existing := todayRecord(records, now)
	rec, err := attendance.EvaluateCheckIn(course, sess, ac.Schedule.Rules, existing, account.StudentID, now)
	if err != nil {
		if errors.Is(err, attendance.ErrNoClassScheduled) {
			c.JSON(http.StatusConflict, gin.H{"error": "no class scheduled today"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := ac.Store.Save(account.StudentID, upsert(records, rec)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save attendance record"})
		return
	}

	ac.Hub.Broadcast(ws.FeedEvent{
		Type:        "check_in",
		StudentID:   account.StudentID,
		StudentName: account.Name,
		CourseID:    rec.CourseID,
		CourseName:  rec.CourseName,
		Date:        rec.Date,
		Time:        *rec.CheckInTime,
		Status:      rec.Status,
		Location:    sess.Location,
	})

	c.JSON(http.StatusOK, gin.H{
		"record": rec,
		"status": attendance.DeriveDisplayStatus(&rec, true),
	})
}

type checkOutRequest struct {
	// Confirmed acknowledges an early leave. The engine never blocks the
	// action either way; the flag only exists so a UI can show its dialog
	// and retry.
	Confirmed bool `json:"confirmed"`
}

// CheckOut evaluates and persists a check-out at the current clock. The
// early-leave flag in the response is advisory.
func (ac *AttendanceController) CheckOut(c *gin.Context) {
	account, ok := middleware.Account(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req checkOutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	now := ac.now()

	_, sess := ac.Schedule.SessionFor(account.CourseID, now)
	records, err := ac.Store.Load(account.StudentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load attendance records"})
		return
	}

	existing := todayRecord(records, now)
	rec, earlyLeave, err := attendance.EvaluateCheckOut(sess, ac.Schedule.Rules, existing, now)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrNoClassScheduled):
			c.JSON(http.StatusConflict, gin.H{"error": "no class scheduled today"})
		case errors.Is(err, attendance.ErrNotCheckedIn):
			c.JSON(http.StatusConflict, gin.H{"error": "you need to check in first"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if err := ac.Store.Save(account.StudentID, upsert(records, rec)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save attendance record"})
		return
	}

	ac.Hub.Broadcast(ws.FeedEvent{
		Type:        "check_out",
		StudentID:   account.StudentID,
		StudentName: account.Name,
		CourseID:    rec.CourseID,
		CourseName:  rec.CourseName,
		Date:        rec.Date,
		Time:        *rec.CheckOutTime,
		Status:      rec.Status,
		EarlyLeave:  earlyLeave,
		Location:    sess.Location,
	})

	c.JSON(http.StatusOK, gin.H{
		"record":      rec,
		"status":      attendance.DeriveDisplayStatus(&rec, true),
		"early_leave": earlyLeave,
		"confirmed":   req.Confirmed,
	})
}

// todayRecord finds the record for now's calendar date, nil when absent.
func todayRecord(records []models.AttendanceRecord, now time.Time) *models.AttendanceRecord {
	date := now.Format(attendance.DateLayout)
	for i := range records {
		if records[i].Date == date {
			return &records[i]
		}
	}
	return nil
}

// upsert replaces the record matching rec's date, or appends it.
func upsert(records []models.AttendanceRecord, rec models.AttendanceRecord) []models.AttendanceRecord {
	for i := range records {
		if records[i].Date == rec.Date {
			records[i] = rec
			return records
		}
	}
	return append(records, rec)
}
