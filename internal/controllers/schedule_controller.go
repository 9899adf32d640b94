package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance_backend/internal/attendance"
	"github.com/campuskit/attendance_backend/internal/middleware"
	"github.com/campuskit/attendance_backend/internal/schedule"
)

type ScheduleController struct {
	Schedule *schedule.Table
	Now      func() time.Time
}

func (sc *ScheduleController) now() time.Time {
	if sc.Now != nil {
		return sc.Now()
	}
	return time.Now()
}

// Today resolves the logged-in student's session for the current weekday.
func (sc *ScheduleController) Today(c *gin.Context) {
	account, ok := middleware.Account(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	now := sc.now()

	course, sess := sc.Schedule.SessionFor(account.CourseID, now)
	if course == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown course"})
		return
	}
	resp := gin.H{
		"date":        now.Format(attendance.DateLayout),
		"day":         now.Weekday().String(),
		"course_id":   course.ID,
		"course_name": course.Name,
		"has_session": sess != nil,
	}
	if sess != nil {
		resp["session"] = sess
	}
	c.JSON(http.StatusOK, resp)
}

// Week returns the student's full weekly schedule plus the global rules.
func (sc *ScheduleController) Week(c *gin.Context) {
	account, ok := middleware.Account(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	course := sc.Schedule.Course(account.CourseID)
	if course == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown course"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"course": course,
		"rules":  sc.Schedule.Rules,
	})
}
