package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance_backend/internal/config"
	"github.com/campuskit/attendance_backend/internal/controllers"
	"github.com/campuskit/attendance_backend/internal/middleware"
	"github.com/campuskit/attendance_backend/internal/roster"
	"github.com/campuskit/attendance_backend/internal/schedule"
	"github.com/campuskit/attendance_backend/internal/store"
	"github.com/campuskit/attendance_backend/internal/ws"
)

func Register(r *gin.Engine, st store.Store, students *roster.Service, table *schedule.Table, hub *ws.FeedHub, cfg *config.Config) {
	expiresMins, err := time.ParseDuration(cfg.JWTExpiresIn + "m")
	if err != nil || expiresMins == 0 {
		expiresMins = 12 * time.Hour
	}

	authCtrl := &controllers.AuthController{
		Students:  students,
		Schedule:  table,
		JWTSecret: cfg.JWTSecret,
		ExpiresIn: expiresMins,
	}
	attendanceCtrl := &controllers.AttendanceController{Store: st, Schedule: table, Hub: hub}
	historyCtrl := &controllers.HistoryController{Store: st}
	scheduleCtrl := &controllers.ScheduleController{Schedule: table}

	// Public
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", authCtrl.Login)
		auth.POST("/register", authCtrl.Register)
	}

	// Protected
	authMW := middleware.AuthMiddleware(students, middleware.AuthConfig{
		JWTSecret:    cfg.JWTSecret,
		JWTExpiresIn: expiresMins,
	})
	api := r.Group("/api/v1", authMW)
	{
		api.GET("/auth/me", authCtrl.Me)

		api.GET("/schedule/today", scheduleCtrl.Today)
		api.GET("/schedule/week", scheduleCtrl.Week)

		api.GET("/attendance/today", attendanceCtrl.Today)
		api.POST("/attendance/check-in", attendanceCtrl.CheckIn)
		api.POST("/attendance/check-out", attendanceCtrl.CheckOut)

		api.GET("/attendance/recent", historyCtrl.Recent)
		api.GET("/attendance/history", historyCtrl.History)
		api.GET("/attendance/history/export", historyCtrl.Export)

		api.GET("/ws/feed", ws.FeedHandler(hub))
	}
}
