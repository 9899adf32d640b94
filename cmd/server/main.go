package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance_backend/internal/config"
	"github.com/campuskit/attendance_backend/internal/models"
	"github.com/campuskit/attendance_backend/internal/roster"
	"github.com/campuskit/attendance_backend/internal/routes"
	"github.com/campuskit/attendance_backend/internal/schedule"
	"github.com/campuskit/attendance_backend/internal/store"
	"github.com/campuskit/attendance_backend/internal/ws"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	cfg := config.Load()

	table := schedule.Default()
	if cfg.ScheduleFile != "" {
		loaded, err := schedule.LoadFile(cfg.ScheduleFile)
		if err != nil {
			log.Fatalf("schedule load failed: %v", err)
		}
		table = loaded
	}
	table.Rules.LateThresholdMinutes = config.IntOr(cfg.LateThresholdMinutes, table.Rules.LateThresholdMinutes)
	table.Rules.EarlyLeaveThresholdMinutes = config.IntOr(cfg.EarlyLeaveThresholdMinutes, table.Rules.EarlyLeaveThresholdMinutes)

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("store open failed: %v", err)
	}
	defer st.Close()

	// A failed roster fetch degrades to an empty roster; only
	// self-registered users can log in until the next restart.
	var rosterStudents []models.Student
	if cfg.RosterURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		rosterStudents, err = roster.Fetch(ctx, cfg.RosterURL)
		cancel()
		if err != nil {
			log.Printf("roster fetch failed, continuing with empty roster: %v", err)
			rosterStudents = nil
		} else {
			log.Printf("roster loaded: %d students", len(rosterStudents))
		}
	}

	students, err := roster.NewService(rosterStudents, cfg.DataDir)
	if err != nil {
		log.Fatalf("roster service init failed: %v", err)
	}

	hub := ws.NewFeedHub()
	go hub.Run()

	r := gin.Default()
	routes.Register(r, st, students, table, hub, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Println("server exited with error:", err)
		os.Exit(1)
	}
}
