package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/avoshchina/tutorhub/internal/calendar"
	"github.com/avoshchina/tutorhub/internal/model"
)

// Renders a sample week calendar to week.png for eyeballing layout changes.
func main() {
	now := time.Now().UTC()
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for weekStart.Weekday() != time.Monday {
		weekStart = weekStart.AddDate(0, 0, -1)
	}

	teacherID := uuid.New()
	studentID := uuid.New()

	title := "Lesson with Anna K."
	lessons := []*model.Lesson{
		{
			ID:        uuid.New(),
			SlotID:    uuid.New(),
			StudentID: studentID,
			Title:     &title,
			StartAt:   weekStart.Add(14 * time.Hour),
			EndAt:     weekStart.Add(15 * time.Hour),
		},
		{
			ID:        uuid.New(),
			SlotID:    uuid.New(),
			StudentID: studentID,
			StartAt:   weekStart.AddDate(0, 0, 2).Add(9 * time.Hour),
			EndAt:     weekStart.AddDate(0, 0, 2).Add(10 * time.Hour),
		},
	}

	slots := []*model.AvailabilitySlot{
		{
			ID:        uuid.New(),
			TeacherID: teacherID,
			StartAt:   weekStart.Add(9 * time.Hour),
			EndAt:     weekStart.Add(10 * time.Hour),
		},
		{
			ID:        uuid.New(),
			TeacherID: teacherID,
			StartAt:   weekStart.AddDate(0, 0, 1).Add(11 * time.Hour),
			EndAt:     weekStart.AddDate(0, 0, 1).Add(12 * time.Hour),
		},
		{
			ID:        uuid.New(),
			TeacherID: teacherID,
			StartAt:   weekStart.AddDate(0, 0, 4).Add(13 * time.Hour),
			EndAt:     weekStart.AddDate(0, 0, 4).Add(14 * time.Hour),
		},
	}

	img, err := calendar.RenderWeek(weekStart, lessons, slots)
	if err != nil {
		fmt.Printf("render failed: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile("week.png", img, 0644); err != nil {
		fmt.Printf("write failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("saved week.png (%s - %s)\n",
		weekStart.Format("02.01.2006"),
		weekStart.AddDate(0, 0, 6).Format("02.01.2006"))
}
