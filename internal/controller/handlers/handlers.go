// Package handlers wires the booking core to its HTTP surface.
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/avoshchina/tutorhub/internal/access"
	"github.com/avoshchina/tutorhub/internal/service"
)

type Handlers struct {
	gate         *access.Gate
	booking      *service.BookingService
	lessons      *service.LessonService
	availability *service.AvailabilityService
	admin        *service.AdminService
	adminKey     string
	logger       *zap.Logger
}

func New(
	gate *access.Gate,
	booking *service.BookingService,
	lessons *service.LessonService,
	availability *service.AvailabilityService,
	admin *service.AdminService,
	adminKey string,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		gate:         gate,
		booking:      booking,
		lessons:      lessons,
		availability: availability,
		admin:        admin,
		adminKey:     adminKey,
		logger:       logger,
	}
}

// Register mounts all routes. The /v1 group requires a bearer session; the
// /admin group requires the shared admin key and is scoped separately from
// user sessions.
func (h *Handlers) Register(e *echo.Echo) {
	e.GET("/health", h.health)

	v1 := e.Group("/v1", h.requireSession)
	v1.GET("/me", h.me)
	v1.GET("/teachers/:id/slots", h.teacherSlots)
	v1.POST("/bookings", h.createBooking)
	v1.GET("/lessons", h.listLessons)
	v1.GET("/lessons/upcoming", h.upcomingLessons)
	v1.GET("/calendar/week.png", h.weekCalendar)

	admin := e.Group("/admin", h.requireAdminKey)
	admin.POST("/approve-role", h.approveRole)
	admin.POST("/seed-teachers", h.seedTeachers)
	admin.POST("/seed-availability", h.seedAvailability)
	admin.POST("/link-parent-student", h.linkParentStudent)
}

func (h *Handlers) health(c echo.Context) error {
	return c.JSON(200, echo.Map{"status": "ok"})
}

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
