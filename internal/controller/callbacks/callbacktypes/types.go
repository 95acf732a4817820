package callbacktypes

import (
	"github.com/Freeeeeet/portal_bot/internal/app"
	"github.com/Freeeeeet/portal_bot/internal/controller/state"
	"github.com/Freeeeeet/portal_bot/internal/service"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	ScheduleService *service.ScheduleService
	BookingService  *service.BookingService
	Gate            *app.GateWatcher
	States          *state.Manager
	Logger          *zap.Logger
}
