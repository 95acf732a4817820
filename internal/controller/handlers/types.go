package handlers

import (
	"github.com/Freeeeeet/portal_bot/internal/app"
	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/portal_bot/internal/controller/state"
	"github.com/Freeeeeet/portal_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	scheduleService *service.ScheduleService
	bookingService  *service.BookingService
	gate            *app.GateWatcher
	states          *state.Manager
	logger          *zap.Logger

	// Общие зависимости callback-обработчиков: команды переиспользуют
	// их рендеры экранов
	cb *callbacktypes.Handler
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	scheduleService *service.ScheduleService,
	bookingService *service.BookingService,
	gate *app.GateWatcher,
	states *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		scheduleService: scheduleService,
		bookingService:  bookingService,
		gate:            gate,
		states:          states,
		logger:          logger,
		cb: &callbacktypes.Handler{
			ScheduleService: scheduleService,
			BookingService:  bookingService,
			Gate:            gate,
			States:          states,
			Logger:          logger,
		},
	}
}
