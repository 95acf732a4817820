package callbacks

import (
	"context"

	"github.com/Freeeeeet/portal_bot/internal/app"
	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/portal_bot/internal/controller/state"
	"github.com/Freeeeeet/portal_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Handler with Dependencies
// ========================

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	scheduleService *service.ScheduleService,
	bookingService *service.BookingService,
	gate *app.GateWatcher,
	states *state.Manager,
	logger *zap.Logger,
) *Handler {
	inner := &callbacktypes.Handler{
		ScheduleService: scheduleService,
		BookingService:  bookingService,
		Gate:            gate,
		States:          states,
		Logger:          logger,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
