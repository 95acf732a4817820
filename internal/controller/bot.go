package controller

import (
	"context"

	"github.com/Freeeeeet/portal_bot/internal/app"
	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/student"
	"github.com/Freeeeeet/portal_bot/internal/controller/handlers"
	"github.com/Freeeeeet/portal_bot/internal/controller/state"
	"github.com/Freeeeeet/portal_bot/internal/model"
	"github.com/Freeeeeet/portal_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	states          *state.Manager
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	scheduleService *service.ScheduleService,
	bookingService *service.BookingService,
	gate *app.GateWatcher,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		scheduleService,
		bookingService,
		gate,
		stateManager,
		logger,
	)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		scheduleService,
		bookingService,
		gate,
		stateManager,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		states:          stateManager,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypePrefix, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/teacher", bot.MatchTypePrefix, c.handlers.HandleTeacher)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mysessions", bot.MatchTypeExact, c.handlers.HandleMySessions)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "login", Description: "🔐 Войти как студент портала"},
		{Command: "teacher", Description: "🎓 Открыть расписание учителя"},
		{Command: "mysessions", Description: "📋 Мои сессии"},
		{Command: "cancel", Description: "❌ Отменить текущий диалог"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// NotifySessionLive - уведомление временного гейта: сессия началась и
// ссылка открылась. Подходит как NotifyFunc для GateWatcher.
func (c *BotController) NotifySessionLive(ctx context.Context, chatID int64, sess model.Session) {
	kb := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "🎥 Присоединиться", URL: sess.MeetingLink}},
		},
	}

	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "🟢 <b>Ваша сессия началась!</b>\n\nСсылка на конференцию открыта.",
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	if err != nil {
		c.logger.Warn("Failed to send session live notification",
			zap.Int64("chat_id", chatID),
			zap.String("session_id", sess.ID),
			zap.Error(err))
	}

	// Перерисовываем экран: строка слота и кнопки должны показать открытый гейт
	if c.states.View(chatID) != nil {
		student.RenderSchedule(ctx, c.bot, chatID, c.callbackHandler.Handler)
	}
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
