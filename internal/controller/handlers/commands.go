package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/student"
	"github.com/Freeeeeet/portal_bot/internal/controller/state"
	"github.com/Freeeeeet/portal_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := update.Message.From

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот студенческого портала для записи к учителям.\n\n"+
			"Доступные команды:\n"+
			"/login <id> - Войти как студент портала\n"+
			"/teacher <id> - Открыть расписание учителя\n"+
			"/mysessions - Мои сессии\n"+
			"/help - Справка",
		user.FirstName,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   welcomeText,
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/login <id> - Войти под своим ID студента портала\n" +
		"/teacher <id> - Открыть расписание учителя по его ID\n" +
		"/mysessions - Список ваших сессий у открытого учителя\n" +
		"/cancel - Отменить текущий диалог\n" +
		"/help - Показать эту справку\n\n" +
		"Чтобы записаться: откройте расписание учителя, нажмите 📝 на " +
		"свободном слоте и введите длительность занятия в минутах.\n\n" +
		"Ссылка на конференцию появится в карточке сессии, когда занятие начнётся."

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleLogin обрабатывает команду /login <id> - привязывает чат к студенту
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	arg := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/login"))
	if arg == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Укажите ID студента: /login <id>",
		})
		return
	}

	studentModel := model.Student{ID: arg, Name: update.Message.From.FirstName}
	h.states.SetStudent(chatID, studentModel)

	h.logger.Info("Student logged in",
		zap.Int64("chat_id", chatID),
		zap.String("student_id", arg))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf("✅ Вы вошли как студент <code>%s</code>\n\n"+
			"Теперь откройте расписание: /teacher <id>", arg),
		ParseMode: models.ParseModeHTML,
	})

	// Если расписание уже открыто, переоткрываем его под новым студентом
	if view := h.states.View(chatID); view != nil {
		teacherID := view.TeacherID()
		h.openSchedule(ctx, b, chatID, teacherID)
	}
}

// HandleTeacher обрабатывает команду /teacher <id> - открывает расписание
func (h *Handlers) HandleTeacher(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	arg := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/teacher"))
	if arg == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Укажите ID учителя: /teacher <id>",
		})
		return
	}

	h.openSchedule(ctx, b, chatID, arg)
}

func (h *Handlers) openSchedule(ctx context.Context, b *bot.Bot, chatID int64, teacherID string) {
	studentModel := h.states.Student(chatID)

	view, err := h.scheduleService.Open(ctx, studentModel, teacherID)
	if err != nil {
		h.logger.Error("Failed to open schedule",
			zap.Int64("chat_id", chatID),
			zap.String("teacher_id", teacherID),
			zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось загрузить расписание учителя. Проверьте ID и попробуйте позже.",
		})
		return
	}

	// Старый экран закрываем, чтобы поздние ответы сервера не ожили в нём
	if old := h.states.SetView(chatID, view); old != nil {
		old.Close()
	}
	h.gate.Register(chatID, view)

	student.RenderSchedule(ctx, b, chatID, h.cb)
}

// HandleMySessions обрабатывает команду /mysessions
func (h *Handlers) HandleMySessions(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	student.SendMySessions(ctx, b, update.Message.Chat.ID, h.cb)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if h.states.GetState(chatID) == state.StateNone {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Нет активных операций для отмены.",
		})
		return
	}

	h.states.ClearState(chatID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.",
	})
}
