package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/Freeeeeet/portal_bot/internal/apiclient"
	"github.com/Freeeeeet/portal_bot/internal/model"
	"github.com/Freeeeeet/portal_bot/internal/repository"
	"go.uber.org/zap"
)

// ScheduleService открывает экраны расписания: пара репозиториев
// (слоты + сессии) на одного учителя и одного студента.
type ScheduleService struct {
	api    *apiclient.Client
	logger *zap.Logger
}

func NewScheduleService(api *apiclient.Client, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{api: api, logger: logger}
}

// ScheduleView - загруженное расписание одного учителя глазами одного
// студента. Живёт, пока пользователь держит экран открытым; после Close
// никакие изменения к нему не применяются.
type ScheduleView struct {
	student   model.Student
	teacherID string
	slots     *repository.SlotRepository
	sessions  *repository.SessionRepository
	logger    *zap.Logger

	mu     sync.Mutex // сериализует коммит бронирования, чтения и флаг closed
	closed bool
}

// Open загружает расписание: сначала слоты, затем сессии. Порядок
// обязателен - сессии валидны только в контексте своих слотов. Ошибка
// загрузки слотов фатальна для экрана; ошибка загрузки сессий деградирует
// до пустого списка, как в веб-клиенте портала.
func (s *ScheduleService) Open(ctx context.Context, student model.Student, teacherID string) (*ScheduleView, error) {
	view := &ScheduleView{
		student:   student,
		teacherID: teacherID,
		slots:     repository.NewSlotRepository(s.api, s.logger),
		sessions:  repository.NewSessionRepository(s.api, s.logger),
		logger:    s.logger,
	}

	if err := view.load(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Schedule view opened",
		zap.String("teacher_id", teacherID),
		zap.String("student_id", student.ID),
		zap.Int("slots", len(view.slots.Slots())),
		zap.Int("sessions", view.sessions.Len()))

	return view, nil
}

func (v *ScheduleView) load(ctx context.Context) error {
	if err := v.slots.Load(ctx, v.teacherID); err != nil {
		return fmt.Errorf("open schedule: %w", err)
	}

	// Сессии имеют смысл только для залогиненного студента
	if !v.student.IsAuthenticated() {
		return nil
	}

	if err := v.sessions.Load(ctx, v.student.ID); err != nil {
		v.logger.Warn("Failed to load sessions, showing schedule without them",
			zap.String("student_id", v.student.ID),
			zap.Error(err))
	}
	return nil
}

// Refresh полностью перечитывает расписание с тем же порядком загрузки.
func (v *ScheduleView) Refresh(ctx context.Context) error {
	if v.Closed() {
		return ErrViewClosed
	}
	return v.load(ctx)
}

// Close помечает экран закрытым и отсекает поздние мутации.
func (v *ScheduleView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}

// Closed сообщает, закрыт ли экран.
func (v *ScheduleView) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

func (v *ScheduleView) Student() model.Student { return v.student }

func (v *ScheduleView) TeacherID() string { return v.teacherID }

// Чтения идут под тем же мьютексом, что и applyBooking: иначе параллельная
// отрисовка могла бы увидеть сессию до того, как у слота поднят is_booked.

// Slots возвращает снимок слотов.
func (v *ScheduleView) Slots() []model.Slot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.slots.Slots()
}

// Slot возвращает слот по ID.
func (v *ScheduleView) Slot(slotID string) (model.Slot, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.slots.Get(slotID)
}

// Sessions возвращает снимок сессий студента.
func (v *ScheduleView) Sessions() []model.Session {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sessions.Sessions()
}

// SessionForSlot возвращает сессию студента на слот, nil если её нет.
func (v *ScheduleView) SessionForSlot(slotID string) *model.Session {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sessions.FindBySlot(slotID)
}

// applyBooking атомарно фиксирует результат бронирования: сессия и флаг
// is_booked появляются вместе или не появляются вовсе. На закрытом экране
// ничего не трогаем.
func (v *ScheduleView) applyBooking(sess model.Session) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrViewClosed
	}
	v.sessions.Add(sess)
	v.slots.MarkBooked(sess.SlotID)
	return nil
}
