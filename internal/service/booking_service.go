package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/portal_bot/internal/apiclient"
	"github.com/Freeeeeet/portal_bot/internal/model"
	"go.uber.org/zap"
)

// BookingService - оркестратор бронирования. Валидирует запрос локально,
// отправляет его на бэкенд и при успехе атомарно обновляет репозитории
// экрана. Никаких оптимистичных мутаций до подтверждения сервера.
type BookingService struct {
	api    *apiclient.Client
	logger *zap.Logger
	loc    *time.Location

	mu       sync.Mutex
	inFlight map[string]struct{} // slot_id с бронированием в полёте
}

// NewBookingService создаёт оркестратор. loc - таймзона, в которой
// интерпретируются настенные дата и время слота; nil означает time.Local.
func NewBookingService(api *apiclient.Client, logger *zap.Logger, loc *time.Location) *BookingService {
	if loc == nil {
		loc = time.Local
	}
	return &BookingService{
		api:      api,
		logger:   logger,
		loc:      loc,
		inFlight: make(map[string]struct{}),
	}
}

// Book бронирует слот для студента экрана.
//
// Локальные отказы (до сети): ErrNotAuthenticated, ErrInvalidDuration,
// ErrSlotNotFound, ErrBookingInProgress. Отказ сервера приходит как
// *BookingFailedError, репозитории при этом не меняются. Поздний успех
// на закрытом экране отбрасывается с ErrViewClosed.
func (s *BookingService) Book(ctx context.Context, view *ScheduleView, slotID string, durationMinutes int) (*model.Session, error) {
	student := view.Student()
	if !student.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	slot, ok := view.Slot(slotID)
	if !ok {
		return nil, ErrSlotNotFound
	}

	// Один запрос в полёте на слот: защита от двойного сабмита
	if err := s.acquire(slotID); err != nil {
		return nil, err
	}
	defer s.release(slotID)

	startAt, err := slot.StartAt(s.loc)
	if err != nil {
		return nil, fmt.Errorf("compute session start: %w", err)
	}

	sess, err := s.api.BookSlot(ctx, slotID, apiclient.BookingRequest{
		StudentID:     student.ID,
		TeacherID:     slot.TeacherID,
		Duration:      durationMinutes,
		RequestedTime: startAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) {
			return nil, &BookingFailedError{Message: apiErr.Message, Err: err}
		}
		return nil, &BookingFailedError{Err: err}
	}

	// Пользователь мог уйти с экрана, пока ждали сервер
	if ctx.Err() != nil {
		s.logger.Warn("Booking succeeded after context cancellation, result dropped",
			zap.String("slot_id", slotID))
		return nil, ErrViewClosed
	}
	if err := view.applyBooking(*sess); err != nil {
		s.logger.Warn("Booking succeeded after view teardown, result dropped",
			zap.String("slot_id", slotID),
			zap.String("session_id", sess.ID))
		return nil, err
	}

	s.logger.Info("Slot booked",
		zap.String("slot_id", slotID),
		zap.String("session_id", sess.ID),
		zap.String("student_id", student.ID),
		zap.Int("duration_minutes", durationMinutes),
		zap.String("status", string(sess.Status)))

	return sess, nil
}

func (s *BookingService) acquire(slotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[slotID]; busy {
		return ErrBookingInProgress
	}
	s.inFlight[slotID] = struct{}{}
	return nil
}

func (s *BookingService) release(slotID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, slotID)
}
