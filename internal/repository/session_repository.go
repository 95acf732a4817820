package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/Freeeeeet/portal_bot/internal/apiclient"
	"github.com/Freeeeeet/portal_bot/internal/model"
	"go.uber.org/zap"
)

// SessionRepository держит сессии текущего студента, ключом служит slot_id:
// у одного студента на один слот может быть не больше одной сессии.
// Загружается строго после SlotRepository - сессия без контекста слота
// бессмысленна для отображения и гейта.
type SessionRepository struct {
	api    *apiclient.Client
	logger *zap.Logger

	mu     sync.RWMutex
	bySlot map[string]model.Session
	order  []string // slot_id в порядке появления
}

func NewSessionRepository(api *apiclient.Client, logger *zap.Logger) *SessionRepository {
	return &SessionRepository{
		api:    api,
		logger: logger,
		bySlot: make(map[string]model.Session),
	}
}

// Load загружает сессии студента. Нормализация формы ответа происходит
// в клиенте API; сюда приходит уже канонический список.
func (r *SessionRepository) Load(ctx context.Context, studentID string) error {
	sessions, err := r.api.StudentSessions(ctx, studentID)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySlot = make(map[string]model.Session, len(sessions))
	r.order = r.order[:0]

	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}

	for _, sess := range sessions {
		r.insert(sess)
	}
	return nil
}

// Add добавляет сессию, полученную из ответа на бронирование,
// чтобы не перезагружать весь список.
func (r *SessionRepository) Add(sess model.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(sess)
}

// insert сохраняет первую сессию на слот; дубликат - признак рассинхрона
// данных на бэкенде, логируем и оставляем первую.
func (r *SessionRepository) insert(sess model.Session) {
	if sess.SlotID == "" {
		r.logger.Warn("Session without slot_id dropped", zap.String("session_id", sess.ID))
		return
	}
	if existing, ok := r.bySlot[sess.SlotID]; ok {
		r.logger.Warn("Duplicate session for slot, keeping first",
			zap.String("slot_id", sess.SlotID),
			zap.String("kept_session_id", existing.ID),
			zap.String("dropped_session_id", sess.ID))
		return
	}
	r.bySlot[sess.SlotID] = sess
	r.order = append(r.order, sess.SlotID)
}

// FindBySlot возвращает сессию студента на данный слот, nil если её нет.
func (r *SessionRepository) FindBySlot(slotID string) *model.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.bySlot[slotID]
	if !ok {
		return nil
	}
	return &sess
}

// Sessions возвращает все сессии в порядке появления.
func (r *SessionRepository) Sessions() []model.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Session, 0, len(r.order))
	for _, slotID := range r.order {
		out = append(out, r.bySlot[slotID])
	}
	return out
}

// Len возвращает количество сессий.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bySlot)
}
