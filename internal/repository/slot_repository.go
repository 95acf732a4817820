package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/Freeeeeet/portal_bot/internal/apiclient"
	"github.com/Freeeeeet/portal_bot/internal/model"
	"go.uber.org/zap"
)

// SlotRepository держит в памяти слоты одного учителя на время жизни
// экрана расписания. Источник данных - HTTP API портала, локального
// хранилища нет.
type SlotRepository struct {
	api    *apiclient.Client
	logger *zap.Logger

	mu      sync.RWMutex
	slots   []model.Slot
	index   map[string]int // slot_id -> позиция в slots
	loaded  bool
	loadErr error
}

func NewSlotRepository(api *apiclient.Client, logger *zap.Logger) *SlotRepository {
	return &SlotRepository{
		api:    api,
		logger: logger,
		index:  make(map[string]int),
	}
}

// Load загружает слоты учителя. При ошибке репозиторий остаётся пустым:
// частичных и устаревших данных не храним.
func (r *SlotRepository) Load(ctx context.Context, teacherID string) error {
	slots, err := r.api.TeacherSlots(ctx, teacherID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.slots = nil
		r.index = make(map[string]int)
		r.loaded = false
		r.loadErr = err
		return fmt.Errorf("load slots: %w", err)
	}

	r.slots = slots
	r.index = make(map[string]int, len(slots))
	for i, slot := range slots {
		r.index[slot.ID] = i
	}
	r.loaded = true
	r.loadErr = nil
	return nil
}

// Slots возвращает копию всех слотов в порядке, полученном от бэкенда.
func (r *SlotRepository) Slots() []model.Slot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Slot, len(r.slots))
	copy(out, r.slots)
	return out
}

// Get возвращает слот по ID.
func (r *SlotRepository) Get(slotID string) (model.Slot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[slotID]
	if !ok {
		return model.Slot{}, false
	}
	return r.slots[i], true
}

// MarkBooked помечает слот занятым после успешного бронирования.
// Неизвестный ID - no-op: флаг выправится при следующем Refresh.
func (r *SlotRepository) MarkBooked(slotID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[slotID]
	if !ok {
		r.logger.Warn("MarkBooked for unknown slot", zap.String("slot_id", slotID))
		return
	}
	r.slots[i].IsBooked = true
}

// Loaded сообщает, была ли последняя загрузка успешной.
func (r *SlotRepository) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// Err возвращает ошибку последней загрузки, если она была.
func (r *SlotRepository) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadErr
}
