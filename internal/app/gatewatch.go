package app

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/portal_bot/internal/model"
	"github.com/Freeeeeet/portal_bot/internal/service"
	"go.uber.org/zap"
)

// GateInterval - шаг переоценки временного гейта. Гейт может отставать
// самое большее на этот интервал.
const GateInterval = 30 * time.Second

// GateView - то, что наблюдателю нужно от экрана расписания.
type GateView interface {
	Closed() bool
	Sessions() []model.Session
}

// NotifyFunc вызывается, когда сессия вошла в окно присоединения.
type NotifyFunc func(ctx context.Context, chatID int64, sess model.Session)

// GateWatcher управляет единственной фоновой задачей бота: каждые 30 секунд
// пересчитывает временной гейт для сессий всех открытых экранов и один раз
// оповещает чат, когда ссылка на конференцию открылась.
type GateWatcher struct {
	interval time.Duration
	logger   *zap.Logger
	notify   NotifyFunc
	stopChan chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	views    map[int64]GateView  // chatID -> открытый экран
	notified map[string]struct{} // сессии, о которых уже оповестили
}

// NewGateWatcher создаёт наблюдатель гейта.
func NewGateWatcher(notify NotifyFunc, logger *zap.Logger) *GateWatcher {
	return &GateWatcher{
		interval: GateInterval,
		logger:   logger,
		notify:   notify,
		stopChan: make(chan struct{}),
		views:    make(map[int64]GateView),
		notified: make(map[string]struct{}),
	}
}

// Register подключает экран чата к наблюдению.
func (w *GateWatcher) Register(chatID int64, view GateView) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.views[chatID] = view
}

// Unregister отключает экран чата.
func (w *GateWatcher) Unregister(chatID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.views, chatID)
}

// Start запускает фоновую задачу.
func (w *GateWatcher) Start(ctx context.Context) {
	w.logger.Info("Starting gate watcher", zap.Duration("interval", w.interval))
	go w.run(ctx)
}

// Stop останавливает фоновую задачу. Обязателен при завершении:
// тикающий таймер поверх снесённого состояния - дефект, а не мелочь.
func (w *GateWatcher) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping gate watcher")
		close(w.stopChan)
	})
}

func (w *GateWatcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx, time.Now())
		case <-w.stopChan:
			w.logger.Info("Gate watcher stopped")
			return
		case <-ctx.Done():
			w.logger.Info("Gate watcher cancelled")
			return
		}
	}
}

// tick переоценивает гейт с нуля для каждой сессии. Множество notified -
// только дедупликация оповещений; сам гейт никогда не кэшируется.
func (w *GateWatcher) tick(ctx context.Context, now time.Time) {
	type opened struct {
		chatID int64
		sess   model.Session
	}
	var toNotify []opened

	w.mu.Lock()
	for chatID, view := range w.views {
		if view.Closed() {
			delete(w.views, chatID)
			continue
		}
		for _, sess := range view.Sessions() {
			if !service.CanJoin(&sess, now) {
				continue
			}
			if _, seen := w.notified[sess.ID]; seen {
				continue
			}
			w.notified[sess.ID] = struct{}{}
			toNotify = append(toNotify, opened{chatID: chatID, sess: sess})
		}
	}
	w.mu.Unlock()

	// Оповещаем без блокировки: notify ходит в Telegram
	for _, item := range toNotify {
		w.logger.Info("Session entered join window",
			zap.Int64("chat_id", item.chatID),
			zap.String("session_id", item.sess.ID),
			zap.String("slot_id", item.sess.SlotID))
		w.notify(ctx, item.chatID, item.sess)
	}
}
