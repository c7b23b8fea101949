package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/m04kA/SMC-ActionCentreService/internal/coordinator"
	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/internal/notify"
)

// DefaultIdleTTL время жизни формы без обращений
const DefaultIdleTTL = 30 * time.Minute

// Session открытая форма записи одного посетителя
type Session struct {
	ID          uuid.UUID
	Coordinator *coordinator.Coordinator
	Inbox       *notify.Inbox

	// closed выставляется при первом вытеснении из кэша
	closed atomic.Bool
}

// Options настройки реестра сессий
type Options struct {
	IdleTTL     time.Duration
	MaxSessions int
	InboxSize   int
}

// Registry хранит формы записи по идентификатору сессии.
// Простаивающие дольше IdleTTL формы вытесняются кэшем и закрываются.
type Registry struct {
	backend  *Backend
	notifier Notifier
	metrics  MetricsRecorder
	logger   Logger
	opts     Options

	// admit сериализует проверку лимита и добавление в кэш
	admit    sync.Mutex
	active   atomic.Int64
	sessions *expirable.LRU[uuid.UUID, *Session]
}

// NewRegistry создает реестр. notifier и metrics могут быть nil.
func NewRegistry(backend *Backend, notifier Notifier, metrics MetricsRecorder, logger Logger, opts Options) *Registry {
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = DefaultIdleTTL
	}
	if opts.InboxSize <= 0 {
		opts.InboxSize = notify.DefaultInboxSize
	}
	if opts.MaxSessions < 0 {
		opts.MaxSessions = 0
	}

	r := &Registry{
		backend:  backend,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
		opts:     opts,
	}
	// Размер 0 означает кэш без ограничения размера
	r.sessions = expirable.NewLRU[uuid.UUID, *Session](opts.MaxSessions, r.onEvict, opts.IdleTTL)
	return r
}

// onEvict вызывается кэшем под его блокировкой: к кэшу здесь обращаться нельзя
func (r *Registry) onEvict(id uuid.UUID, s *Session) {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	r.report(r.active.Add(-1))
	s.Coordinator.Close()
	r.logger.Info("Session: closed id=%s", id)
}

// Open создает сессию и открывает форму записи на процедуру procedureID в центре centreID.
// Если процедуру не удалось получить, форма открывается без цели и посетитель получает уведомление.
// При достижении MaxSessions возвращает ErrTooManySessions, уже открытые формы не вытесняются.
func (r *Registry) Open(ctx context.Context, centreID, procedureID string) (*Session, error) {
	inbox := notify.NewInbox(r.opts.InboxSize)
	var sink notify.Sink = inbox
	if r.notifier != nil {
		sink = notify.Multi(inbox, r.notifier)
	}

	s := &Session{
		ID:          uuid.New(),
		Coordinator: coordinator.New(r.backend, notify.Safe(sink, r.logger), r.logger),
		Inbox:       inbox,
	}

	r.admit.Lock()
	if r.opts.MaxSessions > 0 && r.sessions.Len() >= r.opts.MaxSessions {
		r.admit.Unlock()
		return nil, ErrTooManySessions
	}
	r.sessions.Add(s.ID, s)
	r.report(r.active.Add(1))
	r.admit.Unlock()

	r.logger.Info("Session: opened id=%s centre=%s procedure=%s", s.ID, centreID, procedureID)

	if err := s.Coordinator.Open(ctx, nil, centreID); err != nil {
		r.Delete(s.ID)
		return nil, err
	}

	if procedureID != "" {
		err := s.Coordinator.ChangeTarget(ctx, r.TargetResolver(centreID, procedureID))
		if err != nil {
			r.Delete(s.ID)
			return nil, err
		}
	}

	return s, nil
}

// TargetResolver возвращает функцию получения процедуры для формы
func (r *Registry) TargetResolver(centreID, procedureID string) coordinator.TargetResolver {
	return func(ctx context.Context) (*domain.BookingTarget, error) {
		return r.backend.ResolveTarget(ctx, centreID, procedureID)
	}
}

// Get получает сессию и продлевает её жизнь на IdleTTL
func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	s, ok := r.sessions.Get(id)
	if !ok || s.closed.Load() {
		return nil, ErrSessionNotFound
	}

	// Get кэша срок не продлевает, повторный Add продлевает
	r.sessions.Add(id, s)

	// Сессию могли вытеснить между Get и Add: убираем вернувшуюся закрытую запись
	if s.closed.Load() {
		r.sessions.Remove(id)
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete закрывает форму и удаляет сессию
func (r *Registry) Delete(id uuid.UUID) bool {
	s, ok := r.sessions.Peek(id)
	if !ok || s.closed.Load() {
		return false
	}
	return r.sessions.Remove(id)
}

// Len количество открытых сессий
func (r *Registry) Len() int {
	return int(r.active.Load())
}

// Close закрывает все открытые формы
func (r *Registry) Close() {
	r.sessions.Purge()
}

func (r *Registry) report(n int64) {
	if r.metrics != nil {
		r.metrics.SetActiveSessions(int(n))
	}
}
