package coordinator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-ActionCentreService/internal/availability"
	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

// Заголовки и тексты уведомлений формы
const (
	titleProvidersFailed = "Error loading nurses"
	titleSlotsFailed     = "Error loading time slots"
	titleTargetFailed    = "Error loading procedure"
	titleValidation      = "Validation Error"
	titleSubmitFailed    = "Error scheduling appointment"
	titleFieldError      = "Field Error: "
	titlePageError       = "Page Error"
	titleSuccess         = "Success"

	msgValidation = "Please complete all required fields"
	msgSuccess    = "Appointment successfully scheduled"
)

// Coordinator владеет черновиком записи и конечным автоматом формы.
// Черновик изменяется только методами Coordinator; подписчики получают копии.
//
// Запросы к Backend выполняются без удержания блокировки. Каждая загрузка слотов
// помечается возрастающим токеном: ответ, токен которого уже не текущий, отбрасывается.
//
// Подписчики вызываются под блокировкой в порядке переходов и не должны
// вызывать методы Coordinator.
type Coordinator struct {
	backend  Backend
	notifier Notifier
	logger   Logger

	mu          sync.Mutex
	state       State
	draft       domain.BookingDraft
	providers   []domain.Provider
	slots       domain.SlotSet
	generation  uint64 // меняется при каждом открытии и закрытии формы
	slotToken   uint64 // меняется при каждой загрузке слотов
	seq         uint64
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// New создает закрытую форму записи
func New(backend Backend, notifier Notifier, logger Logger) *Coordinator {
	return &Coordinator{
		backend:     backend,
		notifier:    notifier,
		logger:      logger,
		state:       StateClosed,
		subscribers: make(map[int]func(Snapshot)),
	}
}

// Subscribe регистрирует получателя снимков состояния; возвращает функцию отписки
func (c *Coordinator) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// Snapshot возвращает текущее состояние формы
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Open открывает форму для продукта или процедуры target в центре centreID
// и загружает список медсестёр центра. Черновик сбрасывается.
func (c *Coordinator) Open(ctx context.Context, target *domain.BookingTarget, centreID string) error {
	c.mu.Lock()

	// 1. Сбрасываем черновик и переходим в OpenEmpty
	c.resetLocked()
	c.state = StateOpenEmpty
	c.draft.CentreID = centreID
	if target != nil {
		t := *target
		c.draft.Target = &t
	}
	c.generation++
	gen := c.generation
	c.emitLocked()
	c.mu.Unlock()

	// 2. Загружаем медсестёр без удержания блокировки
	providers, err := c.backend.ListProviders(ctx, centreID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Info("Coordinator: discarding provider list of centre=%s, form was reopened or closed", centreID)
		return nil
	}

	if err != nil {
		c.logger.Warn("Coordinator: failed to load providers of centre=%s: %v", centreID, err)
		c.notifyLocked(ctx, titleProvidersFailed, err.Error(), domain.SeverityError)
		c.providers = nil
		c.emitLocked()
		return nil
	}

	c.providers = append([]domain.Provider(nil), providers...)
	c.emitLocked()
	return nil
}

// ChangeTarget заменяет продукт или процедуру записи в два наблюдаемых шага:
// сначала подписчики видят снимок без цели, затем снимок с новой целью.
func (c *Coordinator) ChangeTarget(ctx context.Context, resolve TargetResolver) error {
	c.mu.Lock()
	if err := c.checkEditableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}

	// 1. Очищаем прежнюю цель
	c.draft.Target = nil
	gen := c.generation
	c.emitLocked()
	c.mu.Unlock()

	// 2. Получаем новую цель
	target, err := resolve(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return nil
	}

	if err != nil {
		c.logger.Warn("Coordinator: failed to resolve booking target: %v", err)
		c.notifyLocked(ctx, titleTargetFailed, err.Error(), domain.SeverityError)
		return nil
	}

	if target != nil {
		t := *target
		c.draft.Target = &t
	}
	c.emitLocked()
	return nil
}

// SelectProvider выбирает медсестру; при выбранной дате загружает слоты
func (c *Coordinator) SelectProvider(ctx context.Context, providerID string) error {
	c.mu.Lock()
	if err := c.checkEditableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if _, ok := c.findProviderLocked(providerID); !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownProvider, providerID)
	}

	c.draft.ProviderID = providerID
	return c.refreshSlotsAndUnlock(ctx)
}

// SelectDate выбирает дату; при выбранной медсестре загружает слоты
func (c *Coordinator) SelectDate(ctx context.Context, date time.Time) error {
	c.mu.Lock()
	if err := c.checkEditableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}

	d := types.DateOnly(date)
	c.draft.Date = &d
	return c.refreshSlotsAndUnlock(ctx)
}

// SelectSlot выбирает час из текущего набора слотов
func (c *Coordinator) SelectSlot(slot types.HourOfDay) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkEditableLocked(); err != nil {
		return err
	}
	if c.state != StateSlotsReady || !c.slots.Contains(slot) {
		return fmt.Errorf("%w: %s", ErrSlotUnavailable, slot)
	}

	s := slot
	c.draft.Slot = &s
	c.emitLocked()
	return nil
}

// UpdateField обновляет контактное поле черновика; значение обрезается по краям
func (c *Coordinator) UpdateField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkEditableLocked(); err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch name {
	case domain.FieldFirstName:
		c.draft.FirstName = value
	case domain.FieldLastName:
		c.draft.LastName = value
	case domain.FieldPhone:
		c.draft.Phone = value
	case domain.FieldEmail:
		c.draft.Email = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	c.emitLocked()
	return nil
}

// Submit валидирует черновик и отправляет запись.
// При ошибке валидации запрос не выполняется, состояние и черновик не меняются.
// При отказе черновик сохраняется, форма возвращается в SlotsReady.
// При успехе черновик сбрасывается и форма закрывается.
func (c *Coordinator) Submit(ctx context.Context) error {
	c.mu.Lock()
	if err := c.checkEditableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}

	// 1. Валидация черновика
	req, err := c.draft.ToRequest()
	if err != nil {
		var verr *domain.ValidationError
		errors.As(err, &verr)
		c.logger.Warn("Coordinator: %v", err)
		c.notifyLocked(ctx, titleValidation,
			fmt.Sprintf("%s: %s", msgValidation, strings.Join(verr.FieldNames(), ", ")),
			domain.SeverityWarning)
		c.mu.Unlock()
		return err
	}

	// 2. Переходим в Submitting и отправляем без удержания блокировки
	c.state = StateSubmitting
	gen := c.generation
	c.emitLocked()
	c.mu.Unlock()

	err = c.backend.SubmitBooking(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Форма закрыта во время отправки: состояние не трогаем, но исход сообщаем
	if gen != c.generation {
		c.logger.Info("Coordinator: form closed while submitting: %v", err)
		if err == nil {
			c.notifyLocked(ctx, titleSuccess, msgSuccess, domain.SeveritySuccess)
			return nil
		}
		c.notifyLocked(ctx, titleSubmitFailed, err.Error(), domain.SeverityError)
		return err
	}

	// 3. Успех: закрываем форму
	if err == nil {
		c.logger.Info("Coordinator: booking accepted for provider=%s on %s %s",
			req.ProviderID, types.FormatDate(req.Date), req.Time)
		c.resetLocked()
		c.generation++
		c.notifyLocked(ctx, titleSuccess, msgSuccess, domain.SeveritySuccess)
		c.emitLocked()
		return nil
	}

	// 4. Отказ: черновик сохраняется, каждая ошибка - отдельное уведомление
	c.state = StateSlotsReady

	var rejected *domain.SubmissionRejected
	if errors.As(err, &rejected) {
		c.logger.Warn("Coordinator: booking rejected: %v", rejected)
		c.notifyLocked(ctx, titleSubmitFailed, rejected.Message, domain.SeverityError)
		for _, fe := range rejected.FieldErrors {
			for _, msg := range fe.Messages {
				c.notifyLocked(ctx, titleFieldError+fe.Field, msg, domain.SeverityError)
			}
		}
		for _, msg := range rejected.PageErrors {
			c.notifyLocked(ctx, titlePageError, msg, domain.SeverityError)
		}
		c.emitLocked()
		return rejected
	}

	c.logger.Error("Coordinator: booking submission failed: %v", err)
	c.notifyLocked(ctx, titleSubmitFailed, err.Error(), domain.SeverityError)
	c.emitLocked()
	return fmt.Errorf("%w: submit booking: %v", domain.ErrTransport, err)
}

// Close закрывает форму и сбрасывает черновик. Ответы незавершённых запросов отбрасываются.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed {
		return
	}

	c.resetLocked()
	c.generation++
	c.emitLocked()
}

// refreshSlotsAndUnlock загружает слоты для выбранной пары (медсестра, дата).
// Вызывается с удерживаемой блокировкой и освобождает её.
func (c *Coordinator) refreshSlotsAndUnlock(ctx context.Context) error {
	// Прежний набор слотов и выбранный час больше не действительны
	c.slots = domain.SlotSet{}
	c.draft.Slot = nil
	c.slotToken++

	if !c.draft.HasProviderAndDate() {
		if c.draft.ProviderID != "" {
			c.state = StateProviderSelected
		} else {
			c.state = StateOpenEmpty
		}
		c.emitLocked()
		c.mu.Unlock()
		return nil
	}

	provider, _ := c.findProviderLocked(c.draft.ProviderID)
	date := *c.draft.Date
	token := c.slotToken

	c.state = StateSlotsLoading
	c.emitLocked()
	c.mu.Unlock()

	// Загрузка и расчёт без удержания блокировки
	visits, err := c.backend.ListBookedVisits(ctx, provider.ID, date)
	var slotSet domain.SlotSet
	if err == nil {
		slotSet, err = availability.FreeSlotSet(provider, date, visits)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.slotToken {
		c.logger.Info("Coordinator: discarding stale slots of provider=%s on %s", provider.ID, types.FormatDate(date))
		return nil
	}

	c.state = StateSlotsReady
	c.draft.Slot = nil

	if err != nil {
		c.logger.Warn("Coordinator: failed to load slots of provider=%s on %s: %v",
			provider.ID, types.FormatDate(date), err)
		c.slots = domain.SlotSet{ProviderID: provider.ID, Date: date, Slots: []types.HourOfDay{}}
		c.notifyLocked(ctx, titleSlotsFailed, err.Error(), domain.SeverityError)
		c.emitLocked()
		return nil
	}

	c.slots = slotSet
	c.emitLocked()
	return nil
}

func (c *Coordinator) checkEditableLocked() error {
	switch c.state {
	case StateClosed:
		return ErrNotOpen
	case StateSubmitting:
		return ErrBusy
	}
	return nil
}

func (c *Coordinator) findProviderLocked(id string) (domain.Provider, bool) {
	for _, p := range c.providers {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Provider{}, false
}

func (c *Coordinator) resetLocked() {
	c.state = StateClosed
	c.draft = domain.BookingDraft{}
	c.providers = nil
	c.slots = domain.SlotSet{}
	c.slotToken++
}

func (c *Coordinator) snapshotLocked() Snapshot {
	slots := c.slots
	slots.Slots = append([]types.HourOfDay(nil), c.slots.Slots...)

	return Snapshot{
		Seq:       c.seq,
		State:     c.state,
		Draft:     c.draft.Clone(),
		Providers: append([]domain.Provider(nil), c.providers...),
		Slots:     slots,
	}
}

func (c *Coordinator) emitLocked() {
	c.seq++
	if len(c.subscribers) == 0 {
		return
	}

	snap := c.snapshotLocked()
	for _, fn := range c.subscribers {
		fn(snap)
	}
}

func (c *Coordinator) notifyLocked(ctx context.Context, title, message string, severity domain.Severity) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(ctx, domain.Notification{Title: title, Message: message, Severity: severity})
}
