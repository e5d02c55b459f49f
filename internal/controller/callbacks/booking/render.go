package booking

import (
	"context"
	"time"

	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/bus_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const loadTimeout = 2 * time.Minute

// show перерисовывает сообщение мастера под текущий шаг и запускает загрузку данных.
// Вызывается под блокировкой сессии
func show(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, sess *state.Session) {
	screen, next := prepare(sess, h.Today(), h.NewRand)

	if err := common.EditWizardMessage(ctx, b, sess.ChatID, sess.MessageID, screen.Text, screen.Keyboard); err != nil {
		h.Logger.Error("Failed to render wizard step",
			zap.Int64("telegram_id", sess.TelegramID),
			zap.String("step", sess.Machine.Step().String()),
			zap.Error(err))
	}

	startLoad(ctx, b, h, sess, next)
}

// StartWizard отправляет новое сообщение мастера. restart начинает бронирование заново
func StartWizard(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, chatID, telegramID int64, restart bool) error {
	sess := h.Sessions.GetOrCreate(telegramID)
	sess.Lock()
	defer sess.Unlock()

	if restart {
		sess.Restart()
	}

	screen, next := prepare(sess, h.Today(), h.NewRand)

	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      screen.Text,
		ParseMode: models.ParseModeHTML,
	}
	if screen.Keyboard != nil {
		params.ReplyMarkup = screen.Keyboard
	}
	msg, err := b.SendMessage(ctx, params)
	if err != nil {
		sess.Loading = false
		return err
	}

	sess.ChatID = chatID
	sess.MessageID = msg.ID

	h.Logger.Info("Wizard started",
		zap.Int64("telegram_id", telegramID),
		zap.String("step", sess.Machine.Step().String()),
		zap.Bool("restart", restart))

	startLoad(ctx, b, h, sess, next)
	return nil
}

// startLoad загружает данные шага в фоне. Результат применяется только если
// пользователь всё ещё на том же шаге (step, epoch), иначе отбрасывается
func startLoad(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, sess *state.Session, what load) {
	if what == loadNone {
		return
	}

	step, epoch := sess.Machine.Step(), sess.Machine.Epoch()
	details := sess.Machine.Details()

	go func() {
		loadCtx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()

		var apply func()
		switch what {
		case loadTerminals:
			dir, err := h.BookingService.LoadDirectory(loadCtx)
			apply = func() {
				if err != nil {
					sess.LoadErr = err
					return
				}
				sess.Directory = dir
			}
		case loadSchedules:
			schedules, err := h.BookingService.LoadSchedules(loadCtx, details)
			apply = func() {
				if err != nil {
					sess.LoadErr = err
					return
				}
				sess.Schedules = schedules
				sess.SchedulesKey = schedulesKey(details)
			}
		}

		sess.Lock()
		defer sess.Unlock()

		switch loadResultOutcome(sess, what, step, epoch) {
		case loadDiscard:
			h.Logger.Debug("Discarding stale load result",
				zap.Int64("telegram_id", sess.TelegramID),
				zap.String("loaded_for", step.String()),
				zap.String("step", sess.Machine.Step().String()))
			return
		case loadKeep:
			apply()
			sess.LoadErr = nil
			return
		}

		sess.Loading = false
		apply()
		if sess.LoadErr != nil {
			h.Logger.Warn("Step data unavailable",
				zap.Int64("telegram_id", sess.TelegramID),
				zap.String("step", step.String()),
				zap.Error(sess.LoadErr))
		}

		show(ctx, b, h, sess)
	}()
}

// loadOutcome что делать с результатом фоновой загрузки
type loadOutcome int

const (
	loadDiscard loadOutcome = iota
	// применить без перерисовки: шаг сменился, но данные ещё пригодятся
	loadKeep
	loadApply
)

// loadResultOutcome решает судьбу результата загрузки, начатой на шаге (step, epoch).
// Справочник терминалов не зависит от шага и сохраняется, пока сессия жива
func loadResultOutcome(sess *state.Session, what load, step model.BookingStep, epoch uint64) loadOutcome {
	switch {
	case sess.Closed():
		return loadDiscard
	case sess.Machine.IsCurrent(step, epoch):
		return loadApply
	case what == loadTerminals:
		return loadKeep
	default:
		return loadDiscard
	}
}

// reRender показывает актуальный шаг в ответ на кнопку предыдущего шага
func reRender(hc *common.HandlerContext) {
	hc.Answer(common.ErrorMessage(common.ErrStaleCallback))
	show(hc.Ctx, hc.Bot, hc.Handler, hc.Session)
}

// atStep проверяет, что кнопка относится к текущему шагу. Иначе перерисовывает экран
func atStep(hc *common.HandlerContext, step model.BookingStep) bool {
	if hc.Session.Machine.Step() == step {
		return true
	}
	hc.Handler.Logger.Debug("Stale callback",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.String("data", hc.Callback.Data),
		zap.String("expected", step.String()),
		zap.String("step", hc.Session.Machine.Step().String()))
	reRender(hc)
	return false
}
