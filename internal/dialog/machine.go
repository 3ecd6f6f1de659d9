// Package dialog implements the recruiting-intake conversation: a
// per-candidate state machine that consumes transport events, writes
// candidate records and emits prompts through a Messenger.
package dialog

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/maltsev-d/Telegram-HR-bot-ru/internal/logger"
	"github.com/maltsev-d/Telegram-HR-bot-ru/internal/records"
	"github.com/maltsev-d/Telegram-HR-bot-ru/internal/schedule"
	"github.com/maltsev-d/Telegram-HR-bot-ru/internal/vacancy"
)

// Callback tokens. These travel through the transport inside keyboard
// buttons and come back via HandleButton, so they are part of the wire
// contract with already-rendered keyboards.
const (
	tokenShowVacancies = "show_vacancies"
	tokenApplyPrefix   = "apply_"
	tokenInterestYes   = "continue_yes"
	tokenInterestNo    = "continue_no"
	tokenInterviewYes  = "interview_yes"
	tokenInterviewNo   = "interview_no"
	tokenNever         = "never"
	tokenAcceptPrefix  = "decision_accept_"
	tokenRejectPrefix  = "decision_reject_"
)

type eventKind int

const (
	kindStart eventKind = iota
	kindButton
	kindText
)

func (k eventKind) String() string {
	switch k {
	case kindStart:
		return "start"
	case kindButton:
		return "button"
	case kindText:
		return "text"
	}
	return "unknown"
}

// event is one inbound transport event, already tagged with the identity.
type event struct {
	kind     eventKind
	identity int64
	name     string // display name, start only
	handle   string // transport handle, start only
	token    string // button only
	text     string // text only
}

// rule is one row of the transition table: events matching (state, kind,
// token) run the handler. Rules with state == stateAny apply regardless of
// the current state; the original bot did not state-filter vacancy and HR
// decision buttons, and stale keyboards keep working that way.
type rule struct {
	state  State
	kind   eventKind
	token  string // exact token, or prefix when prefix is set; empty matches any
	prefix bool
	run    func(*Engine, *event) error
}

var transitions = []rule{
	{state: stateAny, kind: kindStart, run: (*Engine).startDialog},
	{state: stateAny, kind: kindButton, token: tokenShowVacancies, run: (*Engine).showVacancies},
	{state: stateAny, kind: kindButton, token: tokenApplyPrefix, prefix: true, run: (*Engine).applyToVacancy},
	{state: stateAny, kind: kindButton, token: tokenAcceptPrefix, prefix: true, run: (*Engine).acceptCandidate},
	{state: stateAny, kind: kindButton, token: tokenRejectPrefix, prefix: true, run: (*Engine).startFinalRejection},

	{state: StateInterest, kind: kindButton, token: tokenInterestYes, run: (*Engine).askMainQuestion},
	{state: StateInterest, kind: kindButton, token: tokenInterestNo, run: (*Engine).askDeclineReason},
	{state: StateDeclineReason, kind: kindText, run: (*Engine).saveDeclineReason},
	{state: StateMainQuestion, kind: kindText, run: (*Engine).saveMainAnswer},
	{state: StateSalaryQuestion, kind: kindText, run: (*Engine).saveSalary},

	{state: StateInterviewOffer, kind: kindButton, token: tokenInterviewYes, run: (*Engine).confirmInterview},
	{state: StateInterviewOffer, kind: kindButton, token: tokenInterviewNo, run: (*Engine).askReschedule},
	// Free text while an offer is pending recomputes the slot and re-offers.
	{state: StateInterviewOffer, kind: kindText, run: (*Engine).offerInterview},

	{state: StateRescheduleOrNever, kind: kindText, run: (*Engine).saveReschedule},
	{state: StateRescheduleOrNever, kind: kindButton, token: tokenNever, run: (*Engine).askRefusalReason},
	{state: StatePermanentRefusal, kind: kindText, run: (*Engine).saveRefusalReason},

	{state: StateFinalRejection, kind: kindText, run: (*Engine).saveFinalRejection},
}

// Engine drives the conversation. One mutex serializes every event end to
// end: the record store's read-merge-rewrite cycle is not safe under
// concurrent writers, and sessions share the same fate.
type Engine struct {
	mu       sync.Mutex
	sessions map[int64]*session

	store   *records.Store
	catalog *vacancy.Catalog
	out     Messenger
	log     *zap.Logger
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithNow overrides the clock used for first-contact stamps and interview
// slot computation.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates the conversation engine.
func New(store *records.Store, catalog *vacancy.Catalog, out Messenger, log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		sessions: make(map[int64]*session),
		store:    store,
		catalog:  catalog,
		out:      out,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HandleStart begins (or resets) the dialog for the identity.
func (e *Engine) HandleStart(id int64, displayName, handle string) error {
	return e.handle(&event{kind: kindStart, identity: id, name: displayName, handle: handle})
}

// HandleButton processes an inline keyboard press.
func (e *Engine) HandleButton(id int64, token string) error {
	return e.handle(&event{kind: kindButton, identity: id, token: token})
}

// HandleText processes a free-text message.
func (e *Engine) HandleText(id int64, text string) error {
	return e.handle(&event{kind: kindText, identity: id, text: text})
}

// HandleCommand processes bot commands other than /start. Commands are
// state-independent; unknown commands are ignored.
func (e *Engine) HandleCommand(id int64, name string, args []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch name {
	case "vacancies":
		return e.listVacancies(id)
	case "download":
		return e.exportRecords(id)
	case "evaluate":
		return e.evaluateCandidate(id, args)
	default:
		e.log.Debug("ignoring unknown command",
			zap.Int64("id", id),
			zap.String("command", name),
		)
		return nil
	}
}

// State reports the current dialog state for an identity. Absent session
// means StateIdle.
func (e *Engine) State(id int64) State {
	e.mu.Lock()
	defer e.mu.Unlock()

	if sess, ok := e.sessions[id]; ok {
		return sess.state
	}
	return StateIdle
}

func (e *Engine) handle(ev *event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := StateIdle
	if sess, ok := e.sessions[ev.identity]; ok {
		state = sess.state
	}

	for _, tr := range transitions {
		if tr.state != stateAny && tr.state != state {
			continue
		}
		if tr.kind != ev.kind {
			continue
		}
		if tr.token != "" {
			if tr.prefix {
				if !strings.HasPrefix(ev.token, tr.token) {
					continue
				}
			} else if ev.token != tr.token {
				continue
			}
		}
		return tr.run(e, ev)
	}

	// Invalid (state, event) pair: ignored, never a crash.
	e.log.Debug("ignoring event with no matching transition",
		zap.Int64("id", ev.identity),
		zap.String("state", string(state)),
		zap.String("kind", ev.kind.String()),
		zap.String("token", ev.token),
	)

	if state == StateIdle && ev.kind == kindText {
		return e.out.SendText(ev.identity, textPressStart)
	}
	return nil
}

func (e *Engine) setState(id int64, state State) {
	sess, ok := e.sessions[id]
	if !ok {
		sess = &session{}
		e.sessions[id] = sess
	}
	sess.state = state
}

func (e *Engine) clearState(id int64) {
	delete(e.sessions, id)
}

// startDialog handles /start: resets any previous session, registers the
// candidate and shows the entry keyboard.
func (e *Engine) startDialog(ev *event) error {
	e.clearState(ev.identity)

	e.log.Info("new candidate",
		zap.Int64("id", ev.identity),
		zap.String("name", ev.name),
		zap.String("username", ev.handle),
	)

	err := e.store.Upsert(ev.identity, records.Fields{
		records.FieldStatus:   records.StatusNew,
		records.FieldFullName: ev.name,
		records.FieldUsername: ev.handle,
		records.FieldDate:     e.now().Format(schedule.StampLayout),
	})
	if err != nil {
		return err
	}

	e.setState(ev.identity, StateChooseVacancy)

	return e.out.SendChoice(ev.identity,
		fmt.Sprintf(textStart, ev.name),
		[]Choice{{Label: labelShowVacancies, Token: tokenShowVacancies}},
	)
}

func (e *Engine) showVacancies(ev *event) error {
	if e.catalog.Len() == 0 {
		e.log.Warn("no vacancies to show", zap.Int64("id", ev.identity))
		return e.out.SendText(ev.identity, textNoVacancies)
	}

	for _, v := range e.catalog.All() {
		err := e.out.SendChoice(ev.identity,
			fmt.Sprintf("*%s*\n\n%s", v.Title, v.Description),
			[]Choice{{Label: labelApply, Token: tokenApplyPrefix + v.ID}},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) applyToVacancy(ev *event) error {
	id := strings.TrimPrefix(ev.token, tokenApplyPrefix)

	v := e.catalog.FindByID(id)
	if v == nil {
		// Stale button from a removed opening.
		return e.out.SendText(ev.identity, textVacancyNotFound)
	}

	err := e.store.Upsert(ev.identity, records.Fields{
		records.FieldVacancy: v.Title,
		records.FieldStatus:  records.StatusReviewing,
	})
	if err != nil {
		return err
	}

	if err := e.out.SendText(ev.identity, textVacancyInfo); err != nil {
		return err
	}

	e.setState(ev.identity, StateInterest)

	return e.out.SendChoice(ev.identity, textInterest, []Choice{
		{Label: labelYes, Token: tokenInterestYes},
		{Label: labelNo, Token: tokenInterestNo},
	})
}

func (e *Engine) askDeclineReason(ev *event) error {
	e.setState(ev.identity, StateDeclineReason)
	return e.out.SendText(ev.identity, textDeclineAsk)
}

func (e *Engine) saveDeclineReason(ev *event) error {
	err := e.store.Upsert(ev.identity, records.Fields{
		records.FieldStatus: records.StatusCandidateDeclined,
		records.FieldReason: ev.text,
	})
	if err != nil {
		return err
	}

	e.clearState(ev.identity)
	return e.out.SendText(ev.identity, textDeclineThanks)
}

func (e *Engine) askMainQuestion(ev *event) error {
	e.setState(ev.identity, StateMainQuestion)
	return e.out.SendText(ev.identity, textMainQuestion)
}

func (e *Engine) saveMainAnswer(ev *event) error {
	e.log.Debug("main question answered",
		zap.Int64("id", ev.identity),
		zap.String("answer", logger.TruncateForLog(ev.text, 100)),
	)

	err := e.store.Upsert(ev.identity, records.Fields{
		records.FieldImportant: ev.text,
	})
	if err != nil {
		return err
	}

	e.setState(ev.identity, StateSalaryQuestion)
	return e.out.SendText(ev.identity, textSalaryQuestion)
}

func (e *Engine) saveSalary(ev *event) error {
	salary, err := NormalizeSalary(ev.text)
	if err != nil {
		// Recovered locally: re-prompt, keep the state.
		return e.out.SendText(ev.identity, textSalaryError)
	}

	err = e.store.Upsert(ev.identity, records.Fields{
		records.FieldSalaryExpectations: salary,
	})
	if err != nil {
		return err
	}

	return e.offerInterview(ev)
}

// offerInterview computes the next slot 48 business hours out and presents
// it. Entered automatically after a valid salary answer and re-entered when
// the candidate types instead of answering the offer keyboard.
func (e *Engine) offerInterview(ev *event) error {
	slot := schedule.NextSlot(e.now())

	err := e.store.Upsert(ev.identity, records.Fields{
		records.FieldStatus:        records.StatusInvited,
		records.FieldInterviewDate: schedule.FormatStamp(slot),
	})
	if err != nil {
		return err
	}

	e.setState(ev.identity, StateInterviewOffer)

	return e.out.SendChoice(ev.identity,
		fmt.Sprintf(textInterviewInvite, schedule.FormatInvite(slot)),
		[]Choice{
			{Label: labelYes, Token: tokenInterviewYes},
			{Label: labelNo, Token: tokenInterviewNo},
		},
	)
}

func (e *Engine) confirmInterview(ev *event) error {
	err := e.store.Upsert(ev.identity, records.Fields{
		records.FieldStatus: records.StatusInterviewHR,
	})
	if err != nil {
		return err
	}

	e.clearState(ev.identity)
	return e.out.SendText(ev.identity, textInterviewAccept)
}

func (e *Engine) askReschedule(ev *event) error {
	e.setState(ev.identity, StateRescheduleOrNever)
	return e.out.SendChoice(ev.identity, textInterviewReject,
		[]Choice{{Label: labelNever, Token: tokenNever}},
	)
}

func (e *Engine) saveReschedule(ev *event) error {
	err := e.store.Upsert(ev.identity, records.Fields{
		records.FieldStatus:               records.StatusFollowUp,
		records.FieldDesiredInterviewTime: ev.text,
	})
	if err != nil {
		return err
	}

	e.clearState(ev.identity)
	return e.out.SendText(ev.identity, textRescheduleThanks)
}

func (e *Engine) askRefusalReason(ev *event) error {
	e.setState(ev.identity, StatePermanentRefusal)
	return e.out.SendText(ev.identity, textNeverAsk)
}

func (e *Engine) saveRefusalReason(ev *event) error {
	err := e.store.Upsert(ev.identity, records.Fields{
		records.FieldStatus:        records.StatusCandidateDeclined,
		records.FieldRefusalReason: ev.text,
	})
	if err != nil {
		return err
	}

	e.clearState(ev.identity)
	return e.out.SendText(ev.identity, textRefusalThanks)
}

// acceptCandidate handles the HR accept button: keyed by the target id
// carried in the token, not by the invoking operator's state.
func (e *Engine) acceptCandidate(ev *event) error {
	target, ok := e.decisionTarget(ev, tokenAcceptPrefix)
	if !ok {
		return nil
	}

	err := e.store.Upsert(target, records.Fields{
		records.FieldStatus: records.StatusAccepted,
	})
	if err != nil {
		return err
	}

	e.log.Info("candidate accepted",
		zap.Int64("candidate_id", target),
		zap.Int64("hr_id", ev.identity),
	)

	// Push to the candidate, outside their own dialog turn.
	if err := e.out.SendText(target, textAcceptNotice); err != nil {
		return err
	}

	return e.out.SendText(ev.identity, fmt.Sprintf(textAcceptAck, target))
}

// startFinalRejection opens the rejection-reason sub-flow on the HR
// operator's own session, remembering which candidate it is about.
func (e *Engine) startFinalRejection(ev *event) error {
	target, ok := e.decisionTarget(ev, tokenRejectPrefix)
	if !ok {
		return nil
	}

	e.sessions[ev.identity] = &session{state: StateFinalRejection, target: target}
	return e.out.SendText(ev.identity, textFinalReasonAsk)
}

func (e *Engine) saveFinalRejection(ev *event) error {
	sess := e.sessions[ev.identity]
	target := sess.target
	reason := strings.TrimSpace(ev.text)

	err := e.store.Upsert(target, records.Fields{
		records.FieldStatus:               records.StatusRejected,
		records.FieldFinalRejectionReason: reason,
	})
	if err != nil {
		return err
	}

	e.log.Info("candidate rejected",
		zap.Int64("candidate_id", target),
		zap.Int64("hr_id", ev.identity),
		zap.String("reason", logger.TruncateForLog(reason, 100)),
	)

	if err := e.out.SendText(target, textRejectNotice); err != nil {
		return err
	}

	e.clearState(ev.identity)
	return e.out.SendText(ev.identity, fmt.Sprintf(textRejectAck, target))
}

func (e *Engine) decisionTarget(ev *event, prefix string) (int64, bool) {
	target, err := strconv.ParseInt(strings.TrimPrefix(ev.token, prefix), 10, 64)
	if err != nil {
		// Decision tokens are generated by /evaluate, so this is a forged or
		// corrupted callback.
		e.log.Warn("malformed decision token",
			zap.Int64("id", ev.identity),
			zap.String("token", ev.token),
		)
		return 0, false
	}
	return target, true
}

func (e *Engine) listVacancies(id int64) error {
	if e.catalog.Len() == 0 {
		return e.out.SendText(id, textNoVacancies)
	}

	for _, v := range e.catalog.All() {
		if err := e.out.SendText(id, fmt.Sprintf("*%s*\n\n%s", v.Title, v.Description)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) exportRecords(id int64) error {
	if !e.store.Exists() {
		return e.out.SendText(id, textExportMissing)
	}
	return e.out.SendDocument(id, e.store.Path(), textExportCaption)
}

func (e *Engine) evaluateCandidate(id int64, args []string) error {
	if len(args) != 1 {
		return e.out.SendText(id, textEvaluateUsage)
	}

	target, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return e.out.SendText(id, textEvaluateUsage)
	}

	return e.out.SendChoice(id,
		fmt.Sprintf(textEvaluatePrompt, target),
		[]Choice{
			{Label: labelAccept, Token: fmt.Sprintf("%s%d", tokenAcceptPrefix, target)},
			{Label: labelReject, Token: fmt.Sprintf("%s%d", tokenRejectPrefix, target)},
		},
	)
}
