package agent

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mckayn10/ai-chat-app/pkg/contacts"
	"github.com/mckayn10/ai-chat-app/pkg/errorsx"
	"github.com/mckayn10/ai-chat-app/pkg/intents"
	"github.com/mckayn10/ai-chat-app/pkg/language"
	"github.com/mckayn10/ai-chat-app/pkg/llm"
	"github.com/mckayn10/ai-chat-app/pkg/metrics"
	"github.com/mckayn10/ai-chat-app/pkg/redact"
)

// ConfidenceThreshold is the gate below which a syntactically valid parse
// is treated as noise.
const ConfidenceThreshold = 0.6

// Agent turns free-form utterances into contact store operations. One
// instance serves many sessions; all per-conversation state lives in the
// Session.
type Agent struct {
	client    llm.Client
	store     contacts.Store
	detector  language.Detector
	obs       metrics.Observer
	log       *slog.Logger
	threshold float64
	retry     llm.RetryConfig
	timeout   time.Duration
}

type Options struct {
	Client   llm.Client
	Store    contacts.Store
	Detector language.Detector
	Observer metrics.Observer
	Logger   *slog.Logger
	// Threshold overrides ConfidenceThreshold when > 0.
	Threshold float64
	// Retry governs transient completion failures. Zero value means the
	// llm package defaults.
	Retry llm.RetryConfig
	// CompletionTimeout bounds one whole completion attempt cycle.
	// Zero means no deadline beyond the caller's context.
	CompletionTimeout time.Duration
}

func New(opts Options) *Agent {
	if opts.Detector == nil {
		opts.Detector = language.NewKeywordDetector()
	}
	if opts.Observer == nil {
		opts.Observer = metrics.NoopObserver{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = ConfidenceThreshold
	}
	return &Agent{
		client:    opts.Client,
		store:     opts.Store,
		detector:  opts.Detector,
		obs:       opts.Observer,
		log:       opts.Logger,
		threshold: threshold,
		retry:     opts.Retry,
		timeout:   opts.CompletionTimeout,
	}
}

// ProcessCommand is the engine's sole entry point: one utterance in, one
// ActionResult out. Completion and store failures never escape as errors;
// they resolve to localized failure results.
func (a *Agent) ProcessCommand(ctx context.Context, sess *Session, utterance string) ActionResult {
	loc := a.detector.Detect(utterance)
	if !sess.begin() {
		return failure(msgBusy(loc))
	}
	defer sess.end()

	traceID := uuid.NewString()
	a.record(metrics.EventCommandReceived, sess, map[string]string{"trace_id": traceID})
	result := a.process(ctx, sess, utterance, loc, traceID)
	a.record(metrics.EventCommandResolved, sess, map[string]string{
		"trace_id": traceID,
		"success":  boolTag(result.Success),
	})
	return result
}

func (a *Agent) process(ctx context.Context, sess *Session, utterance string, loc language.Locale, traceID string) ActionResult {
	// The very next turn after create_ask_name is the name-bearing turn,
	// whatever it contains. Consume the marker up front so every path
	// leaves the session Idle.
	wasAwaitingName := sess.tracker.Consume("turn received")

	input := llm.NewContext(systemPrompt(), utterance)
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	resp, err := llm.Retry(ctx, a.retry, func(ctx context.Context) (llm.Response, error) {
		return a.client.Generate(ctx, input)
	})
	if err != nil {
		a.log.Error("completion_failed", "error", err, "session_id", sess.ID)
		a.record(metrics.EventCompletionError, sess, map[string]string{"trace_id": traceID})
		return failure(msgGenericError(loc))
	}
	a.record(metrics.EventCompletionDone, sess, map[string]string{"trace_id": traceID})

	rec, err := intents.Decode(resp.Text)
	if err != nil {
		a.log.Warn("completion_unparseable", "error", err,
			"payload", redact.Text(redact.Snip(resp.Text, 200)), "session_id", sess.ID)
		a.record(metrics.EventCompletionError, sess, map[string]string{"trace_id": traceID})
		return failure(msgGenericError(loc))
	}

	intent, err := intents.Validate(rec)
	if err != nil {
		var verr *intents.ValidationError
		if errors.As(err, &verr) {
			a.log.Info("intent_invalid", "action", string(verr.Action),
				"missing", verr.Missing, "session_id", sess.ID)
			a.record(metrics.EventIntentInvalid, sess, map[string]string{"trace_id": traceID})
			return failure(msgInvalid(verr.Action, loc))
		}
		a.record(metrics.EventIntentInvalid, sess, map[string]string{"trace_id": traceID})
		return failure(msgGenericError(loc))
	}

	// Confidence gate: a valid parse below threshold is noise, whatever
	// action it claims. Nothing reaches the store from here.
	if intent.Confidence < a.threshold {
		a.log.Info("low_confidence", "confidence", intent.Confidence,
			"action", string(intent.Action), "session_id", sess.ID)
		a.record(metrics.EventLowConfidence, sess, map[string]string{"trace_id": traceID})
		return failure(msgLowConfidence(loc))
	}

	if wasAwaitingName {
		return a.completePendingCreate(ctx, sess, intent, loc)
	}
	return a.dispatch(ctx, sess, intent, loc)
}

// completePendingCreate handles the turn that answers "what's the name?".
// Any parse carrying a first name completes the creation; anything else
// fails the pending action (the marker was already cleared).
func (a *Agent) completePendingCreate(ctx context.Context, sess *Session, intent intents.Intent, loc language.Locale) ActionResult {
	if intent.Contact.FirstName == "" {
		return failure(msgInvalid(intents.ActionCreateWithName, loc))
	}
	return a.createWithName(ctx, sess, intent, loc)
}

func (a *Agent) dispatch(ctx context.Context, sess *Session, intent intents.Intent, loc language.Locale) ActionResult {
	switch intent.Action {
	case intents.ActionList:
		return a.list(ctx, sess, intent, loc)
	case intents.ActionCreate:
		return a.create(ctx, sess, intent, loc)
	case intents.ActionCreateAskName:
		sess.tracker.Await("create requested without a name")
		if intent.ResponseMessage != "" {
			return success(intent.ResponseMessage, nil)
		}
		return success(msgAskName(loc), nil)
	case intents.ActionCreateWithName:
		return a.createWithName(ctx, sess, intent, loc)
	case intents.ActionDelete:
		return a.delete(ctx, sess, intent, loc)
	case intents.ActionUpdate:
		return a.update(ctx, sess, intent, loc)
	case intents.ActionUpdateByName:
		return a.updateByName(ctx, sess, intent, loc)
	default:
		if intent.ResponseMessage != "" {
			return failure(intent.ResponseMessage)
		}
		return failure(msgHelp(loc))
	}
}

func (a *Agent) list(ctx context.Context, sess *Session, intent intents.Intent, loc language.Locale) ActionResult {
	list, err := a.store.List(ctx, sess.UserID)
	if err != nil {
		return a.storeFailure(sess, loc, "list", err)
	}
	return success(msgContactList(loc, intent.ResponseMessage, list), list)
}

func (a *Agent) create(ctx context.Context, sess *Session, intent intents.Intent, loc language.Locale) ActionResult {
	c, err := a.store.Create(ctx, sess.UserID, intent.Contact)
	if err != nil {
		return a.storeFailure(sess, loc, "create", err)
	}
	a.log.Info("contact_created", "contact_id", c.ID, "session_id", sess.ID)
	return success(msgCreated(loc, c, intent.Contact), c)
}

func (a *Agent) createWithName(ctx context.Context, sess *Session, intent intents.Intent, loc language.Locale) ActionResult {
	c, err := a.store.Create(ctx, sess.UserID, intent.Contact)
	if err != nil {
		return a.storeFailure(sess, loc, "create", err)
	}
	a.log.Info("contact_created", "contact_id", c.ID, "session_id", sess.ID)
	return success(msgCreatedWithName(loc, c), c)
}

func (a *Agent) delete(ctx context.Context, sess *Session, intent intents.Intent, loc language.Locale) ActionResult {
	err := a.store.Delete(ctx, sess.UserID, intent.ContactID)
	if errors.Is(err, contacts.ErrNotFound) {
		return failure(msgNotFoundByID(loc, intent.ContactID))
	}
	if err != nil {
		return a.storeFailure(sess, loc, "delete", err)
	}
	a.log.Info("contact_deleted", "contact_id", intent.ContactID, "session_id", sess.ID)
	return success(msgDeleted(loc), nil)
}

func (a *Agent) update(ctx context.Context, sess *Session, intent intents.Intent, loc language.Locale) ActionResult {
	upd := mergeUpdates(intent)
	c, err := a.store.Update(ctx, sess.UserID, intent.ContactID, upd)
	if errors.Is(err, contacts.ErrNotFound) {
		return failure(msgNotFoundByID(loc, intent.ContactID))
	}
	if err != nil {
		return a.storeFailure(sess, loc, "update", err)
	}
	return success(msgUpdated(loc, c), c)
}

// updateByName is the only two-step path: a name lookup followed by an
// id-scoped update. The pair is not atomic; a concurrent mutation between
// the two calls is last-write-wins on the resolved row.
func (a *Agent) updateByName(ctx context.Context, sess *Session, intent intents.Intent, loc language.Locale) ActionResult {
	res, err := a.resolveByName(ctx, sess.UserID, intent.TargetFirstName, intent.TargetLastName)
	if err != nil {
		a.record(metrics.EventStoreError, sess, nil)
		a.log.Error("find_by_name_failed", "error", errorsx.Wrap(err, errorsx.ReasonStoreQuery), "session_id", sess.ID)
		return failure(msgUpdateError(loc))
	}
	switch res.Kind {
	case NoMatch:
		return failure(msgNotFoundByName(loc, intent.TargetFirstName, intent.TargetLastName))
	case ManyNeedDiscriminator:
		return failure(msgAmbiguous(loc, res.Candidates))
	}
	c, err := a.store.Update(ctx, sess.UserID, res.Contact.ID, intent.Updates)
	if err != nil {
		a.record(metrics.EventStoreError, sess, nil)
		a.log.Error("update_by_name_failed", "error", errorsx.Wrap(err, errorsx.ReasonStoreMutation), "session_id", sess.ID)
		return failure(msgUpdateError(loc))
	}
	return success(msgUpdated(loc, c), c)
}

func (a *Agent) storeFailure(sess *Session, loc language.Locale, op string, err error) ActionResult {
	a.record(metrics.EventStoreError, sess, map[string]string{"op": op})
	a.log.Error("store_operation_failed", "op", op, "error", err, "session_id", sess.ID)
	return failure(msgGenericError(loc))
}

// mergeUpdates folds the intent's loose contact fields and its explicit
// update set into one update. The explicit set wins on overlap.
func mergeUpdates(intent intents.Intent) contacts.Updates {
	upd := contacts.Updates{}
	if v := intent.Contact.FirstName; v != "" {
		upd.FirstName = ptr(v)
	}
	if v := intent.Contact.LastName; v != "" {
		upd.LastName = ptr(v)
	}
	if v := intent.Contact.Email; v != "" {
		upd.Email = ptr(v)
	}
	if v := intent.Contact.Phone; v != "" {
		upd.Phone = ptr(v)
	}
	if v := intent.Contact.Notes; v != "" {
		upd.Notes = ptr(v)
	}
	if intent.Updates.Email != nil {
		upd.Email = intent.Updates.Email
	}
	if intent.Updates.Phone != nil {
		upd.Phone = intent.Updates.Phone
	}
	if intent.Updates.Notes != nil {
		upd.Notes = intent.Updates.Notes
	}
	return upd
}

func ptr(s string) *string { return &s }

func (a *Agent) record(name string, sess *Session, tags map[string]string) {
	ev := metrics.MetricsEvent{
		Name: name,
		Time: time.Now(),
		Tags: map[string]string{"session_id": sess.ID},
	}
	for k, v := range tags {
		ev.Tags[k] = v
	}
	a.obs.RecordEvent(ev)
}

func boolTag(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
