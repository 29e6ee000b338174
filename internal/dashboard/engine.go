// Package dashboard runs the monitoring client: one event loop owns the history
// buffer, the control values and the mode, and publishes View snapshots.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cooling_dashboard/internal/actuator"
	"cooling_dashboard/internal/automation"
	"cooling_dashboard/internal/chart"
	"cooling_dashboard/internal/history"
	"cooling_dashboard/internal/ingest"
	"cooling_dashboard/internal/logger"
	"cooling_dashboard/internal/mode"
	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/remote"
)

var (
	// ErrControlDisabled is returned when the active mode does not allow writing a control.
	ErrControlDisabled = errors.New("control is disabled in the current mode")
	// ErrInvalidSetting is returned for AC settings rejected before any request.
	ErrInvalidSetting = errors.New("invalid setting")
	// ErrStopped is returned once the loop has exited.
	ErrStopped = errors.New("dashboard stopped")
)

const (
	defaultReconcileEvery = 30 * time.Second
	defaultWeatherEvery   = 30 * time.Minute
	defaultClockEvery     = 60 * time.Second
	eventQueueSize        = 64
)

// SettingsAPI is the AC settings resource.
type SettingsAPI interface {
	Settings(ctx context.Context) (models.AutomationSettings, error)
	SetManual(ctx context.Context, in models.ManualSettings) (models.AutomationSettings, error)
	SetAutomation(ctx context.Context, in models.AutomationRule) (models.AutomationSettings, error)
}

// DisplayAPI serves the weather and clock widgets.
type DisplayAPI interface {
	CurrentWeather(ctx context.Context) (models.CurrentWeather, error)
	Forecast(ctx context.Context) (models.Forecast, error)
	Clock(ctx context.Context) (models.ServerClock, error)
}

// Options tunes the engine. Zero values get defaults.
type Options struct {
	Capacity       int
	Source         string
	LabelStyle     chart.LabelStyle
	ReconcileEvery time.Duration
	WeatherEvery   time.Duration
	ClockEvery     time.Duration
}

func (o *Options) withDefaults() {
	if o.Capacity <= 0 {
		o.Capacity = history.DefaultCapacity
	}
	if o.Source == "" {
		o.Source = models.DefaultSource
	}
	if o.ReconcileEvery <= 0 {
		o.ReconcileEvery = defaultReconcileEvery
	}
	if o.WeatherEvery <= 0 {
		o.WeatherEvery = defaultWeatherEvery
	}
	if o.ClockEvery <= 0 {
		o.ClockEvery = defaultClockEvery
	}
}

// Deps are the collaborators injected by the composition root.
// Settings and Display are optional.
type Deps struct {
	Sources  []ingest.Source
	Sync     *actuator.Sync
	Settings SettingsAPI
	Display  DisplayAPI
	Log      *logger.Logger
	Now      func() time.Time
}

// Engine is the single writer of the client state.
type Engine struct {
	opts    Options
	log     *logger.Logger
	now     func() time.Time
	sources []ingest.Source
	sync    *actuator.Sync
	api     SettingsAPI
	display DisplayAPI

	// loop-owned state
	ingress  *ingest.Ingress
	mode     *mode.Controller
	controls Controls
	settings models.AutomationSettings
	running  bool
	chart    chart.Projection
	status   Status
	weather  *models.CurrentWeather
	forecast *models.Forecast
	clock    *models.ServerClock

	events     chan event
	replies    []queuedReply
	deliveries chan ingest.Delivery
	done       chan struct{}
	inflight   sync.WaitGroup
	view       tracker
}

// New builds an engine. Call Run to start it.
func New(deps Deps, opts Options) *Engine {
	opts.withDefaults()
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	e := &Engine{
		opts:       opts,
		log:        log,
		now:        now,
		sources:    deps.Sources,
		sync:       deps.Sync,
		api:        deps.Settings,
		display:    deps.Display,
		settings:   models.DefaultAutomationSettings(),
		events:     make(chan event, eventQueueSize),
		deliveries: make(chan ingest.Delivery, eventQueueSize),
		done:       make(chan struct{}),
	}
	e.ingress = ingest.NewIngress(history.New(opts.Capacity), now, e.onSample)

	initial := e.sync.Store().Snapshot()
	e.mode = mode.NewController(initial.ModeRequest)
	e.controls = ControlsFrom(initial)
	e.controls.Mode = e.mode.Mode()
	e.status.Feed = ingest.FeedDisconnected
	if len(e.sources) > 0 {
		e.status.Feed = ingest.FeedConnecting
	}
	e.chart = chart.Project(nil, opts.LabelStyle)
	e.publish()
	return e
}

// View returns the latest published snapshot. Safe for concurrent use.
func (e *Engine) View() View { return e.view.get() }

// Run starts the feeds and timers and handles events until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)

	var feeds sync.WaitGroup
	for _, src := range e.sources {
		feeds.Add(1)
		go func(src ingest.Source) {
			defer feeds.Done()
			if err := src.Run(ctx, e.deliveries); err != nil && !errors.Is(err, context.Canceled) {
				e.log.Warnw("feed_stopped", "source", src.Name(), "err", err)
			}
		}(src)
	}

	e.startReconcile(ctx, nil)
	e.startSettingsFetch(ctx)
	e.startWeather(ctx)
	e.startClock(ctx)
	e.publish()

	reconcileT := time.NewTicker(e.opts.ReconcileEvery)
	weatherT := time.NewTicker(e.opts.WeatherEvery)
	clockT := time.NewTicker(e.opts.ClockEvery)
	defer reconcileT.Stop()
	defer weatherT.Stop()
	defer clockT.Stop()

	for {
		select {
		case <-ctx.Done():
			feeds.Wait()
			e.inflight.Wait()
			e.log.Infow("dashboard_stopped")
			return nil
		case d := <-e.deliveries:
			e.handleDelivery(d)
		case ev := <-e.events:
			e.handle(ctx, ev)
		case <-reconcileT.C:
			e.startReconcile(ctx, nil)
		case <-weatherT.C:
			e.startWeather(ctx)
		case <-clockT.C:
			e.startClock(ctx)
		}
		e.publish()
		e.flushReplies()
	}
}

// ---- requests from the panel ----

// SelectMode switches the active mode locally. The change reaches the device
// with the next commit.
func (e *Engine) SelectMode(ctx context.Context, m models.Mode) error {
	return e.request(ctx, func(reply chan error) event { return selectModeEvent{mode: m, reply: reply} })
}

// SetAC edits the AC control.
func (e *Engine) SetAC(ctx context.Context, on bool) error {
	return e.setControl(ctx, mode.ControlAC, Patch{AC: &on})
}

// SetFan edits the fan control.
func (e *Engine) SetFan(ctx context.Context, on bool) error {
	return e.setControl(ctx, mode.ControlFan, Patch{Fan: &on})
}

// SetThreshold edits the threshold control.
func (e *Engine) SetThreshold(ctx context.Context, t float64) error {
	return e.setControl(ctx, mode.ControlThreshold, Patch{Threshold: &t})
}

// SetAdvisory edits the advisory text.
func (e *Engine) SetAdvisory(ctx context.Context, text string) error {
	return e.setControl(ctx, mode.ControlAdvisory, Patch{Advisory: &text})
}

func (e *Engine) setControl(ctx context.Context, c mode.Control, p Patch) error {
	return e.request(ctx, func(reply chan error) event { return setControlEvent{control: c, patch: p, reply: reply} })
}

// Commit applies p over the current controls and sends the composed state. It
// returns once the remote answered.
func (e *Engine) Commit(ctx context.Context, p Patch) error {
	return e.request(ctx, func(reply chan error) event { return commitEvent{patch: p, reply: reply} })
}

// Reconcile fetches the authoritative actuator state now.
func (e *Engine) Reconcile(ctx context.Context) error {
	return e.request(ctx, func(reply chan error) event { return reconcileEvent{reply: reply} })
}

// SetManual updates the AC manual settings.
func (e *Engine) SetManual(ctx context.Context, in models.ManualSettings) error {
	return e.request(ctx, func(reply chan error) event { return manualEvent{in: in, reply: reply} })
}

// SetAutomation updates the AC automation rule.
func (e *Engine) SetAutomation(ctx context.Context, in models.AutomationRule) error {
	return e.request(ctx, func(reply chan error) event { return automationEvent{in: in, reply: reply} })
}

// request queues an event and waits for its reply.
func (e *Engine) request(ctx context.Context, build func(chan error) event) error {
	reply := make(chan error, 1)
	select {
	case e.events <- build(reply):
	case <-e.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-e.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// answer queues a reply for the waiting caller. Replies are sent after the
// next publish so the caller observes its own change in View.
func (e *Engine) answer(reply chan error, err error) {
	if reply != nil {
		e.replies = append(e.replies, queuedReply{ch: reply, err: err})
	}
}

func (e *Engine) flushReplies() {
	for _, r := range e.replies {
		r.ch <- r.err
	}
	e.replies = e.replies[:0]
}

// post hands a result back to the loop.
func (e *Engine) post(ctx context.Context, ev event) {
	select {
	case e.events <- ev:
	case <-ctx.Done():
	}
}

// goAsync runs fn off the loop.
func (e *Engine) goAsync(fn func()) {
	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()
		fn()
	}()
}

// ---- loop ----

func (e *Engine) handle(ctx context.Context, ev event) {
	switch ev := ev.(type) {
	case selectModeEvent:
		e.answer(ev.reply, e.enterMode(ev.mode))

	case setControlEvent:
		if !e.mode.CanWrite(ev.control) {
			e.answer(ev.reply, fmt.Errorf("%w: %s in %s", ErrControlDisabled, ev.control, e.mode.Mode()))
			return
		}
		e.controls = e.controls.apply(ev.patch)
		e.answer(ev.reply, nil)

	case commitEvent:
		e.startCommit(ctx, ev)

	case reconcileEvent:
		e.startReconcile(ctx, ev.reply)

	case manualEvent:
		if _, ok := models.ParseClimateMode(string(ev.in.Mode)); !ok {
			e.answer(ev.reply, fmt.Errorf("%w: climate mode %q", ErrInvalidSetting, ev.in.Mode))
			return
		}
		e.startSettingsUpdate(ctx, "manual", ev.reply, func(c context.Context) (models.AutomationSettings, error) {
			return e.api.SetManual(c, ev.in)
		})

	case automationEvent:
		e.startSettingsUpdate(ctx, "automation", ev.reply, func(c context.Context) (models.AutomationSettings, error) {
			return e.api.SetAutomation(c, ev.in)
		})

	case syncDoneEvent:
		e.finishSync(ev)

	case settingsDoneEvent:
		e.finishSettings(ev)

	case weatherDoneEvent:
		if ev.current != nil {
			e.weather = ev.current
		}
		if ev.forecast != nil {
			e.forecast = ev.forecast
		}
		e.status.Weather = remote.StatusText(ev.err)
		e.debug(ev.err)

	case clockDoneEvent:
		if ev.err == nil {
			clk := ev.clock
			e.clock = &clk
		}
		e.debug(ev.err)
	}
}

func (e *Engine) enterMode(m models.Mode) error {
	if _, err := e.mode.Enter(m); err != nil {
		return err
	}
	e.controls.Mode = e.mode.Mode()
	return nil
}

func (e *Engine) handleDelivery(d ingest.Delivery) {
	switch {
	case d.Kind == ingest.Poll:
		e.status.Poll = remote.StatusText(d.Err)
	case d.State != "":
		e.status.Feed = d.State
		e.status.FeedSource = d.Source
	}
	if d.Err != nil {
		e.log.Debugw("feed_error", "source", d.Source, "err", d.Err)
		e.debug(d.Err)
	}
	e.ingress.Accept(d)
}

// onSample runs for every appended sample: re-project and re-evaluate.
func (e *Engine) onSample(models.TelemetrySample) {
	e.chart = chart.Project(e.ingress.Buffer().Snapshot(), e.opts.LabelStyle)
	e.evaluate()
}

func (e *Engine) evaluate() {
	var latest *models.TelemetrySample
	if e.ingress != nil {
		if s, ok := e.ingress.Buffer().Latest(); ok {
			latest = &s
		}
	}
	e.running = automation.Evaluate(latest, e.settings)
}

func (e *Engine) startReconcile(ctx context.Context, reply chan error) {
	e.status.Actuator = StatusLoading
	e.goAsync(func() {
		e.post(ctx, syncDoneEvent{res: e.sync.Reconcile(ctx), reply: reply})
	})
}

func (e *Engine) startCommit(ctx context.Context, ev commitEvent) {
	target := e.mode.Mode()
	if ev.patch.Mode != nil {
		m, ok := models.ParseMode(string(*ev.patch.Mode))
		if !ok {
			e.answer(ev.reply, fmt.Errorf("%w: %q", mode.ErrUnknownMode, *ev.patch.Mode))
			return
		}
		target = m
	}
	enabled := mode.EnabledFor(target)
	for _, c := range ev.patch.touches() {
		if !enabled.Allows(c) {
			e.answer(ev.reply, fmt.Errorf("%w: %s in %s", ErrControlDisabled, c, target))
			return
		}
	}
	_ = e.enterMode(target)
	next := e.controls.apply(ev.patch)
	next.Mode = target
	e.controls = next

	st := next.State(e.opts.Source)
	e.status.Actuator = StatusSaving
	e.goAsync(func() {
		e.post(ctx, syncDoneEvent{res: e.sync.Commit(ctx, st), reply: ev.reply})
	})
}

// finishSync applies a reconcile or commit result. A failure keeps the
// current controls; an applied answer re-populates them.
func (e *Engine) finishSync(ev syncDoneEvent) {
	res := ev.res
	e.status.Actuator = remote.StatusText(res.Err)
	e.debug(res.Err)
	if res.Err == nil && res.Applied {
		e.controls = ControlsFrom(res.State)
		_ = e.enterMode(res.State.ModeRequest)
	}
	e.answer(ev.reply, res.Err)
}

func (e *Engine) startSettingsFetch(ctx context.Context) {
	if e.api == nil {
		return
	}
	e.status.Settings = StatusLoading
	e.goAsync(func() {
		s, err := e.api.Settings(ctx)
		e.post(ctx, settingsDoneEvent{op: "fetch", settings: s, err: err})
	})
}

func (e *Engine) startSettingsUpdate(ctx context.Context, op string, reply chan error, call func(context.Context) (models.AutomationSettings, error)) {
	if e.api == nil {
		e.answer(reply, fmt.Errorf("%w: settings endpoint not configured", ErrInvalidSetting))
		return
	}
	e.status.Settings = StatusSaving
	e.goAsync(func() {
		s, err := call(ctx)
		e.post(ctx, settingsDoneEvent{op: op, settings: s, err: err, reply: reply})
	})
}

func (e *Engine) finishSettings(ev settingsDoneEvent) {
	e.status.Settings = remote.StatusText(ev.err)
	e.debug(ev.err)
	if ev.err != nil {
		e.log.Warnw("ac_settings_failed", "op", ev.op, "err", ev.err)
	} else {
		e.settings = ev.settings
		e.evaluate()
	}
	e.answer(ev.reply, ev.err)
}

func (e *Engine) startWeather(ctx context.Context) {
	if e.display == nil {
		return
	}
	e.goAsync(func() {
		var out weatherDoneEvent
		if w, err := e.display.CurrentWeather(ctx); err == nil {
			out.current = &w
		} else {
			out.err = err
		}
		if f, err := e.display.Forecast(ctx); err == nil {
			out.forecast = &f
		} else if out.err == nil {
			out.err = err
		}
		e.post(ctx, out)
	})
}

func (e *Engine) startClock(ctx context.Context) {
	if e.display == nil {
		return
	}
	e.goAsync(func() {
		clk, err := e.display.Clock(ctx)
		e.post(ctx, clockDoneEvent{clock: clk, err: err})
	})
}

// debug echoes the raw error of the last failure.
func (e *Engine) debug(err error) {
	if err != nil {
		e.status.Debug = err.Error()
	}
}

func (e *Engine) publish() {
	v := View{
		Mode:      e.mode.Mode(),
		Enabled:   e.mode.Enabled(),
		Controls:  e.controls,
		Desired:   e.sync.Store().Snapshot(),
		Hydrated:  e.sync.Store().Hydrated(),
		Pending:   e.sync.Store().Pending(),
		Chart:     e.chart,
		Samples:   e.ingress.Buffer().Len(),
		Running:   e.running,
		Settings:  e.settings,
		Status:    e.status,
		Weather:   e.weather,
		Forecast:  e.forecast,
		Clock:     e.clock,
		UpdatedAt: e.now().UTC(),
	}
	if s, ok := e.ingress.Buffer().Latest(); ok {
		v.Latest = &s
	}
	e.view.set(v)
}
