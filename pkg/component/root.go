package component

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"weak"

	cerrors "github.com/vango-dev/cells/internal/errors"
	"github.com/vango-dev/cells/pkg/dom"
	"github.com/vango-dev/cells/pkg/hooks"
	"github.com/vango-dev/cells/pkg/reactive"
	"github.com/vango-dev/cells/pkg/scheduler"
	"github.com/vango-dev/cells/pkg/vdom"
)

// ErrUnmounted is returned when a root is used after Unmount.
var ErrUnmounted = errors.New("cells: component unmounted")

// ErrMountFailed is returned when the first render did not complete.
var ErrMountFailed = errors.New("cells: mount tick did not run")

// Root is a mounted component: its data, engine and DOM location.
type Root[D any] struct {
	data   *D
	engine *reactive.Engine
	doc    *dom.Document
	target *dom.Node
	host   scheduler.Host
	logger *slog.Logger
	hook   *hooks.NodeHook
	self   weak.Pointer[Root[D]]

	mounted     atomic.Bool
	taskCtx     context.Context
	cancelTasks context.CancelFunc
	tasks       *sync.WaitGroup
}

// Option configures Mount.
type Option func(*options)

type options struct {
	host     scheduler.Host
	logger   *slog.Logger
	observer reactive.Observer
}

// WithHost runs every tick of the root on h. Defaults to a new Inline host.
func WithHost(h scheduler.Host) Option {
	return func(o *options) { o.host = h }
}

// WithLogger sets the root logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver attaches tick metrics to the root's engine.
func WithObserver(obs reactive.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// Mount renders comp with data into target and returns the handle that
// keeps the root alive. The first render and the OnMount callback run in
// one tick; hooks only see updates after OnMount returns.
func Mount[D any](data D, comp Component[D], target *dom.Node, opts ...Option) (*Handle[D], error) {
	if target == nil || target.Type() != dom.ElementNode {
		return nil, cerrors.New("R051")
	}
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.host == nil {
		o.host = scheduler.NewInline()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	r := &Root[D]{
		data:   &data,
		doc:    target.Document(),
		target: target,
		host:   o.host,
		logger: o.logger,
		tasks:  new(sync.WaitGroup),
	}
	r.engine = reactive.NewEngine(reactive.WithLogger(o.logger), reactive.WithObserver(o.observer))
	r.self = weak.Make(r)
	r.taskCtx, r.cancelTasks = reactive.WithPanicCancel(context.Background())
	runtime.AddCleanup(r, func(cancel context.CancelFunc) { cancel() }, r.cancelTasks)

	var mountErr error
	ran := false
	err := r.host.Call(context.Background(), func() {
		ran = r.engine.Run(func() {
			rc := reactive.NewRenderCtx(r.engine, reactive.HookKey{}, nil)
			r.hook = hooks.NewNodeHook(rc, r.doc, func(rc *reactive.RenderCtx) *vdom.VNode {
				return comp.Render(&Ctx[D]{rc: rc, root: r})
			})
			if err := target.AppendChild(r.hook.Node()); err != nil {
				mountErr = err
				return
			}
			r.mounted.Store(true)
			if m, ok := comp.(OnMounter[D]); ok {
				m.OnMount(&Ctx[D]{rc: rc, root: r})
			}
		})
	})
	switch {
	case err != nil:
		r.cancelTasks()
		return nil, err
	case mountErr != nil:
		r.cancelTasks()
		return nil, mountErr
	case !ran:
		r.mounted.Store(false)
		r.cancelTasks()
		return nil, ErrMountFailed
	}

	r.logger.Debug("component mounted", "engine", r.engine.ID(), "target", target.HID())
	return &Handle[D]{root: r}, nil
}

// Engine returns the root's engine.
func (r *Root[D]) Engine() *reactive.Engine { return r.engine }

// Mounted reports whether the root is still mounted.
func (r *Root[D]) Mounted() bool { return r.mounted.Load() }

func (r *Root[D]) deferred() *Deferred[D] {
	return &Deferred[D]{ptr: r.self}
}

// Spawn runs task on its own goroutine with a context that is cancelled on
// Unmount and as soon as any tick panics. A panic in task freezes the
// process like a panicking tick. The goroutine only holds a Deferred, so a
// running task does not keep the root alive.
func (r *Root[D]) Spawn(task func(ctx context.Context, d *Deferred[D])) {
	var (
		d      = r.deferred()
		ctx    = r.taskCtx
		logger = r.logger
		wg     = r.tasks
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if v := recover(); v != nil {
				reactive.ReportPanic(logger, v)
			}
		}()
		if ctx.Err() != nil || reactive.HasPanicked() {
			return
		}
		task(ctx, d)
	}()
}

func (r *Root[D]) unmount() {
	if !r.mounted.CompareAndSwap(true, false) {
		return
	}
	r.cancelTasks()
	err := r.host.Call(context.Background(), func() {
		r.engine.Exclusive(func() {
			n := r.engine.Store().Remove(r.hook.Key())
			r.logger.Debug("component unmounted", "engine", r.engine.ID(), "hooks_removed", n)
		})
		r.hook.Node().Remove()
		r.engine.Close()
	})
	if err != nil {
		r.logger.Error("unmount failed", "error", err)
	}
}
