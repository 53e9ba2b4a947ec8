package driver

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"ctfmt"
	"ctfmt/internal/cache"
	"ctfmt/internal/diag"
	"ctfmt/internal/fix"
	"ctfmt/internal/observ"
	"ctfmt/internal/trace"
	"ctfmt/internal/types"
)

// Options configures Check.
type Options struct {
	Jobs           int // <= 0: GOMAXPROCS
	MaxDiagnostics int // <= 0: без ограничения
	// Cache may be nil. Engine is mixed into cache keys.
	Cache  *cache.Disk
	Engine string
	// Repair runs the fix loop on failing templates.
	Repair bool
	// Events, when set, receives progress; Check closes it before
	// returning.
	Events chan<- Event
	// Log receives cache failures at debug level; nil discards them.
	Log logrus.FieldLogger
}

func (o Options) logger() logrus.FieldLogger {
	if o.Log != nil {
		return o.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// TemplateResult is the outcome of one manifest entry.
type TemplateResult struct {
	Origin     string
	Entry      Entry
	Diagnostic *diag.Diagnostic
	// Err is a problem with the entry itself (unknown type, bad value).
	Err      error
	Cached   bool
	Repaired *fix.Repair
	Output   string
}

// OK reports whether the template compiled and rendered.
func (r *TemplateResult) OK() bool {
	return r.Diagnostic == nil && r.Err == nil
}

// ManifestResult groups the templates of one file.
type ManifestResult struct {
	Path      string
	Templates []TemplateResult
	Err       error
}

// Result aggregates a Check run.
type Result struct {
	Manifests []ManifestResult
	Bag       *diag.Bag
	Timing    observ.Report
	Checked   int
	Failed    int
	CacheHits int
}

type job struct {
	manifest int
	entry    int
	origin   string
	locale   language.Tag
	e        Entry
}

// Check loads manifests and validates every template in parallel.
// A manifest that fails to load is reported in its ManifestResult; the
// returned error is reserved for cancellation.
func Check(ctx context.Context, paths []string, opts Options) (*Result, error) {
	events := emitter(opts.Events)
	opts.Log = opts.logger()
	if opts.Events != nil {
		defer close(opts.Events)
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	timer := observ.NewTimer()
	res := &Result{
		Manifests: make([]ManifestResult, len(paths)),
	}

	stopLoad := timer.Start("load")
	manifests := make([]*Manifest, len(paths))
	lg, lctx := errgroup.WithContext(ctx)
	lg.SetLimit(jobs)
	for i, path := range paths {
		lg.Go(func() error {
			if err := lctx.Err(); err != nil {
				return err
			}
			_, span := trace.Start(lctx, trace.ScopeManifest, path)
			m, err := LoadManifest(path)
			res.Manifests[i].Path = path
			if err != nil {
				res.Manifests[i].Err = err
				span.End("error")
				return nil
			}
			manifests[i] = m
			span.WithExtra("templates", strconv.Itoa(len(m.Templates))).End("")
			return nil
		})
	}
	if err := lg.Wait(); err != nil {
		return res, err
	}

	var queue []job
	for i, m := range manifests {
		if m == nil {
			continue
		}
		tag, err := m.Tag()
		if err != nil {
			res.Manifests[i].Err = err
			continue
		}
		res.Manifests[i].Templates = make([]TemplateResult, len(m.Templates))
		for j, e := range m.Templates {
			origin := m.Origin(j)
			queue = append(queue, job{manifest: i, entry: j, origin: origin, locale: tag, e: e})
			events.send(Event{Origin: origin, Status: StatusQueued})
		}
	}
	stopLoad(len(paths), "")

	stopCheck := timer.Start("check")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, jb := range queue {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			events.send(Event{Origin: jb.origin, Status: StatusWorking})
			tctx, span := trace.Start(gctx, trace.ScopeTemplate, jb.origin)
			// индексы уникальны для каждой горутины, мьютекс не нужен
			tr := checkOne(tctx, jb, opts)
			res.Manifests[jb.manifest].Templates[jb.entry] = tr

			status := StatusDone
			if !tr.OK() {
				status = StatusError
			}
			span.WithExtra("cached", strconv.FormatBool(tr.Cached)).End(status.String())
			events.send(Event{Origin: jb.origin, Status: status, Cached: tr.Cached})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	stopCheck(len(queue), fmt.Sprintf("%d jobs", jobs))

	limit := opts.MaxDiagnostics
	if limit <= 0 {
		limit = len(queue)
	}
	res.Bag = diag.NewBag(limit)

	for _, mr := range res.Manifests {
		for _, tr := range mr.Templates {
			res.Checked++
			if tr.Cached {
				res.CacheHits++
			}
			if !tr.OK() {
				res.Failed++
			}
			if tr.Diagnostic != nil {
				res.Bag.Add(tr.Diagnostic.WithOrigin(tr.Origin))
			}
		}
	}
	res.Bag.Sort()
	res.Timing = timer.Report()
	return res, nil
}

func checkOne(ctx context.Context, jb job, opts Options) TemplateResult {
	tr := TemplateResult{Origin: jb.origin, Entry: jb.e}
	argTypes, err := ParseTypes(jb.e.Args)
	if err != nil {
		tr.Err = err
		return tr
	}

	key := cache.Key(opts.Engine, jb.e.Text, jb.e.Args)
	var entry cache.Entry
	hit, err := opts.Cache.Get(key, &entry)
	if err != nil {
		opts.Log.WithError(err).WithField("template", jb.origin).Debug("cache read failed")
	}
	switch {
	case err == nil && hit:
		tr.Cached = true
		tr.Diagnostic = entry.Diagnostic()
	default:
		var plan *ctfmt.Plan
		plan, tr.Diagnostic = compile(jb.e.Text, argTypes)
		traceFields(ctx, plan)
		// Ошибка записи в кэш не должна валить проверку.
		if err := opts.Cache.Put(key, cache.NewEntry(jb.e.Text, jb.e.Args, tr.Diagnostic)); err != nil {
			opts.Log.WithError(err).WithField("template", jb.origin).Debug("cache write failed")
			trace.Point(trace.FromContext(ctx), trace.ScopeTemplate, "cache-put", err.Error(), trace.Parent(ctx))
		}
	}

	if tr.Diagnostic != nil {
		if opts.Repair {
			tr.Repaired = fix.RepairTemplate(jb.e.Text, canonical(argTypes), 0)
		}
		return tr
	}
	if len(jb.e.Values) > 0 {
		tr.Output, tr.Err = Render(jb.e.Text, argTypes, jb.e.Values, jb.locale)
	}
	return tr
}

func compile(text string, argTypes []reflect.Type) (*ctfmt.Plan, *diag.Diagnostic) {
	plan, err := ctfmt.Compile(text, argTypes...)
	if err == nil {
		return plan, nil
	}
	var ce *ctfmt.Error
	if errors.As(err, &ce) {
		return nil, ce.Diagnostic()
	}
	return nil, &diag.Diagnostic{Message: err.Error(), Template: text}
}

// traceFields records a point per replacement field (debug level).
func traceFields(ctx context.Context, plan *ctfmt.Plan) {
	t := trace.FromContext(ctx)
	if plan == nil || !t.Level().ShouldEmit(trace.ScopeField) {
		return
	}
	parent := trace.Parent(ctx)
	for _, tok := range plan.Tokens() {
		if tok.Kind == "field" {
			trace.Point(t, trace.ScopeField, "field:"+strconv.Itoa(tok.Arg), tok.Type, parent)
		}
	}
}

// Render compiles text and renders it with values parsed from literals.
func Render(text string, argTypes []reflect.Type, literals []string, locale language.Tag) (string, error) {
	plan, err := ctfmt.Compile(text, argTypes...)
	if err != nil {
		return "", err
	}
	args, err := ParseValues(argTypes, literals)
	if err != nil {
		return "", err
	}
	if locale != language.Und {
		plan = plan.WithLocale(locale)
	}
	return plan.Format(args...)
}

func canonical(ts []reflect.Type) []types.Type {
	out := make([]types.Type, len(ts))
	for i, t := range ts {
		out[i] = types.FromReflect(t)
	}
	return out
}
