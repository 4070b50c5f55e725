package commit

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/gallery"
	"github.com/matzehuels/photogrid/pkg/observability"
)

// Applier talks to the edit endpoint.
type Applier interface {
	Edit(ctx context.Context, cmd gallery.Command) (*gallery.Partial, error)
	GetPicture(ctx context.Context, id int64) (*gallery.Picture, error)
}

// ProgressFunc is called after every applied command.
type ProgressFunc func(applied, total int)

// Options configure a Runner. Zero values are usable.
type Options struct {
	Logger   *log.Logger
	Journal  Journal
	Progress ProgressFunc
}

// Runner applies commands sequentially.
//
// For each command it POSTs the edit, fetches the picture again and swaps
// it into the collection before moving on. The first failure stops the run
// and nothing is rolled back. Every run, finished or not, is recorded in
// the Journal under its run id so it can be resumed.
//
// A Runner holds no per-run state, but one run at a time per gallery
// session keeps edits in order.
type Runner struct {
	applier  Applier
	coll     *gallery.Collection
	logger   *log.Logger
	journal  Journal
	progress ProgressFunc
	now      func() time.Time
}

// NewRunner returns a runner that refreshes pictures in coll as commands
// land. coll may be nil when there is no local collection to keep current.
func NewRunner(a Applier, coll *gallery.Collection, opts Options) *Runner {
	r := &Runner{
		applier:  a,
		coll:     coll,
		logger:   opts.Logger,
		journal:  opts.Journal,
		progress: opts.Progress,
		now:      time.Now,
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	if r.journal == nil {
		r.journal = NopJournal{}
	}
	return r
}

// Result describes a finished or stopped run.
type Result struct {
	RunID   string `json:"run_id"`
	Total   int    `json:"total"`
	Applied int    `json:"applied"`
	// Remaining are the commands not applied, starting with Failed.
	Remaining []gallery.Command `json:"remaining,omitempty"`
	Failed    *gallery.Command  `json:"failed,omitempty"`
	Err       error             `json:"-"`
}

// Done reports whether every command was applied.
func (r *Result) Done() bool { return r.Err == nil && r.Applied == r.Total }

// Run applies cmds in order under a new run id. On failure it stops and
// returns the partial Result together with a BATCH_PARTIAL error wrapping
// the cause. Commands already applied stay applied; there is no rollback.
//
// Cancelling ctx stops the run between commands. The run is journaled
// either way, so Resume can pick it up later.
func (r *Runner) Run(ctx context.Context, cmds []gallery.Command) (*Result, error) {
	now := r.now()
	return r.run(ctx, uuid.NewString(), cmds, 0, now)
}

// Resume continues a journaled run with the commands it did not apply.
// Progress is recorded against the original entry, so resuming the same
// run twice never resends a command that already landed.
func (r *Runner) Resume(ctx context.Context, e Entry) (*Result, error) {
	if e.Applied > len(e.Commands) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "run %s applied %d of %d commands", e.RunID, e.Applied, len(e.Commands))
	}
	start := e.StartedAt
	if start.IsZero() {
		start = r.now()
	}
	return r.run(ctx, e.RunID, e.Commands, e.Applied, start)
}

// run applies cmds[from:]; cmds[:from] count as applied already.
func (r *Runner) run(ctx context.Context, runID string, cmds []gallery.Command, from int, start time.Time) (*Result, error) {
	res := &Result{RunID: runID, Total: len(cmds), Applied: from}
	began := r.now()
	hooks := observability.Commit()
	hooks.OnRunStart(ctx, res.RunID, len(cmds)-from)
	r.logger.Debug("commit run started", "run", res.RunID, "commands", len(cmds), "from", from)

	for i := from; i < len(cmds); i++ {
		cmd := cmds[i]
		if err := ctx.Err(); err != nil {
			res.Remaining = cmds[i:]
			res.Err = errors.Wrap(errors.ErrCodeBatchPartial, err, "run cancelled after %d of %d", i, len(cmds))
			break
		}
		cmdStart := r.now()
		if err := r.apply(ctx, cmd); err != nil {
			failed := cmd
			res.Failed = &failed
			res.Remaining = cmds[i:]
			res.Err = errors.Wrap(errors.ErrCodeBatchPartial, err, "command %d of %d (img %d) failed", i+1, len(cmds), cmd.Img)
			break
		}
		res.Applied++
		hooks.OnCommandApplied(ctx, res.RunID, cmd.Img, r.now().Sub(cmdStart))
		r.logger.Debug("applied", "img", cmd.Img, "fields", cmd.Keys(), "n", res.Applied, "of", len(cmds))
		if r.progress != nil {
			r.progress(res.Applied, len(cmds))
		}
	}

	elapsed := r.now().Sub(began)
	hooks.OnRunComplete(ctx, res.RunID, res.Applied, elapsed, res.Err)
	r.record(ctx, cmds, res, start)
	if res.Err != nil {
		r.logger.Warn("commit run stopped", "run", res.RunID, "applied", res.Applied, "of", len(cmds), "err", res.Err)
		return res, res.Err
	}
	r.logger.Info("commit run finished", "run", res.RunID, "applied", res.Applied, "elapsed", elapsed.Round(time.Millisecond))
	return res, nil
}

// apply POSTs one command, then re-reads the picture and replaces it in the
// collection, keeping it selected.
func (r *Runner) apply(ctx context.Context, cmd gallery.Command) error {
	if _, err := r.applier.Edit(ctx, cmd); err != nil {
		return err
	}
	fresh, err := r.applier.GetPicture(ctx, cmd.Img)
	if err != nil {
		return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeNetwork), err, "refresh picture %d", cmd.Img)
	}
	if r.coll == nil {
		return nil
	}
	fresh.Selected = true
	if err := r.coll.Replace(*fresh); err != nil {
		return err
	}
	if p, ok := r.coll.Get(cmd.Img); ok {
		p.Selected = true
	}
	return nil
}

func (r *Runner) record(ctx context.Context, cmds []gallery.Command, res *Result, start time.Time) {
	e := Entry{
		RunID:      res.RunID,
		StartedAt:  start.UTC(),
		FinishedAt: r.now().UTC(),
		Total:      res.Total,
		Applied:    res.Applied,
		Commands:   cmds,
		Failed:     res.Failed,
	}
	if res.Err != nil {
		e.Error = res.Err.Error()
	}
	// Recording uses a fresh context so cancelled runs are still journaled.
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := r.journal.Record(rctx, e); err != nil {
		r.logger.Warn("journal write failed", "run", res.RunID, "err", err)
	}
}
