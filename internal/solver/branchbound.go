package solver

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Options bounds a single solve call.
type Options struct {
	// TimeLimit is the wall-clock budget for the search. Zero means
	// DefaultTimeLimit. On expiry the best incumbent found so far is
	// returned with Optimal=false.
	TimeLimit time.Duration

	// Workers is a parallelism hint: top-level branches are explored
	// concurrently by up to this many goroutines. Zero or one means a
	// sequential search.
	Workers int
}

const (
	// DefaultTimeLimit applies when Options.TimeLimit is zero.
	DefaultTimeLimit = 10 * time.Second

	// DefaultWorkers applies when Options.Workers is zero.
	DefaultWorkers = 8

	// deadlineCheckInterval is how many search nodes each worker expands
	// between wall-clock checks.
	deadlineCheckInterval = 4096
)

// Solve finds an assignment choosing exactly one option per group that
// satisfies every constraint and optimizes the objective. It returns
// (nil, nil) when no assignment satisfies the constraints; infeasibility is
// an expected outcome, not an error. A non-nil error only reports a
// malformed model.
//
// The search is branch-and-bound: options are explored in objective order
// with an optimistic suffix bound for pruning, seeded by a greedy incumbent.
// When the deadline expires before the search completes, the best feasible
// assignment found so far is returned with Optimal=false.
func Solve(ctx context.Context, m *Model, opts Options) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	limit := opts.TimeLimit
	if limit <= 0 {
		limit = DefaultTimeLimit
	}
	deadline := time.Now().Add(limit)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	s := newSearch(m, deadline)
	s.seedGreedy()

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	complete := s.run(ctx, workers)

	best, sel, found := s.inc.snapshot()
	if !found {
		// Either truly infeasible or the deadline fired before any
		// feasible assignment was reached. Both read as "no solution".
		return nil, nil
	}
	if m.Sense == Minimize {
		best = -best
	}
	return &Result{Objective: best, Selection: sel, Optimal: complete}, nil
}

// incumbent is the best feasible assignment seen so far, shared across
// workers.
type incumbent struct {
	mu    sync.Mutex
	found bool
	obj   int64
	sel   []int
}

func (in *incumbent) offer(obj int64, sel []int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.found || obj > in.obj {
		in.found = true
		in.obj = obj
		in.sel = append(in.sel[:0], sel...)
	}
}

func (in *incumbent) bound() (int64, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.obj, in.found
}

func (in *incumbent) snapshot() (int64, []int, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	sel := append([]int(nil), in.sel...)
	return in.obj, sel, in.found
}

// search holds the normalized model and shared pruning tables. All
// constraints are normalized to ≤ form (GE rows are negated), and a Minimize
// objective is negated so the core always maximizes.
type search struct {
	groups [][]option // options per group, sorted by objective descending
	nCons  int
	rhs    []int64

	// suffixMaxObj[g] is the largest objective total the groups g.. can
	// still contribute. suffixMinUse[c][g] is the smallest amount groups
	// g.. must consume of constraint c. Both have one trailing zero entry.
	suffixMaxObj []int64
	suffixMinUse [][]int64

	deadline time.Time
	expired  atomic.Bool
	inc      incumbent
}

type option struct {
	index int     // original option index within the group
	obj   int64   // objective coefficient (maximize form)
	use   []int64 // per-constraint coefficient (≤ form)
}

func newSearch(m *Model, deadline time.Time) *search {
	n := len(m.OptionCounts)
	s := &search{
		groups:       make([][]option, n),
		nCons:        len(m.Constraints),
		rhs:          make([]int64, len(m.Constraints)),
		suffixMaxObj: make([]int64, n+1),
		suffixMinUse: make([][]int64, len(m.Constraints)),
		deadline:     deadline,
	}

	objSign := int64(1)
	if m.Sense == Minimize {
		objSign = -1
	}
	for c, con := range m.Constraints {
		s.rhs[c] = con.RHS
		if con.Op == GE {
			s.rhs[c] = -con.RHS
		}
		s.suffixMinUse[c] = make([]int64, n+1)
	}

	for g, count := range m.OptionCounts {
		opts := make([]option, count)
		for o := 0; o < count; o++ {
			use := make([]int64, s.nCons)
			for c, con := range m.Constraints {
				coef := con.Expr[g][o]
				if con.Op == GE {
					coef = -coef
				}
				use[c] = coef
			}
			opts[o] = option{index: o, obj: objSign * m.Objective[g][o], use: use}
		}
		// Best objective first so good incumbents appear early.
		sortOptionsByObjDesc(opts)
		s.groups[g] = opts
	}

	for g := n - 1; g >= 0; g-- {
		maxObj := s.groups[g][0].obj
		for _, o := range s.groups[g][1:] {
			if o.obj > maxObj {
				maxObj = o.obj
			}
		}
		s.suffixMaxObj[g] = s.suffixMaxObj[g+1] + maxObj

		for c := 0; c < s.nCons; c++ {
			minUse := s.groups[g][0].use[c]
			for _, o := range s.groups[g][1:] {
				if o.use[c] < minUse {
					minUse = o.use[c]
				}
			}
			s.suffixMinUse[c][g] = s.suffixMinUse[c][g+1] + minUse
		}
	}
	return s
}

func sortOptionsByObjDesc(opts []option) {
	// Insertion sort keeps this dependency-free and stable; per-block
	// option lists are small.
	for i := 1; i < len(opts); i++ {
		for j := i; j > 0 && opts[j].obj > opts[j-1].obj; j-- {
			opts[j], opts[j-1] = opts[j-1], opts[j]
		}
	}
}

// admits reports whether choosing opt at group g can still lead to a
// feasible completion given the accumulated constraint usage.
func (s *search) admits(g int, acc []int64, opt option) bool {
	for c := 0; c < s.nCons; c++ {
		if acc[c]+opt.use[c]+s.suffixMinUse[c][g+1] > s.rhs[c] {
			return false
		}
	}
	return true
}

// seedGreedy installs an initial incumbent by taking, per group, the best
// objective option that keeps a feasible completion reachable. Failure to
// complete is fine; the search simply starts without a bound.
func (s *search) seedGreedy() {
	acc := make([]int64, s.nCons)
	sel := make([]int, len(s.groups))
	var obj int64
	for g, opts := range s.groups {
		picked := false
		for _, opt := range opts {
			if s.admits(g, acc, opt) {
				for c := 0; c < s.nCons; c++ {
					acc[c] += opt.use[c]
				}
				obj += opt.obj
				sel[g] = opt.index
				picked = true
				break
			}
		}
		if !picked {
			return
		}
	}
	s.inc.offer(obj, sel)
}

// run explores the tree, fanning the first group's options across workers.
// It reports whether the search ran to completion (deadline not hit).
func (s *search) run(ctx context.Context, workers int) bool {
	first := s.groups[0]
	if workers > len(first) {
		workers = len(first)
	}
	if workers <= 1 {
		w := s.newWorker()
		w.dfs(0)
		return !s.expired.Load()
	}

	next := atomic.Int64{}
	eg, _ := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		eg.Go(func() error {
			w := s.newWorker()
			for {
				k := int(next.Add(1)) - 1
				if k >= len(first) {
					return nil
				}
				opt := first[k]
				if !s.admits(0, w.acc, opt) {
					continue
				}
				w.push(0, opt)
				w.dfs(1)
				w.pop(0, opt)
				if s.expired.Load() {
					return nil
				}
			}
		})
	}
	_ = eg.Wait()
	return !s.expired.Load()
}

// worker is per-goroutine mutable search state.
type worker struct {
	s     *search
	acc   []int64
	sel   []int
	obj   int64
	nodes int
}

func (s *search) newWorker() *worker {
	return &worker{
		s:   s,
		acc: make([]int64, s.nCons),
		sel: make([]int, len(s.groups)),
	}
}

func (w *worker) push(g int, opt option) {
	for c := range w.acc {
		w.acc[c] += opt.use[c]
	}
	w.obj += opt.obj
	w.sel[g] = opt.index
}

func (w *worker) pop(g int, opt option) {
	for c := range w.acc {
		w.acc[c] -= opt.use[c]
	}
	w.obj -= opt.obj
}

func (w *worker) dfs(g int) {
	s := w.s
	w.nodes++
	if w.nodes%deadlineCheckInterval == 0 && time.Now().After(s.deadline) {
		s.expired.Store(true)
	}
	if s.expired.Load() {
		return
	}

	if g == len(s.groups) {
		s.inc.offer(w.obj, w.sel)
		return
	}

	if best, ok := s.inc.bound(); ok && w.obj+s.suffixMaxObj[g] <= best {
		return
	}

	for _, opt := range s.groups[g] {
		if !s.admits(g, w.acc, opt) {
			continue
		}
		w.push(g, opt)
		w.dfs(g + 1)
		w.pop(g, opt)
		if s.expired.Load() {
			return
		}
	}
}
