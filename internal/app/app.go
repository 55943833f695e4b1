// Package app implements the application layer for fmap.
package app

import (
	"context"
	"fmt"
	"slices"

	"go.trai.ch/fmap/internal/core/domain"
	"go.trai.ch/fmap/internal/core/ports"
	"go.trai.ch/fmap/mapper"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger) *App {
	return &App{
		configLoader: loader,
		logger:       log,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Jobs caps how many tasks execute concurrently. Values below two
	// keep execution sequential. Actions inside a task always run in
	// order.
	Jobs int
}

// TaskPlan describes what a task would do without executing it.
type TaskPlan struct {
	Name        string
	Mapping     mapper.Mapping
	Targets     []string
	FileDep     []string
	Fingerprint uint64
}

// Plan resolves the mappings for the named tasks without running any
// actions. An empty name list plans every defined task.
func (a *App) Plan(_ context.Context, taskNames []string) ([]*TaskPlan, error) {
	set, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	tasks, err := selectTasks(set, taskNames)
	if err != nil {
		return nil, err
	}

	plans := make([]*TaskPlan, 0, len(tasks))
	for _, task := range tasks {
		mapping, err := task.Mapper.Map()
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to build mapping"), "task", task.Name)
		}

		desc, err := task.Mapper.Task()
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to build task"), "task", task.Name)
		}

		plans = append(plans, &TaskPlan{
			Name:        task.Name,
			Mapping:     mapping,
			Targets:     desc.Targets,
			FileDep:     desc.FileDep,
			Fingerprint: mapping.Fingerprint(),
		})
	}

	return plans, nil
}

// Run executes the named tasks in their declaration order.
func (a *App) Run(ctx context.Context, taskNames []string, opts RunOptions) error {
	// 1. Load the task set
	set, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	// 2. Validate task names
	if len(taskNames) == 0 {
		return domain.ErrNoTasksSpecified
	}

	tasks, err := selectTasks(set, taskNames)
	if err != nil {
		return err
	}

	// 3. Execute
	if opts.Jobs > 1 {
		return a.runParallel(ctx, tasks, opts.Jobs)
	}

	for _, task := range tasks {
		if err := a.runTask(ctx, task); err != nil {
			return err
		}
	}

	return nil
}

func (a *App) runParallel(ctx context.Context, tasks []*domain.Task, jobs int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, task := range tasks {
		g.Go(func() error {
			return a.runTask(ctx, task)
		})
	}

	return g.Wait()
}

func (a *App) runTask(ctx context.Context, task *domain.Task) error {
	desc, err := task.Mapper.Task()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to build task"), "task", task.Name)
	}

	a.logger.Info(fmt.Sprintf("running task %s (%d targets)", task.Name, len(desc.Targets)))

	for _, action := range desc.Actions {
		if err := action(ctx); err != nil {
			return zerr.With(zerr.Wrap(err, "task execution failed"), "task", task.Name)
		}
	}

	return nil
}

// selectTasks filters the set down to the requested names while keeping
// declaration order. Asking for nothing selects everything.
func selectTasks(set *domain.TaskSet, taskNames []string) ([]*domain.Task, error) {
	if len(taskNames) == 0 {
		return slices.Collect(set.Walk()), nil
	}

	wanted := make(map[string]struct{}, len(taskNames))
	for _, name := range taskNames {
		if _, err := set.Get(name); err != nil {
			return nil, err
		}
		wanted[name] = struct{}{}
	}

	selected := make([]*domain.Task, 0, len(wanted))
	for task := range set.Walk() {
		if _, ok := wanted[task.Name]; ok {
			selected = append(selected, task)
		}
	}

	return selected, nil
}
