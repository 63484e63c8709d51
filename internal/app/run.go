package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/flowgridgo/internal/ctxlog"
	"github.com/vk/flowgridgo/internal/dot"
	"github.com/vk/flowgridgo/internal/graph"
	"github.com/vk/flowgridgo/internal/pipeline"
	"github.com/vk/flowgridgo/internal/views"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// watchQuiet is how long the graph must stay quiet before watch mode
// re-evaluates the dirty sinks. A dragged slider or a chatty feed collapses
// into one evaluation per quiet window.
const watchQuiet = 250 * time.Millisecond

// Run executes the main application logic based on the App's configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	spec, err := pipeline.Load(ctx, a.config.PipelinePath)
	if err != nil {
		return fmt.Errorf("failed to load pipeline: %w", err)
	}
	a.logger.Debug("Pipeline definition loaded.", "node_count", len(spec.Names()))

	g, err := pipeline.Build(ctx, spec, pipeline.WithMutex(&a.mu))
	if err != nil {
		return fmt.Errorf("failed to build dataflow graph: %w", err)
	}
	a.logger.Debug("Dataflow graph built.", "node_count", len(g.Names()))

	if a.config.Dot {
		return a.printDot(g)
	}
	if a.config.Watch {
		return a.watch(ctx, g)
	}
	return a.evaluate(g)
}

// evaluate pulls every sink once and prints its value.
func (a *App) evaluate(g *pipeline.Graph) error {
	sinks := g.Sinks()
	if len(sinks) == 0 {
		a.logger.Warn("No sink nodes found in pipeline, nothing to evaluate.")
		return nil
	}
	for _, sink := range sinks {
		v, err := sink.RequestData()
		if err != nil {
			return fmt.Errorf("evaluating node %q: %w", sink.Name(), err)
		}
		fmt.Fprintf(a.outW, "%s = %s\n", sink.Name(), formatValue(v))
	}
	return nil
}

// printDot renders the whole pipeline, every component, as one DOT document.
func (a *App) printDot(g *pipeline.Graph) error {
	var starts []*graph.Node
	for _, name := range g.Names() {
		if n, ok := g.Node(name); ok {
			starts = append(starts, n)
		}
	}
	fmt.Fprint(a.outW, dot.MarshalAll(starts, dot.Options{}))
	return nil
}

// watch connects the pipeline's remote controls and re-evaluates dirty sinks
// until ctx is canceled. Control callbacks arrive on socket goroutines; both
// they and the debounced flush take a.mu, the same mutex handed to Build.
func (a *App) watch(ctx context.Context, g *pipeline.Graph) error {
	controls := g.Controls()
	if len(controls) == 0 {
		return fmt.Errorf("watch mode requires at least one remote block in the pipeline")
	}

	sinks := g.Sinks()
	views.NewLogger(a.logger, sinks...)
	views.NewDebouncer(watchQuiet, func(dirty map[string]*graph.Node) {
		a.mu.Lock()
		defer a.mu.Unlock()
		for _, sink := range sinks {
			if _, ok := dirty[sink.ID()]; !ok {
				continue
			}
			v, err := sink.RequestData()
			if err != nil {
				a.logger.Error("Sink evaluation failed.", "node", sink.Name(), "error", err)
				continue
			}
			fmt.Fprintf(a.outW, "%s = %s\n", sink.Name(), formatValue(v))
		}
	}, sinks...)

	for name, ctrl := range controls {
		if err := ctrl.ConnectWithTimeout(ctx); err != nil {
			return fmt.Errorf("connecting remote control %q: %w", name, err)
		}
		defer ctrl.Close()
		a.logger.Info("Remote control connected.", "node", name, "event", ctrl.Event())
	}

	a.logger.Info("Watching pipeline.", "sinks", len(sinks), "controls", len(controls))
	<-ctx.Done()
	a.logger.Info("Shutting down.")
	return nil
}

// formatValue renders a sink value for the output stream. Pipeline values
// are cty and print as JSON; anything else falls back to fmt.
func formatValue(v any) string {
	if cv, ok := v.(cty.Value); ok {
		if data, err := ctyjson.Marshal(cv, cv.Type()); err == nil {
			return string(data)
		}
	}
	return fmt.Sprint(v)
}
