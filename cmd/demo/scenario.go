package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/ownership/handle"
	"github.com/wippyai/ownership/track"
)

// Resource is the demonstration referent hierarchy: buffers and files
// behind a common interface, so cast steps have something to hit and
// miss.
type Resource interface {
	Describe() string
}

// Buffer is a sized in-memory resource.
type Buffer struct {
	Size int
}

func (b *Buffer) Describe() string { return fmt.Sprintf("buffer(%d)", b.Size) }
func (b *Buffer) Drop()            {}

// File is a named resource.
type File struct {
	Name string
}

func (f *File) Describe() string { return fmt.Sprintf("file(%s)", f.Name) }
func (f *File) Drop()            {}

// Scenario is a YAML-described sequence of handle operations.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one handle operation.
//
//	op: adopt|clone|assign|replace|swap|release|own|move|downcast
type Step struct {
	Op     string `yaml:"op"`
	Handle string `yaml:"handle"`
	From   string `yaml:"from"`
	Value  string `yaml:"value"` // "buffer:1024" or "file:app.log"
	As     string `yaml:"as"`    // downcast target: "buffer" or "file"
}

func (s Step) String() string {
	parts := []string{s.Op}
	if s.Handle != "" {
		parts = append(parts, s.Handle)
	}
	if s.From != "" {
		parts = append(parts, "from="+s.From)
	}
	if s.Value != "" {
		parts = append(parts, "value="+s.Value)
	}
	if s.As != "" {
		parts = append(parts, "as="+s.As)
	}
	return strings.Join(parts, " ")
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", sc.Name)
	}
	return &sc, nil
}

const defaultScenario = `name: shared and exclusive lifecycle
steps:
  - {op: adopt, handle: x, value: "buffer:1024"}
  - {op: clone, handle: y, from: x}
  - {op: downcast, from: x, as: buffer}
  - {op: downcast, from: x, as: file}
  - {op: adopt, handle: z, value: "file:app.log"}
  - {op: assign, handle: z, from: x}
  - {op: release, handle: x}
  - {op: release, handle: y}
  - {op: own, handle: a, value: "buffer:64"}
  - {op: move, handle: b, from: a}
  - {op: release, handle: b}
  - {op: release, handle: z}
`

// DefaultScenario returns the built-in walkthrough.
func DefaultScenario() *Scenario {
	var sc Scenario
	if err := yaml.Unmarshal([]byte(defaultScenario), &sc); err != nil {
		panic(err)
	}
	return &sc
}

// Frame is the world state after one step.
type Frame struct {
	Step    string
	Outcome string
	State   []string
	Events  []string
}

// Runner executes scenario steps against named handles and snapshots
// the result of each.
type Runner struct {
	shared  map[string]*handle.Shared[Resource]
	owned   map[string]*handle.Owned[Resource]
	order   []string
	tracker *track.Tracker
	events  []string
}

// NewRunner wires a runner into the handle package's observer hook.
// Call Close when done.
func NewRunner() *Runner {
	r := &Runner{
		shared:  make(map[string]*handle.Shared[Resource]),
		owned:   make(map[string]*handle.Owned[Resource]),
		tracker: track.NewTracker(),
	}
	handle.SetObserver(r.tracker)
	r.tracker.Subscribe(r)
	return r
}

// Close detaches the runner from the observer hook and releases any
// handles the scenario left behind.
func (r *Runner) Close() {
	for _, name := range r.order {
		if h, ok := r.shared[name]; ok {
			h.Release()
		}
		if h, ok := r.owned[name]; ok {
			h.Release()
		}
	}
	handle.SetObserver(nil)
}

// OnOwnershipEvent implements handle.Observer via the tracker's fan-out.
func (r *Runner) OnOwnershipEvent(e handle.Event) {
	desc := "<nil>"
	if res, ok := e.Value.(Resource); ok {
		desc = res.Describe()
	}
	r.events = append(r.events, fmt.Sprintf("%-7s %s count=%d", e.Type, desc, e.Count))
}

// Run executes the whole scenario, returning one frame per step.
func (r *Runner) Run(sc *Scenario) ([]Frame, error) {
	frames := make([]Frame, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		mark := len(r.events)
		outcome, err := r.Apply(step)
		if err != nil {
			return frames, fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}
		frames = append(frames, Frame{
			Step:    step.String(),
			Outcome: outcome,
			State:   r.Snapshot(),
			Events:  r.events[mark:],
		})
	}
	return frames, nil
}

// Apply executes one step and describes what happened.
func (r *Runner) Apply(step Step) (string, error) {
	switch step.Op {
	case "adopt":
		res, err := makeResource(step.Value)
		if err != nil {
			return "", err
		}
		r.bindShared(step.Handle, handle.NewShared(res))
		return fmt.Sprintf("%s adopted %s", step.Handle, res.Describe()), nil

	case "clone":
		src, err := r.getShared(step.From)
		if err != nil {
			return "", err
		}
		r.bindShared(step.Handle, src.Clone())
		return fmt.Sprintf("%s co-owns %s's referent", step.Handle, step.From), nil

	case "assign":
		src, err := r.getShared(step.From)
		if err != nil {
			return "", err
		}
		dst, err := r.getShared(step.Handle)
		if err != nil {
			return "", err
		}
		dst.Assign(src)
		return fmt.Sprintf("%s now shares %s's referent", step.Handle, step.From), nil

	case "replace":
		res, err := makeResource(step.Value)
		if err != nil {
			return "", err
		}
		dst, err := r.getShared(step.Handle)
		if err != nil {
			return "", err
		}
		if err := dst.ResetTo(res); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s reset to fresh %s", step.Handle, res.Describe()), nil

	case "swap":
		a, err := r.getShared(step.Handle)
		if err != nil {
			return "", err
		}
		b, err := r.getShared(step.From)
		if err != nil {
			return "", err
		}
		a.Swap(b)
		return fmt.Sprintf("%s and %s exchanged referents", step.Handle, step.From), nil

	case "release":
		if h, ok := r.shared[step.Handle]; ok {
			h.Release()
			return step.Handle + " released", nil
		}
		if h, ok := r.owned[step.Handle]; ok {
			h.Release()
			return step.Handle + " released", nil
		}
		return "", fmt.Errorf("unknown handle %q", step.Handle)

	case "own":
		res, err := makeResource(step.Value)
		if err != nil {
			return "", err
		}
		r.bindOwned(step.Handle, handle.NewOwned(res))
		return fmt.Sprintf("%s exclusively owns %s", step.Handle, res.Describe()), nil

	case "move":
		src, ok := r.owned[step.From]
		if !ok {
			return "", fmt.Errorf("unknown exclusive handle %q", step.From)
		}
		r.bindOwned(step.Handle, src.Move())
		return fmt.Sprintf("ownership moved %s -> %s", step.From, step.Handle), nil

	case "downcast":
		src, err := r.getShared(step.From)
		if err != nil {
			return "", err
		}
		return r.probeDowncast(src, step.As)

	default:
		return "", fmt.Errorf("unknown op %q", step.Op)
	}
}

// probeDowncast runs a dynamic cast against the named handle, reports
// hit or miss, and releases the temporary so counts return to baseline.
func (r *Runner) probeDowncast(src *handle.Shared[Resource], as string) (string, error) {
	switch as {
	case "buffer":
		tmp := handle.DynamicCast[*Buffer](src)
		if !tmp.Valid() {
			return fmt.Sprintf("downcast to buffer missed (count stays %d)", src.UseCount()), nil
		}
		out := fmt.Sprintf("downcast hit %s (count %d with temporary)", tmp.Get().Describe(), src.UseCount())
		tmp.Release()
		return out, nil
	case "file":
		tmp := handle.DynamicCast[*File](src)
		if !tmp.Valid() {
			return fmt.Sprintf("downcast to file missed (count stays %d)", src.UseCount()), nil
		}
		out := fmt.Sprintf("downcast hit %s (count %d with temporary)", tmp.Get().Describe(), src.UseCount())
		tmp.Release()
		return out, nil
	default:
		return "", fmt.Errorf("unknown downcast target %q", as)
	}
}

// Snapshot renders the current handle table and tracker totals.
func (r *Runner) Snapshot() []string {
	var out []string
	for _, name := range r.order {
		if h, ok := r.shared[name]; ok {
			if h.Valid() {
				out = append(out, fmt.Sprintf("%-4s -> %s (count %d)", name, h.Get().Describe(), h.UseCount()))
			} else {
				out = append(out, fmt.Sprintf("%-4s -> empty", name))
			}
		}
		if h, ok := r.owned[name]; ok {
			if h.Valid() {
				out = append(out, fmt.Sprintf("%-4s => %s (exclusive)", name, h.Get().Describe()))
			} else {
				out = append(out, fmt.Sprintf("%-4s => empty", name))
			}
		}
	}
	out = append(out, fmt.Sprintf("live=%d adopted=%d destroyed=%d",
		r.tracker.Len(), r.tracker.Adopted(), r.tracker.Destroyed()))
	return out
}

// Leaked reports lineages still alive, sorted for stable output.
func (r *Runner) Leaked() []string {
	var out []string
	for _, e := range r.tracker.Leaked() {
		if res, ok := e.Value.(Resource); ok {
			out = append(out, fmt.Sprintf("%s (count %d)", res.Describe(), e.Count))
		}
	}
	sort.Strings(out)
	return out
}

func (r *Runner) bindShared(name string, h *handle.Shared[Resource]) {
	if old, ok := r.shared[name]; ok {
		old.Release()
	} else if _, ok := r.owned[name]; !ok {
		r.order = append(r.order, name)
	}
	r.shared[name] = h
}

func (r *Runner) bindOwned(name string, h *handle.Owned[Resource]) {
	if old, ok := r.owned[name]; ok {
		old.Release()
	} else if _, ok := r.shared[name]; !ok {
		r.order = append(r.order, name)
	}
	r.owned[name] = h
}

func (r *Runner) getShared(name string) (*handle.Shared[Resource], error) {
	h, ok := r.shared[name]
	if !ok {
		return nil, fmt.Errorf("unknown handle %q", name)
	}
	return h, nil
}

// makeResource parses "buffer:1024" / "file:app.log" into a referent.
func makeResource(desc string) (Resource, error) {
	kind, arg, ok := strings.Cut(desc, ":")
	if !ok {
		return nil, fmt.Errorf("bad value %q, want kind:arg", desc)
	}
	switch kind {
	case "buffer":
		size, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("bad buffer size %q", arg)
		}
		return &Buffer{Size: size}, nil
	case "file":
		return &File{Name: arg}, nil
	default:
		return nil, fmt.Errorf("unknown resource kind %q", kind)
	}
}
