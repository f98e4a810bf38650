package recognition

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"

	"github.com/kozaktomas/face-attendance/internal/samples"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

// UnknownRoll is reported when the recognizer returns a label the registry
// does not know.
const UnknownRoll = "Unknown"

// Match is the result of identifying one face sample.
type Match struct {
	Label    int
	Roll     string
	Name     string
	Distance float64
	Known    bool
}

// LoadReport summarizes a reload.
type LoadReport struct {
	Students int // students with at least one sample
	Samples  int
	Warnings []error
}

// Loader returns all stored students plus per-record warnings.
type Loader interface {
	Load(ctx context.Context) ([]samples.Record, []error, error)
}

// Engine combines the registry and the model. Reloads swap both at once.
type Engine struct {
	mu       sync.RWMutex
	registry *Registry
	model    *Model
	newModel func() *Model
}

// NewEngine creates an engine that builds a fresh recognizer per reload.
func NewEngine(newRecognizer func() vision.Recognizer) *Engine {
	newModel := func() *Model { return NewModel(newRecognizer()) }
	return &Engine{
		registry: NewRegistry(),
		model:    newModel(),
		newModel: newModel,
	}
}

// Reload fetches all records and retrains. On loader error the current
// state is kept.
func (e *Engine) Reload(ctx context.Context, loader Loader) (LoadReport, error) {
	records, warnings, err := loader.Load(ctx)
	if err != nil {
		return LoadReport{}, err
	}
	report, err := e.Load(records)
	report.Warnings = append(warnings, report.Warnings...)
	for _, w := range report.Warnings {
		slog.Warn("skipped student while loading samples", "error", w)
	}
	return report, err
}

// Load replaces the engine state with records.
func (e *Engine) Load(records []samples.Record) (LoadReport, error) {
	registry := NewRegistry()
	images, labels := registry.Rebuild(records)
	model := e.newModel()

	report := LoadReport{Students: registry.Len(), Samples: len(images)}
	if err := model.Train(images, labels); err != nil && !errors.Is(err, ErrNoTrainingData) {
		return report, err
	}

	e.mu.Lock()
	e.registry = registry
	e.model = model
	e.mu.Unlock()

	slog.Info("recognition model loaded", "students", report.Students, "samples", report.Samples)
	return report, nil
}

// Identify predicts who img shows.
func (e *Engine) Identify(img *image.Gray) (Match, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	label, distance, err := e.model.Predict(img)
	if err != nil {
		return Match{}, err
	}
	m := Match{Label: label, Distance: distance, Roll: UnknownRoll}
	if roll, ok := e.registry.Roll(label); ok {
		m.Roll = roll
		m.Name, _ = e.registry.Name(roll)
		m.Known = true
	}
	return m, nil
}

// Known reports whether roll has samples the model was trained on.
func (e *Engine) Known(roll string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.registry.Label(roll)
	return ok
}

// Name returns the name of any loaded student, with or without samples.
func (e *Engine) Name(roll string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.registry.Name(roll)
}

// StudentCount is the number of students the model can recognize.
func (e *Engine) StudentCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.registry.Len()
}

// Trained reports whether the engine can identify faces.
func (e *Engine) Trained() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.model.Trained()
}
