package recognition

import (
	"context"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/kozaktomas/face-attendance/internal/samples"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

// meanRecognizer predicts the training label whose sample mean intensity is
// closest to the query; the distance is the absolute mean difference.
type meanRecognizer struct {
	means  []float64
	labels []int
	trains int
}

func (r *meanRecognizer) Train(images []*image.Gray, labels []int) error {
	r.trains++
	r.means = r.means[:0]
	for _, img := range images {
		r.means = append(r.means, mean(img))
	}
	r.labels = append([]int(nil), labels...)
	return nil
}

func (r *meanRecognizer) Predict(img *image.Gray) (int, float64, error) {
	q := mean(img)
	best, bestDist := -1, math.MaxFloat64
	for i, m := range r.means {
		if d := math.Abs(m - q); d < bestDist {
			best, bestDist = r.labels[i], d
		}
	}
	return best, bestDist, nil
}

func mean(img *image.Gray) float64 {
	var sum float64
	for _, p := range img.Pix {
		sum += float64(p)
	}
	return sum / float64(len(img.Pix))
}

func face(value uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		img.Pix[i] = value
	}
	return img
}

type staticLoader struct {
	records  []samples.Record
	warnings []error
	err      error
}

func (l staticLoader) Load(ctx context.Context) ([]samples.Record, []error, error) {
	return l.records, l.warnings, l.err
}

func newTestEngine() *Engine {
	return NewEngine(func() vision.Recognizer { return &meanRecognizer{} })
}

func TestModel_UntrainedAndEmpty(t *testing.T) {
	rec := &meanRecognizer{}
	m := NewModel(rec)

	if _, _, err := m.Predict(face(0)); !errors.Is(err, ErrNotTrained) {
		t.Errorf("expected ErrNotTrained, got %v", err)
	}
	if err := m.Train(nil, nil); !errors.Is(err, ErrNoTrainingData) {
		t.Errorf("expected ErrNoTrainingData, got %v", err)
	}
	if rec.trains != 0 {
		t.Errorf("recognizer must not be trained on empty data")
	}
	if m.Trained() {
		t.Error("model should stay untrained")
	}
}

func TestModel_TrainReplacesState(t *testing.T) {
	m := NewModel(&meanRecognizer{})
	if err := m.Train([]*image.Gray{face(10)}, []int{0}); err != nil {
		t.Fatalf("train failed: %v", err)
	}
	if err := m.Train([]*image.Gray{face(200)}, []int{7}); err != nil {
		t.Fatalf("train failed: %v", err)
	}
	label, _, err := m.Predict(face(10))
	if err != nil {
		t.Fatalf("predict failed: %v", err)
	}
	if label != 7 {
		t.Errorf("expected only the latest training state, got label %d", label)
	}

	if err := m.Train([]*image.Gray{face(1)}, nil); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestRegistry_LabelsInRollOrder(t *testing.T) {
	r := NewRegistry()
	images, labels := r.Rebuild([]samples.Record{
		{RollNumber: "S3", Name: "Carol", Images: []*image.Gray{face(3)}},
		{RollNumber: "S1", Name: "Alice", Images: []*image.Gray{face(1), face(1)}},
		{RollNumber: "S2", Name: "Bob"},
	})

	if len(images) != 3 || len(labels) != 3 {
		t.Fatalf("expected 3 training samples, got %d/%d", len(images), len(labels))
	}
	if l, _ := r.Label("S1"); l != 0 {
		t.Errorf("expected S1 -> 0, got %d", l)
	}
	if l, _ := r.Label("S3"); l != 1 {
		t.Errorf("expected S3 -> 1, got %d", l)
	}
	if _, ok := r.Label("S2"); ok {
		t.Error("student without images must not get a label")
	}
	if name, ok := r.Name("S2"); !ok || name != "Bob" {
		t.Errorf("expected name lookup for S2, got %q/%v", name, ok)
	}
	if roll, ok := r.Roll(1); !ok || roll != "S3" {
		t.Errorf("expected label 1 -> S3, got %q", roll)
	}
	if _, ok := r.Roll(5); ok {
		t.Error("expected unknown label")
	}

	// Rebuild discards prior state.
	r.Rebuild([]samples.Record{{RollNumber: "S9", Images: []*image.Gray{face(9)}}})
	if _, ok := r.Label("S1"); ok {
		t.Error("expected S1 to be gone after rebuild")
	}
	if roll, _ := r.Roll(0); roll != "S9" {
		t.Errorf("expected label 0 -> S9, got %q", roll)
	}
}

func TestEngine_IdentifyAndNeverPredictsImagelessStudent(t *testing.T) {
	e := newTestEngine()
	report, err := e.Load([]samples.Record{
		{RollNumber: "S1", Name: "Alice", Images: []*image.Gray{face(20)}},
		{RollNumber: "S2", Name: "Bob"},
		{RollNumber: "S3", Name: "Carol", Images: []*image.Gray{face(200)}},
	})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if report.Students != 2 || report.Samples != 2 {
		t.Errorf("unexpected report %+v", report)
	}

	for _, v := range []uint8{0, 20, 100, 199, 255} {
		m, err := e.Identify(face(v))
		if err != nil {
			t.Fatalf("identify failed: %v", err)
		}
		if m.Roll == "S2" {
			t.Fatalf("student without samples was predicted for %d", v)
		}
	}

	m, _ := e.Identify(face(25))
	if m.Roll != "S1" || m.Name != "Alice" || m.Distance != 5 || !m.Known {
		t.Errorf("unexpected match %+v", m)
	}
	if e.Known("S2") {
		t.Error("S2 should not be known to the model")
	}
	if name, ok := e.Name("S2"); !ok || name != "Bob" {
		t.Errorf("expected S2 name from registry, got %q", name)
	}
}

func TestEngine_EmptyLoadLeavesUntrained(t *testing.T) {
	e := newTestEngine()
	report, err := e.Load([]samples.Record{{RollNumber: "S1", Name: "Alice"}})
	if err != nil {
		t.Fatalf("empty load should not fail, got %v", err)
	}
	if report.Students != 0 || e.Trained() {
		t.Errorf("expected untrained engine, got %+v trained=%v", report, e.Trained())
	}
	if _, err := e.Identify(face(1)); !errors.Is(err, ErrNotTrained) {
		t.Errorf("expected ErrNotTrained, got %v", err)
	}
}

func TestEngine_ReloadKeepsStateOnLoaderError(t *testing.T) {
	e := newTestEngine()
	_, err := e.Reload(context.Background(), staticLoader{records: []samples.Record{
		{RollNumber: "S1", Name: "Alice", Images: []*image.Gray{face(20)}},
	}, warnings: []error{errors.New("S0: corrupt")}})
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	_, err = e.Reload(context.Background(), staticLoader{err: errors.New("db down")})
	if err == nil {
		t.Fatal("expected loader error")
	}
	if e.StudentCount() != 1 || !e.Known("S1") {
		t.Error("previous state should survive a failed reload")
	}
}

func TestEngine_ReloadReportsWarnings(t *testing.T) {
	e := newTestEngine()
	report, err := e.Reload(context.Background(), staticLoader{
		records:  []samples.Record{{RollNumber: "S1", Images: []*image.Gray{face(1)}}},
		warnings: []error{errors.New("S0: corrupt")},
	})
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(report.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", report.Warnings)
	}
}

func TestEngine_UnknownLabel(t *testing.T) {
	e := NewEngine(func() vision.Recognizer { return &fixedRecognizer{label: 42, distance: 10} })
	if _, err := e.Load([]samples.Record{{RollNumber: "S1", Images: []*image.Gray{face(1)}}}); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	m, err := e.Identify(face(1))
	if err != nil {
		t.Fatalf("identify failed: %v", err)
	}
	if m.Known || m.Roll != UnknownRoll {
		t.Errorf("expected unknown match, got %+v", m)
	}
}

type fixedRecognizer struct {
	label    int
	distance float64
}

func (f *fixedRecognizer) Train([]*image.Gray, []int) error { return nil }

func (f *fixedRecognizer) Predict(*image.Gray) (int, float64, error) {
	return f.label, f.distance, nil
}
