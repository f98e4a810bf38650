package recognition

import (
	"image"
	"sort"

	"github.com/kozaktomas/face-attendance/internal/samples"
)

// Registry assigns dense integer labels to students. Labels are only valid
// until the next Rebuild.
type Registry struct {
	rolls  []string
	labels map[string]int
	names  map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{labels: map[string]int{}, names: map[string]string{}}
}

// Rebuild discards the previous mapping and labels every record that has at
// least one image, in roll number order. It returns the flattened training
// set. Names are kept for all records, including those without images.
func (r *Registry) Rebuild(records []samples.Record) ([]*image.Gray, []int) {
	sorted := make([]samples.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].RollNumber < sorted[j].RollNumber })

	r.rolls = r.rolls[:0]
	r.labels = make(map[string]int, len(sorted))
	r.names = make(map[string]string, len(sorted))

	var images []*image.Gray
	var labels []int
	for _, rec := range sorted {
		r.names[rec.RollNumber] = rec.Name
		if len(rec.Images) == 0 {
			continue
		}
		if _, dup := r.labels[rec.RollNumber]; dup {
			continue
		}
		label := len(r.rolls)
		r.rolls = append(r.rolls, rec.RollNumber)
		r.labels[rec.RollNumber] = label
		for _, img := range rec.Images {
			images = append(images, img)
			labels = append(labels, label)
		}
	}
	return images, labels
}

// Roll returns the roll number for label.
func (r *Registry) Roll(label int) (string, bool) {
	if label < 0 || label >= len(r.rolls) {
		return "", false
	}
	return r.rolls[label], true
}

// Label returns the label for a roll number.
func (r *Registry) Label(roll string) (int, bool) {
	label, ok := r.labels[roll]
	return label, ok
}

// Name returns the student name for a roll number.
func (r *Registry) Name(roll string) (string, bool) {
	name, ok := r.names[roll]
	return name, ok
}

// Len is the number of labelled students.
func (r *Registry) Len() int {
	return len(r.rolls)
}
