// Package project scaffolds new script project descriptors on disk.
//
// Scaffolder.Generate is the boundary used by callers that cannot handle
// errors: it never returns an error or panics. Failures are reported to a
// diag.Sink and the caller receives ("", false).
package project

import (
	"fmt"

	"github.com/roach88/sharpglue/internal/diag"
)

// Scaffolder wraps a TemplateWriter so that failures degrade to an empty
// result plus one diagnostic record.
type Scaffolder struct {
	writer TemplateWriter
	sink   diag.Sink
}

// NewScaffolder creates a scaffolder. A nil writer uses a default Generator;
// a nil sink reports to diag.Default() at call time.
func NewScaffolder(w TemplateWriter, sink diag.Sink) *Scaffolder {
	if w == nil {
		w = &Generator{}
	}
	return &Scaffolder{writer: w, sink: sink}
}

// Generate writes the project descriptor for name under dir and returns its
// path. On any failure, including a panic in the writer, it returns ("", false)
// and pushes exactly one diagnostic.
func (s *Scaffolder) Generate(dir, name string, withExtension bool) (path string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.report(dir, name, fmt.Errorf("panic: %v", r))
			path, ok = "", false
		}
	}()

	p, err := s.writer.WriteProject(dir, name, withExtension)
	if err != nil {
		s.report(dir, name, err)
		return "", false
	}
	if p == "" {
		s.report(dir, name, fmt.Errorf("template writer returned no path"))
		return "", false
	}
	return p, true
}

func (s *Scaffolder) report(dir, name string, err error) {
	sink := s.sink
	if sink == nil {
		sink = diag.Default()
	}
	sink.PushError(fmt.Sprintf("generating project %q in %s: %v", name, dir, err))
}

// Generate scaffolds with the default Generator and the process-wide sink.
func Generate(dir, name string, withExtension bool) (string, bool) {
	return NewScaffolder(nil, nil).Generate(dir, name, withExtension)
}
