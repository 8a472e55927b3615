package lessons

import (
	"protochain/pkg/jsoracle"
	"protochain/pkg/vm"
)

// Mismatch is a line where the model and the JavaScript engine disagree.
// Line is 1-based; a missing line is reported as "<missing>".
type Mismatch struct {
	Line  int
	Model string
	JS    string
}

const missingLine = "<missing>"

// Verify runs the lesson on the model and its script on a JavaScript engine
// and compares the printed lines.
func (l *Lesson) Verify(opts ...vm.Option) ([]Mismatch, error) {
	got, err := l.Output(opts...)
	if err != nil {
		return nil, err
	}
	want, err := jsoracle.Run(l.Script())
	if err != nil {
		return nil, err
	}
	return diffLines(got, want), nil
}

func diffLines(model, js []string) []Mismatch {
	var out []Mismatch
	for i := 0; i < max(len(model), len(js)); i++ {
		m, j := missingLine, missingLine
		if i < len(model) {
			m = model[i]
		}
		if i < len(js) {
			j = js[i]
		}
		if m != j {
			out = append(out, Mismatch{Line: i + 1, Model: m, JS: j})
		}
	}
	return out
}
