package trace

import (
	"fmt"
	"os"
)

// AppTraces bundles the per-core trace readers of one application. The
// trace of core i lives in `{app}_proc{i}.trace`.
type AppTraces struct {
	Readers []*Reader

	files []*os.File
}

// OpenApp opens the numCores trace files of the application named by
// prefix. Failure to open any file closes the ones already opened.
func OpenApp(prefix string, numCores int) (*AppTraces, error) {
	t := &AppTraces{}

	for i := 0; i < numCores; i++ {
		name := fmt.Sprintf("%s_proc%d.trace", prefix, i)

		f, err := os.Open(name)
		if err != nil {
			t.Close()
			return nil, fmt.Errorf("opening trace %s: %w", name, err)
		}

		t.files = append(t.files, f)
		t.Readers = append(t.Readers, NewReader(f, name))
	}

	return t, nil
}

// Close closes all trace files.
func (t *AppTraces) Close() error {
	var firstErr error
	for _, f := range t.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
