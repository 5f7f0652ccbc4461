// Package cmdrunnertest provides a recording cmdrunner.Runner for tests.
package cmdrunnertest

import (
	"sort"
	"strings"
)

// Recorder records every command instead of running it.
//
// Outputs and Errors are keyed by command line prefix ("git rev-parse"),
// the longest matching prefix wins.
type Recorder struct {
	Calls   []string
	Outputs map[string]string
	Errors  map[string]error
}

// NewRecorder ...
func NewRecorder() *Recorder {
	return &Recorder{
		Outputs: map[string]string{},
		Errors:  map[string]error{},
	}
}

// Execute ...
func (r *Recorder) Execute(name string, args ...string) error {
	_, err := r.record(name, args)
	return err
}

// ExecuteForOutput ...
func (r *Recorder) ExecuteForOutput(name string, args ...string) (string, error) {
	return r.record(name, args)
}

// CallsWithPrefix returns the recorded command lines starting with prefix.
func (r *Recorder) CallsWithPrefix(prefix string) []string {
	var calls []string
	for _, c := range r.Calls {
		if strings.HasPrefix(c, prefix) {
			calls = append(calls, c)
		}
	}
	return calls
}

func (r *Recorder) record(name string, args []string) (string, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	r.Calls = append(r.Calls, line)

	if prefix, ok := longestPrefix(line, r.Errors); ok {
		return "", r.Errors[prefix]
	}
	if prefix, ok := longestPrefix(line, r.Outputs); ok {
		return r.Outputs[prefix], nil
	}
	return "", nil
}

// longestPrefix picks the most specific key of m that line starts with.
func longestPrefix[V any](line string, m map[string]V) (string, bool) {
	var prefixes []string
	for prefix := range m {
		if strings.HasPrefix(line, prefix) {
			prefixes = append(prefixes, prefix)
		}
	}
	if len(prefixes) == 0 {
		return "", false
	}

	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})
	return prefixes[0], true
}
