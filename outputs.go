package main

import (
	"fmt"
	"sort"
)

type outputExporter interface {
	ExportOutput(key, value string) error
}

// ExportOutputs exports each output for the following steps and sets it in the current process environment.
func (s CordovaStep) ExportOutputs(outputs map[string]string) error {
	if len(outputs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(outputs))
	for key := range outputs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s.logger.Println()
	s.logger.Infof("Export outputs")
	for _, key := range keys {
		value := outputs[key]
		if err := s.exporter.ExportOutput(key, value); err != nil {
			return fmt.Errorf("failed to export %s: %w", key, err)
		}
		if err := s.envRepo.Set(key, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
		s.logger.Donef("%s: %s", key, value)
	}
	return nil
}
