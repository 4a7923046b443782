// Package state persists the installed-version record (version.json).
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultVersion is assumed when no version file exists yet, so any real
// release is judged newer on first run.
const DefaultVersion = "0.0.0"

// VersionState is the durable record of the currently installed version.
// Fields other than "version" are carried opaquely so unrelated data stored
// alongside it survives an update.
type VersionState struct {
	Version string
	extra   map[string]json.RawMessage
}

// Read loads the version state from path. A missing or unreadable file
// yields the default state rather than an error; the first update run must
// not be blocked by absent local state.
func Read(path string) *VersionState {
	st := &VersionState{Version: DefaultVersion, extra: map[string]json.RawMessage{}}

	content, err := os.ReadFile(path)
	if err != nil {
		return st
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(content, &fields); err != nil {
		return st
	}

	for k, v := range fields {
		if k == "version" {
			var s string
			if err := json.Unmarshal(v, &s); err == nil {
				st.Version = s
			}
			continue
		}
		st.extra[k] = v
	}
	return st
}

// Write persists the state to path atomically: the record is written to a
// temp file in the same directory, then renamed over the target, so a crash
// mid-write never leaves a truncated file. Unknown fields read earlier are
// merged back into the output.
func (st *VersionState) Write(path string) error {
	fields := map[string]json.RawMessage{}
	for k, v := range st.extra {
		fields[k] = v
	}
	versionJSON, err := json.Marshal(st.Version)
	if err != nil {
		return fmt.Errorf("failed to encode version: %w", err)
	}
	fields["version"] = versionJSON

	content, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode version state: %w", err)
	}
	content = append(content, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp version file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write version state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp version file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace version file: %w", err)
	}
	return nil
}
