// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents what a run did to a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusConverted            // Changes were written
	StatusPending              // Changes were found but not written
	StatusUnchanged            // Nothing matched
	StatusFailed               // Reading or writing failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusConverted:
		return "converted"
	case StatusPending:
		return "pending"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 🧮 Summary totals a run
type Summary struct {
	Files     int `json:"files"`
	Converted int `json:"converted"`
	Pending   int `json:"pending"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
	Changes   int `json:"changes"`
	Warnings  int `json:"warnings"`
}

// Track adds one file to the totals
func (s *Summary) Track(st FileStatus, changes, warnings int) {
	s.Files++
	s.Changes += changes
	s.Warnings += warnings

	switch st {
	case StatusConverted:
		s.Converted++
	case StatusPending:
		s.Pending++
	case StatusUnchanged:
		s.Unchanged++
	case StatusFailed:
		s.Failed++
	}
}

// HasFailures reports whether any file failed
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// 💾 WriteFileAtomic writes content next to path and renames it into place,
// creating parent directories as needed
func WriteFileAtomic(path string, content []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	tempPath := path + ".tmp"

	// Write to temp file
	if err := os.WriteFile(tempPath, content, mode); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
