/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"sync"
)

// Warning is a non-fatal problem noticed while reading tournament data,
// e.g. scores that were recorded the wrong way around.
type Warning struct {
	Message string
	Context string
}

func (w Warning) String() string {
	if w.Context == "" {
		return w.Message
	}
	return fmt.Sprintf("%v: %v", w.Context, w.Message)
}

// Warnings collects warnings from concurrent readers. The zero value is
// ready to use.
type Warnings struct {
	mu   sync.Mutex
	list []Warning
}

func (w *Warnings) Add(context string, format string, args ...any) {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.list = append(w.list, Warning{
		Message: fmt.Sprintf(format, args...),
		Context: context,
	})
}

// List returns a copy of the collected warnings in the order they were
// added.
func (w *Warnings) List() []Warning {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Warning(nil), w.list...)
}

func (w *Warnings) Len() int {
	if w == nil {
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.list)
}
