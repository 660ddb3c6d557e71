/*
Copyright 2025 The gofixbuf Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package ipfix

import (
	"context"
	"sync"

	"github.com/go-logr/logr"
)

var (
	loggerMu sync.RWMutex
	logger   = logr.Discard()
)

// SetLogger installs the package-wide logger. The package logs nothing
// unless a logger is set.
func SetLogger(l logr.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l.WithName("ipfix")
}

func getLogger() logr.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// FromContext returns the logger stored in ctx by IntoContext, falling back
// to the package logger.
func FromContext(ctx context.Context) logr.Logger {
	if l, err := logr.FromContext(ctx); err == nil {
		return l
	}
	return getLogger()
}

// IntoContext stores l in the returned context for FromContext to find.
func IntoContext(ctx context.Context, l logr.Logger) context.Context {
	return logr.NewContext(ctx, l)
}
