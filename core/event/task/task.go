// Copyright (C) 2019 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package task holds the small set of helpers used to start, stop and retry
// background work.
package task

import (
	"context"
	"time"
)

// Task is a unit of work run with a context.
type Task func(context.Context) error

// ShouldStop returns a chan that is closed when work done for ctx should stop.
func ShouldStop(ctx context.Context) <-chan struct{} { return ctx.Done() }

// Stopped returns true once ctx has been cancelled or has expired.
func Stopped(ctx context.Context) bool { return ctx.Err() != nil }

// Retry calls f until it reports done, maxAttempts calls have been made or
// ctx is stopped, waiting retryDelay between calls. A maxAttempts of zero or
// less means no limit.
// The error of the last call to f is returned, or the context's error if it
// stopped first.
func Retry(ctx context.Context, maxAttempts int, retryDelay time.Duration, f func(context.Context) (done bool, err error)) error {
	for attempt := 1; ; attempt++ {
		done, err := f(ctx)
		if done || (maxAttempts > 0 && attempt >= maxAttempts) {
			return err
		}
		timer := time.NewTimer(retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
