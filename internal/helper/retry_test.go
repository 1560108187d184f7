// vitals
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.


package helper

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	errFlaky := errors.New("endpoint unreachable")
	calls := 0
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tests := []struct {
		name        string
		effector    Effector
		rc          RetryConfig
		ctx         context.Context
		wantRetries int
		wantErr     error
	}{
		{
			name: "success on first call",
			effector: func(context.Context) error {
				calls++
				return nil
			},
			rc:          RetryConfig{Count: 2, Delay: time.Millisecond},
			ctx:         context.Background(),
			wantRetries: 0,
		},
		{
			name: "success after first retry",
			effector: func(context.Context) error {
				calls++
				if calls > 1 {
					return nil
				}
				return errFlaky
			},
			rc:          RetryConfig{Count: 2, Delay: time.Millisecond},
			ctx:         context.Background(),
			wantRetries: 1,
		},
		{
			name: "retries exhausted",
			effector: func(context.Context) error {
				calls++
				return errFlaky
			},
			rc:          RetryConfig{Count: 2, Delay: time.Millisecond},
			ctx:         context.Background(),
			wantRetries: 2,
			wantErr:     errFlaky,
		},
		{
			name: "no retries configured",
			effector: func(context.Context) error {
				calls++
				return errFlaky
			},
			rc:          RetryConfig{},
			ctx:         context.Background(),
			wantRetries: 0,
			wantErr:     errFlaky,
		},
		{
			name: "context canceled while waiting",
			effector: func(context.Context) error {
				calls++
				cancel()
				return errFlaky
			},
			rc:          RetryConfig{Count: 2, Delay: time.Minute},
			ctx:         ctx,
			wantRetries: 0,
			wantErr:     context.Canceled,
		},
	}

	for _, tt := range tests {
		calls = 0
		t.Run(tt.name, func(t *testing.T) {
			err := Retry(tt.effector, tt.rc)(tt.ctx)
			if !errors.Is(err, tt.wantErr) || (err == nil) != (tt.wantErr == nil) {
				t.Errorf("Retry() error = %v, want %v", err, tt.wantErr)
			}
			if calls-1 != tt.wantRetries {
				t.Errorf("Retry() retries = %d, want %d", calls-1, tt.wantRetries)
			}
		})
	}
}

func Test_getExpBackoff(t *testing.T) {
	tests := []struct {
		name      string
		delay     time.Duration
		iteration int
		want      time.Duration
	}{
		{name: "first iteration", delay: time.Second, iteration: 1, want: time.Second},
		{name: "second iteration", delay: time.Second, iteration: 2, want: 2 * time.Second},
		{name: "third iteration", delay: time.Second, iteration: 3, want: 4 * time.Second},
		{name: "fourth iteration", delay: time.Second, iteration: 4, want: 8 * time.Second},
		{name: "invalid iteration", delay: time.Second, iteration: -12, want: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getExpBackoff(tt.delay, tt.iteration); got != tt.want {
				t.Errorf("getExpBackoff() = %v, want %v", got, tt.want)
			}
		})
	}
}
