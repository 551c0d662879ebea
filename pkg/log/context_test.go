// Copyright 2025 CrossRelay Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crossrelay/crossrelay/pkg/log"
)

func TestCtxRoundTrip(t *testing.T) {
	logger := log.New("component", "test")
	ctx := log.CtxWith(context.Background(), logger)
	assert.Same(t, logger, log.FromCtx(ctx))
}

func TestCtxWithOverwrites(t *testing.T) {
	first := log.New("component", "first")
	second := log.New("component", "second")
	ctx := log.CtxWith(log.CtxWith(context.Background(), first), second)
	assert.Same(t, second, log.FromCtx(ctx))
}

func TestFromCtxNeverNil(t *testing.T) {
	assert.NotNil(t, log.FromCtx(context.Background()))
}
