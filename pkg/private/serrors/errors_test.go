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

package serrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crossrelay/crossrelay/pkg/private/serrors"
)

func TestWrapIsCause(t *testing.T) {
	cause := errors.New("cause")
	err := serrors.Wrap("failure", cause, "key", "value")
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "failure {key=value}: cause", err.Error())
}

func TestJoinSentinel(t *testing.T) {
	sentinel := errors.New("sentinel")
	cause := errors.New("cause")
	err := serrors.Join(sentinel, cause, "key", "value")
	assert.True(t, errors.Is(err, sentinel))
	assert.True(t, errors.Is(err, cause))
}

func TestJoinNil(t *testing.T) {
	assert.NoError(t, serrors.Join(nil, nil))
}

func TestNewIsSelf(t *testing.T) {
	err := serrors.New("some error", "key", "value")
	assert.True(t, errors.Is(err, err))
	other := serrors.New("some error", "key", "value")
	assert.False(t, errors.Is(err, other))
}

func TestListToError(t *testing.T) {
	var errs serrors.List
	assert.NoError(t, errs.ToError())
	errs = append(errs, errors.New("first"), errors.New("second"))
	assert.Equal(t, "[ first; second ]", errs.ToError().Error())
}
