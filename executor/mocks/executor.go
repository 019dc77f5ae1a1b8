// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/txbench/ccsweep/executor"
)

// Executor mock
type Executor struct {
	mock.Mock
}

// Execute provides a mock function with given fields: ctx, c
func (_m *Executor) Execute(ctx context.Context, c executor.Command) error {
	ret := _m.Called(ctx, c)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, executor.Command) error); ok {
		r0 = rf(ctx, c)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
