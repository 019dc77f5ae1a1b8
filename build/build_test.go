// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/txbench/ccsweep/executor"
	"github.com/txbench/ccsweep/executor/mocks"
	"github.com/txbench/ccsweep/recipe"
)

func newOrchestrator(r recipe.Recipe, ex executor.Executor) *Orchestrator {
	log, _ := test.NewNullLogger()
	return &Orchestrator{
		Recipe:    r,
		Executor:  ex,
		Log:       log,
		SourceDir: "/src",
		BuildDir:  "/src/build",
		LogDir:    "/src/build/log",
		CMake:     "cmake",
		Make:      "make",
		Jobs:      8,
	}
}

func isTool(name string) interface{} {
	return mock.MatchedBy(func(c executor.Command) bool { return c.Path == name })
}

func TestBuildDeduplicates(t *testing.T) {
	r := recipe.DefaultYCSB()
	ex := &mocks.Executor{}
	ex.On("Execute", mock.Anything, mock.Anything).Return(nil)

	es := r.Experiments()
	built, err := newOrchestrator(r, ex).Build(context.Background(), es)
	require.NoError(t, err)

	want := recipe.BuildConfigs(r, es)
	assert.Equal(t, want, built)
	assert.Len(t, built, 6)
	ex.AssertNumberOfCalls(t, "Execute", 2*len(want))

	// Calls alternate configure, compile and follow first-encounter order.
	for i, call := range ex.Calls {
		c := call.Arguments.Get(1).(executor.Command)
		b := want[i/2]
		if i%2 == 0 {
			assert.Equal(t, "cmake", c.Path)
			assert.Equal(t, "/src/build", c.Dir)
			assert.Equal(t, "/src", c.Args[0])
			assert.Contains(t, c.Args, "-DPAYLOAD_SIZE="+strconv.Itoa(b.Payload))
			assert.Empty(t, c.Output)
		} else {
			assert.Equal(t, "make", c.Path)
			assert.Equal(t, []string{"-j8"}, c.Args)
			assert.Equal(t, "/src/build/log/"+b.String()+".compile_log", c.Output)
		}
	}
}

func TestBuildTPCCCommands(t *testing.T) {
	r := recipe.DefaultTPCC()
	ex := &mocks.Executor{}
	ex.On("Execute", mock.Anything, mock.Anything).Return(nil)

	built, err := newOrchestrator(r, ex).Build(context.Background(), r.Experiments())
	require.NoError(t, err)
	assert.Len(t, built, 3)

	first := ex.Calls[0].Arguments.Get(1).(executor.Command)
	assert.Equal(t, []string{
		"/src",
		"-DLOG_LEVEL=0",
		"-DCMAKE_BUILD_TYPE=Release",
		"-DBENCHMARK=TPCC",
		"-DCC_ALG=SILO",
	}, first.Args)
	second := ex.Calls[1].Arguments.Get(1).(executor.Command)
	assert.Equal(t, "/src/build/log/silo.compile_log", second.Output)
}

func TestBuildStopsOnConfigureFailure(t *testing.T) {
	r := recipe.DefaultTPCC()
	exitErr := &executor.ExitError{ExitCode: 1, Err: errors.New("boom")}
	ex := &mocks.Executor{}
	ex.On("Execute", mock.Anything, isTool("cmake")).Return(exitErr)

	built, err := newOrchestrator(r, ex).Build(context.Background(), r.Experiments())
	require.Error(t, err)
	assert.Empty(t, built)
	ex.AssertNumberOfCalls(t, "Execute", 1)

	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, Configure, be.Stage)
	assert.Equal(t, recipe.BuildConfig{Protocol: "silo"}, be.Config)
	var ee *executor.ExitError
	assert.True(t, errors.As(err, &ee))
}

func TestBuildStopsOnCompileFailure(t *testing.T) {
	r := recipe.DefaultTPCC()
	ex := &mocks.Executor{}
	ex.On("Execute", mock.Anything, isTool("cmake")).Return(nil)
	ex.On("Execute", mock.Anything, isTool("make")).Return(nil).Once()
	ex.On("Execute", mock.Anything, isTool("make")).Return(&executor.ExitError{ExitCode: 2, Err: errors.New("exit status 2")})

	built, err := newOrchestrator(r, ex).Build(context.Background(), r.Experiments())
	require.Error(t, err)
	assert.Equal(t, []recipe.BuildConfig{{Protocol: "silo"}}, built)
	ex.AssertNumberOfCalls(t, "Execute", 4)

	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, Compile, be.Stage)
	assert.Equal(t, "nowait", be.Config.Protocol)
	assert.Contains(t, err.Error(), "nowait.compile_log")
}
