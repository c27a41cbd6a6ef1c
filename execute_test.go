package main

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/fs"
)

func testChecker(name, command string) *Checker {
	return &Checker{Name: name, Command: command}
}

func TestRunCheckerSuccess(t *testing.T) {
	failed, err := runChecker(testChecker("pass", "true {path}"), "foo.py", NewRegistry(), 0)
	require.NoError(t, err)
	assert.False(t, failed)
}

func TestRunCheckerFailure(t *testing.T) {
	failed, err := runChecker(testChecker("fail", "false {path}"), "foo.py", NewRegistry(), 0)
	require.NoError(t, err)
	assert.True(t, failed)
}

func TestRunCheckerMissingExecutable(t *testing.T) {
	_, err := runChecker(testChecker("missing", "definitely-not-a-real-checker {path}"), "foo.py", NewRegistry(), 0)
	require.Error(t, err)
}

func TestRunCheckerDeadline(t *testing.T) {
	start := time.Now()
	_, err := runChecker(testChecker("slow", "sleep 5"), "foo.py", NewRegistry(), 100*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadline exceeded")
	assert.True(t, time.Since(start) < 5*time.Second)
}

func TestRunCheckerDeadlineLeavesNoGoroutine(t *testing.T) {
	before := runtime.NumGoroutine()
	_, err := runChecker(testChecker("slow", "sleep 5"), "foo.py", NewRegistry(), 50*time.Millisecond)
	require.Error(t, err)

	// The Wait goroutine must finish once the process is killed
	// rather than blocking on the done channel forever.
	stop := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(stop) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before)
}

func TestRunChecksAllPass(t *testing.T) {
	checkers := []*Checker{
		testChecker("one", "true {path}"),
		testChecker("two", "true {path}"),
	}
	total := runChecks(checkers, []string{"a.py", "b.py"}, NewRegistry(), 0)
	assert.Equal(t, 0, total)
}

func TestRunChecksTotalAcrossFiles(t *testing.T) {
	dir := fs.NewDir(t, "checkpy",
		fs.WithFile("a.py", ""),
		fs.WithFile("b.py", ""),
		fs.WithFile("c.py", ""),
	)
	defer dir.Remove()

	checkers := []*Checker{
		testChecker("pass", "true {path}"),
		testChecker("fail", "false {path}"),
	}
	files := expandPaths([]string{dir.Path()})
	require.Len(t, files, 3)

	// One failing checker per file: failures accumulate across the
	// whole run, not just within the last file.
	assert.Equal(t, 3, runChecks(checkers, files, NewRegistry(), 0))
}

func TestRunChecksCountsBadCommands(t *testing.T) {
	checkers := []*Checker{testChecker("missing", "definitely-not-a-real-checker {path}")}
	assert.Equal(t, 1, runChecks(checkers, []string{"foo.py"}, NewRegistry(), 0))
}

func TestResult(t *testing.T) {
	assert.Equal(t, "SUCCESS", result(false))
	assert.Equal(t, "FAILED", result(true))
}
