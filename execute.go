package main

import (
	"fmt"
	"os"
	"os/exec"
	"time"
)

// runChecks runs every checker over every file, in collection order,
// and returns the total number of failed invocations across the whole
// run. The caller propagates the total as the process exit status.
func runChecks(checkers []*Checker, files []string, registry *Registry, deadline time.Duration) int {
	failures := 0
	for _, file := range files {
		for _, checker := range checkers {
			failed, err := runChecker(checker, file, registry, deadline)
			if err != nil {
				warning("%s on %s: %s", checker.Name, file, err)
				failures++
				continue
			}
			if failed {
				failures++
			}
		}
	}
	return failures
}

// runChecker executes a single checker against a single file. A
// non-zero exit from the tool reports failure; any other execution
// problem is returned as an error.
func runChecker(checker *Checker, file string, registry *Registry, deadline time.Duration) (bool, error) {
	command := checker.interpolatedCommand(file, registry)
	fmt.Printf("starting %s, as %s\n", checker.Name, command)

	exe, args, err := parseCommand(command)
	if err != nil {
		return false, err
	}
	debug("executing %s %q", exe, args)

	start := time.Now()
	cmd := exec.Command(exe, args...) // nolint: gas
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err = cmd.Start(); err != nil {
		return false, fmt.Errorf("failed to execute checker %s: %s", checker.Name, err)
	}

	// Buffered so the Wait goroutine can finish even when the
	// deadline branch below returns without receiving.
	done := make(chan bool, 1)
	go func() {
		err = cmd.Wait()
		done <- true
	}()

	// A zero deadline leaves timeout nil, which blocks forever.
	var timeout <-chan time.Time
	if deadline > 0 {
		timeout = time.After(deadline)
	}

	// Wait for the process to complete or the deadline to expire.
	select {
	case <-done:

	case <-timeout:
		if kerr := cmd.Process.Kill(); kerr != nil {
			warning("failed to kill %s: %s", checker.Name, kerr)
		}
		return false, fmt.Errorf("deadline exceeded by checker %s on %s (try increasing --deadline)",
			checker.Name, file)
	}

	failed := false
	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return false, err
		}
		debug("%s returned %s", command, err)
		failed = true
	}
	fmt.Printf("%s: %s\n", checker.Name, result(failed))
	debug("%s took %s", checker.Name, time.Since(start))
	return failed, nil
}

func result(failed bool) string {
	if failed {
		return "FAILED"
	}
	return "SUCCESS"
}
