// Package script provides a scripted CommandRunner for driver tests.
package script

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Response is what a scripted command returns. OnRun fires before the
// response is returned, with the working directory the command was given.
type Response struct {
	Stdout string
	Stderr string
	Code   int32
	Err    error
	OnRun  func(dir string) error
}

// Runner replays canned responses keyed by "name firstArg" ("name" when the
// command has no arguments). It records every call and the last environment.
type Runner struct {
	Replies map[string]Response

	mu      sync.Mutex
	Calls   []string
	LastEnv []string
}

func (r *Runner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, int32, error) {
	return r.RunIn(ctx, "", nil, name, args...)
}

func (r *Runner) RunIn(_ context.Context, dir string, env []string, name string, args ...string) ([]byte, []byte, int32, error) {
	key := name
	if len(args) > 0 {
		key += " " + args[0]
	}

	r.mu.Lock()
	r.Calls = append(r.Calls, strings.Join(append([]string{name}, args...), " "))
	r.LastEnv = env
	r.mu.Unlock()

	resp, ok := r.Replies[key]
	if !ok {
		return nil, nil, 1, fmt.Errorf("script: unexpected command %q", key)
	}
	if resp.OnRun != nil {
		if err := resp.OnRun(dir); err != nil {
			return nil, nil, 1, err
		}
	}
	return []byte(resp.Stdout), []byte(resp.Stderr), resp.Code, resp.Err
}

// Called reports whether any recorded call starts with prefix.
func (r *Runner) Called(prefix string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.Calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}
