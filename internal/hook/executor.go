package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"time"
)

// Executor runs hooks with a per-invocation timeout.
type Executor struct {
	timeoutMs int
}

// NewExecutor creates an Executor with the given timeout in milliseconds.
func NewExecutor(timeoutMs int) *Executor {
	return &Executor{
		timeoutMs: timeoutMs,
	}
}

// Execute runs one hook: the request is marshaled to JSON and written
// to the hook's stdin, and its stdout is parsed as a Response.
func (e *Executor) Execute(h *Hook, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(e.timeoutMs)*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(ctx, h.Executable)
	cmd.Dir = h.Path

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	cmd.Stdin = bytes.NewReader(reqJSON)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("hook execution timeout after %dms", e.timeoutMs)
	}

	if err != nil {
		stderrStr := stderr.String()
		if stderrStr != "" {
			return nil, fmt.Errorf("hook execution failed: %w, stderr: %s", err, stderrStr)
		}
		return nil, fmt.Errorf("hook execution failed: %w", err)
	}

	var response Response
	if err := json.Unmarshal(stdout.Bytes(), &response); err != nil {
		return nil, fmt.Errorf("failed to parse hook response: %w, stdout: %s", err, stdout.String())
	}

	return &response, nil
}

// Dispatch fans one event out to every subscribed hook. Hook failures
// are logged and never propagate into the practice loop.
func (e *Executor) Dispatch(manager *Manager, req *Request) {
	for _, h := range manager.List() {
		if !h.Subscribed(req.Event) {
			continue
		}
		resp, err := e.Execute(h, req)
		if err != nil {
			log.Printf("hook %s: %v", h.Manifest.Name, err)
			continue
		}
		if !resp.Success {
			log.Printf("hook %s reported failure: %s", h.Manifest.Name, resp.Error)
		}
	}
}
