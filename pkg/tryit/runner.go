package tryit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dochub-io/dochub/pkg/apidocs"
	"github.com/dochub-io/dochub/pkg/snippets"
)

// State is the per-selection lifecycle of a live request.
type State string

const (
	// StateIdle shows static documentation and an enabled Run control.
	StateIdle State = "idle"
	// StateSending covers the window between invoking Run and settling.
	StateSending State = "sending"
	// StateSettled retains the last outcome until the next Run.
	StateSettled State = "settled"
)

// Result is the settled outcome of one live request. A non-2xx status is
// still a normal result; only transport and response-parse failures
// produce the error pseudo-body.
type Result struct {
	StatusCode int   `json:"status"`
	ElapsedMS  int64 `json:"elapsed_ms"`
	Body       any   `json:"body"`
}

// errorBody is the pseudo-response stored when the request could not be
// transported or its body could not be decoded as JSON.
func errorBody(msg string) map[string]any {
	return map[string]any{"error": msg}
}

// Do issues one live request for an endpoint against the given
// environment and returns the settled result. It never returns an error:
// transport failures settle with StatusCode 0 and an error pseudo-body,
// and a non-JSON response body settles with the real status and an error
// pseudo-body.
//
// The body draft is sent as literal text, not revalidated, and only when
// the method can carry a body; GET never sends one.
func Do(ctx context.Context, client *http.Client, e apidocs.Endpoint, env snippets.Env, bodyDraft string) Result {
	if client == nil {
		client = http.DefaultClient
	}

	var body io.Reader
	if e.SendsBody() && bodyDraft != "" {
		body = strings.NewReader(bodyDraft)
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, e.Method, env.BaseURL+e.Path, body)
	if err != nil {
		return Result{Body: errorBody(err.Error()), ElapsedMS: time.Since(start).Milliseconds()}
	}
	req.Header = e.RequestHeader(env.APIKey)

	resp, err := client.Do(req)
	if err != nil {
		return Result{Body: errorBody(err.Error()), ElapsedMS: time.Since(start).Milliseconds()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return Result{StatusCode: resp.StatusCode, ElapsedMS: elapsed, Body: errorBody(err.Error())}
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Result{StatusCode: resp.StatusCode, ElapsedMS: elapsed, Body: errorBody(err.Error())}
	}

	return Result{StatusCode: resp.StatusCode, ElapsedMS: elapsed, Body: parsed}
}

// Runner drives live requests for one viewer session: it keeps per-path
// results, the bounded history, and the Run-control state. It is not
// safe for concurrent use; double-submission is prevented by the caller
// disabling the trigger while Sending.
type Runner struct {
	client  *http.Client
	results map[string]Result
	history History
	state   State
}

// NewRunner returns a runner using the given client, or
// http.DefaultClient when nil. No timeout is applied beyond the
// client's own.
func NewRunner(client *http.Client) *Runner {
	if client == nil {
		client = http.DefaultClient
	}
	return &Runner{
		client:  client,
		results: make(map[string]Result),
		state:   StateIdle,
	}
}

// Run issues one live request, stores the result under the endpoint's
// path, and records a history entry. Every invocation settles, including
// transport failures.
func (r *Runner) Run(ctx context.Context, e apidocs.Endpoint, env snippets.Env, bodyDraft string) Result {
	r.state = StateSending

	result := Do(ctx, r.client, e, env, bodyDraft)

	r.results[e.Path] = result
	r.history.Add(HistoryEntry{
		Path:       e.Path,
		Method:     e.Method,
		Timestamp:  time.Now().UTC(),
		StatusCode: result.StatusCode,
		ElapsedMS:  result.ElapsedMS,
	})
	r.state = StateSettled

	return result
}

// State returns the runner's current lifecycle state.
func (r *Runner) State() State {
	return r.state
}

// Result returns the last stored result for an endpoint path.
func (r *Runner) Result(path string) (Result, bool) {
	res, ok := r.results[path]
	return res, ok
}

// ClearResult drops the stored result for an endpoint path, used when the
// user navigates to a different endpoint.
func (r *Runner) ClearResult(path string) {
	delete(r.results, path)
	r.state = StateIdle
}

// History returns the bounded request history, most recent first.
func (r *Runner) History() []HistoryEntry {
	return r.history.Entries()
}
