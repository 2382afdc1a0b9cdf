package questiongen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/studybuddy/internal/quiz"
)

// GeneratePath is the question service route.
const GeneratePath = "/api/generate-questions"

// Response is the body of a successful POST /api/generate-questions.
type Response struct {
	Questions []quiz.Question `json:"questions"`
}

// RemoteGenerator calls a running question service over HTTP.
type RemoteGenerator struct {
	endpoint string
	client   *http.Client
}

// NewRemote creates a RemoteGenerator for the service at baseURL, e.g.
// "http://localhost:5001". A nil client gets a 2 minute timeout.
func NewRemote(baseURL string, client *http.Client) *RemoteGenerator {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	return &RemoteGenerator{
		endpoint: strings.TrimRight(baseURL, "/") + GeneratePath,
		client:   client,
	}
}

// Generate posts req and returns the service's questions. A non-2xx status
// or an empty question list is a GenerationError.
func (r *RemoteGenerator) Generate(ctx context.Context, req Request) ([]quiz.Question, error) {
	body, err := json.Marshal(req.Defaults())
	if err != nil {
		return nil, &GenerationError{Stage: StageRequest, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &GenerationError{Stage: StageRequest, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, &GenerationError{Stage: StageRemote, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, &GenerationError{Stage: StageRemote, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GenerationError{Stage: StageRemote, Err: &StatusError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
		}}
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &GenerationError{Stage: StageParse, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(out.Questions) == 0 {
		return nil, &GenerationError{Stage: StageRemote, Err: ErrNoQuestions}
	}
	return out.Questions, nil
}

// errorMessage pulls "error" out of a JSON error body, falling back to the
// trimmed body text.
func errorMessage(raw []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &e) == nil && e.Error != "" {
		return e.Error
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
