package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WorkflowClient implements Classifier against a Dify-style workflow API:
// a blocking POST to /workflows/run returning structured outputs.
type WorkflowClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	workflowID string
	user       string
}

// NewWorkflowClient creates a new workflow classification client.
func NewWorkflowClient(baseURL, apiKey, workflowID, user string) *WorkflowClient {
	return &WorkflowClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL:    baseURL,
		apiKey:     apiKey,
		workflowID: workflowID,
		user:       user,
	}
}

func (c *WorkflowClient) Name() string {
	return "workflow"
}

// Classify runs the classification workflow synchronously.
// Keywords are coerced to an empty list and the category defaults to "other"
// when the workflow omits or mistypes them; a missing summary is a failure.
func (c *WorkflowClient) Classify(ctx context.Context, contentType, originalContent string) (*Result, error) {
	reqBody := workflowRequest{
		WorkflowID:   c.workflowID,
		User:         c.user,
		ResponseMode: "blocking",
		Inputs: workflowInputs{
			ContentType:     contentType,
			OriginalContent: originalContent,
		},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/workflows/run"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("run workflow: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var apiResponse workflowResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("decode response: %w: %w", ErrUpstream, err)
	}

	return c.convertToResult(apiResponse), nil
}

func (c *WorkflowClient) convertToResult(resp workflowResponse) *Result {
	output := resp.Data.Outputs.Output

	result := &Result{
		Summary:  output.AISummarize,
		Keywords: output.AIKeyword,
		Category: output.AICategory,
	}
	if result.Keywords == nil {
		result.Keywords = []string{}
	}
	if result.Category == "" {
		result.Category = "other"
	}
	return result
}

// Workflow API request/response types

type workflowRequest struct {
	WorkflowID   string         `json:"workflow_id"`
	User         string         `json:"user"`
	ResponseMode string         `json:"response_mode"`
	Inputs       workflowInputs `json:"inputs"`
}

type workflowInputs struct {
	ContentType     string `json:"content_type"`
	OriginalContent string `json:"original_content"`
}

type workflowResponse struct {
	Data struct {
		Outputs struct {
			Output workflowOutput `json:"output"`
		} `json:"outputs"`
	} `json:"data"`
}

type workflowOutput struct {
	AISummarize string   `json:"ai_summarize"`
	AIKeyword   []string `json:"ai_keyword"`
	AICategory  string   `json:"ai_category"`
}
