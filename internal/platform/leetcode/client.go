package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"leetboard/internal/common"
	"leetboard/internal/domain/model"
)

const DefaultGraphQLURL = "https://leetcode.com/graphql"

const randomQuestionQuery = `
query randomQuestion($categorySlug: String, $filters: QuestionListFilterInput) {
  randomQuestion(categorySlug: $categorySlug, filters: $filters) {
    questionId
    title
    titleSlug
    difficulty
    likes
    dislikes
    isPaidOnly
    categoryTitle
    content
  }
}`

const recentAcSubmissionsQuery = `
query recentAcSubmissions($username: String!, $limit: Int!) {
  recentAcSubmissionList(username: $username, limit: $limit) {
    titleSlug
    timestamp
  }
}`

// Client issues queries against LeetCode's GraphQL endpoint.
type Client struct {
	httpClient *http.Client
	url        string
}

func NewClient(httpClient *http.Client, url string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if url == "" {
		url = DefaultGraphQLURL
	}
	return &Client{httpClient: httpClient, url: url}
}

type graphqlRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// post sends one GraphQL operation and returns the raw data payload.
// A non-200 status is surfaced as an UpstreamError so handlers can pass the
// status through; an undecodable body is a hard error, never a retry.
func (c *Client) post(ctx context.Context, operation, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(graphqlRequest{
		OperationName: operation,
		Query:         query,
		Variables:     variables,
	})
	if err != nil {
		return nil, fmt.Errorf("leetcode: marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("leetcode: build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", "https://leetcode.com")
	// Never serve a cached copy; randomQuestion must be fresh per call.
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leetcode: %s: %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("leetcode: read %s response: %w", operation, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &common.UpstreamError{Status: resp.StatusCode, Message: "leetcode " + operation + " failed"}
	}

	var payload graphqlResponse
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, fmt.Errorf("leetcode: decode %s response: %w", operation, err)
	}
	if len(payload.Errors) > 0 {
		return nil, fmt.Errorf("leetcode: %s returned error: %s", operation, payload.Errors[0].Message)
	}
	if payload.Data == nil {
		return nil, fmt.Errorf("leetcode: %s returned no data", operation)
	}

	return payload.Data, nil
}

// RandomQuestion fetches one random question. Eligibility filtering is the
// caller's concern; this only guarantees the response shape.
func (c *Client) RandomQuestion(ctx context.Context) (*model.Question, error) {
	data, err := c.post(ctx, "randomQuestion", randomQuestionQuery, map[string]any{
		"categorySlug": "",
		"filters":      map[string]any{},
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		RandomQuestion *model.Question `json:"randomQuestion"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("leetcode: decode randomQuestion data: %w", err)
	}
	if result.RandomQuestion == nil || result.RandomQuestion.TitleSlug == "" {
		return nil, fmt.Errorf("leetcode: randomQuestion data has unexpected shape")
	}

	return result.RandomQuestion, nil
}

// RecentAcceptedSubmissions fetches a user's most recent accepted
// submissions, bounded by limit. Timestamps arrive as decimal strings.
func (c *Client) RecentAcceptedSubmissions(ctx context.Context, username string, limit int) ([]model.Submission, error) {
	data, err := c.post(ctx, "recentAcSubmissions", recentAcSubmissionsQuery, map[string]any{
		"username": username,
		"limit":    limit,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		RecentAcSubmissionList []struct {
			TitleSlug string `json:"titleSlug"`
			Timestamp string `json:"timestamp"`
		} `json:"recentAcSubmissionList"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("leetcode: decode recentAcSubmissions data: %w", err)
	}
	if result.RecentAcSubmissionList == nil {
		return nil, fmt.Errorf("leetcode: no submission list for %q", username)
	}

	submissions := make([]model.Submission, 0, len(result.RecentAcSubmissionList))
	for _, s := range result.RecentAcSubmissionList {
		ts, err := strconv.ParseInt(s.Timestamp, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("leetcode: parse submission timestamp %q: %w", s.Timestamp, err)
		}
		submissions = append(submissions, model.Submission{
			TitleSlug:   s.TitleSlug,
			SubmittedAt: time.Unix(ts, 0).UTC(),
		})
	}

	return submissions, nil
}
