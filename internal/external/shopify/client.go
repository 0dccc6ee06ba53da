package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/wonny/insight/pkg/config"
	"github.com/wonny/insight/pkg/httputil"
	"github.com/wonny/insight/pkg/logger"
)

const apiVersion = "2024-10"

// Client handles communication with the Shopify Admin GraphQL API.
// All Shopify calls go through this client.
type Client struct {
	httpClient  *httputil.Client
	logger      *logger.Logger
	endpoint    string
	accessToken string
	pageSize    int
	limiter     *rate.Limiter
}

// NewClient creates a new Shopify client
func NewClient(httpClient *httputil.Client, log *logger.Logger, cfg config.ShopifyConfig) *Client {
	shopURL := strings.TrimSuffix(cfg.ShopURL, "/")
	return &Client{
		httpClient:  httpClient,
		logger:      log,
		endpoint:    fmt.Sprintf("%s/admin/api/%s/graphql.json", shopURL, apiVersion),
		accessToken: cfg.AccessToken,
		pageSize:    cfg.PageSize,
		// Shopify standard plan allows 2 requests/second sustained
		limiter: rate.NewLimiter(rate.Limit(2), 4),
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// execute runs one GraphQL query and decodes the data payload into out
func (c *Client) execute(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait failed: %w", err)
	}

	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GraphQL request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	var envelope graphqlEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode GraphQL response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		return fmt.Errorf("GraphQL error: %s", envelope.Errors[0].Message)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode GraphQL data: %w", err)
	}
	return nil
}
