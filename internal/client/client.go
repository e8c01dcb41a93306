package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"grocery-planner/internal/core/grocery"
	"grocery-planner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// Client 購物清單服務的 HTTP 用戶端
type Client struct {
	client *resty.Client
}

// New 創建用戶端，每個請求都帶入使用者識別
func New(baseURL, userID string) *Client {
	c := resty.New().
		SetBaseURL(baseURL+"/api/v1").
		SetHeader("X-User-ID", userID).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{client: c}
}

// GroceryList 取得一週的購物清單；week 為空字串時由服務端決定
func (c *Client) GroceryList(ctx context.Context, week string) (*grocery.List, error) {
	req := c.client.R().SetContext(ctx)
	if week != "" {
		req.SetQueryParam("week", week)
	}

	resp, err := req.Get("/grocery-list")
	if err != nil {
		return nil, fmt.Errorf("failed to request grocery list: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		var apiErr common.ErrorResponse
		if err := common.ParseJSONBytes(resp.Body(), &apiErr); err == nil && apiErr.Code != "" {
			return nil, fmt.Errorf("grocery list request failed: %s (%s)", apiErr.Error, apiErr.Code)
		}
		return nil, fmt.Errorf("grocery list request failed: status %d", resp.StatusCode())
	}

	var list grocery.List
	if err := common.ParseJSONBytes(resp.Body(), &list); err != nil {
		return nil, fmt.Errorf("failed to parse grocery list: %w", err)
	}
	return &list, nil
}
