// Package practicum implements the homework status API client.
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// ClientConfig contains configuration for the status API client.
type ClientConfig struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// Client fetches homework statuses changed since a cursor.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	logger     logrus.FieldLogger
}

func NewClient(config ClientConfig, logger logrus.FieldLogger) *Client {
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
	}
}

// GetAPIAnswer requests statuses with from_date set to the cursor.
//
// A non-200 status is logged but not returned: the body is still decoded, so
// an HTML error page comes back as a DecodeError.
func (c *Client) GetAPIAnswer(ctx context.Context, fromDate homework.Cursor) (*homework.Response, error) {
	req, err := c.newRequest(ctx, fromDate)
	if err != nil {
		c.logger.WithError(err).Error("build homework API request")
		return nil, &homework.TransportError{Op: "fetch", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Error("homework API request failed")
		return nil, &homework.TransportError{Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.WithError(err).Error("read homework API response")
		return nil, &homework.TransportError{Op: "fetch", Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"from_date":   fromDate,
		}).Error("unexpected status from homework API")
	}

	var result homework.Response
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.WithError(err).WithField("status_code", resp.StatusCode).Error("decode homework API response")
		return nil, &homework.DecodeError{Err: err}
	}
	return &result, nil
}

func (c *Client) newRequest(ctx context.Context, fromDate homework.Cursor) (*http.Request, error) {
	u, err := url.Parse(c.config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(fromDate.Int64(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.config.Token)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
