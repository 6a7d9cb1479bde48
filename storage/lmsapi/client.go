// Package lmsapi implements the portal's resource-client contracts over the
// LMS backend's REST API (JSON bodies, multipart uploads).
package lmsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/trezcool/lideo/core"
	"github.com/trezcool/lideo/core/catalog"
)

var ErrPermissionDenied = errors.New("permission denied")

// Client is the shared HTTP base for all resource clients.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger core.Logger
}

func NewClient(conf *core.Config, logger core.Logger) (*Client, error) {
	base, err := url.Parse(conf.API.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing API base URL %q", conf.API.BaseURL)
	}
	return &Client{
		base:   base,
		http:   &http.Client{Timeout: conf.API.Timeout},
		logger: logger,
	}, nil
}

type apiError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// do issues one backend call and decodes the JSON response into out (if any).
// Backend validation failures come back as core.ValidationError so the error
// handler can surface field messages unchanged.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "serializing request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), body)
	if err != nil {
		return errors.Wrapf(err, "creating request %s %s", method, path)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("LMS API call failed", err, map[string]interface{}{"method": method, "path": path})
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		if out == nil {
			return nil
		}
		return errors.Wrapf(json.NewDecoder(resp.Body).Decode(out), "decoding %s %s response", method, path)
	case resp.StatusCode == http.StatusNotFound:
		return catalog.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrPermissionDenied
	case resp.StatusCode == http.StatusBadRequest:
		var apiErr apiError
		if err = json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return core.NewValidationError(errors.New("invalid request"))
		}
		flds := make([]core.FieldError, 0, len(apiErr.Fields))
		for fld, msg := range apiErr.Fields {
			flds = append(flds, core.FieldError{Field: fld, Error: msg})
		}
		return core.NewValidationError(errors.New(apiErr.Error), flds...)
	default:
		c.logger.Error("LMS API returned an error status", map[string]interface{}{
			"method": method, "path": path, "status": resp.StatusCode,
		})
		return errors.Errorf("%s %s: LMS API returned status %d", method, path, resp.StatusCode)
	}
}
