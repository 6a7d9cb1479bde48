package lmsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/lideo/core/catalog"
)

const uploadPath = "/api/files/upload"

type FileClient struct {
	c *Client
}

var _ catalog.FileClient = (*FileClient)(nil)

func NewFileClient(c *Client) *FileClient {
	return &FileClient{c: c}
}

// Upload pushes one file to the backend and returns the URL it is served from.
// The backend replies with either a bare URL string or a JSON-quoted one.
func (api *FileClient) Upload(ctx context.Context, filename string, src io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", errors.Wrap(err, "creating multipart form")
	}
	if _, err = io.Copy(part, src); err != nil {
		return "", errors.Wrapf(err, "reading %s", filename)
	}
	if err = mw.Close(); err != nil {
		return "", errors.Wrap(err, "finalizing multipart form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, api.c.base.JoinPath(uploadPath).String(), &buf)
	if err != nil {
		return "", errors.Wrap(err, "creating upload request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := api.c.http.Do(req)
	if err != nil {
		api.c.logger.Error("file upload failed", err, map[string]interface{}{"filename": filename})
		return "", errors.Wrapf(err, "uploading %s", filename)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", errors.Errorf("uploading %s: LMS API returned status %d", filename, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading upload response")
	}
	fileURL := strings.TrimSpace(string(data))
	if strings.HasPrefix(fileURL, `"`) {
		var decoded string
		if err = json.Unmarshal(data, &decoded); err == nil {
			fileURL = decoded
		}
	}
	return fileURL, nil
}
