package lmsapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trezcool/lideo/core/catalog"
)

const topicsPath = "/api/topics"

type TopicClient struct {
	c *Client
}

var _ catalog.TopicClient = (*TopicClient)(nil)

func NewTopicClient(c *Client) *TopicClient {
	return &TopicClient{c: c}
}

func (api *TopicClient) ByCourse(ctx context.Context, courseID int) ([]catalog.CourseTopic, error) {
	var out []catalog.CourseTopic
	err := api.c.do(ctx, http.MethodGet, fmt.Sprintf("%s/by-course/%d", topicsPath, courseID), nil, &out)
	return out, err
}

func (api *TopicClient) Create(ctx context.Context, data catalog.TopicForm) (catalog.CourseTopic, error) {
	var out catalog.CourseTopic
	err := api.c.do(ctx, http.MethodPost, topicsPath, data, &out)
	return out, err
}

func (api *TopicClient) Delete(ctx context.Context, id int) error {
	return api.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", topicsPath, id), nil, nil)
}
