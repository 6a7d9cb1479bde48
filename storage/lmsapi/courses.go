package lmsapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trezcool/lideo/core/catalog"
)

const coursesPath = "/api/courses"

type CourseClient struct {
	c *Client
}

var _ catalog.CourseClient = (*CourseClient)(nil)

func NewCourseClient(c *Client) *CourseClient {
	return &CourseClient{c: c}
}

func (api *CourseClient) All(ctx context.Context) ([]catalog.Course, error) {
	var out []catalog.Course
	err := api.c.do(ctx, http.MethodGet, coursesPath, nil, &out)
	return out, err
}

func (api *CourseClient) Get(ctx context.Context, id int) (catalog.Course, error) {
	var out catalog.Course
	err := api.c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", coursesPath, id), nil, &out)
	return out, err
}

func (api *CourseClient) Create(ctx context.Context, data catalog.NewCourse) (catalog.Course, error) {
	var out catalog.Course
	err := api.c.do(ctx, http.MethodPost, coursesPath, data, &out)
	return out, err
}

func (api *CourseClient) Update(ctx context.Context, id int, data catalog.UpdateCourse) (catalog.Course, error) {
	var out catalog.Course
	err := api.c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", coursesPath, id), data, &out)
	return out, err
}

func (api *CourseClient) Delete(ctx context.Context, id int) error {
	return api.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", coursesPath, id), nil, nil)
}
