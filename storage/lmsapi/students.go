package lmsapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trezcool/lideo/core/catalog"
)

const studentsPath = "/api/students"

type StudentClient struct {
	c *Client
}

var _ catalog.StudentClient = (*StudentClient)(nil)

func NewStudentClient(c *Client) *StudentClient {
	return &StudentClient{c: c}
}

func (api *StudentClient) All(ctx context.Context) ([]catalog.Student, error) {
	var out []catalog.Student
	err := api.c.do(ctx, http.MethodGet, studentsPath, nil, &out)
	return out, err
}

func (api *StudentClient) Get(ctx context.Context, id int) (catalog.Student, error) {
	var out catalog.Student
	err := api.c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", studentsPath, id), nil, &out)
	return out, err
}

func (api *StudentClient) Create(ctx context.Context, data catalog.NewStudent) (catalog.Student, error) {
	var out catalog.Student
	err := api.c.do(ctx, http.MethodPost, studentsPath, data, &out)
	return out, err
}

func (api *StudentClient) Update(ctx context.Context, id int, data catalog.UpdateStudent) (catalog.Student, error) {
	var out catalog.Student
	err := api.c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", studentsPath, id), data, &out)
	return out, err
}

func (api *StudentClient) Delete(ctx context.Context, id int) error {
	return api.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", studentsPath, id), nil, nil)
}
