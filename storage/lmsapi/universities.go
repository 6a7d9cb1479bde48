package lmsapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trezcool/lideo/core/catalog"
)

const universitiesPath = "/api/universities"

type UniversityClient struct {
	c *Client
}

var _ catalog.UniversityClient = (*UniversityClient)(nil)

func NewUniversityClient(c *Client) *UniversityClient {
	return &UniversityClient{c: c}
}

func (api *UniversityClient) All(ctx context.Context) ([]catalog.University, error) {
	var out []catalog.University
	err := api.c.do(ctx, http.MethodGet, universitiesPath, nil, &out)
	return out, err
}

func (api *UniversityClient) Get(ctx context.Context, id int) (catalog.University, error) {
	var out catalog.University
	err := api.c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", universitiesPath, id), nil, &out)
	return out, err
}

func (api *UniversityClient) Create(ctx context.Context, data catalog.NewUniversity) (catalog.University, error) {
	var out catalog.University
	err := api.c.do(ctx, http.MethodPost, universitiesPath, data, &out)
	return out, err
}

func (api *UniversityClient) Update(ctx context.Context, id int, data catalog.UpdateUniversity) (catalog.University, error) {
	var out catalog.University
	err := api.c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", universitiesPath, id), data, &out)
	return out, err
}

func (api *UniversityClient) Delete(ctx context.Context, id int) error {
	return api.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", universitiesPath, id), nil, nil)
}
