package lmsapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trezcool/lideo/core/catalog"
)

const adminsPath = "/api/admins"

type AdminClient struct {
	c *Client
}

var _ catalog.AdminClient = (*AdminClient)(nil)

func NewAdminClient(c *Client) *AdminClient {
	return &AdminClient{c: c}
}

func (api *AdminClient) All(ctx context.Context) ([]catalog.Admin, error) {
	var out []catalog.Admin
	err := api.c.do(ctx, http.MethodGet, adminsPath, nil, &out)
	return out, err
}

func (api *AdminClient) Get(ctx context.Context, id int) (catalog.Admin, error) {
	var out catalog.Admin
	err := api.c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", adminsPath, id), nil, &out)
	return out, err
}

func (api *AdminClient) Create(ctx context.Context, data catalog.NewAdmin) (catalog.Admin, error) {
	var out catalog.Admin
	err := api.c.do(ctx, http.MethodPost, adminsPath, data, &out)
	return out, err
}

func (api *AdminClient) Update(ctx context.Context, id int, data catalog.UpdateAdmin) (catalog.Admin, error) {
	var out catalog.Admin
	err := api.c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", adminsPath, id), data, &out)
	return out, err
}

func (api *AdminClient) Delete(ctx context.Context, id int) error {
	return api.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", adminsPath, id), nil, nil)
}
