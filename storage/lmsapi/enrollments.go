package lmsapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trezcool/lideo/core/catalog"
)

const enrollmentsPath = "/api/enrollments"

type EnrollmentClient struct {
	c *Client
}

var _ catalog.EnrollmentClient = (*EnrollmentClient)(nil)

func NewEnrollmentClient(c *Client) *EnrollmentClient {
	return &EnrollmentClient{c: c}
}

func (api *EnrollmentClient) All(ctx context.Context) ([]catalog.Enrollment, error) {
	var out []catalog.Enrollment
	err := api.c.do(ctx, http.MethodGet, enrollmentsPath, nil, &out)
	return out, err
}

func (api *EnrollmentClient) Create(ctx context.Context, data catalog.NewEnrollment) (catalog.Enrollment, error) {
	payload := struct {
		CourseID     int `json:"courseId"`
		StudentID    int `json:"studentId"`
		UniversityID int `json:"universityId"`
	}{data.CourseID, data.StudentID, data.UniversityID}

	var out catalog.Enrollment
	err := api.c.do(ctx, http.MethodPost, enrollmentsPath, payload, &out)
	return out, err
}

func (api *EnrollmentClient) Delete(ctx context.Context, id int) error {
	return api.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", enrollmentsPath, id), nil, nil)
}
