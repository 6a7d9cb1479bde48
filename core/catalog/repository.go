package catalog

import (
	"context"
	"io"
)

// Resource client contracts: one per backend resource, each a thin set of
// operations mapping to HTTP verbs against a fixed base path. Implementations
// live in storage/lmsapi.
type (
	UniversityClient interface {
		All(ctx context.Context) ([]University, error)
		Get(ctx context.Context, id int) (University, error)
		Create(ctx context.Context, data NewUniversity) (University, error)
		Update(ctx context.Context, id int, data UpdateUniversity) (University, error)
		Delete(ctx context.Context, id int) error
	}

	AdminClient interface {
		All(ctx context.Context) ([]Admin, error)
		Get(ctx context.Context, id int) (Admin, error)
		Create(ctx context.Context, data NewAdmin) (Admin, error)
		Update(ctx context.Context, id int, data UpdateAdmin) (Admin, error)
		Delete(ctx context.Context, id int) error
	}

	StudentClient interface {
		All(ctx context.Context) ([]Student, error)
		Get(ctx context.Context, id int) (Student, error)
		Create(ctx context.Context, data NewStudent) (Student, error)
		Update(ctx context.Context, id int, data UpdateStudent) (Student, error)
		Delete(ctx context.Context, id int) error
	}

	CourseClient interface {
		All(ctx context.Context) ([]Course, error)
		Get(ctx context.Context, id int) (Course, error)
		Create(ctx context.Context, data NewCourse) (Course, error)
		Update(ctx context.Context, id int, data UpdateCourse) (Course, error)
		Delete(ctx context.Context, id int) error
	}

	EnrollmentClient interface {
		All(ctx context.Context) ([]Enrollment, error)
		Create(ctx context.Context, data NewEnrollment) (Enrollment, error)
		Delete(ctx context.Context, id int) error
	}

	TopicClient interface {
		ByCourse(ctx context.Context, courseID int) ([]CourseTopic, error)
		Create(ctx context.Context, form TopicForm) (CourseTopic, error)
		Delete(ctx context.Context, id int) error
	}

	// FileClient uploads binary content and returns the storage URL to attach
	// to a topic's document or video slot.
	FileClient interface {
		Upload(ctx context.Context, filename string, content io.Reader) (string, error)
	}
)
