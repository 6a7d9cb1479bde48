package echoportal

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lideo/core"
	"github.com/trezcool/lideo/core/catalog"
	"github.com/trezcool/lideo/core/identity"
)

type studentApi struct {
	logger       core.Logger
	universities catalog.UniversityClient
	courses      catalog.CourseClient
	enrollments  catalog.EnrollmentClient
}

func registerStudentAPI(g *echo.Group, deps ServerDeps) {
	api := studentApi{
		logger:       deps.Logger,
		universities: deps.Universities,
		courses:      deps.Courses,
		enrollments:  deps.Enrollments,
	}

	student := roleMiddleware(identity.RoleStudent)

	g.GET("/dashboard/student", api.dashboard, student)

	eg := g.Group("/enrollments", student)
	eg.POST("", api.enroll)
	eg.DELETE("/:id", api.unenroll)
}

type studentDashboard struct {
	University *catalog.University        `json:"university,omitempty"`
	MyCourses  collection[catalog.Course] `json:"myCourses"`
	Available  collection[catalog.Course] `json:"availableCourses"`
	Grades     []catalog.GradeEntry       `json:"grades"`
}

// dashboard joins the student's university courses and own enrollments into
// the my-courses / available / grades view models. The joins are recomputed
// from fresh fetches on every request; nothing is cached.
func (api *studentApi) dashboard(ctx echo.Context) error {
	ctxID := contextIdentity(ctx)
	rctx := ctx.Request().Context()

	var uni *catalog.University
	var uniErr error
	var courses collection[catalog.Course]
	var enrollments collection[catalog.Enrollment]

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		u, err := api.universities.Get(rctx, ctxID.UniversityID)
		if err != nil {
			uniErr = err
			return
		}
		uni = &u
	}()
	go func() {
		defer wg.Done()
		courses = fetchCollection(rctx, api.logger, "courses", api.courses.All)
	}()
	go func() {
		defer wg.Done()
		enrollments = fetchCollection(rctx, api.logger, "enrollments", api.enrollments.All)
	}()
	wg.Wait()

	if uniErr != nil {
		api.logger.Error("fetching university", uniErr, *ctxID)
	}

	resp := studentDashboard{
		University: uni,
		MyCourses:  collection[catalog.Course]{Items: []catalog.Course{}, Error: courses.Error},
		Available:  collection[catalog.Course]{Items: []catalog.Course{}, Error: courses.Error},
		Grades:     []catalog.GradeEntry{},
	}
	if !courses.ok() {
		return ctx.JSON(http.StatusOK, resp)
	}
	if !enrollments.ok() {
		resp.MyCourses.Error = enrollments.Error
		resp.Available.Error = enrollments.Error
		return ctx.JSON(http.StatusOK, resp)
	}

	resp.MyCourses.Items = catalog.EnrolledCourses(enrollments.Items, courses.Items, ctxID.StudentID)
	resp.Available.Items = catalog.AvailableCourses(courses.Items, enrollments.Items, ctxID.UniversityID, ctxID.StudentID)
	resp.Grades = catalog.Grades(enrollments.Items, courses.Items, ctxID.StudentID)
	return ctx.JSON(http.StatusOK, resp)
}

// enroll registers the session student into a course. The student and
// university scope always come from the session, never from the request.
func (api *studentApi) enroll(ctx echo.Context) error {
	var data catalog.NewEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}
	ctxID := contextIdentity(ctx)
	data.StudentID = ctxID.StudentID
	data.UniversityID = ctxID.UniversityID
	if err := data.Validate(); err != nil {
		return err
	}
	if _, err := api.enrollments.Create(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "creating enrollment")
	}
	return api.enrollmentList(ctx, http.StatusCreated)
}

func (api *studentApi) unenroll(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.checkEnrollmentScope(ctx, id); err != nil {
		return err
	}
	if err = api.enrollments.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting enrollment")
	}
	return api.enrollmentList(ctx, http.StatusOK)
}

// enrollmentList re-fetches the student's own enrollments after a mutation.
func (api *studentApi) enrollmentList(ctx echo.Context, code int) error {
	enrollments, err := api.enrollments.All(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "fetching enrollments")
	}
	return ctx.JSON(code, catalog.EnrollmentsByStudent(enrollments, contextIdentity(ctx).StudentID))
}

// checkEnrollmentScope hides other students' enrollments behind a 404.
func (api *studentApi) checkEnrollmentScope(ctx echo.Context, id int) error {
	enrollments, err := api.enrollments.All(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "fetching enrollments")
	}
	for _, e := range enrollments {
		if e.ID == id {
			if e.StudentID != contextIdentity(ctx).StudentID {
				return errHttpNotFound
			}
			return nil
		}
	}
	return errHttpNotFound
}
