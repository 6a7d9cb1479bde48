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

type universityAdminApi struct {
	logger       core.Logger
	universities catalog.UniversityClient
	courses      catalog.CourseClient
	students     catalog.StudentClient
	enrollments  catalog.EnrollmentClient
}

func registerUniversityAdminAPI(g *echo.Group, deps ServerDeps) {
	api := universityAdminApi{
		logger:       deps.Logger,
		universities: deps.Universities,
		courses:      deps.Courses,
		students:     deps.Students,
		enrollments:  deps.Enrollments,
	}

	uniAdmin := roleMiddleware(identity.RoleUniversityAdmin)

	g.GET("/dashboard/university-admin", api.dashboard, uniAdmin)

	cg := g.Group("/courses", uniAdmin)
	cg.GET("", api.queryCourses)
	cg.POST("", api.createCourse)
	cg.PUT("/:id", api.updateCourse)
	cg.DELETE("/:id", api.destroyCourse)
}

type universityAdminDashboard struct {
	University  *catalog.University             `json:"university,omitempty"`
	Courses     collection[catalog.Course]      `json:"courses"`
	Students    collection[catalog.Student]     `json:"students"`
	Enrollments collection[catalog.Enrollment]  `json:"enrollments"`
}

// dashboard aggregates the admin's university, its courses, students and
// enrollments. Collections are fetched concurrently and fail independently;
// the backend collections are narrowed to the admin's university locally.
func (api *universityAdminApi) dashboard(ctx echo.Context) error {
	ctxID := contextIdentity(ctx)
	rctx := ctx.Request().Context()

	var resp universityAdminDashboard
	var uniErr error
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		uni, err := api.universities.Get(rctx, ctxID.UniversityID)
		if err != nil {
			uniErr = err
			return
		}
		resp.University = &uni
	}()
	go func() {
		defer wg.Done()
		resp.Courses = fetchCollection(rctx, api.logger, "courses", api.courses.All)
	}()
	go func() {
		defer wg.Done()
		resp.Students = fetchCollection(rctx, api.logger, "students", api.students.All)
	}()
	go func() {
		defer wg.Done()
		resp.Enrollments = fetchCollection(rctx, api.logger, "enrollments", api.enrollments.All)
	}()
	wg.Wait()

	if uniErr != nil {
		api.logger.Error("fetching university", uniErr, *ctxID)
	}
	if resp.Courses.ok() {
		resp.Courses.Items = catalog.CoursesByUniversity(resp.Courses.Items, ctxID.UniversityID)
	}
	if resp.Students.ok() {
		resp.Students.Items = catalog.StudentsByUniversity(resp.Students.Items, ctxID.UniversityID)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// Courses

func (api *universityAdminApi) queryCourses(ctx echo.Context) error {
	return api.courseList(ctx, http.StatusOK)
}

func (api *universityAdminApi) createCourse(ctx echo.Context) error {
	var data catalog.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	// courses are always created in the admin's own university
	data.UniversityID = contextIdentity(ctx).UniversityID
	if err := data.Validate(); err != nil {
		return err
	}
	if _, err := api.courses.Create(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "creating course")
	}
	return api.courseList(ctx, http.StatusCreated)
}

func (api *universityAdminApi) updateCourse(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.checkCourseScope(ctx, id); err != nil {
		return err
	}
	var data catalog.UpdateCourse
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err = data.Validate(); err != nil {
		return err
	}
	if _, err = api.courses.Update(ctx.Request().Context(), id, data); err != nil {
		return errors.Wrap(err, "updating course")
	}
	return api.courseList(ctx, http.StatusOK)
}

func (api *universityAdminApi) destroyCourse(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.checkCourseScope(ctx, id); err != nil {
		return err
	}
	if err = api.courses.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return api.courseList(ctx, http.StatusOK)
}

// courseList re-fetches the course collection narrowed to the admin's
// university.
func (api *universityAdminApi) courseList(ctx echo.Context, code int) error {
	courses, err := api.courses.All(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "fetching courses")
	}
	courses = catalog.CoursesByUniversity(courses, contextIdentity(ctx).UniversityID)
	return ctx.JSON(code, courses)
}

// checkCourseScope hides courses outside the admin's university behind a 404.
func (api *universityAdminApi) checkCourseScope(ctx echo.Context, id int) error {
	course, err := api.courses.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding course by ID")
	}
	if course.UniversityID != contextIdentity(ctx).UniversityID {
		return errHttpNotFound
	}
	return nil
}
