package echoportal

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lideo/core"
	"github.com/trezcool/lideo/core/catalog"
	"github.com/trezcool/lideo/core/identity"
)

type superAdminApi struct {
	logger       core.Logger
	universities catalog.UniversityClient
	admins       catalog.AdminClient
	students     catalog.StudentClient
	courses      catalog.CourseClient
}

func registerSuperAdminAPI(g *echo.Group, deps ServerDeps) {
	api := superAdminApi{
		logger:       deps.Logger,
		universities: deps.Universities,
		admins:       deps.Admins,
		students:     deps.Students,
		courses:      deps.Courses,
	}

	super := roleMiddleware(identity.RoleSuperAdmin)

	g.GET("/dashboard/super-admin", api.dashboard, super)

	ug := g.Group("/universities", super)
	ug.GET("", api.queryUniversities)
	ug.POST("", api.createUniversity)
	ug.PUT("/:id", api.updateUniversity)
	ug.DELETE("/:id", api.destroyUniversity)

	ag := g.Group("/admins", super)
	ag.GET("", api.queryAdmins)
	ag.POST("", api.createAdmin)
	ag.PUT("/:id", api.updateAdmin)
	ag.DELETE("/:id", api.destroyAdmin)

	// students are managed by both the super-admin and university-admin
	// portals; university admins only see their own university.
	sg := g.Group("/students", roleMiddleware(identity.RoleSuperAdmin, identity.RoleUniversityAdmin))
	sg.GET("", api.queryStudents)
	sg.POST("", api.createStudent)
	sg.PUT("/:id", api.updateStudent)
	sg.DELETE("/:id", api.destroyStudent)
}

type superAdminDashboard struct {
	Stats        catalog.OverviewStats          `json:"stats"`
	Universities collection[catalog.University] `json:"universities"`
	Admins       collection[catalog.Admin]      `json:"admins"`
	Students     collection[catalog.Student]    `json:"students"`
	Courses      collection[catalog.Course]     `json:"courses"`
}

// dashboard aggregates all platform collections. Each collection is fetched
// concurrently and fails independently; request cancellation aborts the lot.
func (api *superAdminApi) dashboard(ctx echo.Context) error {
	rctx := ctx.Request().Context()

	var resp superAdminDashboard
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		resp.Universities = fetchCollection(rctx, api.logger, "universities", api.universities.All)
	}()
	go func() {
		defer wg.Done()
		resp.Admins = fetchCollection(rctx, api.logger, "admins", api.admins.All)
	}()
	go func() {
		defer wg.Done()
		resp.Students = fetchCollection(rctx, api.logger, "students", api.students.All)
	}()
	go func() {
		defer wg.Done()
		resp.Courses = fetchCollection(rctx, api.logger, "courses", api.courses.All)
	}()
	wg.Wait()

	resp.Stats = catalog.Overview(resp.Universities.Items, resp.Admins.Items, resp.Students.Items, resp.Courses.Items)
	return ctx.JSON(http.StatusOK, resp)
}

// Universities

func (api *superAdminApi) queryUniversities(ctx echo.Context) error {
	return api.universityList(ctx, http.StatusOK)
}

func (api *superAdminApi) createUniversity(ctx echo.Context) error {
	var data catalog.NewUniversity
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUniversity")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if _, err := api.universities.Create(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "creating university")
	}
	return api.universityList(ctx, http.StatusCreated)
}

func (api *superAdminApi) updateUniversity(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data catalog.UpdateUniversity
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUniversity")
	}
	if err = data.Validate(); err != nil {
		return err
	}
	if _, err = api.universities.Update(ctx.Request().Context(), id, data); err != nil {
		return errors.Wrap(err, "updating university")
	}
	return api.universityList(ctx, http.StatusOK)
}

func (api *superAdminApi) destroyUniversity(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.universities.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting university")
	}
	return api.universityList(ctx, http.StatusOK)
}

// universityList re-fetches the collection after every mutation so the caller
// always renders the backend's truth.
func (api *superAdminApi) universityList(ctx echo.Context, code int) error {
	unis, err := api.universities.All(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "fetching universities")
	}
	if unis == nil {
		unis = []catalog.University{}
	}
	return ctx.JSON(code, unis)
}

// Admins

func (api *superAdminApi) queryAdmins(ctx echo.Context) error {
	return api.adminList(ctx, http.StatusOK)
}

func (api *superAdminApi) createAdmin(ctx echo.Context) error {
	var data catalog.NewAdmin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAdmin")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if _, err := api.admins.Create(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "creating admin")
	}
	return api.adminList(ctx, http.StatusCreated)
}

func (api *superAdminApi) updateAdmin(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data catalog.UpdateAdmin
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAdmin")
	}
	if err = data.Validate(); err != nil {
		return err
	}
	if _, err = api.admins.Update(ctx.Request().Context(), id, data); err != nil {
		return errors.Wrap(err, "updating admin")
	}
	return api.adminList(ctx, http.StatusOK)
}

func (api *superAdminApi) destroyAdmin(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.admins.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting admin")
	}
	return api.adminList(ctx, http.StatusOK)
}

func (api *superAdminApi) adminList(ctx echo.Context, code int) error {
	admins, err := api.admins.All(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "fetching admins")
	}
	if admins == nil {
		admins = []catalog.Admin{}
	}
	return ctx.JSON(code, admins)
}

// Students

func (api *superAdminApi) queryStudents(ctx echo.Context) error {
	return api.studentList(ctx, http.StatusOK)
}

func (api *superAdminApi) createStudent(ctx echo.Context) error {
	var data catalog.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	// university admins can only register students into their own university
	if ctxID := contextIdentity(ctx); ctxID.IsUniversityAdmin() {
		data.UniversityID = ctxID.UniversityID
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if _, err := api.students.Create(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "creating student")
	}
	return api.studentList(ctx, http.StatusCreated)
}

func (api *superAdminApi) updateStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.checkStudentScope(ctx, id); err != nil {
		return err
	}
	var data catalog.UpdateStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err = data.Validate(); err != nil {
		return err
	}
	if _, err = api.students.Update(ctx.Request().Context(), id, data); err != nil {
		return errors.Wrap(err, "updating student")
	}
	return api.studentList(ctx, http.StatusOK)
}

func (api *superAdminApi) destroyStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.checkStudentScope(ctx, id); err != nil {
		return err
	}
	if err = api.students.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return api.studentList(ctx, http.StatusOK)
}

// studentList re-fetches the student collection, narrowed to the caller's
// university for university admins.
func (api *superAdminApi) studentList(ctx echo.Context, code int) error {
	students, err := api.students.All(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "fetching students")
	}
	if ctxID := contextIdentity(ctx); ctxID.IsUniversityAdmin() {
		students = catalog.StudentsByUniversity(students, ctxID.UniversityID)
	}
	if students == nil {
		students = []catalog.Student{}
	}
	return ctx.JSON(code, students)
}

// checkStudentScope hides students outside a university admin's own
// university behind a 404.
func (api *superAdminApi) checkStudentScope(ctx echo.Context, id int) error {
	ctxID := contextIdentity(ctx)
	if !ctxID.IsUniversityAdmin() {
		return nil
	}
	student, err := api.students.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding student by ID")
	}
	if student.UniversityID != ctxID.UniversityID {
		return errHttpNotFound
	}
	return nil
}

func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, errHttpNotFound
	}
	return id, nil
}
