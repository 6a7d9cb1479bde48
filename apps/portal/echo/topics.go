package echoportal

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lideo/core"
	"github.com/trezcool/lideo/core/catalog"
	"github.com/trezcool/lideo/core/identity"
)

type topicApi struct {
	logger core.Logger
	topics catalog.TopicClient
	files  catalog.FileClient
}

func registerTopicAPI(g *echo.Group, deps ServerDeps) {
	api := topicApi{
		logger: deps.Logger,
		topics: deps.Topics,
		files:  deps.Files,
	}

	staff := roleMiddleware(identity.RoleUniversityAdmin, identity.RoleSuperAdmin)

	g.GET("/courses/:id/topics", api.query, staff)

	tg := g.Group("/topics", staff)
	tg.POST("", api.create)
	tg.DELETE("/:id", api.destroy)
}

// query re-fetches the course's topics; the list is always served fresh and
// re-sorted locally.
func (api *topicApi) query(ctx echo.Context) error {
	courseID, err := pathID(ctx)
	if err != nil {
		return err
	}
	topics, err := api.topics.ByCourse(ctx.Request().Context(), courseID)
	if err != nil {
		return errors.Wrap(err, "fetching topics")
	}
	return ctx.JSON(http.StatusOK, newTopicsResponse(topics))
}

// create accepts the multipart topic form. Kind-dependent requiredness is
// checked before any upload or backend call; only a valid form touches the
// network.
func (api *topicApi) create(ctx echo.Context) error {
	form, err := bindTopicForm(ctx)
	if err != nil {
		return err
	}
	if err = form.Validate(); err != nil {
		return err
	}

	rctx := ctx.Request().Context()

	if form.SortOrder == 0 {
		existing, err := api.topics.ByCourse(rctx, form.CourseID)
		if err != nil {
			return errors.Wrap(err, "fetching topics")
		}
		form.SortOrder = catalog.NextSortOrder(existing)
	}

	if form.Material.NeedsUpload() {
		fileURL, err := api.uploadFile(ctx)
		if err != nil {
			return err
		}
		if form.Material == catalog.KindVideo {
			form.VideoURL = fileURL
		} else {
			form.DocumentURL = fileURL
		}
	}

	if _, err = api.topics.Create(rctx, *form); err != nil {
		return errors.Wrap(err, "creating topic")
	}

	topics, err := api.topics.ByCourse(rctx, form.CourseID)
	if err != nil {
		return errors.Wrap(err, "fetching topics")
	}
	return ctx.JSON(http.StatusCreated, newTopicsResponse(topics))
}

// destroy deletes a topic and re-fetches the remaining list; the response
// carries the next sort position for the caller's create form.
func (api *topicApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	courseID, err := strconv.Atoi(ctx.QueryParam("courseId"))
	if err != nil || courseID <= 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "courseId", Error: "this field is required"})
	}

	rctx := ctx.Request().Context()
	if err = api.topics.Delete(rctx, id); err != nil {
		return errors.Wrap(err, "deleting topic")
	}
	topics, err := api.topics.ByCourse(rctx, courseID)
	if err != nil {
		return errors.Wrap(err, "fetching topics")
	}
	return ctx.JSON(http.StatusOK, newTopicsResponse(topics))
}

func (api *topicApi) uploadFile(ctx echo.Context) (string, error) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return "", errors.Wrap(err, "reading form file")
	}
	src, err := fh.Open()
	if err != nil {
		return "", errors.Wrapf(err, "opening %s", fh.Filename)
	}
	defer src.Close()

	fileURL, err := api.files.Upload(ctx.Request().Context(), fh.Filename, src)
	return fileURL, errors.Wrap(err, "uploading file")
}

// bindTopicForm reads the multipart submission into a TopicForm. The file
// itself stays untouched until validation has passed.
func bindTopicForm(ctx echo.Context) (*catalog.TopicForm, error) {
	form := &catalog.TopicForm{
		Title:       ctx.FormValue("title"),
		Description: ctx.FormValue("topicdescription"),
		Material:    catalog.MaterialKind(core.CleanString(ctx.FormValue("materials"))),
		VideoURL:    core.CleanString(ctx.FormValue("videoUrl")),
	}
	form.DurationMinutes, _ = strconv.Atoi(ctx.FormValue("durationMinutes"))
	form.SortOrder, _ = strconv.Atoi(ctx.FormValue("sortOrder"))
	form.CourseID, _ = strconv.Atoi(ctx.FormValue("courseId"))

	if ctxID := contextIdentity(ctx); ctxID != nil {
		form.UniversityID = ctxID.UniversityID
	}
	if _, err := ctx.FormFile("file"); err == nil {
		form.HasFile = true
	}
	return form, nil
}
