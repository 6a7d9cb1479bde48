package catalog

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lideo/core"
)

var (
	materialKindTag  = "materialkind"
	materialKindText = "invalid material type"

	entityStatusTag  = "entitystatus"
	entityStatusText = "status must be ACTIVE or INACTIVE"

	fileRequiredTag  = "filerequired"
	fileRequiredText = "a file is required for this material type"

	urlRequiredTag  = "urlrequired"
	urlRequiredText = "an external URL is required for link materials"
)

func init() {
	_ = core.Validate.RegisterValidation(materialKindTag, materialKindValidation)
	core.RegisterCustomTranslation(materialKindTag, materialKindText)

	_ = core.Validate.RegisterValidation(entityStatusTag, entityStatusValidation)
	core.RegisterCustomTranslation(entityStatusTag, entityStatusText)

	core.Validate.RegisterStructValidation(topicStructValidation, TopicForm{})
	core.RegisterCustomTranslation(fileRequiredTag, fileRequiredText)
	core.RegisterCustomTranslation(urlRequiredTag, urlRequiredText)
}

func materialKindValidation(fl validator.FieldLevel) bool {
	return MaterialKind(fl.Field().String()).Valid()
}

func entityStatusValidation(fl validator.FieldLevel) bool {
	return Status(fl.Field().String()).Valid()
}

// topicStructValidation enforces the kind-dependent requiredness:
// DOCUMENT/VIDEO/ASSIGNMENT topics need an attached file, LINK topics need a
// typed external URL.
func topicStructValidation(sl validator.StructLevel) {
	form := sl.Current().Interface().(TopicForm)
	if !form.Material.Valid() {
		return // the field tag reports this one
	}

	if form.Material.NeedsUpload() {
		if !form.HasFile {
			sl.ReportError(form.HasFile, "file", "HasFile", fileRequiredTag, "")
		}
		return
	}
	if form.VideoURL == "" {
		sl.ReportError(form.VideoURL, "videoUrl", "VideoURL", urlRequiredTag, "")
	}
}
