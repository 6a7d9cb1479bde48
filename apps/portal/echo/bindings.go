package echoportal

import (
	"context"
	"time"

	"github.com/trezcool/lideo/core"
	"github.com/trezcool/lideo/core/catalog"
	"github.com/trezcool/lideo/core/identity"
	"github.com/trezcool/lideo/core/portal"
)

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	AccessRequest struct {
		AccessKey string `json:"accessKey" validate:"required"`
	}

	VerifyRequest struct {
		Code string `json:"code" validate:"required,len=6,numeric"`
	}

	SessionResponse struct {
		State    string             `json:"state"`
		Identity *identity.Identity `json:"identity,omitempty"`
		Portal   portal.Portal      `json:"portal"`
	}

	AccessResponse struct {
		ChallengeID string    `json:"challengeId"`
		ExpiresAt   time.Time `json:"expiresAt"`
		// Code is only populated in debug mode: the on-screen display the
		// original flow shows instead of relying on email delivery.
		Code string `json:"code,omitempty"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return core.Validate.Struct(lr)
}

func (ar *AccessRequest) Validate() error {
	ar.AccessKey = core.CleanString(ar.AccessKey)
	return core.Validate.Struct(ar)
}

func (vr *VerifyRequest) Validate() error {
	vr.Code = core.CleanString(vr.Code)
	return core.Validate.Struct(vr)
}

func newSessionResponse(id *identity.Identity, state identity.State) SessionResponse {
	return SessionResponse{
		State:    state.String(),
		Identity: id,
		Portal:   portal.ForIdentity(id),
	}
}

// collection is one independently fetched backend collection. A failed fetch
// carries its own error message and never fails the whole dashboard.
type collection[T any] struct {
	Items []T    `json:"items"`
	Error string `json:"error,omitempty"`
}

func (c collection[T]) ok() bool { return c.Error == "" }

// fetchCollection loads one collection with the request context; failures are
// logged and folded into the collection's error state.
func fetchCollection[T any](ctx context.Context, logger core.Logger, name string, fn func(context.Context) ([]T, error)) collection[T] {
	items, err := fn(ctx)
	if err != nil {
		logger.Error("fetching "+name, err)
		return collection[T]{Items: []T{}, Error: "failed to load " + name}
	}
	if items == nil {
		items = []T{}
	}
	return collection[T]{Items: items}
}

// topicsResponse is the course-topic list view model: topics ordered by their
// sort position plus the position a new topic would take.
type topicsResponse struct {
	Topics        []catalog.CourseTopic `json:"topics"`
	NextSortOrder int                   `json:"nextSortOrder"`
}

func newTopicsResponse(topics []catalog.CourseTopic) topicsResponse {
	return topicsResponse{
		Topics:        catalog.SortedTopics(topics),
		NextSortOrder: catalog.NextSortOrder(topics),
	}
}
