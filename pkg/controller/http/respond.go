package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/usecase"
	"github.com/bcm-lab/atropos/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, statusCode int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data) //nolint:errcheck // header already committed
}

func decodeJSON(r *http.Request, body any) error {
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		return goerr.Wrap(model.ErrValidation, "failed to decode request body", goerr.V("error", err.Error()))
	}
	return nil
}

var notFoundErrors = []error{
	usecase.ErrCategoryNotFound,
	usecase.ErrParameterNotFound,
	usecase.ErrFrameworkNotFound,
	usecase.ErrRTOOptionNotFound,
	usecase.ErrBIANotFound,
	usecase.ErrWorkItemNotFound,
	usecase.ErrDepartmentNotFound,
	usecase.ErrProcessNotFound,
	usecase.ErrApplicationNotFound,
}

var conflictErrors = []error{
	model.ErrInvalidTransition,
	model.ErrConcurrentModification,
}

var badRequestErrors = []error{
	model.ErrValidation,
	model.ErrInvalidRangeSet,
	model.ErrDuplicateLabel,
	model.ErrWeightSumInvalid,
	model.ErrEmptyFramework,
	model.ErrIncompleteSubmission,
	usecase.ErrInvalidRating,
	usecase.ErrCommentRequired,
	usecase.ErrJustificationRequired,
	usecase.ErrDepartmentInactive,
	usecase.ErrFrameworkInactive,
	usecase.ErrRTOOptionInactive,
}

// handleError maps domain and use case errors to HTTP status codes. Anything
// unmapped is an internal error.
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(ctx, w, err, statusOf(err))
}

func statusOf(err error) int {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
