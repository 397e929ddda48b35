package squat

import (
	"net/http"

	"SquatSense/pkg/response"
)

var (
	ErrInternalServerError    = response.NewError(http.StatusInternalServerError, "internal server error")
	ErrBadRequest             = response.NewError(http.StatusBadRequest, "bad request")
	ErrSessionNotFound        = response.NewError(http.StatusNotFound, "squat session not found")
	ErrPoseServiceUnavailable = response.NewError(http.StatusServiceUnavailable, "pose estimation service unavailable")
)
