package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ogurasousui/recruit-dashboard/internal/core/activity"
	"github.com/ogurasousui/recruit-dashboard/internal/core/client"
	"github.com/ogurasousui/recruit-dashboard/internal/core/commission"
	"github.com/ogurasousui/recruit-dashboard/internal/core/dashboard"
	"github.com/ogurasousui/recruit-dashboard/internal/core/joborder"
	"github.com/ogurasousui/recruit-dashboard/internal/core/recruiter"
)

func toStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, commission.ErrInvalidInput),
		errors.Is(err, joborder.ErrInvalidID),
		errors.Is(err, joborder.ErrInvalidClientName),
		errors.Is(err, joborder.ErrInvalidJobTitle),
		errors.Is(err, joborder.ErrInvalidStatus),
		errors.Is(err, joborder.ErrInvalidPriority),
		errors.Is(err, joborder.ErrInvalidDateRange),
		errors.Is(err, joborder.ErrInvalidPageSize),
		errors.Is(err, joborder.ErrInvalidPageToken),
		errors.Is(err, activity.ErrInvalidID),
		errors.Is(err, activity.ErrInvalidJobID),
		errors.Is(err, activity.ErrInvalidCounter),
		errors.Is(err, activity.ErrInvalidPageSize),
		errors.Is(err, activity.ErrInvalidPageToken),
		errors.Is(err, recruiter.ErrInvalidID),
		errors.Is(err, recruiter.ErrInvalidName),
		errors.Is(err, recruiter.ErrInvalidEmail),
		errors.Is(err, recruiter.ErrInvalidRole),
		errors.Is(err, recruiter.ErrInvalidJobID),
		errors.Is(err, recruiter.ErrInvalidPageSize),
		errors.Is(err, recruiter.ErrInvalidPageToken),
		errors.Is(err, client.ErrInvalidName),
		errors.Is(err, client.ErrInvalidID),
		errors.Is(err, client.ErrInvalidPageSize),
		errors.Is(err, client.ErrInvalidPageToken),
		errors.Is(err, dashboard.ErrInvalidPeriod),
		errors.Is(err, dashboard.ErrInvalidStatus):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, activity.ErrDuplicateWeeklyEntry),
		errors.Is(err, recruiter.ErrEmailAlreadyExists),
		errors.Is(err, client.ErrNameAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, joborder.ErrJobOrderNotFound),
		errors.Is(err, activity.ErrActivityNotFound),
		errors.Is(err, recruiter.ErrRecruiterNotFound),
		errors.Is(err, client.ErrClientNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
