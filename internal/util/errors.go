package util

import "errors"

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrSessionNotFound    = errors.New("feedback session not found")
	ErrQuestionNotFound   = errors.New("feedback question not found")
	ErrInstructorNotFound = errors.New("instructor not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidViewType    = errors.New("invalid results view type")
	ErrExceedingRange     = errors.New("result set exceeds the viewable range")
)
