package db

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrJobNotFound          = errors.New("job not found")
	ErrScoreNotFound        = errors.New("job score not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrPatternNotFound      = errors.New("pattern not found")
	ErrFilterNotFound       = errors.New("filter not found")
	ErrDuplicateJob         = errors.New("job already exists")
	ErrDuplicateApplication = errors.New("application already exists for this job")
)
