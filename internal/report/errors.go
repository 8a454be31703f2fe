package report

import "errors"

var (
	// ErrUnknownReport is a lookup miss on a report ID.
	ErrUnknownReport = errors.New("report not found")

	// ErrUnknownColumn is a lookup miss on a column label within a report.
	ErrUnknownColumn = errors.New("column not found")

	// ErrDuplicateUpload means a file with the same fingerprint was
	// already ingested. Pass allow_duplicate to override.
	ErrDuplicateUpload = errors.New("a report for this file already exists")

	// ErrEmptyFile means the upload contained no bytes.
	ErrEmptyFile = errors.New("uploaded file is empty")

	// ErrFileTooLarge means the upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("uploaded file exceeds the size limit")
)
