package apierr

// Code is a machine-readable error code returned in API responses.
type Code string

// Common errors.
const (
	CodeInvalidRequestBody Code = "INVALID_REQUEST_BODY"
	CodeInvalidID          Code = "INVALID_ID"
	CodeInternalError      Code = "INTERNAL_ERROR"
)

// Project errors.
const (
	CodeProjectNotFound     Code = "PROJECT_NOT_FOUND"
	CodeProjectCreateFailed Code = "PROJECT_CREATE_FAILED"
	CodeProjectListFailed   Code = "PROJECT_LIST_FAILED"
	CodeProjectUpdateFailed Code = "PROJECT_UPDATE_FAILED"
	CodeProjectDeleteFailed Code = "PROJECT_DELETE_FAILED"
)

// Scan run errors.
const (
	CodeScanRunNotFound     Code = "SCAN_RUN_NOT_FOUND"
	CodeInvalidRunID        Code = "INVALID_RUN_ID"
	CodeScanRunCreateFailed Code = "SCAN_RUN_CREATE_FAILED"
	CodeScanRunListFailed   Code = "SCAN_RUN_LIST_FAILED"
	CodeScanEnqueueFailed   Code = "SCAN_ENQUEUE_FAILED"
)

// File row / report errors.
const (
	CodeInvalidClassification Code = "INVALID_CLASSIFICATION"
	CodeFileListFailed        Code = "FILE_LIST_FAILED"
	CodeAggregateFailed       Code = "AGGREGATE_FAILED"
	CodeUnresolvedListFailed  Code = "UNRESOLVED_LIST_FAILED"
	CodeArtifactNotFound      Code = "ARTIFACT_NOT_FOUND"
	CodeGraphQueryFailed      Code = "GRAPH_QUERY_FAILED"
)

// Validation errors.
const (
	CodeSlugRequired     Code = "SLUG_REQUIRED"
	CodeSlugInvalid      Code = "SLUG_INVALID"
	CodeNameRequired     Code = "NAME_REQUIRED"
	CodeNameTooLong      Code = "NAME_TOO_LONG"
	CodeScanRootRequired Code = "SCAN_ROOT_REQUIRED"
	CodeManifestRequired Code = "MANIFEST_PATH_REQUIRED"
)

// Health errors.
const (
	CodeDatabaseNotReady Code = "DATABASE_NOT_READY"
)
