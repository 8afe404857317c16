package apierr

import "net/http"

// --- Common ---

func InvalidRequestBody() *Error {
	return New(CodeInvalidRequestBody, http.StatusBadRequest, "Invalid request body")
}

func InvalidID(entity string) *Error {
	return New(CodeInvalidID, http.StatusBadRequest, "Invalid "+entity+" ID")
}

func InternalError(cause error) *Error {
	return Wrap(CodeInternalError, http.StatusInternalServerError, "Internal server error", cause)
}

// --- Project ---

func ProjectNotFound() *Error {
	return New(CodeProjectNotFound, http.StatusNotFound, "Project not found")
}

func ProjectCreateFailed(cause error) *Error {
	return Wrap(CodeProjectCreateFailed, http.StatusInternalServerError, "Failed to create project", cause)
}

func ProjectListFailed(cause error) *Error {
	return Wrap(CodeProjectListFailed, http.StatusInternalServerError, "Failed to list projects", cause)
}

func ProjectUpdateFailed(cause error) *Error {
	return Wrap(CodeProjectUpdateFailed, http.StatusInternalServerError, "Failed to update project", cause)
}

func ProjectDeleteFailed(cause error) *Error {
	return Wrap(CodeProjectDeleteFailed, http.StatusInternalServerError, "Failed to delete project", cause)
}

// --- Scan run ---

func ScanRunNotFound() *Error {
	return New(CodeScanRunNotFound, http.StatusNotFound, "Scan run not found")
}

func InvalidRunID() *Error {
	return New(CodeInvalidRunID, http.StatusBadRequest, "Invalid scan run ID")
}

func ScanRunCreateFailed(cause error) *Error {
	return Wrap(CodeScanRunCreateFailed, http.StatusInternalServerError, "Failed to create scan run", cause)
}

func ScanRunListFailed(cause error) *Error {
	return Wrap(CodeScanRunListFailed, http.StatusInternalServerError, "Failed to list scan runs", cause)
}

func ScanEnqueueFailed(cause error) *Error {
	return Wrap(CodeScanEnqueueFailed, http.StatusInternalServerError, "Failed to enqueue scan run", cause)
}

// --- File rows / reports ---

func InvalidClassification() *Error {
	return New(CodeInvalidClassification, http.StatusBadRequest,
		"classification must be one of: owned, support_dependency, out_of_scope")
}

func FileListFailed(cause error) *Error {
	return Wrap(CodeFileListFailed, http.StatusInternalServerError, "Failed to list file records", cause)
}

func AggregateFailed(cause error) *Error {
	return Wrap(CodeAggregateFailed, http.StatusInternalServerError, "Failed to compute aggregates", cause)
}

func UnresolvedListFailed(cause error) *Error {
	return Wrap(CodeUnresolvedListFailed, http.StatusInternalServerError, "Failed to list unresolved targets", cause)
}

func ArtifactNotFound() *Error {
	return New(CodeArtifactNotFound, http.StatusNotFound, "Report artifact not found")
}

func GraphQueryFailed(cause error) *Error {
	return Wrap(CodeGraphQueryFailed, http.StatusInternalServerError, "Failed to query dependency graph", cause)
}

// --- Validation ---

func SlugRequired() *Error {
	return New(CodeSlugRequired, http.StatusBadRequest, "slug is required")
}

func SlugInvalid() *Error {
	return New(CodeSlugInvalid, http.StatusBadRequest, "slug must be lowercase alphanumeric with hyphens, 3-63 chars")
}

func NameRequired() *Error {
	return New(CodeNameRequired, http.StatusBadRequest, "name is required")
}

func NameTooLong() *Error {
	return New(CodeNameTooLong, http.StatusBadRequest, "name must be at most 255 characters")
}

func ScanRootRequired() *Error {
	return New(CodeScanRootRequired, http.StatusBadRequest, "scan_root is required")
}

func ManifestPathRequired() *Error {
	return New(CodeManifestRequired, http.StatusBadRequest, "manifest_path is required")
}

// --- Health ---

func DatabaseNotReady() *Error {
	return New(CodeDatabaseNotReady, http.StatusServiceUnavailable, "Database not ready")
}
