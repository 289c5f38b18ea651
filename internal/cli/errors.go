package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Path / file errors
	ErrPathNotFound   = "PATH_NOT_FOUND"
	ErrPathNotGiven   = "PATH_NOT_SPECIFIED"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Migration errors
	ErrMigrationFailed = "MIGRATION_FAILED"
	ErrHistoryError    = "HISTORY_ERROR"

	// Sync server errors
	ErrSyncNotConfigured  = "SYNC_NOT_CONFIGURED"
	ErrSyncAlreadyRunning = "SYNC_ALREADY_RUNNING"
	ErrSyncNotRunning     = "SYNC_NOT_RUNNING"
	ErrSyncUnreachable    = "SYNC_UNREACHABLE"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)
