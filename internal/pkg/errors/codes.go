package errors

import "net/http"

var (
	ErrStationNotFound = New(
		"STATION_NOT_FOUND",
		"Station not found",
		http.StatusNotFound,
	)

	ErrReportNotFound = New(
		"REPORT_NOT_FOUND",
		"Report not found",
		http.StatusNotFound,
	)

	ErrDistrictNotFound = New(
		"DISTRICT_NOT_FOUND",
		"District not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidStationID = New(
		"INVALID_STATION_ID",
		"Invalid station ID",
		http.StatusBadRequest,
	)

	ErrInvalidReportID = New(
		"INVALID_REPORT_ID",
		"Invalid report ID",
		http.StatusBadRequest,
	)

	ErrStoreUnavailable = New(
		"STORE_UNAVAILABLE",
		"Data store is not available",
		http.StatusServiceUnavailable,
	)

	ErrUnsupportedOperation = New(
		"UNSUPPORTED_OPERATION",
		"Operation is not supported by the configured store",
		http.StatusNotImplemented,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
