package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong
	// password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrPendingApproval is returned when a restaurant account has not been
	// approved by an admin yet.
	ErrPendingApproval = errors.New("restaurant account is pending admin approval")
	// ErrAccountSuspended is returned when a suspended user attempts to log in.
	ErrAccountSuspended = errors.New("account is suspended")
	// ErrRestaurantSuspended is returned when a suspended restaurant's owner attempts to log in.
	ErrRestaurantSuspended = errors.New("restaurant is suspended")
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrRestaurantNotFound is returned when a restaurant is not found.
	ErrRestaurantNotFound = errors.New("restaurant not found")
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrMenuItemNotFound is returned when a menu item is not found.
	ErrMenuItemNotFound = errors.New("menu item not found")
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrStatusConflict is returned when a guarded status transition loses a race.
	ErrStatusConflict = errors.New("order status changed concurrently")
	// ErrInvalidOrderStatus is returned when a requested status is not part of the order flow.
	ErrInvalidOrderStatus = errors.New("invalid order status")
	// ErrForbidden is returned when the caller's role or ownership does not allow the action.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid, expired or revoked.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrRestaurantUnavailable is returned when ordering from an unapproved or suspended restaurant.
	ErrRestaurantUnavailable = errors.New("restaurant is not accepting orders")
	// ErrMenuItemUnavailable is returned when an ordered item is not available.
	ErrMenuItemUnavailable = errors.New("menu item is not available")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unexpected failures are
// redacted to a generic internal error.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrPendingApproval:
		return NewHTTPError(http.StatusForbidden, err.Error(), "PENDING_APPROVAL")
	case ErrAccountSuspended:
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCOUNT_SUSPENDED")
	case ErrRestaurantSuspended:
		return NewHTTPError(http.StatusForbidden, err.Error(), "RESTAURANT_SUSPENDED")
	case ErrUserAlreadyExists:
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrRestaurantNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "RESTAURANT_NOT_FOUND")
	case ErrOrderNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ORDER_NOT_FOUND")
	case ErrMenuItemNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "MENU_ITEM_NOT_FOUND")
	case ErrNotificationNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOTIFICATION_NOT_FOUND")
	case ErrStatusConflict:
		return NewHTTPError(http.StatusConflict, err.Error(), "STATUS_CONFLICT")
	case ErrInvalidOrderStatus:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ORDER_STATUS")
	case ErrForbidden:
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case ErrInvalidRefreshToken:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case ErrRestaurantUnavailable:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "RESTAURANT_UNAVAILABLE")
	case ErrMenuItemUnavailable:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MENU_ITEM_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
