package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the unified API envelope. Every endpoint, success or failure,
// returns this shape.
type Response struct {
	Success bool        `json:"success"`
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody carries the machine-readable error detail inside the envelope.
type ErrorBody struct {
	Message    string `json:"message"`
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

// Error codes surfaced to clients.
const (
	CodeWorkspaceNotFound       = "WORKSPACE_NOT_FOUND"
	CodeReleaseNotFound         = "RELEASE_NOT_FOUND"
	CodeBugNotFound             = "BUG_NOT_FOUND"
	CodeHotfixNotFound          = "HOTFIX_NOT_FOUND"
	CodeUserNotFound            = "USER_NOT_FOUND"
	CodeInviteNotFound          = "INVITE_NOT_FOUND"
	CodePrdNotFound             = "PRD_NOT_FOUND"
	CodeTaskNotFound            = "TASK_NOT_FOUND"
	CodeDesignAssetNotFound     = "DESIGN_ASSET_NOT_FOUND"
	CodeUserNotMember           = "USER_NOT_MEMBER"
	CodeUnauthorizedAction      = "UNAUTHORIZED_ACTION"
	CodeInsufficientPermissions = "INSUFFICIENT_PERMISSIONS"
	CodeInvalidPermission       = "INVALID_PERMISSION"
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeAlreadyMember           = "ALREADY_MEMBER"
	CodeDuplicateInvite         = "DUPLICATE_INVITE"
	CodeInviteResponded         = "INVITE_ALREADY_RESPONDED"
	CodeWorkspaceExists         = "WORKSPACE_EXISTS"
	CodeUserExists              = "USER_EXISTS"
	CodeInvalidArgument         = "INVALID_ARGUMENT"
	CodeInternal                = "INTERNAL_ERROR"
)

// AppError is a structured application error with an HTTP status and a stable
// string code. Services return these; handlers funnel them through Error.
type AppError struct {
	HTTPStatus int
	Code       string
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

// Pre-defined error constructors

func NewBadRequest(code, msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Code: code, Message: msg}
}

func NewUnauthorized(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusUnauthorized, Code: CodeInvalidCredentials, Message: msg}
}

func NewForbidden(code, msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusForbidden, Code: code, Message: msg}
}

func NewNotFound(code, msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusNotFound, Code: code, Message: msg}
}

func NewConflict(code, msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusConflict, Code: code, Message: msg}
}

func NewServerError(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Code: CodeInternal, Message: msg}
}

// --- Gin response helpers ---

// Success sends a 200 OK envelope with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Status:  http.StatusOK,
		Message: "ok",
		Data:    data,
	})
}

// Created sends a 201 Created envelope with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Status:  http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

// Error sends an error envelope. If err is an *AppError its status and code are
// used; anything else becomes a generic 500.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, Response{
			Success: false,
			Status:  appErr.HTTPStatus,
			Message: appErr.Message,
			Error: &ErrorBody{
				Message:    appErr.Message,
				Error:      appErr.Code,
				StatusCode: appErr.HTTPStatus,
			},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Status:  http.StatusInternalServerError,
		Message: err.Error(),
		Error: &ErrorBody{
			Message:    err.Error(),
			Error:      CodeInternal,
			StatusCode: http.StatusInternalServerError,
		},
	})
}

// Convenience error response functions

func BadRequest(c *gin.Context, msg string) {
	Error(c, NewBadRequest(CodeInvalidArgument, msg))
}

func Unauthorized(c *gin.Context, msg string) {
	Error(c, NewUnauthorized(msg))
}

func Forbidden(c *gin.Context, msg string) {
	Error(c, NewForbidden(CodeUnauthorizedAction, msg))
}

func NotFound(c *gin.Context, code, msg string) {
	Error(c, NewNotFound(code, msg))
}

func ServerError(c *gin.Context, msg string) {
	Error(c, NewServerError(msg))
}
