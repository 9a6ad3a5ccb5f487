package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "success",
	ErrUnknown:         "unknown error",
	ErrBind:            "invalid request body",
	ErrValidation:      "validation failed",
	ErrTokenInvalid:    "invalid or expired token",
	ErrTooManyRequests: "too many requests",
	ErrForbidden:       "access to this building is denied",

	// 用户相关错误码
	ErrUserNotFound:          "user not found",
	ErrUserAlreadyExist:      "user with this email already exists",
	ErrUserPasswordIncorrect: "invalid email or password",

	// 数据库相关错误码
	ErrDatabase:       "database error",
	ErrRecordNotFound: "record not found",
	ErrConflict:       "record with this key already exists",
	ErrHasDependents:  "record has dependent rows",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,
	ErrForbidden:       StatusForbidden,

	// 用户相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusConflict,
	ErrUserPasswordIncorrect: StatusUnauthorized,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
	ErrConflict:       StatusConflict,
	ErrHasDependents:  StatusConflict,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "unknown error"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
