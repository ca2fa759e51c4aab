package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/ykovtun/avtosos/internal/pkg/logger"
	"github.com/ykovtun/avtosos/internal/utils"
)

// PanicRecoveryMiddleware recovers from panics in downstream handlers,
// logs the stack trace and answers 500 instead of killing the server
func PanicRecoveryMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					handlePanic(c, r)
				}
			}()
			return next(c)
		}
	}
}

func handlePanic(c echo.Context, r interface{}) {
	logger.Error("Panic recovered during request processing",
		logger.Any("panic_value", r),
		logger.String("panic_type", fmt.Sprintf("%T", r)),
		logger.String("stack_trace", string(debug.Stack())),
		logger.String("method", c.Request().Method),
		logger.String("path", c.Request().URL.Path),
		logger.String("client_ip", c.RealIP()),
		logger.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)))

	if !c.Response().Committed {
		if err := utils.ErrorResponseHandler(c, http.StatusInternalServerError, "Internal Server Error"); err != nil {
			c.String(http.StatusInternalServerError, "Internal Server Error")
		}
	}
}
