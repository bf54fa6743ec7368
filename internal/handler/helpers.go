package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/Neumenon/chiffre/chiffre"
	"github.com/Neumenon/chiffre/internal/pkg/errcode"
	"github.com/Neumenon/chiffre/internal/pkg/response"
)

// errorCode maps a resolution failure to its API code.
func errorCode(err error) int {
	var pe *chiffre.ParseError
	switch {
	case errors.Is(err, chiffre.ErrEmptyNumeral):
		return errcode.ErrEmptyNumeral
	case errors.Is(err, chiffre.ErrUnknownUnit):
		return errcode.ErrUnknownUnit
	case errors.Is(err, chiffre.ErrUnknownFraction):
		return errcode.ErrUnknownFraction
	case errors.Is(err, chiffre.ErrNoSubUnit):
		return errcode.ErrNoSubUnit
	case errors.Is(err, chiffre.ErrShapeMismatch):
		return errcode.ErrShapeMismatch
	case errors.Is(err, chiffre.ErrOverflow):
		return errcode.ErrOverflow
	case errors.As(err, &pe):
		return errcode.ErrSyntax
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errcode.ErrCanceled
	default:
		return errcode.ErrInternal
	}
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	code := errorCode(err)
	logutil.GetLogger(c.Request.Context()).Warn("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("code", code),
		zap.Error(err),
	)
	if code == errcode.ErrInternal {
		response.Error(c, code, "internal error")
		return
	}
	response.Error(c, code, err.Error())
}

func warningMessages(warnings []chiffre.ParseError) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, 0, len(warnings))
	for i := range warnings {
		out = append(out, warnings[i].Error())
	}
	return out
}
