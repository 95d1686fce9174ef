package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Violation is one failed input constraint. Field is the JSON path of the
// offending value, e.g. "constraints.maxAtoms" or "atomicPositions[0].element".
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string      `json:"error"`
	Details []Violation `json:"details,omitempty"`
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	}
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorResponse{Error: msg})
}

func respondInvalid(c *gin.Context, msg string, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Details: bindErrorDetails(err)})
}

// respondInternal logs err and answers with msg only.
func respondInternal(c *gin.Context, log *zap.Logger, msg string, err error) {
	log.Error(msg,
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	respondError(c, http.StatusInternalServerError, msg)
}

// bindErrorDetails turns a binding error into violations.
func bindErrorDetails(err error) []Violation {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]Violation, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, Violation{
				Field:   fieldPath(fe.Namespace()),
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: ruleMessage(fe.Tag(), fe.Param()),
			})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []Violation{{
			Field:   typeErr.Field,
			Rule:    "type",
			Param:   typeErr.Type.String(),
			Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []Violation{{Rule: "json", Message: fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)}}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return []Violation{{Rule: "json", Message: "request body is truncated"}}
	}
	if errors.Is(err, io.EOF) {
		return []Violation{{Rule: "json", Message: "request body is empty"}}
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return []Violation{{Rule: "number", Message: fmt.Sprintf("%q is not a valid number", numErr.Num)}}
	}

	return []Violation{{Rule: "invalid", Message: err.Error()}}
}

// fieldPath drops the request struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func ruleMessage(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "gt":
		return "must be greater than " + param
	case "lt":
		return "must be less than " + param
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	}
	return fmt.Sprintf("failed the %q rule", tag)
}
