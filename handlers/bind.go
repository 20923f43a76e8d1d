package handlers

import (
	"encoding/json"
	"errors"
	"io"

	"catering/utils"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the request body into v. Any decoding failure is reported
// as a validation error so it reaches the client as a 400.
func bindJSON(c *gin.Context, v any) error {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return &utils.ValidationError{Msg: "Request body is required"}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &utils.ValidationError{Msg: "Request body is not valid JSON"}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &utils.ValidationError{Field: typeErr.Field, Msg: "Invalid value for field: " + typeErr.Field}
	}
	return &utils.ValidationError{Msg: "Invalid request body: " + err.Error()}
}
