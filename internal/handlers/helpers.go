package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"geobike_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// bindJSON answers 400 and returns false when the body does not bind.
func bindJSON(c *gin.Context, dst interface{}, operation string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.LogError(err, operation+": Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", utils.DescribeBindingError(err)))
		return false
	}
	return true
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, param, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = errors.New(param + " must be a positive integer")
		}
		utils.RespondInvalidID(c, what, err)
		return 0, false
	}
	return id, true
}

// optionalInt64Query returns nil for an absent parameter.
func optionalInt64Query(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+name+" format.", name+" must be a positive integer"))
		return nil, false
	}
	return &v, true
}

func optionalBoolQuery(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+name+" format.", name+" must be true or false"))
		return nil, false
	}
	return &v, true
}

func respondForbidden(c *gin.Context, message string) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, message, ""))
}

// messageAfterSentinel drops the leading "sentinel: " so the client sees only
// the human readable part of a wrapped service error.
func messageAfterSentinel(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
