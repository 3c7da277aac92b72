package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hr-pommala/sphuta-tms-freelancer/internal/service"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/util"
)

// respondError translates a domain error into a wire-level status code.
// Services never see HTTP; this is the only place the mapping lives.
func respondError(c *gin.Context, err error) {
	var nf *service.NotFoundError
	var cf *service.ConflictError
	var ve *service.ValidationError

	switch {
	case errors.As(err, &nf):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, nf.Msg)
	case errors.As(err, &cf):
		util.Error(c, http.StatusConflict, util.CodeConflict, cf.Msg)
	case errors.As(err, &ve):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, ve.Msg)
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
	}
}

// parseIDParam reads a UUID path parameter, writing a 400 on failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
