package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careerconnect/internal/service"
)

func (h *Handler) updateProfile(c *gin.Context) {
	identity, err := h.auth.CurrentIdentity(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.profiles.UpdateProfile(c.Request.Context(), identity, service.ProfileUpdate{
		Name:               req.Name,
		Avatar:             req.Avatar,
		Resume:             req.Resume,
		Phone:              req.Phone,
		Location:           req.Location,
		Bio:                req.Bio,
		Skills:             req.Skills,
		CompanyName:        req.CompanyName,
		CompanyDescription: req.CompanyDescription,
		CompanyLogo:        req.CompanyLogo,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) deleteResume(c *gin.Context) {
	identity, err := h.auth.CurrentIdentity(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	if err := h.profiles.DeleteResume(c.Request.Context(), identity); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "resume deleted successfully"})
}

func (h *Handler) getPublicProfile(c *gin.Context) {
	user, err := h.profiles.GetPublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}
