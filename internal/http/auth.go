package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careerconnect/internal/domain"
	"careerconnect/internal/service"
)

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	res, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		Avatar:   req.Avatar,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{UserResponse: userToResponse(res.User), Token: res.Token})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{UserResponse: userToResponse(res.User), Token: res.Token})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.auth.CurrentIdentity(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) uploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "no file uploaded")
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	defer f.Close()

	url, err := h.uploads.Upload(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
