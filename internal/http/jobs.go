package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careerconnect/internal/domain"
	"careerconnect/internal/service"
)

func (h *Handler) createJob(c *gin.Context) {
	identity, err := h.auth.CurrentIdentity(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), identity, req.toInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, jobToResponse(job))
}

func (h *Handler) listEmployerJobs(c *gin.Context) {
	identity, err := h.auth.CurrentIdentity(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	jobs, err := h.jobs.ListMine(c.Request.Context(), identity)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	resp := make([]JobResponse, len(jobs))
	for i := range jobs {
		resp[i] = jobToResponse(&jobs[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getJob(c *gin.Context) {
	job, err := h.jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, jobToResponse(job))
}

func (h *Handler) updateJob(c *gin.Context) {
	identity, err := h.auth.CurrentIdentity(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), identity, c.Param("id"), req.toInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, jobToResponse(job))
}

func (h *Handler) toggleCloseJob(c *gin.Context) {
	identity, err := h.auth.CurrentIdentity(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	job, err := h.jobs.ToggleClose(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, jobToResponse(job))
}

func (h *Handler) deleteJob(c *gin.Context) {
	identity, err := h.auth.CurrentIdentity(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	id := c.Param("id")
	if err := h.jobs.Delete(c.Request.Context(), identity, id); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (r jobRequest) toInput() service.JobInput {
	return service.JobInput{
		Title:           r.Title,
		Description:     r.Description,
		Requirements:    r.Requirements,
		Location:        r.Location,
		Category:        r.Category,
		JobType:         domain.JobType(r.Type),
		ExperienceLevel: domain.ExperienceLevel(r.ExperienceLevel),
		Positions:       r.Positions,
		SalaryMin:       r.SalaryMin,
		SalaryMax:       r.SalaryMax,
	}
}
