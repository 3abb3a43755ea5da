package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imanshadilshan/work-ora/internal/http/middleware"
	"github.com/imanshadilshan/work-ora/internal/service"
)

// JobHandler exposes the company, job and application endpoints.
type JobHandler struct {
	Jobs *service.JobService
}

// NewJobHandler creates the handler set.
func NewJobHandler(jobs *service.JobService) *JobHandler {
	return &JobHandler{Jobs: jobs}
}

// CreateCompany handles POST /jobs/company/new. The payload is a multipart
// form carrying the company logo.
func (h *JobHandler) CreateCompany(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
		return
	}

	logo, contentType, err := formFile(c, "file")
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.Jobs.CreateCompany(c.Request.Context(), actor, service.CompanyInput{
		Name:            c.PostForm("name"),
		Description:     c.PostForm("description"),
		Website:         c.PostForm("website"),
		Logo:            logo,
		LogoContentType: contentType,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Company created successfully",
		"company": view,
	})
}

// DeleteCompany handles DELETE /jobs/company/:companyId. Jobs under the
// company are removed with it.
func (h *JobHandler) DeleteCompany(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
		return
	}

	companyID, err := pathID(c, "companyId")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.Jobs.DeleteCompany(c.Request.Context(), actor, companyID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company and all associated jobs have been deleted successfully"})
}

// MyCompanies handles GET /jobs/company/all and lists the companies
// owned by the calling recruiter.
func (h *JobHandler) MyCompanies(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
		return
	}

	views, err := h.Jobs.MyCompanies(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": views})
}

// GetCompany handles GET /jobs/company/:id.
func (h *JobHandler) GetCompany(c *gin.Context) {
	companyID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.Jobs.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": view})
}

type jobRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Salary       int64  `json:"salary"`
	Location     string `json:"location"`
	Role         string `json:"role"`
	JobType      string `json:"job_type"`
	WorkLocation string `json:"work_location"`
	CompanyID    int64  `json:"company_id"`
	Openings     int    `json:"openings"`
	IsActive     bool   `json:"is_active"`
}

func (r jobRequest) input() service.JobInput {
	return service.JobInput{
		Title:        r.Title,
		Description:  r.Description,
		Salary:       r.Salary,
		Location:     r.Location,
		Role:         r.Role,
		JobType:      r.JobType,
		WorkLocation: r.WorkLocation,
		CompanyID:    r.CompanyID,
		Openings:     r.Openings,
		IsActive:     r.IsActive,
	}
}

// CreateJob handles POST /jobs/new.
func (h *JobHandler) CreateJob(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
		return
	}

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	view, err := h.Jobs.CreateJob(c.Request.Context(), actor, req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Job created successfully",
		"job":     view,
	})
}

// UpdateJob handles PUT /jobs/:jobId.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
		return
	}

	jobID, err := pathID(c, "jobId")
	if err != nil {
		respondError(c, err)
		return
	}

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	view, err := h.Jobs.UpdateJob(c.Request.Context(), actor, jobID, req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Job updated successfully",
		"job":     view,
	})
}

// SearchJobs handles GET /jobs/all with optional title and location
// query filters. It is a public route.
func (h *JobHandler) SearchJobs(c *gin.Context) {
	views, err := h.Jobs.SearchJobs(c.Request.Context(), c.Query("title"), c.Query("location"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": views})
}

// GetJob handles GET /jobs/:jobId. It is a public route.
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := pathID(c, "jobId")
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.Jobs.GetJob(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": view})
}

// Apply handles POST /jobs/apply/:jobId for jobseekers.
func (h *JobHandler) Apply(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
		return
	}

	jobID, err := pathID(c, "jobId")
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.Jobs.Apply(c.Request.Context(), actor, jobID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application submitted successfully",
		"application": view,
	})
}

// Applications handles GET /jobs/application/:jobId for the recruiter
// who posted the job.
func (h *JobHandler) Applications(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
		return
	}

	jobID, err := pathID(c, "jobId")
	if err != nil {
		respondError(c, err)
		return
	}

	views, err := h.Jobs.Applications(c.Request.Context(), actor, jobID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": views})
}

// UpdateApplicationStatus handles PUT /jobs/application/:id.
// A successful update notifies the applicant by mail.
func (h *JobHandler) UpdateApplicationStatus(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
		return
	}

	applicationID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status is required"})
		return
	}

	view, err := h.Jobs.UpdateApplicationStatus(c.Request.Context(), actor, applicationID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application status updated successfully",
		"application": view,
	})
}
