package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/securedoc-app/securedoc/internal/middleware"
	"github.com/securedoc-app/securedoc/internal/modules/serializer"
	"github.com/securedoc-app/securedoc/internal/modules/service"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

type CreateProjectReq struct {
	Name string `json:"name"`
}

type RenameProjectReq struct {
	Name string `json:"name"`
}

// CreateProject godoc
//
//	@Summary		Create project
//	@Description	Create a new project for the authenticated user
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateProjectReq	true	"CreateProject payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Project}
//	@Router			/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
		return
	}

	project, err := h.svc.Create(c.Request.Context(), user.Sub, req.Name)
	if err != nil {
		c.JSON(serializer.ServiceErr(err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: project})
}

// ListProjects godoc
//
//	@Summary		List projects
//	@Description	List the authenticated user's projects, newest first
//	@Tags			project
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Project}
//	@Router			/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
		return
	}

	projects, err := h.svc.List(c.Request.Context(), user.Sub)
	if err != nil {
		c.JSON(serializer.ServiceErr(err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

// GetProject godoc
//
//	@Summary		Get project
//	@Description	Get a single project by id
//	@Tags			project
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Router			/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
		return
	}

	project, err := h.svc.Get(c.Request.Context(), user.Sub, c.Param("id"))
	if err != nil {
		c.JSON(serializer.ServiceErr(err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

// RenameProject godoc
//
//	@Summary		Rename project
//	@Description	Rename a project
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Project ID"
//	@Param			payload	body	handler.RenameProjectReq	true	"RenameProject payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Router			/projects/{id} [patch]
func (h *ProjectHandler) RenameProject(c *gin.Context) {
	req := RenameProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
		return
	}

	project, err := h.svc.Rename(c.Request.Context(), user.Sub, c.Param("id"), req.Name)
	if err != nil {
		c.JSON(serializer.ServiceErr(err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

// DeleteProject godoc
//
//	@Summary		Delete project
//	@Description	Delete a project, its file records, and their backing objects
//	@Tags			project
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.DeleteProjectOutput}
//	@Router			/projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
		return
	}

	out, err := h.svc.Delete(c.Request.Context(), user.Sub, c.Param("id"))
	if err != nil {
		c.JSON(serializer.ServiceErr(err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
