package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/securedoc-app/securedoc/internal/middleware"
	"github.com/securedoc-app/securedoc/internal/modules/serializer"
	"github.com/securedoc-app/securedoc/internal/modules/service"
)

type FileHandler struct {
	svc service.FileService
}

func NewFileHandler(s service.FileService) *FileHandler {
	return &FileHandler{svc: s}
}

type CreateUploadSlotReq struct {
	Filename    string   `json:"filename"`
	ContentType string   `json:"contentType"`
	SizeBytes   *float64 `json:"sizeBytes"`
}

type ConfirmUploadReq struct {
	Filename    string   `json:"filename"`
	ContentType string   `json:"contentType"`
	SizeBytes   *float64 `json:"sizeBytes"`
	Bucket      string   `json:"bucket"`
	Key         string   `json:"key"`
}

// CreateUploadSlot godoc
//
//	@Summary		Create upload slot
//	@Description	Issue a presigned PUT URL for a client-direct upload. No file record is written until the upload is confirmed.
//	@Tags			file
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Project ID"
//	@Param			payload	body	handler.CreateUploadSlotReq	true	"CreateUploadSlot payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=service.UploadSlot}
//	@Router			/projects/{id}/uploads [post]
func (h *FileHandler) CreateUploadSlot(c *gin.Context) {
	req := CreateUploadSlotReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
		return
	}

	slot, err := h.svc.CreateUploadSlot(c.Request.Context(), user, c.Param("id"), service.UploadSlotInput{
		Filename:    req.Filename,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		c.JSON(serializer.ServiceErr(err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: slot})
}

// ConfirmUpload godoc
//
//	@Summary		Confirm upload
//	@Description	Write the file record after the client finished its PUT. Confirming the same upload twice returns the stored record.
//	@Tags			file
//	@Accept			json
//	@Produce		json
//	@Param			id			path	string						true	"Project ID"
//	@Param			uploadId	path	string						true	"Upload ID from the slot"
//	@Param			payload		body	handler.ConfirmUploadReq	true	"ConfirmUpload payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.File}
//	@Router			/projects/{id}/uploads/{uploadId}/complete [post]
func (h *FileHandler) ConfirmUpload(c *gin.Context) {
	req := ConfirmUploadReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
		return
	}

	file, err := h.svc.ConfirmUpload(c.Request.Context(), user.Sub, c.Param("id"), c.Param("uploadId"), service.ConfirmUploadInput{
		Filename:    req.Filename,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		Bucket:      req.Bucket,
		Key:         req.Key,
	})
	if err != nil {
		c.JSON(serializer.ServiceErr(err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: file})
}

// ListFiles godoc
//
//	@Summary		List files
//	@Description	List a project's files, newest first. With validate=1, records whose backing object is confirmed absent are removed.
//	@Tags			file
//	@Produce		json
//	@Param			id			path	string	true	"Project ID"
//	@Param			validate	query	string	false	"Set to 1 to reconcile records against the object store"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ListFilesOutput}
//	@Router			/projects/{id}/files [get]
func (h *FileHandler) ListFiles(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
		return
	}

	validate := c.Query("validate") == "1" || c.Query("validate") == "true"

	out, err := h.svc.List(c.Request.Context(), user.Sub, c.Param("id"), validate)
	if err != nil {
		c.JSON(serializer.ServiceErr(err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// DeleteFile godoc
//
//	@Summary		Delete file
//	@Description	Delete a file record and its backing object
//	@Tags			file
//	@Produce		json
//	@Param			id		path	string	true	"Project ID"
//	@Param			fileId	path	string	true	"File ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/projects/{id}/files/{fileId} [delete]
func (h *FileHandler) DeleteFile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
		return
	}

	if err := h.svc.Delete(c.Request.Context(), user.Sub, c.Param("id"), c.Param("fileId")); err != nil {
		c.JSON(serializer.ServiceErr(err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

// DownloadFile godoc
//
//	@Summary		Get download URLs
//	@Description	Issue short-lived presigned GET URLs for a file, one inline and one as attachment
//	@Tags			file
//	@Produce		json
//	@Param			id		path	string	true	"Project ID"
//	@Param			fileId	path	string	true	"File ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.DownloadURLs}
//	@Router			/projects/{id}/files/{fileId}/download [get]
func (h *FileHandler) DownloadFile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
		return
	}

	urls, err := h.svc.DownloadURLs(c.Request.Context(), user.Sub, c.Param("id"), c.Param("fileId"))
	if err != nil {
		c.JSON(serializer.ServiceErr(err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: urls})
}
