package controllers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/pkg/filestorage"
)

// FileController serves stored uploads
type FileController struct {
	storage filestorage.FileStorage
}

// NewFileController creates a new FileController
func NewFileController(storage filestorage.FileStorage) *FileController {
	return &FileController{storage: storage}
}

// ServeFile streams an uploaded file by its stored name
// @Summary Download uploaded file
// @Tags files
// @Produce octet-stream
// @Param filename path string true "Stored file name"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /files/{filename} [get]
func (c *FileController) ServeFile(ctx *gin.Context) {
	path := c.storage.GetFullPath(ctx.Param("filename"))
	if path == "" {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeResourceNotFound, "File not found"))
		return
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeResourceNotFound, "File not found"))
		return
	}
	ctx.File(path)
}
