package handlers

import (
	"content-gate/app/server/constants"
	"content-gate/app/server/middlewares"
	"content-gate/app/server/models"
	"content-gate/app/server/response"
	"content-gate/app/server/services/files"
	"content-gate/app/server/utils"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"mime"
	"net/http"
	"strconv"
	"time"
)

type fileInfo struct {
	ID           uint      `json:"id"`
	OriginalName string    `json:"originalName"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

func fileInfoFrom(file *models.StoredFile) *fileInfo {
	return &fileInfo{
		ID:           file.ID,
		OriginalName: file.OriginalName,
		Size:         file.Size,
		UploadedAt:   file.UploadedAt,
	}
}

func (a *App) PdfUpload(c echo.Context) error {
	rctx := c.Request().Context()
	ident := middlewares.IdentityFrom(c)

	// 匿名用户不读取请求体
	if !ident.Authenticated() {
		return a.er(c, http.StatusUnauthorized)
	}

	fh, err := c.FormFile(constants.UploadFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return c.JSON(http.StatusBadRequest, response.Error("file not uploaded", nil))
		}
		a.l.Debug("failed to read multipart form", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	src, err := fh.Open()
	if err != nil {
		a.l.Error("failed to open uploaded file", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	defer src.Close()

	file, err := a.files.Upload(rctx, ident.UserID, &files.Upload{
		Body:         src,
		ContentType:  fh.Header.Get(echo.HeaderContentType),
		Size:         fh.Size,
		OriginalName: fh.Filename,
	})
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(http.StatusCreated, response.Success(fileInfoFrom(file), "uploaded"))
}

func (a *App) PdfList(c echo.Context) error {
	rctx := c.Request().Context()
	ident := middlewares.IdentityFrom(c)

	list, err := a.files.List(rctx, ident.UserID)
	if err != nil {
		return a.fail(c, err)
	}

	infos := make([]*fileInfo, 0, len(list))
	for i := range list {
		infos = append(infos, fileInfoFrom(&list[i]))
	}

	return c.JSON(http.StatusOK, response.Success(infos, ""))
}

func (a *App) PdfDownload(c echo.Context) error {
	rctx := c.Request().Context()
	ident := middlewares.IdentityFrom(c)

	// 提取 ID
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	dl, err := a.files.Download(rctx, id, ident.UserID)
	if err != nil {
		return a.fail(c, err)
	}
	defer dl.Body.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": dl.OriginalName})
	if disposition == "" {
		disposition = "attachment"
	}

	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, disposition)
	// 对象存储可能不返回长度
	if dl.Size > 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(dl.Size, 10))
	}

	return c.Stream(http.StatusOK, dl.ContentType, dl.Body)
}

func (a *App) PdfDelete(c echo.Context) error {
	rctx := c.Request().Context()
	ident := middlewares.IdentityFrom(c)

	// 提取 ID
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	if err = a.files.Delete(rctx, id, ident.UserID); err != nil {
		return a.fail(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(nil, "deleted"))
}
