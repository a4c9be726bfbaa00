package router

import (
	"context"
	"errors"

	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/api/handler"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/matcher"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// RegisterRoutes registers the student API routes.
func RegisterRoutes(h *server.Hertz, studentHandler *handler.StudentHandler) {
	api := h.Group("/api/v1")

	api.POST("/students/:id/cv", func(c context.Context, ctx *app.RequestContext) {
		studentID := ctx.Param("id")
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "file not found in request"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "opening uploaded file failed"})
			return
		}
		defer file.Close()

		resp, err := studentHandler.HandleCVUpload(c, studentID, file, fileHeader.Size, fileHeader.Filename)
		if err != nil {
			ctx.JSON(statusFor(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/students/:id/cv/extract", func(c context.Context, ctx *app.RequestContext) {
		studentID := ctx.Param("id")
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "file not found in request"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "opening uploaded file failed"})
			return
		}
		defer file.Close()

		resp, err := studentHandler.HandleCVExtract(c, studentID, file, fileHeader.Size, fileHeader.Filename)
		if err != nil {
			ctx.JSON(statusFor(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/students/:id/cv/:submission", func(c context.Context, ctx *app.RequestContext) {
		submission, err := studentHandler.GetSubmissionStatus(c, ctx.Param("id"), ctx.Param("submission"))
		if err != nil {
			ctx.JSON(statusFor(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, submission)
	})

	api.GET("/students/:id/cv/:submission/download", func(c context.Context, ctx *app.RequestContext) {
		downloadURL, err := studentHandler.GetCVDownloadURL(c, ctx.Param("id"), ctx.Param("submission"))
		if err != nil {
			ctx.JSON(statusFor(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"download_url": downloadURL})
	})

	api.DELETE("/students/:id/cv/:submission", func(c context.Context, ctx *app.RequestContext) {
		if err := studentHandler.HandleCVDelete(c, ctx.Param("id"), ctx.Param("submission")); err != nil {
			ctx.JSON(statusFor(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"status": "deleted"})
	})

	api.GET("/students/:id/profile", func(c context.Context, ctx *app.RequestContext) {
		student, err := studentHandler.GetProfile(c, ctx.Param("id"))
		if err != nil {
			ctx.JSON(statusFor(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, student)
	})

	api.POST("/students/:id/courses/match", func(c context.Context, ctx *app.RequestContext) {
		var prefs matcher.Preferences
		if err := ctx.BindJSON(&prefs); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "invalid preferences payload"})
			return
		}

		matches, err := studentHandler.MatchCourses(c, ctx.Param("id"), prefs)
		if err != nil {
			ctx.JSON(statusFor(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"matches": matches, "count": len(matches)})
	})

	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, studentHandler.Health(c))
	})
}

// statusFor maps handler errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, handler.ErrStudentNotFound), errors.Is(err, handler.ErrSubmissionNotFound):
		return consts.StatusNotFound
	case errors.Is(err, handler.ErrFileTooLarge):
		return consts.StatusRequestEntityTooLarge
	case errors.Is(err, handler.ErrExtensionDenied), errors.Is(err, handler.ErrUnsupportedType):
		return consts.StatusUnsupportedMediaType
	case errors.Is(err, handler.ErrRateLimited):
		return consts.StatusTooManyRequests
	default:
		return consts.StatusInternalServerError
	}
}
