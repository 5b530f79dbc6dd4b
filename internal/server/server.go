// Package server exposes the analysis engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/KaramelBytes/drawstats-cli/internal/draws"
	"github.com/KaramelBytes/drawstats-cli/internal/source"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RemoteStore is the subset of the Drive client the server needs.
type RemoteStore interface {
	ListCSV(ctx context.Context) ([]source.RemoteFile, error)
	Download(ctx context.Context, fileID string) (string, error)
}

// Config wires the server.
type Config struct {
	Options draws.Options
	// Drive may be nil; the /drive routes then answer 503.
	Drive RemoteStore
	// MaxUploadBytes caps request bodies; 0 means 10 MiB.
	MaxUploadBytes int64
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// FileListResponse is the body of GET /drive/files.
type FileListResponse struct {
	Files []source.RemoteFile `json:"files"`
}

type handler struct {
	cfg Config
}

// New builds the router. Callers choose gin's mode before calling.
func New(cfg Config) *gin.Engine {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	h := &handler{cfg: cfg}

	router := gin.New()
	router.Use(requestID(), gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "drawstats API is running"})
	})
	router.POST("/stats", h.uploadStats)
	router.GET("/drive/files", h.listDriveFiles)
	router.POST("/drive/files/:id/stats", h.driveFileStats)
	return router
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// uploadStats accepts a multipart "file" field or a raw CSV body.
func (h *handler) uploadStats(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)

	var text string
	var err error
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		var fh *multipart.FileHeader
		fh, err = c.FormFile("file")
		if err != nil {
			if h.tooLarge(c, err) {
				return
			}
			abortWith(c, http.StatusBadRequest, fmt.Sprintf("No file selected: %v", err))
			return
		}
		text, err = readUpload(fh)
	} else {
		text, err = source.ReadAll(c.Request.Body)
	}
	if err != nil {
		if h.tooLarge(c, err) {
			return
		}
		abortWith(c, http.StatusBadRequest, fmt.Sprintf("Failed to read upload: %v", err))
		return
	}
	h.respondWithReport(c, text)
}

// tooLarge answers 413 when err comes from the upload size cap.
func (h *handler) tooLarge(c *gin.Context, err error) bool {
	var mbe *http.MaxBytesError
	if !errors.As(err, &mbe) {
		return false
	}
	abortWith(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("Upload exceeds the %d byte limit", mbe.Limit))
	return true
}

func readUpload(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	return string(b), nil
}

func (h *handler) listDriveFiles(c *gin.Context) {
	if h.cfg.Drive == nil {
		abortWith(c, http.StatusServiceUnavailable, "Remote storage is not configured")
		return
	}
	files, err := h.cfg.Drive.ListCSV(c.Request.Context())
	if err != nil {
		abortWith(c, driveStatus(err), fmt.Sprintf("Failed to list files: %v", err))
		return
	}
	c.JSON(http.StatusOK, FileListResponse{Files: files})
}

func (h *handler) driveFileStats(c *gin.Context) {
	if h.cfg.Drive == nil {
		abortWith(c, http.StatusServiceUnavailable, "Remote storage is not configured")
		return
	}
	text, err := h.cfg.Drive.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWith(c, driveStatus(err), fmt.Sprintf("Failed to download file: %v", err))
		return
	}
	h.respondWithReport(c, text)
}

func (h *handler) respondWithReport(c *gin.Context, text string) {
	rep, err := draws.Analyze(text, h.cfg.Options)
	if errors.Is(err, draws.ErrEmptyDataset) {
		abortWith(c, http.StatusUnprocessableEntity, draws.EmptyMessage)
		return
	}
	if err != nil {
		abortWith(c, http.StatusInternalServerError, fmt.Sprintf("Internal server error: %v", err))
		return
	}
	c.JSON(http.StatusOK, rep)
}

// driveStatus maps storage errors onto HTTP status codes.
func driveStatus(err error) int {
	var authErr *source.AuthError
	var nfErr *source.NotFoundError
	var rlErr *source.RateLimitError
	switch {
	case errors.Is(err, source.ErrMissingCredentials), errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &nfErr):
		return http.StatusNotFound
	case errors.As(err, &rlErr):
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

func abortWith(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Error: msg})
}
