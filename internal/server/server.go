package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rezonia/ubl-processor/internal/model"
	"github.com/rezonia/ubl-processor/internal/normalize"
	"github.com/rezonia/ubl-processor/internal/processor"
	"github.com/rezonia/ubl-processor/internal/validate"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64
	Debug        bool
	Logger       *logrus.Entry
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *processor.Pipeline
	log      *logrus.Entry
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	log := config.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	s := &Server{
		config:   config,
		router:   router,
		pipeline: processor.NewPipeline(processor.WithLogger(log)),
		log:      log,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	v1.Use(bodyLimit(s.config.MaxBodyBytes))
	{
		v1.POST("/extract", s.handleExtract)
		v1.POST("/parse", s.handleParse)
		v1.POST("/validate", s.handleValidate)
		v1.POST("/info", s.handleInfo)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.log.WithField("address", s.config.Address).Info("listening")
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleExtract(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	documentID := c.Query("document_id")
	if documentID == "" {
		documentID = uuid.NewString()
	}

	mimeType := c.GetHeader("Content-Type")
	if mimeType == "" {
		mimeType = processor.DefaultMimeType
	}

	result, err := s.pipeline.Extract(c.Request.Context(), body, documentID, mimeType)
	if err != nil {
		if errors.Is(err, model.ErrInvalidUBL) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
			return
		}
		s.log.WithError(err).WithField("document_id", documentID).Error("extract failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "extraction failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleParse(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	doc, err := s.pipeline.Parse(body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   model.ErrInvalidUBL.Error(),
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, normalize.Sanitize(doc))
}

func (s *Server) handleValidate(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	doc, err := s.pipeline.Parse(body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Valid:    false,
			Errors:   []*model.ValidationError{model.NewValidationError("document", nil, validate.RuleRequired, err.Error())},
			Warnings: []*model.ValidationError{},
		})
		return
	}

	var opts []validate.Option
	if strict, _ := strconv.ParseBool(c.Query("strict")); strict {
		opts = append(opts, validate.Strict())
	}

	report := validate.Check(doc, opts...)
	c.JSON(http.StatusOK, ValidationResponse(*report))
}

func (s *Server) handleInfo(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	info := InfoResponse{
		Format:   processor.DetectFormat(body).String(),
		MimeType: processor.DetectMimeType(body),
		Size:     len(body),
	}

	if doc, err := s.pipeline.Parse(body); err == nil {
		info.DocumentKind = string(doc.Kind)
		info.DocumentID = doc.ID
		info.Lines = len(doc.Lines)
		info.Attachments = len(doc.Attachments)
		info.Signed = doc.Signed
	}

	c.JSON(http.StatusOK, info)
}

// readBody writes the error response itself when it returns false
func readBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return nil, false
	}

	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return nil, false
	}

	return body, true
}
