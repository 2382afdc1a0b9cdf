package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/studybuddy/internal/extract"
	"github.com/abhisek/studybuddy/internal/questiongen"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes.
const (
	CodeInvalidRequest   = "invalid_request"
	CodeGenerationFailed = "generation_failed"
	CodeUnavailable      = "llm_unavailable"
	CodeNoFile           = "no_file"
	CodeUnsupported      = "unsupported_format"
	CodeExtraction       = "extraction_failed"
	CodeTooLarge         = "file_too_large"
)

// ExtractResponse is the body of a successful POST /api/extract-text.
type ExtractResponse struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// ProbeResponse is the body of GET /api/test-llm.
type ProbeResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func abort(c *gin.Context, status int, code string, err error) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) generateQuestions(c *gin.Context) {
	var req questiongen.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidRequest, errors.New("request body must be a JSON object"))
		return
	}
	req = req.Defaults()
	req.Count = min(req.Count, s.opts.MaxCount)

	if err := req.Validate(); err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}

	questions, err := s.opts.Generator.Generate(c.Request.Context(), req)
	if err != nil {
		var gerr *questiongen.GenerationError
		if errors.As(err, &gerr) && gerr.Stage == questiongen.StageRequest {
			abort(c, http.StatusBadRequest, CodeInvalidRequest, err)
			return
		}
		s.logger.Error("question generation failed", "mode", req.Mode, "count", req.Count, "error", err)
		abort(c, http.StatusInternalServerError, CodeGenerationFailed, err)
		return
	}

	c.JSON(http.StatusOK, questiongen.Response{Questions: questions})
}

func (s *Server) testLLM(c *gin.Context) {
	if s.opts.Provider == nil {
		abort(c, http.StatusServiceUnavailable, CodeUnavailable, errors.New("no LLM provider is configured"))
		return
	}
	text, err := questiongen.Probe(c.Request.Context(), s.opts.Provider)
	if err != nil {
		abort(c, http.StatusBadGateway, CodeUnavailable, err)
		return
	}
	c.JSON(http.StatusOK, ProbeResponse{Model: s.opts.Provider.ModelID(), Response: text})
}

func (s *Server) extractText(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxUploadBytes)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abort(c, http.StatusRequestEntityTooLarge, CodeTooLarge, errors.New("file is too large"))
			return
		}
		abort(c, http.StatusBadRequest, CodeNoFile, extract.ErrNoFile)
		return
	}

	f, err := header.Open()
	if err != nil {
		abort(c, http.StatusBadRequest, CodeNoFile, extract.ErrNoFile)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		abort(c, http.StatusBadRequest, CodeNoFile, extract.ErrNoFile)
		return
	}

	text, err := extract.Bytes(header.Filename, data)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, ExtractResponse{Filename: header.Filename, Text: text})
	case errors.Is(err, extract.ErrNoFile):
		abort(c, http.StatusBadRequest, CodeNoFile, err)
	case errors.Is(err, extract.ErrUnsupported):
		abort(c, http.StatusUnsupportedMediaType, CodeUnsupported, err)
	default:
		s.logger.Warn("extraction failed", "filename", header.Filename, "error", err)
		abort(c, http.StatusUnprocessableEntity, CodeExtraction, err)
	}
}
