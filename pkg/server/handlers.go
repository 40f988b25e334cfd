package server

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raymyers/cconv/pkg/convert"
)

const defaultFilename = "converted"

// page is the data of templates/index.html.
type page struct {
	Code      string
	Output    string
	Direction string
	Filename  string
	Error     string
}

type convertRequest struct {
	Code      string `json:"code"`
	Direction string `json:"direction" binding:"required"`
	Filename  string `json:"filename"`
}

type convertResponse struct {
	Output    string         `json:"output"`
	Direction string         `json:"direction"`
	Filename  string         `json:"filename"`
	Rewrites  map[string]int `json:"rewrites"`
	Guessed   []string       `json:"guessed,omitempty"`
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", page{Direction: "c2cpp", Filename: defaultFilename})
}

func (s *Server) submit(c *gin.Context) {
	s.limitBody(c)
	if err := parseForm(c.Request); err != nil {
		s.renderError(c, bodyStatus(err), page{Direction: "c2cpp", Filename: defaultFilename}, "could not read form: "+err.Error())
		return
	}
	p := page{
		Code:      c.PostForm("code"),
		Direction: c.DefaultPostForm("direction", "c2cpp"),
		Filename:  c.DefaultPostForm("filename", defaultFilename),
	}
	d, err := convert.ParseDirection(p.Direction)
	if err != nil {
		s.renderError(c, http.StatusBadRequest, p, err.Error())
		return
	}
	res := s.convert(p.Code, d)
	if c.PostForm("download") != "" {
		name := downloadName(p.Filename, d)
		c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(res.Output))
		return
	}
	p.Output = res.Output
	c.HTML(http.StatusOK, "index.html", p)
}

func (s *Server) renderError(c *gin.Context, status int, p page, msg string) {
	p.Error = msg
	c.HTML(status, "index.html", p)
}

func (s *Server) convertJSON(c *gin.Context) {
	s.limitBody(c)
	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(bodyStatus(err), gin.H{"error": err.Error()})
		return
	}
	d, err := convert.ParseDirection(req.Direction)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res := s.convert(req.Code, d)
	c.JSON(http.StatusOK, convertResponse{
		Output:    res.Output,
		Direction: d.String(),
		Filename:  downloadName(req.Filename, d),
		Rewrites:  res.Rewrites,
		Guessed:   res.Guessed,
	})
}

func (s *Server) healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes)
}

// parseForm reads url-encoded and multipart bodies so that size errors
// surface instead of being swallowed by gin's lazy form parsing.
func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(1 << 20)
	}
	return r.ParseForm()
}

// bodyStatus maps a body read error to 413 or 400.
func bodyStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// downloadName turns a user supplied name into "<base>.<ext>" for d.
func downloadName(name string, d convert.Direction) string {
	name = strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, `\`, "/")))
	if name == "" || name == "." || name == "/" {
		name = defaultFilename
	}
	return fmt.Sprintf("%s%s", name, d.Ext())
}
