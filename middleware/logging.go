package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// statusRecorder remembers the status code and body size written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(p)
	s.bytes += n
	return n, err
}

func (s *statusRecorder) Unwrap() http.ResponseWriter { return s.ResponseWriter }

func (s *statusRecorder) statusCode() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

func record(next http.Handler, w http.ResponseWriter, r *http.Request) (*statusRecorder, time.Duration) {
	now := time.Now()
	rec := &statusRecorder{ResponseWriter: w}
	next.ServeHTTP(rec, r)
	return rec, time.Since(now)
}

// LoggingMiddleware provides basic logging without colors.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec, took := record(next, w, r)
		log.Printf("%s %s %d %s in %s\n", r.Method, r.URL.RequestURI(), rec.statusCode(), humanize.Bytes(uint64(rec.bytes)), took)
	})
}

// LoggingMiddlewareColored provides colored logging.
func LoggingMiddlewareColored(next http.Handler) http.Handler {
	methodStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true).Background(lipgloss.Color("12")).Width(8).Align(lipgloss.Center)
	sizeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec, took := record(next, w, r)

		statusCode := rec.statusCode()
		styledStatus := getStatusCodeStyle(statusCode).Render(fmt.Sprintf("%d", statusCode))
		styledMethod := methodStyle.Render(r.Method)
		styledSize := sizeStyle.Render(humanize.Bytes(uint64(rec.bytes)))

		log.Printf("%s %s %s %s in %s\n", styledMethod, r.URL.RequestURI(), styledStatus, styledSize, took)
	})
}

// getStatusCodeStyle returns a lipgloss style for HTTP status codes
func getStatusCodeStyle(statusCode int) lipgloss.Style {
	switch {
	case statusCode >= 200 && statusCode < 300:
		// 2xx Success - Green
		return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	case statusCode >= 300 && statusCode < 400:
		// 3xx Redirection - Yellow
		return lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	case statusCode >= 400 && statusCode < 500:
		// 4xx Client Error - Orange/Red
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	case statusCode >= 500:
		// 5xx Server Error - Bright Red
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	}
}
