// Package api exposes the extraction engine over HTTP so statements
// can be parsed without a local install.
package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gcascante/bankmerge/extractor"
	"github.com/gcascante/bankmerge/extractor/common"
	"github.com/gcascante/bankmerge/extractor/decode"
)

// maxUploadBytes caps the in-memory portion of a multipart upload.
const maxUploadBytes = 32 << 20

// Config holds the API server configuration.
type Config struct {
	Port string
}

// DefaultConfig returns the default API configuration.
func DefaultConfig() Config {
	return Config{Port: ":8080"}
}

// Server is the HTTP front end for the extractor.
type Server struct {
	config Config
	mux    *http.ServeMux
}

// New creates a server with its routes registered.
func New(cfg Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("/extract", s.handleExtract)
	s.mux.HandleFunc("/health", s.handleHealth)
	return s
}

// Handler returns the http.Handler so callers can mount the server
// inside their own http.Server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server (blocking).
func (s *Server) Start() error {
	logrus.WithField("addr", s.config.Port).Info("starting api server")
	return http.ListenAndServe(s.config.Port, s.mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// extractResponse is the JSON body for a successful extraction.
type extractResponse struct {
	File         string               `json:"file"`
	Kind         string               `json:"kind"`
	Transactions []common.Transaction `json:"transactions"`
}

// handleExtract accepts a multipart upload and returns the parsed
// transactions. The uploaded name matters: classification reads the
// extension and the BAC name markers from it.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	logrus.WithField("remote", r.RemoteAddr).Debug("extract request")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Could not parse multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Could not get uploaded file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	name := filepath.Base(handler.Filename)
	if !extractor.SupportedExt(name) {
		http.Error(w, "Unsupported file type: "+name, http.StatusBadRequest)
		return
	}

	if textOnly(r) {
		s.handleTextOnly(w, file, name)
		return
	}

	kind, err := extractor.KindFromString(r.FormValue("type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// The decoders work off paths, so the upload lands in a scratch
	// directory under its original name before processing.
	path, cleanup, err := spool(file, name)
	if err != nil {
		http.Error(w, "Could not store upload: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer cleanup()

	records, err := extractor.ProcessFile(path, kind)
	if err != nil {
		http.Error(w, "Extraction failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if records == nil {
		records = []common.Transaction{}
	}
	if kind == extractor.KindAuto {
		kind = extractor.Classify(name)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(extractResponse{
		File:         name,
		Kind:         string(kind),
		Transactions: records,
	})
}

// handleTextOnly returns the raw text rows of a PDF upload without
// running any transaction parser.
func (s *Server) handleTextOnly(w http.ResponseWriter, file io.Reader, name string) {
	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Could not read file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	rows, err := decode.PDFRowsFromReader(bytes.NewReader(data))
	if err != nil {
		http.Error(w, "Could not extract text from file: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"filename": name,
		"text":     strings.Join(rows, "\n"),
	})
}

func textOnly(r *http.Request) bool {
	return r.FormValue("text_only") == "true" || r.URL.Query().Get("text_only") == "true"
}

// spool writes the upload into a fresh temp directory, preserving the
// original base name. The returned cleanup removes the directory.
func spool(file io.Reader, name string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "bankmerge-upload-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.RemoveAll(dir) }

	path := filepath.Join(dir, name)
	out, err := os.Create(path)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
