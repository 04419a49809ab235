// Package server provides the GoSignature web form UI and HTTP API. It is a
// thin collaborator over the rendering core: it collects raw field values,
// surfaces per-field validation results, manages stored profiles, and hands
// back the rendered PNG bytes.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os/exec"
	"runtime"

	"go.uber.org/zap"

	"github.com/xob0t/GoSignature/pkg/config"
	"github.com/xob0t/GoSignature/pkg/profile"
	"github.com/xob0t/GoSignature/pkg/render"
	"github.com/xob0t/GoSignature/pkg/signature"
)

//go:embed web/*
var webContent embed.FS

// ── Server ──

type srv struct {
	cfg   *config.Config
	store *profile.Store
	log   *zap.Logger
}

// formFields is the JSON body of render, validate and profile-save requests.
type formFields struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
	Website  string `json:"website"`
	LogoPath string `json:"logo_path"`
}

func (f formFields) input() signature.Input {
	return signature.Input{
		Name:     f.Name,
		Position: f.Position,
		Address:  f.Address,
		Phone:    f.Phone,
		Mobile:   f.Mobile,
		Email:    f.Email,
		Website:  f.Website,
		LogoPath: f.LogoPath,
	}
}

// RunServe starts the web UI on the given port and blocks.
func RunServe(port string, cfg *config.Config, store *profile.Store, log *zap.Logger) error {
	s := &srv{cfg: cfg, store: store, log: log}

	webFS, err := fs.Sub(webContent, "web")
	if err != nil {
		return fmt.Errorf("embed web: %w", err)
	}

	mux := http.NewServeMux()

	// API routes.
	mux.HandleFunc("POST /api/render", s.handleRender)
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.HandleFunc("GET /api/profiles", s.handleListProfiles)
	mux.HandleFunc("POST /api/profiles", s.handleSaveProfile)
	mux.HandleFunc("GET /api/profiles/{name}", s.handleGetProfile)
	mux.HandleFunc("DELETE /api/profiles/{name}", s.handleDeleteProfile)

	// Static files.
	mux.Handle("/", http.FileServer(http.FS(webFS)))

	addr := ":" + port
	log.Info("GoSignature UI ready", zap.String("url", "http://localhost"+addr))

	// Open browser.
	go openBrowser("http://localhost" + addr)

	return http.ListenAndServe(addr, mux)
}

// ── Render ──

func (s *srv) handleRender(w http.ResponseWriter, r *http.Request) {
	var fields formFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	data, err := signature.New(fields.input(), s.cfg.DefaultWebsite)
	if err != nil {
		httpError(w, http.StatusUnprocessableEntity, err)
		return
	}

	pngBytes, err := render.Generate(data, s.cfg, s.log)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(pngBytes)
}

// ── Validation ──

// fieldResult is one entry of the validate response: ok, or a reason.
type fieldResult struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

func (s *srv) handleValidate(w http.ResponseWriter, r *http.Request) {
	var fields formFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	checks := map[string]func() error{
		"name":      func() error { _, err := signature.ValidateName(fields.Name); return err },
		"position":  func() error { _, err := signature.ValidateRequired("position", fields.Position); return err },
		"address":   func() error { _, err := signature.ValidateRequired("address", fields.Address); return err },
		"phone":     func() error { _, err := signature.ValidatePhone("phone", fields.Phone); return err },
		"mobile":    func() error { _, err := signature.ValidatePhone("mobile", fields.Mobile); return err },
		"email":     func() error { _, err := signature.ValidateEmail(fields.Email); return err },
		"website":   func() error { _, err := signature.ValidateURL(fields.Website); return err },
		"logo_path": func() error { _, err := signature.ValidateLogoPath(fields.LogoPath); return err },
	}

	results := make(map[string]fieldResult, len(checks))
	for field, check := range checks {
		if err := check(); err != nil {
			var vErr *signature.ValidationError
			if errors.As(err, &vErr) {
				results[field] = fieldResult{OK: false, Reason: vErr.Reason}
			} else {
				results[field] = fieldResult{OK: false, Reason: err.Error()}
			}
			continue
		}
		results[field] = fieldResult{OK: true}
	}

	writeJSON(w, results)
}

// ── Profiles ──

func (s *srv) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List()
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, names)
}

func (s *srv) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileName string `json:"profile_name"`
		formFields
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	data, err := signature.New(req.input(), s.cfg.DefaultWebsite)
	if err != nil {
		httpError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err := s.store.Save(req.ProfileName, data); err != nil {
		httpError(w, http.StatusUnprocessableEntity, err)
		return
	}

	s.log.Info("profile saved", zap.String("profile", req.ProfileName))
	w.WriteHeader(http.StatusNoContent)
}

func (s *srv) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	data, err := s.store.Load(name, s.cfg.DefaultWebsite)
	if err != nil {
		httpError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, data.ToProfile(name))
}

func (s *srv) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := s.store.Delete(name); err != nil {
		httpError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Helpers ──

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// openBrowser launches the system browser at url; failures are ignored, the
// URL is already logged.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	cmd.Start()
}
