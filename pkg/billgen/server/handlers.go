package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/worksbill/billgen-go/pkg/billgen"
	"github.com/worksbill/billgen-go/pkg/billgen/cache"
	"github.com/worksbill/billgen-go/pkg/billgen/faults"
	"github.com/worksbill/billgen-go/pkg/billgen/memwatch"
	"github.com/worksbill/billgen-go/pkg/billgen/models"
	"github.com/worksbill/billgen-go/pkg/billgen/notes"
	"github.com/worksbill/billgen-go/pkg/billgen/registry"
	"github.com/worksbill/billgen-go/pkg/billgen/scrutiny"
)

const maxUploadBytes = 32 << 20 // 32 MiB

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>billgen</title>
<style>
body { font-family: sans-serif; max-width: 40em; margin: 3em auto; }
fieldset { margin-bottom: 1.5em; }
</style>
</head>
<body>
<h1>Contract Bill Generator</h1>
<p>Upload an input workbook with Title, Work Order, Bill Quantity and
(optionally) Extra Items sheets.</p>
<fieldset>
<legend>Generate bill workbook</legend>
<form action="/api/generate" method="post" enctype="multipart/form-data">
<input type="file" name="workbook" accept=".xlsx" required>
<button type="submit">Generate</button>
</form>
</fieldset>
<fieldset>
<legend>Note sheet (HTML)</legend>
<form action="/api/notesheet" method="post" enctype="multipart/form-data">
<input type="file" name="workbook" accept=".xlsx" required>
<button type="submit">Render</button>
</form>
</fieldset>
<fieldset>
<legend>Scrutiny report (HTML)</legend>
<form action="/api/scrutiny" method="post" enctype="multipart/form-data">
<input type="file" name="workbook" accept=".xlsx" required>
<button type="submit">Scrutinise</button>
</form>
</fieldset>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, nil); err != nil {
		s.logger.Warn("rendering index failed", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{"status": "ok"}

	if mon, err := registry.Get[*memwatch.Monitor](s.services, "monitor"); err == nil {
		if rss, err := mon.RSS(); err == nil {
			status["rss_bytes"] = rss
		}
	}
	if c, err := registry.Get[*cache.Cache](s.services, "cache"); err == nil {
		status["cache_entries"] = c.Len()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// loadUpload reads the uploaded workbook and parses it, consulting the
// cache keyed by content hash.
func (s *Server) loadUpload(r *http.Request) (*models.BillData, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("%w: %v", billgen.ErrInvalidFormat, err)
	}
	file, _, err := r.FormFile("workbook")
	if err != nil {
		return nil, fmt.Errorf("%w: missing workbook upload", billgen.ErrInvalidFormat)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	digest := sha256.Sum256(data)
	key := "upload|" + hex.EncodeToString(digest[:])

	c, cacheErr := registry.Get[*cache.Cache](s.services, "cache")
	if cacheErr == nil {
		var bill models.BillData
		if ok, err := c.Get(key, &bill); err == nil && ok {
			return &bill, nil
		}
	}

	bill, err := billgen.LoadReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if cacheErr == nil {
		if err := c.Put(key, bill); err != nil {
			s.logger.Warn("caching parsed bill failed", zap.Error(err))
		}
	}
	return bill, nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	bill, err := s.loadUpload(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out, _, _, err := billgen.BuildWorkbook(bill, s.cfg.BillOptions())
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer out.Close()

	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bill.xlsx"`)
	if err := out.Write(w); err != nil {
		s.logger.Warn("streaming workbook failed", zap.Error(err))
	}
}

func (s *Server) handleNoteSheet(w http.ResponseWriter, r *http.Request) {
	bill, err := s.loadUpload(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := s.cfg.BillOptions()
	sum := billgen.Summarize(bill, opts)
	billNotes := notes.ForBill(bill, sum, notes.Options{
		DeviationLimitPercent: opts.DeviationLimitPercent,
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := notes.RenderHTML(w, bill.Title, billNotes); err != nil {
		s.logger.Warn("rendering note sheet failed", zap.Error(err))
	}
}

func (s *Server) handleScrutiny(w http.ResponseWriter, r *http.Request) {
	bill, err := s.loadUpload(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := s.cfg.BillOptions()
	sum := billgen.Summarize(bill, opts)
	scrOpts := scrutiny.DefaultOptions()
	scrOpts.DeviationLimitPercent = opts.DeviationLimitPercent
	findings := scrutiny.Check(bill, sum, scrOpts)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := scrutiny.RenderHTML(w, bill.Title, findings); err != nil {
		s.logger.Warn("rendering scrutiny report failed", zap.Error(err))
	}
}

// writeError maps a fault category to an HTTP status.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	category := faults.Classify(err)

	status := http.StatusInternalServerError
	switch category {
	case faults.CategoryInput, faults.CategoryWorkbook:
		status = http.StatusUnprocessableEntity
	case faults.CategoryCanceled:
		status = http.StatusRequestTimeout
	}

	s.logger.Warn("request failed",
		zap.String("category", string(category)), zap.Error(err))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":    err.Error(),
		"category": string(category),
	})
}
