package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/render"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/adapter/csvfile"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/dashboard"
)

// DownloadFilename is the attachment name of the filtered CSV export.
const DownloadFilename = "filtered_gbif.csv"

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	s.metrics.HTTPRequests.WithLabelValues("options").Inc()
	render.JSON(w, r, s.dataset.Choices())
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.metrics.HTTPRequests.WithLabelValues("view").Inc()

	f, err := parseFilters(r.URL.Query())
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	opts, err := parseOptions(r.URL.Query(), s.pointLimit)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	start := time.Now()
	view := s.dataset.View(f, opts)
	s.metrics.ViewDuration.Observe(time.Since(start).Seconds())
	s.metrics.ViewRows.Observe(float64(view.Summary.TotalRecords))

	render.JSON(w, r, view)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	s.metrics.HTTPRequests.WithLabelValues("download").Inc()

	f, err := parseFilters(r.URL.Query())
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	t, message := s.dataset.Table()
	if t == nil {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, errorResponse{Error: message})
		return
	}

	sub := dashboard.Apply(t, f)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", DownloadFilename))
	if err := csvfile.Write(w, sub, ','); err != nil {
		s.logger.Error("write download", "error", err)
	}
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, errorResponse{Error: err.Error()})
}

// parseFilters reads country, kingdom, year, and species. A kingdom or year
// parameter that is present but empty selects nothing.
func parseFilters(q url.Values) (dashboard.Filters, error) {
	f := dashboard.Filters{
		Country: strings.TrimSpace(q.Get("country")),
		Species: q.Get("species"),
	}
	if vals, ok := q["kingdom"]; ok {
		f.Kingdoms = splitValues(vals)
	}
	if vals, ok := q["year"]; ok {
		years := []int{}
		for _, v := range splitValues(vals) {
			y, err := strconv.Atoi(v)
			if err != nil {
				return dashboard.Filters{}, fmt.Errorf("invalid year %q", v)
			}
			years = append(years, y)
		}
		f.Years = years
	}
	return f, nil
}

func parseOptions(q url.Values, pointLimit int) (dashboard.Options, error) {
	opts := dashboard.DefaultOptions()
	if pointLimit > 0 {
		opts.PointLimit = pointLimit
	}

	level, err := dashboard.ParseLevel(q.Get("level"))
	if err != nil {
		return opts, err
	}
	opts.Level = level

	if opts.Clusters, err = parseBool(q, "clusters", opts.Clusters); err != nil {
		return opts, err
	}
	if opts.Heatmap, err = parseBool(q, "heatmap", opts.Heatmap); err != nil {
		return opts, err
	}
	return opts, nil
}

func parseBool(q url.Values, key string, def bool) (bool, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q", key, v)
	}
	return b, nil
}

// splitValues accepts repeated parameters and comma-separated lists.
func splitValues(vals []string) []string {
	out := []string{}
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
