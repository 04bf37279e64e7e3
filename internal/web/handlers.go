package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"sleepcalc/internal/cycle"
	"sleepcalc/internal/render"
)

type pageData struct {
	Mode     cycle.Mode
	Wake     string
	DemoTime string
	Now      string
	Heading  string
	Version  string

	// Refresh is the meta refresh interval in seconds; 0 disables it.
	Refresh int

	Error   string
	Entries []cycle.Entry

	// Share text: meta description when Entries is set (for link previews).
	ShareDescription string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := pageData{
		Wake:     orDefault(q.Get("wake"), s.cfg.Wake.String()),
		DemoTime: strings.TrimSpace(q.Get("demoTime")),
		Version:  s.opts.Version,
	}

	mode, err := cycle.ParseMode(q.Get("mode"))
	if err != nil {
		data.Mode = cycle.ModeWake
		data.Heading = data.Mode.Heading()
		data.Error = err.Error()
		s.execute(w, http.StatusBadRequest, data)
		return
	}
	data.Mode = mode
	data.Heading = mode.Heading()

	now, err := s.now(r)
	if err != nil {
		data.Error = "demo time: " + err.Error()
		s.execute(w, http.StatusBadRequest, data)
		return
	}
	data.Now = now.Format12()

	at := now
	if mode == cycle.ModeWake {
		at, err = cycle.ParseClock(data.Wake)
		if err != nil {
			data.Error = "wake time: " + err.Error()
			s.execute(w, http.StatusBadRequest, data)
			return
		}
	} else {
		data.Refresh = int(s.cfg.Refresh.Seconds())
	}

	entries, err := s.calculate(mode, at)
	if err != nil {
		data.Error = err.Error()
		s.execute(w, http.StatusBadRequest, data)
		return
	}
	data.Entries = entries
	data.ShareDescription = shareDescription(mode, at, entries)
	s.execute(w, http.StatusOK, data)
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	wake := strings.TrimSpace(r.FormValue("wake"))
	demo := strings.TrimSpace(r.FormValue("demoTime"))
	data := pageData{
		Wake:     wake,
		DemoTime: demo,
		Version:  s.opts.Version,
	}

	mode, err := cycle.ParseMode(r.FormValue("mode"))
	if err != nil {
		data.Mode = cycle.ModeWake
		data.Heading = data.Mode.Heading()
		data.Error = err.Error()
		s.execute(w, http.StatusBadRequest, data)
		return
	}
	data.Mode = mode
	data.Heading = mode.Heading()

	if mode == cycle.ModeWake {
		if wake == "" {
			data.Error = "wake time is required (HH:MM)"
			s.execute(w, http.StatusBadRequest, data)
			return
		}
		if _, err := cycle.ParseClock(wake); err != nil {
			data.Error = "wake time: " + err.Error()
			s.execute(w, http.StatusBadRequest, data)
			return
		}
	}
	if demo != "" {
		if _, err := cycle.ParseClock(demo); err != nil {
			data.Error = "demo time: " + err.Error()
			s.execute(w, http.StatusBadRequest, data)
			return
		}
	}

	// Redirect to GET with query params (only non-defaults) so the URL reflects the calculation.
	http.Redirect(w, r, buildCalcURL(mode, wake, demo, s.cfg.Wake.String()), http.StatusFound)
}

func (s *Server) handleBedtimes(w http.ResponseWriter, r *http.Request) {
	wake := orDefault(r.URL.Query().Get("wake"), s.cfg.Wake.String())
	at, err := cycle.ParseClock(wake)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeResult(w, cycle.ModeWake, at)
}

func (s *Server) handleWakeTimes(w http.ResponseWriter, r *http.Request) {
	var (
		at  cycle.Clock
		err error
	)
	if v := strings.TrimSpace(r.URL.Query().Get("now")); v != "" {
		at, err = cycle.ParseClock(v)
	} else {
		at, err = s.now(r)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeResult(w, cycle.ModeSleep, at)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.opts.Version})
}

func (s *Server) writeResult(w http.ResponseWriter, mode cycle.Mode, at cycle.Clock) {
	entries, err := s.calculate(mode, at)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, render.NewResult(mode, at, entries))
}

func (s *Server) execute(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tpl.Execute(w, data); err != nil {
		s.logger.Error("rendering page", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// buildCalcURL returns "/?..." and only adds params that differ from the
// defaults.
func buildCalcURL(mode cycle.Mode, wake, demo, defaultWake string) string {
	v := url.Values{}
	if mode != cycle.ModeWake {
		v.Set("mode", string(mode))
	}
	if mode == cycle.ModeWake && wake != "" && wake != defaultWake {
		v.Set("wake", wake)
	}
	if demo != "" {
		v.Set("demoTime", demo)
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

func orDefault(val, def string) string {
	if strings.TrimSpace(val) == "" {
		return def
	}
	return strings.TrimSpace(val)
}

// shareDescription returns the meta description for link previews.
func shareDescription(mode cycle.Mode, at cycle.Clock, entries []cycle.Entry) string {
	var picks []string
	for _, e := range entries {
		if e.Recommended {
			picks = append(picks, e.Display)
		}
	}
	if mode == cycle.ModeSleep {
		return fmt.Sprintf("Asleep by %s? Wake up at %s.", at.Add(cycle.OnsetMinutes).Format12(), strings.Join(picks, ", "))
	}
	return fmt.Sprintf("Waking at %s? Go to bed at %s.", at.Format12(), strings.Join(picks, ", "))
}
