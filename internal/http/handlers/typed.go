package handlers

import (
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/kschroeder20/nba-database-2000-2025/internal/logging"
)

// Players serves /players/{id} and /players/{id}/seasons.
func (h *Handler) Players(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.deps.Logger) {
		return
	}
	id, seasons, ok := parseEntityPath(r.URL.Path, "/players/")
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid player id", h.deps.Logger)
		return
	}
	logger := loggerFromContext(r, h.deps.Logger)

	if seasons {
		lines, err := h.deps.Players.Seasons(r.Context(), id)
		if err != nil {
			logging.Error(logger, "player seasons lookup failed", err)
			writeError(w, r, nethttp.StatusInternalServerError, "query failed", h.deps.Logger)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"player_id": id, "seasons": lines}, h.deps.Logger)
		return
	}

	player, found, err := h.deps.Players.PlayerByID(r.Context(), id)
	if err != nil {
		logging.Error(logger, "player lookup failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "query failed", h.deps.Logger)
		return
	}
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "player not found", h.deps.Logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, player, h.deps.Logger)
}

// Teams serves /teams, /teams/{id} and /teams/{id}/seasons.
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.deps.Logger) {
		return
	}
	logger := loggerFromContext(r, h.deps.Logger)

	if r.URL.Path == "/teams" || r.URL.Path == "/teams/" {
		teams, err := h.deps.Teams.Teams(r.Context())
		if err != nil {
			logging.Error(logger, "team list failed", err)
			writeError(w, r, nethttp.StatusInternalServerError, "query failed", h.deps.Logger)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"teams": teams}, h.deps.Logger)
		return
	}

	id, seasons, ok := parseEntityPath(r.URL.Path, "/teams/")
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team id", h.deps.Logger)
		return
	}

	if seasons {
		lines, err := h.deps.Teams.Seasons(r.Context(), id)
		if err != nil {
			logging.Error(logger, "team seasons lookup failed", err)
			writeError(w, r, nethttp.StatusInternalServerError, "query failed", h.deps.Logger)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"team_id": id, "seasons": lines}, h.deps.Logger)
		return
	}

	team, found, err := h.deps.Teams.TeamByID(r.Context(), id)
	if err != nil {
		logging.Error(logger, "team lookup failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "query failed", h.deps.Logger)
		return
	}
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "team not found", h.deps.Logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, team, h.deps.Logger)
}

// Games serves /games/{id}.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.deps.Logger) {
		return
	}
	id, seasons, ok := parseEntityPath(r.URL.Path, "/games/")
	if !ok || seasons {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.deps.Logger)
		return
	}
	logger := loggerFromContext(r, h.deps.Logger)

	game, found, err := h.deps.Games.GameByID(r.Context(), id)
	if err != nil {
		logging.Error(logger, "game lookup failed", err, slog.String("game_id", id))
		writeError(w, r, nethttp.StatusInternalServerError, "query failed", h.deps.Logger)
		return
	}
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.deps.Logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, game, h.deps.Logger)
}

// parseEntityPath splits /{prefix}{id}[/seasons] and unescapes the id.
func parseEntityPath(path, prefix string) (id string, seasons bool, ok bool) {
	rest := strings.TrimPrefix(path, prefix)
	if rest == "" || rest == path {
		return "", false, false
	}
	if strings.HasSuffix(rest, "/seasons") {
		seasons = true
		rest = strings.TrimSuffix(rest, "/seasons")
	}
	id, err := url.PathUnescape(rest)
	if err != nil || id == "" || strings.Contains(id, "/") {
		return "", false, false
	}
	return id, seasons, true
}
