package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/treehi/pogo-tracker/pkg/pokedex"
	"github.com/treehi/pogo-tracker/pkg/repository"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// newsListHandler returns stored news items, newest first
func (s *Server) newsListHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePaging(r, 50)

	items, err := s.news.ListItems(r.Context(), limit, offset)
	if err != nil {
		lgr.Printf("[ERROR] failed to list news: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"news": items, "count": len(items)})
}

// videoListHandler returns stored video items, newest first
func (s *Server) videoListHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePaging(r, 50)

	videos, err := s.videos.ListVideos(r.Context(), limit, offset)
	if err != nil {
		lgr.Printf("[ERROR] failed to list videos: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"videos": videos, "count": len(videos)})
}

// subscribeHandler adds an email to the digest recipient list
func (s *Server) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		renderError(w, r, fmt.Errorf("invalid email address"), http.StatusBadRequest)
		return
	}

	sub, err := s.subscribers.Subscribe(r.Context(), req.Email)
	if err != nil {
		lgr.Printf("[ERROR] failed to subscribe %s: %v", req.Email, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusCreated, sub)
}

// listSubscriptionsHandler returns all subscribers including inactive ones
func (s *Server) listSubscriptionsHandler(w http.ResponseWriter, r *http.Request) {
	subs, err := s.subscribers.List(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to list subscribers: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"subscribers": subs, "count": len(subs)})
}

// getSubscriptionHandler returns a single subscriber by email
func (s *Server) getSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	sub, err := s.subscribers.Get(r.Context(), email)
	if errors.Is(err, repository.ErrNotFound) {
		renderError(w, r, fmt.Errorf("subscriber not found"), http.StatusNotFound)
		return
	}
	if err != nil {
		lgr.Printf("[ERROR] failed to get subscriber %s: %v", email, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, sub)
}

// updateSubscriptionHandler toggles a subscriber's active flag
func (s *Server) updateSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	if !req.Active {
		if err := s.unsubscribe(w, r, email); err != nil {
			return
		}
		sub, err := s.subscribers.Get(r.Context(), email)
		if err != nil {
			renderError(w, r, err, http.StatusInternalServerError)
			return
		}
		renderJSON(w, r, http.StatusOK, sub)
		return
	}

	sub, err := s.subscribers.Subscribe(r.Context(), email)
	if err != nil {
		lgr.Printf("[ERROR] failed to reactivate %s: %v", email, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, sub)
}

// unsubscribeHandler deactivates a subscriber
func (s *Server) unsubscribeHandler(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if err := s.unsubscribe(w, r, email); err != nil {
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "unsubscribed", "email": email})
}

// unsubscribe runs the store call and writes the error response on failure
func (s *Server) unsubscribe(w http.ResponseWriter, r *http.Request, email string) error {
	err := s.subscribers.Unsubscribe(r.Context(), email)
	if errors.Is(err, repository.ErrNotFound) {
		renderError(w, r, fmt.Errorf("subscriber not found"), http.StatusNotFound)
		return err
	}
	if err != nil {
		lgr.Printf("[ERROR] failed to unsubscribe %s: %v", email, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return err
	}
	return nil
}

// analyzeHandler estimates IVs from manually entered CP and HP readings
func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PokemonName string `json:"pokemon_name"`
		CP          int    `json:"cp"`
		HP          int    `json:"hp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.PokemonName) == "" {
		renderError(w, r, fmt.Errorf("pokemon_name is required"), http.StatusBadRequest)
		return
	}

	analysis, err := s.analyzer.Analyze(req.PokemonName, req.CP, req.HP)
	if err != nil {
		renderError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	// analysis history is best effort, the result itself is deterministic
	if err := s.analyses.Create(r.Context(), &analysis); err != nil {
		lgr.Printf("[WARN] failed to store analysis for %s: %v", req.PokemonName, err)
	}
	renderJSON(w, r, http.StatusOK, analysis)
}

// analysisHistoryHandler returns recent stored analyses
func (s *Server) analysisHistoryHandler(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 20)

	analyses, err := s.analyses.List(r.Context(), limit)
	if err != nil {
		lgr.Printf("[ERROR] failed to list analyses: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"analyses": analyses, "count": len(analyses)})
}

// pokedexListHandler returns all loaded pokedex entries
func (s *Server) pokedexListHandler(w http.ResponseWriter, r *http.Request) {
	all := s.pokedex.All()
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"pokemon": all, "count": len(all)})
}

// pokedexSearchHandler searches pokedex entries by korean or english name
func (s *Server) pokedexSearchHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		renderError(w, r, fmt.Errorf("query parameter q is required"), http.StatusBadRequest)
		return
	}

	found := s.pokedex.Search(query)
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"pokemon": found, "count": len(found)})
}

// pokedexGetHandler returns one pokedex entry with moves and current season tiers
func (s *Server) pokedexGetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid pokedex number"), http.StatusBadRequest)
		return
	}

	p, ok := s.pokedex.ByNumber(id)
	if !ok {
		renderError(w, r, fmt.Errorf("pokemon %d not found", id), http.StatusNotFound)
		return
	}

	resp := map[string]interface{}{
		"pokemon": p,
		"moves":   s.pokedex.MovesFor(p.PokedexNumber),
	}
	if season := s.pokedex.CurrentSeason(); season != "" {
		if tier, ok := s.pokedex.TierFor(p.PokedexNumber, season); ok {
			resp["seasonal_tier"] = tier
		}
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// pvpLeagueNamesKo maps league identifiers to their korean display names
var pvpLeagueNamesKo = map[string]string{
	"Great":  "슈퍼리그",
	"Ultra":  "하이퍼리그",
	"Master": "마스터리그",
}

// raidCountersHandler returns recommended counter teams for a raid boss,
// with member pokemon and move names resolved from the pokedex
func (s *Server) raidCountersHandler(w http.ResponseWriter, r *http.Request) {
	bossID, err := strconv.Atoi(r.PathValue("boss"))
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid boss pokedex number"), http.StatusBadRequest)
		return
	}

	boss, ok := s.pokedex.ByNumber(bossID)
	if !ok {
		renderError(w, r, fmt.Errorf("pokemon %d not found", bossID), http.StatusNotFound)
		return
	}

	set, ok := s.pokedex.RaidCountersFor(bossID)
	if !ok {
		renderError(w, r, fmt.Errorf("no raid counters for %s", boss.NameKo), http.StatusNotFound)
		return
	}

	teams := make([]map[string]interface{}, 0, len(set.RecommendedTeams))
	for _, team := range set.RecommendedTeams {
		members := make([]map[string]interface{}, 0, len(team.Members))
		for _, m := range team.Members {
			members = append(members, s.enrichTeamMember(m))
		}
		teams = append(teams, map[string]interface{}{
			"name_ko":        team.NameKo,
			"description_ko": team.DescriptionKo,
			"members":        members,
		})
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"boss_id":           boss.PokedexNumber,
		"boss_name_ko":      boss.NameKo,
		"boss_name_en":      boss.NameEn,
		"boss_types":        boss.Types,
		"boss_image_url":    boss.ImageURL,
		"season_id":         set.SeasonID,
		"recommended_teams": teams,
	})
}

// pvpRankingsHandler returns ranked pvp parties for a league,
// with member pokemon and move names resolved from the pokedex
func (s *Server) pvpRankingsHandler(w http.ResponseWriter, r *http.Request) {
	league := r.URL.Query().Get("league")
	if league == "" {
		league = "Great"
	}
	leagueNameKo, ok := pvpLeagueNamesKo[league]
	if !ok {
		renderError(w, r, fmt.Errorf("invalid league %q, expected Great, Ultra or Master", league), http.StatusBadRequest)
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	lr, ok := s.pokedex.PvPRankings(league, limit)
	if !ok {
		renderError(w, r, fmt.Errorf("no party rankings for league %s", league), http.StatusNotFound)
		return
	}

	rankings := make([]map[string]interface{}, 0, len(lr.Rankings))
	for _, ranking := range lr.Rankings {
		team := make([]map[string]interface{}, 0, len(ranking.Team))
		for _, m := range ranking.Team {
			team = append(team, s.enrichTeamMember(m))
		}
		rankings = append(rankings, map[string]interface{}{
			"rank":             ranking.Rank,
			"team":             team,
			"estimated_rating": ranking.EstimatedRating,
			"notes_ko":         ranking.NotesKo,
		})
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"league":         lr.League,
		"league_name_ko": leagueNameKo,
		"season_id":      lr.SeasonID,
		"rankings":       rankings,
	})
}

// enrichTeamMember resolves pokemon and move korean names for a team member
func (s *Server) enrichTeamMember(m pokedex.TeamMember) map[string]interface{} {
	out := map[string]interface{}{
		"pokemon_id":      m.PokemonID,
		"fast_move_id":    m.FastMoveID,
		"charged_move_id": m.ChargedMoveID,
		"role_ko":         m.RoleKo,
	}
	if p, ok := s.pokedex.ByNumber(m.PokemonID); ok {
		out["pokemon_name_ko"] = p.NameKo
		out["pokemon_image_url"] = p.ImageURL
	}
	if mv, ok := s.pokedex.MoveByID(m.FastMoveID); ok {
		out["fast_move_name_ko"] = mv.NameKo
	}
	if mv, ok := s.pokedex.MoveByID(m.ChargedMoveID); ok {
		out["charged_move_name_ko"] = mv.NameKo
	}
	return out
}

// crawlNowHandler triggers the news pipeline and waits for the result
func (s *Server) crawlNowHandler(w http.ResponseWriter, r *http.Request) {
	s.runJobHandler(w, r, "news")
}

// refreshVideosHandler triggers the video pipeline and waits for the result
func (s *Server) refreshVideosHandler(w http.ResponseWriter, r *http.Request) {
	s.runJobHandler(w, r, "videos")
}

// runJobHandler runs a named job via the scheduler. Pipeline failures come
// back as a structured payload with the partial result, not a bare 500.
func (s *Server) runJobHandler(w http.ResponseWriter, r *http.Request, name string) {
	res, err := s.scheduler.RunNow(r.Context(), name)
	if err != nil {
		lgr.Printf("[ERROR] manual %s run failed: %v", name, err)
		renderJSON(w, r, http.StatusBadGateway, map[string]interface{}{
			"error":  err.Error(),
			"result": res,
		})
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// schedulerStatusHandler reports job scheduling state
func (s *Server) schedulerStatusHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"jobs": s.scheduler.Status()})
}

// reloadDataHandler re-reads the pokedex data files from disk
func (s *Server) reloadDataHandler(w http.ResponseWriter, r *http.Request) {
	s.pokedex.Reload()
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"status": "reloaded", "stats": s.pokedex.Stats()})
}

// dataStatsHandler reports loaded pokedex data counts
func (s *Server) dataStatsHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.pokedex.Stats())
}

// parseLimit reads the limit query parameter, falling back to def
func parseLimit(r *http.Request, def int) int {
	limit := def
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	return limit
}

// parsePaging reads limit and offset query parameters
func parsePaging(r *http.Request, def int) (limit, offset int) {
	limit = parseLimit(r, def)
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
