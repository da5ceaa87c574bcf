package site

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ziadkadry99/gamecat/internal/catalog"
	"github.com/ziadkadry99/gamecat/internal/viewer"
)

// catalogResponse is the JSON response for the catalog endpoint.
type catalogResponse struct {
	Games   []catalog.Entry `json:"games"`
	Message string          `json:"message,omitempty"`
}

// gameResponse is the JSON response for the game endpoint.
type gameResponse struct {
	Name     string   `json:"name"`
	Summary  string   `json:"summary"`
	Body     string   `json:"body"`
	Images   []string `json:"images"`
	Strategy string   `json:"strategy"`
	Videos   []string `json:"videos"`
	Message  string   `json:"message,omitempty"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Site) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.writeCatalog(w, r.URL.Query().Get("q"))
}

func (s *Site) writeCatalog(w http.ResponseWriter, query string) {
	c, err := s.app.Catalog()
	games := c.Filter(query)
	if games == nil {
		games = []catalog.Entry{}
	}
	writeJSON(w, http.StatusOK, catalogResponse{Games: games, Message: viewer.CatalogMessage(err)})
}

func (s *Site) handleGame(w http.ResponseWriter, r *http.Request) {
	d, err := s.app.Detail(r.Context(), gameName(r))
	if d.Entry.Name == "" {
		writeLookupError(w, err)
		return
	}

	resp := gameResponse{
		Name:     d.Entry.Name,
		Images:   []string{},
		Videos:   []string{},
		Strategy: d.Images.Strategy.String(),
	}
	if err != nil {
		s.logger.Warn("game content unavailable", "game", d.Entry.Name, "err", err)
		resp.Message = viewer.MsgContentUnavailable
		writeJSON(w, http.StatusOK, resp)
		return
	}
	resp.Summary = d.Summary
	resp.Body = d.Document.Body
	if len(d.Images.URLs) > 0 {
		resp.Images = d.Images.URLs
	} else {
		resp.Message = viewer.MsgNoImages
	}
	if len(d.Videos) > 0 {
		resp.Videos = d.Videos
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Site) handleCard(w http.ResponseWriter, r *http.Request) {
	card, err := s.app.Card(r.Context(), gameName(r))
	if r.Context().Err() != nil {
		return
	}
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Site) handleToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	// A failed reload is reported through the catalog message.
	_ = s.app.SetToken(r.Context(), req.Token)
	s.writeCatalog(w, "")
}

func (s *Site) handleReload(w http.ResponseWriter, r *http.Request) {
	_ = s.app.Reload(r.Context())
	s.writeCatalog(w, "")
}

func writeLookupError(w http.ResponseWriter, err error) {
	msg := viewer.CatalogMessage(err)
	if errors.Is(err, viewer.ErrUnknownGame) {
		msg = "unknown game"
	}
	writeJSON(w, http.StatusNotFound, errorResponse{Error: msg})
}
