package server

import (
	"net/http"
	"ytdeck/internal/feed"
	"ytdeck/internal/models"
)

// handleSearch runs a remote search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := s.content.Search(r.Context(), q.Get("q"), q.Get("continuation"))
	s.writeResult(w, r, res, err)
}

// handleTrending returns trending content.
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	res, err := s.content.Trending(r.Context())
	s.writeResult(w, r, res, err)
}

// handleFeed returns the merged subscription feed.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	res, err := s.content.SubscriptionFeed(r.Context())
	s.writeResult(w, r, res, err)
}

// handleChannelVideos lists a channel's uploads.
func (s *Server) handleChannelVideos(w http.ResponseWriter, r *http.Request) {
	res, err := s.content.ChannelVideos(r.Context(), pathParam(r, "id"), r.URL.Query().Get("continuation"))
	s.writeResult(w, r, res, err)
}

// handleChannelShorts lists a channel's shorts.
func (s *Server) handleChannelShorts(w http.ResponseWriter, r *http.Request) {
	res, err := s.content.ChannelShorts(r.Context(), pathParam(r, "id"))
	s.writeResult(w, r, res, err)
}

// handleRelated lists suggestions for a video.
func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	res, err := s.content.Related(r.Context(), pathParam(r, "id"))
	s.writeResult(w, r, res, err)
}

// handleVideo returns single-video metadata.
func (s *Server) handleVideo(w http.ResponseWriter, r *http.Request) {
	item, err := s.content.Video(r.Context(), pathParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleLibrarySearch searches history and subscriptions.
func (s *Server) handleLibrarySearch(w http.ResponseWriter, r *http.Request) {
	res, err := s.library.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// writeResult writes a listing. Lists are never encoded as null.
func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, res feed.Result, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	if res.Videos == nil {
		res.Videos = []models.ContentItem{}
	}
	if res.Shorts == nil {
		res.Shorts = []models.ContentItem{}
	}
	writeJSON(w, http.StatusOK, res)
}
