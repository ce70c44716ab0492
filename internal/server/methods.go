package server

import (
	"net/http"
	"strings"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/membership"
	"ytdeck/internal/models"
	"ytdeck/internal/sources/rss"
)

// ----------------- Block list -------------------------------------------------------------------------------------

type blockChannelRequest struct {
	ChannelID string `json:"channelId"`
	Name      string `json:"name"`
}

type blockKeywordRequest struct {
	Keyword string `json:"keyword"`
}

func (s *Server) handleListBlockedChannels(w http.ResponseWriter, r *http.Request) {
	list, err := s.blocks.Channels(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (s *Server) handleBlockChannel(w http.ResponseWriter, r *http.Request) {
	var req blockChannelRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.blocks.BlockChannel(r.Context(), req.ChannelID, req.Name); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnblockChannel(w http.ResponseWriter, r *http.Request) {
	if err := s.blocks.UnblockChannel(r.Context(), pathParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBlockedKeywords(w http.ResponseWriter, r *http.Request) {
	list, err := s.blocks.Keywords(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (s *Server) handleBlockKeyword(w http.ResponseWriter, r *http.Request) {
	var req blockKeywordRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.blocks.BlockKeyword(r.Context(), req.Keyword); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnblockKeyword(w http.ResponseWriter, r *http.Request) {
	if err := s.blocks.UnblockKeyword(r.Context(), pathParam(r, "keyword")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------- Subscriptions ----------------------------------------------------------------------------------

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.subs.ListSubscriptions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(subs))
}

// handleSubscribe accepts a channel ID or channel URL.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var sub models.Subscription
	if err := decodeBody(w, r, &sub); err != nil {
		writeError(w, r, err)
		return
	}
	id, ok := rss.ChannelIDFromURL(sub.ChannelID)
	if !ok {
		writeError(w, r, badRequest("not a channel ID: %q", sub.ChannelID))
		return
	}
	sub.ChannelID = id
	if strings.TrimSpace(sub.Name) == "" {
		sub.Name = id
	}
	if err := s.subs.AddSubscription(r.Context(), sub); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	if err := s.subs.RemoveSubscription(r.Context(), pathParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------- Playlists --------------------------------------------------------------------------------------

type playlistRequest struct {
	Name string `json:"name"`
}

type reorderRequest struct {
	VideoIDs []string `json:"videoIds"`
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	list, err := s.playlists.ListPlaylists(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, r, badRequest("empty playlist name"))
		return
	}
	pl, err := s.playlists.CreatePlaylist(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, pl)
}

// handleDefaultPlaylist returns the default playlist's ID and member video IDs, creating it on first use.
func (s *Server) handleDefaultPlaylist(w http.ResponseWriter, r *http.Request) {
	pl, err := s.playlists.DefaultPlaylist(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := s.playlists.PlaylistItems(r.Context(), pl.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := membership.DefaultPlaylist{ID: pl.ID, Name: pl.Name, VideoIDs: make([]string, 0, len(items))}
	for _, it := range items {
		out.VideoIDs = append(out.VideoIDs, it.VideoID)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	pl, err := s.playlists.GetPlaylist(r.Context(), pathParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pl)
}

func (s *Server) handleRenamePlaylist(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, r, badRequest("empty playlist name"))
		return
	}
	if err := s.playlists.RenamePlaylist(r.Context(), pathParam(r, "id"), name); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := s.playlists.DeletePlaylist(r.Context(), pathParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetDefaultPlaylist(w http.ResponseWriter, r *http.Request) {
	if err := s.playlists.SetDefaultPlaylist(r.Context(), pathParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlaylistItems(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if _, err := s.playlists.GetPlaylist(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	items, err := s.playlists.PlaylistItems(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

// handleAddPlaylistItem takes a content card. Adding a present video is a no-op.
func (s *Server) handleAddPlaylistItem(w http.ResponseWriter, r *http.Request) {
	var item models.ContentItem
	if err := decodeBody(w, r, &item); err != nil {
		writeError(w, r, err)
		return
	}
	if !item.Normalize() {
		writeError(w, r, badRequest("item without an ID"))
		return
	}
	id := pathParam(r, "id")
	if _, err := s.playlists.GetPlaylist(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.playlists.AddPlaylistItem(r.Context(), models.PlaylistItemFromContent(id, item)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemovePlaylistItem(w http.ResponseWriter, r *http.Request) {
	if err := s.playlists.RemovePlaylistItem(r.Context(), pathParam(r, "id"), pathParam(r, "videoId")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReorderPlaylist(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.playlists.ReorderPlaylist(r.Context(), pathParam(r, "id"), req.VideoIDs); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------- History ----------------------------------------------------------------------------------------

type watchRequest struct {
	Item            models.ContentItem `json:"item"`
	ProgressSeconds int                `json:"progressSeconds"`
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", consts.DefaultListLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := s.history.ListHistory(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(entries))
}

func (s *Server) handleRecordWatch(w http.ResponseWriter, r *http.Request) {
	var req watchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.content.Watch(r.Context(), req.Item, req.ProgressSeconds); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.history.RemoveHistory(r.Context(), pathParam(r, "videoId")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.history.ClearHistory(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------- Settings ---------------------------------------------------------------------------------------

type settingRequest struct {
	Value string `json:"value"`
}

func (s *Server) handleListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.AllSettings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(settings))
}

func (s *Server) handleSetSetting(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(pathParam(r, "key"))
	if key == "" {
		writeError(w, r, badRequest("empty setting key"))
		return
	}
	var req settingRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.settings.SetSetting(r.Context(), key, req.Value); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.Setting{Key: key, Value: req.Value})
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
