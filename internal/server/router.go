// Package server exposes ytdeck over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"
	"ytdeck/internal/blocking"
	"ytdeck/internal/contracts"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/feed"
	"ytdeck/internal/models"
	"ytdeck/internal/search"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ContentService serves remote content listings.
type ContentService interface {
	Search(ctx context.Context, query, continuation string) (feed.Result, error)
	Trending(ctx context.Context) (feed.Result, error)
	SubscriptionFeed(ctx context.Context) (feed.Result, error)
	ChannelVideos(ctx context.Context, channelID, continuation string) (feed.Result, error)
	ChannelShorts(ctx context.Context, channelID string) (feed.Result, error)
	Related(ctx context.Context, videoID string) (feed.Result, error)
	Video(ctx context.Context, videoID string) (models.ContentItem, error)
	Watch(ctx context.Context, item models.ContentItem, progress int) error
}

// LibrarySearcher ranks local library content.
type LibrarySearcher interface {
	Search(ctx context.Context, query string) (search.Results, error)
}

// Server holds the handlers' collaborators.
type Server struct {
	content   ContentService
	blocks    *blocking.BlockList
	subs      contracts.SubscriptionStore
	playlists contracts.PlaylistStore
	history   contracts.HistoryStore
	settings  contracts.SettingsStore
	library   LibrarySearcher
}

// New returns a server over the given store and services.
func New(s contracts.Store, content ContentService, blocks *blocking.BlockList, library LibrarySearcher) *Server {
	return &Server{
		content:   content,
		blocks:    blocks,
		subs:      s.SubscriptionStore(),
		playlists: s.PlaylistStore(),
		history:   s.HistoryStore(),
		settings:  s.SettingsStore(),
		library:   library,
	}
}

// NewRouter returns a http Handler.
func (s *Server) NewRouter() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(consts.ServerRequestTimeout))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.SetHeader("Content-Type", "application/json"))

		// Remote content
		r.Get("/search", s.handleSearch)
		r.Get("/trending", s.handleTrending)
		r.Get("/feed", s.handleFeed)
		r.Get("/channels/{id}/videos", s.handleChannelVideos)
		r.Get("/channels/{id}/shorts", s.handleChannelShorts)
		r.Get("/videos/{id}", s.handleVideo)
		r.Get("/videos/{id}/related", s.handleRelated)

		// Block list
		r.Route("/blocks", func(r chi.Router) {
			r.Get("/channels", s.handleListBlockedChannels)
			r.Post("/channels", s.handleBlockChannel)
			r.Delete("/channels/{id}", s.handleUnblockChannel)
			r.Get("/keywords", s.handleListBlockedKeywords)
			r.Post("/keywords", s.handleBlockKeyword)
			r.Delete("/keywords/{keyword}", s.handleUnblockKeyword)
		})

		// Subscriptions
		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/", s.handleListSubscriptions)
			r.Post("/", s.handleSubscribe)
			r.Delete("/{id}", s.handleUnsubscribe)
		})

		// Playlists
		r.Route("/playlists", func(r chi.Router) {
			r.Get("/", s.handleListPlaylists)
			r.Post("/", s.handleCreatePlaylist)
			r.Get("/default", s.handleDefaultPlaylist)
			r.Get("/{id}", s.handleGetPlaylist)
			r.Put("/{id}", s.handleRenamePlaylist)
			r.Delete("/{id}", s.handleDeletePlaylist)
			r.Put("/{id}/default", s.handleSetDefaultPlaylist)
			r.Get("/{id}/items", s.handlePlaylistItems)
			r.Post("/{id}/items", s.handleAddPlaylistItem)
			r.Delete("/{id}/items/{videoId}", s.handleRemovePlaylistItem)
			r.Put("/{id}/order", s.handleReorderPlaylist)
		})

		// History
		r.Route("/history", func(r chi.Router) {
			r.Get("/", s.handleListHistory)
			r.Post("/", s.handleRecordWatch)
			r.Delete("/", s.handleClearHistory)
			r.Delete("/{videoId}", s.handleRemoveHistory)
		})

		// Settings
		r.Get("/settings", s.handleListSettings)
		r.Put("/settings/{key}", s.handleSetSetting)

		// Local library
		r.Get("/library/search", s.handleLibrarySearch)
	})

	return r
}

// StartServer serves h on host:port until ctx is cancelled, then shuts down gracefully.
func StartServer(ctx context.Context, host string, port int, h http.Handler) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Pl.S("ytdeck server running on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Pl.I("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), consts.ServerShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
