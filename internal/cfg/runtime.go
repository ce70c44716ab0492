package cfg

import (
	"context"
	"strings"
	"ytdeck/internal/app"
	"ytdeck/internal/blocking"
	"ytdeck/internal/contracts"
	"ytdeck/internal/domain/keys"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/feed"
	"ytdeck/internal/filter"
	"ytdeck/internal/metacache"
	"ytdeck/internal/search"
	"ytdeck/internal/sources/cookies"
	"ytdeck/internal/sources/dataapi"
	"ytdeck/internal/sources/innertube"
	"ytdeck/internal/sources/rss"

	"github.com/spf13/viper"
)

// Runtime holds the long-lived resources opened by main.
type Runtime struct {
	Store contracts.Store
	Cache *metacache.Cache
}

// Services are the collaborators built from Runtime and the current configuration.
type Services struct {
	Blocks  *blocking.BlockList
	Filter  *filter.Filter
	Content *app.Content
	Library *search.Library
}

// BuildServices wires sources, aggregation and filtering from viper settings.
//
// Region and language stored in the settings table take precedence over flags.
func BuildServices(ctx context.Context, rt *Runtime) *Services {
	region := settingOr(ctx, rt.Store.SettingsStore(), keys.SettingRegion, viper.GetString(keys.Region))
	language := settingOr(ctx, rt.Store.SettingsStore(), keys.SettingLanguage, viper.GetString(keys.Language))

	var jar *cookies.Manager
	if viper.GetBool(keys.CookiesFromBrowser) {
		jar = cookies.NewManager()
	}

	it := innertube.New(
		innertube.WithRate(viper.GetFloat64(keys.InnertubeRPS)),
		innertube.WithLocale(language, region),
		innertube.WithCookies(jar),
	)
	feeds := rss.New(
		rss.WithTimeout(viper.GetDuration(keys.SourceTimeout)),
		rss.WithCookies(jar),
	)

	var trending app.TrendingProvider
	if key := viper.GetString(keys.YouTubeAPIKey); key != "" {
		c, err := dataapi.New(ctx, key, dataapi.WithRegion(region))
		if err != nil {
			logger.Pl.W("YouTube Data API unavailable, trending uses innertube only: %v", err)
		} else {
			trending = c
		}
	}

	blocks := blocking.New(rt.Store.BlockStore())
	f := filter.New(blocks)

	deps := app.Deps{
		Lister:   it,
		Feeds:    feeds,
		Trending: trending,
		Aggregator: feed.New(
			feed.WithTimeout(viper.GetDuration(keys.SourceTimeout)),
			feed.WithConcurrency(viper.GetInt(keys.FeedConcurrency)),
		),
		Filter:        f,
		Subscriptions: rt.Store.SubscriptionStore(),
		History:       rt.Store.HistoryStore(),
	}
	if rt.Cache.Enabled() {
		deps.Cache = rt.Cache
	}

	return &Services{
		Blocks:  blocks,
		Filter:  f,
		Content: app.NewContent(deps),
		Library: search.New(rt.Store.HistoryStore(), rt.Store.SubscriptionStore(), f),
	}
}

// settingOr returns the stored setting for key, or fallback when unset or unreadable.
func settingOr(ctx context.Context, s contracts.SettingsStore, key, fallback string) string {
	v, found, err := s.GetSetting(ctx, key)
	if err != nil {
		logger.Pl.D(1, "Could not read setting %q: %v", key, err)
		return fallback
	}
	if !found || strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
