package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/seda/hobbyhive/internal/app/models"
	appRepos "github.com/seda/hobbyhive/internal/app/repositories"
)

type defaultEvent struct {
	title        string
	location     string
	pointsReward int
	startsIn     time.Duration
}

type defaultCommunity struct {
	name        string
	description string
	events      []defaultEvent
}

var defaultCommunities = []defaultCommunity{
	{
		name:        "Tabletop Guild",
		description: "Board games and pen-and-paper evenings",
		events: []defaultEvent{
			{title: "Board Game Night", location: "Community Hall", pointsReward: 15, startsIn: 48 * time.Hour},
			{title: "Catan Tournament", location: "Community Hall", pointsReward: 25, startsIn: 7 * 24 * time.Hour},
		},
	},
	{
		name:        "Trail Runners",
		description: "Weekend runs on the forest trails",
		events: []defaultEvent{
			{title: "Sunrise 10K", location: "North Gate", pointsReward: 20, startsIn: 72 * time.Hour},
		},
	},
	{
		name:        "Film Circle",
		description: "Screenings and discussions of classic cinema",
		events: []defaultEvent{
			{title: "Noir Double Feature", location: "Auditorium B", pointsReward: 10, startsIn: 5 * 24 * time.Hour},
		},
	},
}

// CreateDefaultData seeds the default communities and their events when
// they don't exist yet. Failures are collected so one broken entry does
// not block the rest.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	communityRepo := appRepos.NewCommunityRepository(dbPool)
	eventRepo := appRepos.NewEventRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (Communities/Events)...")
	var finalErr error

	for _, dc := range defaultCommunities {
		existing, err := communityRepo.GetByName(ctx, dc.name)
		if err != nil {
			lgr.Error().Err(err).Str("community", dc.name).Msg("Error looking up default community")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if existing != nil {
			continue
		}

		communityID, err := communityRepo.Create(ctx, &appModels.Community{
			Name:        dc.name,
			Description: dc.description,
		})
		if err != nil {
			lgr.Error().Err(err).Str("community", dc.name).Msg("Error creating default community")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		for _, de := range dc.events {
			_, err := eventRepo.Create(ctx, &appModels.Event{
				CommunityID:  communityID,
				Title:        de.title,
				Location:     de.location,
				PointsReward: de.pointsReward,
				StartsAt:     time.Now().Add(de.startsIn),
			})
			if err != nil {
				lgr.Error().Err(err).Str("event", de.title).Msg("Error creating default event")
				finalErr = errors.Join(finalErr, err)
			}
		}

		lgr.Info().Str("community", dc.name).Int("events", len(dc.events)).Msg("Seeded default community")
	}

	return finalErr
}
