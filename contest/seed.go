package contest

import (
	"context"
	"fmt"
	"time"

	"github.com/contestarena/arena/internal/logutil"
)

// EnsureDefaults installs the default tracks and a sample competition
// when the catalog is empty. It is safe to call on every startup.
func EnsureDefaults(ctx context.Context, store *Store) error {
	log := logutil.GetOrDefault(ctx)
	tracks, err := store.Tracks(ctx)
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		defaults := []Track{
			{Name: "Innovation & Entrepreneurship", Description: "Projects with market potential and a viable business plan", Icon: "fas fa-lightbulb"},
			{Name: "Artificial Intelligence", Description: "Applied AI solutions across industries", Icon: "fas fa-laptop-code"},
			{Name: "Rural Revitalization", Description: "Practical projects supporting rural development", Icon: "fas fa-leaf"},
			{Name: "Biomedical Science", Description: "Biomedical innovation improving healthcare outcomes", Icon: "fas fa-flask"},
		}
		for _, t := range defaults {
			created, err := store.CreateTrack(ctx, t)
			if err != nil {
				return fmt.Errorf("unable to seed track %v, cause %w", t.Name, err)
			}
			tracks = append(tracks, created)
		}
		log.Info().Int("tracks", len(tracks)).Msg("Seeded default tracks")
	}
	competitions, err := store.Competitions(ctx)
	if err != nil {
		return err
	}
	if len(competitions) == 0 && len(tracks) > 0 {
		now := time.Now().UTC()
		deadline := now.Add(30 * 24 * time.Hour)
		end := now.Add(90 * 24 * time.Hour)
		_, err := store.CreateCompetition(ctx, Competition{
			Title:                "Collegiate Data Literacy Competition",
			Description:          "A national competition assessing data analysis and data engineering skills of undergraduate teams.",
			TrackID:              tracks[0].ID,
			RegistrationDeadline: &deadline,
			StartDate:            &now,
			EndDate:              &end,
			Status:               CompetitionActive,
		})
		if err != nil {
			return fmt.Errorf("unable to seed sample competition, cause %w", err)
		}
		log.Info().Msg("Seeded sample competition")
	}
	return nil
}
