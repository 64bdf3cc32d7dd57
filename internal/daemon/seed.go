package daemon

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/folio-admin/folio-admin/internal/db/controller/setting"
	"github.com/folio-admin/folio-admin/internal/db/models"
	"github.com/folio-admin/folio-admin/internal/db/store"
)

// seedSettings are written for every key that is not set yet.
var seedSettings = map[string]string{ //nolint:gochecknoglobals
	"seo_title":       "Portfolio",
	"seo_description": "Projects, achievements and testimonials.",
	"seo_keywords":    "portfolio, projects, developer",
}

func seedAchievements() []*models.Achievement {
	return []*models.Achievement{
		{
			Title:       "First open source release",
			Description: "Published a first library and kept it maintained.",
			Year:        2022,
			Icon:        "fa-code-branch",
			Link:        models.DefaultAchievementLink,
		},
		{
			Title:       "Conference talk",
			Description: "Spoke about building small and fast web services.",
			Year:        2023,
			Highlight:   true,
			Icon:        "fa-microphone",
			Link:        models.DefaultAchievementLink,
		},
		{
			Title:       "Hackathon winner",
			Description: "Built a working prototype in a weekend with a team of three.",
			Year:        2024,
			Highlight:   true,
			Icon:        models.DefaultAchievementIcon,
			Link:        models.DefaultAchievementLink,
		},
	}
}

func seedTestimonials() []*models.Testimonial {
	return []*models.Testimonial{
		{
			Name:    "Jane Doe",
			Role:    "Product Manager",
			Message: "Reliable, fast and always clear about trade-offs.",
			Rating:  models.DefaultRating,
		},
		{
			Name:    "John Roe",
			Role:    "Engineering Lead",
			Message: "Picked up a legacy codebase and shipped within the first week.",
			Rating:  models.DefaultRating,
		},
	}
}

func seedSocials() []*models.Social {
	return []*models.Social{
		{Platform: "LinkedIn", URL: "https://www.linkedin.com/", Icon: "fa-linkedin-in"},
		{Platform: "Twitter", URL: "https://twitter.com/", Icon: "fa-twitter"},
		{Platform: "Instagram", URL: "https://www.instagram.com/", Icon: "fa-instagram"},
	}
}

// counter and adder are the parts of a collection seeding needs.
type counter interface {
	Count(ctx context.Context) (int64, error)
}

type adder[PT any] interface {
	counter
	Add(ctx context.Context, record PT) (uint64, error)
}

// seedCollection adds records only if the collection is empty.
func seedCollection[PT any](ctx context.Context, name string, c adder[PT], records []PT) error {
	n, err := c.Count(ctx)
	if err != nil {
		return err
	}

	if n > 0 {
		return nil
	}

	for _, r := range records {
		if _, err = c.Add(ctx, r); err != nil {
			return err
		}
	}

	log.Info().Str("collection", name).Int("records", len(records)).Msg("seeded placeholder content")

	return nil
}

// Seed fills empty collections with placeholder content and adds missing seo settings.
// Users are never seeded, the operator credential from the config is always available.
func Seed(st *store.Store) error {
	ctx := context.Background()

	if err := seedCollection(ctx, "achievements", st.Achievements, seedAchievements()); err != nil {
		return err
	}

	if err := seedCollection(ctx, "testimonials", st.Testimonials, seedTestimonials()); err != nil {
		return err
	}

	if err := seedCollection(ctx, "socials", st.Socials, seedSocials()); err != nil {
		return err
	}

	for key, value := range seedSettings {
		_, err := st.Setting(ctx, key)
		if err == nil {
			continue
		}

		if !errors.Is(err, setting.ErrSettingNotFound) {
			return err
		}

		if err = st.SetSetting(ctx, key, value); err != nil {
			return err
		}

		log.Info().Str("setting", key).Msg("seeded default setting")
	}

	return nil
}
