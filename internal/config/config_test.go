package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/squads/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.CSVDelimiter, convey.ShouldEqual, ";")
			convey.So(cfg.Delimiter(), convey.ShouldEqual, ';')
			convey.So(cfg.DefaultSort, convey.ShouldEqual, "average")
			convey.So(cfg.MinTeamSize, convey.ShouldEqual, 2)
			convey.So(cfg.MaxTeamSize, convey.ShouldEqual, 10)
			convey.So(cfg.TeamNames, convey.ShouldBeEmpty)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("When the delimiter is two characters", func() {
			cfg.CSVDelimiter = ";;"

			convey.Convey("Then it is invalid", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When max team size is below min", func() {
			cfg.MinTeamSize = 4
			cfg.MaxTeamSize = 3

			convey.Convey("Then it is invalid", func() {
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "max_team_size")
			})
		})

		convey.Convey("When min team size is zero", func() {
			cfg.MinTeamSize = 0

			convey.Convey("Then it is invalid", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the upload cap is zero", func() {
			cfg.MaxUploadBytes = 0

			convey.Convey("Then it is invalid", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
