package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	repository "github.com/marblehq/bountyboard/internal/adapters/repository"
	service "github.com/marblehq/bountyboard/internal/app"
	"github.com/marblehq/bountyboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

// textRecognizer treats the submitted image bytes as the recognized text,
// so tests can feed OCR output directly through the pipeline.
type textRecognizer struct{}

func (textRecognizer) Recognize(_ context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", errors.New("no text recognized")
	}
	return string(image), nil
}

func screenshot(lines ...string) []byte {
	return []byte(strings.Join(lines, "\n"))
}

func newService(t *testing.T) (*service.Service, *repository.JSONStore) {
	t.Helper()
	store := repository.NewJSONStore(filepath.Join(t.TempDir(), "bounty_board.json"))
	svc := service.New(
		service.WithStore(store),
		service.WithRecognizer(textRecognizer{}),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc, store
}

func boardOf(svc *service.Service) map[string]int {
	out := map[string]int{}
	for _, row := range svc.Leaderboard(context.Background(), 0) {
		out[row.Name] = row.Bounty
	}
	return out
}

func TestSubmit(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc, store := newService(t)
		ctx := context.Background()

		race := screenshot(
			"Place Player Time",
			"1ST alice 00:10",
			"2ND bob 00:11",
			"3RD carol 00:12",
		)

		Convey("When submitting a single screenshot", func() {
			res, err := svc.Submit(ctx, [][]byte{race})

			Convey("Then the ranking is parsed in line order", func() {
				So(err, ShouldBeNil)
				So(res.SubmissionID, ShouldNotBeEmpty)
				So(res.Ranking.TotalPlayers, ShouldEqual, 3)
				So(res.Ranking.Entries[0].Name, ShouldEqual, "alice")
			})

			Convey("Then the board holds the computed bounties", func() {
				So(err, ShouldBeNil)
				// N=3: pos1 = 200 + ((3-1.5)*20) = 230, pos2 = 10, pos3 = -10
				So(boardOf(svc), ShouldResemble, map[string]int{
					"alice": 230, "bob": 10, "carol": -10,
				})
			})

			Convey("Then the board is persisted write-through", func() {
				So(err, ShouldBeNil)
				saved, loadErr := store.Load(ctx)
				So(loadErr, ShouldBeNil)
				So(saved["alice"], ShouldEqual, 230)
			})

			Convey("Then the ranking becomes the last game", func() {
				So(err, ShouldBeNil)
				last, lastErr := svc.LastGame(ctx)
				So(lastErr, ShouldBeNil)
				So(last, ShouldResemble, res.Ranking)
			})
		})

		Convey("When submitting overlapping screenshots", func() {
			first := screenshot(
				"Place Player",
				"1ST alice 00:10",
				"2ND bob 00:11",
			)
			second := screenshot(
				"Place Player",
				"1ST bob 00:11",
				"2ND carol 00:12",
			)

			res, err := svc.Submit(ctx, [][]byte{first, second})

			Convey("Then the merged ranking continues numbering", func() {
				So(err, ShouldBeNil)
				So(res.Overlaps, ShouldEqual, 1)
				So(res.Ranking.TotalPlayers, ShouldEqual, 3)
				So(res.Ranking.Entries[2].Name, ShouldEqual, "carol")
				So(res.Ranking.Entries[2].Position, ShouldEqual, 3)
			})
		})

		Convey("When one screenshot fails and one parses", func() {
			res, err := svc.Submit(ctx, [][]byte{{}, race})

			Convey("Then processing continues with the survivor", func() {
				So(err, ShouldBeNil)
				So(res.Failures, ShouldHaveLength, 1)
				So(res.Failures[0].Index, ShouldEqual, 0)
				So(res.Ranking.TotalPlayers, ShouldEqual, 3)
			})
		})

		Convey("When every screenshot fails", func() {
			_, err := svc.Submit(ctx, [][]byte{{}, []byte("@@ ::\n--")})

			Convey("Then the submission aborts and the board stays empty", func() {
				So(errors.Is(err, service.ErrAllScreenshotsFailed), ShouldBeTrue)
				So(boardOf(svc), ShouldBeEmpty)
			})
		})

		Convey("When no screenshots are given", func() {
			_, err := svc.Submit(ctx, nil)
			So(errors.Is(err, service.ErrNoScreenshots), ShouldBeTrue)
		})

		Convey("When too many screenshots are given", func() {
			images := make([][]byte, 6)
			for i := range images {
				images[i] = race
			}
			_, err := svc.Submit(ctx, images)
			So(errors.Is(err, service.ErrTooManyScreenshots), ShouldBeTrue)
		})

		Convey("When submitting twice", func() {
			_, err := svc.Submit(ctx, [][]byte{race})
			So(err, ShouldBeNil)
			_, err = svc.Submit(ctx, [][]byte{race})
			So(err, ShouldBeNil)

			Convey("Then bounties accumulate", func() {
				So(boardOf(svc)["alice"], ShouldEqual, 460)
				So(boardOf(svc)["carol"], ShouldEqual, -20)
			})
		})
	})
}

func TestCorrectLastGame(t *testing.T) {
	Convey("Given a service with one submitted game", t, func() {
		svc, _ := newService(t)
		ctx := context.Background()

		race := screenshot(
			"Place Player Time",
			"1ST alice 00:10",
			"2ND bob 00:11",
			"3RD carol 00:12",
		)
		_, err := svc.Submit(ctx, [][]byte{race})
		So(err, ShouldBeNil)

		Convey("When correcting with an empty removal set", func() {
			before := boardOf(svc)
			res, err := svc.CorrectLastGame(ctx, nil)

			Convey("Then the revert-reapply cycle nets to zero", func() {
				So(err, ShouldBeNil)
				So(res.Ranking.TotalPlayers, ShouldEqual, 3)
				So(boardOf(svc), ShouldResemble, before)
			})
		})

		Convey("When removing a misread name", func() {
			res, err := svc.CorrectLastGame(ctx, []string{"bob"})

			Convey("Then the remaining players renumber and rescore", func() {
				So(err, ShouldBeNil)
				So(res.Ranking.TotalPlayers, ShouldEqual, 2)
				So(res.Ranking.Entries[0].Name, ShouldEqual, "alice")
				So(res.Ranking.Entries[1].Name, ShouldEqual, "carol")
				So(res.Ranking.Entries[1].Position, ShouldEqual, 2)

				// N=2: pos1 = 200 + 20 = 220, pos2 = 0. Bob's zeroed
				// balance is pruned by the revert.
				board := boardOf(svc)
				So(board["alice"], ShouldEqual, 220)
				So(board["carol"], ShouldEqual, 0)
				_, hasBob := board["bob"]
				So(hasBob, ShouldBeFalse)
			})

			Convey("Then the corrected game replaces the last-game slot", func() {
				So(err, ShouldBeNil)
				last, lastErr := svc.LastGame(ctx)
				So(lastErr, ShouldBeNil)
				So(last, ShouldResemble, res.Ranking)
			})
		})
	})

	Convey("Given a service with no submitted game", t, func() {
		svc, _ := newService(t)

		_, err := svc.CorrectLastGame(context.Background(), []string{"anyone"})

		So(errors.Is(err, service.ErrNoLastGame), ShouldBeTrue)
	})
}

func TestLedgerQueries(t *testing.T) {
	Convey("Given a populated board", t, func() {
		svc, _ := newService(t)
		ctx := context.Background()

		_, err := svc.Submit(ctx, [][]byte{screenshot(
			"Place Player Time",
			"1ST alice 00:10",
			"2ND bob 00:11",
			"3RD carol 00:12",
			"DNF dave 00:13",
		)})
		So(err, ShouldBeNil)

		Convey("When reading the leaderboard", func() {
			rows := svc.Leaderboard(ctx, 0)

			Convey("Then rows sort by bounty descending with ranks from 1", func() {
				So(rows, ShouldHaveLength, 4)
				So(rows[0].Name, ShouldEqual, "alice")
				So(rows[0].Rank, ShouldEqual, 1)
				So(rows[3].Rank, ShouldEqual, 4)
				for i := 1; i < len(rows); i++ {
					So(rows[i].Bounty, ShouldBeLessThanOrEqualTo, rows[i-1].Bounty)
				}
			})
		})

		Convey("When reading with a limit", func() {
			rows := svc.Leaderboard(ctx, 2)
			So(rows, ShouldHaveLength, 2)
		})

		Convey("When looking up a bounty case-insensitively", func() {
			row, err := svc.Bounty(ctx, "ALICE")

			So(err, ShouldBeNil)
			So(row.Name, ShouldEqual, "alice")
			So(row.Rank, ShouldEqual, 1)
		})

		Convey("When looking up an unknown player", func() {
			_, err := svc.Bounty(ctx, "nobody")
			So(errors.Is(err, service.ErrPlayerNotFound), ShouldBeTrue)
		})

		Convey("When removing a player case-insensitively", func() {
			row, err := svc.RemovePlayer(ctx, "CAROL")

			So(err, ShouldBeNil)
			So(row.Name, ShouldEqual, "carol")
			_, hasCarol := boardOf(svc)["carol"]
			So(hasCarol, ShouldBeFalse)
		})

		Convey("When removing an unknown player", func() {
			_, err := svc.RemovePlayer(ctx, "nobody")
			So(errors.Is(err, service.ErrPlayerNotFound), ShouldBeTrue)
		})

		Convey("When resetting the board", func() {
			So(svc.Reset(ctx), ShouldBeNil)

			So(boardOf(svc), ShouldBeEmpty)
			_, err := svc.LastGame(ctx)
			So(errors.Is(err, service.ErrNoLastGame), ShouldBeTrue)
		})
	})
}

func TestStartWithCorruptStore(t *testing.T) {
	Convey("Given a corrupt store file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "bounty_board.json")
		So(os.WriteFile(path, []byte("{broken"), 0o644), ShouldBeNil)

		svc := service.New(
			service.WithStore(repository.NewJSONStore(path)),
			service.WithRecognizer(textRecognizer{}),
		)

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())
			defer svc.Stop()

			Convey("Then startup degrades to an empty board", func() {
				So(err, ShouldBeNil)
				So(svc.Leaderboard(context.Background(), 0), ShouldBeEmpty)
			})
		})
	})
}
