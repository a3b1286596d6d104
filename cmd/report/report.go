package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/okian/podium/internal/domain/achievement"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/scoring"
	"github.com/okian/podium/internal/domain/stats"
)

// dataset mirrors the JSON shape of an exported result set.
type dataset struct {
	Participants []model.Participant `json:"participants"`
	Competitions []model.Competition `json:"competitions"`
}

var medalsCmd = &cobra.Command{
	Use:   "medals",
	Short: "Print the aggregate medal table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ev, _, err := evaluate()
		if err != nil {
			return err
		}

		t := newTable()
		t.Header("#", "PARTICIPANT", "GOLD", "SILVER", "BRONZE", "TOTAL")
		for i, row := range stats.MedalTable(ev.Stats) {
			t.Append(strconv.Itoa(i+1), string(row.ParticipantID),
				strconv.Itoa(row.Gold), strconv.Itoa(row.Silver),
				strconv.Itoa(row.Bronze), strconv.Itoa(row.Total))
		}
		t.Render()
		return nil
	},
}

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Print the achievement points leaderboard",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ev, engine, err := evaluate()
		if err != nil {
			return err
		}

		scorer := scoring.NewPointsScorer()
		rows := scorer.Score(engine.Catalogue(), ev.Awards)

		t := newTable()
		t.Header("#", "PARTICIPANT", "POINTS", "ACHIEVEMENTS")
		for i, row := range rows {
			t.Append(strconv.Itoa(i+1), string(row.ParticipantID),
				fmt.Sprintf("%.1f", row.Points), strconv.Itoa(row.Achievements))
		}
		t.Render()
		return nil
	},
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements [participant-id]",
	Short: "Print achievement awards, for one participant or everyone",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ev, engine, err := evaluate()
		if err != nil {
			return err
		}

		ids := make([]model.ParticipantID, 0, len(ev.Awards))
		for id := range ev.Awards {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		if len(args) == 1 {
			want := model.ParticipantID(args[0])
			if _, ok := ev.Awards[want]; !ok {
				return fmt.Errorf("unknown participant %q", args[0])
			}
			ids = []model.ParticipantID{want}
		}

		t := newTable()
		t.Header("PARTICIPANT", "ACHIEVEMENT", "RARITY", "CATEGORY")
		for _, id := range ids {
			for _, achID := range ev.Awards[id].IDs() {
				def, err := engine.Catalogue().Lookup(achID)
				if err != nil {
					continue
				}
				t.Append(string(id), def.Name, string(def.Rarity), string(def.Category))
			}
		}
		t.Render()
		return nil
	},
}

// evaluate loads the dataset and runs one full engine pass over it.
func evaluate() (achievement.Evaluation, *achievement.Engine, error) {
	snap, err := loadSnapshot(datasetPath)
	if err != nil {
		return achievement.Evaluation{}, nil, err
	}
	engine := achievement.NewEngine(achievement.NewCatalogue())
	return engine.EvaluateAll(snap), engine, nil
}

// loadSnapshot reads the dataset file and normalizes it into the ordering
// the engine expects: participants by id, competitions by year then id.
func loadSnapshot(path string) (model.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("read dataset: %w", err)
	}

	var ds dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return model.Snapshot{}, fmt.Errorf("parse dataset: %w", err)
	}
	for _, p := range ds.Participants {
		if strings.TrimSpace(string(p.ID)) == "" {
			return model.Snapshot{}, fmt.Errorf("dataset contains a participant with no id")
		}
	}

	snap := model.Snapshot{
		Participants: ds.Participants,
		Competitions: ds.Competitions,
	}
	sort.Slice(snap.Participants, func(i, j int) bool {
		return snap.Participants[i].ID < snap.Participants[j].ID
	})
	sort.Slice(snap.Competitions, func(i, j int) bool {
		a, b := snap.Competitions[i], snap.Competitions[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.ID < b.ID
	})
	return snap, nil
}

func newTable() *tablewriter.Table {
	return tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}
