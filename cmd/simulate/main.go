// Command simulate generates a synthetic competition history and submits it
// to a running service over HTTP. Useful for demos and load checks; with
// -output it also writes the dataset JSON consumable by the report command.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

const (
	defaultParticipants = 12
	defaultYears        = 20
	defaultTimeout      = 10 * time.Second
	cancelledEvery      = 7 // every Nth year is a cancelled competition
)

type participantPayload struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Nickname    string `json:"nickname"`
	Status      string `json:"status"`
}

type competitionPayload struct {
	ID                 string         `json:"id"`
	Year               int            `json:"year"`
	Name               string         `json:"name"`
	Location           string         `json:"location"`
	Scores             map[string]int `json:"scores"`
	Arranger3rd        string         `json:"arranger_3rd"`
	ArrangerSecondLast string         `json:"arranger_second_last"`
}

type datasetPayload struct {
	Participants []participantPayload `json:"participants"`
	Competitions []competitionPayload `json:"competitions"`
}

var surnames = []string{
	"Lindqvist", "Berg", "Holm", "Nilsson", "Dahl", "Strand",
}

var locations = []string{
	"Stockholm", "Oslo", "Copenhagen", "Helsinki", "Gothenburg", "Malmo",
}

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		count     = flag.Int("participants", defaultParticipants, "Number of roster members to generate")
		years     = flag.Int("years", defaultYears, "Number of calendar years of history")
		firstYear = flag.Int("first-year", time.Now().Year()-defaultYears+1, "First competition year")
		seed      = flag.Int64("seed", 1, "PRNG seed; same seed yields the same history")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		output    = flag.String("output", "", "Also write the dataset JSON to this file")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	ds := generate(rng, *count, *years, *firstYear)

	if *output != "" {
		raw, err := json.MarshalIndent(ds, "", "  ")
		if err != nil {
			fail("encode dataset: " + err.Error())
		}
		if err := os.WriteFile(*output, raw, 0o644); err != nil {
			fail("write dataset: " + err.Error())
		}
	}

	client := &http.Client{Timeout: *timeout}
	ctx := context.Background()

	for _, p := range ds.Participants {
		if err := post(ctx, client, *baseURL+"/participants", p); err != nil {
			fail("submit participant " + p.ID + ": " + err.Error())
		}
	}
	for _, c := range ds.Competitions {
		if err := post(ctx, client, *baseURL+"/competitions", c); err != nil {
			fail("submit competition " + c.ID + ": " + err.Error())
		}
	}

	fmt.Printf("submitted %d participants and %d competitions to %s\n",
		len(ds.Participants), len(ds.Competitions), *baseURL)
}

// generate builds a deterministic synthetic history. Every participant
// attends most years; ranks are a shuffled permutation so each scored year
// has exactly one winner and no ties.
func generate(rng *rand.Rand, count, years, firstYear int) datasetPayload {
	ds := datasetPayload{}

	for i := 0; i < count; i++ {
		surname := surnames[i%len(surnames)]
		ds.Participants = append(ds.Participants, participantPayload{
			ID:          fmt.Sprintf("p%02d", i+1),
			DisplayName: fmt.Sprintf("Player %02d %s", i+1, surname),
			Nickname:    fmt.Sprintf("player%02d", i+1),
			Status:      "active",
		})
	}

	var prev competitionPayload
	for y := 0; y < years; y++ {
		year := firstYear + y
		c := competitionPayload{
			ID:       fmt.Sprintf("comp-%d", year),
			Year:     year,
			Name:     fmt.Sprintf("Annual Cup %d", year),
			Location: locations[rng.Intn(len(locations))],
			Scores:   map[string]int{},
		}

		// Cancelled years carry no scores but stay in the history.
		if (y+1)%cancelledEvery != 0 {
			attending := rng.Perm(count)
			// Most years a couple of members sit out.
			n := count - rng.Intn(3)
			rank := 1
			for _, idx := range attending[:n] {
				c.Scores[ds.Participants[idx].ID] = rank
				rank++
			}
			// Arrangers for next year come from this year's outcome.
			for id, r := range c.Scores {
				if r == 3 {
					c.Arranger3rd = id
				}
				if r == n-1 {
					c.ArrangerSecondLast = id
				}
			}
		} else if prev.ID != "" {
			c.Arranger3rd = prev.Arranger3rd
			c.ArrangerSecondLast = prev.ArrangerSecondLast
		}

		ds.Competitions = append(ds.Competitions, c)
		prev = c
	}
	return ds
}

func post(ctx context.Context, client *http.Client, url string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

func fail(msg string) {
	os.Stderr.WriteString(msg + "\n")
	os.Exit(1)
}
