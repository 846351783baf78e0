package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rcliao/secrets-tracker/internal/match"
	"github.com/rcliao/secrets-tracker/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "find [query]",
		Short: "Rank a chat's secrets against a query",
		Long:  "Score every secret in the chat against the query with the same similarity measure the dedup engine uses.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runFind,
	}

	cmd.Flags().IntP("limit", "l", 10, "Max results")

	RootCmd.AddCommand(cmd)
}

type findResult struct {
	List  string       `json:"list"`
	Score float64      `json:"score"`
	Match model.Secret `json:"secret"`
}

func runFind(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	state, err := s.LoadState(cmd.Context(), chatID)
	if err != nil {
		exitErr("load state", err)
	}

	var results []findResult
	for _, coll := range []model.Collection{model.NPCSecrets, model.UserSecrets, model.MutualSecrets} {
		for _, sec := range *state.List(coll) {
			score := match.Similarity(sec.Text, query)
			if score <= 0 {
				continue
			}
			results = append(results, findResult{
				List:  coll.String(),
				Score: math.Round(score*100) / 100,
				Match: sec,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}

	b, _ := json.MarshalIndent(results, "", "  ")
	fmt.Println(string(b))
}
