package commands

import (
	"context"
	"fmt"
	"strings"

	"tabroomapi/internal/tabroom"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyLimit *int

func init() {
	historyLimit = historyCmd.Flags().Int("limit", 10, "Read at most this many tournaments, 0 reads all of them.")
	rootCmd.AddCommand(loginCheckCmd, meCmd, sessionsCmd, historyCmd, roundsCmd, paradigmCmd)
}

var loginCheckCmd = &cobra.Command{
	Use:   "login-check",
	Short: "Logs in and out with the configured credentials.",
	Run: func(cmd *cobra.Command, args []string) {
		withSession(cmd.Context(), func(ctx context.Context) error {
			fmt.Printf("logged in as %s\n", config.Username)
			return nil
		})
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Prints the profile of the configured account.",
	Run: func(cmd *cobra.Command, args []string) {
		withSession(cmd.Context(), func(ctx context.Context) error {
			user, err := client.GetCurrentUser(ctx)
			if err != nil {
				return err
			}

			t := newTable()
			name := strings.Join(strings.Fields(user.FirstName+" "+user.MiddleName+" "+user.LastName), " ")
			t.AppendRows([]table.Row{
				{"Name", name},
				{"Email", user.Email},
				{"Phone", user.PhoneNumber},
				{"Pronouns", user.Pronouns},
				{"Time zone", user.TimeZone},
				{"Address", fmt.Sprintf("%s, %s, %s %d, %s", user.Address, user.City, user.State, user.ZipCode, user.Country)},
			})
			if user.Nsda != nil {
				t.AppendRows([]table.Row{
					{"NSDA member", user.Nsda.MemberId},
					{"Merit points", user.Nsda.MeritPoints},
					{"Points to next degree", user.Nsda.PointsToNextDegree},
					{"Last points", user.Nsda.LastPointsDate},
				})
			}
			t.Render()
			return nil
		})
	},
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Lists the login sessions of the configured account.",
	Run: func(cmd *cobra.Command, args []string) {
		withSession(cmd.Context(), func(ctx context.Context) error {
			sessions, err := client.GetCurrentSessions(ctx)
			if err != nil {
				return err
			}

			t := newTable()
			t.AppendHeader(table.Row{"Current", "Browser", "IP", "ISP", "Location"})
			for _, s := range sessions {
				isp, location := "-", "-"
				if s.Isp != nil {
					isp = *s.Isp
				}
				if s.Location != nil {
					location = *s.Location
				}
				t.AppendRow(table.Row{s.IsCurrent(), s.Browser, s.Ip, isp, location})
			}
			t.Render()
			return nil
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [--limit <n>]",
	Short: "Prints the tournaments the configured account competed in.",
	Run: func(cmd *cobra.Command, args []string) {
		withSession(cmd.Context(), func(ctx context.Context) error {
			history, err := client.GetEntryHistory(ctx, *historyLimit)
			if err != nil {
				return err
			}

			t := newTable()
			t.AppendHeader(table.Row{"Date", "Tournament", "Division", "Code", "Rounds", "Record"})
			for _, entry := range history {
				var record tabroom.TournamentRecord
				for _, r := range entry.Rounds {
					roundRecord := r.Record()
					record = record.Add(&roundRecord)
				}
				t.AppendRow(table.Row{entry.Date, entry.Tournament.Name, entry.Division, entry.Code, len(entry.Rounds), record.String()})
			}
			t.Render()
			return nil
		})
	},
}

var roundsCmd = &cobra.Command{
	Use:   "rounds <tourn_id> <student_id>",
	Short: "Prints the rounds of a student at a tournament.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		tournId := intArg(args, 0, "tourn_id")
		studentId := intArg(args, 1, "student_id")

		withSession(cmd.Context(), func(ctx context.Context) error {
			rounds, err := client.GetRoundResults(ctx, tournId, studentId)
			if err != nil {
				return err
			}

			t := newTable()
			t.AppendHeader(table.Row{"Round", "Room", "Judge", "Side", "Opponent", "Decision", "Points"})
			for _, r := range rounds {
				for _, d := range r.Data {
					side, opponent, decision, points := "-", "-", "-", "-"
					if d.Ballot != nil {
						side = d.Ballot.Side.String()
						opponent = d.Ballot.Opponent
						decision = d.Ballot.Decision
						points = fmt.Sprintf("%.1f / %.1f", d.Ballot.Speaker1Points, d.Ballot.Speaker2Points)
					}
					judge := d.Judge.FirstName + ", " + d.Judge.LastName
					t.AppendRow(table.Row{r.Label, r.Room, judge, side, opponent, decision, points})
				}
			}
			t.Render()
			return nil
		})
	},
}

var paradigmCmd = &cobra.Command{
	Use:   "paradigm <judge_person_id>",
	Short: "Prints the paradigm of a judge.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		judgeId := intArg(args, 0, "judge_person_id")

		withSession(cmd.Context(), func(ctx context.Context) error {
			paradigm, err := client.GetJudgeParadigm(ctx, judgeId)
			if err != nil {
				return err
			}
			if paradigm == "" {
				fmt.Println("(no paradigm)")
				return nil
			}
			fmt.Println(paradigm)
			return nil
		})
	},
}
