package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"doll-web/pkg/services"
)

var flagLimit int

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "Show recent contact submissions from the local log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.SubmissionsDB == "" {
			return errors.New("SUBMISSIONS_DB is not set")
		}
		log, err := services.OpenSubmissionLog(cfg.SubmissionsDB)
		if err != nil {
			return err
		}
		defer log.Close()

		recs, err := log.Recent(cmd.Context(), flagLimit)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CREATED\tNAME\tEMAIL\tCMS\tEMAILED")
		for _, r := range recs {
			fmt.Fprintf(tw, "%s\t%s %s\t%s\t%t\t%t\n",
				r.CreatedAt.Format(time.DateTime), r.Submission.FirstName, r.Submission.LastName,
				r.Submission.Email, r.SavedToCMS, r.EmailSent)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(submissionsCmd)
	submissionsCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Number of submissions to show")
}
