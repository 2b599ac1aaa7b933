package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/noah-isme/exam-timetable-api/internal/dto"
)

func newConflictsCmd(withEngine engineRunner) *cobra.Command {
	var query dto.ConflictQuery
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Audit stored exams and print every rule violation",
		Long:  "Audit stored exams. Omitted bounds default to the earliest and latest stored exam dates.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, func(ctx context.Context, eng engine) (interface{}, error) {
				return eng.Conflicts(ctx, query)
			})
		},
	}
	cmd.Flags().StringVar(&query.StartDate, "start", "", "first date to audit (YYYY-MM-DD)")
	cmd.Flags().StringVar(&query.EndDate, "end", "", "last date to audit (YYYY-MM-DD)")
	return cmd
}
