package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/noah-isme/exam-timetable-api/internal/dto"
)

func newGenerateCmd(withEngine engineRunner) *cobra.Command {
	var req dto.GenerateTimetableRequest
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Delete exams in the range and regenerate them",
		Example: "  timetablectl generate --start 2025-01-06 --end 2025-01-17\n" +
			"  timetablectl generate --start 2025-01-06 --end 2025-01-06 --day-start 08:00 --day-end 14:00",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, func(ctx context.Context, eng engine) (interface{}, error) {
				return eng.Generate(ctx, req)
			})
		},
	}
	cmd.Flags().StringVar(&req.StartDate, "start", "", "first exam date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.EndDate, "end", "", "last exam date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.ExamStartTime, "day-start", "", "earliest exam start (HH:MM), defaults to TIMETABLE_DAY_START")
	cmd.Flags().StringVar(&req.ExamEndTime, "day-end", "", "end of the exam day (HH:MM), defaults to TIMETABLE_DAY_END")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
